package connection

import (
	mb "github.com/saeidalz13/battleship-skirmish/models/battleship"
)

type RespSessionId struct {
	SessionID string `json:"session_id"`
	GameUuid  string `json:"game_uuid"`
}

// Board is BoardOwn or BoardEnemy, seen from the local player.
type RespHighlight struct {
	Board string `json:"board"`
	Cell  string `json:"cell"`
	Style uint8  `json:"style"`
}

// DelayMs hints how long a client should hold the board before the next frame.
type RespCue struct {
	Cue     string `json:"cue"`
	DelayMs int64  `json:"delay_ms"`
}

type RespFrame = mb.Frame

type RespStats struct {
	GamesCreated   int64 `json:"games_created"`
	RematchCalled  int64 `json:"rematch_called"`
	ActiveGames    int   `json:"active_games"`
	DbNotAvailable bool  `json:"db_not_available,omitempty"`
}

type RespErr struct {
	ErrorDetails string `json:"error_details,omitempty"`
	Message      string `json:"message,omitempty"`
}

func NewRespErr(errorDetails, message string) *RespErr {
	return &RespErr{
		ErrorDetails: errorDetails,
		Message:      message,
	}
}
