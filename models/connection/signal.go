package connection

const (
	CodeSessionID uint8 = iota

	// Client to server
	CodeConfirm
	CodePlaceShip
	CodeRemoveShip
	CodeRotateShip
	CodeClearShips
	CodeRandomPlacement
	CodeSelectTarget
	CodeChargeSpecial
	CodeDischargeSpecial
	CodeInspectShip
	CodeReplay
	CodeQuit

	// Server to client
	CodeRender
	CodeHighlight
	CodeCue
	CodeGameError
	CodeStats

	CodeInvalidSignal

	// if the req msg does not contain "code" field
	CodeSignalAbsent

	// A second connection while a game is running
	CodeSessionRefused
)

type Signal struct {
	Code uint8 `json:"code"`
}

func NewSignal(code uint8) Signal {
	return Signal{Code: code}
}
