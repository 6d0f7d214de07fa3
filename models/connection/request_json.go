package connection

import (
	"strings"

	cerr "github.com/saeidalz13/battleship-skirmish/internal/error"
	mb "github.com/saeidalz13/battleship-skirmish/models/battleship"
)

const (
	BoardOwn   = "own"
	BoardEnemy = "enemy"
)

// ReqCell is what the pointer was over when the client sent a signal.
// Cell may be empty when the pointer was outside both grids.
type ReqCell struct {
	Board string `json:"board"`
	Cell  string `json:"cell"`
}

func (r ReqCell) side() mb.BoardSide {
	if strings.EqualFold(r.Board, BoardEnemy) {
		return mb.SideEnemy
	}
	return mb.SideOwn
}

// boardOf names the board a target sits on from the local player's side.
func boardOf(t *mb.Target) string {
	if b := t.Board(); b != nil && b.Owner() != nil && b.Owner().IsComp() {
		return BoardEnemy
	}
	return BoardOwn
}

// ToEvent maps a client request onto one game event.
func (r ReqCell) ToEvent(kind mb.EventKind) (mb.Event, error) {
	ev := mb.Event{Kind: kind, Side: r.side()}
	if r.Cell == "" {
		return ev, nil
	}

	coords, err := mb.ParseCoordinates(r.Cell)
	if err != nil {
		return ev, cerr.ErrInvalidCellName(r.Cell)
	}
	ev.Cell = &coords
	return ev, nil
}

// SignalEvents lists the client signals that translate into a game event.
var SignalEvents = map[uint8]mb.EventKind{
	CodeConfirm:          mb.EventConfirm,
	CodePlaceShip:        mb.EventSelect,
	CodeRemoveShip:       mb.EventRemove,
	CodeRotateShip:       mb.EventRotate,
	CodeClearShips:       mb.EventClear,
	CodeRandomPlacement:  mb.EventRandomPlacement,
	CodeSelectTarget:     mb.EventSelect,
	CodeChargeSpecial:    mb.EventSelect,
	CodeDischargeSpecial: mb.EventDischarge,
	CodeInspectShip:      mb.EventInspect,
	CodeReplay:           mb.EventReplay,
	CodeQuit:             mb.EventQuit,
}

// SignalSides pins the board for signals that only make sense on one side.
var SignalSides = map[uint8]mb.BoardSide{
	CodePlaceShip:        mb.SideOwn,
	CodeRemoveShip:       mb.SideOwn,
	CodeChargeSpecial:    mb.SideOwn,
	CodeInspectShip:      mb.SideOwn,
	CodeSelectTarget:     mb.SideEnemy,
	CodeDischargeSpecial: mb.SideEnemy,
}

// EventFromSignal decodes the raw client message behind a known code.
func EventFromSignal(code uint8, raw []byte) (mb.Event, error) {
	kind, prs := SignalEvents[code]
	if !prs {
		return mb.Event{}, cerr.ErrNilPayload()
	}

	msg, err := DecodeMessage[ReqCell](raw)
	if err != nil {
		return mb.Event{}, err
	}

	ev, err := msg.Payload.ToEvent(kind)
	if err != nil {
		return ev, err
	}
	if side, prs := SignalSides[code]; prs {
		ev.Side = side
	}
	return ev, nil
}
