package error

import (
	"errors"
	"fmt"
)

type Code uint8

const (
	CodeOutOfRange Code = iota
	CodeAlreadyResolved
	CodeInvalidPlacement
	CodeAbilityNotReady
	CodeInvariantViolation
	CodeInvalidTransition
)

func (c Code) String() string {
	switch c {
	case CodeOutOfRange:
		return "OutOfRange"
	case CodeAlreadyResolved:
		return "AlreadyResolved"
	case CodeInvalidPlacement:
		return "InvalidPlacement"
	case CodeAbilityNotReady:
		return "AbilityNotReady"
	case CodeInvariantViolation:
		return "InvariantViolation"
	case CodeInvalidTransition:
		return "InvalidTransition"
	default:
		return "Unknown"
	}
}

// GameErr is returned by every recoverable failure of the game core.
// None of them is fatal; callers decide whether to re-prompt or ignore.
type GameErr struct {
	code Code
	desc string
}

func NewGameErr(code Code) GameErr {
	return GameErr{code: code}
}

func (g GameErr) AddDesc(desc string) GameErr {
	g.desc = desc
	return g
}

func (g GameErr) Error() string {
	return fmt.Sprintf("game error - %s: %s", g.code, g.desc)
}

func (g GameErr) Code() Code {
	return g.code
}

// HasCode reports whether any error in err's chain is a GameErr with this code.
func HasCode(err error, code Code) bool {
	var gameErr GameErr
	if errors.As(err, &gameErr) {
		return gameErr.code == code
	}
	return false
}

func ErrOutOfRange(x, y int) error {
	return NewGameErr(CodeOutOfRange).AddDesc(fmt.Sprintf("coordinates out of grid bound\tx: %d\ty: %d", x, y))
}

func ErrTargetNotFound(name string) error {
	return NewGameErr(CodeOutOfRange).AddDesc(fmt.Sprintf("target does not exist on board: %s", name))
}

func ErrTargetAlreadyChecked(name, result string) error {
	return NewGameErr(CodeAlreadyResolved).AddDesc(fmt.Sprintf("target already checked (%s @ %s)", result, name))
}

func ErrPlacementOverlap(vessel, at string) error {
	return NewGameErr(CodeInvalidPlacement).AddDesc(fmt.Sprintf("insufficient space for %s at %s", vessel, at))
}

func ErrPlacementSize(vessel string, want, got int) error {
	return NewGameErr(CodeInvalidPlacement).AddDesc(fmt.Sprintf("%s needs %d positions, got %d", vessel, want, got))
}

func ErrVesselAlreadyDeployed(vessel string) error {
	return NewGameErr(CodeInvalidPlacement).AddDesc(fmt.Sprintf("%s is already deployed", vessel))
}

func ErrFleetComposition(want, got []int) error {
	return NewGameErr(CodeInvalidPlacement).AddDesc(fmt.Sprintf("fleet sizes must be %v, got %v", want, got))
}

func ErrVesselSunk(vessel string) error {
	return NewGameErr(CodeAbilityNotReady).AddDesc(fmt.Sprintf("%s is sunk", vessel))
}

func ErrAbilityNotReady(ability string, downtime int) error {
	return NewGameErr(CodeAbilityNotReady).AddDesc(fmt.Sprintf("%s down for %d more turn(s)", ability, downtime))
}

func ErrAbilityNotInstant(ability string) error {
	return NewGameErr(CodeAbilityNotReady).AddDesc(fmt.Sprintf("%s is passive and cannot be charged", ability))
}

func ErrNoVesselSelected() error {
	return NewGameErr(CodeAbilityNotReady).AddDesc("selection does not hold a vessel")
}

func ErrInvariantViolation(desc string) error {
	return NewGameErr(CodeInvariantViolation).AddDesc(desc)
}

func ErrInvalidTransition(from, to string) error {
	return NewGameErr(CodeInvalidTransition).AddDesc(fmt.Sprintf("cannot move from %s to %s", from, to))
}

func ErrGameNotExists(gameUuid string) error {
	return fmt.Errorf("game with this uuid does not exist, uuid: %s", gameUuid)
}

func ErrGameIsNil(gameUuid string) error {
	return fmt.Errorf("game with this uuid is nil, uuid: %s", gameUuid)
}

func ErrInvalidGameDifficulty() error {
	return fmt.Errorf("game difficulty must be 1 (easy), 2 (medium) or 3 (hard)")
}

func ErrActiveGameLimit(limit int) error {
	return fmt.Errorf("active game limit reached: %d", limit)
}

func ErrNilPayload() error {
	return fmt.Errorf("the payload is nil or could not be decoded")
}

func ErrInvalidCellName(name string) error {
	return fmt.Errorf("invalid cell name: %q", name)
}

func ErrSessionNotFound(sessionId string) error {
	return fmt.Errorf("session not found: %s", sessionId)
}

func ErrSessionIsNil(sessionId string) error {
	return fmt.Errorf("session is nil: %s", sessionId)
}
