package battleship

import (
	"log"
	"slices"

	cerr "github.com/saeidalz13/battleship-skirmish/internal/error"
)

type GameState uint8

const (
	StateStart GameState = iota
	StateSetup
	StatePlay
	StateComp
	StateWait
	StateEnd
	StateQuit
)

func (s GameState) String() string {
	switch s {
	case StateStart:
		return "START"
	case StateSetup:
		return "SETUP"
	case StatePlay:
		return "PLAY"
	case StateComp:
		return "COMP"
	case StateWait:
		return "WAIT"
	case StateEnd:
		return "END"
	case StateQuit:
		return "QUIT"
	default:
		return "UNKNOWN"
	}
}

// QUIT is reachable from every state and is not listed here.
var transitions = map[GameState][]GameState{
	StateStart: {StateSetup},
	StateSetup: {StatePlay},
	StatePlay:  {StateComp},
	StateComp:  {StateWait},
	StateWait:  {StatePlay, StateEnd},
	StateEnd:   {StateSetup},
}

// GameFlow tracks the phase and the turn counter. The counter starts at 1
// and advances once per player and computer exchange.
type GameFlow struct {
	state GameState
	turn  int
}

func NewGameFlow() *GameFlow {
	return &GameFlow{state: StateStart, turn: 1}
}

func (f *GameFlow) State() GameState {
	return f.state
}

func (f *GameFlow) Turn() int {
	return f.turn
}

func (f *GameFlow) CanTransition(to GameState) bool {
	if to == StateQuit {
		return f.state != StateQuit
	}
	return slices.Contains(transitions[f.state], to)
}

func (f *GameFlow) Transition(to GameState) error {
	if !f.CanTransition(to) {
		return cerr.ErrInvalidTransition(f.state.String(), to.String())
	}

	switch {
	case f.state == StateComp && to == StateWait:
		f.turn++
	case f.state == StateEnd && to == StateSetup:
		f.turn = 1
	}

	log.Printf("game flow: %s -> %s (turn %d)\n", f.state, to, f.turn)
	f.state = to
	return nil
}

func (f *GameFlow) Quit() {
	if f.state != StateQuit {
		_ = f.Transition(StateQuit)
	}
}
