package battleship

import (
	"github.com/google/uuid"
	cerr "github.com/saeidalz13/battleship-skirmish/internal/error"
)

type Difficulty int

// DifficultyHuman marks a player driven by input events rather than the AI.
const (
	DifficultyHuman Difficulty = iota
	DifficultyEasy
	DifficultyMedium
	DifficultyHard
)

func ParseDifficulty(level int) (Difficulty, error) {
	d := Difficulty(level)
	if d < DifficultyEasy || d > DifficultyHard {
		return DifficultyHuman, cerr.ErrInvalidGameDifficulty()
	}
	return d, nil
}

func (d Difficulty) String() string {
	switch d {
	case DifficultyEasy:
		return "easy"
	case DifficultyMedium:
		return "medium"
	case DifficultyHard:
		return "hard"
	default:
		return "human"
	}
}

// Player owns its board and fleet from construction on.
type Player struct {
	Uuid       string
	name       string
	difficulty Difficulty
	board      *Board
	fleet      []*Vessel
	opponent   *Player
}

func NewPlayer(name string, difficulty Difficulty, rng RandomSource, ann *announcer) *Player {
	p := &Player{
		Uuid:       uuid.NewString()[:10],
		name:       name,
		difficulty: difficulty,
		fleet:      make([]*Vessel, 0, len(FleetKinds)),
	}
	p.board = NewBoard(p, rng, ann)

	for _, kind := range FleetKinds {
		p.fleet = append(p.fleet, NewVessel(kind, vesselName(kind, p, rng), p))
	}
	return p
}

func (p *Player) String() string {
	return p.name
}

func (p *Player) Name() string {
	return p.name
}

func (p *Player) IsComp() bool {
	return p.difficulty != DifficultyHuman
}

func (p *Player) Difficulty() Difficulty {
	return p.difficulty
}

func (p *Player) Board() *Board {
	return p.board
}

func (p *Player) Fleet() []*Vessel {
	return p.fleet
}

func (p *Player) Vessel(kind VesselKind) *Vessel {
	for _, v := range p.fleet {
		if v.kind == kind {
			return v
		}
	}
	return nil
}

func (p *Player) Opponent() *Player {
	return p.opponent
}

func (p *Player) SetOpponent(opponent *Player) {
	p.opponent = opponent
}

// NextUndeployed is the vessel manual setup will place next.
func (p *Player) NextUndeployed() *Vessel {
	for _, v := range p.fleet {
		if !v.Deployed() {
			return v
		}
	}
	return nil
}

func (p *Player) FleetDeployed() bool {
	return p.NextUndeployed() == nil
}

func (p *Player) FleetSunk() bool {
	for _, v := range p.fleet {
		if !v.Sunk() {
			return false
		}
	}
	return true
}
