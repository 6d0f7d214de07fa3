package battleship

import (
	"fmt"
	"strconv"
	"strings"

	cerr "github.com/saeidalz13/battleship-skirmish/internal/error"
)

const GridSize int = 10

type Result uint8

const (
	ResultUnknown Result = iota
	ResultHit
	ResultMiss
)

func (r Result) String() string {
	switch r {
	case ResultHit:
		return "HIT"
	case ResultMiss:
		return "MISS"
	default:
		return ""
	}
}

type Coordinates struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func NewCoordinates(x, y int) Coordinates {
	return Coordinates{X: x, Y: y}
}

// Name renders column as a letter and row as a 1-based number, (0, 0) = "A1".
func (c Coordinates) Name() string {
	return fmt.Sprintf("%c%d", 'A'+rune(c.X), c.Y+1)
}

func (c Coordinates) InBounds(gridSize int) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < gridSize && c.Y < gridSize
}

// Offset moves by (dx, dy) and wraps both axes, so the result is always on the grid.
func (c Coordinates) Offset(dx, dy, gridSize int) Coordinates {
	return Coordinates{
		X: ((c.X+dx)%gridSize + gridSize) % gridSize,
		Y: ((c.Y+dy)%gridSize + gridSize) % gridSize,
	}
}

// ParseCoordinates accepts names like "a1" or "J10". Range is not checked here.
func ParseCoordinates(name string) (Coordinates, error) {
	name = strings.ToUpper(strings.TrimSpace(name))
	if len(name) < 2 || name[0] < 'A' || name[0] > 'Z' {
		return Coordinates{}, cerr.ErrInvalidCellName(name)
	}

	row, err := strconv.Atoi(name[1:])
	if err != nil {
		return Coordinates{}, cerr.ErrInvalidCellName(name)
	}

	return Coordinates{X: int(name[0] - 'A'), Y: row - 1}, nil
}

// Target is a single grid cell. The vessel reference is non-owning.
type Target struct {
	coords Coordinates
	name   string
	result Result
	vessel *Vessel
	board  *Board

	// Flash marks a cell revealed by a detection skill until it is attacked.
	Flash bool
	// Active marks the cells of a vessel whose ability is currently charged.
	Active bool
}

func newTarget(x, y int) *Target {
	coords := NewCoordinates(x, y)
	return &Target{coords: coords, name: coords.Name()}
}

func (t *Target) String() string {
	return t.name
}

// Board is the board holding this cell, nil for a detached target.
func (t *Target) Board() *Board {
	return t.board
}

func (t *Target) Name() string {
	return t.name
}

func (t *Target) Coords() Coordinates {
	return t.coords
}

func (t *Target) X() int {
	return t.coords.X
}

func (t *Target) Y() int {
	return t.coords.Y
}

func (t *Target) Result() Result {
	return t.result
}

func (t *Target) Checked() bool {
	return t.result != ResultUnknown
}

func (t *Target) Occupied() bool {
	return t.vessel != nil
}

func (t *Target) Vessel() *Vessel {
	return t.vessel
}

func (t *Target) setResult(result Result) {
	t.result = result
	t.Flash = false
}

func (t *Target) reset() {
	t.setResult(ResultUnknown)
}

// attack records the outcome on the cell and damages the occupying vessel.
// Returns true on hit.
func (t *Target) attack() bool {
	if t.Occupied() {
		t.vessel.Hit()
		t.setResult(ResultHit)
		return true
	}

	t.setResult(ResultMiss)
	return false
}
