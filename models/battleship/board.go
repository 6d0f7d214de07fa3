package battleship

import (
	"fmt"
	"log"

	cerr "github.com/saeidalz13/battleship-skirmish/internal/error"
)

// E, S, W, N. The search cursor indexes this array.
var ordinal = [4]Coordinates{{X: 1, Y: 0}, {X: 0, Y: 1}, {X: -1, Y: 0}, {X: 0, Y: -1}}

type Board struct {
	owner   *Player
	size    int
	targets map[Coordinates]*Target
	// row-major; keeps iteration (and therefore random choice) deterministic
	order []*Target

	searchDirection int
	targetLocked    bool
	detected        *Target

	rng RandomSource
	ann *announcer
}

func NewBoard(owner *Player, rng RandomSource, ann *announcer) *Board {
	if ann == nil {
		ann = newAnnouncer(nil, nil)
	}

	b := &Board{
		owner:   owner,
		size:    GridSize,
		targets: make(map[Coordinates]*Target, GridSize*GridSize),
		order:   make([]*Target, 0, GridSize*GridSize),
		rng:     rng,
		ann:     ann,
	}

	for y := 0; y < b.size; y++ {
		for x := 0; x < b.size; x++ {
			t := newTarget(x, y)
			t.board = b
			b.targets[t.coords] = t
			b.order = append(b.order, t)
		}
	}
	return b
}

func (b *Board) String() string {
	if b.owner == nil {
		return "Board"
	}
	return fmt.Sprintf("%s's Board", b.owner.name)
}

func (b *Board) Owner() *Player {
	return b.owner
}

func (b *Board) Size() int {
	return b.size
}

// Targets returns every cell in row-major order.
func (b *Board) Targets() []*Target {
	return b.order
}

func (b *Board) Resolve(c Coordinates) (*Target, error) {
	t, prs := b.targets[c]
	if !prs {
		return nil, cerr.ErrOutOfRange(c.X, c.Y)
	}
	return t, nil
}

func (b *Board) ResolveName(name string) (*Target, error) {
	c, err := ParseCoordinates(name)
	if err != nil {
		return nil, err
	}
	t, prs := b.targets[c]
	if !prs {
		return nil, cerr.ErrTargetNotFound(name)
	}
	return t, nil
}

// SelectAt resolves the cell reported under the pointer; nil means none.
func (b *Board) SelectAt(c *Coordinates) *Target {
	if c == nil {
		return nil
	}
	t, err := b.Resolve(*c)
	if err != nil {
		return nil
	}
	return t
}

// Select returns the first target in row-major order matching pred.
func (b *Board) Select(pred func(*Target) bool) *Target {
	for _, t := range b.order {
		if pred(t) {
			return t
		}
	}
	return nil
}

func (b *Board) Filter(pred func(*Target) bool) []*Target {
	filtered := make([]*Target, 0)
	for _, t := range b.order {
		if pred(t) {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

// SelectRandom picks uniformly from candidates, or from the whole board when
// candidates is empty. Checked cells are not excluded.
func (b *Board) SelectRandom(candidates ...*Target) *Target {
	if len(candidates) == 0 {
		candidates = b.order
	}
	return choose(b.rng, candidates)
}

// RowOf returns the size cells sharing t's row, starting at t and wrapping.
func (b *Board) RowOf(t *Target) []*Target {
	if t == nil {
		return nil
	}
	row := make([]*Target, 0, b.size)
	for x := 0; x < b.size; x++ {
		row = append(row, b.targets[NewCoordinates((t.X()+x)%b.size, t.Y())])
	}
	return row
}

// ColumnOf returns the size cells sharing t's column, starting at t and wrapping.
func (b *Board) ColumnOf(t *Target) []*Target {
	if t == nil {
		return nil
	}
	col := make([]*Target, 0, b.size)
	for y := 0; y < b.size; y++ {
		col = append(col, b.targets[NewCoordinates(t.X(), (t.Y()+y)%b.size)])
	}
	return col
}

// CompTarget chooses the computer's next shot against this board.
// Easy always shoots at random, Medium hunts only while locked on,
// Hard hunts whenever an unresolved hit exists.
func (b *Board) CompTarget(level Difficulty) *Target {
	selected := b.SelectRandom()

	if level == DifficultyHard || (level == DifficultyMedium && b.targetLocked) {
		hits := b.Filter(func(t *Target) bool { return t.result == ResultHit })
		found := b.SearchTarget(hits, level)
		if found != nil {
			selected = found
		} else {
			b.targetLocked = false
		}
	}

	log.Printf("comp target on %s: %s (locked=%t)\n", b, selected, b.targetLocked)
	return selected
}

// SearchTarget probes around hits whose vessel still floats. On Hard an
// exhausted anchor is dropped and another is tried; otherwise the search
// gives up after the first exhausted anchor.
func (b *Board) SearchTarget(hits []*Target, level Difficulty) *Target {
	anchors := make([]*Target, 0, len(hits))
	for _, t := range hits {
		if t.vessel != nil && !t.vessel.Sunk() {
			anchors = append(anchors, t)
		}
	}

	for len(anchors) > 0 {
		i := b.rng.Intn(len(anchors))
		if calculated := b.CalculateTarget(anchors[i].coords, false); calculated != nil {
			return calculated
		}
		if level != DifficultyHard {
			break
		}
		anchors = append(anchors[:i], anchors[i+1:]...)
	}
	return nil
}

// CalculateTarget returns an unchecked neighbour of c. The search cursor
// advances every time the probed neighbour is already checked and persists
// across turns. Nil after four checked probes.
func (b *Board) CalculateTarget(c Coordinates, randomDirection bool) *Target {
	for attempts := 4; attempts > 0; attempts-- {
		d := ordinal[b.searchDirection]
		if randomDirection {
			d = ordinal[b.rng.Intn(len(ordinal))]
		}

		calculated := b.targets[c.Offset(d.X, d.Y, b.size)]
		if !calculated.Checked() {
			return calculated
		}
		b.searchDirection = (b.searchDirection + 1) % len(ordinal)
	}
	return nil
}

func (b *Board) SearchDirection() int {
	return b.searchDirection
}

func (b *Board) TargetLocked() bool {
	return b.targetLocked
}

// Detected is the cell revealed by an enemy sonar, consumed by the next AI shot.
func (b *Board) Detected() *Target {
	return b.detected
}

// ResetTargets forgets every attack result on the board.
func (b *Board) ResetTargets() {
	for _, t := range b.order {
		t.reset()
		t.Active = false
	}
	b.targetLocked = false
	b.detected = nil
	b.searchDirection = 0
}
