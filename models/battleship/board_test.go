package battleship

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(targets []*Target) []string {
	out := make([]string, 0, len(targets))
	for _, t := range targets {
		out = append(out, t.Name())
	}
	return out
}

func TestRowAndColumnWrap(t *testing.T) {
	b := NewBoard(nil, seeded(1), nil)
	origin := mustTarget(t, b, "H2")

	row := b.RowOf(origin)
	require.Len(t, row, GridSize)
	assert.Equal(t, []string{"H2", "I2", "J2", "A2", "B2", "C2", "D2", "E2", "F2", "G2"}, names(row))

	col := b.ColumnOf(origin)
	require.Len(t, col, GridSize)
	assert.Equal(t, "H2", col[0].Name())
	assert.Equal(t, "H10", col[8].Name())
	assert.Equal(t, "H1", col[9].Name())

	assert.Nil(t, b.RowOf(nil))
}

func TestCalculateTarget(t *testing.T) {
	corner := NewCoordinates(9, 9)

	t.Run("east wraps to first column", func(t *testing.T) {
		b := NewBoard(nil, seeded(1), nil)
		got := b.CalculateTarget(corner, false)
		require.NotNil(t, got)
		assert.Equal(t, "A10", got.Name())
		assert.Equal(t, 0, b.SearchDirection())
	})

	t.Run("checked neighbour advances the cursor", func(t *testing.T) {
		b := NewBoard(nil, seeded(1), nil)
		mustTarget(t, b, "A10").setResult(ResultMiss)

		got := b.CalculateTarget(corner, false)
		require.NotNil(t, got)
		assert.Equal(t, "J1", got.Name())
		assert.Equal(t, 1, b.SearchDirection())

		// the cursor persists into the next search
		got = b.CalculateTarget(NewCoordinates(4, 4), false)
		assert.Equal(t, "E6", got.Name())
	})

	t.Run("all neighbours checked", func(t *testing.T) {
		b := NewBoard(nil, seeded(1), nil)
		for _, name := range []string{"A10", "J1", "I10", "J9"} {
			mustTarget(t, b, name).setResult(ResultMiss)
		}
		assert.Nil(t, b.CalculateTarget(corner, false))
		assert.Equal(t, 0, b.SearchDirection())
	})

	t.Run("random direction stays adjacent", func(t *testing.T) {
		b := NewBoard(nil, seeded(9), nil)
		adjacent := map[string]bool{"F5": true, "D5": true, "E4": true, "E6": true}
		for i := 0; i < 50; i++ {
			got := b.CalculateTarget(NewCoordinates(4, 4), true)
			require.NotNil(t, got)
			assert.True(t, adjacent[got.Name()], got.Name())
		}
	})
}

// huntBoard has a cruiser at A1..D1 hit at A1 and D1. Every neighbour of
// A1 is checked, so only D1 can still lead somewhere.
func huntBoard(t *testing.T, rng RandomSource) (*Board, []*Target) {
	player, _ := newMatch(rng, nil)
	b := player.Board()
	mustPlace(t, b, player.Vessel(VesselCruiser), "A1", OrientationHorizontal)

	for _, name := range []string{"A1", "D1"} {
		mustTarget(t, b, name).setResult(ResultHit)
	}
	for _, name := range []string{"B1", "A2", "J1", "A10"} {
		mustTarget(t, b, name).setResult(ResultMiss)
	}
	hits := b.Filter(func(t *Target) bool { return t.Result() == ResultHit })
	require.Len(t, hits, 2)
	return b, hits
}

func TestSearchTarget(t *testing.T) {
	t.Run("hard drops exhausted anchors", func(t *testing.T) {
		b, hits := huntBoard(t, lowSource{})
		got := b.SearchTarget(hits, DifficultyHard)
		require.NotNil(t, got)
		assert.Equal(t, "E1", got.Name())
	})

	t.Run("medium gives up after the first exhausted anchor", func(t *testing.T) {
		b, hits := huntBoard(t, lowSource{})
		assert.Nil(t, b.SearchTarget(hits, DifficultyMedium))
	})

	t.Run("sunk vessels are not anchors", func(t *testing.T) {
		b, hits := huntBoard(t, lowSource{})
		cruiser := hits[0].Vessel()
		for !cruiser.Sunk() {
			cruiser.Hit()
		}
		assert.Nil(t, b.SearchTarget(hits, DifficultyHard))
	})

	t.Run("misses are never anchors", func(t *testing.T) {
		b := NewBoard(nil, seeded(1), nil)
		assert.Nil(t, b.SearchTarget(b.Targets()[:5], DifficultyHard))
	})
}

func TestCompTarget(t *testing.T) {
	t.Run("easy ignores hits", func(t *testing.T) {
		b, _ := huntBoard(t, lowSource{})
		b.targetLocked = true
		assert.Equal(t, "A1", b.CompTarget(DifficultyEasy).Name())
	})

	t.Run("easy may reselect a checked cell", func(t *testing.T) {
		// Random mode draws from the whole board. The shot is then rejected
		// by Fire and the computer retries within its turn.
		b := NewBoard(nil, lowSource{}, nil)
		mustTarget(t, b, "A1").setResult(ResultMiss)
		got := b.CompTarget(DifficultyEasy)
		assert.True(t, got.Checked())
		assert.False(t, b.Fire(got, FireOptions{Level: DifficultyEasy}))
	})

	t.Run("medium hunts only while locked", func(t *testing.T) {
		b, _ := huntBoard(t, highSource{})
		assert.Equal(t, "J10", b.CompTarget(DifficultyMedium).Name())

		b.targetLocked = true
		got := b.CompTarget(DifficultyMedium)
		assert.NotEqual(t, "J10", got.Name())
		assert.False(t, got.Checked())
		assert.True(t, b.TargetLocked())
	})

	t.Run("hard unlocks when nothing is left to hunt", func(t *testing.T) {
		b := NewBoard(nil, lowSource{}, nil)
		b.targetLocked = true
		assert.Equal(t, "A1", b.CompTarget(DifficultyHard).Name())
		assert.False(t, b.TargetLocked())
	})
}

func TestResetTargets(t *testing.T) {
	b, _ := huntBoard(t, lowSource{})
	b.targetLocked = true
	b.detected = mustTarget(t, b, "C1")
	b.searchDirection = 2

	b.ResetTargets()
	assert.Equal(t, 0, checkedCount(b))
	assert.False(t, b.TargetLocked())
	assert.Nil(t, b.Detected())
	assert.Equal(t, 0, b.SearchDirection())
}
