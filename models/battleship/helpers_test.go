package battleship

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// lowSource always draws the smallest value: every roll succeeds and
// every choice takes the first candidate.
type lowSource struct{}

func (lowSource) Intn(int) int { return 0 }

// highSource always draws the largest value: every roll fails and
// every choice takes the last candidate.
type highSource struct{}

func (highSource) Intn(n int) int { return n - 1 }

type recordingPresenter struct {
	frames     []Frame
	cues       []Cue
	highlights map[HighlightStyle]int
	lit        []litTarget
}

type litTarget struct {
	target *Target
	style  HighlightStyle
}

func newRecordingPresenter() *recordingPresenter {
	return &recordingPresenter{highlights: make(map[HighlightStyle]int)}
}

func (r *recordingPresenter) Render(f Frame) { r.frames = append(r.frames, f) }

func (r *recordingPresenter) Highlight(t *Target, style HighlightStyle) {
	r.highlights[style]++
	r.lit = append(r.lit, litTarget{target: t, style: style})
}

// hiddenLit counts highlights that would show an unsunk vessel of b.
// Sonar detection is the one deliberate reveal.
func (r *recordingPresenter) hiddenLit(b *Board) int {
	n := 0
	for _, l := range r.lit {
		if l.target == nil || l.target.Board() != b || l.style == HighlightDetected {
			continue
		}
		if l.target.Occupied() && !l.target.Vessel().Sunk() {
			n++
		}
	}
	return n
}

func (r *recordingPresenter) PlayCue(c Cue) { r.cues = append(r.cues, c) }

func (r *recordingPresenter) count(c Cue) int {
	n := 0
	for _, cue := range r.cues {
		if cue == c {
			n++
		}
	}
	return n
}

// newMatch returns two linked players with empty boards.
func newMatch(rng RandomSource, p Presenter) (*Player, *Player) {
	messages := &Messages{}
	messages.reset()
	ann := newAnnouncer(p, messages)

	player := NewPlayer(PlayerName, DifficultyHuman, rng, ann)
	comp := NewPlayer(CompName, DifficultyHard, rng, ann)
	player.SetOpponent(comp)
	comp.SetOpponent(player)
	return player, comp
}

func seeded(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func mustPlace(t *testing.T, b *Board, v *Vessel, name string, o Orientation) {
	t.Helper()
	c, err := ParseCoordinates(name)
	require.NoError(t, err)
	require.NoError(t, b.PlaceVessel(v, c, o))
}

func mustTarget(t *testing.T, b *Board, name string) *Target {
	t.Helper()
	target, err := b.ResolveName(name)
	require.NoError(t, err)
	return target
}

func checkedCount(b *Board) int {
	return len(b.Filter(func(t *Target) bool { return t.Checked() }))
}
