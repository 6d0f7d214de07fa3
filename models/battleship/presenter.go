package battleship

import "time"

type Cue uint8

const (
	CueLaunch Cue = iota
	CueHit
	CueSink
	CueRailgun
	CueSalvo
	CueSonar
	CueEvade
	CueDepthCharge
	CueVictory
	CueDefeat
)

// cueDelay is a timing hint for the presenter. The core never sleeps on it.
const cueDelay = time.Second

func (c Cue) String() string {
	switch c {
	case CueLaunch:
		return "launch"
	case CueHit:
		return "hit"
	case CueSink:
		return "sink"
	case CueRailgun:
		return "railgun"
	case CueSalvo:
		return "salvo"
	case CueSonar:
		return "sonar"
	case CueEvade:
		return "evade"
	case CueDepthCharge:
		return "depth-charge"
	case CueVictory:
		return "victory"
	case CueDefeat:
		return "defeat"
	default:
		return "unknown"
	}
}

func (c Cue) Delay() time.Duration {
	return cueDelay
}

type HighlightStyle uint8

const (
	HighlightNone HighlightStyle = iota
	// HighlightActive marks the cells of a charged vessel.
	HighlightActive
	// HighlightDetected marks a cell revealed by sonar.
	HighlightDetected
	// HighlightHit paints a cell as hit without changing its result.
	HighlightHit
	// HighlightReveal shows a sunk enemy vessel footprint.
	HighlightReveal
	HighlightExpandRow
	HighlightExpandColumn
)

// Presenter is everything the core asks of the outside world.
// Pointer input arrives as coordinates on events, see Game.HandleEvent.
type Presenter interface {
	Render(frame Frame)
	Highlight(target *Target, style HighlightStyle)
	PlayCue(cue Cue)
}

type NopPresenter struct{}

func (NopPresenter) Render(Frame)                      {}
func (NopPresenter) Highlight(*Target, HighlightStyle) {}
func (NopPresenter) PlayCue(Cue)                       {}

// Messages replaces the shared message buffers of a display layer.
// It is owned by one Game and travels inside every Frame.
type Messages struct {
	Turn         string `json:"turn"`
	Player       string `json:"player"`
	Comp         string `json:"comp"`
	PlayerTarget string `json:"player_target"`
	CompTarget   string `json:"comp_target"`
	TargetIntel  string `json:"target_intel"`
	SkillIntel   string `json:"skill_intel"`
	Result       string `json:"result"`
	Action       string `json:"action"`
	End          string `json:"end"`
}

func (m *Messages) reset() {
	*m = Messages{Player: "PLAYER", Comp: "COMP", Turn: "TURN 1"}
}

// announcer is shared by both boards of a game so that fire and
// abilities can report without reaching for globals.
type announcer struct {
	presenter Presenter
	messages  *Messages
}

func newAnnouncer(p Presenter, m *Messages) *announcer {
	if p == nil {
		p = NopPresenter{}
	}
	if m == nil {
		m = &Messages{}
	}
	return &announcer{presenter: p, messages: m}
}

func (a *announcer) cue(c Cue) {
	a.presenter.PlayCue(c)
}

func (a *announcer) highlight(t *Target, style HighlightStyle) {
	a.presenter.Highlight(t, style)
}
