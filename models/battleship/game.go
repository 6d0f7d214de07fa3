package battleship

import (
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	cerr "github.com/saeidalz13/battleship-skirmish/internal/error"
)

const (
	PlayerName = "Player"
	CompName   = "Comp"
)

// The computer retries non-launched attempts within its turn. Reaching
// this bound means the board has no shootable cell left, which is a defect.
const maxCompAttempts = GridSize * GridSize * 10

const (
	actionSetup     = "Left-click to place ship on the grid. --- Right-click on ship to remove it."
	actionSetupKeys = "BACKSPACE to clear all ships. -- ENTER to place all randomly. -- SPACEBAR to rotate 90 degrees."
	actionPlay      = "Left-click to select a target --- OR --- Select a ship to activate special"
	actionEnd       = "Press ESC to exit game --- OR --- Press SPACEBAR to play again"
)

const (
	MatchStatusUndefined = ""
	MatchStatusVictory   = "VICTORY"
	MatchStatusDefeat    = "DEFEAT"
)

type EventKind uint8

const (
	EventConfirm EventKind = iota
	EventQuit
	// EventSelect is a left click: place during setup, charge on the own
	// board or fire on the enemy board during play.
	EventSelect
	// EventRemove is a right click during setup.
	EventRemove
	EventRotate
	EventClear
	EventRandomPlacement
	// EventDischarge is a right click on the enemy board with a charged ship.
	EventDischarge
	EventInspect
	EventReplay
)

type BoardSide uint8

const (
	SideOwn BoardSide = iota
	SideEnemy
)

// Event is one discrete input. Cell is whatever the pointer was over, if anything.
type Event struct {
	Kind EventKind
	Side BoardSide
	Cell *Coordinates
}

type gameConfig struct {
	rng        RandomSource
	presenter  Presenter
	difficulty Difficulty
}

type Option func(*gameConfig) error

func WithRandomSource(rng RandomSource) Option {
	return func(c *gameConfig) error {
		c.rng = rng
		return nil
	}
}

func WithSeed(seed int64) Option {
	return func(c *gameConfig) error {
		c.rng = NewRandomSource(seed)
		return nil
	}
}

func WithPresenter(p Presenter) Option {
	return func(c *gameConfig) error {
		c.presenter = p
		return nil
	}
}

func WithDifficulty(level int) Option {
	return func(c *gameConfig) error {
		d, err := ParseDifficulty(level)
		if err != nil {
			return err
		}
		c.difficulty = d
		return nil
	}
}

// Game is one human against the computer. Every mutation goes through
// HandleEvent, one event at a time.
type Game struct {
	Uuid string

	flow     *GameFlow
	player   *Player
	comp     *Player
	messages *Messages
	ann      *announcer
	rng      RandomSource

	charged          *Vessel
	setupOrientation Orientation
	matchStatus      string
}

func NewGame(opts ...Option) (*Game, error) {
	cfg := gameConfig{difficulty: DifficultyHard}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	if cfg.rng == nil {
		cfg.rng = NewRandomSource(0)
	}

	messages := &Messages{}
	messages.reset()
	ann := newAnnouncer(cfg.presenter, messages)

	g := &Game{
		Uuid:             uuid.NewString()[:6],
		flow:             NewGameFlow(),
		messages:         messages,
		ann:              ann,
		rng:              cfg.rng,
		setupOrientation: OrientationHorizontal,
	}

	g.player = NewPlayer(PlayerName, DifficultyHuman, cfg.rng, ann)
	g.comp = NewPlayer(CompName, cfg.difficulty, cfg.rng, ann)
	g.player.SetOpponent(g.comp)
	g.comp.SetOpponent(g.player)

	if err := g.comp.board.PlaceRandom(g.comp.fleet...); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Game) State() GameState {
	return g.flow.state
}

func (g *Game) Turn() int {
	return g.flow.turn
}

func (g *Game) Player() *Player {
	return g.player
}

func (g *Game) Comp() *Player {
	return g.comp
}

func (g *Game) Messages() Messages {
	return *g.messages
}

// Charged is the human's staged vessel, if any.
func (g *Game) Charged() *Vessel {
	return g.charged
}

func (g *Game) SetupOrientation() Orientation {
	return g.setupOrientation
}

func (g *Game) MatchStatus() string {
	return g.matchStatus
}

// HandleEvent advances the game by one input. When the human's action ends
// the turn, the computer's turn and the victory check run before it returns.
// Errors are informational; the game state is always consistent afterwards.
func (g *Game) HandleEvent(ev Event) error {
	defer g.render()

	if ev.Kind == EventQuit {
		g.flow.Quit()
		return nil
	}

	switch g.flow.state {
	case StateStart:
		if ev.Kind == EventConfirm {
			g.messages.Result = actionSetup
			g.messages.Action = actionSetupKeys
			return g.flow.Transition(StateSetup)
		}

	case StateSetup:
		return g.handleSetup(ev)

	case StatePlay:
		turnEnded, err := g.handlePlay(ev)
		if turnEnded {
			g.switchPlayers()
			if err := g.flow.Transition(StateComp); err != nil {
				return err
			}
			return g.compTurn()
		}
		return err

	case StateEnd:
		if ev.Kind == EventReplay {
			return g.replay()
		}
	}
	return nil
}

func (g *Game) handleSetup(ev Event) error {
	board := g.player.board

	switch ev.Kind {
	case EventSelect:
		v := g.player.NextUndeployed()
		if v == nil || ev.Side != SideOwn || ev.Cell == nil {
			return nil
		}
		if err := board.PlaceVessel(v, *ev.Cell, g.setupOrientation); err != nil {
			g.messages.Result = "Insufficient space. Reselect."
			return err
		}
		if g.player.FleetDeployed() {
			return g.completeSetup()
		}

	case EventRemove:
		if ev.Side == SideOwn {
			board.RemoveVessel(board.SelectAt(ev.Cell))
		}

	case EventRotate:
		g.setupOrientation = g.setupOrientation.Rotate()

	case EventClear:
		board.ClearVessels()

	case EventRandomPlacement:
		board.ClearVessels()
		if err := board.PlaceRandom(g.player.fleet...); err != nil {
			return err
		}
		return g.completeSetup()
	}
	return nil
}

func (g *Game) completeSetup() error {
	for _, p := range []*Player{g.player, g.comp} {
		if err := ValidateFleet(p.fleet); err != nil {
			log.Printf("DEFECT: %s fleet rejected: %v\n", p, err)
			return err
		}
	}

	g.messages.Result = "Player fleet deployed. Ready to attack..."
	g.messages.Action = actionPlay
	return g.flow.Transition(StatePlay)
}

// handlePlay returns true when the event was a turn-ending action.
func (g *Game) handlePlay(ev Event) (bool, error) {
	switch ev.Kind {
	case EventSelect:
		if ev.Side == SideOwn {
			target := g.player.board.SelectAt(ev.Cell)
			g.inspect(target)
			charged, err := Charge(target, g.charged)
			g.charged = charged
			if err != nil {
				log.Println(err)
			}
			return false, err
		}

		target := g.comp.board.SelectAt(ev.Cell)
		if target != nil && target.Checked() {
			// the turn and any charge are kept
			g.messages.Result = fmt.Sprintf("%s already checked. Reselect.", target)
			return false, cerr.ErrTargetAlreadyChecked(target.Name(), target.Result().String())
		}

		if g.charged != nil {
			restore(g.charged)
			g.charged = nil
		}
		return g.comp.board.Fire(target, FireOptions{}), nil

	case EventDischarge:
		if g.charged == nil || ev.Side != SideEnemy {
			return false, nil
		}
		launched, _ := Discharge(g.comp.board, g.charged, g.comp.board.SelectAt(ev.Cell), DifficultyHuman)
		if launched {
			g.charged = nil
		}
		return launched, nil

	case EventInspect:
		if ev.Side == SideOwn {
			g.inspect(g.player.board.SelectAt(ev.Cell))
		}
	}
	return false, nil
}

func (g *Game) inspect(t *Target) {
	if t == nil || !t.Occupied() {
		return
	}

	v := t.vessel
	switch {
	case v.Sunk():
		g.messages.Result = fmt.Sprintf("%s is sunk.", v)
	case !v.ability.Ready() && v.ability.kind != AbilityPassive:
		g.messages.Result = fmt.Sprintf("%s down for %d more turn(s).", v.ability, v.ability.downtime)
	default:
		g.messages.Result = fmt.Sprintf("%s --- %s", v, v.ability.description)
	}
}

// compTurn runs the computer until it performs one turn-ending action,
// then hands over to the victory check.
func (g *Game) compTurn() error {
	target := g.player.board
	level := g.comp.difficulty

	if g.comp.FleetSunk() {
		log.Println("comp fleet sunk, skipping comp action")
	} else {
		launched := false
		for attempt := 0; attempt < maxCompAttempts && !launched; attempt++ {
			if v := ChargeRandom(g.comp.fleet, g.rng); v != nil {
				launched, _ = Discharge(target, v, nil, level)
			}
			if !launched {
				launched = target.Fire(target.detected, FireOptions{Level: level})
			}
		}
		if !launched {
			log.Printf("DEFECT: comp could not launch after %d attempts\n", maxCompAttempts)
		}
	}

	g.switchPlayers()
	if err := g.flow.Transition(StateWait); err != nil {
		return err
	}
	if ready := ReadySkills(g.player.fleet); len(ready) > 0 {
		g.messages.Result = "SKILLS READY: " + strings.Join(ready, ", ")
	}
	return g.resolveWait()
}

// switchPlayers moves the per-action intel into the acting side's summary.
// Cooldowns tick once per exchange, when the computer hands back.
func (g *Game) switchPlayers() {
	if g.flow.state == StateComp {
		g.messages.Comp = g.messages.SkillIntel
		g.messages.CompTarget = g.messages.TargetIntel
		g.messages.Action = actionPlay
		Turnover(g.player.fleet, g.comp.fleet)
	} else {
		g.messages.Player = g.messages.SkillIntel
		g.messages.PlayerTarget = g.messages.TargetIntel
	}

	g.messages.TargetIntel = ""
	g.messages.SkillIntel = ""
}

func (g *Game) resolveWait() error {
	switch {
	case g.player.FleetSunk():
		g.matchStatus = MatchStatusDefeat
		g.messages.End = "DEFEAT. All player ships sunk..."
		g.ann.cue(CueDefeat)
	case g.comp.FleetSunk():
		g.matchStatus = MatchStatusVictory
		g.messages.End = "VICTORY! All enemy ships sunk!"
		g.ann.cue(CueVictory)
	default:
		g.messages.Turn = fmt.Sprintf("TURN %d", g.flow.turn)
		return g.flow.Transition(StatePlay)
	}

	g.messages.Action = actionEnd
	return g.flow.Transition(StateEnd)
}

func (g *Game) replay() error {
	for _, p := range []*Player{g.player, g.comp} {
		p.board.ClearVessels()
		p.board.ResetTargets()
	}
	g.messages.reset()
	g.messages.Result = actionSetup
	g.messages.Action = actionSetupKeys
	g.charged = nil
	g.matchStatus = MatchStatusUndefined
	g.setupOrientation = OrientationHorizontal

	if err := g.comp.board.PlaceRandom(g.comp.fleet...); err != nil {
		return err
	}
	return g.flow.Transition(StateSetup)
}

func (g *Game) render() {
	g.ann.presenter.Render(g.Frame())
}
