package battleship

import (
	"fmt"
	"log"

	cerr "github.com/saeidalz13/battleship-skirmish/internal/error"
)

type AbilityKind uint8

const (
	AbilityInstant AbilityKind = iota
	AbilityPassive
)

func (k AbilityKind) String() string {
	if k == AbilityPassive {
		return "PASSIVE"
	}
	return "INSTANT"
}

type Skill uint8

const (
	SkillAreaShot Skill = iota
	SkillSalvo
	SkillCounterDetect
	SkillEvade
	SkillDepthCharge
)

const (
	maxDepthChargeStacks = 3
	maxSalvoFollowUps    = 4
)

type abilitySpec struct {
	skill       Skill
	name        string
	description string
	kind        AbilityKind
	cooldown    int
	successRate float64
	cue         Cue
}

var abilityCatalog = map[VesselKind]abilitySpec{
	VesselCarrier: {
		skill:       SkillAreaShot,
		name:        "EM Railgun",
		description: "Fires shot perpendicular to ship's orientation across entire row/column.",
		kind:        AbilityInstant,
		cooldown:    6,
		successRate: 100,
		cue:         CueRailgun,
	},
	VesselCruiser: {
		skill:       SkillSalvo,
		name:        "Missile Salvo",
		description: "Fires missiles with %chance to hit surrounding targets. (max 5 shots)",
		kind:        AbilityInstant,
		cooldown:    1,
		successRate: 100,
		cue:         CueSalvo,
	},
	VesselDestroyer: {
		skill:       SkillCounterDetect,
		name:        "Sonar Blast",
		description: "(PASSIVE) %-chance to counter-detect a submarine after being hit.",
		kind:        AbilityPassive,
		cooldown:    -1,
		successRate: 75,
		cue:         CueSonar,
	},
	VesselSubmarine: {
		skill:       SkillEvade,
		name:        "Countermeasures",
		description: "(PASSIVE) %-chance to evade detection after being hit.",
		kind:        AbilityPassive,
		cooldown:    -1,
		successRate: 75,
		cue:         CueEvade,
	},
	VesselFrigate: {
		skill:       SkillDepthCharge,
		name:        "Depth Charge",
		description: "Deploys charge with a %chance to hit a submarine. (max 3 charges)",
		kind:        AbilityInstant,
		cooldown:    2,
		successRate: 100,
		cue:         CueDepthCharge,
	},
}

// Ability is the per-vessel special. Instant abilities cycle between ready
// (downtime 0) and cooldown; passive ones stay at downtime -1 and fire on hit.
type Ability struct {
	abilitySpec
	downtime int
	stacks   int
	vessel   *Vessel
}

// Outcome summarises one effect resolution.
type Outcome struct {
	Shots     int
	Launched  int
	Detected  *Target
	Relocated bool
}

func newAbility(v *Vessel) *Ability {
	a := &Ability{abilitySpec: abilityCatalog[v.kind], vessel: v}
	if a.kind == AbilityPassive {
		a.disableReady()
	}
	return a
}

func (a *Ability) String() string {
	return a.name
}

func (a *Ability) Name() string {
	return a.name
}

func (a *Ability) Description() string {
	return a.description
}

func (a *Ability) Skill() Skill {
	return a.skill
}

func (a *Ability) Kind() AbilityKind {
	return a.kind
}

func (a *Ability) Cooldown() int {
	return a.cooldown
}

func (a *Ability) Downtime() int {
	return a.downtime
}

func (a *Ability) Stacks() int {
	return a.stacks
}

func (a *Ability) SuccessRate() float64 {
	return a.successRate
}

func (a *Ability) Ready() bool {
	return a.downtime == 0
}

func (a *Ability) disableReady() {
	a.downtime = -1
}

// Reset readies the ability for a new match.
func (a *Ability) Reset() {
	a.downtime = 0
	a.stacks = 0
	if a.kind == AbilityPassive {
		a.disableReady()
	}
}

func (a *Ability) turnover() {
	if a.downtime > 0 {
		a.downtime--
	}
}

func (a *Ability) activate(b *Board, target *Target) Outcome {
	if a.kind == AbilityInstant {
		a.downtime = a.cooldown
	}
	log.Printf("%s activating %s @ %v\n", a.vessel, a, target)
	return a.effect(b, target)
}

func (a *Ability) effect(b *Board, target *Target) Outcome {
	switch a.skill {
	case SkillAreaShot:
		return a.areaShot(b, target)
	case SkillSalvo:
		return a.salvo(b, target)
	case SkillCounterDetect:
		return a.counterDetect(b)
	case SkillEvade:
		return a.evade(b)
	case SkillDepthCharge:
		return a.depthCharge(b, target)
	default:
		return Outcome{}
	}
}

// Turnover brings every ability one turn closer to ready.
func Turnover(fleets ...[]*Vessel) {
	for _, fleet := range fleets {
		for _, v := range fleet {
			v.ability.turnover()
		}
	}
}

// ReadySkills lists the instant abilities of floating vessels that can be charged.
func ReadySkills(fleet []*Vessel) []string {
	ready := make([]string, 0, len(fleet))
	for _, v := range fleet {
		if v.ability.Ready() && !v.Sunk() {
			ready = append(ready, fmt.Sprintf("%s (%s)", v.ability, v.kind))
		}
	}
	return ready
}

// Charge stages the ability of the vessel at selection. Whatever was
// charged before is unwound first, so calling it again is safe.
func Charge(selection *Target, previous *Vessel) (*Vessel, error) {
	if previous != nil {
		restore(previous)
	}

	if selection == nil || !selection.Occupied() {
		return nil, cerr.ErrNoVesselSelected()
	}

	v := selection.vessel
	switch {
	case v.Sunk():
		return nil, cerr.ErrVesselSunk(v.String())
	case v.ability.kind != AbilityInstant:
		return nil, cerr.ErrAbilityNotInstant(v.ability.name)
	case v.ability.downtime != 0:
		return nil, cerr.ErrAbilityNotReady(v.ability.name, v.ability.downtime)
	}

	prep(v)
	return v, nil
}

// ChargeRandom is the computer's charge: any ready instant ability of a floating vessel.
func ChargeRandom(fleet []*Vessel, rng RandomSource) *Vessel {
	ready := make([]*Vessel, 0, len(fleet))
	for _, v := range fleet {
		if v.ability.Ready() && v.ability.kind == AbilityInstant && !v.Sunk() {
			ready = append(ready, v)
		}
	}
	if len(ready) == 0 {
		return nil
	}
	return choose(rng, ready)
}

// Discharge fires a charged ability at b. A human supplies selection; the
// computer (level above human) rolls level*25 to act at all and aims at
// the detected cell or its hunt target. Staging is always unwound.
func Discharge(b *Board, v *Vessel, selection *Target, level Difficulty) (bool, Outcome) {
	if v == nil {
		return false, Outcome{}
	}
	defer restore(v)

	target := selection
	if level != DifficultyHuman {
		target = nil
		if rollSuccess(b.rng, float64(level)*25) {
			if b.detected != nil {
				target = b.detected
				b.detected = nil
			} else {
				target = b.CompTarget(level)
			}
		}
	}

	if target == nil {
		return false, Outcome{}
	}
	return true, v.ability.activate(b, target)
}

// TriggerPassive runs a passive effect of a vessel that was just hit on its own board.
func TriggerPassive(v *Vessel, b *Board) Outcome {
	if v == nil || v.ability.kind != AbilityPassive {
		return Outcome{}
	}
	log.Printf("%s triggered %s\n", v, v.ability)
	return v.ability.effect(b, nil)
}

func vesselAnnouncer(v *Vessel) *announcer {
	if v.owner == nil || v.owner.board == nil {
		return newAnnouncer(nil, nil)
	}
	return v.owner.board.ann
}

// staged reports whether charging v is shown to the presenter.
// Computer vessels are never staged so their cells stay hidden.
func staged(v *Vessel) bool {
	return v.owner == nil || !v.owner.IsComp()
}

func prep(v *Vessel) {
	if !staged(v) {
		return
	}
	ann := vesselAnnouncer(v)
	for _, t := range v.position {
		t.Active = true
		ann.highlight(t, HighlightActive)
	}

	verb := "firing"
	switch v.kind {
	case VesselCarrier:
		// the expansion is anchored on the carrier's bow
		if len(v.position) > 0 {
			if v.orientation == OrientationVertical {
				ann.highlight(v.position[0], HighlightExpandRow)
			} else {
				ann.highlight(v.position[0], HighlightExpandColumn)
			}
		}
	case VesselFrigate:
		verb = "deploying"
	}
	ann.messages.Action = fmt.Sprintf("%s %s %s! (Right-click on target to fire.)", v.kind, verb, v.ability)
}

func restore(v *Vessel) {
	if !staged(v) {
		return
	}
	ann := vesselAnnouncer(v)
	for _, t := range v.position {
		t.Active = false
		ann.highlight(t, HighlightNone)
	}
}

func (a *Ability) fireAll(b *Board, targets []*Target, outcome *Outcome) {
	for _, t := range targets {
		outcome.Shots++
		if b.Fire(t, FireOptions{Secondary: true}) {
			outcome.Launched++
		}
	}
}

func (a *Ability) areaShot(b *Board, origin *Target) Outcome {
	var outcome Outcome

	line := b.ColumnOf(origin)
	if a.vessel.orientation == OrientationVertical {
		line = b.RowOf(origin)
	}

	b.ann.cue(a.cue)
	a.fireAll(b, line, &outcome)
	return outcome
}

func (a *Ability) salvo(b *Board, origin *Target) Outcome {
	var outcome Outcome

	targets := []*Target{origin}
	for c := 1; c <= maxSalvoFollowUps; c++ {
		if !rollSuccess(b.rng, a.successRate/float64(c)) {
			continue
		}
		a.downtime++

		next := b.CalculateTarget(origin.coords, true)
		if next == nil {
			continue
		}
		targets = append(targets, next)
		origin = next
	}

	b.ann.cue(a.cue)
	a.fireAll(b, targets, &outcome)
	return outcome
}

// counterDetect runs on the destroyer's own board and marks a floating,
// unchecked submarine cell on the opposing board.
func (a *Ability) counterDetect(b *Board) Outcome {
	var outcome Outcome
	if a.vessel.Sunk() || b.owner == nil || b.owner.opponent == nil {
		return outcome
	}

	opp := b.owner.opponent.board
	subs := opp.Filter(huntableSubmarine)
	if len(subs) == 0 || !rollSuccess(b.rng, a.successRate) {
		return outcome
	}

	detected := choose(b.rng, subs)
	detected.Flash = true
	opp.detected = detected
	outcome.Detected = detected

	b.ann.cue(a.cue)
	b.ann.highlight(detected, HighlightDetected)
	b.ann.messages.SkillIntel = fmt.Sprintf("%s detected @ %s!", detected.vessel, detected)
	b.ann.messages.Result = "ACTIVE PING!"
	return outcome
}

// evade relocates a hit submarine and wipes every miss on its board.
// Only a human's submarine keeps its damage visible on the new cells.
func (a *Ability) evade(b *Board) Outcome {
	var outcome Outcome
	v := a.vessel

	if v.Sunk() {
		for _, t := range v.position {
			b.ann.highlight(t, HighlightHit)
		}
		return outcome
	}
	if !v.Deployed() || !rollSuccess(b.rng, a.successRate) {
		return outcome
	}

	origin, orientation := v.position[0].coords, v.orientation
	b.RemoveVessel(v.position[0])
	if err := b.PlaceRandom(v); err != nil {
		log.Printf("DEFECT: %v; restoring %s at %s\n", err, v, origin.Name())
		if err := b.PlaceVessel(v, origin, orientation); err != nil {
			log.Printf("DEFECT: %v\n", err)
		}
		return outcome
	}
	outcome.Relocated = true

	if b.owner != nil && !b.owner.IsComp() {
		for p := 0; p < v.damage; p++ {
			v.position[p].setResult(ResultHit)
		}
	}

	for _, t := range b.order {
		if t.result == ResultMiss {
			t.reset()
		}
	}

	b.ann.cue(a.cue)
	b.ann.messages.SkillIntel = "Dive! Dive! Launching countermeasures!"
	b.ann.messages.Result = "RADAR JAMMED!"
	return outcome
}

// depthCharge stacks a charge against a hidden submarine on b, then always
// fires a regular shot at target.
func (a *Ability) depthCharge(b *Board, target *Target) Outcome {
	var outcome Outcome

	if !a.vessel.Sunk() {
		subs := b.Filter(huntableSubmarine)
		if len(subs) > 0 {
			if a.stacks < maxDepthChargeStacks {
				a.stacks++
			}
			b.ann.messages.SkillIntel = fmt.Sprintf("Depth charges deployed. (Total: %d)", a.stacks)

			detected := choose(b.rng, subs)
			if rollSuccess(b.rng, float64(10*a.stacks)) {
				b.ann.cue(a.cue)
				a.fireAll(b, []*Target{detected}, &outcome)
				a.stacks--
				outcome.Detected = detected
				b.ann.messages.SkillIntel = fmt.Sprintf("Depth charge detonated @ %s!", detected)
			}
		}
	}

	outcome.Shots++
	if b.Fire(target, FireOptions{}) {
		outcome.Launched++
	}
	return outcome
}

func huntableSubmarine(t *Target) bool {
	return t.Occupied() && t.vessel.kind == VesselSubmarine && !t.vessel.Sunk() && !t.Checked()
}
