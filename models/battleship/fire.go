package battleship

import (
	"fmt"
	"log"
	"strings"
)

// FireOptions distinguishes who shoots and how. Level above human marks a
// computer shot, which may pick its own target and keeps hunt bookkeeping.
// Secondary shots belong to an area effect and skip the launch cue.
type FireOptions struct {
	Level     Difficulty
	Secondary bool
}

// Fire attacks target on b and reports whether board state changed.
// A nil target is chosen by the AI for computer shots and is a no-op otherwise.
func (b *Board) Fire(target *Target, opts FireOptions) bool {
	comp := opts.Level != DifficultyHuman
	if target == nil && comp {
		target = b.CompTarget(opts.Level)
	}
	if target == nil {
		return false
	}

	if target.Checked() {
		log.Printf("target checked (%s @ %s)\n", target.result, target)
		// a stale detection would otherwise be retried forever
		if target == b.detected {
			b.detected = nil
		}
		return false
	}

	if !opts.Secondary {
		b.ann.cue(CueLaunch)
	}

	vessel := target.vessel
	if !target.attack() {
		b.reportMiss(target)
		return true
	}

	b.ann.cue(CueHit)
	TriggerPassive(vessel, b)

	if comp {
		if target == b.detected {
			b.detected = nil
		}
		b.targetLocked = true
	}

	if vessel.Sunk() {
		b.ann.cue(CueSink)
		vessel.ability.disableReady()
		b.targetLocked = false
		// countermeasures may have moved the hull after some cells were marked
		for _, t := range vessel.position {
			t.setResult(ResultHit)
			b.ann.highlight(t, HighlightReveal)
		}
		b.ann.messages.TargetIntel = fmt.Sprintf("%s SUNK!", vessel)
	} else {
		b.ann.messages.TargetIntel = fmt.Sprintf("%s HIT @ %s...", vessel, target)
	}
	return true
}

// hit and sunk reports take priority over a miss within the same action
func (b *Board) reportMiss(target *Target) {
	intel := b.ann.messages.TargetIntel
	if !strings.Contains(intel, "HIT") && !strings.Contains(intel, "SUNK") {
		b.ann.messages.TargetIntel = fmt.Sprintf("MISS @ %s...", target)
	}
}
