package battleship

import (
	"fmt"
	"log"
	"slices"

	"github.com/hashicorp/go-multierror"
	cerr "github.com/saeidalz13/battleship-skirmish/internal/error"
)

// Sizes every fleet must carry, largest first.
var FleetSizes = []int{5, 4, 3, 3, 2}

// Random placement gives up after this many origins instead of spinning forever.
const maxPlacementAttempts = 1000

func (b *Board) placementTargets(origin Coordinates, size int, orientation Orientation) ([]*Target, error) {
	targets := make([]*Target, 0, size)
	for i := 0; i < size; i++ {
		c := NewCoordinates(origin.X+i, origin.Y)
		if orientation == OrientationVertical {
			c = NewCoordinates(origin.X, origin.Y+i)
		}

		t, err := b.Resolve(c)
		if err != nil {
			return nil, err
		}
		targets = append(targets, t)
	}
	return targets, nil
}

// PlaceVessel stamps v onto size cells starting at origin.
func (b *Board) PlaceVessel(v *Vessel, origin Coordinates, orientation Orientation) error {
	if v.Deployed() {
		return cerr.ErrVesselAlreadyDeployed(v.String())
	}

	targets, err := b.placementTargets(origin, v.size, orientation)
	if err != nil {
		log.Printf("insufficient space for %s at %s, reselect\n", v, origin.Name())
		return err
	}
	for _, t := range targets {
		if t.Occupied() {
			log.Printf("insufficient space for %s at %s, reselect\n", v, origin.Name())
			return cerr.ErrPlacementOverlap(v.String(), origin.Name())
		}
	}

	if err := v.deploy(targets); err != nil {
		return err
	}
	for _, t := range targets {
		t.vessel = v
		t.reset()
	}

	if len(v.position) != v.size {
		log.Printf("DEFECT: %s placement error (%s)\n", v, b)
		b.unstamp(v)
		return cerr.ErrInvariantViolation(fmt.Sprintf("%s occupies %d cells after deployment", v, len(v.position)))
	}
	return nil
}

// PlaceRandom deploys each vessel at a random origin. A blocked origin is
// retried once with the other orientation before a new origin is drawn.
func (b *Board) PlaceRandom(vessels ...*Vessel) error {
	for _, v := range vessels {
		orientation := OrientationHorizontal
		if b.rng.Intn(2) == 1 {
			orientation = OrientationVertical
		}

		placed := false
		for attempt := 0; attempt < maxPlacementAttempts && !placed; attempt++ {
			origin := b.SelectRandom().coords

			err := b.PlaceVessel(v, origin, orientation)
			if err != nil && !cerr.HasCode(err, cerr.CodeInvariantViolation) {
				orientation = orientation.Rotate()
				err = b.PlaceVessel(v, origin, orientation)
			}
			placed = err == nil
		}

		if !placed {
			return cerr.ErrInvariantViolation(fmt.Sprintf("no room for %s on %s", v, b))
		}
	}
	return nil
}

func (b *Board) unstamp(v *Vessel) {
	for _, t := range v.position {
		t.vessel = nil
		t.reset()
	}
	v.clearPosition()
}

// RemoveVessel lifts the vessel occupying t off the board, keeping its damage.
func (b *Board) RemoveVessel(t *Target) *Vessel {
	if t == nil || !t.Occupied() {
		return nil
	}

	v := t.vessel
	b.unstamp(v)
	log.Printf("removed %s's %s @ %s\n", v.owner, v, t)
	return v
}

// ClearVessels lifts every vessel and restores it for a fresh deployment.
func (b *Board) ClearVessels() {
	for _, t := range b.order {
		if t.vessel != nil {
			t.vessel.Redeploy()
			t.vessel.ability.Reset()
		}
		t.vessel = nil
	}
	log.Printf("all ships removed from %s\n", b)
}

// ValidateFleet reports every reason the fleet cannot enter play.
func ValidateFleet(fleet []*Vessel) error {
	var result *multierror.Error

	sizes := make([]int, 0, len(fleet))
	for _, v := range fleet {
		sizes = append(sizes, v.size)
	}
	slices.Sort(sizes)
	slices.Reverse(sizes)
	if !slices.Equal(sizes, FleetSizes) {
		result = multierror.Append(result, cerr.ErrFleetComposition(FleetSizes, sizes))
	}

	seen := make(map[Coordinates]*Vessel, GridSize*GridSize)
	for _, v := range fleet {
		if len(v.position) == 0 {
			result = multierror.Append(result, cerr.ErrPlacementSize(v.String(), v.size, 0))
			continue
		}
		if len(v.position) != v.size {
			result = multierror.Append(result, cerr.ErrInvariantViolation(
				fmt.Sprintf("%s occupies %d cells, size %d", v, len(v.position), v.size)))
		}

		for _, t := range v.position {
			if other, prs := seen[t.coords]; prs {
				result = multierror.Append(result, cerr.ErrPlacementOverlap(v.String()+" and "+other.String(), t.name))
			}
			seen[t.coords] = v

			if t.vessel != v {
				result = multierror.Append(result, cerr.ErrInvariantViolation(
					fmt.Sprintf("%s is not stamped with %s", t, v)))
			}
		}
	}

	return result.ErrorOrNil()
}
