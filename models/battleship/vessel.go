package battleship

import (
	"fmt"
	"log"

	cerr "github.com/saeidalz13/battleship-skirmish/internal/error"
)

type VesselKind uint8

const (
	VesselCarrier VesselKind = iota
	VesselCruiser
	VesselDestroyer
	VesselSubmarine
	VesselFrigate
)

// FleetKinds is the deployment order of every fleet.
var FleetKinds = []VesselKind{VesselCarrier, VesselCruiser, VesselDestroyer, VesselSubmarine, VesselFrigate}

func (k VesselKind) String() string {
	switch k {
	case VesselCarrier:
		return "Carrier"
	case VesselCruiser:
		return "Cruiser"
	case VesselDestroyer:
		return "Destroyer"
	case VesselSubmarine:
		return "Submarine"
	case VesselFrigate:
		return "Frigate"
	default:
		return "Unknown"
	}
}

func (k VesselKind) Size() int {
	switch k {
	case VesselCarrier:
		return 5
	case VesselCruiser:
		return 4
	case VesselDestroyer, VesselSubmarine:
		return 3
	case VesselFrigate:
		return 2
	default:
		return 0
	}
}

// hull prefix and hull number range
func (k VesselKind) hull() (string, int, int) {
	switch k {
	case VesselCarrier:
		return "CV", 85, 200
	case VesselCruiser:
		return "CG", 85, 200
	case VesselDestroyer:
		return "DD", 1100, 1500
	case VesselSubmarine:
		return "SS", 810, 1000
	default:
		return "FF", 85, 200
	}
}

type Orientation uint8

const (
	OrientationNone Orientation = iota
	OrientationVertical
	OrientationHorizontal
)

func (o Orientation) String() string {
	switch o {
	case OrientationVertical:
		return "VERTICAL"
	case OrientationHorizontal:
		return "HORIZONTAL"
	default:
		return "NONE"
	}
}

func (o Orientation) Rotate() Orientation {
	if o == OrientationVertical {
		return OrientationHorizontal
	}
	return OrientationVertical
}

// Vessel and Target reference each other without owning each other.
// The board stamps targets with the vessel; the vessel remembers its targets.
type Vessel struct {
	kind        VesselKind
	name        string
	size        int
	damage      int
	position    []*Target
	orientation Orientation
	owner       *Player
	ability     *Ability
}

func NewVessel(kind VesselKind, name string, owner *Player) *Vessel {
	v := &Vessel{
		kind:     kind,
		name:     name,
		size:     kind.Size(),
		position: make([]*Target, 0, kind.Size()),
		owner:    owner,
	}
	v.ability = newAbility(v)
	return v
}

func vesselName(kind VesselKind, owner *Player, rng RandomSource) string {
	prefix, low, high := kind.hull()
	initial := ""
	if owner != nil && owner.name != "" {
		initial = owner.name[:1]
	}
	return fmt.Sprintf("%s%s-%d", initial, prefix, low+rng.Intn(high-low+1))
}

func (v *Vessel) String() string {
	return fmt.Sprintf("%s (%s)", v.kind, v.name)
}

// deploy records the occupied targets. Orientation follows from the first two cells.
func (v *Vessel) deploy(position []*Target) error {
	if v.Sunk() {
		return cerr.ErrVesselSunk(v.String())
	}
	if len(position) != v.size {
		return cerr.ErrPlacementSize(v.String(), v.size, len(position))
	}

	v.position = append(v.position[:0], position...)
	if position[0].X() == position[1].X() {
		v.orientation = OrientationVertical
	} else {
		v.orientation = OrientationHorizontal
	}
	log.Printf("%s deployed to %v (align=%s)\n", v, position, v.orientation)
	return nil
}

// Hit increments damage until the vessel is sunk; further hits are ignored.
func (v *Vessel) Hit() {
	if !v.Sunk() {
		v.damage++
	}
}

// Redeploy resets damage and forgets the position.
func (v *Vessel) Redeploy() {
	v.damage = 0
	v.clearPosition()
}

func (v *Vessel) clearPosition() {
	v.position = v.position[:0]
	v.orientation = OrientationNone
}

func (v *Vessel) Sunk() bool {
	return v.damage == v.size
}

func (v *Vessel) Deployed() bool {
	return len(v.position) == v.size
}

func (v *Vessel) Kind() VesselKind {
	return v.kind
}

func (v *Vessel) Name() string {
	return v.name
}

func (v *Vessel) Size() int {
	return v.size
}

func (v *Vessel) Damage() int {
	return v.damage
}

// Position returns the occupied targets in placement order.
func (v *Vessel) Position() []*Target {
	return v.position
}

func (v *Vessel) Orientation() Orientation {
	return v.orientation
}

func (v *Vessel) Owner() *Player {
	return v.owner
}

func (v *Vessel) Ability() *Ability {
	return v.ability
}
