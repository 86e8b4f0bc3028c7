// Package engine implements the geometric and combinatorial placement
// subsystem: a free-volume box packer, a strip-based cylinder packer,
// a 2D floor packer for pallets, and an orchestrator that composes
// them over spatially disjoint regions of the container.
//
// The engine is purely functional: Pack takes a Container and a
// manifest and returns a PackingResult with no hidden state retained
// between calls.
package engine

import (
	"math"

	"github.com/cargostow/loadengine/internal/geometry"
	"github.com/cargostow/loadengine/internal/model"
)

const epsilon = geometry.Epsilon

// halfPi is a quarter-turn, used for axis-swap rotations recorded on
// placements (radians, matching model.PlacedItem.Rotation's unit).
const halfPi = math.Pi / 2

// placement is the engine's internal representation of a single
// instance before it is minted into a model.PlacedItem by the
// orchestrator (which assigns UniqueInstanceID and an optional
// LayerID).
type placement struct {
	source   model.CargoItem
	position model.Vector3
	rotation model.Vector3
	dims     model.Dimensions
	layerID  *int
}

// Options configures the orchestrator's behavior. The zero value
// selects the default, spec-mandated strategies.
type Options struct {
	// WallMargin is the clearance kept from container walls.
	WallMargin float64
	// ObjectMargin is the clearance kept between placed objects.
	ObjectMargin float64
	// CylinderStrategy selects which cylinder-packing algorithm runs
	// on the active path. Defaults to CylinderStrip.
	CylinderStrategy CylinderStrategy
	// PalletsUseBoxPacker routes pallets through the 3D box
	// wall-builder instead of the dedicated guillotine-backed floor
	// optimizer. Defaults to false (guillotine floor optimizer).
	PalletsUseBoxPacker bool
	// BoxStrategy selects which ordering search seats box instances.
	// Defaults to BoxGreedy.
	BoxStrategy BoxStrategy
	// GeneticSeed seeds the genetic box optimizer's RNG when
	// BoxStrategy is BoxGenetic. Fixed by default so Pack stays
	// deterministic across identical calls; defaults to 1 when zero.
	GeneticSeed int64
}

// BoxStrategy selects the search used to order box instances before
// they're fed to the free-block packer.
type BoxStrategy int

const (
	// BoxGreedy sorts instances descending by (height, volume), the
	// default strategy described in spec §4.4.
	BoxGreedy BoxStrategy = iota
	// BoxGenetic searches instance orderings with a genetic algorithm,
	// seeded with the greedy ordering so it never does worse.
	BoxGenetic
)

func (o Options) geneticSeed() int64 {
	if o.GeneticSeed != 0 {
		return o.GeneticSeed
	}
	return 1
}

// CylinderStrategy selects the cylinder-packing algorithm.
type CylinderStrategy int

const (
	// CylinderStrip is the strip-based packer described in spec §4.5.
	// It is the only strategy exercised by the default orchestrator
	// path.
	CylinderStrip CylinderStrategy = iota
	// CylinderValley is the honeycomb/valley-nesting strategy,
	// preserved as an optional strategy but not used on the active
	// path.
	CylinderValley
)

func (o Options) wallMargin() float64 {
	if o.WallMargin > 0 {
		return o.WallMargin
	}
	return geometry.WallMargin
}

func (o Options) objectMargin() float64 {
	if o.ObjectMargin > 0 {
		return o.ObjectMargin
	}
	return geometry.ObjectMargin
}
