package engine

import (
	"math"
	"sort"

	"github.com/cargostow/loadengine/internal/geometry"
	"github.com/cargostow/loadengine/internal/model"
)

// cylinderInstance is one expanded (quantity=1) instance of a
// cylinder cargo item.
type cylinderInstance struct {
	source model.CargoItem
}

func expandCylinders(items []model.CargoItem) []cylinderInstance {
	var out []cylinderInstance
	for _, it := range items {
		for i := 0; i < it.Quantity; i++ {
			out = append(out, cylinderInstance{source: it})
		}
	}
	return out
}

// strip is a group of cylinder instances whose lengths are within
// stripLengthDelta of each other, packed along one depth band.
type strip struct {
	instances []cylinderInstance
	maxLength float64
}

const stripLengthDelta = 25.0

// groupIntoStrips buckets instances by length proximity: instances are
// taken in ascending length order, and a new strip starts whenever an
// instance's length exceeds the length of the running group's first
// (shortest) member by more than stripLengthDelta.
func groupIntoStrips(instances []cylinderInstance) []strip {
	sorted := append([]cylinderInstance(nil), instances...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].source.AxialLength() < sorted[j].source.AxialLength()
	})

	var strips []strip
	for _, inst := range sorted {
		length := inst.source.AxialLength()
		if len(strips) == 0 || length > strips[len(strips)-1].instances[0].source.AxialLength()+stripLengthDelta {
			strips = append(strips, strip{maxLength: length})
		}
		last := &strips[len(strips)-1]
		last.instances = append(last.instances, inst)
		if length > last.maxLength {
			last.maxLength = length
		}
	}

	sort.SliceStable(strips, func(i, j int) bool { return strips[i].maxLength < strips[j].maxLength })
	return strips
}

// packCylindersStrip implements the default strip-based cylinder
// packer: strips are laid out one per depth band (sorted by ascending
// max length), each strip packed diameter-descending along the
// container's width at candidate z-levels, and a general-position
// fallback search runs for any instance a strip couldn't seat.
//
// Laying a cylinder on its side swaps its axis from Z to Y, a rotation
// about X — so only instances with AllowedRotation.X true are eligible
// for the strip/fallback search. Instances that forbid it keep their
// original vertical orientation (circular footprint in XY, axial
// length along Z) and are seated by packCylindersUpright instead.
func packCylindersStrip(container model.Dimensions, items []model.CargoItem, wallMargin, objectGap float64) (placed []placement, unplacedSummary map[string]int, usedDepth float64) {
	instances := expandCylinders(items)
	rotatable, upright := partitionByRotationX(instances)
	strips := groupIntoStrips(rotatable)

	unplacedSummary = map[string]int{}
	depthCursor := wallMargin
	var deferred []cylinderInstance

	for _, s := range strips {
		sort.SliceStable(s.instances, func(i, j int) bool {
			return s.instances[i].source.Dimensions.Width > s.instances[j].source.Dimensions.Width
		})

		stripPlaced, stripDeferred := packStrip(container, s, wallMargin, objectGap, depthCursor, placed)
		placed = append(placed, stripPlaced...)
		deferred = append(deferred, stripDeferred...)

		if len(stripPlaced) > 0 {
			depthCursor += s.maxLength + objectGap
		}
	}

	fallbackPlaced, stillUnplaced := packCylinderFallback(container, deferred, wallMargin, objectGap, placed)
	placed = append(placed, fallbackPlaced...)

	uprightPlaced, uprightUnplaced := packCylindersUpright(container, upright, wallMargin, objectGap, placed)
	placed = append(placed, uprightPlaced...)

	for _, inst := range stillUnplaced {
		unplacedSummary[inst.source.DisplayName]++
	}
	for _, inst := range uprightUnplaced {
		unplacedSummary[inst.source.DisplayName]++
	}

	if len(placed) > 0 {
		maxY := 0.0
		for _, p := range placed {
			if top := p.position.Y + p.dims.Length; top > maxY {
				maxY = top
			}
		}
		usedDepth = maxY
	}
	return placed, unplacedSummary, usedDepth
}

// partitionByRotationX splits instances into those allowed to rotate
// onto their side (eligible for horizontal-Y placement) and those
// that must stay in their original vertical orientation.
func partitionByRotationX(instances []cylinderInstance) (rotatable, upright []cylinderInstance) {
	for _, inst := range instances {
		if inst.source.AllowedRotation.X {
			rotatable = append(rotatable, inst)
		} else {
			upright = append(upright, inst)
		}
	}
	return rotatable, upright
}

// packCylindersUpright seats cylinders that keep their original
// vertical orientation (no rotation): circular footprint diameter x
// diameter in XY, axial length standing along Z, rotation the zero
// vector. Uses the same general-position scan as the horizontal
// fallback, against whatever has already been placed.
func packCylindersUpright(container model.Dimensions, instances []cylinderInstance, wallMargin, objectGap float64, existing []placement) (placed []placement, unplaced []cylinderInstance) {
	const step = 1.0
	all := append([]placement(nil), existing...)

	for _, inst := range instances {
		diameter := inst.source.Diameter()
		height := inst.source.AxialLength()
		levels := candidateZLevels(all)

		found := false
		for _, z := range levels {
			if z+height > container.Height+epsilon {
				continue
			}
			for y := wallMargin; y+diameter <= container.Length-wallMargin+epsilon && !found; y += step {
				for x := wallMargin; x+diameter <= container.Width-wallMargin+epsilon; x += step {
					pos := model.Vector3{X: x, Y: y, Z: z}
					dims := model.Dimensions{Width: diameter, Length: diameter, Height: height}

					collides := false
					for _, other := range all {
						if geometry.AABBIntersect(pos, dims, other.position, other.dims, objectGap) {
							collides = true
							break
						}
					}
					if collides {
						continue
					}
					if z > epsilon && !isSupported(pos, dims, all) {
						continue
					}

					p := placement{
						source:   inst.source,
						position: pos,
						dims:     dims,
						layerID:  layerIDFor(z),
					}
					placed = append(placed, p)
					all = append(all, p)
					found = true
					break
				}
			}
			if found {
				break
			}
		}
		if !found {
			unplaced = append(unplaced, inst)
		}
	}
	return placed, unplaced
}

// candidateZLevels returns {0} union the top Z of every placement
// passed in (the AABBs of the cylinders already seated): the resting
// heights a cylinder is allowed to settle onto.
func candidateZLevels(existing []placement) []float64 {
	levels := []float64{0}
	seen := map[float64]bool{0: true}
	for _, p := range existing {
		top := p.position.Z + p.dims.Height
		if !seen[top] {
			seen[top] = true
			levels = append(levels, top)
		}
	}
	sort.Float64s(levels)
	return levels
}

// packStrip places the strip's instances side by side along the
// container width, cylinder axis along Y (rotation (pi/2,0,0)), at
// the lowest candidate z-level that supports each one. A strip whose
// depth band would run past the container's back wall defers all of
// its instances.
func packStrip(container model.Dimensions, s strip, wallMargin, objectGap, y float64, existing []placement) (placed []placement, deferred []cylinderInstance) {
	if y+s.maxLength > container.Length-wallMargin+epsilon {
		return nil, append(deferred, s.instances...)
	}
	x := wallMargin
	for _, inst := range s.instances {
		diameter := inst.source.Diameter()

		if x+diameter > container.Width-wallMargin+epsilon {
			deferred = append(deferred, inst)
			continue
		}

		z, ok := restingZ(container, existing, placed, x, y, diameter, s.maxLength, objectGap)
		if !ok {
			deferred = append(deferred, inst)
			continue
		}

		placed = append(placed, placement{
			source:   inst.source,
			position: model.Vector3{X: x, Y: y, Z: z},
			rotation: model.Vector3{X: halfPi},
			dims:     model.Dimensions{Width: diameter, Length: s.maxLength, Height: diameter},
			layerID:  layerIDFor(z),
		})
		x += diameter + objectGap
	}
	return placed, deferred
}

// restingZ finds the lowest candidate z-level at which a cylinder
// footprint neither collides with anything already placed nor floats
// unsupported above a gap.
func restingZ(container model.Dimensions, existing, stripSoFar []placement, x, y, diameter, length, objectGap float64) (float64, bool) {
	all := append(append([]placement(nil), existing...), stripSoFar...)
	levels := candidateZLevels(all)

	pos := model.Vector3{X: x, Y: y}
	dims := model.Dimensions{Width: diameter, Length: length, Height: diameter}

	for _, z := range levels {
		pos.Z = z
		if z+diameter > container.Height+epsilon {
			continue
		}
		collides := false
		for _, other := range all {
			if geometry.AABBIntersect(pos, dims, other.position, other.dims, objectGap) {
				collides = true
				break
			}
		}
		if collides {
			continue
		}
		if z > epsilon && !isSupported(pos, dims, all) {
			continue
		}
		return z, true
	}
	return 0, false
}

// isSupported requires some placed object's top face to coincide with
// this object's bottom within tolerance, with nonzero footprint
// overlap (spec's AABB top-equality support rule).
func isSupported(pos model.Vector3, dims model.Dimensions, existing []placement) bool {
	for _, other := range existing {
		top := other.position.Z + other.dims.Height
		if math.Abs(top-pos.Z) > geometry.Epsilon {
			continue
		}
		if geometry.FootprintOverlapArea(pos, dims, other.position, other.dims) > geometry.Epsilon {
			return true
		}
	}
	return false
}

// packCylinderFallback attempts a general-position placement (not
// confined to a strip band) for instances a strip couldn't seat:
// a 1cm scan across x, y, and candidate z-levels.
func packCylinderFallback(container model.Dimensions, deferred []cylinderInstance, wallMargin, objectGap float64, existing []placement) (placed []placement, unplaced []cylinderInstance) {
	const step = 1.0
	all := append([]placement(nil), existing...)

	for _, inst := range deferred {
		diameter := inst.source.Diameter()
		length := inst.source.AxialLength()
		levels := candidateZLevels(all)

		found := false
		for _, z := range levels {
			if z+diameter > container.Height+epsilon {
				continue
			}
			for y := wallMargin; y+length <= container.Length-wallMargin+epsilon && !found; y += step {
				for x := wallMargin; x+diameter <= container.Width-wallMargin+epsilon; x += step {
					pos := model.Vector3{X: x, Y: y, Z: z}
					dims := model.Dimensions{Width: diameter, Length: length, Height: diameter}

					collides := false
					for _, other := range all {
						if geometry.AABBIntersect(pos, dims, other.position, other.dims, objectGap) {
							collides = true
							break
						}
					}
					if collides {
						continue
					}
					if z > epsilon && !isSupported(pos, dims, all) {
						continue
					}

					p := placement{
						source:   inst.source,
						position: pos,
						rotation: model.Vector3{X: halfPi},
						dims:     dims,
						layerID:  layerIDFor(z),
					}
					placed = append(placed, p)
					all = append(all, p)
					found = true
					break
				}
			}
			if found {
				break
			}
		}
		if !found {
			unplaced = append(unplaced, inst)
		}
	}
	return placed, unplaced
}

const layerHeight = 50.0

func layerIDFor(z float64) *int {
	id := int(math.Floor(z / layerHeight))
	return &id
}
