package engine

import (
	"sort"

	"github.com/cargostow/loadengine/internal/geometry"
	"github.com/cargostow/loadengine/internal/model"
)

// packCylindersValley is the optional honeycomb/valley-nesting
// strategy: all rotatable cylinders share a single depth band starting
// at the back wall margin, seated side by side along the width axis,
// but once the first row is full, subsequent
// circles rest in the valley between two circles of the row below
// rather than stacking directly on top of one, the way round stock
// naturally nests. Not used on the default orchestrator path.
//
// Nesting on its side is a rotation about X, so only instances with
// AllowedRotation.X true go through the valley; the rest keep their
// upright orientation via packCylindersUpright.
func packCylindersValley(container model.Dimensions, items []model.CargoItem, wallMargin, objectGap float64) (placed []placement, unplacedSummary map[string]int, usedDepth float64) {
	instances := expandCylinders(items)
	rotatable, upright := partitionByRotationX(instances)
	sort.SliceStable(rotatable, func(i, j int) bool {
		return rotatable[i].source.AxialLength() < rotatable[j].source.AxialLength()
	})

	unplacedSummary = map[string]int{}
	y := wallMargin
	var band []geometry.Circle2D

	for _, inst := range rotatable {
		diameter := inst.source.Diameter()
		length := inst.source.AxialLength()
		r := diameter / 2

		cx, cz, ok := nextValleySlot(container, band, r, wallMargin, objectGap)
		if !ok {
			unplacedSummary[inst.source.DisplayName]++
			continue
		}

		placed = append(placed, placement{
			source:   inst.source,
			position: model.Vector3{X: cx - r, Y: y, Z: cz - r},
			rotation: model.Vector3{X: halfPi},
			dims:     model.Dimensions{Width: diameter, Length: length, Height: diameter},
			layerID:  layerIDFor(cz - r),
		})
		band = append(band, geometry.Circle2D{X: cx, Z: cz, Radius: r})
	}

	uprightPlaced, uprightUnplaced := packCylindersUpright(container, upright, wallMargin, objectGap, placed)
	placed = append(placed, uprightPlaced...)
	for _, inst := range uprightUnplaced {
		unplacedSummary[inst.source.DisplayName]++
	}

	for _, p := range placed {
		if top := p.position.Y + p.dims.Length; top > usedDepth {
			usedDepth = top
		}
	}
	return placed, unplacedSummary, usedDepth
}

// nextValleySlot places a circle of radius r beside the rightmost
// circle already in the band at floor level, unless the floor is
// full, in which case it nests in the valley above the last two
// circles.
func nextValleySlot(container model.Dimensions, band []geometry.Circle2D, r, wallMargin, objectGap float64) (x, z float64, ok bool) {
	if len(band) == 0 {
		if 2*r > container.Width-2*wallMargin+epsilon {
			return 0, 0, false
		}
		return wallMargin + r, r, true
	}

	sort.Slice(band, func(i, j int) bool { return band[i].X < band[j].X })
	last := band[len(band)-1]
	floorX := last.X + last.Radius + objectGap + r
	floorFits := floorX+r <= container.Width-wallMargin+epsilon

	if floorFits {
		return floorX, r, true
	}

	if len(band) < 2 {
		return 0, 0, false
	}
	prev := band[len(band)-2]
	valley, valleyOK := geometry.ValleyPosition(prev, last, r)
	if !valleyOK || valley.Z+r > container.Height+epsilon {
		return 0, 0, false
	}
	return valley.X, valley.Z, true
}
