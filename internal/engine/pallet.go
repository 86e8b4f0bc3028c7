package engine

import (
	"sort"

	"github.com/cargostow/loadengine/internal/model"
)

// packPallets lays pallets out on the container floor using the
// guillotine rectangle packer: each pallet occupies its own full
// footprint from floor to its own height, stacked only to a single
// layer (pallets do not stack on each other).
func packPallets(container model.Dimensions, items []model.CargoItem, wallMargin, objectGap float64) (placed []placement, unplacedSummary map[string]int) {
	floorW := container.Width - 2*wallMargin
	floorL := container.Length - 2*wallMargin
	g := newGuillotine2D(floorW, floorL)

	instances := expandBoxes(items)
	sort.SliceStable(instances, func(i, j int) bool {
		di, dj := instances[i].source.Dimensions, instances[j].source.Dimensions
		return di.Width*di.Length > dj.Width*dj.Length
	})

	unplacedSummary = map[string]int{}
	for _, inst := range instances {
		d := inst.source.Dimensions
		wg, lg := d.Width+objectGap, d.Length+objectGap

		fit, rotated, ok := findPalletFit(g, wg, lg, inst.source.AllowedRotation.Y)
		if !ok {
			unplacedSummary[inst.source.DisplayName]++
			continue
		}

		usedW, usedL := wg, lg
		if rotated {
			usedW, usedL = lg, wg
		}
		g.split(fit.index, usedW, usedL)

		dims := d
		rotation := model.Vector3{}
		if rotated {
			dims = d.Swapped()
			rotation.Y = halfPi
		}

		placed = append(placed, placement{
			source:   inst.source,
			position: model.Vector3{X: fit.x + wallMargin + objectGap/2, Y: fit.y + wallMargin + objectGap/2, Z: 0},
			rotation: rotation,
			dims:     dims,
		})
	}
	return placed, unplacedSummary
}

// findPalletFit tries the base footprint first; only if that fails,
// and rotation is allowed, does it try the 90-degree rotated footprint.
// Rotation is a fallback, never a competing choice.
func findPalletFit(g *guillotine2D, w, l float64, allowRotate bool) (fit2D, bool, bool) {
	if baseFit, ok := g.findPosition(w, l); ok {
		return baseFit, false, true
	}
	if allowRotate {
		if rotFit, ok := g.findPosition(l, w); ok {
			return rotFit, true, true
		}
	}
	return fit2D{}, false, false
}
