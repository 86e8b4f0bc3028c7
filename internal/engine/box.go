package engine

import (
	"sort"

	"github.com/cargostow/loadengine/internal/model"
)

// block3D is a free rectangular volume tracked by the box packer.
type block3D struct {
	x, y, z, w, l, h float64
}

// boxPacker implements the free-block "wall builder" from spec §4.4:
// a list of free 3D blocks, best-fit scoring that favors back-bottom-
// left placement, and a Top/Right/Front split rule after each
// placement.
type boxPacker struct {
	free   []block3D
	margin float64
}

func newBoxPacker(container model.Dimensions, wallMargin float64) *boxPacker {
	return &boxPacker{
		free: []block3D{{
			x: wallMargin, y: wallMargin, z: 0,
			w: container.Width - 2*wallMargin,
			l: container.Length - 2*wallMargin,
			h: container.Height - wallMargin,
		}},
		margin: wallMargin,
	}
}

// boxInstance is one expanded (quantity=1) instance of a box cargo item.
type boxInstance struct {
	source model.CargoItem
}

// expandBoxes expands quantities into individual instances.
func expandBoxes(items []model.CargoItem) []boxInstance {
	var out []boxInstance
	for _, it := range items {
		for i := 0; i < it.Quantity; i++ {
			out = append(out, boxInstance{source: it})
		}
	}
	return out
}

// sortBoxInstances orders instances descending by (height, volume):
// tallest first, ties broken by larger volume, biasing toward flatter
// top surfaces for later layers.
func sortBoxInstances(instances []boxInstance) {
	sort.SliceStable(instances, func(i, j int) bool {
		di, dj := instances[i].source.Dimensions, instances[j].source.Dimensions
		if di.Height != dj.Height {
			return di.Height > dj.Height
		}
		return di.Volume() > dj.Volume()
	})
}

type boxCandidate struct {
	blockIdx int
	w, l, h  float64
	rotated  bool
	score    float64
}

// pack places as many instances as possible, returning the placed
// items (position + rotation + effective dims, source/id left to the
// caller) and the instances that didn't fit.
func (bp *boxPacker) pack(instances []boxInstance, objectGap float64) (placed []placement, unplaced []boxInstance) {
	sortBoxInstances(instances)

	for _, inst := range instances {
		cand, ok := bp.bestCandidate(inst.source, objectGap)
		if !ok {
			unplaced = append(unplaced, inst)
			continue
		}

		blk := bp.free[cand.blockIdx]
		pos := model.Vector3{X: blk.x, Y: blk.y, Z: blk.z}

		bp.split(cand.blockIdx, cand.w, cand.l, cand.h)

		d := inst.source.Dimensions
		dims := model.Dimensions{Width: d.Width, Length: d.Length, Height: d.Height}
		rot := model.Vector3{}
		if cand.rotated {
			dims = d.Swapped()
			rot.Y = halfPi
		}
		placed = append(placed, placement{
			source:   inst.source,
			position: pos,
			rotation: rot,
			dims:     dims,
		})
	}
	return placed, unplaced
}

// bestCandidate scores every free block the item fits into (base
// orientation, and floor-rotated if allowed) and returns the block
// minimizing score = y*1e6 + z*1e3 + x (depth, then height, then
// width — pack back-bottom-left).
//
// The candidate's w/l clearances include objectGap (so split() carves
// out the gap along X and Y), but its h is the item's true height, both
// for the block-height fit check and for split(): the Top child starts
// exactly at the item's real top face, so nothing above it floats
// unsupported, and a Right/Front child (as tall as the item) still
// takes another item of the same height.
func (bp *boxPacker) bestCandidate(item model.CargoItem, objectGap float64) (boxCandidate, bool) {
	d := item.Dimensions
	wg, lg, h := d.Width+objectGap, d.Length+objectGap, d.Height

	best := boxCandidate{blockIdx: -1}
	consider := func(blockIdx int, w, l, h float64, rotated bool) {
		blk := bp.free[blockIdx]
		score := blk.y*1e6 + blk.z*1e3 + blk.x
		if best.blockIdx < 0 || score < best.score {
			best = boxCandidate{blockIdx: blockIdx, w: w, l: l, h: h, rotated: rotated, score: score}
		}
	}

	for i, blk := range bp.free {
		if wg <= blk.w+epsilon && lg <= blk.l+epsilon && h <= blk.h+epsilon {
			consider(i, wg, lg, h, false)
		}
		if item.AllowedRotation.Y && lg <= blk.w+epsilon && wg <= blk.l+epsilon && h <= blk.h+epsilon {
			consider(i, lg, wg, h, true)
		}
	}

	if best.blockIdx < 0 {
		return boxCandidate{}, false
	}
	return best, true
}

// split replaces the consumed block with up to three children: Top
// (full footprint above, preserving a full-area rafter for later
// layers), Right (full parent depth, letting narrow deep items use
// the remaining width), and Front (restricted to the used width, to
// avoid double-covering the Right region).
func (bp *boxPacker) split(index int, uw, ul, uh float64) {
	b := bp.free[index]
	bp.free[index] = bp.free[len(bp.free)-1]
	bp.free = bp.free[:len(bp.free)-1]

	top := block3D{x: b.x, y: b.y, z: b.z + uh, w: b.w, l: b.l, h: b.h - uh}
	right := block3D{x: b.x + uw, y: b.y, z: b.z, w: b.w - uw, l: b.l, h: uh}
	front := block3D{x: b.x, y: b.y + ul, z: b.z, w: uw, l: b.l - ul, h: uh}

	for _, child := range []block3D{top, right, front} {
		if child.w >= 1 && child.l >= 1 && child.h >= 1 {
			bp.free = append(bp.free, child)
		}
	}
}
