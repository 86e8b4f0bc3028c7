package engine

import (
	"math"

	"github.com/cargostow/loadengine/internal/model"
)

// Pack is the engine's single entry point. It validates the request,
// partitions the manifest by cargo kind, runs the cylinder packer
// first against the full container, then runs the pallet/box packers
// against the depth slice left over once cylinders are seated, and
// merges both results into one PackingResult.
//
// Cylinders go first because the strip packer's strips consume fixed
// depth bands that are awkward to fit around already-placed boxes,
// while the box wall-builder and pallet floor optimizer both treat
// "depth available" as a simple, resizable input.
func Pack(container model.Container, manifest []model.CargoItem, opts ...Options) (model.PackingResult, error) {
	options := Options{}
	if len(opts) > 0 {
		options = opts[0]
	}

	if err := validate(container, manifest); err != nil {
		return model.PackingResult{}, err
	}

	wallMargin := options.wallMargin()
	objectGap := options.objectMargin()

	var boxItems, palletItems, cylinderItems []model.CargoItem
	for _, item := range manifest {
		switch item.Kind {
		case model.KindBox:
			boxItems = append(boxItems, item)
		case model.KindPallet:
			palletItems = append(palletItems, item)
		case model.KindCylinder:
			cylinderItems = append(cylinderItems, item)
		default:
			return model.PackingResult{}, model.BadInputf("cargo item %q has unknown kind %q", item.StableID, item.Kind)
		}
	}

	var cylinderPlaced []placement
	unplaced := map[string]int{}
	usedDepth := 0.0

	if len(cylinderItems) > 0 {
		var cylUnplaced map[string]int
		switch options.CylinderStrategy {
		case CylinderValley:
			cylinderPlaced, cylUnplaced, usedDepth = packCylindersValley(container.Dimensions, cylinderItems, wallMargin, objectGap)
		default:
			cylinderPlaced, cylUnplaced, usedDepth = packCylindersStrip(container.Dimensions, cylinderItems, wallMargin, objectGap)
		}
		mergeCounts(unplaced, cylUnplaced)
	}

	remaining := container.Dimensions
	remaining.Length -= usedDepth
	if remaining.Length < 0 {
		remaining.Length = 0
	}

	var boxPlaced, palletPlaced []placement

	if len(palletItems) > 0 {
		var palUnplaced map[string]int
		if options.PalletsUseBoxPacker {
			var bpUnplaced []boxInstance
			palletPlaced, bpUnplaced = packBoxInstances(remaining, expandBoxes(palletItems), wallMargin, objectGap, options)
			palUnplaced = summarizeUnplaced(bpUnplaced)
		} else {
			palletPlaced, palUnplaced = packPallets(remaining, palletItems, wallMargin, objectGap)
		}
		mergeCounts(unplaced, palUnplaced)
	}

	if len(boxItems) > 0 {
		var bpUnplaced []boxInstance
		boxPlaced, bpUnplaced = packBoxInstances(remaining, expandBoxes(boxItems), wallMargin, objectGap, options)
		mergeCounts(unplaced, summarizeUnplaced(bpUnplaced))
	}

	translate(boxPlaced, usedDepth)
	translate(palletPlaced, usedDepth)

	all := make([]placement, 0, len(cylinderPlaced)+len(boxPlaced)+len(palletPlaced))
	all = append(all, cylinderPlaced...)
	all = append(all, boxPlaced...)
	all = append(all, palletPlaced...)

	result := model.PackingResult{UnplacedSummary: unplaced}
	for _, p := range all {
		result.Placed = append(result.Placed, model.PlacedItem{
			Source:              p.source,
			UniqueInstanceID:    model.NewInstanceID(p.source),
			Position:            p.position,
			Rotation:            p.rotation,
			EffectiveDimensions: p.dims,
			LayerID:             p.layerID,
		})
	}
	return result, nil
}

// packBoxInstances dispatches to the configured box-ordering strategy:
// the default greedy height-then-volume sort, or the genetic optimizer
// seeded by options.GeneticSeed for deterministic results.
func packBoxInstances(container model.Dimensions, instances []boxInstance, wallMargin, objectGap float64, options Options) (placed []placement, unplaced []boxInstance) {
	if options.BoxStrategy == BoxGenetic && len(instances) > 0 {
		vb := volumeBox{width: container.Width, length: container.Length, height: container.Height}
		config := scaledGeneticConfig(len(instances))
		opt := newGeneticBoxOptimizer(vb, instances, objectGap, wallMargin, config, options.geneticSeed())
		return opt.optimize()
	}
	bp := newBoxPacker(container, wallMargin)
	return bp.pack(instances, objectGap)
}

func translate(items []placement, depth float64) {
	for i := range items {
		items[i].position.Y += depth
	}
}

func summarizeUnplaced(instances []boxInstance) map[string]int {
	out := map[string]int{}
	for _, inst := range instances {
		out[inst.source.DisplayName]++
	}
	return out
}

func mergeCounts(dst, src map[string]int) {
	for k, v := range src {
		dst[k] += v
	}
}

func validate(container model.Container, manifest []model.CargoItem) error {
	d := container.Dimensions
	if !finitePositive(d.Width) || !finitePositive(d.Length) || !finitePositive(d.Height) {
		return model.BadInputf("container dimensions must be finite and positive, got %+v", d)
	}
	for _, item := range manifest {
		if item.Quantity < 1 {
			return model.BadInputf("cargo item %q has non-positive quantity %d", item.StableID, item.Quantity)
		}
		id := item.Dimensions
		if !finitePositive(id.Width) || !finitePositive(id.Length) || !finitePositive(id.Height) {
			return model.BadInputf("cargo item %q has non-finite or non-positive dimensions %+v", item.StableID, id)
		}
	}
	return nil
}

func finitePositive(v float64) bool {
	return v > 0 && !math.IsNaN(v) && !math.IsInf(v, 0)
}
