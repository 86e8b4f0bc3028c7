package engine

import (
	"math"

	"github.com/cargostow/loadengine/internal/model"
)

// VolumetricFill returns the fraction (0-1) of the container's volume
// occupied by placed items, using each item's true geometric volume:
// w*l*h for boxes and pallets, and pi*r^2*h for cylinders (the
// effective dimensions of a placed cylinder are its AABB, so its true
// volume is computed from the source item's diameter and axial length
// rather than taken as a box volume).
func VolumetricFill(container model.Container, placed []model.PlacedItem) float64 {
	containerVol := container.Dimensions.Volume()
	if containerVol == 0 {
		return 0
	}

	var used float64
	for _, p := range placed {
		used += itemVolume(p)
	}
	return used / containerVol
}

func itemVolume(p model.PlacedItem) float64 {
	if p.Source.Kind == model.KindCylinder {
		r := p.Source.Diameter() / 2
		return math.Pi * r * r * p.Source.AxialLength()
	}
	return p.EffectiveDimensions.Volume()
}

// NameCount holds the placed and unplaced instance counts for one
// display name, as tallied by CountsByName for reporting.
type NameCount struct {
	DisplayName string
	Placed      int
	Unplaced    int
}

func CountsByName(manifest []model.CargoItem, result model.PackingResult) []NameCount {
	placedByName := map[string]int{}
	for _, p := range result.Placed {
		placedByName[p.Source.DisplayName]++
	}

	counts := make([]NameCount, 0, len(manifest))
	for _, item := range manifest {
		counts = append(counts, NameCount{
			DisplayName: item.DisplayName,
			Placed:      placedByName[item.DisplayName],
			Unplaced:    result.UnplacedSummary[item.DisplayName],
		})
	}
	return counts
}
