package engine

import (
	"fmt"

	"github.com/cargostow/loadengine/internal/model"
)

// ComparisonScenario names one set of orchestrator options to try.
type ComparisonScenario struct {
	Name    string
	Options Options
}

// ComparisonResult holds the packing result and summary statistics for
// a single scenario.
type ComparisonResult struct {
	Scenario      ComparisonScenario
	Result        model.PackingResult
	PlacedCount   int
	UnplacedCount int
	FillPercent   float64
}

// CompareScenarios runs Pack once per scenario against the same
// container and manifest, returning side-by-side results. Useful for
// what-if comparisons such as strip vs. valley cylinder packing, or
// the greedy vs. genetic box ordering.
func CompareScenarios(scenarios []ComparisonScenario, container model.Container, manifest []model.CargoItem) ([]ComparisonResult, error) {
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		result, err := Pack(container, manifest, scenario.Options)
		if err != nil {
			return nil, fmt.Errorf("scenario %q: %w", scenario.Name, err)
		}

		unplaced := 0
		for _, count := range result.UnplacedSummary {
			unplaced += count
		}

		results = append(results, ComparisonResult{
			Scenario:      scenario,
			Result:        result,
			PlacedCount:   len(result.Placed),
			UnplacedCount: unplaced,
			FillPercent:   VolumetricFill(container, result.Placed) * 100,
		})
	}

	return results, nil
}

// BuildDefaultScenarios generates the standard what-if set against a
// base option set: the default strategy plus each optional strategy
// flag flipped one at a time.
func BuildDefaultScenarios(base Options) []ComparisonScenario {
	scenarios := []ComparisonScenario{
		{Name: "Default", Options: base},
	}

	altCylinder := base
	if base.CylinderStrategy == CylinderStrip {
		altCylinder.CylinderStrategy = CylinderValley
		scenarios = append(scenarios, ComparisonScenario{Name: "Valley-nested cylinders", Options: altCylinder})
	} else {
		altCylinder.CylinderStrategy = CylinderStrip
		scenarios = append(scenarios, ComparisonScenario{Name: "Strip-packed cylinders", Options: altCylinder})
	}

	altPallets := base
	altPallets.PalletsUseBoxPacker = !base.PalletsUseBoxPacker
	if altPallets.PalletsUseBoxPacker {
		scenarios = append(scenarios, ComparisonScenario{Name: "Pallets via box packer", Options: altPallets})
	} else {
		scenarios = append(scenarios, ComparisonScenario{Name: "Pallets via floor optimizer", Options: altPallets})
	}

	altBoxes := base
	if base.BoxStrategy == BoxGreedy {
		altBoxes.BoxStrategy = BoxGenetic
		scenarios = append(scenarios, ComparisonScenario{Name: "Genetic box ordering", Options: altBoxes})
	} else {
		altBoxes.BoxStrategy = BoxGreedy
		scenarios = append(scenarios, ComparisonScenario{Name: "Greedy box ordering", Options: altBoxes})
	}

	return scenarios
}
