package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cargostow/loadengine/internal/geometry"
	"github.com/cargostow/loadengine/internal/model"
)

// These tests exercise the concrete manifests walked through in the
// engine's scenario catalog: a full truck of boxes, a strip of
// horizontal drums, a pallet floor, a mixed load, an over-capacity
// manifest, and a rotation-restricted box.

func TestScenarioBoxesFillTheFloorOfATruck(t *testing.T) {
	container := model.Container{Dimensions: model.Dimensions{Width: 1360, Length: 240, Height: 260}}
	manifest := []model.CargoItem{boxItem("carton", 120, 80, 100, 10, true)}

	result, err := Pack(container, manifest)
	require.NoError(t, err)

	require.Len(t, result.Placed, 10)
	assert.Empty(t, result.UnplacedSummary)
	for _, p := range result.Placed {
		assert.InDelta(t, 0, p.Position.Z, geometry.Epsilon)
		assert.True(t, geometry.InsideContainer(p.Position, p.EffectiveDimensions, container))
	}
	assertNoPairwiseOverlap(t, result.Placed, 0)
}

func TestScenarioCylindersSeatSideBySideAlongWidth(t *testing.T) {
	container := model.Dimensions{Width: 1360, Length: 240, Height: 260}
	items := []model.CargoItem{drumItem("drum", 60, 200, 6)}
	items[0].AllowedRotation.X = true

	placed, unplaced, _ := packCylindersStrip(container, items, 0, 0)

	require.Empty(t, unplaced)
	require.Len(t, placed, 6)
	for i, p := range placed {
		assert.InDelta(t, float64(i)*60, p.position.X, geometry.Epsilon)
		assert.InDelta(t, 0, p.position.Y, geometry.Epsilon)
		assert.InDelta(t, 0, p.position.Z, geometry.Epsilon)
		assert.Equal(t, halfPi, p.rotation.X)
	}
}

func TestScenarioPalletsFillFloorWithGapRespected(t *testing.T) {
	container := model.Dimensions{Width: 600, Length: 400, Height: 300}
	items := []model.CargoItem{palletItem("euro", 80, 120, 15, 20, true)}

	placed, unplaced := packPallets(container, items, 0, 2)

	assert.GreaterOrEqual(t, len(placed), 20)
	assert.Empty(t, unplaced)

	for _, p := range placed {
		assert.InDelta(t, 0, p.position.Z, geometry.Epsilon)
		assert.True(t, geometry.InsideContainer(p.position, p.dims, model.Container{Dimensions: container}))
	}
	assertNoPairwiseOverlap(t, toPlacedItems(placed), 2)
}

func TestScenarioMixedCylindersThenBoxesOffsetByConsumedDepth(t *testing.T) {
	container := model.Container{Dimensions: model.Dimensions{Width: 400, Length: 800, Height: 300}}
	manifest := []model.CargoItem{
		drumItem("drum", 80, 300, 2),
		boxItem("crate", 100, 100, 100, 5, true),
	}
	manifest[0].AllowedRotation.X = true

	result, err := Pack(container, manifest)
	require.NoError(t, err)

	require.Empty(t, result.UnplacedSummary)
	require.Len(t, result.Placed, 7)

	var cylinderMaxY, boxMinY float64
	boxMinY = container.Dimensions.Length
	for _, p := range result.Placed {
		switch p.Source.Kind {
		case model.KindCylinder:
			if top := p.Position.Y + p.EffectiveDimensions.Length; top > cylinderMaxY {
				cylinderMaxY = top
			}
		case model.KindBox:
			if p.Position.Y < boxMinY {
				boxMinY = p.Position.Y
			}
		}
	}
	assert.LessOrEqual(t, cylinderMaxY, container.Dimensions.Length)
	assert.GreaterOrEqual(t, boxMinY, cylinderMaxY-geometry.Epsilon)
	assertNoPairwiseOverlap(t, result.Placed, 0)
}

func TestScenarioOverCapacityLeavesMostUnplaced(t *testing.T) {
	container := model.Container{Dimensions: model.Dimensions{Width: 100, Length: 100, Height: 100}}
	manifest := []model.CargoItem{boxItem("block", 60, 60, 60, 10, false)}

	result, err := Pack(container, manifest)
	require.NoError(t, err)

	assert.LessOrEqual(t, len(result.Placed), 1)
	assert.Equal(t, 10-len(result.Placed), result.UnplacedSummary["block"])
}

func TestScenarioRotationRestrictedBoxIsUnplaced(t *testing.T) {
	container := model.Container{Dimensions: model.Dimensions{Width: 100, Length: 100, Height: 60}}
	manifest := []model.CargoItem{boxItem("plank", 30, 120, 60, 1, false)}

	result, err := Pack(container, manifest)
	require.NoError(t, err)

	assert.Empty(t, result.Placed)
	assert.Equal(t, 1, result.UnplacedSummary["plank"])
}

// assertNoPairwiseOverlap checks every pair of placements is AABB-disjoint
// (beyond the given gap), the form P2 takes over a concrete manifest.
func assertNoPairwiseOverlap(t *testing.T, placed []model.PlacedItem, gap float64) {
	t.Helper()
	for i := range placed {
		for j := i + 1; j < len(placed); j++ {
			a, b := placed[i], placed[j]
			assert.False(t,
				geometry.AABBIntersect(a.Position, a.EffectiveDimensions, b.Position, b.EffectiveDimensions, gap),
				"placements %d and %d overlap", i, j)
		}
	}
}

func toPlacedItems(placed []placement) []model.PlacedItem {
	out := make([]model.PlacedItem, len(placed))
	for i, p := range placed {
		out[i] = model.PlacedItem{Source: p.source, Position: p.position, Rotation: p.rotation, EffectiveDimensions: p.dims}
	}
	return out
}
