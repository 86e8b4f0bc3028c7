package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cargostow/loadengine/internal/model"
)

// drumItem returns a cylinder allowed to lay on its side (the strip
// packer's horizontal-Y orientation), since that's what most of these
// tests exercise.
func drumItem(id string, diameter, length float64, qty int) model.CargoItem {
	return model.CargoItem{
		StableID:        id,
		DisplayName:     id,
		Kind:            model.KindCylinder,
		Quantity:        qty,
		Dimensions:      model.Dimensions{Width: diameter, Length: diameter, Height: length},
		AllowedRotation: model.AllowedRotation{X: true},
	}
}

func TestGroupIntoStripsSeparatesDissimilarLengths(t *testing.T) {
	instances := []cylinderInstance{
		{source: drumItem("short", 30, 40, 1)},
		{source: drumItem("long", 30, 120, 1)},
	}

	strips := groupIntoStrips(instances)

	require.Len(t, strips, 2)
	assert.InDelta(t, 40.0, strips[0].maxLength, epsilon)
	assert.InDelta(t, 120.0, strips[1].maxLength, epsilon)
}

func TestGroupIntoStripsMergesSimilarLengths(t *testing.T) {
	instances := []cylinderInstance{
		{source: drumItem("a", 30, 100, 1)},
		{source: drumItem("b", 30, 110, 1)},
	}

	strips := groupIntoStrips(instances)

	require.Len(t, strips, 1)
	assert.Len(t, strips[0].instances, 2)
}

func TestPackCylindersStripSeatsDrumsSideBySide(t *testing.T) {
	placed, unplaced, usedDepth := packCylindersStrip(
		model.Dimensions{Width: 200, Length: 200, Height: 100},
		[]model.CargoItem{drumItem("drum", 40, 60, 4)},
		0, 0,
	)

	assert.Empty(t, unplaced)
	require.Len(t, placed, 4)
	assert.Greater(t, usedDepth, 0.0)
	for _, p := range placed {
		assert.InDelta(t, halfPi, p.rotation.X, epsilon)
	}
}

func TestPackCylindersStripReportsUnplacedWhenNoRoomRemains(t *testing.T) {
	_, unplaced, _ := packCylindersStrip(
		model.Dimensions{Width: 50, Length: 60, Height: 40},
		[]model.CargoItem{drumItem("drum", 40, 60, 3)},
		0, 0,
	)

	assert.Equal(t, 2, unplaced["drum"])
}

func TestLayerIDForBucketsByLayerHeight(t *testing.T) {
	assert.Equal(t, 0, *layerIDFor(0))
	assert.Equal(t, 0, *layerIDFor(49))
	assert.Equal(t, 1, *layerIDFor(50))
}
