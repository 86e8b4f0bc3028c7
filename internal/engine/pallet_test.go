package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cargostow/loadengine/internal/model"
)

func palletItem(id string, w, l, h float64, qty int, rotateY bool) model.CargoItem {
	return model.CargoItem{
		StableID:        id,
		DisplayName:     id,
		Kind:            model.KindPallet,
		Quantity:        qty,
		Dimensions:      model.Dimensions{Width: w, Length: l, Height: h},
		AllowedRotation: model.AllowedRotation{Y: rotateY},
	}
}

func TestPackPalletsFitsFloorGrid(t *testing.T) {
	placed, unplaced := packPallets(model.Dimensions{Width: 240, Length: 240, Height: 200}, []model.CargoItem{
		palletItem("euro", 120, 80, 100, 6, true),
	}, 0, 0)

	assert.Empty(t, unplaced)
	require.Len(t, placed, 6)
	for _, p := range placed {
		assert.InDelta(t, 0.0, p.position.Z, epsilon)
	}
}

func TestPackPalletsReportsUnplacedWhenFloorIsFull(t *testing.T) {
	_, unplaced := packPallets(model.Dimensions{Width: 100, Length: 100, Height: 200}, []model.CargoItem{
		palletItem("euro", 120, 80, 100, 1, false),
	}, 0, 0)

	assert.Equal(t, 1, unplaced["euro"])
}
