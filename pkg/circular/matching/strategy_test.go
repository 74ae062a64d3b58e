package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agriloop/entities"
)

// Delhi-area partners in directory order.
var partners = []entities.Partner{
	{ID: 1, Name: "GreenCompost Co", CapacityKgPerDay: 5000, Latitude: 28.6139, Longitude: 77.2090},
	{ID: 2, Name: "BioGas Solutions", CapacityKgPerDay: 10000, Latitude: 28.7041, Longitude: 77.1025},
	{ID: 3, Name: "FoodBank Network", CapacityKgPerDay: 2000, Latitude: 28.5355, Longitude: 77.3910},
}

func TestFirstAvailable(t *testing.T) {
	req := entities.WasteRequest{QuantityKg: 100, Latitude: 28.54, Longitude: 77.39}
	p, ok := FirstAvailable{}.Pick(req, partners)
	require.True(t, ok)
	assert.Equal(t, uint(1), p.ID, "directory order wins even when another partner is closer")

	_, ok = FirstAvailable{}.Pick(req, nil)
	assert.False(t, ok)
}

func TestNearest(t *testing.T) {
	tests := []struct {
		name string
		req  entities.WasteRequest
		want uint
	}{
		{"next to the food bank", entities.WasteRequest{QuantityKg: 100, Latitude: 28.54, Longitude: 77.39}, 3},
		{"next to the biogas plant", entities.WasteRequest{QuantityKg: 100, Latitude: 28.70, Longitude: 77.10}, 2},
		{"food bank too small", entities.WasteRequest{QuantityKg: 3000, Latitude: 28.54, Longitude: 77.39}, 1},
		{"nobody is big enough", entities.WasteRequest{QuantityKg: 50000, Latitude: 28.54, Longitude: 77.39}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := Nearest{}.Pick(tt.req, partners)
			require.True(t, ok)
			assert.Equal(t, tt.want, p.ID)
		})
	}

	twins := []entities.Partner{
		{ID: 7, CapacityKgPerDay: 10, Latitude: 1, Longitude: 1},
		{ID: 8, CapacityKgPerDay: 10, Latitude: 1, Longitude: 1},
	}
	p, ok := Nearest{}.Pick(entities.WasteRequest{QuantityKg: 1}, twins)
	require.True(t, ok)
	assert.Equal(t, uint(7), p.ID)

	_, ok = Nearest{}.Pick(entities.WasteRequest{}, nil)
	assert.False(t, ok)
}

func TestDistanceKm(t *testing.T) {
	req := entities.WasteRequest{Latitude: 28.6139, Longitude: 77.2090}
	assert.InDelta(t, 0, DistanceKm(req, partners[0]), 1e-9)
	// GreenCompost to BioGas is roughly 15 km.
	assert.InDelta(t, 15, DistanceKm(req, partners[1]), 1.5)
}

func TestByName(t *testing.T) {
	for in, want := range map[string]string{"": NameFirstAvailable, "first": NameFirstAvailable, " Nearest ": NameNearest} {
		s, err := ByName(in)
		require.NoError(t, err)
		assert.Equal(t, want, s.Name())
	}
	_, err := ByName("cheapest")
	assert.Error(t, err)
}
