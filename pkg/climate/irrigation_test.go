package climate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agriloop/entities"
	"agriloop/pkg/apperr"
)

func base() IrrigationInput {
	return IrrigationInput{SoilMoisture: 50, TemperatureC: 25, Humidity: 60, RainfallMM: 0, CropName: "Wheat", AreaHectares: 1}
}

func TestRecommendHotDryField(t *testing.T) {
	adv, err := Recommend(IrrigationInput{SoilMoisture: 20, TemperatureC: 40, Humidity: 20, RainfallMM: 0, CropName: "Wheat", AreaHectares: 2})
	require.NoError(t, err)

	assert.Equal(t, entities.UrgencyHigh, adv.Urgency)
	assert.Equal(t, 1, adv.FrequencyDays)
	assert.ElementsMatch(t, []string{RiskHighTemperature, RiskCriticalMoist, RiskLowHumidity}, adv.RiskFlags)
	// 2 * 1000 * 0.8 * (4 + 4) * 1
	assert.InDelta(t, 12800, adv.VolumeLiters, 1e-6)
	assert.Equal(t, "Immediate irrigation needed for Wheat. Soil moisture critically low at 20%.", adv.Recommendation)
}

func TestRecommendTierBoundaries(t *testing.T) {
	tests := []struct {
		moisture  float64
		urgency   entities.Urgency
		frequency int
	}{
		{0, entities.UrgencyHigh, 1},
		{29.9, entities.UrgencyHigh, 1},
		{30, entities.UrgencyMedium, 2},
		{49, entities.UrgencyMedium, 2},
		{50, entities.UrgencyLow, 3},
		{69.99, entities.UrgencyLow, 3},
		{70, entities.UrgencyNone, 5},
		{100, entities.UrgencyNone, 5},
	}
	for _, tt := range tests {
		in := base()
		in.SoilMoisture = tt.moisture
		adv, err := Recommend(in)
		require.NoError(t, err)
		assert.Equal(t, tt.urgency, adv.Urgency, "moisture %v", tt.moisture)
		assert.Equal(t, tt.frequency, adv.FrequencyDays, "moisture %v", tt.moisture)
	}
}

func TestRecommendCriticalMoistureIgnoresWeather(t *testing.T) {
	for _, temp := range []float64{0, 20, 50} {
		for _, hum := range []float64{0, 50, 100} {
			in := base()
			in.SoilMoisture = 24.9
			in.TemperatureC = temp
			in.Humidity = hum
			adv, err := Recommend(in)
			require.NoError(t, err)
			assert.Contains(t, adv.RiskFlags, RiskCriticalMoist)
		}
	}

	in := base()
	in.SoilMoisture = 25
	adv, err := Recommend(in)
	require.NoError(t, err)
	assert.NotContains(t, adv.RiskFlags, RiskCriticalMoist)
}

func TestRecommendHeavyRainMeansNoWater(t *testing.T) {
	for _, rain := range []float64{50, 75, 500} {
		in := base()
		in.SoilMoisture = 5
		in.TemperatureC = 48
		in.Humidity = 5
		in.RainfallMM = rain
		in.AreaHectares = 40
		adv, err := Recommend(in)
		require.NoError(t, err)
		assert.Zero(t, adv.VolumeLiters, "rain %v", rain)
		assert.Equal(t, entities.UrgencyHigh, adv.Urgency)
	}
}

func TestRecommendIsDeterministic(t *testing.T) {
	in := base()
	in.SoilMoisture = 42
	a, err := Recommend(in)
	require.NoError(t, err)
	b, err := Recommend(in)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Empty(t, a.RiskFlags)
	assert.NotNil(t, a.RiskFlags)
}

func TestRecommendRejectsOutOfRange(t *testing.T) {
	tests := []struct {
		name string
		mut  func(*IrrigationInput)
	}{
		{"moisture high", func(in *IrrigationInput) { in.SoilMoisture = 101 }},
		{"moisture negative", func(in *IrrigationInput) { in.SoilMoisture = -1 }},
		{"temperature", func(in *IrrigationInput) { in.TemperatureC = 51 }},
		{"humidity", func(in *IrrigationInput) { in.Humidity = 120 }},
		{"rainfall", func(in *IrrigationInput) { in.RainfallMM = -3 }},
		{"area", func(in *IrrigationInput) { in.AreaHectares = 0 }},
		{"crop", func(in *IrrigationInput) { in.CropName = "  " }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := base()
			tt.mut(&in)
			_, err := Recommend(in)
			assert.ErrorIs(t, err, apperr.ErrValidation)
		})
	}
}
