package climate

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"agriloop/entities"
	"agriloop/pkg/apperr"
)

// Risk flags raised by Recommend.
const (
	RiskHighTemperature = "high temperature stress"
	RiskCriticalMoist   = "critical moisture deficit"
	RiskLowHumidity     = "low humidity"
)

// IrrigationInput are the field readings for one crop.
type IrrigationInput struct {
	SoilMoisture float64 `json:"soil_moisture"` // %
	TemperatureC float64 `json:"temperature_c"`
	Humidity     float64 `json:"humidity"`    // %
	RainfallMM   float64 `json:"rainfall_mm"` // last 7 days
	CropName     string  `json:"crop_name"`
	AreaHectares float64 `json:"area_hectares"`
}

type IrrigationAdvice struct {
	Recommendation string           `json:"recommendation"`
	VolumeLiters   float64          `json:"volume_liters"`
	FrequencyDays  int              `json:"frequency_days"`
	Urgency        entities.Urgency `json:"urgency"`
	RiskFlags      []string         `json:"risk_flags"`
}

type tier struct {
	below     float64
	frequency int
	urgency   entities.Urgency
	text      string
}

// Soil moisture tiers, checked in order; the bounds are exclusive.
var tiers = []tier{
	{30, 1, entities.UrgencyHigh, "Immediate irrigation needed for %s. Soil moisture critically low at %s%%."},
	{50, 2, entities.UrgencyMedium, "Schedule irrigation within 24-48 hours for %s. Moisture: %s%%."},
	{70, 3, entities.UrgencyLow, "Monitor %s. Irrigation may be needed in 2-3 days. Moisture: %s%%."},
}

var saturated = tier{math.Inf(1), 5, entities.UrgencyNone, "No immediate irrigation needed for %s. Moisture adequate at %s%%."}

// Recommend computes the irrigation advice for the readings. It has no side
// effects; logging the advice is up to the caller.
func Recommend(in IrrigationInput) (IrrigationAdvice, error) {
	if err := in.validate(); err != nil {
		return IrrigationAdvice{}, err
	}

	waterStress := math.Max(0, (100-in.SoilMoisture)/100)
	evaporation := in.TemperatureC*0.1 + (100-in.Humidity)*0.05
	rainFactor := math.Max(0, 1-in.RainfallMM/50)
	volume := math.Max(0, in.AreaHectares*1000*waterStress*evaporation*rainFactor)

	t := saturated
	for _, cand := range tiers {
		if in.SoilMoisture < cand.below {
			t = cand
			break
		}
	}

	risks := []string{}
	if in.TemperatureC > 35 {
		risks = append(risks, RiskHighTemperature)
	}
	if in.SoilMoisture < 25 {
		risks = append(risks, RiskCriticalMoist)
	}
	if in.Humidity < 30 {
		risks = append(risks, RiskLowHumidity)
	}

	moist := strconv.FormatFloat(in.SoilMoisture, 'f', -1, 64)
	return IrrigationAdvice{
		Recommendation: fmt.Sprintf(t.text, strings.TrimSpace(in.CropName), moist),
		VolumeLiters:   volume,
		FrequencyDays:  t.frequency,
		Urgency:        t.urgency,
		RiskFlags:      risks,
	}, nil
}

func (in IrrigationInput) validate() error {
	switch {
	case strings.TrimSpace(in.CropName) == "":
		return apperr.Validation("crop name is required")
	case in.SoilMoisture < 0 || in.SoilMoisture > 100:
		return apperr.Validation("soil moisture must be within [0, 100], got %v", in.SoilMoisture)
	case in.TemperatureC < 0 || in.TemperatureC > 50:
		return apperr.Validation("temperature must be within [0, 50], got %v", in.TemperatureC)
	case in.Humidity < 0 || in.Humidity > 100:
		return apperr.Validation("humidity must be within [0, 100], got %v", in.Humidity)
	case in.RainfallMM < 0:
		return apperr.Validation("rainfall must be >= 0, got %v", in.RainfallMM)
	case in.AreaHectares <= 0:
		return apperr.Validation("area must be > 0, got %v", in.AreaHectares)
	}
	return nil
}
