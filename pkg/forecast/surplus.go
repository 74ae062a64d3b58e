package forecast

import (
	"agriloop/entities"
	"agriloop/pkg/apperr"
)

type Category string

const (
	CategoryHigh    Category = "high"
	CategoryMedium  Category = "medium"
	CategoryLow     Category = "low"
	CategoryMinimal Category = "minimal"
)

const (
	RecStorageOverflow = "Surplus exceeds storage - sell immediately"
	RecFoodBanks       = "Connect with food banks"
	RecProcessing      = "Consider processing"
	RecMarketplace     = "List on marketplace"
)

type SurplusPrediction struct {
	SurplusKg       float64          `json:"surplus_kg"`
	Percentage      float64          `json:"percentage"`
	Category        Category         `json:"category"`
	Urgency         entities.Urgency `json:"urgency"`
	Recommendations []string         `json:"recommendations"`
}

// PredictSurplus compares a predicted yield against demand and storage.
func PredictSurplus(yieldKg, demandKg, storageKg float64) (SurplusPrediction, error) {
	if yieldKg < 0 || demandKg < 0 || storageKg < 0 {
		return SurplusPrediction{}, apperr.Validation("yield, demand and storage must be >= 0")
	}

	surplus := max(0, yieldKg-demandKg)
	pct := 0.0
	if yieldKg > 0 {
		pct = surplus / yieldKg * 100
	}

	out := SurplusPrediction{SurplusKg: round2(surplus), Percentage: round2(pct), Recommendations: []string{}}
	switch {
	case pct > 30:
		out.Category, out.Urgency = CategoryHigh, entities.UrgencyHigh
	case pct > 15:
		out.Category, out.Urgency = CategoryMedium, entities.UrgencyMedium
	case pct > 5:
		out.Category, out.Urgency = CategoryLow, entities.UrgencyLow
	default:
		out.Category, out.Urgency = CategoryMinimal, entities.UrgencyNone
	}

	if surplus > storageKg {
		out.Recommendations = append(out.Recommendations, RecStorageOverflow)
	}
	if out.Category == CategoryHigh {
		out.Recommendations = append(out.Recommendations, RecFoodBanks, RecProcessing)
	}
	if out.Category == CategoryHigh || out.Category == CategoryMedium {
		out.Recommendations = append(out.Recommendations, RecMarketplace)
	}
	return out, nil
}
