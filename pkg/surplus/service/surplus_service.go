package service

import (
	"context"
	"time"

	"agriloop/entities"
	"agriloop/pkg/forecast"
)

type PredictInput struct {
	CropID    uint    `json:"crop_id"`
	DemandKg  float64 `json:"demand_kg"`
	StorageKg float64 `json:"storage_kg"`
}

// Prediction is the yield estimate for a crop and the surplus it leaves.
type Prediction struct {
	CropID  uint    `json:"crop_id"`
	Crop    string  `json:"crop"`
	YieldKg float64 `json:"yield_kg"`
	forecast.SurplusPrediction
}

type ListingInput struct {
	CropID         uint
	QuantityKg     float64
	HarvestDate    time.Time
	UnitPrice      *float64
	IdempotencyKey string
}

type SurplusService interface {
	Predict(ctx context.Context, user string, in PredictInput) (*Prediction, error)
	CreateListing(ctx context.Context, user string, in ListingInput) (*entities.SurplusListing, error)
	Listings(ctx context.Context, user string) ([]entities.SurplusListing, error)
	UpdateListingStatus(ctx context.Context, user string, id uint, status entities.ListingStatus) (*entities.SurplusListing, error)
}

// Registry resolves the caller's crops and the farms they grow on.
type Registry interface {
	GetCrop(ctx context.Context, owner string, id uint) (*entities.Crop, error)
	GetFarm(ctx context.Context, owner string, id uint) (*entities.Farm, error)
}
