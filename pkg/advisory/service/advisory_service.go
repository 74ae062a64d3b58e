package service

import (
	"context"

	"agriloop/entities"
)

// RecommendInput carries the readings for one of the caller's crops.
type RecommendInput struct {
	CropID         uint    `json:"crop_id"`
	SoilMoisture   float64 `json:"soil_moisture"`
	TemperatureC   float64 `json:"temperature"`
	Humidity       float64 `json:"humidity"`
	RainfallMM     float64 `json:"rainfall"`
	IdempotencyKey string  `json:"-"`
}

type AdvisoryService interface {
	// Recommend runs the irrigation engine for the crop and records the result.
	// A repeated non-empty IdempotencyKey returns the first record unchanged.
	Recommend(ctx context.Context, user string, in RecommendInput) (*entities.Advisory, error)
	History(ctx context.Context, user string, limit int) ([]entities.Advisory, error)
	Count(ctx context.Context) (int, error)
}

// CropLookup finds a crop owned by user.
type CropLookup interface {
	GetCrop(ctx context.Context, owner string, id uint) (*entities.Crop, error)
}
