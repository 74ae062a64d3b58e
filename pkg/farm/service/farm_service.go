package service

import (
	"context"
	"time"

	"agriloop/entities"
)

type FarmInput struct {
	Name         string  `json:"name"`
	AreaHectares float64 `json:"area_hectares"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	Address      string  `json:"address"`
	SoilType     string  `json:"soil_type"`
}

type CropInput struct {
	Name         string    `json:"crop_name"`
	AreaHectares float64   `json:"area_hectares"`
	PlantingDate time.Time `json:"planting_date"`
	HarvestDate  time.Time `json:"expected_harvest_date"`
}

// FarmService is the farm and crop registry. Every list it returns is a
// snapshot the caller may modify freely.
type FarmService interface {
	AddFarm(ctx context.Context, owner string, in FarmInput) (*entities.Farm, error)
	RemoveFarm(ctx context.Context, actor entities.Principal, id uint) error
	AddCrop(ctx context.Context, owner string, farmID uint, in CropInput) (*entities.Crop, error)
	UpdateCropStatus(ctx context.Context, owner string, cropID uint, status entities.CropStatus) (*entities.Crop, error)

	GetFarm(ctx context.Context, owner string, id uint) (*entities.Farm, error)
	GetCrop(ctx context.Context, owner string, id uint) (*entities.Crop, error)
	FarmsByOwner(ctx context.Context, owner string) ([]entities.Farm, error)
	CropsByOwner(ctx context.Context, owner string) ([]entities.Crop, error)
	ActiveCropsByOwner(ctx context.Context, owner string) ([]entities.Crop, error)
	CropsByFarm(ctx context.Context, owner string, farmID uint) ([]entities.Crop, error)
	AllFarms(ctx context.Context, actor entities.Principal) ([]entities.Farm, error)
	CountCrops(ctx context.Context) (int, error)

	// RemoveByOwner deletes every farm and crop owned by owner.
	RemoveByOwner(ctx context.Context, owner string) (farms, crops int, err error)
}
