package repository

import (
	"context"

	"agriloop/entities"
)

type FarmRepository interface {
	Create(ctx context.Context, f *entities.Farm) error
	FindByID(ctx context.Context, id uint) (*entities.Farm, error)
	ListByOwner(ctx context.Context, owner string) ([]entities.Farm, error)
	List(ctx context.Context) ([]entities.Farm, error)
	Delete(ctx context.Context, id uint) error
	DeleteByOwner(ctx context.Context, owner string) (int, error)
}

// CropFilter narrows ListCrops; zero fields match everything.
type CropFilter struct {
	Owner  string
	FarmID uint
	Status entities.CropStatus
}

type CropRepository interface {
	Create(ctx context.Context, c *entities.Crop) error
	FindByID(ctx context.Context, id uint) (*entities.Crop, error)
	List(ctx context.Context, f CropFilter) ([]entities.Crop, error)
	UpdateStatus(ctx context.Context, id uint, status entities.CropStatus) error
	DeleteByFarm(ctx context.Context, farmID uint) (int, error)
	DeleteByOwner(ctx context.Context, owner string) (int, error)
}
