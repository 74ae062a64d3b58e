package repository

import (
	"context"

	"agriloop/entities"
)

type ListingRepository interface {
	Create(ctx context.Context, l *entities.SurplusListing) error
	FindByID(ctx context.Context, id uint) (*entities.SurplusListing, error)
	FindByKey(ctx context.Context, user, key string) (*entities.SurplusListing, error)
	// ListByUser returns newest first.
	ListByUser(ctx context.Context, user string) ([]entities.SurplusListing, error)
	UpdateStatus(ctx context.Context, id uint, status entities.ListingStatus) error
}
