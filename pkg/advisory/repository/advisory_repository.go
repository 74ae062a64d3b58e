package repository

import (
	"context"

	"agriloop/entities"
)

type AdvisoryRepository interface {
	Create(ctx context.Context, a *entities.Advisory) error
	// FindByKey returns apperr.ErrNotFound when user never used key.
	FindByKey(ctx context.Context, user, key string) (*entities.Advisory, error)
	// ListByUser returns newest first; limit <= 0 means all.
	ListByUser(ctx context.Context, user string, limit int) ([]entities.Advisory, error)
	Count(ctx context.Context) (int, error)
}
