package repository

import (
	"context"

	"agriloop/entities"
)

type PartnerRepository interface {
	// Create keeps a preset ID (seed data) and assigns the next one otherwise.
	Create(ctx context.Context, p *entities.Partner) error
	FindByID(ctx context.Context, id uint) (*entities.Partner, error)
	// List returns partners in directory order.
	List(ctx context.Context) ([]entities.Partner, error)
}

type RequestRepository interface {
	Create(ctx context.Context, r *entities.WasteRequest) error
	FindByID(ctx context.Context, id uint) (*entities.WasteRequest, error)
	// ListByUser returns newest first.
	ListByUser(ctx context.Context, user string) ([]entities.WasteRequest, error)
	Update(ctx context.Context, r *entities.WasteRequest) error
}
