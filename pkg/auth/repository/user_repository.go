package repository

import (
	"context"

	"agriloop/entities"
)

type UserRepository interface {
	Create(ctx context.Context, u *entities.User) error
	FindByUsername(ctx context.Context, username string) (*entities.User, error)
	List(ctx context.Context) ([]entities.User, error)
	UpdateRole(ctx context.Context, username string, role entities.Role) error
	Delete(ctx context.Context, username string) error
}
