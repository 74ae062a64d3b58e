package service

import (
	"context"

	"agriloop/entities"
)

type RegisterInput struct {
	Username string        `json:"username"`
	Password string        `json:"password"`
	Email    string        `json:"email"`
	FullName string        `json:"full_name"`
	Phone    string        `json:"phone"`
	Role     entities.Role `json:"role"`
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*entities.User, error)
	Authenticate(ctx context.Context, username, password string) (*entities.User, error)
	ChangeRole(ctx context.Context, actor, target string, role entities.Role) (*entities.User, error)
	DeleteUser(ctx context.Context, actor, target string) error
	GetUser(ctx context.Context, username string) (*entities.User, error)
	ListUsers(ctx context.Context, actor string) ([]entities.User, error)
	// EnsureAdmin creates the bootstrap admin account when it is missing.
	EnsureAdmin(ctx context.Context, username, email, password string) error
}

// PasswordHasher turns plaintext passwords into salted one-way digests.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// FarmRemover deletes everything a user owns in the farm registry.
type FarmRemover interface {
	RemoveByOwner(ctx context.Context, owner string) (farms, crops int, err error)
}
