package repositoryImp

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"agriloop/entities"
	"agriloop/pkg/apperr"
	"agriloop/pkg/auth/repository"
)

type sqliteRepo struct{ db *gorm.DB }

func NewSQLite(db *gorm.DB) repository.UserRepository { return &sqliteRepo{db: db} }

func (r *sqliteRepo) Create(ctx context.Context, u *entities.User) error {
	var n int64
	if err := r.db.WithContext(ctx).Model(&entities.User{}).Where("username = ?", u.Username).Count(&n).Error; err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if n > 0 {
		return apperr.New(apperr.KindDuplicateUser, "username %q already exists", u.Username)
	}
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *sqliteRepo) FindByUsername(ctx context.Context, username string) (*entities.User, error) {
	var u entities.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindUserNotFound, "user %q not found", username)
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &u, nil
}

func (r *sqliteRepo) List(ctx context.Context) ([]entities.User, error) {
	var out []entities.User
	if err := r.db.WithContext(ctx).Order("created_at asc, username asc").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return out, nil
}

func (r *sqliteRepo) UpdateRole(ctx context.Context, username string, role entities.Role) error {
	res := r.db.WithContext(ctx).Model(&entities.User{}).Where("username = ?", username).Update("role", role)
	if res.Error != nil {
		return fmt.Errorf("update role: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.New(apperr.KindUserNotFound, "user %q not found", username)
	}
	return nil
}

func (r *sqliteRepo) Delete(ctx context.Context, username string) error {
	res := r.db.WithContext(ctx).Where("username = ?", username).Delete(&entities.User{})
	if res.Error != nil {
		return fmt.Errorf("delete user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.New(apperr.KindUserNotFound, "user %q not found", username)
	}
	return nil
}
