package repositoryImp

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"agriloop/entities"
	"agriloop/pkg/apperr"
	"agriloop/pkg/surplus/repository"
)

type sqliteRepo struct{ db *gorm.DB }

func NewSQLite(db *gorm.DB) repository.ListingRepository { return &sqliteRepo{db: db} }

func (r *sqliteRepo) Create(ctx context.Context, l *entities.SurplusListing) error {
	l.ID = 0
	if err := r.db.WithContext(ctx).Create(l).Error; err != nil {
		return fmt.Errorf("create listing: %w", err)
	}
	return nil
}

func (r *sqliteRepo) first(ctx context.Context, notFound error, query string, args ...any) (*entities.SurplusListing, error) {
	var l entities.SurplusListing
	err := r.db.WithContext(ctx).Where(query, args...).Order("id asc").First(&l).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound
	}
	if err != nil {
		return nil, fmt.Errorf("find listing: %w", err)
	}
	return &l, nil
}

func (r *sqliteRepo) FindByID(ctx context.Context, id uint) (*entities.SurplusListing, error) {
	return r.first(ctx, apperr.NotFound("listing %d not found", id), "id = ?", id)
}

func (r *sqliteRepo) FindByKey(ctx context.Context, user, key string) (*entities.SurplusListing, error) {
	return r.first(ctx, apperr.NotFound("no listing for key %q", key), "user = ? AND idempotency_key = ?", user, key)
}

func (r *sqliteRepo) ListByUser(ctx context.Context, user string) ([]entities.SurplusListing, error) {
	out := []entities.SurplusListing{}
	if err := r.db.WithContext(ctx).Where("user = ?", user).Order("id desc").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list listings: %w", err)
	}
	return out, nil
}

func (r *sqliteRepo) UpdateStatus(ctx context.Context, id uint, status entities.ListingStatus) error {
	res := r.db.WithContext(ctx).Model(&entities.SurplusListing{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("update listing: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("listing %d not found", id)
	}
	return nil
}
