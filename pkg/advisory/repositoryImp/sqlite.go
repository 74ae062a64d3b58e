package repositoryImp

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"agriloop/entities"
	"agriloop/pkg/advisory/repository"
	"agriloop/pkg/apperr"
)

type sqliteRepo struct{ db *gorm.DB }

func NewSQLite(db *gorm.DB) repository.AdvisoryRepository { return &sqliteRepo{db: db} }

func (r *sqliteRepo) Create(ctx context.Context, a *entities.Advisory) error {
	a.ID = 0
	if err := r.db.WithContext(ctx).Create(a).Error; err != nil {
		return fmt.Errorf("create advisory: %w", err)
	}
	return nil
}

func (r *sqliteRepo) FindByKey(ctx context.Context, user, key string) (*entities.Advisory, error) {
	var a entities.Advisory
	err := r.db.WithContext(ctx).Where("user = ? AND idempotency_key = ?", user, key).Order("id asc").First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("no advisory for key %q", key)
	}
	if err != nil {
		return nil, fmt.Errorf("find advisory: %w", err)
	}
	return &a, nil
}

func (r *sqliteRepo) ListByUser(ctx context.Context, user string, limit int) ([]entities.Advisory, error) {
	q := r.db.WithContext(ctx).Where("user = ?", user).Order("id desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	out := []entities.Advisory{}
	if err := q.Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list advisories: %w", err)
	}
	return out, nil
}

func (r *sqliteRepo) Count(ctx context.Context) (int, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&entities.Advisory{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count advisories: %w", err)
	}
	return int(n), nil
}
