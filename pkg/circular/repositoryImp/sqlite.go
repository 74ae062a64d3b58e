package repositoryImp

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"agriloop/entities"
	"agriloop/pkg/apperr"
	"agriloop/pkg/circular/repository"
)

type sqlitePartners struct{ db *gorm.DB }

func NewSQLitePartners(db *gorm.DB) repository.PartnerRepository { return &sqlitePartners{db: db} }

func (r *sqlitePartners) Create(ctx context.Context, p *entities.Partner) error {
	if p.ID != 0 {
		var n int64
		if err := r.db.WithContext(ctx).Model(&entities.Partner{}).Where("id = ?", p.ID).Count(&n).Error; err != nil {
			return fmt.Errorf("check partner: %w", err)
		}
		if n > 0 {
			return apperr.Validation("partner id %d already exists", p.ID)
		}
	}
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("create partner: %w", err)
	}
	return nil
}

func (r *sqlitePartners) FindByID(ctx context.Context, id uint) (*entities.Partner, error) {
	var p entities.Partner
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("partner %d not found", id)
		}
		return nil, fmt.Errorf("find partner: %w", err)
	}
	return &p, nil
}

func (r *sqlitePartners) List(ctx context.Context) ([]entities.Partner, error) {
	out := []entities.Partner{}
	if err := r.db.WithContext(ctx).Order("id asc").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list partners: %w", err)
	}
	return out, nil
}

type sqliteRequests struct{ db *gorm.DB }

func NewSQLiteRequests(db *gorm.DB) repository.RequestRepository { return &sqliteRequests{db: db} }

func (r *sqliteRequests) Create(ctx context.Context, req *entities.WasteRequest) error {
	req.ID = 0
	if err := r.db.WithContext(ctx).Create(req).Error; err != nil {
		return fmt.Errorf("create waste request: %w", err)
	}
	return nil
}

func (r *sqliteRequests) FindByID(ctx context.Context, id uint) (*entities.WasteRequest, error) {
	var req entities.WasteRequest
	if err := r.db.WithContext(ctx).First(&req, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("waste request %d not found", id)
		}
		return nil, fmt.Errorf("find waste request: %w", err)
	}
	return &req, nil
}

func (r *sqliteRequests) ListByUser(ctx context.Context, user string) ([]entities.WasteRequest, error) {
	out := []entities.WasteRequest{}
	if err := r.db.WithContext(ctx).Where("user = ?", user).Order("id desc").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list waste requests: %w", err)
	}
	return out, nil
}

func (r *sqliteRequests) Update(ctx context.Context, req *entities.WasteRequest) error {
	res := r.db.WithContext(ctx).Model(&entities.WasteRequest{}).Where("id = ?", req.ID).
		Updates(map[string]any{"status": req.Status, "partner_id": req.PartnerID})
	if res.Error != nil {
		return fmt.Errorf("update waste request: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("waste request %d not found", req.ID)
	}
	return nil
}
