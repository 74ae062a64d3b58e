package repositoryImp

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"agriloop/entities"
	"agriloop/pkg/apperr"
	"agriloop/pkg/farm/repository"
)

type sqliteFarms struct{ db *gorm.DB }

func NewSQLiteFarms(db *gorm.DB) repository.FarmRepository { return &sqliteFarms{db: db} }

func (r *sqliteFarms) Create(ctx context.Context, f *entities.Farm) error {
	f.ID = 0
	if err := r.db.WithContext(ctx).Create(f).Error; err != nil {
		return fmt.Errorf("create farm: %w", err)
	}
	return nil
}

func (r *sqliteFarms) FindByID(ctx context.Context, id uint) (*entities.Farm, error) {
	var f entities.Farm
	if err := r.db.WithContext(ctx).First(&f, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("farm %d not found", id)
		}
		return nil, fmt.Errorf("find farm: %w", err)
	}
	return &f, nil
}

func (r *sqliteFarms) ListByOwner(ctx context.Context, owner string) ([]entities.Farm, error) {
	out := []entities.Farm{}
	if err := r.db.WithContext(ctx).Where("owner = ?", owner).Order("id asc").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list farms: %w", err)
	}
	return out, nil
}

func (r *sqliteFarms) List(ctx context.Context) ([]entities.Farm, error) {
	out := []entities.Farm{}
	if err := r.db.WithContext(ctx).Order("id asc").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list farms: %w", err)
	}
	return out, nil
}

func (r *sqliteFarms) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&entities.Farm{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete farm: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("farm %d not found", id)
	}
	return nil
}

func (r *sqliteFarms) DeleteByOwner(ctx context.Context, owner string) (int, error) {
	res := r.db.WithContext(ctx).Where("owner = ?", owner).Delete(&entities.Farm{})
	if res.Error != nil {
		return 0, fmt.Errorf("delete farms: %w", res.Error)
	}
	return int(res.RowsAffected), nil
}

type sqliteCrops struct{ db *gorm.DB }

func NewSQLiteCrops(db *gorm.DB) repository.CropRepository { return &sqliteCrops{db: db} }

func (r *sqliteCrops) Create(ctx context.Context, c *entities.Crop) error {
	c.ID = 0
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		return fmt.Errorf("create crop: %w", err)
	}
	return nil
}

func (r *sqliteCrops) FindByID(ctx context.Context, id uint) (*entities.Crop, error) {
	var c entities.Crop
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("crop %d not found", id)
		}
		return nil, fmt.Errorf("find crop: %w", err)
	}
	return &c, nil
}

func (r *sqliteCrops) List(ctx context.Context, f repository.CropFilter) ([]entities.Crop, error) {
	q := r.db.WithContext(ctx).Model(&entities.Crop{})
	if f.Owner != "" {
		q = q.Where("owner = ?", f.Owner)
	}
	if f.FarmID != 0 {
		q = q.Where("farm_id = ?", f.FarmID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	out := []entities.Crop{}
	if err := q.Order("id asc").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list crops: %w", err)
	}
	return out, nil
}

func (r *sqliteCrops) UpdateStatus(ctx context.Context, id uint, status entities.CropStatus) error {
	res := r.db.WithContext(ctx).Model(&entities.Crop{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("update crop: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("crop %d not found", id)
	}
	return nil
}

func (r *sqliteCrops) DeleteByFarm(ctx context.Context, farmID uint) (int, error) {
	res := r.db.WithContext(ctx).Where("farm_id = ?", farmID).Delete(&entities.Crop{})
	if res.Error != nil {
		return 0, fmt.Errorf("delete crops: %w", res.Error)
	}
	return int(res.RowsAffected), nil
}

func (r *sqliteCrops) DeleteByOwner(ctx context.Context, owner string) (int, error) {
	res := r.db.WithContext(ctx).Where("owner = ?", owner).Delete(&entities.Crop{})
	if res.Error != nil {
		return 0, fmt.Errorf("delete crops: %w", res.Error)
	}
	return int(res.RowsAffected), nil
}
