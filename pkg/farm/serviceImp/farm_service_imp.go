package serviceImp

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"agriloop/entities"
	"agriloop/pkg/apperr"
	repo "agriloop/pkg/farm/repository"
	"agriloop/pkg/farm/service"
)

type farmSvc struct {
	mu    sync.Mutex
	farms repo.FarmRepository
	crops repo.CropRepository
	log   *zap.Logger
	now   func() time.Time
}

func NewFarmService(farms repo.FarmRepository, crops repo.CropRepository, log *zap.Logger) service.FarmService {
	return &farmSvc{farms: farms, crops: crops, log: log.Named("farm"), now: time.Now}
}

func (s *farmSvc) AddFarm(ctx context.Context, owner string, in service.FarmInput) (*entities.Farm, error) {
	name := strings.TrimSpace(in.Name)
	soil := entities.ParseSoilType(in.SoilType)
	switch {
	case name == "":
		return nil, apperr.Validation("farm name is required")
	case in.AreaHectares <= 0:
		return nil, apperr.Validation("area_hectares must be > 0")
	case in.Latitude < -90 || in.Latitude > 90:
		return nil, apperr.Validation("latitude must be within [-90, 90]")
	case in.Longitude < -180 || in.Longitude > 180:
		return nil, apperr.Validation("longitude must be within [-180, 180]")
	case !soil.Valid():
		return nil, apperr.Validation("unknown soil type %q", in.SoilType)
	}

	f := &entities.Farm{
		Name:         name,
		AreaHectares: in.AreaHectares,
		Latitude:     in.Latitude,
		Longitude:    in.Longitude,
		Address:      strings.TrimSpace(in.Address),
		SoilType:     soil,
		Owner:        owner,
		CreatedAt:    s.now(),
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.farms.Create(ctx, f); err != nil {
		return nil, err
	}
	s.log.Info("farm added", zap.String("user", owner), zap.Uint("farm_id", f.ID))
	return f, nil
}

func (s *farmSvc) RemoveFarm(ctx context.Context, actor entities.Principal, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.farms.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if f.Owner != actor.Username && !actor.Can(entities.CapViewAll) {
		return apperr.NotFound("farm %d not found", id)
	}
	n, err := s.crops.DeleteByFarm(ctx, id)
	if err != nil {
		return err
	}
	if err := s.farms.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("farm removed", zap.String("user", actor.Username), zap.Uint("farm_id", id), zap.Int("crops", n))
	return nil
}

func (s *farmSvc) AddCrop(ctx context.Context, owner string, farmID uint, in service.CropInput) (*entities.Crop, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperr.Validation("crop name is required")
	}
	if in.AreaHectares <= 0 {
		return nil, apperr.Validation("area_hectares must be > 0")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := s.ownedFarm(ctx, owner, farmID)
	if err != nil {
		return nil, err
	}
	c := &entities.Crop{
		FarmID:              f.ID,
		CropName:            name,
		AreaHectares:        in.AreaHectares,
		PlantingDate:        in.PlantingDate,
		ExpectedHarvestDate: in.HarvestDate,
		Status:              entities.CropActive,
		Owner:               f.Owner,
		CreatedAt:           s.now(),
	}
	if err := s.crops.Create(ctx, c); err != nil {
		return nil, err
	}
	s.log.Info("crop added", zap.String("user", owner), zap.Uint("farm_id", f.ID), zap.Uint("crop_id", c.ID))
	return c, nil
}

func (s *farmSvc) UpdateCropStatus(ctx context.Context, owner string, cropID uint, status entities.CropStatus) (*entities.Crop, error) {
	if !status.Valid() {
		return nil, apperr.Validation("unknown crop status %q", status)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.GetCrop(ctx, owner, cropID); err != nil {
		return nil, err
	}
	if err := s.crops.UpdateStatus(ctx, cropID, status); err != nil {
		return nil, err
	}
	s.log.Info("crop status changed", zap.String("user", owner), zap.Uint("crop_id", cropID), zap.String("status", string(status)))
	return s.crops.FindByID(ctx, cropID)
}

func (s *farmSvc) ownedFarm(ctx context.Context, owner string, id uint) (*entities.Farm, error) {
	f, err := s.farms.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if f.Owner != owner {
		return nil, apperr.NotFound("farm %d not found", id)
	}
	return f, nil
}

func (s *farmSvc) GetFarm(ctx context.Context, owner string, id uint) (*entities.Farm, error) {
	return s.ownedFarm(ctx, owner, id)
}

func (s *farmSvc) GetCrop(ctx context.Context, owner string, id uint) (*entities.Crop, error) {
	c, err := s.crops.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.Owner != owner {
		return nil, apperr.NotFound("crop %d not found", id)
	}
	return c, nil
}

func (s *farmSvc) FarmsByOwner(ctx context.Context, owner string) ([]entities.Farm, error) {
	return s.farms.ListByOwner(ctx, owner)
}

func (s *farmSvc) CropsByOwner(ctx context.Context, owner string) ([]entities.Crop, error) {
	return s.crops.List(ctx, repo.CropFilter{Owner: owner})
}

func (s *farmSvc) ActiveCropsByOwner(ctx context.Context, owner string) ([]entities.Crop, error) {
	return s.crops.List(ctx, repo.CropFilter{Owner: owner, Status: entities.CropActive})
}

func (s *farmSvc) CropsByFarm(ctx context.Context, owner string, farmID uint) ([]entities.Crop, error) {
	if _, err := s.ownedFarm(ctx, owner, farmID); err != nil {
		return nil, err
	}
	return s.crops.List(ctx, repo.CropFilter{FarmID: farmID})
}

func (s *farmSvc) AllFarms(ctx context.Context, actor entities.Principal) ([]entities.Farm, error) {
	if !actor.Can(entities.CapViewAll) {
		return nil, apperr.PermissionDenied("%s access required", entities.RoleAdmin)
	}
	return s.farms.List(ctx)
}

func (s *farmSvc) CountCrops(ctx context.Context) (int, error) {
	all, err := s.crops.List(ctx, repo.CropFilter{})
	return len(all), err
}

func (s *farmSvc) RemoveByOwner(ctx context.Context, owner string) (int, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	crops, err := s.crops.DeleteByOwner(ctx, owner)
	if err != nil {
		return 0, 0, err
	}
	farms, err := s.farms.DeleteByOwner(ctx, owner)
	if err != nil {
		return 0, crops, err
	}
	if farms+crops > 0 {
		s.log.Info("owner data removed", zap.String("user", owner), zap.Int("farms", farms), zap.Int("crops", crops))
	}
	return farms, crops, nil
}
