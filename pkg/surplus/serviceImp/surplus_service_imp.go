package serviceImp

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"agriloop/entities"
	"agriloop/pkg/apperr"
	"agriloop/pkg/forecast"
	repo "agriloop/pkg/surplus/repository"
	"agriloop/pkg/surplus/service"
)

type surplusSvc struct {
	mu        sync.Mutex
	listings  repo.ListingRepository
	registry  service.Registry
	predictor *forecast.Predictor
	log       *zap.Logger
	now       func() time.Time
}

func NewSurplusService(listings repo.ListingRepository, registry service.Registry, predictor *forecast.Predictor, log *zap.Logger) service.SurplusService {
	return &surplusSvc{listings: listings, registry: registry, predictor: predictor, log: log.Named("surplus"), now: time.Now}
}

func (s *surplusSvc) Predict(ctx context.Context, user string, in service.PredictInput) (*service.Prediction, error) {
	crop, err := s.registry.GetCrop(ctx, user, in.CropID)
	if err != nil {
		return nil, err
	}
	soil := entities.SoilUnknown
	if farm, err := s.registry.GetFarm(ctx, user, crop.FarmID); err == nil {
		soil = farm.SoilType
	} else if !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}

	yield, err := s.predictor.PredictYield(crop.CropName, crop.AreaHectares, soil)
	if err != nil {
		return nil, err
	}
	sp, err := forecast.PredictSurplus(yield, in.DemandKg, in.StorageKg)
	if err != nil {
		return nil, err
	}
	s.log.Debug("surplus predicted", zap.String("user", user), zap.Uint("crop_id", crop.ID),
		zap.Float64("yield", yield), zap.String("category", string(sp.Category)))
	return &service.Prediction{CropID: crop.ID, Crop: crop.CropName, YieldKg: yield, SurplusPrediction: sp}, nil
}

func (s *surplusSvc) CreateListing(ctx context.Context, user string, in service.ListingInput) (*entities.SurplusListing, error) {
	switch {
	case in.QuantityKg < 1:
		return nil, apperr.Validation("quantity must be at least 1 kg")
	case in.HarvestDate.IsZero():
		return nil, apperr.Validation("harvest_date is required")
	case in.UnitPrice != nil && *in.UnitPrice < 0:
		return nil, apperr.Validation("unit_price must be >= 0")
	}
	crop, err := s.registry.GetCrop(ctx, user, in.CropID)
	if err != nil {
		return nil, err
	}
	price := in.UnitPrice
	if price != nil && *price == 0 {
		price = nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if in.IdempotencyKey != "" {
		prev, err := s.listings.FindByKey(ctx, user, in.IdempotencyKey)
		if err == nil {
			return prev, nil
		}
		if !errors.Is(err, apperr.ErrNotFound) {
			return nil, err
		}
	}
	l := &entities.SurplusListing{
		User:           user,
		CropID:         crop.ID,
		Crop:           crop.CropName,
		Quantity:       in.QuantityKg,
		HarvestDate:    in.HarvestDate,
		UnitPrice:      price,
		Status:         entities.ListingAvailable,
		IdempotencyKey: in.IdempotencyKey,
		CreatedAt:      s.now(),
	}
	if err := s.listings.Create(ctx, l); err != nil {
		return nil, err
	}
	s.log.Info("listing created", zap.String("user", user), zap.Uint("listing_id", l.ID), zap.Float64("quantity", l.Quantity))
	return l, nil
}

func (s *surplusSvc) Listings(ctx context.Context, user string) ([]entities.SurplusListing, error) {
	return s.listings.ListByUser(ctx, user)
}

func (s *surplusSvc) UpdateListingStatus(ctx context.Context, user string, id uint, status entities.ListingStatus) (*entities.SurplusListing, error) {
	if !status.Valid() {
		return nil, apperr.Validation("unknown listing status %q", status)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	l, err := s.listings.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if l.User != user {
		return nil, apperr.NotFound("listing %d not found", id)
	}
	if err := s.listings.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	l.Status = status
	s.log.Info("listing status changed", zap.String("user", user), zap.Uint("listing_id", id), zap.String("status", string(status)))
	return l, nil
}
