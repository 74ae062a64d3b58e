package serviceImp

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"agriloop/entities"
	repo "agriloop/pkg/advisory/repository"
	"agriloop/pkg/advisory/service"
	"agriloop/pkg/apperr"
	"agriloop/pkg/climate"
)

type advisorySvc struct {
	mu    sync.Mutex
	repo  repo.AdvisoryRepository
	crops service.CropLookup
	log   *zap.Logger
	now   func() time.Time
}

func NewAdvisoryService(r repo.AdvisoryRepository, crops service.CropLookup, log *zap.Logger) service.AdvisoryService {
	return &advisorySvc{repo: r, crops: crops, log: log.Named("advisory"), now: time.Now}
}

func (s *advisorySvc) Recommend(ctx context.Context, user string, in service.RecommendInput) (*entities.Advisory, error) {
	crop, err := s.crops.GetCrop(ctx, user, in.CropID)
	if err != nil {
		return nil, err
	}
	advice, err := climate.Recommend(climate.IrrigationInput{
		SoilMoisture: in.SoilMoisture,
		TemperatureC: in.TemperatureC,
		Humidity:     in.Humidity,
		RainfallMM:   in.RainfallMM,
		CropName:     crop.CropName,
		AreaHectares: crop.AreaHectares,
	})
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if in.IdempotencyKey != "" {
		prev, err := s.repo.FindByKey(ctx, user, in.IdempotencyKey)
		if err == nil {
			return prev, nil
		}
		if !errors.Is(err, apperr.ErrNotFound) {
			return nil, err
		}
	}

	a := &entities.Advisory{
		User:           user,
		CropID:         crop.ID,
		Type:           entities.AdvisoryIrrigation,
		Status:         "completed",
		Recommendation: advice.Recommendation,
		Volume:         advice.VolumeLiters,
		Frequency:      advice.FrequencyDays,
		Urgency:        advice.Urgency,
		RiskFlags:      advice.RiskFlags,
		IdempotencyKey: in.IdempotencyKey,
		CreatedAt:      s.now(),
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	s.log.Info("irrigation advisory",
		zap.String("user", user), zap.Uint("crop_id", crop.ID),
		zap.String("urgency", string(a.Urgency)), zap.Float64("volume", a.Volume))
	return a, nil
}

func (s *advisorySvc) History(ctx context.Context, user string, limit int) ([]entities.Advisory, error) {
	return s.repo.ListByUser(ctx, user, limit)
}

func (s *advisorySvc) Count(ctx context.Context) (int, error) { return s.repo.Count(ctx) }
