package serviceImp

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"agriloop/entities"
	"agriloop/pkg/apperr"
	"agriloop/pkg/circular/matching"
	repo "agriloop/pkg/circular/repository"
	"agriloop/pkg/circular/service"
)

type circularSvc struct {
	mu       sync.Mutex
	partners repo.PartnerRepository
	requests repo.RequestRepository
	strategy matching.Strategy
	log      *zap.Logger
	now      func() time.Time
}

func NewCircularService(partners repo.PartnerRepository, requests repo.RequestRepository, strategy matching.Strategy, log *zap.Logger) service.CircularService {
	if strategy == nil {
		strategy = matching.FirstAvailable{}
	}
	return &circularSvc{
		partners: partners,
		requests: requests,
		strategy: strategy,
		log:      log.Named("circular"),
		now:      time.Now,
	}
}

func validCoords(lat, lng float64) error {
	if lat < -90 || lat > 90 {
		return apperr.Validation("latitude must be within [-90, 90]")
	}
	if lng < -180 || lng > 180 {
		return apperr.Validation("longitude must be within [-180, 180]")
	}
	return nil
}

func validatePartner(p entities.Partner) error {
	switch {
	case strings.TrimSpace(p.Name) == "":
		return apperr.Validation("partner name is required")
	case !p.Type.Valid():
		return apperr.Validation("unknown partner type %q", p.Type)
	case p.CapacityKgPerDay <= 0:
		return apperr.Validation("capacity_kg_per_day must be > 0")
	case p.Rating < 0 || p.Rating > 5:
		return apperr.Validation("rating must be within [0, 5]")
	}
	return validCoords(p.Latitude, p.Longitude)
}

func (s *circularSvc) Partners(ctx context.Context) ([]entities.Partner, error) {
	return s.partners.List(ctx)
}

func (s *circularSvc) AddPartner(ctx context.Context, actor entities.Principal, in service.PartnerInput) (*entities.Partner, error) {
	if !actor.Can(entities.CapManagePartners) {
		return nil, apperr.PermissionDenied("%s access required", entities.RoleAdmin)
	}
	p := &entities.Partner{
		Name:             strings.TrimSpace(in.Name),
		Type:             in.Type,
		CapacityKgPerDay: in.CapacityKgPerDay,
		Latitude:         in.Latitude,
		Longitude:        in.Longitude,
	}
	if err := validatePartner(*p); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.partners.Create(ctx, p); err != nil {
		return nil, err
	}
	s.log.Info("partner added", zap.String("user", actor.Username), zap.Uint("partner_id", p.ID), zap.String("name", p.Name))
	return p, nil
}

func (s *circularSvc) SeedPartners(ctx context.Context, partners []entities.Partner) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range partners {
		p := partners[i]
		if err := validatePartner(p); err != nil {
			return err
		}
		if err := s.partners.Create(ctx, &p); err != nil {
			return err
		}
	}
	s.log.Debug("partners seeded", zap.Int("count", len(partners)))
	return nil
}

func (s *circularSvc) CreateRequest(ctx context.Context, user string, in service.WasteInput) (*entities.WasteRequest, error) {
	if !in.WasteType.Valid() {
		return nil, apperr.Validation("unknown waste type %q", in.WasteType)
	}
	if in.QuantityKg <= 0 {
		return nil, apperr.Validation("quantity_kg must be > 0")
	}
	if err := validCoords(in.Latitude, in.Longitude); err != nil {
		return nil, err
	}
	r := &entities.WasteRequest{
		User:       user,
		WasteType:  in.WasteType,
		QuantityKg: in.QuantityKg,
		Latitude:   in.Latitude,
		Longitude:  in.Longitude,
		Address:    strings.TrimSpace(in.Address),
		Status:     entities.RequestPending,
		CreatedAt:  s.now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requests.Create(ctx, r); err != nil {
		return nil, err
	}
	s.log.Info("waste request created", zap.String("user", user), zap.Uint("request_id", r.ID),
		zap.String("waste_type", string(r.WasteType)), zap.Float64("quantity_kg", r.QuantityKg))
	return r, nil
}

func (s *circularSvc) Requests(ctx context.Context, user string) ([]entities.WasteRequest, error) {
	return s.requests.ListByUser(ctx, user)
}

// ownedRequest expects s.mu to be held.
func (s *circularSvc) ownedRequest(ctx context.Context, actor entities.Principal, id uint) (*entities.WasteRequest, error) {
	r, err := s.requests.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.User != actor.Username && !actor.Can(entities.CapViewAll) {
		return nil, apperr.PermissionDenied("waste request %d belongs to another user", id)
	}
	return r, nil
}

func (s *circularSvc) MatchRequest(ctx context.Context, actor entities.Principal, id uint) (*service.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, err := s.ownedRequest(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if r.Status != entities.RequestPending {
		return nil, apperr.InvalidState("waste request %d is already %s", id, r.Status)
	}
	partners, err := s.partners.List(ctx)
	if err != nil {
		return nil, err
	}
	p, ok := s.strategy.Pick(*r, partners)
	if !ok {
		return nil, apperr.New(apperr.KindNoPartnersAvailable, "no partners available")
	}

	r.Status = entities.RequestMatched
	r.PartnerID = &p.ID
	if err := s.requests.Update(ctx, r); err != nil {
		return nil, err
	}
	s.log.Info("waste request matched", zap.String("user", actor.Username), zap.Uint("request_id", id),
		zap.Uint("partner_id", p.ID), zap.String("strategy", s.strategy.Name()))
	return &service.Match{Request: *r, Partner: p, DistanceKm: matching.DistanceKm(*r, p)}, nil
}

func (s *circularSvc) CompleteRequest(ctx context.Context, actor entities.Principal, id uint) (*entities.WasteRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, err := s.ownedRequest(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if r.Status != entities.RequestMatched {
		return nil, apperr.InvalidState("only matched requests can be completed, request %d is %s", id, r.Status)
	}
	r.Status = entities.RequestCompleted
	if err := s.requests.Update(ctx, r); err != nil {
		return nil, err
	}
	s.log.Info("waste request completed", zap.String("user", actor.Username), zap.Uint("request_id", id))
	return r, nil
}
