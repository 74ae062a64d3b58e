package repositoryImp

import (
	"context"
	"sync"

	"agriloop/entities"
	"agriloop/pkg/apperr"
	"agriloop/pkg/idalloc"
	"agriloop/pkg/surplus/repository"
)

type memoryRepo struct {
	mu   sync.RWMutex
	ids  idalloc.Allocator
	rows []entities.SurplusListing
}

func NewMemory() repository.ListingRepository { return &memoryRepo{} }

func (r *memoryRepo) Create(_ context.Context, l *entities.SurplusListing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	l.ID = r.ids.Next()
	r.rows = append(r.rows, l.Clone())
	return nil
}

func (r *memoryRepo) find(match func(entities.SurplusListing) bool) (*entities.SurplusListing, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, l := range r.rows {
		if match(l) {
			out := l.Clone()
			return &out, true
		}
	}
	return nil, false
}

func (r *memoryRepo) FindByID(_ context.Context, id uint) (*entities.SurplusListing, error) {
	if l, ok := r.find(func(l entities.SurplusListing) bool { return l.ID == id }); ok {
		return l, nil
	}
	return nil, apperr.NotFound("listing %d not found", id)
}

func (r *memoryRepo) FindByKey(_ context.Context, user, key string) (*entities.SurplusListing, error) {
	if l, ok := r.find(func(l entities.SurplusListing) bool { return l.User == user && l.IdempotencyKey == key }); ok {
		return l, nil
	}
	return nil, apperr.NotFound("no listing for key %q", key)
}

func (r *memoryRepo) ListByUser(_ context.Context, user string) ([]entities.SurplusListing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []entities.SurplusListing{}
	for i := len(r.rows) - 1; i >= 0; i-- {
		if r.rows[i].User == user {
			out = append(out, r.rows[i].Clone())
		}
	}
	return out, nil
}

func (r *memoryRepo) UpdateStatus(_ context.Context, id uint, status entities.ListingStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.rows {
		if r.rows[i].ID == id {
			r.rows[i].Status = status
			return nil
		}
	}
	return apperr.NotFound("listing %d not found", id)
}
