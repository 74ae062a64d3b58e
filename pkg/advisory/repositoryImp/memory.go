package repositoryImp

import (
	"context"
	"sync"

	"agriloop/entities"
	"agriloop/pkg/advisory/repository"
	"agriloop/pkg/apperr"
	"agriloop/pkg/idalloc"
)

type memoryRepo struct {
	mu   sync.RWMutex
	ids  idalloc.Allocator
	rows []entities.Advisory
}

func NewMemory() repository.AdvisoryRepository { return &memoryRepo{} }

func (r *memoryRepo) Create(_ context.Context, a *entities.Advisory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a.ID = r.ids.Next()
	r.rows = append(r.rows, a.Clone())
	return nil
}

func (r *memoryRepo) FindByKey(_ context.Context, user, key string) (*entities.Advisory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.rows {
		if a.User == user && a.IdempotencyKey == key {
			out := a.Clone()
			return &out, nil
		}
	}
	return nil, apperr.NotFound("no advisory for key %q", key)
}

func (r *memoryRepo) ListByUser(_ context.Context, user string, limit int) ([]entities.Advisory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []entities.Advisory{}
	for i := len(r.rows) - 1; i >= 0; i-- {
		if r.rows[i].User != user {
			continue
		}
		out = append(out, r.rows[i].Clone())
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *memoryRepo) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rows), nil
}
