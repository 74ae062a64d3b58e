package repositoryImp

import (
	"context"
	"sync"

	"agriloop/entities"
	"agriloop/pkg/apperr"
	"agriloop/pkg/circular/repository"
	"agriloop/pkg/idalloc"
)

type memoryPartners struct {
	mu   sync.RWMutex
	ids  idalloc.Allocator
	rows []entities.Partner
}

func NewMemoryPartners() repository.PartnerRepository { return &memoryPartners{} }

func (r *memoryPartners) Create(_ context.Context, p *entities.Partner) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == 0 {
		p.ID = r.ids.Next()
	} else {
		for _, have := range r.rows {
			if have.ID == p.ID {
				return apperr.Validation("partner id %d already exists", p.ID)
			}
		}
		r.ids.Observe(p.ID)
	}
	r.rows = append(r.rows, *p)
	return nil
}

func (r *memoryPartners) FindByID(_ context.Context, id uint) (*entities.Partner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.rows {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, apperr.NotFound("partner %d not found", id)
}

func (r *memoryPartners) List(_ context.Context) ([]entities.Partner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]entities.Partner{}, r.rows...), nil
}

type memoryRequests struct {
	mu   sync.RWMutex
	ids  idalloc.Allocator
	rows []entities.WasteRequest
}

func NewMemoryRequests() repository.RequestRepository { return &memoryRequests{} }

func (r *memoryRequests) Create(_ context.Context, req *entities.WasteRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	req.ID = r.ids.Next()
	r.rows = append(r.rows, req.Clone())
	return nil
}

func (r *memoryRequests) FindByID(_ context.Context, id uint) (*entities.WasteRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, req := range r.rows {
		if req.ID == id {
			out := req.Clone()
			return &out, nil
		}
	}
	return nil, apperr.NotFound("waste request %d not found", id)
}

func (r *memoryRequests) ListByUser(_ context.Context, user string) ([]entities.WasteRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []entities.WasteRequest{}
	for i := len(r.rows) - 1; i >= 0; i-- {
		if r.rows[i].User == user {
			out = append(out, r.rows[i].Clone())
		}
	}
	return out, nil
}

func (r *memoryRequests) Update(_ context.Context, req *entities.WasteRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.rows {
		if r.rows[i].ID == req.ID {
			r.rows[i] = req.Clone()
			return nil
		}
	}
	return apperr.NotFound("waste request %d not found", req.ID)
}
