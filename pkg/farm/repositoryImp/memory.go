package repositoryImp

import (
	"context"
	"sync"

	"agriloop/entities"
	"agriloop/pkg/apperr"
	"agriloop/pkg/farm/repository"
	"agriloop/pkg/idalloc"
)

type memoryFarms struct {
	mu    sync.RWMutex
	ids   idalloc.Allocator
	farms []entities.Farm
}

func NewMemoryFarms() repository.FarmRepository { return &memoryFarms{} }

func (r *memoryFarms) Create(_ context.Context, f *entities.Farm) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	f.ID = r.ids.Next()
	r.farms = append(r.farms, *f)
	return nil
}

func (r *memoryFarms) FindByID(_ context.Context, id uint) (*entities.Farm, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, f := range r.farms {
		if f.ID == id {
			return &f, nil
		}
	}
	return nil, apperr.NotFound("farm %d not found", id)
}

func (r *memoryFarms) ListByOwner(_ context.Context, owner string) ([]entities.Farm, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []entities.Farm{}
	for _, f := range r.farms {
		if f.Owner == owner {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *memoryFarms) List(_ context.Context) ([]entities.Farm, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]entities.Farm{}, r.farms...), nil
}

func (r *memoryFarms) Delete(_ context.Context, id uint) error {
	n := r.deleteWhere(func(f entities.Farm) bool { return f.ID == id })
	if n == 0 {
		return apperr.NotFound("farm %d not found", id)
	}
	return nil
}

func (r *memoryFarms) DeleteByOwner(_ context.Context, owner string) (int, error) {
	return r.deleteWhere(func(f entities.Farm) bool { return f.Owner == owner }), nil
}

func (r *memoryFarms) deleteWhere(match func(entities.Farm) bool) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.farms[:0]
	for _, f := range r.farms {
		if !match(f) {
			kept = append(kept, f)
		}
	}
	n := len(r.farms) - len(kept)
	r.farms = kept
	return n
}

type memoryCrops struct {
	mu    sync.RWMutex
	ids   idalloc.Allocator
	crops []entities.Crop
}

func NewMemoryCrops() repository.CropRepository { return &memoryCrops{} }

func (r *memoryCrops) Create(_ context.Context, c *entities.Crop) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c.ID = r.ids.Next()
	r.crops = append(r.crops, *c)
	return nil
}

func (r *memoryCrops) FindByID(_ context.Context, id uint) (*entities.Crop, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.crops {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, apperr.NotFound("crop %d not found", id)
}

func (r *memoryCrops) List(_ context.Context, f repository.CropFilter) ([]entities.Crop, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []entities.Crop{}
	for _, c := range r.crops {
		if f.Owner != "" && c.Owner != f.Owner {
			continue
		}
		if f.FarmID != 0 && c.FarmID != f.FarmID {
			continue
		}
		if f.Status != "" && c.Status != f.Status {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *memoryCrops) UpdateStatus(_ context.Context, id uint, status entities.CropStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.crops {
		if r.crops[i].ID == id {
			r.crops[i].Status = status
			return nil
		}
	}
	return apperr.NotFound("crop %d not found", id)
}

func (r *memoryCrops) DeleteByFarm(_ context.Context, farmID uint) (int, error) {
	return r.deleteWhere(func(c entities.Crop) bool { return c.FarmID == farmID }), nil
}

func (r *memoryCrops) DeleteByOwner(_ context.Context, owner string) (int, error) {
	return r.deleteWhere(func(c entities.Crop) bool { return c.Owner == owner }), nil
}

func (r *memoryCrops) deleteWhere(match func(entities.Crop) bool) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.crops[:0]
	for _, c := range r.crops {
		if !match(c) {
			kept = append(kept, c)
		}
	}
	n := len(r.crops) - len(kept)
	r.crops = kept
	return n
}
