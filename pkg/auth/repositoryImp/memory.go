package repositoryImp

import (
	"context"
	"sync"

	"agriloop/entities"
	"agriloop/pkg/apperr"
	"agriloop/pkg/auth/repository"
)

type memoryRepo struct {
	mu    sync.RWMutex
	users map[string]entities.User
	order []string
}

func NewMemory() repository.UserRepository {
	return &memoryRepo{users: map[string]entities.User{}}
}

func (r *memoryRepo) Create(_ context.Context, u *entities.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.Username]; ok {
		return apperr.New(apperr.KindDuplicateUser, "username %q already exists", u.Username)
	}
	r.users[u.Username] = *u
	r.order = append(r.order, u.Username)
	return nil
}

func (r *memoryRepo) FindByUsername(_ context.Context, username string) (*entities.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[username]
	if !ok {
		return nil, apperr.New(apperr.KindUserNotFound, "user %q not found", username)
	}
	return &u, nil
}

func (r *memoryRepo) List(_ context.Context) ([]entities.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entities.User, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.users[name])
	}
	return out, nil
}

func (r *memoryRepo) UpdateRole(_ context.Context, username string, role entities.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[username]
	if !ok {
		return apperr.New(apperr.KindUserNotFound, "user %q not found", username)
	}
	u.Role = role
	r.users[username] = u
	return nil
}

func (r *memoryRepo) Delete(_ context.Context, username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[username]; !ok {
		return apperr.New(apperr.KindUserNotFound, "user %q not found", username)
	}
	delete(r.users, username)
	for i, name := range r.order {
		if name == username {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
