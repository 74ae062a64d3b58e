package serviceImp

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"agriloop/entities"
	"agriloop/pkg/apperr"
	repo "agriloop/pkg/auth/repository"
	"agriloop/pkg/auth/service"
)

type authSvc struct {
	mu     sync.Mutex
	users  repo.UserRepository
	hasher service.PasswordHasher
	farms  service.FarmRemover
	log    *zap.Logger
	now    func() time.Time
}

func NewAuthService(users repo.UserRepository, hasher service.PasswordHasher, farms service.FarmRemover, log *zap.Logger) service.AuthService {
	return &authSvc{users: users, hasher: hasher, farms: farms, log: log.Named("auth"), now: time.Now}
}

func (s *authSvc) Register(ctx context.Context, in service.RegisterInput) (*entities.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	if in.Username == "" || in.Email == "" || in.Password == "" {
		return nil, apperr.Validation("username, email and password are required")
	}
	if in.Role == "" {
		in.Role = entities.RoleFarmer
	}
	if !in.Role.Valid() {
		return nil, apperr.Validation("unknown role %q", in.Role)
	}
	if !in.Role.Can(entities.CapSelfRegister) {
		return nil, apperr.PermissionDenied("role %q cannot be chosen at registration", in.Role)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.create(ctx, in)
}

// create expects s.mu to be held.
func (s *authSvc) create(ctx context.Context, in service.RegisterInput) (*entities.User, error) {
	if _, err := s.users.FindByUsername(ctx, in.Username); err == nil {
		return nil, apperr.New(apperr.KindDuplicateUser, "username %q already exists", in.Username)
	} else if !errors.Is(err, apperr.ErrUserNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	u := &entities.User{
		Username:     in.Username,
		PasswordHash: hash,
		Email:        in.Email,
		FullName:     strings.TrimSpace(in.FullName),
		Role:         in.Role,
		Phone:        strings.TrimSpace(in.Phone),
		CreatedAt:    s.now(),
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	s.log.Info("user registered", zap.String("user", u.Username), zap.String("role", string(u.Role)))
	return u, nil
}

func (s *authSvc) Authenticate(ctx context.Context, username, password string) (*entities.User, error) {
	u, err := s.users.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, err
	}
	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		return nil, apperr.Wrap(apperr.KindInvalidCredentials, err, "invalid password")
	}
	return u, nil
}

func (s *authSvc) requireCapability(ctx context.Context, actor string, c entities.Capability) (*entities.User, error) {
	a, err := s.users.FindByUsername(ctx, actor)
	if err != nil {
		if errors.Is(err, apperr.ErrUserNotFound) {
			return nil, apperr.PermissionDenied("unknown actor %q", actor)
		}
		return nil, err
	}
	if !a.Role.Can(c) {
		return nil, apperr.PermissionDenied("%s access required", entities.RoleAdmin)
	}
	return a, nil
}

func (s *authSvc) ChangeRole(ctx context.Context, actor, target string, role entities.Role) (*entities.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.requireCapability(ctx, actor, entities.CapManageUsers); err != nil {
		return nil, err
	}
	if actor == target {
		return nil, apperr.InvalidState("admins cannot change their own role")
	}
	if !role.Valid() {
		return nil, apperr.Validation("unknown role %q", role)
	}
	if err := s.users.UpdateRole(ctx, target, role); err != nil {
		return nil, err
	}
	s.log.Info("role changed", zap.String("actor", actor), zap.String("user", target), zap.String("role", string(role)))
	return s.users.FindByUsername(ctx, target)
}

func (s *authSvc) DeleteUser(ctx context.Context, actor, target string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.requireCapability(ctx, actor, entities.CapManageUsers); err != nil {
		return err
	}
	if actor == target {
		return apperr.InvalidState("admins cannot delete their own account")
	}
	if _, err := s.users.FindByUsername(ctx, target); err != nil {
		return err
	}
	// Farms go first: if the user delete then fails, the account remains
	// without farms and no farm is left pointing at a missing owner.
	farms, crops, err := s.farms.RemoveByOwner(ctx, target)
	if err != nil {
		return err
	}
	if err := s.users.Delete(ctx, target); err != nil {
		return err
	}
	s.log.Info("user deleted", zap.String("actor", actor), zap.String("user", target),
		zap.Int("farms", farms), zap.Int("crops", crops))
	return nil
}

func (s *authSvc) GetUser(ctx context.Context, username string) (*entities.User, error) {
	return s.users.FindByUsername(ctx, username)
}

func (s *authSvc) ListUsers(ctx context.Context, actor string) ([]entities.User, error) {
	if _, err := s.requireCapability(ctx, actor, entities.CapManageUsers); err != nil {
		return nil, err
	}
	return s.users.List(ctx)
}

func (s *authSvc) EnsureAdmin(ctx context.Context, username, email, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		return nil
	} else if !errors.Is(err, apperr.ErrUserNotFound) {
		return err
	}
	_, err := s.create(ctx, service.RegisterInput{
		Username: username,
		Password: password,
		Email:    email,
		FullName: "System Admin",
		Role:     entities.RoleAdmin,
	})
	return err
}
