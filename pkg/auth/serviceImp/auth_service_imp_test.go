package serviceImp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"agriloop/entities"
	"agriloop/pkg/apperr"
	"agriloop/pkg/auth/repository"
	"agriloop/pkg/auth/repositoryImp"
	"agriloop/pkg/auth/service"
)

type fakeFarms struct{ removed []string }

func (f *fakeFarms) RemoveByOwner(_ context.Context, owner string) (int, int, error) {
	f.removed = append(f.removed, owner)
	return 1, 2, nil
}

func newSvc(t *testing.T) (service.AuthService, *fakeFarms) {
	t.Helper()
	farms := &fakeFarms{}
	svc := NewAuthService(repositoryImp.NewMemory(), NewBcryptHasher(bcrypt.MinCost), farms, zap.NewNop())
	require.NoError(t, svc.EnsureAdmin(context.Background(), "admin", "admin@agriloop.com", "admin123"))
	return svc, farms
}

func register(t *testing.T, svc service.AuthService, name string) *entities.User {
	t.Helper()
	u, err := svc.Register(context.Background(), service.RegisterInput{
		Username: name, Password: "pw-" + name, Email: name + "@farm.test", Role: entities.RoleFarmer,
	})
	require.NoError(t, err)
	return u
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	svc, _ := newSvc(t)

	u := register(t, svc, "asha")
	assert.NotEqual(t, "pw-asha", u.PasswordHash)
	assert.False(t, u.CreatedAt.IsZero())

	_, err := svc.Register(ctx, service.RegisterInput{Username: "asha", Password: "x", Email: "e"})
	assert.ErrorIs(t, err, apperr.ErrDuplicateUser)

	tests := []struct {
		name string
		in   service.RegisterInput
		want error
	}{
		{"missing email", service.RegisterInput{Username: "a", Password: "p"}, apperr.ErrValidation},
		{"missing username", service.RegisterInput{Email: "e", Password: "p"}, apperr.ErrValidation},
		{"missing password", service.RegisterInput{Username: "a", Email: "e"}, apperr.ErrValidation},
		{"bad role", service.RegisterInput{Username: "a", Email: "e", Password: "p", Role: "king"}, apperr.ErrValidation},
		{"admin self-registration", service.RegisterInput{Username: "a", Email: "e", Password: "p", Role: entities.RoleAdmin}, apperr.ErrPermissionDenied},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	u, err = svc.Register(ctx, service.RegisterInput{Username: "dev", Email: "d@x", Password: "p"})
	require.NoError(t, err)
	assert.Equal(t, entities.RoleFarmer, u.Role)
}

func TestEqualPasswordsGetDistinctHashes(t *testing.T) {
	svc, _ := newSvc(t)
	a, err := svc.Register(context.Background(), service.RegisterInput{Username: "a", Email: "a@x", Password: "same"})
	require.NoError(t, err)
	b, err := svc.Register(context.Background(), service.RegisterInput{Username: "b", Email: "b@x", Password: "same"})
	require.NoError(t, err)
	assert.NotEqual(t, a.PasswordHash, b.PasswordHash)
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	svc, _ := newSvc(t)
	register(t, svc, "asha")

	u, err := svc.Authenticate(ctx, "asha", "pw-asha")
	require.NoError(t, err)
	assert.Equal(t, "asha", u.Username)

	_, err = svc.Authenticate(ctx, "asha", "wrong")
	assert.ErrorIs(t, err, apperr.ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, "ghost", "pw")
	assert.ErrorIs(t, err, apperr.ErrUserNotFound)

	_, err = svc.Authenticate(ctx, "admin", "admin123")
	assert.NoError(t, err)
}

func TestChangeRole(t *testing.T) {
	ctx := context.Background()
	svc, _ := newSvc(t)
	register(t, svc, "asha")
	register(t, svc, "ben")

	_, err := svc.ChangeRole(ctx, "asha", "ben", entities.RoleAdmin)
	assert.ErrorIs(t, err, apperr.ErrPermissionDenied)

	_, err = svc.ChangeRole(ctx, "admin", "ben", "overlord")
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = svc.ChangeRole(ctx, "admin", "ghost", entities.RoleProcessor)
	assert.ErrorIs(t, err, apperr.ErrUserNotFound)

	u, err := svc.ChangeRole(ctx, "admin", "ben", entities.RoleProcessor)
	require.NoError(t, err)
	assert.Equal(t, entities.RoleProcessor, u.Role)

	// a promoted user gains the capability
	_, err = svc.ChangeRole(ctx, "admin", "asha", entities.RoleAdmin)
	require.NoError(t, err)
	_, err = svc.ChangeRole(ctx, "asha", "ben", entities.RoleWasteConverter)
	assert.NoError(t, err)
}

func TestAdminCannotChangeOwnRole(t *testing.T) {
	ctx := context.Background()
	svc, _ := newSvc(t)
	register(t, svc, "asha")

	_, err := svc.ChangeRole(ctx, "admin", "admin", entities.RoleFarmer)
	assert.ErrorIs(t, err, apperr.ErrInvalidState)

	u, err := svc.GetUser(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, entities.RoleAdmin, u.Role)

	users, err := svc.ListUsers(ctx, "admin")
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

type failingDelete struct{ repository.UserRepository }

func (failingDelete) Delete(context.Context, string) error { return errors.New("disk full") }

func TestDeleteUserStoreFailureKeepsAccount(t *testing.T) {
	ctx := context.Background()
	farms := &fakeFarms{}
	svc := NewAuthService(failingDelete{repositoryImp.NewMemory()}, NewBcryptHasher(bcrypt.MinCost), farms, zap.NewNop())
	require.NoError(t, svc.EnsureAdmin(ctx, "admin", "admin@agriloop.com", "admin123"))
	register(t, svc, "asha")

	assert.EqualError(t, svc.DeleteUser(ctx, "admin", "asha"), "disk full")
	assert.Equal(t, []string{"asha"}, farms.removed, "farms are removed before the account")
	_, err := svc.GetUser(ctx, "asha")
	assert.NoError(t, err)
}

func TestDeleteUserCascades(t *testing.T) {
	ctx := context.Background()
	svc, farms := newSvc(t)
	register(t, svc, "asha")
	register(t, svc, "ben")

	assert.ErrorIs(t, svc.DeleteUser(ctx, "ben", "asha"), apperr.ErrPermissionDenied)
	assert.ErrorIs(t, svc.DeleteUser(ctx, "admin", "admin"), apperr.ErrInvalidState)
	assert.ErrorIs(t, svc.DeleteUser(ctx, "admin", "ghost"), apperr.ErrUserNotFound)
	assert.Empty(t, farms.removed)

	require.NoError(t, svc.DeleteUser(ctx, "admin", "asha"))
	assert.Equal(t, []string{"asha"}, farms.removed)

	_, err := svc.GetUser(ctx, "asha")
	assert.ErrorIs(t, err, apperr.ErrUserNotFound)

	users, err := svc.ListUsers(ctx, "admin")
	require.NoError(t, err)
	assert.Len(t, users, 2)

	_, err = svc.ListUsers(ctx, "ben")
	assert.ErrorIs(t, err, apperr.ErrPermissionDenied)
}

func TestEnsureAdminIsIdempotent(t *testing.T) {
	svc, _ := newSvc(t)
	require.NoError(t, svc.EnsureAdmin(context.Background(), "admin", "other@x", "changed"))
	_, err := svc.Authenticate(context.Background(), "admin", "admin123")
	assert.NoError(t, err)
}
