package serviceImp

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"agriloop/database"
	"agriloop/entities"
	"agriloop/pkg/apperr"
	"agriloop/pkg/circular/matching"
	"agriloop/pkg/circular/repositoryImp"
	"agriloop/pkg/circular/service"
)

var (
	asha  = entities.Principal{Username: "asha", Role: entities.RoleFarmer}
	ben   = entities.Principal{Username: "ben", Role: entities.RoleWasteConverter}
	admin = entities.Principal{Username: "admin", Role: entities.RoleAdmin}
)

func newSvc(t *testing.T, s matching.Strategy, seed []entities.Partner) service.CircularService {
	t.Helper()
	svc := NewCircularService(repositoryImp.NewMemoryPartners(), repositoryImp.NewMemoryRequests(), s, zap.NewNop())
	require.NoError(t, svc.SeedPartners(context.Background(), seed))
	return svc
}

func createRequest(t *testing.T, svc service.CircularService, user string, qty float64) *entities.WasteRequest {
	t.Helper()
	r, err := svc.CreateRequest(context.Background(), user, service.WasteInput{
		WasteType: entities.WasteCropResidue, QuantityKg: qty, Latitude: 28.54, Longitude: 77.39,
	})
	require.NoError(t, err)
	return r
}

func TestMatchFirstAvailable(t *testing.T) {
	ctx := context.Background()
	svc := newSvc(t, nil, DefaultPartners())
	r := createRequest(t, svc, "asha", 100)
	assert.Equal(t, entities.RequestPending, r.Status)
	assert.Nil(t, r.PartnerID)

	m, err := svc.MatchRequest(ctx, asha, r.ID)
	require.NoError(t, err)
	assert.Equal(t, "GreenCompost Co", m.Partner.Name)
	assert.Equal(t, entities.RequestMatched, m.Request.Status)
	require.NotNil(t, m.Request.PartnerID)
	assert.Equal(t, uint(1), *m.Request.PartnerID)
	assert.Greater(t, m.DistanceKm, 0.0)

	_, err = svc.MatchRequest(ctx, asha, r.ID)
	assert.ErrorIs(t, err, apperr.ErrInvalidState)

	list, err := svc.Requests(ctx, "asha")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, uint(1), *list[0].PartnerID, "a failed rematch leaves the partner unchanged")
}

func TestMatchNearest(t *testing.T) {
	svc := newSvc(t, matching.Nearest{}, DefaultPartners())
	r := createRequest(t, svc, "asha", 100)
	m, err := svc.MatchRequest(context.Background(), asha, r.ID)
	require.NoError(t, err)
	assert.Equal(t, "FoodBank Network", m.Partner.Name)
	assert.Less(t, m.DistanceKm, 1.0)
}

func TestMatchErrors(t *testing.T) {
	ctx := context.Background()

	empty := newSvc(t, nil, nil)
	r := createRequest(t, empty, "asha", 10)
	_, err := empty.MatchRequest(ctx, asha, r.ID)
	assert.ErrorIs(t, err, apperr.ErrNoPartnersAvailable)
	list, err := empty.Requests(ctx, "asha")
	require.NoError(t, err)
	assert.Equal(t, entities.RequestPending, list[0].Status)

	svc := newSvc(t, nil, DefaultPartners())
	r = createRequest(t, svc, "asha", 10)
	_, err = svc.MatchRequest(ctx, asha, 999)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	_, err = svc.MatchRequest(ctx, ben, r.ID)
	assert.ErrorIs(t, err, apperr.ErrPermissionDenied)
	_, err = svc.MatchRequest(ctx, admin, r.ID)
	assert.NoError(t, err, "admins may match any request")
}

func TestCompleteRequest(t *testing.T) {
	ctx := context.Background()
	svc := newSvc(t, nil, DefaultPartners())
	r := createRequest(t, svc, "asha", 10)

	_, err := svc.CompleteRequest(ctx, asha, r.ID)
	assert.ErrorIs(t, err, apperr.ErrInvalidState, "pending requests cannot complete")

	_, err = svc.MatchRequest(ctx, asha, r.ID)
	require.NoError(t, err)
	done, err := svc.CompleteRequest(ctx, asha, r.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.RequestCompleted, done.Status)
	require.NotNil(t, done.PartnerID)

	_, err = svc.CompleteRequest(ctx, asha, r.ID)
	assert.ErrorIs(t, err, apperr.ErrInvalidState)
	_, err = svc.MatchRequest(ctx, asha, r.ID)
	assert.ErrorIs(t, err, apperr.ErrInvalidState)
}

func TestConcurrentMatchAssignsOnce(t *testing.T) {
	ctx := context.Background()
	svc := newSvc(t, nil, DefaultPartners())
	r := createRequest(t, svc, "asha", 10)

	var (
		wg sync.WaitGroup
		mu sync.Mutex
		ok int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.MatchRequest(ctx, asha, r.ID); err == nil {
				mu.Lock()
				ok++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, ok)
}

func TestCreateRequestValidation(t *testing.T) {
	svc := newSvc(t, nil, nil)
	tests := []struct {
		name string
		in   service.WasteInput
	}{
		{"bad type", service.WasteInput{WasteType: "plastic", QuantityKg: 1}},
		{"zero quantity", service.WasteInput{WasteType: entities.WasteFood}},
		{"latitude", service.WasteInput{WasteType: entities.WasteFood, QuantityKg: 1, Latitude: -91}},
		{"longitude", service.WasteInput{WasteType: entities.WasteFood, QuantityKg: 1, Longitude: 200}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateRequest(context.Background(), "asha", tt.in)
			assert.ErrorIs(t, err, apperr.ErrValidation)
		})
	}
}

func TestPartners(t *testing.T) {
	ctx := context.Background()
	db, err := database.OpenSQLite(database.MemoryDSN(t.Name()))
	require.NoError(t, err)

	svc := NewCircularService(repositoryImp.NewSQLitePartners(db), repositoryImp.NewSQLiteRequests(db), nil, zap.NewNop())
	require.NoError(t, svc.SeedPartners(ctx, DefaultPartners()))

	in := service.PartnerInput{Name: "Agri Recyclers", Type: entities.PartnerRecycling, CapacityKgPerDay: 800, Latitude: 28.6, Longitude: 77.2}
	_, err = svc.AddPartner(ctx, asha, in)
	assert.ErrorIs(t, err, apperr.ErrPermissionDenied)

	p, err := svc.AddPartner(ctx, admin, in)
	require.NoError(t, err)
	assert.Equal(t, uint(4), p.ID)
	assert.Zero(t, p.Rating)

	bad := in
	bad.CapacityKgPerDay = 0
	_, err = svc.AddPartner(ctx, admin, bad)
	assert.ErrorIs(t, err, apperr.ErrValidation)
	bad = in
	bad.Type = "landfill"
	_, err = svc.AddPartner(ctx, admin, bad)
	assert.ErrorIs(t, err, apperr.ErrValidation)

	all, err := svc.Partners(ctx)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "GreenCompost Co", all[0].Name)
	assert.Equal(t, "Agri Recyclers", all[3].Name)

	r := createRequest(t, svc, "asha", 10)
	m, err := svc.MatchRequest(ctx, asha, r.ID)
	require.NoError(t, err)
	stored, err := svc.Requests(ctx, "asha")
	require.NoError(t, err)
	require.NotNil(t, stored[0].PartnerID)
	assert.Equal(t, m.Partner.ID, *stored[0].PartnerID)
	assert.Equal(t, entities.RequestMatched, stored[0].Status)
}

func TestSeedRejectsDuplicateIDs(t *testing.T) {
	svc := NewCircularService(repositoryImp.NewMemoryPartners(), repositoryImp.NewMemoryRequests(), nil, zap.NewNop())
	seed := append(DefaultPartners(), DefaultPartners()[0])
	assert.ErrorIs(t, svc.SeedPartners(context.Background(), seed), apperr.ErrValidation)
}

func TestLoadPartners(t *testing.T) {
	got, err := LoadPartners("")
	require.NoError(t, err)
	assert.Equal(t, DefaultPartners(), got)

	dir := t.TempDir()
	path := filepath.Join(dir, "partners.yaml")
	body := `partners:
  - id: 9
    name: Late Biogas
    type: biogas_plant
    capacity_kg_per_day: 300
    latitude: 12.97
    longitude: 77.59
  - id: 4
    name: Early Compost
    type: compost_facility
    capacity_kg_per_day: 100
    latitude: 12.9
    longitude: 77.6
    rating: 3.5
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	got, err = LoadPartners(path)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Early Compost", got[0].Name)
	assert.Equal(t, entities.PartnerBiogas, got[1].Type)

	svc := newSvc(t, nil, got)
	r := createRequest(t, svc, "asha", 1)
	m, err := svc.MatchRequest(context.Background(), asha, r.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(4), m.Partner.ID)

	mixed := filepath.Join(dir, "mixed.yaml")
	require.NoError(t, os.WriteFile(mixed, []byte("partners:\n  - id: 1\n    name: a\n  - name: b\n"), 0o600))
	_, err = LoadPartners(mixed)
	assert.Error(t, err)

	_, err = LoadPartners(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
