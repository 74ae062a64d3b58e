package serviceImp

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"agriloop/database"
	"agriloop/entities"
	"agriloop/pkg/apperr"
	"agriloop/pkg/forecast"
	"agriloop/pkg/surplus/repository"
	"agriloop/pkg/surplus/repositoryImp"
	"agriloop/pkg/surplus/service"
)

type registry struct {
	farms map[uint]entities.Farm
	crops map[uint]entities.Crop
}

func (r registry) GetCrop(_ context.Context, owner string, id uint) (*entities.Crop, error) {
	c, ok := r.crops[id]
	if !ok || c.Owner != owner {
		return nil, apperr.NotFound("crop %d not found", id)
	}
	return &c, nil
}

func (r registry) GetFarm(_ context.Context, owner string, id uint) (*entities.Farm, error) {
	f, ok := r.farms[id]
	if !ok || f.Owner != owner {
		return nil, apperr.NotFound("farm %d not found", id)
	}
	return &f, nil
}

var reg = registry{
	farms: map[uint]entities.Farm{1: {ID: 1, Owner: "asha", SoilType: entities.SoilLoamy}},
	crops: map[uint]entities.Crop{
		1: {ID: 1, FarmID: 1, CropName: "Wheat", AreaHectares: 2, Owner: "asha"},
		2: {ID: 2, FarmID: 7, CropName: "rice", AreaHectares: 1, Owner: "asha"},
	},
}

type half struct{}

func (half) Float64() float64 { return 0.5 }

func newSvc(r repository.ListingRepository) service.SurplusService {
	return NewSurplusService(r, reg, forecast.NewPredictor(nil, half{}), zap.NewNop())
}

func TestPredict(t *testing.T) {
	ctx := context.Background()
	svc := newSvc(repositoryImp.NewMemory())

	// wheat 3500 kg/ha * 2 ha * loamy 1.2 = 8400
	p, err := svc.Predict(ctx, "asha", service.PredictInput{CropID: 1, DemandKg: 4000, StorageKg: 1000})
	require.NoError(t, err)
	assert.InDelta(t, 8400, p.YieldKg, 0.01)
	assert.InDelta(t, 4400, p.SurplusKg, 0.01)
	assert.Equal(t, forecast.CategoryHigh, p.Category)
	assert.Equal(t, "Wheat", p.Crop)

	// farm 7 is gone, so the soil falls back to unknown
	p, err = svc.Predict(ctx, "asha", service.PredictInput{CropID: 2, DemandKg: 4000, StorageKg: 0})
	require.NoError(t, err)
	assert.InDelta(t, 4000, p.YieldKg, 0.01)
	assert.Equal(t, forecast.CategoryMinimal, p.Category)

	_, err = svc.Predict(ctx, "ben", service.PredictInput{CropID: 1})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	_, err = svc.Predict(ctx, "asha", service.PredictInput{CropID: 1, DemandKg: -1})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestListings(t *testing.T) {
	ctx := context.Background()
	db, err := database.OpenSQLite(database.MemoryDSN(t.Name()))
	require.NoError(t, err)
	harvest := time.Date(2024, 8, 15, 0, 0, 0, 0, time.UTC)

	for name, r := range map[string]repository.ListingRepository{
		"memory": repositoryImp.NewMemory(),
		"sqlite": repositoryImp.NewSQLite(db),
	} {
		t.Run(name, func(t *testing.T) {
			svc := newSvc(r)
			price := 2.5
			first, err := svc.CreateListing(ctx, "asha", service.ListingInput{CropID: 1, QuantityKg: 100, HarvestDate: harvest, UnitPrice: &price})
			require.NoError(t, err)
			assert.Equal(t, entities.ListingAvailable, first.Status)
			assert.Equal(t, "Wheat", first.Crop)
			require.NotNil(t, first.UnitPrice)

			zero := 0.0
			second, err := svc.CreateListing(ctx, "asha", service.ListingInput{CropID: 2, QuantityKg: 5, HarvestDate: harvest, UnitPrice: &zero, IdempotencyKey: "k"})
			require.NoError(t, err)
			assert.Nil(t, second.UnitPrice, "a zero price means no price")

			again, err := svc.CreateListing(ctx, "asha", service.ListingInput{CropID: 2, QuantityKg: 5, HarvestDate: harvest, IdempotencyKey: "k"})
			require.NoError(t, err)
			assert.Equal(t, second.ID, again.ID)

			list, err := svc.Listings(ctx, "asha")
			require.NoError(t, err)
			require.Len(t, list, 2)
			assert.Equal(t, second.ID, list[0].ID)
			assert.InDelta(t, 2.5, *list[1].UnitPrice, 1e-9)

			got, err := svc.UpdateListingStatus(ctx, "asha", first.ID, entities.ListingSold)
			require.NoError(t, err)
			assert.Equal(t, entities.ListingSold, got.Status)
			_, err = svc.UpdateListingStatus(ctx, "ben", first.ID, entities.ListingExpired)
			assert.ErrorIs(t, err, apperr.ErrNotFound)
			_, err = svc.UpdateListingStatus(ctx, "asha", first.ID, "gone")
			assert.ErrorIs(t, err, apperr.ErrValidation)

			other, err := svc.Listings(ctx, "ben")
			require.NoError(t, err)
			assert.Empty(t, other)
		})
	}
}

func TestCreateListingValidation(t *testing.T) {
	ctx := context.Background()
	svc := newSvc(repositoryImp.NewMemory())
	harvest := time.Date(2024, 8, 15, 0, 0, 0, 0, time.UTC)
	neg := -1.0

	tests := []struct {
		name string
		in   service.ListingInput
		want error
	}{
		{"quantity below one", service.ListingInput{CropID: 1, QuantityKg: 0.5, HarvestDate: harvest}, apperr.ErrValidation},
		{"missing harvest date", service.ListingInput{CropID: 1, QuantityKg: 10}, apperr.ErrValidation},
		{"negative price", service.ListingInput{CropID: 1, QuantityKg: 10, HarvestDate: harvest, UnitPrice: &neg}, apperr.ErrValidation},
		{"unknown crop", service.ListingInput{CropID: 42, QuantityKg: 10, HarvestDate: harvest}, apperr.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateListing(ctx, "asha", tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
