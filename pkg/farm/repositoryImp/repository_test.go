package repositoryImp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agriloop/database"
	"agriloop/entities"
	"agriloop/pkg/apperr"
	"agriloop/pkg/farm/repository"
)

type store struct {
	farms repository.FarmRepository
	crops repository.CropRepository
}

func stores(t *testing.T) map[string]store {
	db, err := database.OpenSQLite(database.MemoryDSN(t.Name()))
	require.NoError(t, err)
	return map[string]store{
		"memory": {NewMemoryFarms(), NewMemoryCrops()},
		"sqlite": {NewSQLiteFarms(db), NewSQLiteCrops(db)},
	}
}

func TestFarmRepositoryContract(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			a := &entities.Farm{Name: "North", AreaHectares: 2, SoilType: entities.SoilLoamy, Owner: "asha"}
			b := &entities.Farm{Name: "South", AreaHectares: 1, SoilType: entities.SoilClay, Owner: "asha"}
			c := &entities.Farm{Name: "Ridge", AreaHectares: 4, SoilType: entities.SoilUnknown, Owner: "ben"}
			for _, f := range []*entities.Farm{a, b, c} {
				require.NoError(t, s.farms.Create(ctx, f))
			}
			assert.Less(t, a.ID, b.ID)
			assert.Less(t, b.ID, c.ID)

			got, err := s.farms.FindByID(ctx, b.ID)
			require.NoError(t, err)
			assert.Equal(t, "South", got.Name)

			mine, err := s.farms.ListByOwner(ctx, "asha")
			require.NoError(t, err)
			require.Len(t, mine, 2)
			assert.Equal(t, a.ID, mine[0].ID)

			none, err := s.farms.ListByOwner(ctx, "nobody")
			require.NoError(t, err)
			assert.NotNil(t, none)
			assert.Empty(t, none)

			require.NoError(t, s.farms.Delete(ctx, c.ID))
			assert.ErrorIs(t, s.farms.Delete(ctx, c.ID), apperr.ErrNotFound)
			_, err = s.farms.FindByID(ctx, c.ID)
			assert.ErrorIs(t, err, apperr.ErrNotFound)

			d := &entities.Farm{Name: "New", AreaHectares: 1, Owner: "ben"}
			require.NoError(t, s.farms.Create(ctx, d))
			assert.Greater(t, d.ID, c.ID, "ids are never reused")

			n, err := s.farms.DeleteByOwner(ctx, "asha")
			require.NoError(t, err)
			assert.Equal(t, 2, n)
			all, err := s.farms.List(ctx)
			require.NoError(t, err)
			require.Len(t, all, 1)
			assert.Equal(t, d.ID, all[0].ID)
		})
	}
}

func TestCropRepositoryContract(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			crops := []*entities.Crop{
				{FarmID: 1, CropName: "wheat", AreaHectares: 1, Status: entities.CropActive, Owner: "asha"},
				{FarmID: 1, CropName: "rice", AreaHectares: 1, Status: entities.CropHarvested, Owner: "asha"},
				{FarmID: 2, CropName: "corn", AreaHectares: 2, Status: entities.CropActive, Owner: "asha"},
				{FarmID: 3, CropName: "potato", AreaHectares: 1, Status: entities.CropActive, Owner: "ben"},
			}
			for _, c := range crops {
				require.NoError(t, s.crops.Create(ctx, c))
			}

			tests := []struct {
				name   string
				filter repository.CropFilter
				want   []string
			}{
				{"all", repository.CropFilter{}, []string{"wheat", "rice", "corn", "potato"}},
				{"owner", repository.CropFilter{Owner: "asha"}, []string{"wheat", "rice", "corn"}},
				{"owner active", repository.CropFilter{Owner: "asha", Status: entities.CropActive}, []string{"wheat", "corn"}},
				{"farm", repository.CropFilter{FarmID: 1}, []string{"wheat", "rice"}},
				{"no match", repository.CropFilter{Owner: "carol"}, []string{}},
			}
			for _, tt := range tests {
				t.Run(tt.name, func(t *testing.T) {
					got, err := s.crops.List(ctx, tt.filter)
					require.NoError(t, err)
					names := []string{}
					for _, c := range got {
						names = append(names, c.CropName)
					}
					assert.Equal(t, tt.want, names)
				})
			}

			require.NoError(t, s.crops.UpdateStatus(ctx, crops[0].ID, entities.CropRemoved))
			c, err := s.crops.FindByID(ctx, crops[0].ID)
			require.NoError(t, err)
			assert.Equal(t, entities.CropRemoved, c.Status)
			assert.ErrorIs(t, s.crops.UpdateStatus(ctx, 999, entities.CropActive), apperr.ErrNotFound)

			n, err := s.crops.DeleteByFarm(ctx, 1)
			require.NoError(t, err)
			assert.Equal(t, 2, n)
			n, err = s.crops.DeleteByOwner(ctx, "asha")
			require.NoError(t, err)
			assert.Equal(t, 1, n)
			left, err := s.crops.List(ctx, repository.CropFilter{})
			require.NoError(t, err)
			require.Len(t, left, 1)
			assert.Equal(t, "ben", left[0].Owner)
		})
	}
}

func TestMemoryFarmsReturnsCopies(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryFarms()
	f := &entities.Farm{Name: "North", AreaHectares: 1, Owner: "asha"}
	require.NoError(t, r.Create(ctx, f))
	f.Name = "changed"

	list, err := r.List(ctx)
	require.NoError(t, err)
	list[0].Name = "changed too"

	got, err := r.FindByID(ctx, f.ID)
	require.NoError(t, err)
	assert.Equal(t, "North", got.Name)
}
