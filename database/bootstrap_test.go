package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agriloop/entities"
)

func TestMemoryDSN(t *testing.T) {
	assert.Equal(t, "file:TestX_sub_case?mode=memory&cache=shared", MemoryDSN("TestX/sub case"))
}

func TestOpenSQLiteMigrates(t *testing.T) {
	db, err := OpenSQLite(MemoryDSN(t.Name()))
	require.NoError(t, err)

	for _, m := range Models() {
		assert.True(t, db.Migrator().HasTable(m), "%T", m)
	}

	adv := entities.Advisory{User: "asha", CropID: 1, RiskFlags: []string{"low humidity"}}
	require.NoError(t, db.Create(&adv).Error)
	var got entities.Advisory
	require.NoError(t, db.First(&got, adv.ID).Error)
	assert.Equal(t, []string{"low humidity"}, got.RiskFlags)
}
