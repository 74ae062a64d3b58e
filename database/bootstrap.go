// database/bootstrap.go
package database

import (
	"fmt"
	"regexp"

	sqlite "github.com/glebarez/sqlite" // CGO-free driver
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"agriloop/entities"
)

// DefaultDSN keeps the whole database in process memory; it disappears with
// the process like the in-memory store does.
const DefaultDSN = "file:agriloop?mode=memory&cache=shared"

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9_]+`)

// MemoryDSN returns a private shared-cache in-memory DSN for name.
func MemoryDSN(name string) string {
	return fmt.Sprintf("file:%s?mode=memory&cache=shared", unsafeName.ReplaceAllString(name, "_"))
}

// Models lists every table the sqlite store needs.
func Models() []any {
	return []any{
		&entities.User{},
		&entities.Farm{},
		&entities.Crop{},
		&entities.Advisory{},
		&entities.SurplusListing{},
		&entities.WasteRequest{},
		&entities.Partner{},
	}
}

func OpenSQLite(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		dsn = DefaultDSN
	}
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// One connection keeps the in-memory database alive and avoids
	// shared-cache table locks between connections.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sql db: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(Models()...); err != nil {
		return nil, fmt.Errorf("automigrate: %w", err)
	}
	return db, nil
}
