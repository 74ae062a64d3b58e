package controllerImp

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

var appStart = time.Now()

type HealthCtrl struct {
	db    *gorm.DB
	store string
}

// NewHealthCtrl reports on the given store; db is nil for the memory store.
func NewHealthCtrl(store string, db *gorm.DB) *HealthCtrl { return &HealthCtrl{db: db, store: store} }

type check struct {
	OK  bool   `json:"ok"`
	Err string `json:"err,omitempty"`
}

func (h *HealthCtrl) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 800*time.Millisecond)
	defer cancel()

	store := check{OK: true}
	if h.db != nil {
		sqlDB, err := h.db.DB()
		if err != nil {
			store = check{Err: "db.DB(): " + err.Error()}
		} else if err := sqlDB.PingContext(ctx); err != nil {
			store = check{Err: "ping: " + err.Error()}
		}
	}

	status := http.StatusOK
	if !store.OK {
		status = http.StatusServiceUnavailable
	}
	return c.JSON(status, map[string]any{
		"status":     map[string]any{"ok": store.OK},
		"store":      h.store,
		"uptime_sec": int(time.Since(appStart).Seconds()),
		"checks":     map[string]any{"store": store},
		"time":       time.Now().Format(time.RFC3339),
	})
}
