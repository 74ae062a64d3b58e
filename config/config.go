package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
)

type AppConfig struct {
	Port           string
	Timezone       string
	Store          string
	DBPath         string
	JWTSecret      string
	TokenTTL       time.Duration
	BcryptCost     int
	AdminPassword  string
	AdminEmail     string
	MatchStrategy  string
	PartnersFile   string
	YieldTableCSV  string
	YieldTableXLSX string
	YieldSeed      uint64
	RequestTimeout time.Duration
	LogLevel       string
}

// Load reads .env when present, then the environment. It never exits; bad
// values come back as an error.
func Load() (AppConfig, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[cfg] .env not loaded: %v", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds the config from a lookup function.
func FromEnv(getenv func(string) string) (AppConfig, error) {
	get := func(k, def string) string {
		if v := strings.TrimSpace(getenv(k)); v != "" {
			return v
		}
		return def
	}
	var errs []string
	duration := func(k, def string) time.Duration {
		d, err := time.ParseDuration(get(k, def))
		if err != nil || d <= 0 {
			errs = append(errs, fmt.Sprintf("%s must be a positive duration", k))
		}
		return d
	}
	integer := func(k, def string) int {
		n, err := strconv.Atoi(get(k, def))
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s must be an integer", k))
		}
		return n
	}

	cfg := AppConfig{
		Port:           get("PORT", "8080"),
		Timezone:       get("TZ", "Asia/Kolkata"),
		Store:          strings.ToLower(get("STORE", StoreMemory)),
		DBPath:         get("DB_PATH", ""),
		JWTSecret:      get("JWT_SECRET", ""),
		TokenTTL:       duration("TOKEN_TTL", "24h"),
		BcryptCost:     integer("BCRYPT_COST", "10"),
		AdminPassword:  get("ADMIN_PASSWORD", "admin123"),
		AdminEmail:     get("ADMIN_EMAIL", "admin@agriloop.com"),
		MatchStrategy:  get("MATCH_STRATEGY", "first"),
		PartnersFile:   get("PARTNERS_FILE", ""),
		YieldTableCSV:  get("YIELD_TABLE_CSV", ""),
		YieldTableXLSX: get("YIELD_TABLE_XLSX", ""),
		RequestTimeout: duration("REQUEST_TIMEOUT", "10s"),
		LogLevel:       get("LOG_LEVEL", "info"),
	}
	seed, err := strconv.ParseUint(get("YIELD_SEED", "0"), 10, 64)
	if err != nil {
		errs = append(errs, "YIELD_SEED must be a non-negative integer")
	}
	cfg.YieldSeed = seed

	if cfg.Store != StoreMemory && cfg.Store != StoreSQLite {
		errs = append(errs, fmt.Sprintf("STORE must be %q or %q", StoreMemory, StoreSQLite))
	}
	if cfg.JWTSecret == "" {
		// Random per process; sessions end with the process.
		cfg.JWTSecret = randomSecret()
	}
	if len(errs) > 0 {
		return cfg, fmt.Errorf("config: %s", strings.Join(errs, "; "))
	}
	return cfg, nil
}

// Redacted is safe to log.
func (c AppConfig) Redacted() AppConfig {
	c.JWTSecret = "***"
	c.AdminPassword = "***"
	return c
}
