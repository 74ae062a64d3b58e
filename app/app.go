// Package app wires configuration, stores, services and HTTP handlers into one
// runnable server.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"agriloop/config"
	"agriloop/database"
	"agriloop/router"

	advCtrlImp "agriloop/pkg/advisory/controllerImp"
	advRepo "agriloop/pkg/advisory/repository"
	advRepoImp "agriloop/pkg/advisory/repositoryImp"
	advSvc "agriloop/pkg/advisory/serviceImp"

	authCtrlImp "agriloop/pkg/auth/controllerImp"
	authRepo "agriloop/pkg/auth/repository"
	authRepoImp "agriloop/pkg/auth/repositoryImp"
	authService "agriloop/pkg/auth/service"
	authSvc "agriloop/pkg/auth/serviceImp"
	"agriloop/pkg/auth/token"

	"agriloop/pkg/circular/matching"
	circCtrlImp "agriloop/pkg/circular/controllerImp"
	circRepo "agriloop/pkg/circular/repository"
	circRepoImp "agriloop/pkg/circular/repositoryImp"
	circService "agriloop/pkg/circular/service"
	circSvc "agriloop/pkg/circular/serviceImp"

	dashCtrlImp "agriloop/pkg/dashboard/controllerImp"
	dashService "agriloop/pkg/dashboard/service"
	dashSvc "agriloop/pkg/dashboard/serviceImp"

	farmCtrlImp "agriloop/pkg/farm/controllerImp"
	farmRepo "agriloop/pkg/farm/repository"
	farmRepoImp "agriloop/pkg/farm/repositoryImp"
	farmService "agriloop/pkg/farm/service"
	farmSvc "agriloop/pkg/farm/serviceImp"

	"agriloop/pkg/forecast"
	healthCtrlImp "agriloop/pkg/health/controllerImp"
	"agriloop/pkg/middleware"

	surCtrlImp "agriloop/pkg/surplus/controllerImp"
	surRepo "agriloop/pkg/surplus/repository"
	surRepoImp "agriloop/pkg/surplus/repositoryImp"
	surSvc "agriloop/pkg/surplus/serviceImp"
)

const AdminUsername = "admin"

type App struct {
	Config    config.AppConfig
	Echo      *echo.Echo
	DB        *gorm.DB // nil for the memory store
	Auth      authService.AuthService
	Farms     farmService.FarmService
	Circular  circService.CircularService
	Dashboard dashService.DashboardService
	Tokens    *token.Manager
	log       *zap.Logger
}

type repos struct {
	users    authRepo.UserRepository
	farms    farmRepo.FarmRepository
	crops    farmRepo.CropRepository
	advice   advRepo.AdvisoryRepository
	listings surRepo.ListingRepository
	partners circRepo.PartnerRepository
	requests circRepo.RequestRepository
}

func openRepos(cfg config.AppConfig) (repos, *gorm.DB, error) {
	if cfg.Store != config.StoreSQLite {
		return repos{
			users:    authRepoImp.NewMemory(),
			farms:    farmRepoImp.NewMemoryFarms(),
			crops:    farmRepoImp.NewMemoryCrops(),
			advice:   advRepoImp.NewMemory(),
			listings: surRepoImp.NewMemory(),
			partners: circRepoImp.NewMemoryPartners(),
			requests: circRepoImp.NewMemoryRequests(),
		}, nil, nil
	}
	db, err := database.OpenSQLite(cfg.DBPath)
	if err != nil {
		return repos{}, nil, err
	}
	return repos{
		users:    authRepoImp.NewSQLite(db),
		farms:    farmRepoImp.NewSQLiteFarms(db),
		crops:    farmRepoImp.NewSQLiteCrops(db),
		advice:   advRepoImp.NewSQLite(db),
		listings: surRepoImp.NewSQLite(db),
		partners: circRepoImp.NewSQLitePartners(db),
		requests: circRepoImp.NewSQLiteRequests(db),
	}, db, nil
}

// New builds the whole server and seeds the admin account and the partner
// directory.
func New(ctx context.Context, cfg config.AppConfig, log *zap.Logger) (*App, error) {
	r, db, err := openRepos(cfg)
	if err != nil {
		return nil, err
	}
	strategy, err := matching.ByName(cfg.MatchStrategy)
	if err != nil {
		return nil, err
	}
	table, err := forecast.LoadYieldTable(cfg.YieldTableCSV, cfg.YieldTableXLSX)
	if err != nil {
		return nil, err
	}
	partners, err := circSvc.LoadPartners(cfg.PartnersFile)
	if err != nil {
		return nil, err
	}

	farms := farmSvc.NewFarmService(r.farms, r.crops, log)
	auth := authSvc.NewAuthService(r.users, authSvc.NewBcryptHasher(cfg.BcryptCost), farms, log)
	advice := advSvc.NewAdvisoryService(r.advice, farms, log)
	predictor := forecast.NewPredictor(table, forecast.NewSeededSource(cfg.YieldSeed))
	surplus := surSvc.NewSurplusService(r.listings, farms, predictor, log)
	circular := circSvc.NewCircularService(r.partners, r.requests, strategy, log)
	dashboard := dashSvc.NewDashboardService(dashSvc.Deps{
		Users: auth, Farms: farms, Advisories: advice, Listings: surplus, Partners: circular,
	})

	if err := auth.EnsureAdmin(ctx, AdminUsername, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		return nil, fmt.Errorf("seed admin: %w", err)
	}
	if err := circular.SeedPartners(ctx, partners); err != nil {
		return nil, fmt.Errorf("seed partners: %w", err)
	}

	tokens := token.NewManager(cfg.JWTSecret, cfg.TokenTTL)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(echoMiddleware.Recover())
	e.Use(middleware.RequestLog(log.Named("http")))
	e.Use(middleware.Timeout(cfg.RequestTimeout))

	router.New(e, tokens, auth, router.Controllers{
		Auth:      authCtrlImp.NewAuthController(auth, tokens),
		Farm:      farmCtrlImp.New(farms),
		Advisory:  advCtrlImp.New(advice),
		Surplus:   surCtrlImp.New(surplus),
		Circular:  circCtrlImp.New(circular),
		Dashboard: dashCtrlImp.New(dashboard),
		Health:    healthCtrlImp.NewHealthCtrl(cfg.Store, db),
	})

	log.Info("app ready",
		zap.String("store", cfg.Store),
		zap.String("match_strategy", strategy.Name()),
		zap.Int("partners", len(partners)),
		zap.Int("yield_crops", len(table)))

	return &App{
		Config:    cfg,
		Echo:      e,
		DB:        db,
		Auth:      auth,
		Farms:     farms,
		Circular:  circular,
		Dashboard: dashboard,
		Tokens:    tokens,
		log:       log,
	}, nil
}

// Shutdown stops the HTTP server and closes the store.
func (a *App) Shutdown(ctx context.Context) error {
	err := a.Echo.Shutdown(ctx)
	if a.DB != nil {
		if sqlDB, dbErr := a.DB.DB(); dbErr == nil {
			if cerr := sqlDB.Close(); err == nil {
				err = cerr
			}
		}
	}
	return err
}

// ShutdownTimeout bounds graceful shutdown.
const ShutdownTimeout = 5 * time.Second
