package router

import (
	"github.com/labstack/echo/v4"

	"agriloop/entities"
	advCtrl "agriloop/pkg/advisory/controller"
	authCtrl "agriloop/pkg/auth/controller"
	"agriloop/pkg/auth/token"
	circCtrl "agriloop/pkg/circular/controller"
	dashCtrl "agriloop/pkg/dashboard/controller"
	farmCtrl "agriloop/pkg/farm/controller"
	"agriloop/pkg/middleware"
	surCtrl "agriloop/pkg/surplus/controller"
)

type Controllers struct {
	Auth      authCtrl.AuthController
	Farm      farmCtrl.FarmController
	Advisory  advCtrl.AdvisoryController
	Surplus   surCtrl.SurplusController
	Circular  circCtrl.CircularController
	Dashboard dashCtrl.DashboardController
	Health    interface{ Health(echo.Context) error }
}

func New(e *echo.Echo, tokens *token.Manager, users middleware.UserLookup, h Controllers) *echo.Echo {
	e.GET("/health", h.Health.Health)

	api := e.Group("/api/v1")
	api.POST("/auth/register", h.Auth.Register)
	api.POST("/auth/login", h.Auth.Login)
	api.POST("/auth/logout", h.Auth.Logout)

	g := api.Group("", middleware.Auth(tokens, users))
	g.GET("/auth/whoami", h.Auth.WhoAmI)
	g.GET("/dashboard", h.Dashboard.Summary)

	admin := g.Group("/admin", middleware.Require(entities.CapManageUsers))
	admin.GET("/users", h.Auth.ListUsers)
	admin.PATCH("/users/:username/role", h.Auth.ChangeRole)
	admin.DELETE("/users/:username", h.Auth.DeleteUser)
	admin.GET("/stats", h.Dashboard.Stats)
	admin.GET("/export", h.Dashboard.Export)

	g.GET("/farms", h.Farm.ListFarms)
	g.POST("/farms", h.Farm.CreateFarm)
	g.GET("/farms/:id", h.Farm.GetFarm)
	g.DELETE("/farms/:id", h.Farm.DeleteFarm)
	g.GET("/farms/:id/crops", h.Farm.ListFarmCrops)
	g.POST("/farms/:id/crops", h.Farm.CreateCrop)
	g.GET("/crops", h.Farm.ListCrops)
	g.PATCH("/crops/:id", h.Farm.PatchCrop)

	g.POST("/advisories/irrigation", h.Advisory.Irrigation)
	g.GET("/advisories", h.Advisory.History)

	g.POST("/surplus/predict", h.Surplus.Predict)
	g.GET("/surplus/listings", h.Surplus.ListListings)
	g.POST("/surplus/listings", h.Surplus.CreateListing)
	g.PATCH("/surplus/listings/:id", h.Surplus.PatchListing)

	g.GET("/partners", h.Circular.ListPartners)
	g.POST("/partners", h.Circular.CreatePartner)
	g.GET("/waste-requests", h.Circular.ListRequests)
	g.POST("/waste-requests", h.Circular.CreateRequest)
	g.POST("/waste-requests/:id/match", h.Circular.MatchRequest)
	g.POST("/waste-requests/:id/complete", h.Circular.CompleteRequest)
	return e
}
