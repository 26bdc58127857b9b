package router

import (
	"github.com/Karann1101/sahyadri-guardian/internal/config"
	"github.com/Karann1101/sahyadri-guardian/internal/handler"
	"github.com/Karann1101/sahyadri-guardian/internal/middleware"
	"github.com/Karann1101/sahyadri-guardian/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter configures the Gin engine and the API surface.
func SetupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	api := r.Group("/api")

	jwtSecret := cfg.JWT.Secret

	// auth endpoints (session verification is open: the web client polls it
	// before any user is established)
	authHandler := handler.NewAuthHandler(db, cfg)
	api.POST("/signup", authHandler.Signup)
	api.POST("/login", authHandler.Login)
	api.POST("/auth/logout", authHandler.Logout)
	api.GET("/auth/me", authHandler.Me)

	// public read-only surface
	trailHandler := handler.NewTrailHandler(db)
	api.GET("/trails", trailHandler.ListTrails)
	api.GET("/trails/:id", trailHandler.GetTrail)

	hazardHandler := handler.NewHazardHandler(db, cfg.App.PageSize)
	api.GET("/hazards", hazardHandler.ListHazards)

	// submitting a report requires a signed-in user
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(jwtSecret, db))
	protected.POST("/hazards", hazardHandler.CreateHazard)

	// moderation and user management
	admin := api.Group("/admin")
	admin.Use(
		middleware.AuthMiddleware(jwtSecret, db),
		middleware.RequireRole(models.RoleAdmin),
	)
	admin.PATCH("/hazards/:id/status", hazardHandler.UpdateStatus)
	admin.DELETE("/hazards/:id", hazardHandler.DeleteHazard)
	admin.GET("/users", handler.ListUsers(db))
	admin.PATCH("/users/:id/active", handler.SetUserActive(db))

	exportHandler := handler.NewExportHandler(db)
	admin.GET("/hazards/export/csv", exportHandler.ExportCSV)
	admin.GET("/hazards/export/xlsx", exportHandler.ExportXLSX)

	return r
}
