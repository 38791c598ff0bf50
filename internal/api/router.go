// Package api provides the HTTP layer for Montessa
package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/TestimonyAdegoke/montessa-sub000/internal/auth"
	"github.com/TestimonyAdegoke/montessa-sub000/internal/builder"
	"github.com/TestimonyAdegoke/montessa-sub000/internal/config"
	"github.com/TestimonyAdegoke/montessa-sub000/internal/store"
)

// SetupRouter configures all routes and middleware
func SetupRouter(db *gorm.DB, cfg *config.Config) *gin.Engine {
	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	if len(cfg.CORS.AllowedOrigins) == 1 && cfg.CORS.AllowedOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.CORS.AllowedOrigins
	}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	corsConfig.AllowCredentials = !corsConfig.AllowAllOrigins
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	jwtService := auth.NewJWTService()
	registry := builder.DefaultRegistry()
	siteStore := store.NewSiteStore(db)

	authHandler := NewAuthHandler(db, jwtService)
	builderHandler := NewBuilderHandler(siteStore, registry, cfg.Builder.AutosaveIdle, cfg.Builder.SessionTTL)
	siteHandler := NewSiteHandler(siteStore, registry)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "montessa"})
	})

	// Public published sites
	router.GET("/s/:tenant", siteHandler.ServePage)
	router.GET("/s/:tenant/*slug", siteHandler.ServePage)

	api := router.Group("/api")
	{
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/refresh", authHandler.RefreshToken)
			authRoutes.POST("/logout", authHandler.Logout)
		}

		protected := api.Group("")
		protected.Use(AuthMiddleware(jwtService))
		{
			protected.GET("/auth/me", authHandler.GetMe)
			protected.POST("/auth/change-password", authHandler.ChangePassword)
			protected.POST("/auth/register", RequireRole("admin"), authHandler.Register)

			bld := protected.Group("/builder")
			bld.Use(RequireRole("admin", "site_editor"))
			{
				bld.GET("/state", builderHandler.GetState)
				bld.GET("/panel", builderHandler.GetPanel)
				bld.GET("/canvas", builderHandler.RenderCanvas)
				bld.GET("/preview", builderHandler.RenderPreview)

				bld.POST("/blocks", builderHandler.InsertBlock)
				bld.DELETE("/blocks/:id", builderHandler.DeleteBlock)
				bld.POST("/blocks/move", builderHandler.MoveBlock)
				bld.POST("/blocks/drop", builderHandler.HandleDrop)
				bld.POST("/blocks/:id/select", builderHandler.SelectBlock)
				bld.POST("/selection/clear", builderHandler.ClearSelection)
				bld.PATCH("/blocks/:id/props", builderHandler.ChangeField)
				bld.PATCH("/blocks/:id/array", builderHandler.ChangeArrayField)

				bld.POST("/undo", builderHandler.Undo)
				bld.POST("/redo", builderHandler.Redo)
				bld.POST("/publish", builderHandler.Publish)
				bld.POST("/flush", builderHandler.Flush)

				bld.GET("/templates", builderHandler.ListTemplates)
				bld.POST("/templates/:id/apply", builderHandler.ApplyTemplate)
				bld.POST("/templates/confirm", builderHandler.ConfirmTemplate)
				bld.POST("/templates/cancel", builderHandler.CancelTemplate)

				bld.GET("/pages", builderHandler.ListPages)
				bld.POST("/pages", builderHandler.CreatePage)
				bld.POST("/pages/:id/switch", builderHandler.SwitchPage)
				bld.PATCH("/pages/:id", builderHandler.RenamePage)
				bld.DELETE("/pages/:id", builderHandler.DeletePage)
				bld.POST("/pages/:id/home", builderHandler.SetHomePage)

				bld.PUT("/styles", builderHandler.UpdateStyles)
			}
		}
	}

	return router
}
