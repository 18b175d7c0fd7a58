package routes

import (
	"truckops/internal/config"
	"truckops/internal/controllers"
	"truckops/internal/middleware"
	"truckops/internal/store"

	"github.com/gin-gonic/gin"
)

func AdminRoutes(r *gin.Engine) {
	ctl := controllers.NewDriverController(store.NewGormDriverStore(config.GetDB()))

	admin := r.Group("/admin")
	admin.Use(middleware.RequireAuthWithRole("admin"))
	{
		// Compliance dashboard: every driver with a credential expired or
		// expiring within ?days (default 30).
		admin.GET("/expiring-credentials", ctl.ExpiringCredentials)
	}
}
