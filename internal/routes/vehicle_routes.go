package routes

import (
	"truckops/internal/controllers"
	"truckops/internal/middleware"

	"github.com/gin-gonic/gin"
)

func VehicleRoutes(r *gin.Engine) {
	vehicles := r.Group("/vehicles")
	vehicles.Use(middleware.RequireAuth())
	{
		vehicles.GET("", controllers.ListVehicles)
		vehicles.POST("", controllers.CreateVehicle)
		vehicles.GET("/:id", controllers.GetVehicle)
		vehicles.PATCH("/:id", controllers.UpdateVehicle)
		vehicles.DELETE("/:id", middleware.RequireAuthWithRole("admin"), controllers.DeleteVehicle)
	}
}
