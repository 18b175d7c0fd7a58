package routes

import (
	"truckops/internal/config"
	"truckops/internal/controllers"
	"truckops/internal/middleware"
	"truckops/internal/store"

	"github.com/gin-gonic/gin"
)

func DriverRoutes(r *gin.Engine) {
	drivers := r.Group("/drivers")
	drivers.Use(middleware.RequireAuth())

	driverStore := store.NewGormDriverStore(config.GetDB())
	ctl := controllers.NewDriverController(driverStore)
	hos := controllers.NewHOSController(driverStore)
	docs := controllers.NewDocumentController(driverStore)

	{
		drivers.GET("", ctl.List)
		drivers.POST("", ctl.Create)
		drivers.GET("/:id", ctl.Get)
		drivers.PATCH("/:id", ctl.Update)
		drivers.DELETE("/:id", middleware.RequireAuthWithRole("admin"), ctl.Delete)

		drivers.PUT("/:id/status", ctl.UpdateStatus)
		drivers.POST("/:id/assign-load", ctl.AssignLoad)
		drivers.POST("/:id/complete-load", ctl.CompleteLoad)
		drivers.POST("/:id/terminate", ctl.Terminate)
		drivers.POST("/:id/leave", ctl.PutOnLeave)
		drivers.POST("/:id/return", ctl.ReturnFromLeave)

		drivers.GET("/:id/credentials", ctl.Credentials)
		drivers.GET("/:id/report", ctl.Report)

		drivers.POST("/:id/contacts", ctl.AddContact)
		drivers.DELETE("/:id/contacts/:contactId", ctl.RemoveContact)
		drivers.POST("/:id/endorsements", ctl.AddEndorsement)
		drivers.DELETE("/:id/endorsements/:endorsementId", ctl.RemoveEndorsement)
		drivers.POST("/:id/documents", docs.Upload)
		drivers.DELETE("/:id/documents/:documentId", docs.Delete)

		drivers.GET("/:id/hos", hos.Get)
		drivers.POST("/:id/hos/driving", hos.AddDrivingTime)
		drivers.POST("/:id/hos/duty", hos.AddOnDutyTime)
		drivers.POST("/:id/hos/break", hos.TakeBreak)
		drivers.POST("/:id/hos/reset", hos.Reset)
	}
}
