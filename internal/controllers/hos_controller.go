package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"truckops/internal/models"
	"truckops/internal/store"
)

// HOSController exposes the hours-of-service counter endpoints. Counters
// are created with the driver; a driver that somehow lacks one gets a
// fresh counter attached on first access.
type HOSController struct {
	store store.DriverStore
}

func NewHOSController(s store.DriverStore) *HOSController {
	return &HOSController{store: s}
}

type hoursInput struct {
	Hours *float64 `json:"hours" binding:"required"`
}

func (ctl *HOSController) loadCounter(c *gin.Context) (*models.Driver, *models.HOSCounter, bool) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return nil, nil, false
	}
	driver, err := ctl.store.FindByID(c.Request.Context(), id)
	if err != nil {
		respondDomainError(c, err)
		return nil, nil, false
	}
	if driver.HOS == nil {
		hos := models.NewHOSCounter()
		hos.DriverID = driver.ID
		driver.HOS = hos
	}
	return driver, driver.HOS, true
}

func hosResponse(h *models.HOSCounter) gin.H {
	return gin.H{
		"hos":                     h,
		"needs_break":             h.NeedsBreak(),
		"reached_max_driving":     h.HasReachedMaxDrivingHours(),
		"reached_max_on_duty":     h.HasReachedMaxOnDutyHours(),
		"remaining_driving_hours": h.RemainingDrivingHours(),
		"remaining_on_duty_hours": h.RemainingOnDutyHours(),
	}
}

func (ctl *HOSController) Get(c *gin.Context) {
	_, hos, ok := ctl.loadCounter(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, hosResponse(hos))
}

// AddDrivingTime logs driving hours. An amount that would break any daily
// limit is rejected whole; the stored totals stay untouched.
func (ctl *HOSController) AddDrivingTime(c *gin.Context) {
	driver, hos, ok := ctl.loadCounter(c)
	if !ok {
		return
	}

	var input hoursInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	if err := hos.AddDrivingTime(*input.Hours); err != nil {
		respondDomainError(c, err)
		return
	}
	if err := ctl.store.Update(c.Request.Context(), driver); err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, hosResponse(hos))
}

func (ctl *HOSController) AddOnDutyTime(c *gin.Context) {
	driver, hos, ok := ctl.loadCounter(c)
	if !ok {
		return
	}

	var input hoursInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	if err := hos.AddOnDutyTime(*input.Hours); err != nil {
		respondDomainError(c, err)
		return
	}
	if err := ctl.store.Update(c.Request.Context(), driver); err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, hosResponse(hos))
}

func (ctl *HOSController) TakeBreak(c *gin.Context) {
	driver, hos, ok := ctl.loadCounter(c)
	if !ok {
		return
	}

	var input hoursInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	if err := hos.TakeBreak(*input.Hours); err != nil {
		respondDomainError(c, err)
		return
	}
	if err := ctl.store.Update(c.Request.Context(), driver); err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, hosResponse(hos))
}

// Reset zeroes the daily totals. Ops runs this at the start of each duty day.
func (ctl *HOSController) Reset(c *gin.Context) {
	driver, hos, ok := ctl.loadCounter(c)
	if !ok {
		return
	}

	hos.ResetForNewDay()
	if err := ctl.store.Update(c.Request.Context(), driver); err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, hosResponse(hos))
}
