package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"truckops/internal/models"
	"truckops/internal/reports"
	"truckops/internal/store"
)

// DriverController owns the driver CRUD and lifecycle endpoints. All
// persistence goes through the DriverStore collaborator; the domain rules
// themselves live on the models.
type DriverController struct {
	store store.DriverStore
}

func NewDriverController(s store.DriverStore) *DriverController {
	return &DriverController{store: s}
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name + " format."})
		return 0, false
	}
	return uint(id), true
}

func (ctl *DriverController) load(c *gin.Context) (*models.Driver, bool) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return nil, false
	}
	driver, err := ctl.store.FindByID(c.Request.Context(), id)
	if err != nil {
		respondDomainError(c, err)
		return nil, false
	}
	return driver, true
}

// Create registers a new driver. Status defaults to available and
// employment status to active unless the payload overrides them.
func (ctl *DriverController) Create(c *gin.Context) {
	var input models.CreateDriverInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid driver input: " + err.Error()})
		return
	}

	driver, err := models.NewDriver(input)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	// Duplicate email check up front so the caller gets a clean conflict
	// instead of a constraint error string.
	if _, err := ctl.store.FindByEmail(c.Request.Context(), driver.Email); err == nil {
		respondDomainError(c, models.ErrEmailTaken)
		return
	} else if !errors.Is(err, models.ErrDriverNotFound) {
		respondDomainError(c, err)
		return
	}

	if err := ctl.store.Create(c.Request.Context(), driver); err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"driver": driver})
}

func (ctl *DriverController) List(c *gin.Context) {
	drivers, err := ctl.store.FindAll(c.Request.Context())
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": drivers})
}

func (ctl *DriverController) Get(c *gin.Context) {
	driver, ok := ctl.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"driver": driver})
}

// Update applies a partial update. The merged record is re-validated as a
// whole; an invalid merge rejects the entire patch.
func (ctl *DriverController) Update(c *gin.Context) {
	driver, ok := ctl.load(c)
	if !ok {
		return
	}

	var input models.UpdateDriverInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	if input.Email != nil && *input.Email != driver.Email {
		if other, err := ctl.store.FindByEmail(c.Request.Context(), *input.Email); err == nil && other.ID != driver.ID {
			respondDomainError(c, models.ErrEmailTaken)
			return
		} else if err != nil && !errors.Is(err, models.ErrDriverNotFound) {
			respondDomainError(c, err)
			return
		}
	}

	if err := driver.ApplyUpdate(input); err != nil {
		respondDomainError(c, err)
		return
	}
	if err := ctl.store.Update(c.Request.Context(), driver); err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"driver": driver})
}

func (ctl *DriverController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := ctl.store.Delete(c.Request.Context(), id); err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Driver deleted"})
}

// UpdateStatus sets the operational status without any transition checks.
// Dispatch uses this to correct a driver's board state by hand.
func (ctl *DriverController) UpdateStatus(c *gin.Context) {
	driver, ok := ctl.load(c)
	if !ok {
		return
	}

	var input struct {
		Status models.OperationalStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	if err := driver.SetStatus(input.Status); err != nil {
		respondDomainError(c, err)
		return
	}
	if err := ctl.store.Update(c.Request.Context(), driver); err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"driver": driver})
}

func (ctl *DriverController) AssignLoad(c *gin.Context) {
	driver, ok := ctl.load(c)
	if !ok {
		return
	}

	var input struct {
		LoadID string `json:"load_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	if err := driver.AssignLoad(input.LoadID); err != nil {
		respondDomainError(c, err)
		return
	}
	if err := ctl.store.Update(c.Request.Context(), driver); err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"driver": driver})
}

func (ctl *DriverController) CompleteLoad(c *gin.Context) {
	driver, ok := ctl.load(c)
	if !ok {
		return
	}
	if err := driver.CompleteLoad(); err != nil {
		respondDomainError(c, err)
		return
	}
	if err := ctl.store.Update(c.Request.Context(), driver); err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"driver": driver})
}

func (ctl *DriverController) Terminate(c *gin.Context) {
	driver, ok := ctl.load(c)
	if !ok {
		return
	}

	var input struct {
		Notes string `json:"notes"`
	}
	// Body is optional here.
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
			return
		}
	}

	driver.Terminate(input.Notes)
	if err := ctl.store.Update(c.Request.Context(), driver); err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"driver": driver})
}

func (ctl *DriverController) PutOnLeave(c *gin.Context) {
	driver, ok := ctl.load(c)
	if !ok {
		return
	}

	var input struct {
		Notes string `json:"notes"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
			return
		}
	}

	driver.PutOnLeave(input.Notes)
	if err := ctl.store.Update(c.Request.Context(), driver); err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"driver": driver})
}

func (ctl *DriverController) ReturnFromLeave(c *gin.Context) {
	driver, ok := ctl.load(c)
	if !ok {
		return
	}
	if err := driver.ReturnFromLeave(); err != nil {
		respondDomainError(c, err)
		return
	}
	if err := ctl.store.Update(c.Request.Context(), driver); err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"driver": driver})
}

// Credentials reports expired / expiring-soon flags against a day
// threshold (?days=, default 30).
func (ctl *DriverController) Credentials(c *gin.Context) {
	driver, ok := ctl.load(c)
	if !ok {
		return
	}

	days := 30
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be a non-negative integer"})
			return
		}
		days = parsed
	}

	c.JSON(http.StatusOK, gin.H{
		"driver_id":   driver.ID,
		"days":        days,
		"credentials": driver.CheckCredentials(days),
	})
}

// ExpiringCredentials lists drivers with anything expired or expiring
// within the threshold. Backs the compliance dashboard.
func (ctl *DriverController) ExpiringCredentials(c *gin.Context) {
	days := 30
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be a non-negative integer"})
			return
		}
		days = parsed
	}

	drivers, err := ctl.store.FindAll(c.Request.Context())
	if err != nil {
		respondDomainError(c, err)
		return
	}

	type flagged struct {
		DriverID    uint                    `json:"driver_id"`
		Name        string                  `json:"name"`
		Credentials models.CredentialStatus `json:"credentials"`
	}
	var out []flagged
	for i := range drivers {
		cs := drivers[i].CheckCredentials(days)
		if cs.LicenseExpired || cs.LicenseExpiringSoon ||
			cs.MedicalCardExpired || cs.MedicalCardExpiringSoon ||
			cs.TwicExpired || cs.TwicExpiringSoon {
			out = append(out, flagged{
				DriverID:    drivers[i].ID,
				Name:        drivers[i].FullName(),
				Credentials: cs,
			})
		}
	}
	c.JSON(http.StatusOK, gin.H{"days": days, "data": out})
}

// Report streams the driver's compliance summary as a PDF.
func (ctl *DriverController) Report(c *gin.Context) {
	driver, ok := ctl.load(c)
	if !ok {
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", `attachment; filename="driver-`+strconv.FormatUint(uint64(driver.ID), 10)+`-compliance.pdf"`)
	if err := reports.WriteCompliance(driver, time.Now(), c.Writer); err != nil {
		respondDomainError(c, err)
	}
}

func (ctl *DriverController) AddContact(c *gin.Context) {
	driver, ok := ctl.load(c)
	if !ok {
		return
	}

	var input struct {
		Name         string `json:"name"`
		Relationship string `json:"relationship"`
		Phone        string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	contact := models.EmergencyContact{
		Name:         input.Name,
		Relationship: input.Relationship,
		Phone:        input.Phone,
	}
	if err := driver.AddEmergencyContact(contact); err != nil {
		respondDomainError(c, err)
		return
	}
	if err := ctl.store.Update(c.Request.Context(), driver); err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"driver": driver})
}

func (ctl *DriverController) RemoveContact(c *gin.Context) {
	driver, ok := ctl.load(c)
	if !ok {
		return
	}
	contactID, ok := parseIDParam(c, "contactId")
	if !ok {
		return
	}

	if !driver.RemoveEmergencyContact(contactID) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Emergency contact not found"})
		return
	}
	if err := ctl.store.Update(c.Request.Context(), driver); err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"driver": driver})
}

func (ctl *DriverController) AddEndorsement(c *gin.Context) {
	driver, ok := ctl.load(c)
	if !ok {
		return
	}

	var input struct {
		Code   string     `json:"code" binding:"required"`
		Expiry *time.Time `json:"expiry"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	endorsement := models.Endorsement{Code: input.Code, Expiry: input.Expiry}
	if err := driver.AddEndorsement(endorsement); err != nil {
		respondDomainError(c, err)
		return
	}
	if err := ctl.store.Update(c.Request.Context(), driver); err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"driver": driver})
}

func (ctl *DriverController) RemoveEndorsement(c *gin.Context) {
	driver, ok := ctl.load(c)
	if !ok {
		return
	}
	endorsementID, ok := parseIDParam(c, "endorsementId")
	if !ok {
		return
	}

	if !driver.RemoveEndorsement(endorsementID) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Endorsement not found"})
		return
	}
	if err := ctl.store.Update(c.Request.Context(), driver); err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"driver": driver})
}
