package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"truckops/internal/config"
	"truckops/internal/models"
)

// CreateVehicle registers a new truck; defaults InService to true
func CreateVehicle(c *gin.Context) {
	var input struct {
		UnitNumber  string `json:"unit_number" binding:"required"`
		VIN         string `json:"vin" binding:"required"`
		Make        string `json:"make"`
		Model       string `json:"model"`
		Year        int    `json:"year"`
		PlateNumber string `json:"plate_number"`
		// InService omitted: always default true on creation
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid vehicle input: " + err.Error()})
		return
	}

	vehicle := models.Vehicle{
		UnitNumber:  input.UnitNumber,
		VIN:         input.VIN,
		Make:        input.Make,
		ModelName:   input.Model,
		Year:        input.Year,
		PlateNumber: input.PlateNumber,
		InService:   true,
	}
	if err := config.DB.Create(&vehicle).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "unit number already registered"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create vehicle: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"vehicle": vehicle})
}

// GetVehicle retrieves a truck by ID
func GetVehicle(c *gin.Context) {
	id := c.Param("id")
	var vehicle models.Vehicle
	if err := config.DB.First(&vehicle, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"vehicle": vehicle})
}

// ListVehicles lists the whole fleet
func ListVehicles(c *gin.Context) {
	var vehicles []models.Vehicle
	if err := config.DB.Find(&vehicles).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch vehicles"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": vehicles})
}

// UpdateVehicle modifies an existing truck
func UpdateVehicle(c *gin.Context) {
	id := c.Param("id")
	var vehicle models.Vehicle
	if err := config.DB.First(&vehicle, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
		return
	}

	var input struct {
		UnitNumber  *string `json:"unit_number"`
		VIN         *string `json:"vin"`
		Make        *string `json:"make"`
		Model       *string `json:"model"`
		Year        *int    `json:"year"`
		PlateNumber *string `json:"plate_number"`
		InService   *bool   `json:"in_service"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.UnitNumber != nil {
		vehicle.UnitNumber = *input.UnitNumber
	}
	if input.VIN != nil {
		vehicle.VIN = *input.VIN
	}
	if input.Make != nil {
		vehicle.Make = *input.Make
	}
	if input.Model != nil {
		vehicle.ModelName = *input.Model
	}
	if input.Year != nil {
		vehicle.Year = *input.Year
	}
	if input.PlateNumber != nil {
		vehicle.PlateNumber = *input.PlateNumber
	}
	if input.InService != nil {
		vehicle.InService = *input.InService
	}

	if err := config.DB.Save(&vehicle).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update vehicle: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"vehicle": vehicle})
}

// DeleteVehicle removes a truck by ID
func DeleteVehicle(c *gin.Context) {
	id := c.Param("id")
	res := config.DB.Delete(&models.Vehicle{}, id)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete vehicle"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Vehicle deleted"})
}
