// internal/models/vehicle.go
package models

import (
	"gorm.io/gorm"
)

// Vehicle is a truck in the fleet. Drivers reference it through VehicleID.
type Vehicle struct {
	gorm.Model
	UnitNumber  string `json:"unit_number" gorm:"unique;not null"`
	VIN         string `json:"vin"`
	Make        string `json:"make"`
	ModelName   string `json:"model"`
	Year        int    `json:"year"`
	PlateNumber string `json:"plate_number"`
	InService   bool   `json:"in_service" gorm:"default:true"`
}
