package models

import (
	"gorm.io/gorm"
)

type EmergencyContact struct {
	gorm.Model
	DriverID     uint   `json:"driver_id" gorm:"index"`
	Name         string `json:"name"`
	Relationship string `json:"relationship"`
	Phone        string `json:"phone"`
}

// Validate requires all three fields and a phone number carrying at least
// ten digits (formatting characters are ignored).
func (c *EmergencyContact) Validate() error {
	if c.Name == "" {
		return &InvalidDataError{Reason: "emergency contact name is required"}
	}
	if c.Relationship == "" {
		return &InvalidDataError{Reason: "emergency contact relationship is required"}
	}
	if c.Phone == "" {
		return &InvalidDataError{Reason: "emergency contact phone is required"}
	}
	if digitCount(c.Phone) < 10 {
		return &InvalidDataError{Reason: "emergency contact phone must contain at least 10 digits"}
	}
	return nil
}

func digitCount(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}
