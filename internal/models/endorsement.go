package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Endorsement is a CDL annotation such as H (hazmat) or T (doubles/triples).
type Endorsement struct {
	gorm.Model
	DriverID uint       `json:"driver_id" gorm:"index"`
	Code     string     `json:"code" gorm:"type:varchar(1)"`
	Expiry   *time.Time `json:"expiry,omitempty"`
}

// Normalize uppercases the code and rejects anything outside the known set.
// Runs on both creation and update, so "h" stored anywhere is impossible.
func (e *Endorsement) Normalize() error {
	code := strings.ToUpper(strings.TrimSpace(e.Code))
	if !endorsementCodes[code] {
		return &InvalidEndorsementTypeError{Code: e.Code}
	}
	e.Code = code
	return nil
}
