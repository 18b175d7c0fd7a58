package models

import "gorm.io/gorm"

// User is a back-office account (dispatcher or admin) allowed to manage
// driver records. Drivers themselves do not log in here.
type User struct {
	gorm.Model
	Name     string `json:"name"`
	Email    string `json:"email" gorm:"unique"`
	Password string `json:"-"`
	Role     string `json:"role"` // "dispatcher" or "admin"
}
