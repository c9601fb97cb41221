package models

import "gorm.io/gorm"

// User owns journal rows. Every other table is scoped by UserID.
type User struct {
	gorm.Model
	Name     string `gorm:"uniqueIndex;not null" json:"name"`
	APIToken string `gorm:"uniqueIndex;not null" json:"-"`
}
