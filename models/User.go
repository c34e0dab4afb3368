package models

import "gorm.io/gorm"

// User represents an application account that can authenticate with the platform.
type User struct {
	gorm.Model
	Username     string    `gorm:"size:50;uniqueIndex;not null"`
	PasswordHash string    `gorm:"size:255;not null"`
	Products     []Product `gorm:"foreignKey:UserID"`
}

func (User) TableName() string {
	return "usuario"
}
