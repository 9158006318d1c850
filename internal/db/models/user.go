package models

import (
	"gorm.io/gorm"
)

// DefaultRole is the role assigned to self-registered users
const DefaultRole = "client"

// User is a client profile. PasswordHash is empty for users that only ever
// signed in through an external identity provider.
type User struct {
	gorm.Model
	Name         string `json:"name" gorm:"not null"`
	Email        string `json:"email" gorm:"not null; uniqueIndex"`
	Company      string `json:"company"`
	Phone        string `json:"phone,omitempty"`
	Role         string `json:"role" gorm:"not null; default:'client'"`
	PasswordHash string `json:"-"`
}

// ProjectTeam is a project membership with a free-text role
type ProjectTeam struct {
	gorm.Model
	ProjectID uint   `json:"-" gorm:"not null; index"`
	UserID    uint   `json:"-" gorm:"not null; index"`
	Role      string `json:"role"`
	User      User   `json:"user" gorm:"foreignKey:UserID"`
}
