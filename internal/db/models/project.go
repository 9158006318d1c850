package models

import (
	"gorm.io/gorm"
)

// Project is a tracked client project.
//
// Password and Token are the project-level view credentials: when either is
// non-empty the progress view requires matching credentials. Status is the
// stored label and may be empty, in which case callers derive it from the
// project's phases.
type Project struct {
	gorm.Model
	Name        string `json:"name" gorm:"not null; index"`
	Description string `json:"description" gorm:"type:text"`
	Type        string `json:"type" gorm:"index"`
	Status      string `json:"status,omitempty"`
	Password    string `json:"-"`
	Token       string `json:"-"`
	CreatedBy   uint   `json:"-" gorm:"index"`
}

// Protected reports whether the project's progress view requires credentials
func (p *Project) Protected() bool {
	return p.Password != "" || p.Token != ""
}
