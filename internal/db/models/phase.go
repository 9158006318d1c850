package models

import (
	"gorm.io/gorm"
)

// Phase is an ordered stage of actual project work. TemplateID records which
// template's plan the phase was instantiated from, when any.
//
// Status is the stored label; it may be empty, in which case callers derive
// the status from the phase's tasks.
type Phase struct {
	gorm.Model
	ProjectID  uint   `json:"-" gorm:"not null; index"`
	TemplateID *uint  `json:"template_id,omitempty" gorm:"index"`
	Name       string `json:"name" gorm:"not null"`
	PhaseOrder int    `json:"phase_order" gorm:"not null; index"`
	Status     string `json:"status,omitempty"`
	Tasks      []Task `json:"tasks" gorm:"foreignKey:PhaseID"`
}
