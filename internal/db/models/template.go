package models

import (
	"gorm.io/gorm"
)

// Template is a reusable project blueprint. Its phases and tasks are pure
// plan data and never carry a status.
type Template struct {
	gorm.Model
	Name        string          `json:"name" gorm:"not null; index"`
	Category    string          `json:"category" gorm:"index"`
	Description string          `json:"description" gorm:"type:text"`
	Phases      []TemplatePhase `json:"phases" gorm:"foreignKey:TemplateID"`
}

// TemplatePhase is one ordered stage of a template's plan
type TemplatePhase struct {
	gorm.Model
	TemplateID uint           `json:"-" gorm:"not null; index"`
	Name       string         `json:"name" gorm:"not null"`
	PhaseOrder int            `json:"phase_order" gorm:"not null; index"`
	Tasks      []TemplateTask `json:"tasks" gorm:"foreignKey:TemplatePhaseID"`
}

// TemplateTask is one planned unit of work within a template phase
type TemplateTask struct {
	gorm.Model
	TemplatePhaseID uint   `json:"-" gorm:"not null; index"`
	Description     string `json:"description" gorm:"type:text"`
}

// ProjectTemplate links a project to a template it was built from. Only
// active links participate in the progress view.
//
// IsActive carries no column default: a default would make GORM skip the
// zero value on insert, so a deactivated link could never be written.
// Callers set the flag explicitly when creating links.
type ProjectTemplate struct {
	gorm.Model
	ProjectID  uint     `json:"-" gorm:"not null; index"`
	TemplateID uint     `json:"template_id" gorm:"not null; index"`
	IsActive   bool     `json:"is_active" gorm:"not null; index"`
	Template   Template `json:"template" gorm:"foreignKey:TemplateID"`
}
