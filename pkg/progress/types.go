// Package progress holds the denormalized project view returned by the
// progress API and the pure computation that derives statuses and roll-up
// statistics from it.
//
// The same functions run on the server when the view is assembled and in any
// consumer that re-derives numbers from an already-fetched view; given the
// same tree they produce the same output.
package progress

import "time"

// Status values shared by tasks, phases and projects
const (
	StatusNotStarted = "Not Started"
	StatusInProgress = "In Progress"
	StatusCompleted  = "Completed"
)

// User identifies a person referenced by assignments and team membership
type User struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// TaskAssignment binds a task to a user. An assignment is completed iff
// CompletedAt is non-nil, independent of the task's own status.
type TaskAssignment struct {
	ID          uint       `json:"id"`
	AssignedAt  time.Time  `json:"assigned_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	User        User       `json:"user"`
}

// Task is one tracked unit of work within an actual phase
type Task struct {
	ID          uint             `json:"id"`
	Description string           `json:"description"`
	Status      string           `json:"status"`
	DueDate     *time.Time       `json:"due_date,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	Assignments []TaskAssignment `json:"assignments"`
}

// Phase is one ordered stage of actual work. Status is the effective label:
// the stored value when one exists, otherwise the value derived from Tasks.
type Phase struct {
	ID         uint      `json:"id"`
	ProjectID  uint      `json:"project_id"`
	TemplateID *uint     `json:"template_id,omitempty"`
	Name       string    `json:"name"`
	Order      int       `json:"order"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	Tasks      []Task    `json:"tasks"`
}

// TemplateTask is one planned unit of work; plan data never carries a status
type TemplateTask struct {
	ID          uint   `json:"id"`
	Description string `json:"description"`
}

// TemplatePhase is one ordered stage of a template's plan
type TemplatePhase struct {
	ID    uint           `json:"id"`
	Name  string         `json:"name"`
	Order int            `json:"order"`
	Tasks []TemplateTask `json:"tasks"`
}

// Template pairs a blueprint with the actual phases instantiated from it for
// one project. TemplatePhases is the plan; Phases is the work being tracked.
type Template struct {
	ID             uint            `json:"id"`
	Name           string          `json:"name"`
	Category       string          `json:"category"`
	Description    string          `json:"description"`
	TemplatePhases []TemplatePhase `json:"template_phases"`
	Phases         []Phase         `json:"phases"`
}

// TeamMember is a project membership with its user resolved
type TeamMember struct {
	ID      uint      `json:"id"`
	Role    string    `json:"role"`
	AddedAt time.Time `json:"added_at"`
	User    User      `json:"user"`
}

// Statistics is the roll-up summary computed from a project view. It is
// derived fresh on every read and never persisted.
type Statistics struct {
	TotalPhases                    int `json:"total_phases"`
	CompletedPhases                int `json:"completed_phases"`
	CompletionPercentage           int `json:"completion_percentage"`
	TotalTasks                     int `json:"total_tasks"`
	CompletedTasks                 int `json:"completed_tasks"`
	TaskCompletionPercentage       int `json:"task_completion_percentage"`
	OverdueTasks                   int `json:"overdue_tasks"`
	TotalAssignments               int `json:"total_assignments"`
	CompletedAssignments           int `json:"completed_assignments"`
	AssignmentCompletionPercentage int `json:"assignment_completion_percentage"`
	TotalTemplatePhases            int `json:"total_template_phases"`
	TotalTemplateTasks             int `json:"total_template_tasks"`
}

// Project is the fully assembled view: project fields, template plans, actual
// progress, team and statistics. Status is the effective label (stored value
// when one exists, otherwise derived from the phases).
type Project struct {
	ID          uint         `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Type        string       `json:"type"`
	Status      string       `json:"status"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
	Templates   []Template   `json:"templates"`
	Team        []TeamMember `json:"team"`
	Statistics  Statistics   `json:"statistics"`
}
