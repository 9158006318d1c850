package models

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// TaskStatus represents the tracked state of a task
type TaskStatus string

// Task status constants. These are the only values the progress roll-up
// understands; the column is free text for anything else.
const (
	// TaskStatusNotStarted indicates no work has happened on the task yet
	TaskStatusNotStarted TaskStatus = "Not Started"
	// TaskStatusInProgress indicates the task is being worked on
	TaskStatusInProgress TaskStatus = "In Progress"
	// TaskStatusCompleted indicates the task is done
	TaskStatusCompleted TaskStatus = "Completed"
)

// String returns the string representation of the task status
func (s TaskStatus) String() string {
	return string(s)
}

// ParseTaskStatus converts a string to a TaskStatus type
func ParseTaskStatus(str string) (TaskStatus, error) {
	switch str {
	case string(TaskStatusNotStarted):
		return TaskStatusNotStarted, nil
	case string(TaskStatusInProgress):
		return TaskStatusInProgress, nil
	case string(TaskStatusCompleted):
		return TaskStatusCompleted, nil
	default:
		return "", fmt.Errorf("invalid task status: %s", str)
	}
}

// UnmarshalJSON implements json.Unmarshaler for TaskStatus
func (s *TaskStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}

	status, err := ParseTaskStatus(str)
	if err != nil {
		return err
	}

	*s = status
	return nil
}

// Task is the smallest trackable unit of work within a phase
type Task struct {
	gorm.Model
	PhaseID     uint             `json:"-" gorm:"not null; index"`
	Description string           `json:"description" gorm:"type:text"`
	Status      TaskStatus       `json:"status" gorm:"not null; index; default:'Not Started'"`
	DueDate     *time.Time       `json:"due_date,omitempty"`
	Assignments []TaskAssignment `json:"assignments" gorm:"foreignKey:TaskID"`
}

// BeforeCreate is a GORM hook that runs before creating a new task
func (t *Task) BeforeCreate(_ *gorm.DB) error {
	if t.Status == "" {
		t.Status = TaskStatusNotStarted
	}
	return nil
}

// TaskAssignment binds a task to a responsible user. Its completion marker is
// independent of the task's own status.
type TaskAssignment struct {
	gorm.Model
	TaskID      uint       `json:"-" gorm:"not null; index"`
	UserID      uint       `json:"-" gorm:"not null; index"`
	AssignedAt  time.Time  `json:"assigned_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	User        User       `json:"user" gorm:"foreignKey:UserID"`
}
