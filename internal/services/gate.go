// Package services provides business logic for the progress API
package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/clienttrack/clienttrack/internal/db/models"
)

// Access gate errors
var (
	// ErrProjectNotFound indicates the requested project does not exist
	ErrProjectNotFound = errors.New("project not found")
	// ErrAuthRequired indicates the project is protected and no credentials were supplied
	ErrAuthRequired = errors.New("requires authentication")
	// ErrInvalidCredentials indicates the supplied credentials do not match
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Credentials are the optional viewer credentials supplied with a progress request
type Credentials struct {
	Password string
	Token    string
}

// empty reports whether no credential was supplied at all
func (c Credentials) empty() bool {
	return c.Password == "" && c.Token == ""
}

// AccessDecision is the result of a successful authorization. RequiresAuth
// records that the project is protected and was unlocked with credentials,
// which the UI uses to keep its credential inputs visible.
type AccessDecision struct {
	Project      *models.Project
	RequiresAuth bool
}

// ProjectGetter is the read access the gate and aggregator need for the
// primary project record
type ProjectGetter interface {
	Get(ctx context.Context, id uint) (*models.Project, error)
}

// Gate decides whether a caller may view a project's progress
type Gate struct {
	projects ProjectGetter
}

// NewGate creates a new access gate
func NewGate(projects ProjectGetter) *Gate {
	return &Gate{
		projects: projects,
	}
}

// Authorize checks the supplied credentials against the project's access
// fields.
//
// A project with neither password nor token set is public and any supplied
// credentials are ignored. A protected project rejects empty credentials with
// ErrAuthRequired and mismatches with ErrInvalidCredentials; when both a
// password and a token are set, both must match. Which of the two checks
// failed is never reported.
func (g *Gate) Authorize(ctx context.Context, projectID uint, creds Credentials) (*AccessDecision, error) {
	project, err := g.projects.Get(ctx, projectID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProjectNotFound
	}
	if err != nil {
		return nil, err
	}

	if !project.Protected() {
		return &AccessDecision{Project: project}, nil
	}

	if creds.empty() {
		return nil, ErrAuthRequired
	}

	if project.Password != "" && creds.Password != project.Password {
		return nil, ErrInvalidCredentials
	}
	if project.Token != "" && creds.Token != project.Token {
		return nil, ErrInvalidCredentials
	}

	return &AccessDecision{Project: project, RequiresAuth: true}, nil
}
