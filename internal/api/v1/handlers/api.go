package handlers

import (
	"github.com/clienttrack/clienttrack/internal/db/repos"
	"github.com/clienttrack/clienttrack/internal/services"
)

// APIHandler is a handler for the API
type APIHandler struct {
	gate       *services.Gate
	aggregator *services.Aggregator
	auth       *services.Auth
	projects   *repos.ProjectRepository
	users      *repos.UserRepository
}

// NewAPIHandler creates a new API handler
func NewAPIHandler(gate *services.Gate, aggregator *services.Aggregator, auth *services.Auth, projects *repos.ProjectRepository, users *repos.UserRepository) *APIHandler {
	return &APIHandler{
		gate:       gate,
		aggregator: aggregator,
		auth:       auth,
		projects:   projects,
		users:      users,
	}
}
