package handlers

import (
	"errors"

	fiber "github.com/gofiber/fiber/v2"

	"github.com/clienttrack/clienttrack/internal/db/models"
	"github.com/clienttrack/clienttrack/internal/logger"
	"github.com/clienttrack/clienttrack/internal/services"
	"github.com/clienttrack/clienttrack/pkg/progress"
)

// ProjectViewResponse is the success payload of the progress view endpoint.
// RequiresAuth is set when a protected project was unlocked with credentials.
type ProjectViewResponse struct {
	Project      *progress.Project `json:"project"`
	RequiresAuth bool              `json:"requires_auth,omitempty"`
}

// ErrorResponse is the failure payload of the progress view endpoint.
// RequiresAuth tells the UI to present credential inputs instead of a hard
// not-found state.
type ErrorResponse struct {
	Error        string `json:"error"`
	RequiresAuth bool   `json:"requires_auth,omitempty"`
}

// ProjectHandler handles HTTP requests for project operations
type ProjectHandler struct {
	*APIHandler
}

// NewProjectHandler creates a new ProjectHandler instance
func NewProjectHandler(api *APIHandler) *ProjectHandler {
	return &ProjectHandler{
		APIHandler: api,
	}
}

// GetProject serves the gated progress view for one project. Credentials are
// taken from the password and token query parameters.
func (h *ProjectHandler) GetProject(c *fiber.Ctx) error {
	projectID, err := c.ParamsInt("id")
	if err != nil || projectID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: ErrMsgInvalidProjectID})
	}

	creds := services.Credentials{
		Password: c.Query("password"),
		Token:    c.Query("token"),
	}

	decision, err := h.gate.Authorize(c.Context(), uint(projectID), creds)
	switch {
	case errors.Is(err, services.ErrProjectNotFound):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: ErrMsgProjNotFound})
	case errors.Is(err, services.ErrAuthRequired):
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{Error: ErrMsgAuthRequired, RequiresAuth: true})
	case errors.Is(err, services.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{Error: ErrMsgInvalidCreds, RequiresAuth: true})
	case err != nil:
		logger.Errorf("project authorization failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: ErrMsgInternal})
	}

	view, err := h.aggregator.Aggregate(c.Context(), uint(projectID))
	if errors.Is(err, services.ErrProjectNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: ErrMsgProjNotFound})
	}
	if err != nil {
		logger.Errorf("project aggregation failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: ErrMsgInternal})
	}

	return c.JSON(ProjectViewResponse{
		Project:      view,
		RequiresAuth: decision.RequiresAuth,
	})
}

// ListProjects serves the signed-in dashboard listing
func (h *ProjectHandler) ListProjects(c *fiber.Ctx) error {
	var opts models.ListOptions
	opts.Limit = c.QueryInt("limit", models.DefaultLimit)
	opts.Offset = c.QueryInt("offset", 0)

	projects, err := h.projects.List(c.Context(), &opts)
	if err != nil {
		logger.Errorf("project listing failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: ErrMsgInternal})
	}

	return c.JSON(fiber.Map{
		"projects": projects,
		"total":    len(projects),
	})
}
