// Package client provides the API client for the progress API
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	fiber "github.com/gofiber/fiber/v2"

	"github.com/clienttrack/clienttrack/internal/api/v1/handlers"
	"github.com/clienttrack/clienttrack/internal/api/v1/routes"
	"github.com/clienttrack/clienttrack/internal/db/models"
)

// DefaultTimeout is the default timeout for API requests
const DefaultTimeout = 30 * time.Second

// Errors mapped from API failure responses
var (
	// ErrNotFound indicates the project does not exist
	ErrNotFound = errors.New("project not found")
	// ErrAuthRequired indicates the project is protected and needs credentials
	ErrAuthRequired = errors.New("project requires authentication")
	// ErrInvalidCredentials indicates the supplied credentials were rejected
	ErrInvalidCredentials = errors.New("invalid project credentials")
)

// Credentials are optional viewer credentials for protected projects
type Credentials struct {
	Password string
	Token    string
}

// Options contains configuration options for the API client
type Options struct {
	// BaseURL is the base URL of the API
	BaseURL string

	// Timeout is the request timeout
	Timeout time.Duration
}

// DefaultOptions returns the default client options
func DefaultOptions() *Options {
	return &Options{
		BaseURL: routes.DefaultBaseURL,
		Timeout: DefaultTimeout,
	}
}

// APIClient is the HTTP client for the progress API
type APIClient struct {
	baseURL string
	timeout time.Duration
}

// NewClient creates a new API client with the given options
func NewClient(opts *Options) (*APIClient, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	if _, err := url.Parse(opts.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	return &APIClient{
		baseURL: opts.BaseURL,
		timeout: opts.Timeout,
	}, nil
}

// HealthCheck checks the API health endpoint
func (c *APIClient) HealthCheck(_ context.Context) (map[string]string, error) {
	var health map[string]string
	if err := c.get(routes.HealthCheckURL(), &health); err != nil {
		return nil, err
	}
	return health, nil
}

// GetProject fetches the progress view for a project. The returned view
// carries the server-computed statistics; callers can re-derive them locally
// with progress.ComputeStatistics over the view's templates.
func (c *APIClient) GetProject(_ context.Context, id uint, creds Credentials) (*handlers.ProjectViewResponse, error) {
	params := url.Values{}
	if creds.Password != "" {
		params.Set("password", creds.Password)
	}
	if creds.Token != "" {
		params.Set("token", creds.Token)
	}

	var view handlers.ProjectViewResponse
	if err := c.get(routes.GetProjectURL(id, params), &view); err != nil {
		return nil, err
	}
	return &view, nil
}

// ListProjects fetches the dashboard listing using a session token
func (c *APIClient) ListProjects(_ context.Context, sessionToken string, opts *models.ListOptions) ([]models.Project, error) {
	params := url.Values{}
	if opts != nil {
		params.Set("limit", fmt.Sprintf("%d", opts.Limit))
		params.Set("offset", fmt.Sprintf("%d", opts.Offset))
	}

	agent := fiber.Get(c.baseURL + routes.ListProjectsURL(params))
	agent.Set(fiber.HeaderAuthorization, "Bearer "+sessionToken)

	var listing struct {
		Projects []models.Project `json:"projects"`
	}
	if err := c.do(agent, &listing); err != nil {
		return nil, err
	}
	return listing.Projects, nil
}

// Signin exchanges an email/password pair for a session token
func (c *APIClient) Signin(_ context.Context, email, password string) (string, error) {
	agent := fiber.Post(c.baseURL + routes.SigninURL())
	agent.JSON(fiber.Map{"email": email, "password": password})

	var session struct {
		Token string `json:"token"`
	}
	if err := c.do(agent, &session); err != nil {
		return "", err
	}
	return session.Token, nil
}

func (c *APIClient) get(endpoint string, out interface{}) error {
	return c.do(fiber.Get(c.baseURL+endpoint), out)
}

func (c *APIClient) do(agent *fiber.Agent, out interface{}) error {
	agent.Timeout(c.timeout)

	status, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("request failed: %w", errors.Join(errs...))
	}

	if status >= 400 {
		return apiError(status, body)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// apiError maps a failure response to one of the client's error values
func apiError(status int, body []byte) error {
	var failure handlers.ErrorResponse
	_ = json.Unmarshal(body, &failure)

	switch {
	case status == fiber.StatusNotFound:
		return ErrNotFound
	case status == fiber.StatusUnauthorized && failure.RequiresAuth && failure.Error == handlers.ErrMsgInvalidCreds:
		return ErrInvalidCredentials
	case status == fiber.StatusUnauthorized && failure.RequiresAuth:
		return ErrAuthRequired
	case failure.Error != "":
		return fmt.Errorf("api error (status %d): %s", status, failure.Error)
	default:
		return fmt.Errorf("api error (status %d)", status)
	}
}
