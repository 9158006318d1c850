// Package routes defines the API routes and URL structure
package routes

import (
	"fmt"
	"net/url"

	fiber "github.com/gofiber/fiber/v2"

	"github.com/clienttrack/clienttrack/internal/api/v1/handlers"
	"github.com/clienttrack/clienttrack/internal/api/v1/middleware"
	"github.com/clienttrack/clienttrack/internal/services"
)

// API base configuration
const (
	// DefaultPort is the default port for the API
	DefaultPort = "8080"
	// APIv1Prefix is the prefix for all API endpoints
	APIv1Prefix = "/api/v1"
)

// DefaultBaseURL is the default base URL for the API
var DefaultBaseURL = fmt.Sprintf("http://localhost:%s", DefaultPort)

// Route names for lookup
const (
	// Health check
	HealthCheck = "HealthCheck"

	// Project routes
	GetProject   = "GetProject"
	ListProjects = "ListProjects"

	// Auth routes
	Signup   = "Signup"
	Signin   = "Signin"
	Signout  = "Signout"
	Callback = "Callback"
	Me       = "Me"
)

// RegisterRoutes configures all the v1 routes.
//
// NOTE: route ordering matters because routes match in registration order;
// keep the static project route before the :id route.
func RegisterRoutes(
	app *fiber.App,
	projectHandler *handlers.ProjectHandler,
	authHandler *handlers.AuthHandler,
	auth *services.Auth,
) {
	v1 := app.Group(APIv1Prefix)

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "healthy"})
	}).Name(HealthCheck)

	// Project endpoints: the listing needs a signed-in principal, the
	// progress view is gated by the project's own credentials instead.
	projects := v1.Group("/projects")
	projects.Get("/", middleware.RequirePrincipal(auth), projectHandler.ListProjects).Name(ListProjects)
	projects.Get("/:id", projectHandler.GetProject).Name(GetProject)

	// Auth endpoints
	authGroup := v1.Group("/auth")
	authGroup.Post("/signup", authHandler.Signup).Name(Signup)
	authGroup.Post("/signin", authHandler.Signin).Name(Signin)
	authGroup.Post("/signout", authHandler.Signout).Name(Signout)
	authGroup.Post("/callback", authHandler.Callback).Name(Callback)
	authGroup.Get("/me", middleware.RequirePrincipal(auth), authHandler.Me).Name(Me)
}

// Route helpers

// HealthCheckURL returns the URL for the health check endpoint
func HealthCheckURL() string {
	return "/health"
}

// GetProjectURL returns the URL for the progress view of a project
func GetProjectURL(id uint, queryParams url.Values) string {
	route := fmt.Sprintf("%s/projects/%d", APIv1Prefix, id)
	if len(queryParams) > 0 {
		route = fmt.Sprintf("%s?%s", route, queryParams.Encode())
	}
	return route
}

// ListProjectsURL returns the URL for the dashboard project listing
func ListProjectsURL(queryParams url.Values) string {
	route := APIv1Prefix + "/projects"
	if len(queryParams) > 0 {
		route = fmt.Sprintf("%s?%s", route, queryParams.Encode())
	}
	return route
}

// SignupURL returns the URL for the signup endpoint
func SignupURL() string {
	return APIv1Prefix + "/auth/signup"
}

// SigninURL returns the URL for the signin endpoint
func SigninURL() string {
	return APIv1Prefix + "/auth/signin"
}

// SignoutURL returns the URL for the signout endpoint
func SignoutURL() string {
	return APIv1Prefix + "/auth/signout"
}

// CallbackURL returns the URL for the profile upsert endpoint
func CallbackURL() string {
	return APIv1Prefix + "/auth/callback"
}

// MeURL returns the URL for the signed-in profile endpoint
func MeURL() string {
	return APIv1Prefix + "/auth/me"
}
