package main

import (
	fiber "github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"

	"github.com/clienttrack/clienttrack/config"
	"github.com/clienttrack/clienttrack/internal/api/v1/handlers"
	"github.com/clienttrack/clienttrack/internal/api/v1/middleware"
	"github.com/clienttrack/clienttrack/internal/api/v1/routes"
	"github.com/clienttrack/clienttrack/internal/db"
	"github.com/clienttrack/clienttrack/internal/db/repos"
	"github.com/clienttrack/clienttrack/internal/logger"
	"github.com/clienttrack/clienttrack/internal/services"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	logger.InitializeAndConfigure()

	database, err := db.New(db.Options{
		Host:     config.GetEnv("DB_HOST", db.DefaultHost),
		User:     config.GetEnv("DB_USER", db.DefaultUser),
		Password: config.GetEnv("DB_PASSWORD", db.DefaultPassword),
		DBName:   config.GetEnv("DB_NAME", db.DefaultDBName),
		Port:     config.GetEnvInt("DB_PORT", db.DefaultPort),
	})
	if err != nil {
		logger.Fatalf("failed to connect to database: %v", err)
	}

	projectRepo := repos.NewProjectRepository(database)
	templateRepo := repos.NewTemplateRepository(database)
	phaseRepo := repos.NewPhaseRepository(database)
	teamRepo := repos.NewTeamRepository(database)
	userRepo := repos.NewUserRepository(database)

	gate := services.NewGate(projectRepo)
	aggregator := services.NewAggregator(projectRepo, templateRepo, phaseRepo, teamRepo)
	auth := services.NewAuthService(userRepo, config.GetEnv("SESSION_SECRET", "dev-secret"))

	api := handlers.NewAPIHandler(gate, aggregator, auth, projectRepo, userRepo)
	projectHandler := handlers.NewProjectHandler(api)
	authHandler := handlers.NewAuthHandler(api)

	app := fiber.New()
	app.Use(middleware.Logger())
	routes.RegisterRoutes(app, projectHandler, authHandler, auth)

	port := config.GetEnv("PORT", routes.DefaultPort)
	logger.Infof("starting server on port %s", port)
	logger.Fatal(app.Listen(":" + port))
}
