package main

import (
	"github.com/joho/godotenv"

	"github.com/clienttrack/clienttrack/config"
	"github.com/clienttrack/clienttrack/internal/db"
	"github.com/clienttrack/clienttrack/internal/logger"
)

func main() {
	_ = godotenv.Load()

	logger.InitializeAndConfigure()

	// db.New runs schema migration as part of connecting
	_, err := db.New(db.Options{
		Host:     config.GetEnv("DB_HOST", db.DefaultHost),
		User:     config.GetEnv("DB_USER", db.DefaultUser),
		Password: config.GetEnv("DB_PASSWORD", db.DefaultPassword),
		DBName:   config.GetEnv("DB_NAME", db.DefaultDBName),
		Port:     config.GetEnvInt("DB_PORT", db.DefaultPort),
	})
	if err != nil {
		logger.Fatalf("migration failed: %v", err)
	}

	logger.Info("migration complete")
}
