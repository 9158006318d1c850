package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/clienttrack/clienttrack/cmd/cli/commands"
)

func main() {
	_ = godotenv.Load()

	if err := commands.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
