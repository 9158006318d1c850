package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the API server is reachable",
	RunE: func(_ *cobra.Command, _ []string) error {
		health, err := apiClient.HealthCheck(context.Background())
		if err != nil {
			return fmt.Errorf("health check failed: %w", err)
		}
		fmt.Println(health["status"])
		return nil
	},
}
