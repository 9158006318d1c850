package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/clienttrack/clienttrack/internal/api/v1/routes"
	"github.com/clienttrack/clienttrack/pkg/api/v1/client"
)

// flag names
const (
	flagServerAddress = "server-address"
)

// environment variable names
const (
	envServerAddress = "CLIENTTRACK_SERVER_ADDRESS"
)

var (
	// apiClient is the shared API client instance
	apiClient *client.APIClient
	// serverAddress holds the target API server address. Flag parsing sets this.
	serverAddress string
)

// initClient initializes the API client
func initClient() error {
	opts := client.DefaultOptions()
	opts.BaseURL = serverAddress

	var err error
	apiClient, err = client.NewClient(opts)
	return err
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&serverAddress, flagServerAddress, "s", routes.DefaultBaseURL,
		"Address of the clienttrack API server (env: CLIENTTRACK_SERVER_ADDRESS)")

	RootCmd.AddCommand(projectCmd)
	RootCmd.AddCommand(healthCmd)
}

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "clienttrack",
	Short: "clienttrack CLI - inspect project progress through the clienttrack API",
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		// Precedence: flag > env var > default
		if !cmd.Flags().Changed(flagServerAddress) {
			if envAddr := os.Getenv(envServerAddress); envAddr != "" {
				serverAddress = envAddr
			}
		}

		if serverAddress == "" {
			return fmt.Errorf("server address cannot be empty")
		}
		return initClient()
	},
}
