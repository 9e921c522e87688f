package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfg    *Config
	client *Client
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "seabattle",
		Short: "CLI client for the sea battle server",
		Long: `seabattle is a CLI client for the sea battle arbitration server.

It covers the whole byte protocol: login, game creation, joining, invites,
fleet submission, moves and polling for queued notifications.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load identity from file if not provided via flag/env
			if err := cfg.LoadIdentity(); err != nil {
				return err
			}

			client = NewClient(cfg.ServerAddr)
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerAddr, "addr", cfg.ServerAddr, "Server address (env: SEABATTLE_ADDR)")
	rootCmd.PersistentFlags().StringVar(&cfg.HealthURL, "health-url", cfg.HealthURL, "HTTP base URL for health checks (env: SEABATTLE_HEALTH_URL)")
	rootCmd.PersistentFlags().StringVar(&cfg.Identity, "identity", cfg.Identity, "Session identity (env: SEABATTLE_IDENTITY)")
	rootCmd.PersistentFlags().StringVar(&cfg.IdentityFile, "identity-file", cfg.IdentityFile, "Identity file path (env: SEABATTLE_IDENTITY_FILE)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(newGameCmd())
	rootCmd.AddCommand(newPollCmd())
	rootCmd.AddCommand(newHealthCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
