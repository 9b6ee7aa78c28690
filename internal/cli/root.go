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
		Use:   "turretctl",
		Short: "CLI tool for the tower defence game server",
		Long: `turretctl interacts with the tower defence game server from the terminal.

It can list and create lobbies, send game commands into a lobby, and stream
the lobby's command feed in real time. Authenticate once with --user and
--password; the session cookie is persisted for later invocations.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load token from file if not provided via flag/env
			if err := cfg.LoadToken(); err != nil {
				return err
			}

			client = NewClient(cfg.ServerURL, cfg.Username, cfg.Password, cfg.Token, func(token string) {
				_ = cfg.SaveToken(token)
			})
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: TURRET_SERVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.Username, "user", cfg.Username, "Basic auth username (env: TURRET_USER)")
	rootCmd.PersistentFlags().StringVar(&cfg.Password, "password", cfg.Password, "Basic auth password (env: TURRET_PASSWORD)")
	rootCmd.PersistentFlags().StringVar(&cfg.Token, "token", cfg.Token, "Session token (env: TURRET_TOKEN)")
	rootCmd.PersistentFlags().StringVar(&cfg.TokenFile, "token-file", cfg.TokenFile, "Token file path (env: TURRET_TOKEN_FILE)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newLobbyCmd())
	rootCmd.AddCommand(newGameCmd())
	rootCmd.AddCommand(newEventsCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
