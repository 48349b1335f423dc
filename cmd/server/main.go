// Command server runs the nonprofit site and its admin CMS.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/JonMunkholm/nonprofit/internal/config"
	_ "github.com/JonMunkholm/nonprofit/internal/core/resources" // Register all resources
	"github.com/JonMunkholm/nonprofit/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "server",
	Short: "Nonprofit site with an admin CMS",
	Long: `Serves the public nonprofit site, the admin CMS and its JSON API.

Configuration comes from environment variables, optionally loaded from a
.env file in the working directory.

Available commands:
  serve   - Run the HTTP server
  migrate - Create or update the database schema
  seed    - Load demo content into empty resources`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Overload overwrites existing env vars with the .env file.
		if err := godotenv.Overload(); err != nil {
			slog.Debug("no .env file found, using environment variables")
		} else {
			slog.Info("loaded .env file (overwriting existing env vars)")
		}
	},
}

var memoryFlag bool

func init() {
	rootCmd.PersistentFlags().BoolVar(&memoryFlag, "memory", false, "keep data in memory instead of PostgreSQL")
	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig loads configuration with command line overrides applied and
// sets up logging from it.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(func(c *config.Config) {
		if memoryFlag {
			c.Database.Memory = true
		}
	})
	if err != nil {
		return nil, err
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
	slog.Debug("configuration loaded", "config", cfg.String())
	return cfg, nil
}
