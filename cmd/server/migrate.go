package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/nonprofit/internal/core"
	"github.com/JonMunkholm/nonprofit/internal/seed"
	"github.com/JonMunkholm/nonprofit/internal/store/postgres"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.Database.Memory {
			return fmt.Errorf("migrate needs DATABASE_URL; the in-memory store has no schema")
		}

		ctx := commandContext(cmd)
		pool, err := postgres.Open(ctx, cfg.Database)
		if err != nil {
			return err
		}
		defer pool.Close()

		if err := postgres.New(pool).Migrate(ctx); err != nil {
			return err
		}
		slog.Info("schema is up to date")
		return nil
	},
}

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load demo content into empty resources",
	Long: `Load demo content into every resource that has no rows yet.

Without --file the built-in demo content is used. Resources that already
have rows are skipped, so running seed twice is safe.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		data := seed.Default()
		if seedFile != "" {
			if data, err = os.ReadFile(seedFile); err != nil {
				return fmt.Errorf("read seed file: %w", err)
			}
		}

		ctx := commandContext(cmd)
		store, closeStore, err := openStore(ctx, cfg.Database)
		if err != nil {
			return err
		}
		defer closeStore()

		result, err := seed.Load(ctx, core.NewService(store), data, time.Now())
		if err != nil {
			return err
		}

		for key, n := range result.Created {
			fmt.Fprintf(cmd.OutOrStdout(), "%-18s %d created\n", key, n)
		}
		for _, key := range result.Skipped {
			fmt.Fprintf(cmd.OutOrStdout(), "%-18s skipped (not empty)\n", key)
		}
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedFile, "file", "", "YAML seed file (default: built-in demo content)")
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
