package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/JonMunkholm/nonprofit/internal/config"
	"github.com/JonMunkholm/nonprofit/internal/core"
	"github.com/JonMunkholm/nonprofit/internal/media"
	"github.com/JonMunkholm/nonprofit/internal/seed"
	"github.com/JonMunkholm/nonprofit/internal/session"
	"github.com/JonMunkholm/nonprofit/internal/web"
)

var seedOnStart bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	Long: `Run the public site, admin CMS and JSON API.

With --seed, demo content is loaded into empty resources before the server
starts. Combine with --memory for a database-free demo.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&seedOnStart, "seed", false, "load demo content into empty resources on start")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)

	store, closeStore, err := openStore(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer closeStore()

	var opts []core.Option
	if cfg.Media.OEmbedEndpoint != "" {
		opts = append(opts, core.WithVideoLookup(media.NewOEmbedClient(cfg.Media.OEmbedEndpoint, cfg.Media.Timeout)))
	}
	service := core.NewService(store, opts...)

	slog.Info("resources registered",
		"count", core.Count(),
		"groups", len(core.Groups()),
	)

	if seedOnStart {
		result, err := seed.Load(ctx, service, seed.Default(), time.Now())
		if err != nil {
			return fmt.Errorf("seed: %w", err)
		}
		slog.Info("demo content loaded", "created", result.Created, "skipped", result.Skipped)
	}

	auth, err := session.NewAuthenticator(cfg.Security.AdminEmail, cfg.Security.AdminPasswordHash, cfg.Security.AdminPassword)
	if err != nil {
		return fmt.Errorf("admin account: %w", err)
	}

	sessions := session.NewStore(cfg.Session.TTL)
	if err := sessions.StartCleanup(cfg.Session.CleanupInterval); err != nil {
		return err
	}
	defer sessions.Stop()

	jobCtx, cancelJobs := context.WithCancel(context.Background())
	defer cancelJobs()

	jobs, err := startMaintenance(jobCtx, service, cfg.Retention)
	if err != nil {
		return err
	}
	defer func() { <-jobs.Stop().Done() }()

	server := web.NewServer(service, sessions, auth, cfg)

	// Graceful shutdown
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case sig := <-sigCh:
		slog.Info("shutting down...", "signal", sig.String())
	}

	cancelJobs()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
		return err
	}
	slog.Info("server stopped")
	return nil
}

// startMaintenance schedules audit log pruning on the configured cron
// expression.
func startMaintenance(ctx context.Context, service *core.Service, cfg config.RetentionConfig) (*cron.Cron, error) {
	c := cron.New(cron.WithLogger(cron.PrintfLogger(slog.NewLogLogger(slog.Default().Handler(), slog.LevelError))))

	_, err := c.AddFunc(cfg.MaintenanceSchedule, func() {
		service.RunMaintenance(ctx, core.RetentionConfig{
			AuditRetentionDays: cfg.AuditRetentionDays,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("maintenance schedule %q: %w", cfg.MaintenanceSchedule, err)
	}

	c.Start()
	slog.Info("maintenance scheduled", "schedule", cfg.MaintenanceSchedule)
	return c, nil
}
