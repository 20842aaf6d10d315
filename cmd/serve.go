package main

import (
	"context"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/hoopsight/hoopsight/internal/adapters/http/api"
	"github.com/hoopsight/hoopsight/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// serverStats backs the /stats endpoint.
type serverStats struct {
	started      time.Time
	favoriteTeam string
	maxLookback  int
	dbPath       string
}

func (s *serverStats) GetStats() map[string]any {
	return map[string]any{
		"uptime_seconds":    int(time.Since(s.started).Seconds()),
		"favorite_team":     s.favoriteTeam,
		"max_lookback_days": s.maxLookback,
		"db_path":           s.dbPath,
	}
}

func runServe(ctx context.Context) error {
	e, err := setup(ctx)
	if err != nil {
		return err
	}
	defer e.close()

	log := logger.Get()

	stats := &serverStats{
		started:      time.Now(),
		favoriteTeam: e.cfg.FavoriteTeam,
		maxLookback:  e.cfg.MaxLookbackDays,
		dbPath:       e.cfg.DBPath,
	}
	apiServer := api.NewServer(e.svc, stats, api.WithMaxLookbackDays(e.cfg.MaxLookbackDays))

	srv := &http.Server{
		Addr:              e.cfg.Addr,
		Handler:           apiServer.Router(),
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", e.cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info(ctx, "shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
		return err
	}

	log.Info(ctx, "server stopped")
	return nil
}
