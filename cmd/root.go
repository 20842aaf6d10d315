// Command hoopsight recommends the most engaging recent games.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/hoopsight/hoopsight/internal/adapters/repository"
	service "github.com/hoopsight/hoopsight/internal/app"
	"github.com/hoopsight/hoopsight/internal/config"
	"github.com/hoopsight/hoopsight/internal/domain/scoring"
	"github.com/hoopsight/hoopsight/pkg/logger"
)

var (
	flagConfig  string
	flagDays    int
	flagTeam    string
	flagExplain bool
)

var rootCmd = &cobra.Command{
	Use:   "hoopsight",
	Short: "Engagement scoring and ranking for recent games",
	Long: `Hoopsight scores recent games on how engaging they were to watch
(close finishes, top-tier matchups, star appearances, scoring totals)
and recommends the best one. Game data is synced into a local cache
first; see the sync command.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI with signal-aware cancellation.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a YAML config file")
}

// addWindowFlags attaches the shared lookup flags to a command.
func addWindowFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&flagDays, "days", "d", 7, "Days to look back")
	cmd.Flags().StringVarP(&flagTeam, "team", "t", "", "Favorite team code, e.g. BOS")
}

// env bundles everything a command needs after bootstrap.
type env struct {
	cfg   *config.Config
	store *repository.SQLiteStore
	svc   *service.Service
}

// setup loads config, applies the log level, opens the cache and builds the
// recommendation service.
func setup(ctx context.Context) (*env, error) {
	cfg, err := config.Load(ctx, flagConfig)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log := logger.Get()
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info",
			logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	store, err := repository.NewSQLiteStore(ctx, cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open game cache: %w", err)
	}

	scorer, err := scoring.New(cfg.Scoring)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("build scorer: %w", err)
	}

	svc := service.New(store, scorer,
		service.WithFavoriteTeam(cfg.FavoriteTeam),
		service.WithScoreWorkers(cfg.ScoreWorkers),
		service.WithLogger(log),
	)

	return &env{cfg: cfg, store: store, svc: svc}, nil
}

func (e *env) close() {
	_ = e.store.Close()
}

// windowDays validates the days flag against the configured bound.
func (e *env) windowDays() (int, error) {
	if flagDays < 1 || flagDays > e.cfg.MaxLookbackDays {
		return 0, fmt.Errorf("days must be between 1 and %d, got %d", e.cfg.MaxLookbackDays, flagDays)
	}
	return flagDays, nil
}

func pace(cfg *config.Config) time.Duration {
	return time.Duration(cfg.Provider.PaceMS) * time.Millisecond
}
