package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hoopsight/hoopsight/internal/adapters/provider"
	syncer "github.com/hoopsight/hoopsight/internal/sync"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Pull recent games and reference data into the local cache",
	Long: `Sync walks the lookback window one day at a time against the upstream
statistics API and writes finished games, current standings leaders and
scoring leaders into the local cache. Run it before best or games, or
from cron to keep the cache warm.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		e, err := setup(ctx)
		if err != nil {
			return err
		}
		defer e.close()

		days, err := e.windowDays()
		if err != nil {
			return err
		}

		client, err := provider.New(e.cfg.Provider.BaseURL, e.cfg.Provider.APIKey,
			provider.WithTimeout(time.Duration(e.cfg.Provider.TimeoutMS)*time.Millisecond),
		)
		if err != nil {
			return fmt.Errorf("build provider client: %w", err)
		}

		s := syncer.New(client, e.store, syncer.WithPace(pace(e.cfg)))
		summary, err := s.Run(ctx, days)
		if err != nil {
			return err
		}

		fmt.Printf("Synced %d games over %d days in %s (run %s)\n",
			summary.GamesSynced, summary.Days, summary.Duration.Round(time.Millisecond), summary.RunID)
		return nil
	},
}

func init() {
	addWindowFlags(syncCmd)
	rootCmd.AddCommand(syncCmd)
}
