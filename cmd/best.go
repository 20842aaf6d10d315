package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	service "github.com/hoopsight/hoopsight/internal/app"
)

var bestCmd = &cobra.Command{
	Use:   "best",
	Short: "Show the most engaging game in the lookback window",
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

		best, err := e.svc.BestGame(ctx, days, flagTeam)
		if errors.Is(err, service.ErrNoGames) {
			fmt.Printf("No finished games in the last %d day(s). Try sync or a wider --days.\n", days)
			return nil
		}
		if err != nil {
			return err
		}

		fmt.Print(renderGameSummary(best, flagExplain))
		return nil
	},
}

func init() {
	addWindowFlags(bestCmd)
	bestCmd.Flags().BoolVarP(&flagExplain, "explain", "e", false, "Show the full score breakdown")
	rootCmd.AddCommand(bestCmd)
}
