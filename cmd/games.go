package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var gamesCmd = &cobra.Command{
	Use:   "games",
	Short: "List the window's games ranked by engagement",
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

		ranked, err := e.svc.RankedGames(ctx, days, flagTeam)
		if err != nil {
			return err
		}
		if len(ranked) == 0 {
			fmt.Printf("No finished games in the last %d day(s). Try sync or a wider --days.\n", days)
			return nil
		}

		fmt.Print(renderGamesTable(ranked))
		return nil
	},
}

func init() {
	addWindowFlags(gamesCmd)
	rootCmd.AddCommand(gamesCmd)
}
