package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var starsCmd = &cobra.Command{
	Use:   "stars",
	Short: "List the cached notable players",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		e, err := setup(ctx)
		if err != nil {
			return err
		}
		defer e.close()

		sets, err := e.store.ReferenceSets(ctx)
		if err != nil {
			return err
		}
		fmt.Print(renderList("Notable Players", sets.NotablePlayers))
		return nil
	},
}

var topTeamsCmd = &cobra.Command{
	Use:   "top-teams",
	Short: "List the cached top-tier teams",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		e, err := setup(ctx)
		if err != nil {
			return err
		}
		defer e.close()

		sets, err := e.store.ReferenceSets(ctx)
		if err != nil {
			return err
		}
		fmt.Print(renderList("Top-Tier Teams", sets.TopTier))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(starsCmd)
	rootCmd.AddCommand(topTeamsCmd)
}
