package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	service "github.com/hoopsight/hoopsight/internal/app"
	"github.com/hoopsight/hoopsight/internal/domain/scoring"
)

// printStyles holds the styles used by the CLI renderers.
type printStyles struct {
	header lipgloss.Style
	score  lipgloss.Style
	team   lipgloss.Style
	dim    lipgloss.Style
}

// newPrintStyles creates a new set of print styles.
func newPrintStyles() printStyles {
	return printStyles{
		header: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		score:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
		team:   lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		dim:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// criterionLabels maps breakdown criteria to human labels, in display order.
var criterionLabels = map[string]string{
	scoring.CriterionTopTier:      "Top-Tier Teams",
	scoring.CriterionCloseGame:    "Game Closeness",
	scoring.CriterionTotalPoints:  "Total Points",
	scoring.CriterionStarPower:    "Star Players",
	scoring.CriterionLeadChanges:  "Lead Changes",
	scoring.CriterionFavoriteTeam: "Favorite Team",
}

func renderGameSummary(sg service.ScoredGame, explain bool) string {
	styles := newPrintStyles()
	var b strings.Builder

	rule := styles.dim.Render(strings.Repeat("=", 60))

	b.WriteString(rule + "\n")
	b.WriteString(styles.header.Render("MOST ENGAGING GAME") + "\n")
	b.WriteString(rule + "\n\n")

	b.WriteString(fmt.Sprintf("%s @ %s\n",
		styles.team.Render(sg.Game.AwayTeam.Name),
		styles.team.Render(sg.Game.HomeTeam.Name)))
	b.WriteString(styles.dim.Render("Date: "+sg.Game.Date.Format("2006-01-02")) + "\n\n")

	b.WriteString(fmt.Sprintf("Final Score: %s %d - %d %s\n\n",
		sg.Game.AwayTeam.Code, sg.Game.AwayTeam.Score,
		sg.Game.HomeTeam.Score, sg.Game.HomeTeam.Code))

	b.WriteString(styles.score.Render(fmt.Sprintf("ENGAGEMENT SCORE: %.2f", sg.Score.Total)) + "\n")

	if explain {
		b.WriteString("\nScore Breakdown:\n")
		for _, line := range sg.Score.Breakdown {
			label, ok := criterionLabels[line.Criterion]
			if !ok {
				label = line.Criterion
			}
			b.WriteString(fmt.Sprintf("  %s %s: %d (%.1f pts)\n",
				styles.dim.Render("•"), label, line.Measure, line.Points))
		}
	}

	b.WriteString(rule + "\n")
	return b.String()
}

func renderGamesTable(ranked []service.ScoredGame) string {
	styles := newPrintStyles()
	var b strings.Builder

	b.WriteString(styles.header.Render(fmt.Sprintf("%-4s %-30s %-11s %-12s %s",
		"#", "Matchup", "Score", "Date", "Engagement")) + "\n")

	for i, sg := range ranked {
		matchup := fmt.Sprintf("%s @ %s", sg.Game.AwayTeam.Code, sg.Game.HomeTeam.Code)
		final := fmt.Sprintf("%d-%d", sg.Game.AwayTeam.Score, sg.Game.HomeTeam.Score)
		b.WriteString(fmt.Sprintf("%-4d %-30s %-11s %-12s %s\n",
			i+1, matchup, final,
			sg.Game.Date.Format("2006-01-02"),
			styles.score.Render(fmt.Sprintf("%.2f", sg.Score.Total))))
	}
	return b.String()
}

func renderList(title string, items []string) string {
	styles := newPrintStyles()
	var b strings.Builder
	b.WriteString(styles.header.Render(title) + "\n")
	if len(items) == 0 {
		b.WriteString(styles.dim.Render("  (nothing cached; run sync first)") + "\n")
		return b.String()
	}
	for _, item := range items {
		b.WriteString("  " + item + "\n")
	}
	return b.String()
}
