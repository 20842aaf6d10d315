// Package model contains domain models passed between layers.
package model

import "time"

// Team identifies one side of a game.
type Team struct {
	Code  string // short code, e.g. "BOS"
	Name  string // full name, e.g. "Boston Celtics"
	Score int    // final score, non-negative
}

// Game represents a completed game as stored by the sync layer.
// Only finished games with final scores on both sides reach the scorer;
// the repository filters out everything else.
type Game struct {
	ID             string
	Date           time.Time
	HomeTeam       Team
	AwayTeam       Team
	LeadChanges    int      // 0 when the provider has no play-by-play data
	NotablePlayers []string // players who appeared in the game, full names
}

// TotalPoints returns the combined final score.
func (g Game) TotalPoints() int {
	return g.HomeTeam.Score + g.AwayTeam.Score
}

// Margin returns the absolute final-score difference.
func (g Game) Margin() int {
	m := g.HomeTeam.Score - g.AwayTeam.Score
	if m < 0 {
		m = -m
	}
	return m
}

// ReferenceSets is the raw reference data as the store hands it out.
type ReferenceSets struct {
	TopTier        []string
	NotablePlayers []string
}

// ReferenceContext carries the reference sets a scoring pass reads.
// Sets are membership-only; ordering within them never affects a score.
// Built fresh for each recommendation pass and never mutated by the scorer.
type ReferenceContext struct {
	TopTier        map[string]struct{} // team codes currently in the top tier
	NotablePlayers map[string]struct{} // league-wide high-profile player names
	FavoriteTeam   string              // optional; empty means no preference
}

// NewReferenceContext builds a context from plain slices.
func NewReferenceContext(topTier, notablePlayers []string, favorite string) ReferenceContext {
	rc := ReferenceContext{
		TopTier:        make(map[string]struct{}, len(topTier)),
		NotablePlayers: make(map[string]struct{}, len(notablePlayers)),
		FavoriteTeam:   favorite,
	}
	for _, t := range topTier {
		rc.TopTier[t] = struct{}{}
	}
	for _, p := range notablePlayers {
		rc.NotablePlayers[p] = struct{}{}
	}
	return rc
}
