// Package scoring computes engagement scores for completed games.
package scoring

import (
	"fmt"

	"github.com/hoopsight/hoopsight/internal/domain/model"
)

// Criterion names, in breakdown order.
const (
	CriterionTopTier      = "top_tier"
	CriterionCloseGame    = "close_game"
	CriterionTotalPoints  = "total_points"
	CriterionStarPower    = "star_power"
	CriterionLeadChanges  = "lead_changes"
	CriterionFavoriteTeam = "favorite_team"
)

// Closeness bands: the fraction of CloseGameBonus awarded for a final margin.
const (
	marginTight    = 3  // full bonus
	marginClose    = 5  // 80%
	marginModerate = 10 // 50%
	marginWide     = 15 // 25%, anything wider scores zero

	closeFraction    = 0.8
	moderateFraction = 0.5
	wideFraction     = 0.25
)

// Config holds the scoring weights. All weights and the threshold must be
// non-negative; New rejects anything else so Score itself can never fail.
type Config struct {
	TopTierBonus      float64 `koanf:"top_tier_bonus"`
	CloseGameBonus    float64 `koanf:"close_game_bonus"`
	PointsThreshold   int     `koanf:"points_threshold"`
	HighScoreBonus    float64 `koanf:"high_score_bonus"`
	StarPowerWeight   float64 `koanf:"star_power_weight"`
	LeadChangesWeight float64 `koanf:"lead_changes_weight"`
	FavoriteTeamBonus float64 `koanf:"favorite_team_bonus"`
}

// DefaultConfig returns the stock weights.
func DefaultConfig() Config {
	return Config{
		TopTierBonus:      50,
		CloseGameBonus:    100,
		PointsThreshold:   200,
		HighScoreBonus:    10,
		StarPowerWeight:   20,
		LeadChangesWeight: 10,
		FavoriteTeamBonus: 75,
	}
}

// Validate checks the weights. Returns ErrInvalidConfig for any negative value.
func (c Config) Validate() error {
	for _, w := range []struct {
		name  string
		value float64
	}{
		{"top_tier_bonus", c.TopTierBonus},
		{"close_game_bonus", c.CloseGameBonus},
		{"points_threshold", float64(c.PointsThreshold)},
		{"high_score_bonus", c.HighScoreBonus},
		{"star_power_weight", c.StarPowerWeight},
		{"lead_changes_weight", c.LeadChangesWeight},
		{"favorite_team_bonus", c.FavoriteTeamBonus},
	} {
		if w.value < 0 {
			return fmt.Errorf("%w: %s must be >= 0, got %v", ErrInvalidConfig, w.name, w.value)
		}
	}
	return nil
}

// Line is one criterion's contribution to a score. Measure is the raw
// quantity the criterion looked at (count, margin, or combined points).
type Line struct {
	Criterion string  `json:"criterion"`
	Measure   int     `json:"measure"`
	Points    float64 `json:"points"`
}

// Result is the score for one game with its full rationale. Every criterion
// appears in Breakdown, including the ones that contributed nothing.
type Result struct {
	Total     float64 `json:"total"`
	Breakdown []Line  `json:"breakdown"`
}

// Scorer computes engagement scores. It is pure: it only reads its inputs
// and allocates a fresh Result, so concurrent use needs no synchronization.
type Scorer struct {
	cfg Config
}

// New creates a Scorer, failing fast on an invalid config.
func New(cfg Config) (*Scorer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Scorer{cfg: cfg}, nil
}

// Score computes the engagement score for one game against the given
// reference context. It never fails for well-formed inputs: missing
// optional fields score as zero contribution.
func (s *Scorer) Score(game model.Game, ref model.ReferenceContext) Result {
	breakdown := make([]Line, 0, 6)
	total := 0.0

	// Top-tier participation: each elite side earns the bonus once.
	topTierCount := 0
	if _, ok := ref.TopTier[game.HomeTeam.Code]; ok {
		topTierCount++
	}
	if _, ok := ref.TopTier[game.AwayTeam.Code]; ok {
		topTierCount++
	}
	topTierPoints := float64(topTierCount) * s.cfg.TopTierBonus
	total += topTierPoints
	breakdown = append(breakdown, Line{CriterionTopTier, topTierCount, topTierPoints})

	// Closeness: banded step function of the final margin.
	margin := game.Margin()
	closePoints := s.closenessPoints(margin)
	total += closePoints
	breakdown = append(breakdown, Line{CriterionCloseGame, margin, closePoints})

	// High-scoring bonus: flat award at or above the threshold.
	totalPoints := game.TotalPoints()
	highScorePoints := 0.0
	if totalPoints >= s.cfg.PointsThreshold {
		highScorePoints = s.cfg.HighScoreBonus
	}
	total += highScorePoints
	breakdown = append(breakdown, Line{CriterionTotalPoints, totalPoints, highScorePoints})

	// Star power: notable participants in this game, uncapped.
	starCount := 0
	for _, p := range game.NotablePlayers {
		if _, ok := ref.NotablePlayers[p]; ok {
			starCount++
		}
	}
	starPoints := float64(starCount) * s.cfg.StarPowerWeight
	total += starPoints
	breakdown = append(breakdown, Line{CriterionStarPower, starCount, starPoints})

	// Lead changes: zero when the provider has no play-by-play data.
	leadPoints := float64(game.LeadChanges) * s.cfg.LeadChangesWeight
	total += leadPoints
	breakdown = append(breakdown, Line{CriterionLeadChanges, game.LeadChanges, leadPoints})

	// Favorite team: a side matches at most once, home or away.
	favoriteMatched := 0
	favoritePoints := 0.0
	if ref.FavoriteTeam != "" &&
		(game.HomeTeam.Code == ref.FavoriteTeam || game.AwayTeam.Code == ref.FavoriteTeam) {
		favoriteMatched = 1
		favoritePoints = s.cfg.FavoriteTeamBonus
	}
	total += favoritePoints
	breakdown = append(breakdown, Line{CriterionFavoriteTeam, favoriteMatched, favoritePoints})

	// With validated weights the sum is already non-negative.
	if total < 0 {
		total = 0
	}

	return Result{Total: total, Breakdown: breakdown}
}

func (s *Scorer) closenessPoints(margin int) float64 {
	switch {
	case margin <= marginTight:
		return s.cfg.CloseGameBonus
	case margin <= marginClose:
		return s.cfg.CloseGameBonus * closeFraction
	case margin <= marginModerate:
		return s.cfg.CloseGameBonus * moderateFraction
	case margin <= marginWide:
		return s.cfg.CloseGameBonus * wideFraction
	default:
		return 0
	}
}
