// Package service provides the core recommendation service that implements
// the dependencies required by the HTTP API and the CLI.
package service

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/hoopsight/hoopsight/internal/domain/model"
	"github.com/hoopsight/hoopsight/internal/domain/scoring"
	"github.com/hoopsight/hoopsight/pkg/logger"
	"github.com/hoopsight/hoopsight/pkg/metrics"
)

// GameSource supplies candidate games and reference data. The repository
// adapter implements it; tests supply fakes.
type GameSource interface {
	// GamesBetween returns finished games in [from, to], date-then-id order.
	GamesBetween(ctx context.Context, from, to time.Time) ([]model.Game, error)

	// ReferenceSets returns the current top-tier teams and notable players.
	// These reflect current standings and leaders, independent of the window.
	ReferenceSets(ctx context.Context) (model.ReferenceSets, error)
}

// ScoredGame pairs a game with its engagement score.
type ScoredGame struct {
	Game  model.Game     `json:"game"`
	Score scoring.Result `json:"score"`
}

// Service ranks recent games by engagement score.
type Service struct {
	source GameSource
	scorer *scoring.Scorer

	// Configuration
	favoriteTeam string
	scoreWorkers int

	now func() time.Time

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithFavoriteTeam sets the default favorite team, used when a call does not
// pass its own.
func WithFavoriteTeam(team string) Option {
	return func(s *Service) {
		s.favoriteTeam = normalizeTeam(team)
	}
}

// WithScoreWorkers sets the number of goroutines scoring candidates.
func WithScoreWorkers(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.scoreWorkers = count
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock overrides the time source. Used by tests to pin the window.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New constructs the recommendation service.
func New(source GameSource, scorer *scoring.Scorer, opts ...Option) *Service {
	s := &Service{
		source:       source,
		scorer:       scorer,
		scoreWorkers: runtime.NumCPU(),
		now:          time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	return s
}

// BestGame returns the highest-scoring game from the last days days.
// Returns ErrNoGames when the window holds no finished games; collaborator
// failures surface as ErrUnavailable so callers can tell the two apart.
func (s *Service) BestGame(ctx context.Context, days int, favoriteTeam string) (ScoredGame, error) {
	ranked, err := s.RankedGames(ctx, days, favoriteTeam)
	if err != nil {
		return ScoredGame{}, err
	}
	if len(ranked) == 0 {
		return ScoredGame{}, ErrNoGames
	}
	return ranked[0], nil
}

// RankedGames returns every finished game in the window, highest score first.
// An empty window is a valid empty result, not an error. Equal totals keep
// the source order; ranking adds no secondary criterion beyond the weights.
func (s *Service) RankedGames(ctx context.Context, days int, favoriteTeam string) ([]ScoredGame, error) {
	if days < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDays, days)
	}

	to := s.now()
	from := to.AddDate(0, 0, -days)

	games, err := s.source.GamesBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("fetch games: %w", errors.Join(ErrUnavailable, err))
	}

	sets, err := s.source.ReferenceSets(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch reference sets: %w", errors.Join(ErrUnavailable, err))
	}

	ref := model.NewReferenceContext(sets.TopTier, sets.NotablePlayers, s.resolveFavorite(favoriteTeam))

	s.logger.Debug(ctx, "scoring candidate games",
		logger.Int("days", days),
		logger.Int("candidates", len(games)),
		logger.String("favorite", ref.FavoriteTeam),
	)

	ranked := s.scoreAll(games, ref)

	// Stable sort keeps source order for equal totals.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score.Total > ranked[j].Score.Total
	})

	metrics.RecordGamesScored(len(ranked))
	metrics.RecordRecommendation()

	return ranked, nil
}

// ReferenceSets exposes the reference data the scorer currently works from.
func (s *Service) ReferenceSets(ctx context.Context) (model.ReferenceSets, error) {
	sets, err := s.source.ReferenceSets(ctx)
	if err != nil {
		return model.ReferenceSets{}, fmt.Errorf("fetch reference sets: %w", errors.Join(ErrUnavailable, err))
	}
	return sets, nil
}

// scoreAll scores every candidate, fanning out across scoreWorkers while
// preserving input order. The scorer is pure, so workers share nothing.
func (s *Service) scoreAll(games []model.Game, ref model.ReferenceContext) []ScoredGame {
	scored := make([]ScoredGame, len(games))

	workers := s.scoreWorkers
	if workers > len(games) {
		workers = len(games)
	}
	if workers <= 1 {
		for i, game := range games {
			scored[i] = ScoredGame{Game: game, Score: s.scorer.Score(game, ref)}
		}
		return scored
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				scored[i] = ScoredGame{Game: games[i], Score: s.scorer.Score(games[i], ref)}
			}
		}()
	}
	for i := range games {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return scored
}

// resolveFavorite applies the per-call override, falling back to the
// configured default. Empty means no preference.
func (s *Service) resolveFavorite(override string) string {
	if team := normalizeTeam(override); team != "" {
		return team
	}
	return s.favoriteTeam
}

func normalizeTeam(team string) string {
	return strings.ToUpper(strings.TrimSpace(team))
}
