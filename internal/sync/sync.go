// Package sync pulls game data from the upstream provider into the local
// cache. It walks the requested window one day at a time, refreshes the
// reference sets, and records a bookkeeping row for every run.
package sync

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hoopsight/hoopsight/internal/adapters/repository"
	"github.com/hoopsight/hoopsight/internal/domain/model"
	"github.com/hoopsight/hoopsight/pkg/logger"
	"github.com/hoopsight/hoopsight/pkg/metrics"
)

// GameFeed is the slice of the upstream client the syncer needs.
type GameFeed interface {
	GamesByDate(ctx context.Context, date time.Time) ([]model.Game, error)
	TopTeams(ctx context.Context, season int) ([]string, error)
	StarPlayers(ctx context.Context, season int) ([]string, error)
}

// Store is the slice of the cache the syncer writes to.
type Store interface {
	UpsertGames(ctx context.Context, games []model.Game) error
	ReplaceTopTier(ctx context.Context, codes []string) error
	ReplaceNotablePlayers(ctx context.Context, names []string) error
	RecordSyncRun(ctx context.Context, run repository.SyncRun) error
}

// Summary reports what one run accomplished.
type Summary struct {
	RunID       string
	Days        int
	GamesSynced int
	Duration    time.Duration
}

// Syncer copies a window of games plus the current reference sets from the
// feed into the store.
type Syncer struct {
	feed   GameFeed
	store  Store
	pace   time.Duration
	season func(time.Time) int
	now    func() time.Time
	logger logger.Logger
}

// Option applies a configuration option to the Syncer.
type Option func(*Syncer)

// WithPace sets the delay between upstream calls. The free API tier rate
// limits aggressively, so the default keeps a full second between requests.
func WithPace(d time.Duration) Option {
	return func(s *Syncer) {
		if d >= 0 {
			s.pace = d
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Syncer) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock overrides the time source. Tests pin it.
func WithClock(now func() time.Time) Option {
	return func(s *Syncer) {
		if now != nil {
			s.now = now
		}
	}
}

// WithSeasonResolver overrides how a date maps to a season.
func WithSeasonResolver(f func(time.Time) int) Option {
	return func(s *Syncer) {
		if f != nil {
			s.season = f
		}
	}
}

// New creates a Syncer.
func New(feed GameFeed, store Store, opts ...Option) *Syncer {
	s := &Syncer{
		feed:   feed,
		store:  store,
		pace:   time.Second,
		season: defaultSeason,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	return s
}

// Seasons start in October; before that the previous year's season is
// still current.
func defaultSeason(now time.Time) int {
	if now.Month() >= time.October {
		return now.Year()
	}
	return now.Year() - 1
}

// Run syncs the last days of games, ending today, then refreshes the
// reference sets. Every run is recorded, including failed ones.
func (s *Syncer) Run(ctx context.Context, days int) (Summary, error) {
	if days < 1 {
		return Summary{}, ErrInvalidWindow
	}

	started := s.now()
	run := repository.SyncRun{
		ID:        uuid.NewString(),
		StartedAt: started,
	}
	summary := Summary{RunID: run.ID, Days: days}

	err := s.sync(ctx, started, days, &summary)

	run.FinishedAt = s.now()
	run.GamesSynced = summary.GamesSynced
	summary.Duration = run.FinishedAt.Sub(started)
	if err != nil {
		run.Status = "failed"
		run.Detail = err.Error()
	} else {
		run.Status = "ok"
	}
	metrics.RecordSyncRun(run.Status)

	if recErr := s.store.RecordSyncRun(ctx, run); recErr != nil {
		s.logger.Warn(ctx, "failed to record sync run",
			logger.String("run_id", run.ID),
			logger.Error(recErr),
		)
	}

	if err != nil {
		return summary, fmt.Errorf("%w: %v", ErrSync, err)
	}
	s.logger.Info(ctx, "sync run finished",
		logger.String("run_id", run.ID),
		logger.Int("days", days),
		logger.Int("games", summary.GamesSynced),
	)
	return summary, nil
}

func (s *Syncer) sync(ctx context.Context, today time.Time, days int, summary *Summary) error {
	for i := days - 1; i >= 0; i-- {
		date := today.AddDate(0, 0, -i)
		games, err := s.feed.GamesByDate(ctx, date)
		if err != nil {
			return fmt.Errorf("fetch games for %s: %w", date.Format("2006-01-02"), err)
		}
		if len(games) > 0 {
			if err := s.store.UpsertGames(ctx, games); err != nil {
				return fmt.Errorf("store games for %s: %w", date.Format("2006-01-02"), err)
			}
			summary.GamesSynced += len(games)
			metrics.RecordGamesSynced(len(games))
		}
		if err := s.pause(ctx); err != nil {
			return err
		}
	}

	season := s.season(today)

	teams, err := s.feed.TopTeams(ctx, season)
	if err != nil {
		return fmt.Errorf("fetch top teams: %w", err)
	}
	if err := s.store.ReplaceTopTier(ctx, teams); err != nil {
		return fmt.Errorf("store top teams: %w", err)
	}
	if err := s.pause(ctx); err != nil {
		return err
	}

	players, err := s.feed.StarPlayers(ctx, season)
	if err != nil {
		return fmt.Errorf("fetch star players: %w", err)
	}
	if err := s.store.ReplaceNotablePlayers(ctx, players); err != nil {
		return fmt.Errorf("store star players: %w", err)
	}
	return nil
}

// pause waits out the pacing delay, or returns early when the context ends.
func (s *Syncer) pause(ctx context.Context) error {
	if s.pace <= 0 {
		return nil
	}
	timer := time.NewTimer(s.pace)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
