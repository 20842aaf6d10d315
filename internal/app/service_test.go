package service_test

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	service "github.com/hoopsight/hoopsight/internal/app"
	"github.com/hoopsight/hoopsight/internal/domain/model"
	"github.com/hoopsight/hoopsight/internal/domain/scoring"
	"github.com/hoopsight/hoopsight/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

type fakeSource struct {
	games    []model.Game
	sets     model.ReferenceSets
	gamesErr error
	setsErr  error

	lastFrom time.Time
	lastTo   time.Time
}

func (f *fakeSource) GamesBetween(_ context.Context, from, to time.Time) ([]model.Game, error) {
	f.lastFrom, f.lastTo = from, to
	if f.gamesErr != nil {
		return nil, f.gamesErr
	}
	return f.games, nil
}

func (f *fakeSource) ReferenceSets(_ context.Context) (model.ReferenceSets, error) {
	if f.setsErr != nil {
		return model.ReferenceSets{}, f.setsErr
	}
	return f.sets, nil
}

func newScorer(t *testing.T) *scoring.Scorer {
	t.Helper()
	scorer, err := scoring.New(scoring.Config{
		TopTierBonus:      20,
		CloseGameBonus:    50,
		PointsThreshold:   200,
		HighScoreBonus:    10,
		StarPowerWeight:   20,
		FavoriteTeamBonus: 75,
	})
	if err != nil {
		t.Fatalf("scorer: %v", err)
	}
	return scorer
}

func game(id, home, away string, homeScore, awayScore int) model.Game {
	return model.Game{
		ID:       id,
		Date:     time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
		HomeTeam: model.Team{Code: home, Score: homeScore},
		AwayTeam: model.Team{Code: away, Score: awayScore},
	}
}

func TestMain(m *testing.M) {
	_ = logger.Init()
	m.Run()
}

func TestService_RankedGames(t *testing.T) {
	Convey("Given a service over a fake source", t, func() {
		source := &fakeSource{
			games: []model.Game{
				game("blowout", "DET", "WAS", 130, 100),  // 10 high score only
				game("thriller", "BOS", "DEN", 110, 108), // 40 top tier + 50 close + 10 high = 100
				game("decent", "NYK", "CHI", 104, 98),    // 25 close + 10 high = 35
			},
			sets: model.ReferenceSets{TopTier: []string{"BOS", "DEN"}},
		}
		svc := service.New(source, newScorer(t))

		Convey("When ranking the last week", func() {
			ranked, err := svc.RankedGames(context.Background(), 7, "")

			Convey("Then games come back highest score first", func() {
				So(err, ShouldBeNil)
				So(len(ranked), ShouldEqual, 3)
				So(ranked[0].Game.ID, ShouldEqual, "thriller")
				So(ranked[1].Game.ID, ShouldEqual, "decent")
				So(ranked[2].Game.ID, ShouldEqual, "blowout")
			})

			Convey("And the requested window spans the last 7 days", func() {
				So(err, ShouldBeNil)
				So(source.lastTo.Sub(source.lastFrom), ShouldEqual, 7*24*time.Hour)
			})
		})

		Convey("When two games score identically", func() {
			source.games = []model.Game{
				game("first", "NYK", "CHI", 100, 98),
				game("second", "ATL", "ORL", 90, 88),
				game("third", "MEM", "POR", 80, 78),
			}
			source.sets = model.ReferenceSets{}

			ranked, err := svc.RankedGames(context.Background(), 7, "")

			Convey("Then source order is preserved for the tie", func() {
				So(err, ShouldBeNil)
				So(ranked[0].Score.Total, ShouldEqual, ranked[1].Score.Total)
				So(ranked[0].Game.ID, ShouldEqual, "first")
				So(ranked[1].Game.ID, ShouldEqual, "second")
				So(ranked[2].Game.ID, ShouldEqual, "third")
			})
		})

		Convey("When the window holds no games", func() {
			source.games = nil

			ranked, err := svc.RankedGames(context.Background(), 7, "")

			Convey("Then the result is a valid empty ranking", func() {
				So(err, ShouldBeNil)
				So(ranked, ShouldBeEmpty)
			})
		})

		Convey("When the source cannot supply games", func() {
			source.gamesErr = errors.New("provider down")

			_, err := svc.RankedGames(context.Background(), 7, "")

			Convey("Then the failure surfaces as ErrUnavailable", func() {
				So(errors.Is(err, service.ErrUnavailable), ShouldBeTrue)
			})
		})

		Convey("When the source cannot supply reference sets", func() {
			source.setsErr = errors.New("standings stale")

			_, err := svc.RankedGames(context.Background(), 7, "")

			Convey("Then the failure surfaces as ErrUnavailable", func() {
				So(errors.Is(err, service.ErrUnavailable), ShouldBeTrue)
			})
		})

		Convey("When days is not positive", func() {
			_, err := svc.RankedGames(context.Background(), 0, "")

			Convey("Then the call is rejected", func() {
				So(errors.Is(err, service.ErrInvalidDays), ShouldBeTrue)
			})
		})
	})
}

func TestService_BestGame(t *testing.T) {
	Convey("Given a service over a fake source", t, func() {
		source := &fakeSource{
			games: []model.Game{
				game("meh", "DET", "WAS", 130, 100),
				game("close", "NYK", "CHI", 104, 98),
			},
		}
		svc := service.New(source, newScorer(t))

		Convey("When asking for the best game", func() {
			best, err := svc.BestGame(context.Background(), 7, "")

			Convey("Then it is the maximal element of the ranking", func() {
				So(err, ShouldBeNil)
				ranked, rerr := svc.RankedGames(context.Background(), 7, "")
				So(rerr, ShouldBeNil)
				So(best.Game.ID, ShouldEqual, ranked[0].Game.ID)
				So(best.Score.Total, ShouldEqual, ranked[0].Score.Total)
			})
		})

		Convey("When the pool is empty", func() {
			source.games = nil

			_, err := svc.BestGame(context.Background(), 7, "")

			Convey("Then it reports not-found, not a data failure", func() {
				So(errors.Is(err, service.ErrNoGames), ShouldBeTrue)
				So(errors.Is(err, service.ErrUnavailable), ShouldBeFalse)
			})
		})

		Convey("When the source fails", func() {
			source.gamesErr = errors.New("db locked")

			_, err := svc.BestGame(context.Background(), 7, "")

			Convey("Then the failure is not swallowed into not-found", func() {
				So(errors.Is(err, service.ErrUnavailable), ShouldBeTrue)
				So(errors.Is(err, service.ErrNoGames), ShouldBeFalse)
			})
		})
	})
}

func TestService_FavoriteResolution(t *testing.T) {
	Convey("Given a service with a configured favorite team", t, func() {
		source := &fakeSource{
			games: []model.Game{
				game("bos-game", "BOS", "WAS", 130, 100),
				game("mia-game", "MIA", "DET", 131, 101),
			},
		}
		svc := service.New(source, newScorer(t), service.WithFavoriteTeam("bos"))

		Convey("When no override is passed", func() {
			best, err := svc.BestGame(context.Background(), 7, "")

			Convey("Then the configured default decides", func() {
				So(err, ShouldBeNil)
				So(best.Game.ID, ShouldEqual, "bos-game")
			})
		})

		Convey("When a per-call override is passed", func() {
			best, err := svc.BestGame(context.Background(), 7, "mia")

			Convey("Then the override wins and is normalized", func() {
				So(err, ShouldBeNil)
				So(best.Game.ID, ShouldEqual, "mia-game")
			})
		})
	})
}

func TestService_ParallelScoring(t *testing.T) {
	Convey("Given a large candidate pool and several score workers", t, func() {
		games := make([]model.Game, 200)
		for i := range games {
			// Identical scores so ordering is decided by stability alone.
			games[i] = game("game-"+strconv.Itoa(i), "NYK", "CHI", 100, 99)
		}
		source := &fakeSource{games: games}
		svc := service.New(source, newScorer(t), service.WithScoreWorkers(8))

		Convey("When ranking", func() {
			ranked, err := svc.RankedGames(context.Background(), 3, "")

			Convey("Then every game is scored and input order survives the ties", func() {
				So(err, ShouldBeNil)
				So(len(ranked), ShouldEqual, len(games))
				for i := range ranked {
					So(ranked[i].Game.ID, ShouldEqual, games[i].ID)
				}
			})
		})
	})
}
