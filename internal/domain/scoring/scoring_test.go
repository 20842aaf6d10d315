package scoring_test

import (
	"errors"
	"testing"
	"time"

	"github.com/hoopsight/hoopsight/internal/domain/model"
	scoring "github.com/hoopsight/hoopsight/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func testConfig() scoring.Config {
	return scoring.Config{
		TopTierBonus:      20,
		CloseGameBonus:    50,
		PointsThreshold:   200,
		HighScoreBonus:    10,
		StarPowerWeight:   20,
		LeadChangesWeight: 10,
		FavoriteTeamBonus: 75,
	}
}

func gameWithScores(home, away int) model.Game {
	return model.Game{
		ID:       "game-1",
		Date:     time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		HomeTeam: model.Team{Code: "BOS", Name: "Boston Celtics", Score: home},
		AwayTeam: model.Team{Code: "MIA", Name: "Miami Heat", Score: away},
	}
}

func TestScorer_Score(t *testing.T) {
	Convey("Given a scorer with known weights", t, func() {
		scorer, err := scoring.New(testConfig())
		So(err, ShouldBeNil)

		Convey("When scoring a close, high-scoring game with one elite side and two stars", func() {
			game := gameWithScores(110, 108)
			game.NotablePlayers = []string{"Jayson Tatum", "Jimmy Butler", "Role Player"}
			ref := model.NewReferenceContext(
				[]string{"BOS", "DEN", "OKC", "MIL", "CLE"},
				[]string{"Jayson Tatum", "Jimmy Butler", "Nikola Jokic"},
				"",
			)

			result := scorer.Score(game, ref)

			Convey("Then the criteria sum to the expected total", func() {
				// 20 top tier + 50 closeness + 10 high score + 40 star power
				So(result.Total, ShouldEqual, 120)
			})

			Convey("And the breakdown itemizes every contribution", func() {
				points := breakdownPoints(result)
				So(points[scoring.CriterionTopTier], ShouldEqual, 20)
				So(points[scoring.CriterionCloseGame], ShouldEqual, 50)
				So(points[scoring.CriterionTotalPoints], ShouldEqual, 10)
				So(points[scoring.CriterionStarPower], ShouldEqual, 40)
				So(points[scoring.CriterionLeadChanges], ShouldEqual, 0)
				So(points[scoring.CriterionFavoriteTeam], ShouldEqual, 0)
			})

			Convey("And measures report the raw quantities", func() {
				measures := breakdownMeasures(result)
				So(measures[scoring.CriterionTopTier], ShouldEqual, 1)
				So(measures[scoring.CriterionCloseGame], ShouldEqual, 2)
				So(measures[scoring.CriterionTotalPoints], ShouldEqual, 218)
				So(measures[scoring.CriterionStarPower], ShouldEqual, 2)
			})
		})

		Convey("When scoring a blowout with a favorite-team match", func() {
			game := gameWithScores(130, 112)
			ref := model.NewReferenceContext(nil, nil, "BOS")

			result := scorer.Score(game, ref)

			Convey("Then only the high-score and favorite bonuses apply", func() {
				// 0 + 0 closeness (margin 18) + 10 high score + 0 + 75 favorite
				So(result.Total, ShouldEqual, 85)
				points := breakdownPoints(result)
				So(points[scoring.CriterionCloseGame], ShouldEqual, 0)
				So(points[scoring.CriterionFavoriteTeam], ShouldEqual, 75)
			})
		})

		Convey("When both sides are in the top tier", func() {
			game := gameWithScores(100, 99)
			ref := model.NewReferenceContext([]string{"BOS", "MIA"}, nil, "")

			result := scorer.Score(game, ref)

			Convey("Then the top-tier bonus is awarded twice", func() {
				So(breakdownPoints(result)[scoring.CriterionTopTier], ShouldEqual, 40)
			})
		})

		Convey("When the favorite team plays on the away side", func() {
			game := gameWithScores(100, 90)
			ref := model.NewReferenceContext(nil, nil, "MIA")

			result := scorer.Score(game, ref)

			Convey("Then the favorite bonus is awarded exactly once", func() {
				So(breakdownPoints(result)[scoring.CriterionFavoriteTeam], ShouldEqual, 75)
			})
		})

		Convey("When the game has lead changes", func() {
			game := gameWithScores(100, 120)
			game.LeadChanges = 7
			ref := model.NewReferenceContext(nil, nil, "")

			result := scorer.Score(game, ref)

			Convey("Then lead changes contribute count times weight", func() {
				So(breakdownPoints(result)[scoring.CriterionLeadChanges], ShouldEqual, 70)
			})
		})

		Convey("When the reference context is empty", func() {
			game := gameWithScores(90, 88)
			result := scorer.Score(game, model.ReferenceContext{})

			Convey("Then missing sets score as zero, not as an error", func() {
				So(result.Total, ShouldEqual, 50) // closeness only
				So(len(result.Breakdown), ShouldEqual, 6)
			})
		})

		Convey("When a tied game is scored", func() {
			game := gameWithScores(101, 101)
			ref := model.NewReferenceContext(nil, nil, "")

			result := scorer.Score(game, ref)

			Convey("Then margin zero earns the full closeness bonus", func() {
				So(breakdownPoints(result)[scoring.CriterionCloseGame], ShouldEqual, 50)
			})
		})
	})
}

func TestScorer_ClosenessBands(t *testing.T) {
	Convey("Given a scorer with a 100-point closeness bonus", t, func() {
		cfg := testConfig()
		cfg.CloseGameBonus = 100
		scorer, err := scoring.New(cfg)
		So(err, ShouldBeNil)

		closeness := func(margin int) float64 {
			game := gameWithScores(100+margin, 100)
			result := scorer.Score(game, model.ReferenceContext{})
			return breakdownPoints(result)[scoring.CriterionCloseGame]
		}

		Convey("Then the bands match the configured proportions", func() {
			So(closeness(0), ShouldEqual, 100)
			So(closeness(2), ShouldEqual, 100)
			So(closeness(3), ShouldEqual, 100)
			So(closeness(4), ShouldEqual, 80)
			So(closeness(5), ShouldEqual, 80)
			So(closeness(6), ShouldEqual, 50)
			So(closeness(8), ShouldEqual, 50)
			So(closeness(10), ShouldEqual, 50)
			So(closeness(11), ShouldEqual, 25)
			So(closeness(12), ShouldEqual, 25)
			So(closeness(15), ShouldEqual, 25)
			So(closeness(16), ShouldEqual, 0)
			So(closeness(20), ShouldEqual, 0)
		})

		Convey("And points never increase as the margin widens", func() {
			prev := closeness(0)
			for margin := 1; margin <= 30; margin++ {
				current := closeness(margin)
				So(current, ShouldBeLessThanOrEqualTo, prev)
				prev = current
			}
		})
	})
}

func TestScorer_Properties(t *testing.T) {
	Convey("Given a scorer", t, func() {
		scorer, err := scoring.New(testConfig())
		So(err, ShouldBeNil)

		Convey("When the same input is scored twice", func() {
			game := gameWithScores(115, 112)
			game.NotablePlayers = []string{"Luka Doncic"}
			ref := model.NewReferenceContext([]string{"BOS"}, []string{"Luka Doncic"}, "MIA")

			first := scorer.Score(game, ref)
			second := scorer.Score(game, ref)

			Convey("Then the results are identical", func() {
				So(second.Total, ShouldEqual, first.Total)
				So(second.Breakdown, ShouldResemble, first.Breakdown)
			})
		})

		Convey("When scoring a spread of games", func() {
			games := []model.Game{
				gameWithScores(0, 0),
				gameWithScores(150, 70),
				gameWithScores(120, 119),
				gameWithScores(88, 101),
			}

			Convey("Then totals are never negative", func() {
				for _, game := range games {
					So(scorer.Score(game, model.ReferenceContext{}).Total, ShouldBeGreaterThanOrEqualTo, 0)
				}
			})

			Convey("And every criterion appears in every breakdown", func() {
				want := []string{
					scoring.CriterionTopTier,
					scoring.CriterionCloseGame,
					scoring.CriterionTotalPoints,
					scoring.CriterionStarPower,
					scoring.CriterionLeadChanges,
					scoring.CriterionFavoriteTeam,
				}
				for _, game := range games {
					result := scorer.Score(game, model.ReferenceContext{})
					So(len(result.Breakdown), ShouldEqual, len(want))
					for i, name := range want {
						So(result.Breakdown[i].Criterion, ShouldEqual, name)
					}
				}
			})
		})
	})
}

func TestScorer_ConfigValidation(t *testing.T) {
	Convey("Given scoring configs", t, func() {
		Convey("When all weights are non-negative", func() {
			_, err := scoring.New(scoring.DefaultConfig())

			Convey("Then construction succeeds", func() {
				So(err, ShouldBeNil)
			})
		})

		Convey("When a weight is negative", func() {
			cfg := testConfig()
			cfg.StarPowerWeight = -1
			_, err := scoring.New(cfg)

			Convey("Then construction fails with ErrInvalidConfig", func() {
				So(errors.Is(err, scoring.ErrInvalidConfig), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "star_power_weight")
			})
		})

		Convey("When the points threshold is negative", func() {
			cfg := testConfig()
			cfg.PointsThreshold = -200
			_, err := scoring.New(cfg)

			Convey("Then construction fails", func() {
				So(err, ShouldNotBeNil)
			})
		})

		Convey("When zero weights are supplied", func() {
			scorer, err := scoring.New(scoring.Config{})
			So(err, ShouldBeNil)

			Convey("Then every game scores zero with a full breakdown", func() {
				result := scorer.Score(gameWithScores(110, 108), model.ReferenceContext{})
				So(result.Total, ShouldEqual, 0)
				So(len(result.Breakdown), ShouldEqual, 6)
			})
		})
	})
}

func breakdownPoints(r scoring.Result) map[string]float64 {
	points := make(map[string]float64, len(r.Breakdown))
	for _, line := range r.Breakdown {
		points[line.Criterion] = line.Points
	}
	return points
}

func breakdownMeasures(r scoring.Result) map[string]int {
	measures := make(map[string]int, len(r.Breakdown))
	for _, line := range r.Breakdown {
		measures[line.Criterion] = line.Measure
	}
	return measures
}
