package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/hoopsight/hoopsight/internal/config"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLoad(t *testing.T) {
	Convey("Given a clean environment", t, func() {
		for _, key := range []string{
			"HOOPSIGHT_CONFIG",
			"HOOPSIGHT_ADDR",
			"HOOPSIGHT_FAVORITE_TEAM",
			"HOOPSIGHT_SCORING_CLOSE_GAME_BONUS",
			"HOOPSIGHT_SCORING_STAR_POWER_WEIGHT",
			"HOOPSIGHT_PROVIDER_API_KEY",
		} {
			So(os.Unsetenv(key), ShouldBeNil)
		}

		Convey("When loading with no file and no env", func() {
			cfg, err := config.Load(context.Background(), "")

			Convey("Then defaults apply", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":8090")
				So(cfg.MaxLookbackDays, ShouldEqual, 30)
				So(cfg.Scoring.CloseGameBonus, ShouldEqual, 100)
				So(cfg.Provider.BaseURL, ShouldEqual, "https://api.balldontlie.io/v1")
			})
		})

		Convey("When a YAML file is supplied", func() {
			path := filepath.Join(t.TempDir(), "config.yaml")
			body := []byte("addr: \":7000\"\nfavorite_team: BOS\nscoring:\n  close_game_bonus: 60\n")
			So(os.WriteFile(path, body, 0o600), ShouldBeNil)

			cfg, err := config.Load(context.Background(), path)

			Convey("Then file values override defaults", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":7000")
				So(cfg.FavoriteTeam, ShouldEqual, "BOS")
				So(cfg.Scoring.CloseGameBonus, ShouldEqual, 60)
				// Untouched keys keep their defaults.
				So(cfg.Scoring.FavoriteTeamBonus, ShouldEqual, 75)
			})
		})

		Convey("When env vars are set", func() {
			t.Setenv("HOOPSIGHT_ADDR", ":6000")
			t.Setenv("HOOPSIGHT_SCORING_CLOSE_GAME_BONUS", "40")
			t.Setenv("HOOPSIGHT_PROVIDER_API_KEY", "secret")

			cfg, err := config.Load(context.Background(), "")

			Convey("Then env overrides everything below it", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":6000")
				So(cfg.Scoring.CloseGameBonus, ShouldEqual, 40)
				So(cfg.Provider.APIKey, ShouldEqual, "secret")
			})
		})

		Convey("When a scoring weight is negative", func() {
			t.Setenv("HOOPSIGHT_SCORING_STAR_POWER_WEIGHT", "-5")

			_, err := config.Load(context.Background(), "")

			Convey("Then loading fails fast", func() {
				So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
			})
		})

		Convey("When the file does not exist", func() {
			_, err := config.Load(context.Background(), "/nonexistent/config.yaml")

			Convey("Then a load error is reported", func() {
				So(errors.Is(err, config.ErrLoadConfig), ShouldBeTrue)
			})
		})
	})
}
