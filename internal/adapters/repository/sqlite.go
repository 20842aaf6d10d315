package repository

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/hoopsight/hoopsight/internal/domain/model"
	"github.com/hoopsight/hoopsight/pkg/metrics"
)

//go:embed migrations/*.sql
var migrations embed.FS

const dateLayout = "2006-01-02"

// SQLiteStore implements Store on a local SQLite file.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) the cache at path and applies
// pending migrations.
func NewSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrOpen, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpen, err)
	}
	// SQLite allows a single writer; serializing through one connection
	// avoids SQLITE_BUSY under the sync layer's bursts.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %v", ErrOpen, err)
	}

	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %v", ErrMigrate, err)
	}
	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %v", ErrMigrate, err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// GamesBetween returns finished games with dates in [from, to], ordered by
// date then id, with participant lists attached.
func (s *SQLiteStore) GamesBetween(ctx context.Context, from, to time.Time) ([]model.Game, error) {
	metrics.RecordStoreQuery("games_between")

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, game_date, home_code, home_name, home_score,
		       away_code, away_name, away_score, lead_changes
		FROM games
		WHERE status = 'Final' AND game_date BETWEEN ? AND ?
		ORDER BY game_date, id`,
		from.Format(dateLayout), to.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("query games: %w", err)
	}
	defer rows.Close()

	var games []model.Game
	index := make(map[string]int)
	for rows.Next() {
		var g model.Game
		var date string
		if err := rows.Scan(&g.ID, &date,
			&g.HomeTeam.Code, &g.HomeTeam.Name, &g.HomeTeam.Score,
			&g.AwayTeam.Code, &g.AwayTeam.Name, &g.AwayTeam.Score,
			&g.LeadChanges); err != nil {
			return nil, fmt.Errorf("scan game: %w", err)
		}
		if g.Date, err = time.Parse(dateLayout, date); err != nil {
			return nil, fmt.Errorf("parse game date %q: %w", date, err)
		}
		index[g.ID] = len(games)
		games = append(games, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate games: %w", err)
	}

	if len(games) == 0 {
		return games, nil
	}
	if err := s.attachParticipants(ctx, games, index, from, to); err != nil {
		return nil, err
	}
	return games, nil
}

func (s *SQLiteStore) attachParticipants(ctx context.Context, games []model.Game, index map[string]int, from, to time.Time) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT gp.game_id, gp.player_name
		FROM game_players gp
		JOIN games g ON g.id = gp.game_id
		WHERE g.game_date BETWEEN ? AND ?
		ORDER BY gp.game_id, gp.player_name`,
		from.Format(dateLayout), to.Format(dateLayout))
	if err != nil {
		return fmt.Errorf("query participants: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var gameID, player string
		if err := rows.Scan(&gameID, &player); err != nil {
			return fmt.Errorf("scan participant: %w", err)
		}
		if i, ok := index[gameID]; ok {
			games[i].NotablePlayers = append(games[i].NotablePlayers, player)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate participants: %w", err)
	}
	return nil
}

// ReferenceSets returns the cached top-tier teams and notable players.
func (s *SQLiteStore) ReferenceSets(ctx context.Context) (model.ReferenceSets, error) {
	metrics.RecordStoreQuery("reference_sets")

	var sets model.ReferenceSets
	teams, err := s.column(ctx, `SELECT code FROM reference_teams ORDER BY code`)
	if err != nil {
		return sets, fmt.Errorf("query top tier: %w", err)
	}
	players, err := s.column(ctx, `SELECT name FROM reference_players ORDER BY name`)
	if err != nil {
		return sets, fmt.Errorf("query notable players: %w", err)
	}
	sets.TopTier = teams
	sets.NotablePlayers = players
	return sets, nil
}

func (s *SQLiteStore) column(ctx context.Context, query string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

// UpsertGames writes games and their participant lists in one transaction.
func (s *SQLiteStore) UpsertGames(ctx context.Context, games []model.Game) error {
	metrics.RecordStoreQuery("upsert_games")

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin upsert: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, g := range games {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO games (id, game_date, home_code, home_name, home_score,
			                   away_code, away_name, away_score, lead_changes, status, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, 'Final', CURRENT_TIMESTAMP)
			ON CONFLICT (id) DO UPDATE SET
				home_score = excluded.home_score,
				away_score = excluded.away_score,
				lead_changes = excluded.lead_changes,
				updated_at = CURRENT_TIMESTAMP`,
			g.ID, g.Date.Format(dateLayout),
			g.HomeTeam.Code, g.HomeTeam.Name, g.HomeTeam.Score,
			g.AwayTeam.Code, g.AwayTeam.Name, g.AwayTeam.Score,
			g.LeadChanges); err != nil {
			return fmt.Errorf("upsert game %s: %w", g.ID, err)
		}
		for _, player := range g.NotablePlayers {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO game_players (game_id, player_name)
				VALUES (?, ?)
				ON CONFLICT (game_id, player_name) DO NOTHING`,
				g.ID, player); err != nil {
				return fmt.Errorf("upsert participant %s/%s: %w", g.ID, player, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert: %w", err)
	}
	return nil
}

// ReplaceTopTier replaces the cached top-tier team codes.
func (s *SQLiteStore) ReplaceTopTier(ctx context.Context, codes []string) error {
	return s.replaceColumn(ctx, "reference_teams", "code", codes)
}

// ReplaceNotablePlayers replaces the cached notable player names.
func (s *SQLiteStore) ReplaceNotablePlayers(ctx context.Context, names []string) error {
	return s.replaceColumn(ctx, "reference_players", "name", names)
}

func (s *SQLiteStore) replaceColumn(ctx context.Context, table, col string, values []string) error {
	metrics.RecordStoreQuery("replace_" + table)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace %s: %w", table, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM `+table); err != nil { //nolint:gosec // table name is a package-internal constant
		return fmt.Errorf("clear %s: %w", table, err)
	}
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO `+table+` (`+col+`) VALUES (?) ON CONFLICT DO NOTHING`, v); err != nil {
			return fmt.Errorf("insert into %s: %w", table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace %s: %w", table, err)
	}
	return nil
}

// RecordSyncRun persists sync bookkeeping.
func (s *SQLiteStore) RecordSyncRun(ctx context.Context, run SyncRun) error {
	metrics.RecordStoreQuery("record_sync_run")

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sync_runs (id, started_at, finished_at, games_synced, status, detail)
		VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, run.StartedAt.UTC().Format(time.RFC3339),
		run.FinishedAt.UTC().Format(time.RFC3339),
		run.GamesSynced, run.Status, run.Detail)
	if err != nil {
		return fmt.Errorf("record sync run: %w", err)
	}
	return nil
}
