// Package repository implements the local game cache backing the
// recommendation service. It is a read cache populated by the sync layer,
// not a system of record.
package repository

import (
	"context"
	"time"

	"github.com/hoopsight/hoopsight/internal/domain/model"
)

// SyncRun records one pass of the sync layer for bookkeeping.
type SyncRun struct {
	ID          string
	StartedAt   time.Time
	FinishedAt  time.Time
	GamesSynced int
	Status      string
	Detail      string
}

// Store provides read/write access to the cached game data.
type Store interface {
	// GamesBetween returns finished games with dates in [from, to],
	// ordered by date then id, with participants attached.
	GamesBetween(ctx context.Context, from, to time.Time) ([]model.Game, error)

	// ReferenceSets returns the cached top-tier teams and notable players.
	ReferenceSets(ctx context.Context) (model.ReferenceSets, error)

	// UpsertGames writes games and their participant lists.
	UpsertGames(ctx context.Context, games []model.Game) error

	// ReplaceTopTier replaces the cached top-tier team codes.
	ReplaceTopTier(ctx context.Context, codes []string) error

	// ReplaceNotablePlayers replaces the cached notable player names.
	ReplaceNotablePlayers(ctx context.Context, names []string) error

	// RecordSyncRun persists sync bookkeeping.
	RecordSyncRun(ctx context.Context, run SyncRun) error

	// Close releases the underlying database handle.
	Close() error
}
