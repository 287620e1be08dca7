package repository

import (
	"context"
	"time"

	"github.com/Siddharth-The-Dragon-Slayer/code-Collab-v4/internal/domain"
)

// ChangeRepository stores the per-room append-only edit log.
type ChangeRepository interface {
	// Append inserts a new change record. Changes are immutable once
	// written.
	Append(ctx context.Context, change *domain.Change) error

	// ListSince returns all changes for a room with timestamp >= since,
	// in ascending timestamp order.
	ListSince(ctx context.Context, roomID string, since time.Time) ([]domain.Change, error)

	// DeleteOlderThan removes change records older than the cutoff, across
	// all rooms. Used by the compaction task to bound log growth. Returns
	// the number of rows deleted.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
