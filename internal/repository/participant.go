package repository

import (
	"context"
	"time"

	"github.com/Siddharth-The-Dragon-Slayer/code-Collab-v4/internal/domain"
)

// ParticipantRepository stores room membership rows. There is at most one
// row per (roomID, userID) pair; rows are deactivated, never deleted.
type ParticipantRepository interface {
	// FindByRoomAndUser returns the membership row for the pair, or
	// ErrParticipantNotFound.
	FindByRoomAndUser(ctx context.Context, roomID string, userID uint) (*domain.Participant, error)

	// Save creates the row if it has no primary key yet, otherwise updates
	// it in place.
	Save(ctx context.Context, participant *domain.Participant) error

	// ListActive returns the currently active participants of a room.
	ListActive(ctx context.Context, roomID string) ([]domain.Participant, error)

	// DeactivateStale marks every active participant whose last_seen is
	// older than the cutoff as inactive, across all rooms. Returns the
	// number of rows affected.
	DeactivateStale(ctx context.Context, olderThan time.Time) (int64, error)

	// DeactivateStaleInRoom is DeactivateStale scoped to one room. Returns
	// the number of rows affected.
	DeactivateStaleInRoom(ctx context.Context, roomID string, olderThan time.Time) (int64, error)
}
