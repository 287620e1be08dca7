package repository

import (
	"context"
	"time"

	"github.com/Siddharth-The-Dragon-Slayer/code-Collab-v4/internal/domain"
)

// LiveStateRepository covers the volatile, Redis-backed side of a room:
// the recently-active room set consumed by maintenance tasks, and the
// pub/sub fan-out feeding the WebSocket notification layer.
//
// Everything here is best-effort. Losing this state never loses document
// content; clients recover by polling the room.
type LiveStateRepository interface {
	// MarkRoomActive records that the room saw activity now.
	MarkRoomActive(ctx context.Context, roomID string) error

	// ActiveRoomIDs returns the rooms that saw activity within the window.
	ActiveRoomIDs(ctx context.Context, within time.Duration) ([]string, error)

	// PublishEvent publishes a room event on the room's channel.
	PublishEvent(ctx context.Context, event domain.Event) error
}
