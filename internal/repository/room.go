package repository

import (
	"context"

	"github.com/Siddharth-The-Dragon-Slayer/code-Collab-v4/internal/domain"
)

// RoomRepository stores and retrieves collaboration rooms.
type RoomRepository interface {
	// FindByRoomID looks a room up by its public room identifier.
	// Returns ErrRoomNotFound if no such room exists.
	FindByRoomID(ctx context.Context, roomID string) (*domain.Room, error)

	// Save creates the room if it has no primary key yet, otherwise updates
	// it. Unique-constraint violations map to ErrDuplicateEntry.
	Save(ctx context.Context, room *domain.Room) error

	// FindByCreator returns all rooms created by the given user, newest
	// first.
	FindByCreator(ctx context.Context, userID uint) ([]domain.Room, error)

	// RoomIDExists reports whether a room with the given public identifier
	// already exists.
	RoomIDExists(ctx context.Context, roomID string) (bool, error)
}
