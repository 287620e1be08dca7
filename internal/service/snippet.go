package service

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Siddharth-The-Dragon-Slayer/code-Collab-v4/internal/domain"
	"github.com/Siddharth-The-Dragon-Slayer/code-Collab-v4/internal/repository"
)

// SnippetService materializes a room's current document as a standalone
// snippet owned by the caller.
type SnippetService struct {
	snippetRepo repository.SnippetRepository
	roomRepo    repository.RoomRepository
	userRepo    repository.UserRepository
}

func NewSnippetService(
	snippetRepo repository.SnippetRepository,
	roomRepo repository.RoomRepository,
	userRepo repository.UserRepository,
) *SnippetService {
	if snippetRepo == nil || roomRepo == nil || userRepo == nil {
		panic("all repositories must be non-nil for SnippetService")
	}
	return &SnippetService{
		snippetRepo: snippetRepo,
		roomRepo:    roomRepo,
		userRepo:    userRepo,
	}
}

// SaveRoomAsSnippet copies the room's language and code verbatim into a new
// snippet. The copy is point-in-time: later room edits never touch it.
func (s *SnippetService) SaveRoomAsSnippet(ctx context.Context, userID uint, roomID, title string) (*domain.Snippet, error) {
	logCtx := logrus.WithFields(logrus.Fields{"user_id": userID, "room_id": roomID})

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			logCtx.Warn("Caller has no profile record")
			return nil, ErrUserNotFound
		}
		logCtx.WithError(err).Error("Failed to resolve caller")
		return nil, ErrInternalServer
	}

	room, err := s.roomRepo.FindByRoomID(ctx, roomID)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			logCtx.Warn("Snippet export failed: room not found")
			return nil, ErrRoomNotFound
		}
		logCtx.WithError(err).Error("Failed to load room for snippet export")
		return nil, ErrInternalServer
	}

	snippet := &domain.Snippet{
		UserID:    user.ID,
		UserName:  user.Username,
		Title:     title,
		Language:  room.Language,
		Code:      room.Code,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.snippetRepo.Save(ctx, snippet); err != nil {
		logCtx.WithError(err).Error("Failed to save snippet")
		return nil, ErrInternalServer
	}

	logCtx.WithField("snippet_id", snippet.ID).Info("Room exported as snippet")
	return snippet, nil
}
