package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Siddharth-The-Dragon-Slayer/code-Collab-v4/internal/domain"
	"github.com/Siddharth-The-Dragon-Slayer/code-Collab-v4/internal/repository"
)

// RoomService owns room lifecycle: creation, lookup and the caller's room
// list. Edits and membership go through SyncService.
type RoomService struct {
	roomRepo        repository.RoomRepository
	participantRepo repository.ParticipantRepository
	userRepo        repository.UserRepository
	liveRepo        repository.LiveStateRepository
}

func NewRoomService(
	roomRepo repository.RoomRepository,
	participantRepo repository.ParticipantRepository,
	userRepo repository.UserRepository,
	liveRepo repository.LiveStateRepository,
) *RoomService {
	if roomRepo == nil || participantRepo == nil || userRepo == nil || liveRepo == nil {
		panic("all repositories must be non-nil for RoomService")
	}
	return &RoomService{
		roomRepo:        roomRepo,
		participantRepo: participantRepo,
		userRepo:        userRepo,
		liveRepo:        liveRepo,
	}
}

// CreateRoom creates a room owned by userID and joins the creator as its
// first participant. An absent code argument becomes the empty document,
// never a missing field.
func (s *RoomService) CreateRoom(ctx context.Context, userID uint, title, language, code string) (*domain.Room, error) {
	logCtx := logrus.WithField("user_id", userID)

	user, err := s.resolveUser(ctx, userID, logCtx)
	if err != nil {
		return nil, err
	}

	roomID, err := s.generateRoomID(ctx)
	if err != nil {
		logCtx.WithError(err).Error("Failed to generate room id")
		return nil, ErrInternalServer
	}
	logCtx = logCtx.WithField("room_id", roomID)

	now := time.Now().UTC()
	room := &domain.Room{
		RoomID:        roomID,
		Title:         title,
		Language:      language,
		Code:          code,
		CreatedBy:     user.ID,
		CreatedByName: user.Username,
		IsActive:      true,
		LastActivity:  now,
	}
	if err := s.roomRepo.Save(ctx, room); err != nil {
		logCtx.WithError(err).Error("Failed to save new room")
		return nil, ErrInternalServer
	}

	// The creator is a participant from the start.
	creator := &domain.Participant{
		RoomID:   roomID,
		UserID:   user.ID,
		UserName: user.Username,
		JoinedAt: now,
		LastSeen: now,
		IsActive: true,
	}
	if err := s.participantRepo.Save(ctx, creator); err != nil {
		logCtx.WithError(err).Error("Failed to add creator as participant")
		return nil, ErrInternalServer
	}

	if err := s.liveRepo.MarkRoomActive(ctx, roomID); err != nil {
		logCtx.WithError(err).Warn("Failed to mark new room active in Redis")
	}

	logCtx.Info("Room created")
	return room, nil
}

// GetRoom is a pure lookup with no side effects.
func (s *RoomService) GetRoom(ctx context.Context, roomID string) (*domain.Room, error) {
	room, err := s.roomRepo.FindByRoomID(ctx, roomID)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return nil, ErrRoomNotFound
		}
		logrus.WithField("room_id", roomID).WithError(err).Error("Failed to load room")
		return nil, ErrInternalServer
	}
	return room, nil
}

// UserRooms lists the rooms created by userID, newest first.
func (s *RoomService) UserRooms(ctx context.Context, userID uint) ([]domain.Room, error) {
	rooms, err := s.roomRepo.FindByCreator(ctx, userID)
	if err != nil {
		logrus.WithField("user_id", userID).WithError(err).Error("Failed to list user rooms")
		return nil, ErrInternalServer
	}
	return rooms, nil
}

func (s *RoomService) resolveUser(ctx context.Context, userID uint, logCtx *logrus.Entry) (*domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			logCtx.Warn("Caller has no profile record")
			return nil, ErrUserNotFound
		}
		logCtx.WithError(err).Error("Failed to resolve caller")
		return nil, ErrInternalServer
	}
	return user, nil
}

const roomIDAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// generateRoomID produces a public room identifier of the form
// room_<unix-ms>_<9 random base36 chars> and retries on the (unlikely)
// collision.
func (s *RoomService) generateRoomID(ctx context.Context) (string, error) {
	const suffixLength = 9
	const maxAttempts = 10

	buf := make([]byte, suffixLength)
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("generate random bytes: %w", err)
		}
		for i := range buf {
			buf[i] = roomIDAlphabet[int(buf[i])%len(roomIDAlphabet)]
		}
		roomID := fmt.Sprintf("room_%d_%s", time.Now().UnixMilli(), buf)

		exists, err := s.roomRepo.RoomIDExists(ctx, roomID)
		if err != nil {
			return "", fmt.Errorf("check room id uniqueness: %w", err)
		}
		if !exists {
			return roomID, nil
		}
		logrus.WithField("room_id", roomID).Warnf("Generated room id already exists, retrying (attempt %d)", attempt+1)
	}
	return "", fmt.Errorf("failed to generate a unique room id after %d attempts", maxAttempts)
}
