package service

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Siddharth-The-Dragon-Slayer/code-Collab-v4/internal/domain"
	"github.com/Siddharth-The-Dragon-Slayer/code-Collab-v4/internal/repository"
)

// defaultChangeWindow bounds the catch-up query when a poller supplies no
// cursor timestamp.
const defaultChangeWindow = 60 * time.Second

// activityWindow is how far back the Redis activity set is consulted when
// scoping the presence sweep. It matches the set's own retention: rooms
// idle longer than this were already swept clean on earlier runs.
const activityWindow = 24 * time.Hour

// SyncService is the session-synchronization coordinator: it orchestrates
// join/leave, applies incoming edits, appends to the change log and answers
// the poll queries clients use to converge.
//
// An edit applies the room overwrite and the log append sequentially,
// without a transaction: a crash between the two leaves the code updated
// with the log entry missing, which is accepted because the room row is the
// single source of truth.
type SyncService struct {
	roomRepo        repository.RoomRepository
	participantRepo repository.ParticipantRepository
	changeRepo      repository.ChangeRepository
	userRepo        repository.UserRepository
	liveRepo        repository.LiveStateRepository
}

func NewSyncService(
	roomRepo repository.RoomRepository,
	participantRepo repository.ParticipantRepository,
	changeRepo repository.ChangeRepository,
	userRepo repository.UserRepository,
	liveRepo repository.LiveStateRepository,
) *SyncService {
	if roomRepo == nil || participantRepo == nil || changeRepo == nil || userRepo == nil || liveRepo == nil {
		panic("all repositories must be non-nil for SyncService")
	}
	return &SyncService{
		roomRepo:        roomRepo,
		participantRepo: participantRepo,
		changeRepo:      changeRepo,
		userRepo:        userRepo,
		liveRepo:        liveRepo,
	}
}

// JoinRoom registers the caller as an active participant and returns the
// room's current state. Rejoining an existing membership reactivates it in
// place; joinedAt keeps its original value.
func (s *SyncService) JoinRoom(ctx context.Context, userID uint, roomID string) (*domain.Room, error) {
	logCtx := logrus.WithFields(logrus.Fields{"user_id": userID, "room_id": roomID})

	user, err := s.resolveUser(ctx, userID, logCtx)
	if err != nil {
		return nil, err
	}

	room, err := s.loadRoom(ctx, roomID, logCtx)
	if err != nil {
		return nil, err
	}
	if !room.IsActive {
		logCtx.Warn("Join rejected: room inactive")
		return nil, ErrRoomInactive
	}

	now := time.Now().UTC()
	participant, err := s.participantRepo.FindByRoomAndUser(ctx, roomID, userID)
	switch {
	case err == nil:
		participant.IsActive = true
		participant.LastSeen = now
	case errors.Is(err, repository.ErrParticipantNotFound):
		participant = &domain.Participant{
			RoomID:   roomID,
			UserID:   user.ID,
			UserName: user.Username,
			JoinedAt: now,
			LastSeen: now,
			IsActive: true,
		}
	default:
		logCtx.WithError(err).Error("Failed to look up participant")
		return nil, ErrInternalServer
	}
	if err := s.participantRepo.Save(ctx, participant); err != nil {
		logCtx.WithError(err).Error("Failed to save participant on join")
		return nil, ErrInternalServer
	}

	room.Touch(now)
	if err := s.roomRepo.Save(ctx, room); err != nil {
		logCtx.WithError(err).Error("Failed to bump room activity on join")
		return nil, ErrInternalServer
	}

	s.markActive(ctx, roomID, logCtx)
	s.publish(ctx, domain.Event{
		Type:      domain.EventPresence,
		RoomID:    roomID,
		UserID:    user.ID,
		UserName:  user.Username,
		Online:    true,
		Timestamp: now,
	}, logCtx)

	logCtx.Info("User joined room")
	return room, nil
}

// LeaveRoom deactivates the caller's membership. Leaving a room the caller
// never joined is a successful no-op.
func (s *SyncService) LeaveRoom(ctx context.Context, userID uint, roomID string) error {
	logCtx := logrus.WithFields(logrus.Fields{"user_id": userID, "room_id": roomID})

	now := time.Now().UTC()
	participant, err := s.participantRepo.FindByRoomAndUser(ctx, roomID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrParticipantNotFound) {
			logCtx.Debug("Leave is a no-op: no membership row")
			return nil
		}
		logCtx.WithError(err).Error("Failed to look up participant on leave")
		return ErrInternalServer
	}

	participant.IsActive = false
	participant.LastSeen = now
	if err := s.participantRepo.Save(ctx, participant); err != nil {
		logCtx.WithError(err).Error("Failed to save participant on leave")
		return ErrInternalServer
	}

	s.publish(ctx, domain.Event{
		Type:      domain.EventPresence,
		RoomID:    roomID,
		UserID:    userID,
		UserName:  participant.UserName,
		Online:    false,
		Timestamp: now,
	}, logCtx)

	logCtx.Info("User left room")
	return nil
}

// SubmitEdit applies a full-document overwrite to the room and appends one
// entry to the change log. The overwrite is unconditional: the most recent
// write by arrival order wins and losing writers get no conflict signal.
func (s *SyncService) SubmitEdit(ctx context.Context, userID uint, roomID, code string, changeType domain.ChangeType, position domain.Position, content string) (*domain.Change, error) {
	logCtx := logrus.WithFields(logrus.Fields{"user_id": userID, "room_id": roomID, "change_type": changeType})

	if !changeType.Valid() {
		logCtx.Warn("Edit rejected: unknown change type")
		return nil, ErrInvalidChange
	}

	user, err := s.resolveUser(ctx, userID, logCtx)
	if err != nil {
		return nil, err
	}

	room, err := s.loadRoom(ctx, roomID, logCtx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	room.Code = code
	room.Touch(now)
	if err := s.roomRepo.Save(ctx, room); err != nil {
		logCtx.WithError(err).Error("Failed to apply edit to room")
		return nil, ErrInternalServer
	}

	change := &domain.Change{
		RoomID:     roomID,
		UserID:     user.ID,
		UserName:   user.Username,
		ChangeType: changeType,
		Position:   position,
		Content:    content,
		Timestamp:  now,
	}
	if err := s.changeRepo.Append(ctx, change); err != nil {
		// The room row already holds the new code; the log entry is
		// advisory, so the edit stands.
		logCtx.WithError(err).Error("Failed to append change log entry")
		return nil, ErrInternalServer
	}

	s.touchParticipant(ctx, roomID, userID, now, logCtx)
	s.markActive(ctx, roomID, logCtx)
	s.publish(ctx, domain.Event{
		Type:      domain.EventChange,
		RoomID:    roomID,
		UserID:    user.ID,
		UserName:  user.Username,
		Change:    change,
		Timestamp: now,
	}, logCtx)

	logCtx.Debug("Edit applied")
	return change, nil
}

// UpdateCursor records the caller's cursor position. Cursor pings are
// best-effort: without a membership row this is a silent no-op.
func (s *SyncService) UpdateCursor(ctx context.Context, userID uint, roomID string, line, column int) error {
	logCtx := logrus.WithFields(logrus.Fields{"user_id": userID, "room_id": roomID})

	participant, err := s.participantRepo.FindByRoomAndUser(ctx, roomID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrParticipantNotFound) {
			logCtx.Debug("Cursor ping ignored: no membership row")
			return nil
		}
		logCtx.WithError(err).Error("Failed to look up participant for cursor update")
		return ErrInternalServer
	}

	now := time.Now().UTC()
	participant.SetCursor(line, column)
	participant.LastSeen = now
	if err := s.participantRepo.Save(ctx, participant); err != nil {
		logCtx.WithError(err).Error("Failed to save cursor update")
		return ErrInternalServer
	}

	s.publish(ctx, domain.Event{
		Type:      domain.EventCursor,
		RoomID:    roomID,
		UserID:    userID,
		UserName:  participant.UserName,
		Cursor:    participant.Cursor(),
		Timestamp: now,
	}, logCtx)

	return nil
}

// ActiveParticipants answers the presence poll.
func (s *SyncService) ActiveParticipants(ctx context.Context, roomID string) ([]domain.Participant, error) {
	participants, err := s.participantRepo.ListActive(ctx, roomID)
	if err != nil {
		logrus.WithField("room_id", roomID).WithError(err).Error("Failed to list active participants")
		return nil, ErrInternalServer
	}
	return participants, nil
}

// RecentChanges answers the change-feed poll. A zero since falls back to
// the default 60-second catch-up window. Results are ascending by
// timestamp, inclusive of since.
func (s *SyncService) RecentChanges(ctx context.Context, roomID string, since time.Time) ([]domain.Change, error) {
	if since.IsZero() {
		since = time.Now().UTC().Add(-defaultChangeWindow)
	}
	changes, err := s.changeRepo.ListSince(ctx, roomID, since)
	if err != nil {
		logrus.WithField("room_id", roomID).WithError(err).Error("Failed to list recent changes")
		return nil, ErrInternalServer
	}
	return changes, nil
}

// ExpireStalePresence deactivates participants who stopped heartbeating
// without leaving. The sweep is scoped to rooms the Redis activity set saw
// recently, so an idle deployment touches no participant rows at all; when
// the set cannot be read it falls back to an unscoped sweep.
func (s *SyncService) ExpireStalePresence(ctx context.Context, threshold time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-threshold)

	roomIDs, err := s.liveRepo.ActiveRoomIDs(ctx, activityWindow)
	if err != nil {
		logrus.WithError(err).Warn("Failed to read active room set, sweeping all rooms")
		count, err := s.participantRepo.DeactivateStale(ctx, cutoff)
		if err != nil {
			logrus.WithError(err).Error("Failed to deactivate stale participants")
			return 0, err
		}
		return count, nil
	}

	var total int64
	for _, roomID := range roomIDs {
		count, err := s.participantRepo.DeactivateStaleInRoom(ctx, roomID, cutoff)
		if err != nil {
			logrus.WithField("room_id", roomID).WithError(err).Error("Failed to deactivate stale participants in room")
			return total, err
		}
		total += count
	}
	if total > 0 {
		logrus.WithFields(logrus.Fields{"count": total, "rooms": len(roomIDs)}).Info("Deactivated stale participants")
	}
	return total, nil
}

// CompactChangeLog drops change entries older than the retention window so
// the append-only log does not grow without bound.
func (s *SyncService) CompactChangeLog(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-retention)
	count, err := s.changeRepo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		logrus.WithError(err).Error("Failed to compact change log")
		return 0, err
	}
	if count > 0 {
		logrus.WithField("count", count).Info("Compacted change log")
	}
	return count, nil
}

// --- helpers ---

func (s *SyncService) resolveUser(ctx context.Context, userID uint, logCtx *logrus.Entry) (*domain.User, error) {
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

func (s *SyncService) loadRoom(ctx context.Context, roomID string, logCtx *logrus.Entry) (*domain.Room, error) {
	room, err := s.roomRepo.FindByRoomID(ctx, roomID)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			logCtx.Warn("Room not found")
			return nil, ErrRoomNotFound
		}
		logCtx.WithError(err).Error("Failed to load room")
		return nil, ErrInternalServer
	}
	return room, nil
}

// touchParticipant refreshes the editor's lastSeen; missing rows are
// ignored, matching the best-effort presence contract.
func (s *SyncService) touchParticipant(ctx context.Context, roomID string, userID uint, now time.Time, logCtx *logrus.Entry) {
	participant, err := s.participantRepo.FindByRoomAndUser(ctx, roomID, userID)
	if err != nil {
		if !errors.Is(err, repository.ErrParticipantNotFound) {
			logCtx.WithError(err).Warn("Failed to look up participant for activity touch")
		}
		return
	}
	participant.LastSeen = now
	if err := s.participantRepo.Save(ctx, participant); err != nil {
		logCtx.WithError(err).Warn("Failed to touch participant activity")
	}
}

func (s *SyncService) markActive(ctx context.Context, roomID string, logCtx *logrus.Entry) {
	if err := s.liveRepo.MarkRoomActive(ctx, roomID); err != nil {
		logCtx.WithError(err).Warn("Failed to mark room active in Redis")
	}
}

// publish is fire-and-forget: ws notifications are an optimization and a
// failed publish must never fail the operation that triggered it.
func (s *SyncService) publish(ctx context.Context, event domain.Event, logCtx *logrus.Entry) {
	if err := s.liveRepo.PublishEvent(ctx, event); err != nil {
		logCtx.WithError(err).Warn("Failed to publish room event")
	}
}
