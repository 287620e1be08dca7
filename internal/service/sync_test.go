package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Siddharth-The-Dragon-Slayer/code-Collab-v4/internal/domain"
	"github.com/Siddharth-The-Dragon-Slayer/code-Collab-v4/internal/repository"
	"github.com/Siddharth-The-Dragon-Slayer/code-Collab-v4/internal/repository/mocks"
	"github.com/Siddharth-The-Dragon-Slayer/code-Collab-v4/internal/service"
)

type syncServiceMocks struct {
	roomRepo        *mocks.RoomRepository
	participantRepo *mocks.ParticipantRepository
	changeRepo      *mocks.ChangeRepository
	userRepo        *mocks.UserRepository
	liveRepo        *mocks.LiveStateRepository
}

func newSyncService(t *testing.T) (*service.SyncService, *syncServiceMocks) {
	t.Helper()
	m := &syncServiceMocks{
		roomRepo:        new(mocks.RoomRepository),
		participantRepo: new(mocks.ParticipantRepository),
		changeRepo:      new(mocks.ChangeRepository),
		userRepo:        new(mocks.UserRepository),
		liveRepo:        new(mocks.LiveStateRepository),
	}
	svc := service.NewSyncService(m.roomRepo, m.participantRepo, m.changeRepo, m.userRepo, m.liveRepo)
	return svc, m
}

const testRoomID = "room_1700000000000_abc123def"

func activeRoom() *domain.Room {
	return &domain.Room{
		ID:            1,
		RoomID:        testRoomID,
		Title:         "Session",
		Language:      "go",
		Code:          "package main",
		CreatedBy:     1,
		CreatedByName: "alice",
		IsActive:      true,
		LastActivity:  time.Now().Add(-time.Minute),
	}
}

// --- JoinRoom ---

func TestSyncService_JoinRoom_NewParticipant(t *testing.T) {
	svc, m := newSyncService(t)
	ctx := context.Background()
	user := &domain.User{ID: 2, Username: "bob"}

	m.userRepo.On("FindByID", ctx, uint(2)).Return(user, nil).Once()
	m.roomRepo.On("FindByRoomID", ctx, testRoomID).Return(activeRoom(), nil).Once()
	m.participantRepo.On("FindByRoomAndUser", ctx, testRoomID, uint(2)).
		Return(nil, repository.ErrParticipantNotFound).Once()
	m.participantRepo.On("Save", ctx, mock.MatchedBy(func(p *domain.Participant) bool {
		assert.Equal(t, testRoomID, p.RoomID)
		assert.Equal(t, uint(2), p.UserID)
		assert.Equal(t, "bob", p.UserName)
		assert.True(t, p.IsActive)
		assert.False(t, p.JoinedAt.IsZero())
		return true
	})).Return(nil).Once()
	m.roomRepo.On("Save", ctx, mock.AnythingOfType("*domain.Room")).Return(nil).Once()
	m.liveRepo.On("MarkRoomActive", ctx, testRoomID).Return(nil).Once()
	m.liveRepo.On("PublishEvent", ctx, mock.MatchedBy(func(e domain.Event) bool {
		return e.Type == domain.EventPresence && e.Online && e.UserID == 2
	})).Return(nil).Once()

	room, err := svc.JoinRoom(ctx, 2, testRoomID)

	assert.NoError(t, err)
	require.NotNil(t, room)
	assert.Equal(t, testRoomID, room.RoomID)

	m.participantRepo.AssertExpectations(t)
	m.liveRepo.AssertExpectations(t)
}

func TestSyncService_JoinRoom_RejoinKeepsJoinedAt(t *testing.T) {
	svc, m := newSyncService(t)
	ctx := context.Background()
	user := &domain.User{ID: 2, Username: "bob"}
	originalJoin := time.Now().Add(-2 * time.Hour)
	existing := &domain.Participant{
		ID:       11,
		RoomID:   testRoomID,
		UserID:   2,
		UserName: "bob",
		JoinedAt: originalJoin,
		LastSeen: originalJoin,
		IsActive: false,
	}

	m.userRepo.On("FindByID", ctx, uint(2)).Return(user, nil).Once()
	m.roomRepo.On("FindByRoomID", ctx, testRoomID).Return(activeRoom(), nil).Once()
	m.participantRepo.On("FindByRoomAndUser", ctx, testRoomID, uint(2)).Return(existing, nil).Once()
	m.participantRepo.On("Save", ctx, mock.MatchedBy(func(p *domain.Participant) bool {
		assert.Equal(t, uint(11), p.ID, "rejoin must reuse the existing membership row")
		assert.True(t, p.IsActive, "rejoin must reactivate the membership")
		assert.Equal(t, originalJoin, p.JoinedAt, "rejoin must not reset joinedAt")
		assert.True(t, p.LastSeen.After(originalJoin), "rejoin must refresh lastSeen")
		return true
	})).Return(nil).Once()
	m.roomRepo.On("Save", ctx, mock.AnythingOfType("*domain.Room")).Return(nil).Once()
	m.liveRepo.On("MarkRoomActive", ctx, testRoomID).Return(nil).Once()
	m.liveRepo.On("PublishEvent", ctx, mock.AnythingOfType("domain.Event")).Return(nil).Once()

	_, err := svc.JoinRoom(ctx, 2, testRoomID)

	assert.NoError(t, err)
	m.participantRepo.AssertExpectations(t)
}

func TestSyncService_JoinRoom_RoomNotFound(t *testing.T) {
	svc, m := newSyncService(t)
	ctx := context.Background()

	m.userRepo.On("FindByID", ctx, uint(2)).Return(&domain.User{ID: 2, Username: "bob"}, nil).Once()
	m.roomRepo.On("FindByRoomID", ctx, "room_0_gone000000").Return(nil, repository.ErrRoomNotFound).Once()

	_, err := svc.JoinRoom(ctx, 2, "room_0_gone000000")

	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrRoomNotFound))
	m.participantRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestSyncService_JoinRoom_InactiveRoom(t *testing.T) {
	svc, m := newSyncService(t)
	ctx := context.Background()
	room := activeRoom()
	room.IsActive = false

	m.userRepo.On("FindByID", ctx, uint(2)).Return(&domain.User{ID: 2, Username: "bob"}, nil).Once()
	m.roomRepo.On("FindByRoomID", ctx, testRoomID).Return(room, nil).Once()

	_, err := svc.JoinRoom(ctx, 2, testRoomID)

	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrRoomInactive))
	m.participantRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

// --- LeaveRoom ---

func TestSyncService_LeaveRoom_DeactivatesMembership(t *testing.T) {
	svc, m := newSyncService(t)
	ctx := context.Background()
	existing := &domain.Participant{
		ID:       11,
		RoomID:   testRoomID,
		UserID:   2,
		UserName: "bob",
		IsActive: true,
	}

	m.participantRepo.On("FindByRoomAndUser", ctx, testRoomID, uint(2)).Return(existing, nil).Once()
	m.participantRepo.On("Save", ctx, mock.MatchedBy(func(p *domain.Participant) bool {
		return !p.IsActive
	})).Return(nil).Once()
	m.liveRepo.On("PublishEvent", ctx, mock.MatchedBy(func(e domain.Event) bool {
		return e.Type == domain.EventPresence && !e.Online
	})).Return(nil).Once()

	err := svc.LeaveRoom(ctx, 2, testRoomID)

	assert.NoError(t, err)
	m.participantRepo.AssertExpectations(t)
}

func TestSyncService_LeaveRoom_NoMembershipIsNoOp(t *testing.T) {
	svc, m := newSyncService(t)
	ctx := context.Background()

	m.participantRepo.On("FindByRoomAndUser", ctx, testRoomID, uint(9)).
		Return(nil, repository.ErrParticipantNotFound).Once()

	err := svc.LeaveRoom(ctx, 9, testRoomID)

	assert.NoError(t, err, "leaving a room never joined must succeed silently")
	m.participantRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	m.liveRepo.AssertNotCalled(t, "PublishEvent", mock.Anything, mock.Anything)
}

// --- SubmitEdit ---

func TestSyncService_SubmitEdit_OverwritesDocumentAndAppendsChange(t *testing.T) {
	svc, m := newSyncService(t)
	ctx := context.Background()
	user := &domain.User{ID: 2, Username: "bob"}
	room := activeRoom()
	position := domain.Position{StartLine: 1, StartColumn: 0, EndLine: 1, EndColumn: 5}

	m.userRepo.On("FindByID", ctx, uint(2)).Return(user, nil).Once()
	m.roomRepo.On("FindByRoomID", ctx, testRoomID).Return(room, nil).Once()
	m.roomRepo.On("Save", ctx, mock.MatchedBy(func(r *domain.Room) bool {
		assert.Equal(t, "package main\n\nfunc main() {}", r.Code, "the full document must be overwritten")
		return true
	})).Return(nil).Once()
	m.changeRepo.On("Append", ctx, mock.MatchedBy(func(c *domain.Change) bool {
		assert.Equal(t, testRoomID, c.RoomID)
		assert.Equal(t, uint(2), c.UserID)
		assert.Equal(t, "bob", c.UserName)
		assert.Equal(t, domain.ChangeInsert, c.ChangeType)
		assert.Equal(t, position, c.Position)
		assert.Equal(t, "func main() {}", c.Content)
		assert.False(t, c.Timestamp.IsZero(), "the server assigns the change timestamp")
		return true
	})).Return(nil).Once()
	m.participantRepo.On("FindByRoomAndUser", ctx, testRoomID, uint(2)).
		Return(&domain.Participant{ID: 11, RoomID: testRoomID, UserID: 2, IsActive: true}, nil).Once()
	m.participantRepo.On("Save", ctx, mock.AnythingOfType("*domain.Participant")).Return(nil).Once()
	m.liveRepo.On("MarkRoomActive", ctx, testRoomID).Return(nil).Once()
	m.liveRepo.On("PublishEvent", ctx, mock.MatchedBy(func(e domain.Event) bool {
		return e.Type == domain.EventChange && e.Change != nil
	})).Return(nil).Once()

	change, err := svc.SubmitEdit(ctx, 2, testRoomID, "package main\n\nfunc main() {}", domain.ChangeInsert, position, "func main() {}")

	assert.NoError(t, err)
	require.NotNil(t, change)

	m.roomRepo.AssertExpectations(t)
	m.changeRepo.AssertExpectations(t)
}

func TestSyncService_SubmitEdit_InactiveRoomStillAccepts(t *testing.T) {
	// Edits do not check the room's active flag; only joins do.
	svc, m := newSyncService(t)
	ctx := context.Background()
	room := activeRoom()
	room.IsActive = false

	m.userRepo.On("FindByID", ctx, uint(2)).Return(&domain.User{ID: 2, Username: "bob"}, nil).Once()
	m.roomRepo.On("FindByRoomID", ctx, testRoomID).Return(room, nil).Once()
	m.roomRepo.On("Save", ctx, mock.AnythingOfType("*domain.Room")).Return(nil).Once()
	m.changeRepo.On("Append", ctx, mock.AnythingOfType("*domain.Change")).Return(nil).Once()
	m.participantRepo.On("FindByRoomAndUser", ctx, testRoomID, uint(2)).
		Return(nil, repository.ErrParticipantNotFound).Once()
	m.liveRepo.On("MarkRoomActive", ctx, testRoomID).Return(nil).Once()
	m.liveRepo.On("PublishEvent", ctx, mock.AnythingOfType("domain.Event")).Return(nil).Once()

	_, err := svc.SubmitEdit(ctx, 2, testRoomID, "new code", domain.ChangeReplace, domain.Position{}, "new code")

	assert.NoError(t, err)
	m.changeRepo.AssertExpectations(t)
}

func TestSyncService_SubmitEdit_InvalidChangeType(t *testing.T) {
	svc, m := newSyncService(t)
	ctx := context.Background()

	_, err := svc.SubmitEdit(ctx, 2, testRoomID, "code", domain.ChangeType("mutate"), domain.Position{}, "code")

	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrInvalidChange))
	m.roomRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	m.changeRepo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

func TestSyncService_SubmitEdit_LastWriterWins(t *testing.T) {
	svc, m := newSyncService(t)
	ctx := context.Background()
	room := activeRoom()

	m.userRepo.On("FindByID", ctx, mock.AnythingOfType("uint")).
		Return(&domain.User{ID: 2, Username: "bob"}, nil)
	m.roomRepo.On("FindByRoomID", ctx, testRoomID).Return(room, nil)
	m.roomRepo.On("Save", ctx, mock.AnythingOfType("*domain.Room")).Return(nil)
	m.changeRepo.On("Append", ctx, mock.AnythingOfType("*domain.Change")).Return(nil)
	m.participantRepo.On("FindByRoomAndUser", ctx, testRoomID, mock.AnythingOfType("uint")).
		Return(nil, repository.ErrParticipantNotFound)
	m.liveRepo.On("MarkRoomActive", ctx, testRoomID).Return(nil)
	m.liveRepo.On("PublishEvent", ctx, mock.AnythingOfType("domain.Event")).Return(nil)

	_, err := svc.SubmitEdit(ctx, 2, testRoomID, "version one", domain.ChangeReplace, domain.Position{}, "version one")
	require.NoError(t, err)
	_, err = svc.SubmitEdit(ctx, 2, testRoomID, "version two", domain.ChangeReplace, domain.Position{}, "version two")
	require.NoError(t, err)

	assert.Equal(t, "version two", room.Code, "the most recent write must stand")
}

// --- UpdateCursor ---

func TestSyncService_UpdateCursor_RecordsPosition(t *testing.T) {
	svc, m := newSyncService(t)
	ctx := context.Background()
	existing := &domain.Participant{ID: 11, RoomID: testRoomID, UserID: 2, UserName: "bob", IsActive: true}

	m.participantRepo.On("FindByRoomAndUser", ctx, testRoomID, uint(2)).Return(existing, nil).Once()
	m.participantRepo.On("Save", ctx, mock.MatchedBy(func(p *domain.Participant) bool {
		cursor := p.Cursor()
		require.NotNil(t, cursor)
		assert.Equal(t, 12, cursor.Line)
		assert.Equal(t, 4, cursor.Column)
		assert.False(t, p.LastSeen.IsZero(), "a cursor ping doubles as a heartbeat")
		return true
	})).Return(nil).Once()
	m.liveRepo.On("PublishEvent", ctx, mock.MatchedBy(func(e domain.Event) bool {
		return e.Type == domain.EventCursor && e.Cursor != nil && e.Cursor.Line == 12
	})).Return(nil).Once()

	err := svc.UpdateCursor(ctx, 2, testRoomID, 12, 4)

	assert.NoError(t, err)
	m.participantRepo.AssertExpectations(t)
}

func TestSyncService_UpdateCursor_NoMembershipIsNoOp(t *testing.T) {
	svc, m := newSyncService(t)
	ctx := context.Background()

	m.participantRepo.On("FindByRoomAndUser", ctx, testRoomID, uint(9)).
		Return(nil, repository.ErrParticipantNotFound).Once()

	err := svc.UpdateCursor(ctx, 9, testRoomID, 1, 1)

	assert.NoError(t, err, "a cursor ping from a non-member must succeed silently")
	m.participantRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

// --- Polls ---

func TestSyncService_ActiveParticipants(t *testing.T) {
	svc, m := newSyncService(t)
	ctx := context.Background()
	expected := []domain.Participant{
		{RoomID: testRoomID, UserID: 1, UserName: "alice", IsActive: true},
		{RoomID: testRoomID, UserID: 2, UserName: "bob", IsActive: true},
	}

	m.participantRepo.On("ListActive", ctx, testRoomID).Return(expected, nil).Once()

	participants, err := svc.ActiveParticipants(ctx, testRoomID)

	assert.NoError(t, err)
	assert.Equal(t, expected, participants)
}

func TestSyncService_RecentChanges_ZeroSinceUsesDefaultWindow(t *testing.T) {
	svc, m := newSyncService(t)
	ctx := context.Background()

	m.changeRepo.On("ListSince", ctx, testRoomID, mock.MatchedBy(func(since time.Time) bool {
		// The default window is 60 seconds back from now.
		delta := time.Since(since)
		return delta > 55*time.Second && delta < 65*time.Second
	})).Return([]domain.Change{}, nil).Once()

	_, err := svc.RecentChanges(ctx, testRoomID, time.Time{})

	assert.NoError(t, err)
	m.changeRepo.AssertExpectations(t)
}

func TestSyncService_RecentChanges_ExplicitSincePassedThrough(t *testing.T) {
	svc, m := newSyncService(t)
	ctx := context.Background()
	since := time.Now().Add(-10 * time.Minute).UTC()
	expected := []domain.Change{
		{ID: 1, RoomID: testRoomID, ChangeType: domain.ChangeInsert, Timestamp: since.Add(time.Minute)},
		{ID: 2, RoomID: testRoomID, ChangeType: domain.ChangeDelete, Timestamp: since.Add(2 * time.Minute)},
	}

	m.changeRepo.On("ListSince", ctx, testRoomID, since).Return(expected, nil).Once()

	changes, err := svc.RecentChanges(ctx, testRoomID, since)

	assert.NoError(t, err)
	assert.Equal(t, expected, changes)
}

// --- Maintenance ---

func TestSyncService_ExpireStalePresence_ScopedToActiveRooms(t *testing.T) {
	svc, m := newSyncService(t)
	ctx := context.Background()
	otherRoomID := "room_1700000000001_zzz999yyy"

	m.liveRepo.On("ActiveRoomIDs", ctx, mock.AnythingOfType("time.Duration")).
		Return([]string{testRoomID, otherRoomID}, nil).Once()
	cutoffMatcher := mock.MatchedBy(func(cutoff time.Time) bool {
		delta := time.Since(cutoff)
		return delta > 115*time.Second && delta < 125*time.Second
	})
	m.participantRepo.On("DeactivateStaleInRoom", ctx, testRoomID, cutoffMatcher).
		Return(int64(2), nil).Once()
	m.participantRepo.On("DeactivateStaleInRoom", ctx, otherRoomID, cutoffMatcher).
		Return(int64(1), nil).Once()

	count, err := svc.ExpireStalePresence(ctx, 2*time.Minute)

	assert.NoError(t, err)
	assert.Equal(t, int64(3), count)

	m.liveRepo.AssertExpectations(t)
	m.participantRepo.AssertExpectations(t)
	m.participantRepo.AssertNotCalled(t, "DeactivateStale", mock.Anything, mock.Anything)
}

func TestSyncService_ExpireStalePresence_NoActiveRoomsTouchesNothing(t *testing.T) {
	svc, m := newSyncService(t)
	ctx := context.Background()

	m.liveRepo.On("ActiveRoomIDs", ctx, mock.AnythingOfType("time.Duration")).
		Return([]string{}, nil).Once()

	count, err := svc.ExpireStalePresence(ctx, 2*time.Minute)

	assert.NoError(t, err)
	assert.Equal(t, int64(0), count)
	m.participantRepo.AssertNotCalled(t, "DeactivateStale", mock.Anything, mock.Anything)
	m.participantRepo.AssertNotCalled(t, "DeactivateStaleInRoom", mock.Anything, mock.Anything, mock.Anything)
}

func TestSyncService_ExpireStalePresence_RedisDownFallsBackToFullSweep(t *testing.T) {
	svc, m := newSyncService(t)
	ctx := context.Background()

	m.liveRepo.On("ActiveRoomIDs", ctx, mock.AnythingOfType("time.Duration")).
		Return(nil, errors.New("redis: connection refused")).Once()
	m.participantRepo.On("DeactivateStale", ctx, mock.AnythingOfType("time.Time")).
		Return(int64(5), nil).Once()

	count, err := svc.ExpireStalePresence(ctx, 2*time.Minute)

	assert.NoError(t, err, "an unreadable activity set must degrade, not fail the sweep")
	assert.Equal(t, int64(5), count)
	m.participantRepo.AssertExpectations(t)
}

func TestSyncService_CompactChangeLog(t *testing.T) {
	svc, m := newSyncService(t)
	ctx := context.Background()

	m.changeRepo.On("DeleteOlderThan", ctx, mock.AnythingOfType("time.Time")).Return(int64(42), nil).Once()

	count, err := svc.CompactChangeLog(ctx, 24*time.Hour)

	assert.NoError(t, err)
	assert.Equal(t, int64(42), count)
}
