package service_test

import (
	"context"
	"errors"
	"strings"
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

func newRoomService(t *testing.T) (*service.RoomService, *mocks.RoomRepository, *mocks.ParticipantRepository, *mocks.UserRepository, *mocks.LiveStateRepository) {
	t.Helper()
	mockRoomRepo := new(mocks.RoomRepository)
	mockParticipantRepo := new(mocks.ParticipantRepository)
	mockUserRepo := new(mocks.UserRepository)
	mockLiveRepo := new(mocks.LiveStateRepository)
	svc := service.NewRoomService(mockRoomRepo, mockParticipantRepo, mockUserRepo, mockLiveRepo)
	return svc, mockRoomRepo, mockParticipantRepo, mockUserRepo, mockLiveRepo
}

func TestRoomService_CreateRoom_Success(t *testing.T) {
	// Arrange
	svc, mockRoomRepo, mockParticipantRepo, mockUserRepo, mockLiveRepo := newRoomService(t)
	ctx := context.Background()
	creator := &domain.User{ID: 7, Username: "alice"}

	mockUserRepo.On("FindByID", ctx, uint(7)).Return(creator, nil).Once()
	mockRoomRepo.On("RoomIDExists", ctx, mock.AnythingOfType("string")).Return(false, nil).Once()

	var savedRoomID string
	mockRoomRepo.On("Save", ctx, mock.MatchedBy(func(room *domain.Room) bool {
		savedRoomID = room.RoomID
		assert.Equal(t, "Pairing session", room.Title)
		assert.Equal(t, "go", room.Language)
		assert.Equal(t, "package main", room.Code)
		assert.Equal(t, uint(7), room.CreatedBy)
		assert.Equal(t, "alice", room.CreatedByName)
		assert.True(t, room.IsActive)
		assert.False(t, room.LastActivity.IsZero())
		return true
	})).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Room).ID = 1
		}).
		Return(nil).
		Once()

	mockParticipantRepo.On("Save", ctx, mock.MatchedBy(func(p *domain.Participant) bool {
		assert.Equal(t, uint(7), p.UserID)
		assert.Equal(t, "alice", p.UserName)
		assert.True(t, p.IsActive)
		assert.False(t, p.JoinedAt.IsZero())
		return true
	})).Return(nil).Once()

	mockLiveRepo.On("MarkRoomActive", ctx, mock.AnythingOfType("string")).Return(nil).Once()

	// Act
	room, err := svc.CreateRoom(ctx, 7, "Pairing session", "go", "package main")

	// Assert
	assert.NoError(t, err)
	require.NotNil(t, room)
	assert.True(t, strings.HasPrefix(room.RoomID, "room_"), "room id should carry the room_ prefix")
	assert.Equal(t, savedRoomID, room.RoomID)

	mockRoomRepo.AssertExpectations(t)
	mockParticipantRepo.AssertExpectations(t)
	mockUserRepo.AssertExpectations(t)
	mockLiveRepo.AssertExpectations(t)
}

func TestRoomService_CreateRoom_EmptyCodeDefaultsToEmptyDocument(t *testing.T) {
	svc, mockRoomRepo, mockParticipantRepo, mockUserRepo, mockLiveRepo := newRoomService(t)
	ctx := context.Background()

	mockUserRepo.On("FindByID", ctx, uint(3)).Return(&domain.User{ID: 3, Username: "bob"}, nil).Once()
	mockRoomRepo.On("RoomIDExists", ctx, mock.AnythingOfType("string")).Return(false, nil).Once()
	mockRoomRepo.On("Save", ctx, mock.MatchedBy(func(room *domain.Room) bool {
		return room.Code == ""
	})).Return(nil).Once()
	mockParticipantRepo.On("Save", ctx, mock.AnythingOfType("*domain.Participant")).Return(nil).Once()
	mockLiveRepo.On("MarkRoomActive", ctx, mock.AnythingOfType("string")).Return(nil).Once()

	room, err := svc.CreateRoom(ctx, 3, "Empty start", "python", "")

	assert.NoError(t, err)
	require.NotNil(t, room)
	assert.Equal(t, "", room.Code, "an omitted document must be the empty string, not a missing value")

	mockRoomRepo.AssertExpectations(t)
}

func TestRoomService_CreateRoom_UserNotFound(t *testing.T) {
	svc, mockRoomRepo, _, mockUserRepo, _ := newRoomService(t)
	ctx := context.Background()

	mockUserRepo.On("FindByID", ctx, uint(99)).Return(nil, repository.ErrUserNotFound).Once()

	_, err := svc.CreateRoom(ctx, 99, "Ghost room", "go", "")

	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrUserNotFound))
	mockRoomRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestRoomService_GetRoom_NotFound(t *testing.T) {
	svc, mockRoomRepo, _, _, _ := newRoomService(t)
	ctx := context.Background()

	mockRoomRepo.On("FindByRoomID", ctx, "room_123_missing00").Return(nil, repository.ErrRoomNotFound).Once()

	_, err := svc.GetRoom(ctx, "room_123_missing00")

	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrRoomNotFound))
	mockRoomRepo.AssertExpectations(t)
}

func TestRoomService_UserRooms(t *testing.T) {
	svc, mockRoomRepo, _, _, _ := newRoomService(t)
	ctx := context.Background()
	now := time.Now()

	expected := []domain.Room{
		{RoomID: "room_2_bbbbbbbbb", Title: "Newest", LastActivity: now},
		{RoomID: "room_1_aaaaaaaaa", Title: "Older", LastActivity: now.Add(-time.Hour)},
	}
	mockRoomRepo.On("FindByCreator", ctx, uint(4)).Return(expected, nil).Once()

	rooms, err := svc.UserRooms(ctx, 4)

	assert.NoError(t, err)
	assert.Equal(t, expected, rooms)
	mockRoomRepo.AssertExpectations(t)
}
