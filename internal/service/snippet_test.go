package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Siddharth-The-Dragon-Slayer/code-Collab-v4/internal/domain"
	"github.com/Siddharth-The-Dragon-Slayer/code-Collab-v4/internal/repository"
	"github.com/Siddharth-The-Dragon-Slayer/code-Collab-v4/internal/repository/mocks"
	"github.com/Siddharth-The-Dragon-Slayer/code-Collab-v4/internal/service"
)

func TestSnippetService_SaveRoomAsSnippet_CopiesDocumentVerbatim(t *testing.T) {
	// Arrange
	mockSnippetRepo := new(mocks.SnippetRepository)
	mockRoomRepo := new(mocks.RoomRepository)
	mockUserRepo := new(mocks.UserRepository)
	svc := service.NewSnippetService(mockSnippetRepo, mockRoomRepo, mockUserRepo)

	ctx := context.Background()
	user := &domain.User{ID: 2, Username: "bob"}
	room := &domain.Room{
		RoomID:   "room_1700000000000_abc123def",
		Title:    "Session",
		Language: "rust",
		Code:     "fn main() {\n    println!(\"hello\");\n}",
		IsActive: true,
	}

	mockUserRepo.On("FindByID", ctx, uint(2)).Return(user, nil).Once()
	mockRoomRepo.On("FindByRoomID", ctx, room.RoomID).Return(room, nil).Once()
	mockSnippetRepo.On("Save", ctx, mock.MatchedBy(func(s *domain.Snippet) bool {
		assert.Equal(t, uint(2), s.UserID)
		assert.Equal(t, "bob", s.UserName)
		assert.Equal(t, "My snippet", s.Title)
		assert.Equal(t, room.Language, s.Language, "language must be copied from the room")
		assert.Equal(t, room.Code, s.Code, "code must be copied byte for byte")
		return true
	})).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Snippet).ID = 77
		}).
		Return(nil).
		Once()

	// Act
	snippet, err := svc.SaveRoomAsSnippet(ctx, 2, room.RoomID, "My snippet")

	// Assert
	assert.NoError(t, err)
	require.NotNil(t, snippet)
	assert.Equal(t, uint(77), snippet.ID)

	mockSnippetRepo.AssertExpectations(t)
}

func TestSnippetService_SaveRoomAsSnippet_RoomNotFound(t *testing.T) {
	mockSnippetRepo := new(mocks.SnippetRepository)
	mockRoomRepo := new(mocks.RoomRepository)
	mockUserRepo := new(mocks.UserRepository)
	svc := service.NewSnippetService(mockSnippetRepo, mockRoomRepo, mockUserRepo)
	ctx := context.Background()

	mockUserRepo.On("FindByID", ctx, uint(2)).Return(&domain.User{ID: 2, Username: "bob"}, nil).Once()
	mockRoomRepo.On("FindByRoomID", ctx, "room_0_gone000000").Return(nil, repository.ErrRoomNotFound).Once()

	_, err := svc.SaveRoomAsSnippet(ctx, 2, "room_0_gone000000", "Orphan")

	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrRoomNotFound))
	mockSnippetRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestSnippetService_SaveRoomAsSnippet_UserNotFound(t *testing.T) {
	mockSnippetRepo := new(mocks.SnippetRepository)
	mockRoomRepo := new(mocks.RoomRepository)
	mockUserRepo := new(mocks.UserRepository)
	svc := service.NewSnippetService(mockSnippetRepo, mockRoomRepo, mockUserRepo)
	ctx := context.Background()

	mockUserRepo.On("FindByID", ctx, uint(99)).Return(nil, repository.ErrUserNotFound).Once()

	_, err := svc.SaveRoomAsSnippet(ctx, 99, "room_1_aaaaaaaaa", "Ghost")

	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrUserNotFound))
	mockRoomRepo.AssertNotCalled(t, "FindByRoomID", mock.Anything, mock.Anything)
}
