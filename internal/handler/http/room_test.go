package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Siddharth-The-Dragon-Slayer/code-Collab-v4/internal/domain"
	handler "github.com/Siddharth-The-Dragon-Slayer/code-Collab-v4/internal/handler/http"
	"github.com/Siddharth-The-Dragon-Slayer/code-Collab-v4/internal/middleware"
	"github.com/Siddharth-The-Dragon-Slayer/code-Collab-v4/internal/repository"
	"github.com/Siddharth-The-Dragon-Slayer/code-Collab-v4/internal/repository/mocks"
	"github.com/Siddharth-The-Dragon-Slayer/code-Collab-v4/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type roomHandlerFixture struct {
	router          *gin.Engine
	roomRepo        *mocks.RoomRepository
	participantRepo *mocks.ParticipantRepository
	userRepo        *mocks.UserRepository
	liveRepo        *mocks.LiveStateRepository
}

// newRoomHandlerFixture wires the handler against a real RoomService with
// mocked repositories and an auth shim that injects the given user id.
func newRoomHandlerFixture(t *testing.T, authedUserID uint) *roomHandlerFixture {
	t.Helper()
	f := &roomHandlerFixture{
		roomRepo:        new(mocks.RoomRepository),
		participantRepo: new(mocks.ParticipantRepository),
		userRepo:        new(mocks.UserRepository),
		liveRepo:        new(mocks.LiveStateRepository),
	}
	roomService := service.NewRoomService(f.roomRepo, f.participantRepo, f.userRepo, f.liveRepo)
	roomHandler := handler.NewRoomHandler(roomService)

	f.router = gin.New()
	f.router.POST("/api/rooms", func(c *gin.Context) {
		if authedUserID != 0 {
			c.Set(middleware.ContextUserIDKey, authedUserID)
		}
		c.Next()
	}, roomHandler.CreateRoom)
	f.router.GET("/api/rooms/:roomId", roomHandler.GetRoom)
	return f
}

func TestRoomHandler_CreateRoom_Success(t *testing.T) {
	f := newRoomHandlerFixture(t, 7)

	f.userRepo.On("FindByID", mock.Anything, uint(7)).
		Return(&domain.User{ID: 7, Username: "alice"}, nil).Once()
	f.roomRepo.On("RoomIDExists", mock.Anything, mock.AnythingOfType("string")).Return(false, nil).Once()
	f.roomRepo.On("Save", mock.Anything, mock.AnythingOfType("*domain.Room")).Return(nil).Once()
	f.participantRepo.On("Save", mock.Anything, mock.AnythingOfType("*domain.Participant")).Return(nil).Once()
	f.liveRepo.On("MarkRoomActive", mock.Anything, mock.AnythingOfType("string")).Return(nil).Once()

	body := `{"title": "Pairing session", "language": "go", "code": "package main"}`
	req := httptest.NewRequest(http.MethodPost, "/api/rooms", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	roomID, _ := resp["room_id"].(string)
	assert.True(t, strings.HasPrefix(roomID, "room_"))

	f.roomRepo.AssertExpectations(t)
}

func TestRoomHandler_CreateRoom_MissingTitle(t *testing.T) {
	f := newRoomHandlerFixture(t, 7)

	body := `{"language": "go"}`
	req := httptest.NewRequest(http.MethodPost, "/api/rooms", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	f.roomRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestRoomHandler_CreateRoom_Unauthenticated(t *testing.T) {
	f := newRoomHandlerFixture(t, 0)

	body := `{"title": "Pairing session", "language": "go"}`
	req := httptest.NewRequest(http.MethodPost, "/api/rooms", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRoomHandler_GetRoom_Success(t *testing.T) {
	f := newRoomHandlerFixture(t, 0)
	room := &domain.Room{
		RoomID:   "room_1700000000000_abc123def",
		Title:    "Session",
		Language: "go",
		Code:     "package main",
		IsActive: true,
	}

	f.roomRepo.On("FindByRoomID", mock.Anything, room.RoomID).Return(room, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/rooms/"+room.RoomID, nil)
	w := httptest.NewRecorder()

	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, room.RoomID, resp["room_id"])
	assert.Equal(t, "package main", resp["code"])
}

func TestRoomHandler_GetRoom_NotFound(t *testing.T) {
	f := newRoomHandlerFixture(t, 0)

	f.roomRepo.On("FindByRoomID", mock.Anything, "room_0_gone000000").
		Return(nil, repository.ErrRoomNotFound).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/rooms/room_0_gone000000", nil)
	w := httptest.NewRecorder()

	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
