package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Siddharth-The-Dragon-Slayer/code-Collab-v4/internal/domain"
	"github.com/Siddharth-The-Dragon-Slayer/code-Collab-v4/internal/service"
)

// RoomHandler exposes room lifecycle: create, lookup and the caller's room
// list.
type RoomHandler struct {
	roomService *service.RoomService
}

func NewRoomHandler(roomService *service.RoomService) *RoomHandler {
	if roomService == nil {
		panic("RoomService cannot be nil for RoomHandler")
	}
	return &RoomHandler{roomService: roomService}
}

type CreateRoomRequest struct {
	Title    string `json:"title" binding:"required,max=255"`
	Language string `json:"language" binding:"required,max=64"`
	// Code is optional; an omitted document starts empty.
	Code string `json:"code"`
}

func (h *RoomHandler) CreateRoom(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logrus.WithError(err).Warn("Handler.CreateRoom: invalid input")
		ErrorResponse(c, http.StatusBadRequest, "Invalid input: title and language are required")
		return
	}

	room, err := h.roomService.CreateRoom(c.Request.Context(), userID, req.Title, req.Language, req.Code)
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, gin.H{
		"message": "Room created successfully",
		"room_id": room.RoomID,
	})
}

// GetRoom is a pure lookup; an absent room is expressed as 404.
func (h *RoomHandler) GetRoom(c *gin.Context) {
	roomID := c.Param("roomId")

	room, err := h.roomService.GetRoom(c.Request.Context(), roomID)
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, room)
}

// ListMine returns the rooms created by the caller. This route sits behind
// optional auth: an unauthenticated caller gets an empty list, not a 401.
func (h *RoomHandler) ListMine(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		SuccessResponse(c, http.StatusOK, []domain.Room{})
		return
	}

	rooms, err := h.roomService.UserRooms(c.Request.Context(), userID)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	if rooms == nil {
		rooms = []domain.Room{}
	}

	SuccessResponse(c, http.StatusOK, rooms)
}
