package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Siddharth-The-Dragon-Slayer/code-Collab-v4/internal/domain"
	"github.com/Siddharth-The-Dragon-Slayer/code-Collab-v4/internal/dto"
	"github.com/Siddharth-The-Dragon-Slayer/code-Collab-v4/internal/service"
)

// SyncHandler exposes the session-synchronization surface: join/leave,
// edits, cursor heartbeats and the poll queries.
type SyncHandler struct {
	syncService *service.SyncService
}

func NewSyncHandler(syncService *service.SyncService) *SyncHandler {
	if syncService == nil {
		panic("SyncService cannot be nil for SyncHandler")
	}
	return &SyncHandler{syncService: syncService}
}

func (h *SyncHandler) Join(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	roomID := c.Param("roomId")

	room, err := h.syncService.JoinRoom(c.Request.Context(), userID, roomID)
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, room)
}

// Leave is idempotent: leaving a room the caller never joined succeeds.
func (h *SyncHandler) Leave(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	roomID := c.Param("roomId")

	if err := h.syncService.LeaveRoom(c.Request.Context(), userID, roomID); err != nil {
		HandleServiceError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, gin.H{"message": "Left room"})
}

type UpdateCodeRequest struct {
	Code       string            `json:"code"`
	ChangeType domain.ChangeType `json:"change_type" binding:"required,oneof=insert delete replace"`
	Position   domain.Position   `json:"position"`
	Content    string            `json:"content"`
}

func (h *SyncHandler) UpdateCode(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	roomID := c.Param("roomId")

	var req UpdateCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logrus.WithError(err).Warn("Handler.UpdateCode: invalid input")
		ErrorResponse(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	change, err := h.syncService.SubmitEdit(c.Request.Context(), userID, roomID, req.Code, req.ChangeType, req.Position, req.Content)
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, gin.H{
		"message":   "Code updated",
		"change_id": change.ID,
		"timestamp": change.Timestamp,
	})
}

type UpdateCursorRequest struct {
	Line   int `json:"line" binding:"min=0"`
	Column int `json:"column" binding:"min=0"`
}

// UpdateCursor is a best-effort heartbeat; a caller who is not a member
// gets a success response and nothing happens.
func (h *SyncHandler) UpdateCursor(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	roomID := c.Param("roomId")

	var req UpdateCursorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logrus.WithError(err).Warn("Handler.UpdateCursor: invalid input")
		ErrorResponse(c, http.StatusBadRequest, "Invalid input: line and column must be non-negative")
		return
	}

	if err := h.syncService.UpdateCursor(c.Request.Context(), userID, roomID, req.Line, req.Column); err != nil {
		HandleServiceError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, gin.H{"message": "Cursor updated"})
}

func (h *SyncHandler) Participants(c *gin.Context) {
	roomID := c.Param("roomId")

	participants, err := h.syncService.ActiveParticipants(c.Request.Context(), roomID)
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, dto.NewParticipantViews(participants))
}

// Changes answers the change-feed poll. The optional since parameter is
// unix milliseconds; without it the service applies its default catch-up
// window.
func (h *SyncHandler) Changes(c *gin.Context) {
	roomID := c.Param("roomId")

	var since time.Time
	if sinceStr := c.Query("since"); sinceStr != "" {
		sinceMs, err := strconv.ParseInt(sinceStr, 10, 64)
		if err != nil {
			ErrorResponse(c, http.StatusBadRequest, "Invalid since parameter: expected unix milliseconds")
			return
		}
		since = time.UnixMilli(sinceMs)
	}

	changes, err := h.syncService.RecentChanges(c.Request.Context(), roomID, since)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	if changes == nil {
		changes = []domain.Change{}
	}

	SuccessResponse(c, http.StatusOK, changes)
}
