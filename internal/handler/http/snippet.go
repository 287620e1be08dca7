package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Siddharth-The-Dragon-Slayer/code-Collab-v4/internal/service"
)

// SnippetHandler exposes the snapshot exporter.
type SnippetHandler struct {
	snippetService *service.SnippetService
}

func NewSnippetHandler(snippetService *service.SnippetService) *SnippetHandler {
	if snippetService == nil {
		panic("SnippetService cannot be nil for SnippetHandler")
	}
	return &SnippetHandler{snippetService: snippetService}
}

type SaveSnippetRequest struct {
	Title string `json:"title" binding:"required,max=255"`
}

func (h *SnippetHandler) SaveFromRoom(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	roomID := c.Param("roomId")

	var req SaveSnippetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logrus.WithError(err).Warn("Handler.SaveFromRoom: invalid input")
		ErrorResponse(c, http.StatusBadRequest, "Invalid input: title is required")
		return
	}

	snippet, err := h.snippetService.SaveRoomAsSnippet(c.Request.Context(), userID, roomID, req.Title)
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, gin.H{
		"message":    "Snippet saved",
		"snippet_id": snippet.ID,
	})
}
