package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Siddharth-The-Dragon-Slayer/code-Collab-v4/internal/middleware"
	"github.com/Siddharth-The-Dragon-Slayer/code-Collab-v4/internal/service"
)

// HandleServiceError is the single place business errors become HTTP status
// codes.
func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAuthenticationFailed):
		ErrorResponse(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrUserNotFound):
		ErrorResponse(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrRegistrationFailed), errors.Is(err, service.ErrInvalidChange):
		ErrorResponse(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrRoomNotFound):
		ErrorResponse(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrRoomInactive):
		ErrorResponse(c, http.StatusGone, err.Error())
	default:
		logrus.WithError(err).Error("Unhandled internal server error")
		ErrorResponse(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}

// currentUserID reads the user id stored by the auth middleware. The second
// return is false when the request is unauthenticated (possible on
// optional-auth routes) or the stored value has the wrong type.
func currentUserID(c *gin.Context) (uint, bool) {
	userIDAny, exists := c.Get(middleware.ContextUserIDKey)
	if !exists {
		return 0, false
	}
	userID, ok := userIDAny.(uint)
	if !ok {
		logrus.Error("Handler: user_id in context is not uint")
		return 0, false
	}
	return userID, true
}

// requireUserID is currentUserID plus the 401 response for routes where the
// auth middleware should have guaranteed a caller.
func requireUserID(c *gin.Context) (uint, bool) {
	userID, ok := currentUserID(c)
	if !ok {
		ErrorResponse(c, http.StatusUnauthorized, "User not authenticated")
		return 0, false
	}
	return userID, true
}
