package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"ktirio-backend/internal/middleware"
	"ktirio-backend/internal/models"
)

// currentUserID reads the authenticated user's id set by the auth middleware.
// Writes the error response and returns false when it is missing or malformed.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	userIDStr, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(userIDStr.(string))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid user id"})
		return uuid.Nil, false
	}

	return userID, true
}

// pathUUID parses a UUID path parameter, writing the error response on failure.
func pathUUID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid " + param})
		return uuid.Nil, false
	}
	return id, true
}
