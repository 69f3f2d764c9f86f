package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/reelpop-inc/reelpop/internal/shared/constants"
	"github.com/reelpop-inc/reelpop/internal/shared/utils"
)

// currentUser returns the authenticated user id, writing a 401 when absent.
func currentUser(c *gin.Context) (string, bool) {
	userID := c.GetString(constants.ContextKeyUserID)
	if userID == "" {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return "", false
	}
	return userID, true
}
