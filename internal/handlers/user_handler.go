package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/calebwray/community-events/internal/helpers"
)

// GetUser returns the session claims for the authenticated caller.
func GetUser(c *gin.Context) {
	session, exists := c.Get("session")
	if !exists {
		helpers.RespondWithError(c, http.StatusBadRequest, "Not Authorised")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": session})
}
