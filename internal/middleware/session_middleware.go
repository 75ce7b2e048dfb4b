package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/calebwray/community-events/config"
	"github.com/calebwray/community-events/internal/helpers"
)

// SessionMiddleware resolves the session cookie to an authenticated
// identity and rejects anonymous requests.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie(helpers.SessionCookieName)
		if err != nil || tokenString == "" {
			helpers.RespondWithError(c, http.StatusBadRequest, "Not Authorised")
			c.Abort()
			return
		}

		claims, err := helpers.ParseSessionToken(tokenString, config.Conf.Session.Secret)
		if err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, "Not Authorised")
			c.Abort()
			return
		}

		c.Set("session", claims)
		c.Next()
	}
}
