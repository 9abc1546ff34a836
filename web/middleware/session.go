package middleware

import (
	"net/http"

	"faq-agent/database"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const SessionCookieName = "faq_agent_session"
const CookieMaxAge = 30 * 24 * 60 * 60 // 30 days

// SessionMiddleware assigns each client a session ID via cookie. With a
// store, sessions are created in the database and stale or deactivated
// cookies get a fresh session; without one, the ID is cookie-only.
func SessionMiddleware(store *database.PostgresStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var sessionID uuid.UUID

		cookie, err := c.Cookie(SessionCookieName)
		if err == nil {
			sessionID, err = uuid.Parse(cookie)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid session ID"})
				return
			}
			if store != nil {
				active, err := store.SessionExists(c.Request.Context(), sessionID)
				if err != nil {
					c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to look up session"})
					return
				}
				if active {
					c.Set("sessionID", sessionID)
					c.Next()
					return
				}
				// Fall through and issue a new session.
			} else {
				c.Set("sessionID", sessionID)
				c.Next()
				return
			}
		} else if err != http.ErrNoCookie {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to parse session cookie"})
			return
		}

		if store != nil {
			sessionID, err = store.CreateSession(c.Request.Context())
			if err != nil {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
				return
			}
		} else {
			sessionID = uuid.New()
		}
		c.SetCookie(SessionCookieName, sessionID.String(), CookieMaxAge, "/", "", false, true)

		c.Set("sessionID", sessionID)
		c.Next()
	}
}
