package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"weatherdash.app/internal/core/dashboard"
)

const (
	sessionContextKey    = "dashboard_session"
	sessionCookieMaxAge  = 30 * 24 * 60 * 60
	sessionCookieRootDir = "/"
)

// sessionMiddleware opens the caller's session from the cookie, minting a new
// id when the cookie is missing or malformed, and refreshes the cookie.
func (s *HTTPServerAdapter) sessionMiddleware() gin.HandlerFunc {
	cookieName := s.config.Dashboard.SessionCookieName
	return func(c *gin.Context) {
		id, _ := c.Cookie(cookieName)

		session, err := s.sessions.Open(c.Request.Context(), id)
		if err != nil {
			slog.Error("Failed to open session", "error", err)
			s.handleError(c, err)
			c.Abort()
			return
		}

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(cookieName, session.ID(), sessionCookieMaxAge, sessionCookieRootDir, "", false, true)
		c.Set(sessionContextKey, session)
		c.Next()
	}
}

func currentSession(c *gin.Context) *dashboard.Session {
	return c.MustGet(sessionContextKey).(*dashboard.Session)
}
