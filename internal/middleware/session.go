package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"parkflow/internal/domain"
	"parkflow/internal/session"
)

const (
	// SessionCookie names the cookie carrying the session ID.
	SessionCookie = "sid"

	// ContextSessionID and ContextSession are the gin context keys set
	// by SessionMiddleware.
	ContextSessionID = "sessionID"
	ContextSession   = "session"
)

// SessionMiddleware resolves the session cookie into a domain.Session.
// Visitors without a cookie get one assigned so pre-login state (like
// the search machine) has a home. A token already past its exp claim is
// treated as logged out up front instead of bouncing off the backend.
func SessionMiddleware(store session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(SessionCookie)
		if err != nil || sid == "" {
			sid = uuid.New().String()
			c.SetCookie(SessionCookie, sid, int((30 * 24 * time.Hour).Seconds()), "/", "", false, true)
		}

		sess, err := store.Get(c.Request.Context(), sid)
		if err != nil {
			// Store trouble reads as logged out; the page stays usable.
			sess = domain.Session{}
		}
		if sess.Authenticated() && session.TokenExpired(sess.Token, time.Now()) {
			_ = store.Clear(c.Request.Context(), sid)
			sess = domain.Session{}
		}

		c.Set(ContextSessionID, sid)
		c.Set(ContextSession, sess)
		c.Next()
	}
}

// SessionID returns the session ID set by SessionMiddleware.
func SessionID(c *gin.Context) string {
	return c.GetString(ContextSessionID)
}

// CurrentSession returns the session set by SessionMiddleware.
func CurrentSession(c *gin.Context) domain.Session {
	if v, ok := c.Get(ContextSession); ok {
		if sess, ok := v.(domain.Session); ok {
			return sess
		}
	}
	return domain.Session{}
}

// RequireAuth aborts unauthenticated requests.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !CurrentSession(c).Authenticated() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":    "login required",
				"redirect": "/login",
			})
			return
		}
		c.Next()
	}
}

// RequireRoles allows only the listed roles past.
func RequireRoles(allowed ...domain.Role) gin.HandlerFunc {
	roleSet := make(map[domain.Role]struct{}, len(allowed))
	for _, r := range allowed {
		roleSet[r] = struct{}{}
	}

	return func(c *gin.Context) {
		sess := CurrentSession(c)
		if !sess.Authenticated() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":    "login required",
				"redirect": "/login",
			})
			return
		}
		if _, ok := roleSet[sess.User.Role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "You do not have permission",
			})
			return
		}
		c.Next()
	}
}
