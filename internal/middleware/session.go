package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/astralisweb/astralis-client/internal/pkg/logger"
	"github.com/astralisweb/astralis-client/internal/session"
)

const sessionKey = "astralis_session_state"

type SessionMiddleware struct {
	log    *logger.Logger
	holder *session.Holder
}

func NewSessionMiddleware(log *logger.Logger, holder *session.Holder) *SessionMiddleware {
	return &SessionMiddleware{log: log.With("middleware", "Session"), holder: holder}
}

// Attach stores the current session snapshot on the gin context so handlers
// read one consistent state per request.
func (sm *SessionMiddleware) Attach() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(sessionKey, sm.holder.Current())
		c.Next()
	}
}

// RequireAuth aborts anonymous requests.
func (sm *SessionMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		st := CurrentSession(c)
		if !st.Authenticated || st.User == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not signed in"})
			return
		}
		c.Next()
	}
}

// RequireAdmin aborts requests from non-moderators.
func (sm *SessionMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		st := CurrentSession(c)
		if !st.Authenticated || st.User == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not signed in"})
			return
		}
		if !st.User.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}

// CurrentSession reads the snapshot stored by Attach; absent means anonymous.
func CurrentSession(c *gin.Context) session.State {
	if v, ok := c.Get(sessionKey); ok {
		if st, ok := v.(session.State); ok {
			return st
		}
	}
	return session.State{}
}
