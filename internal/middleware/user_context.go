package middleware

import (
	"logichain-web/internal/session"

	"github.com/gin-gonic/gin"
)

const (
	sessionKey     = "Session"
	CurrentUserKey = "CurrentUser"
)

// LoadSession reads the session once per request and shares it with the
// templates (CurrentUser) and the API client (request context).
func LoadSession(c *gin.Context, provider session.Provider) session.Session {
	if v, ok := c.Get(sessionKey); ok {
		if s, ok := v.(session.Session); ok {
			return s
		}
	}

	s := provider(c).Load()
	c.Set(sessionKey, s)
	if s.Authenticated() {
		c.Set(CurrentUserKey, s.Principal)
	}
	c.Request = c.Request.WithContext(session.NewContext(c.Request.Context(), s))
	return s
}

// InjectSession loads the session for every request, public pages included.
func InjectSession(provider session.Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		LoadSession(c, provider)
		c.Next()
	}
}

// CurrentSession returns what LoadSession stored, or the anonymous session.
func CurrentSession(c *gin.Context) session.Session {
	if v, ok := c.Get(sessionKey); ok {
		if s, ok := v.(session.Session); ok {
			return s
		}
	}
	return session.Session{}
}

// ResetSession makes the rest of the request see the anonymous session,
// after the store has been cleared.
func ResetSession(c *gin.Context) {
	c.Set(sessionKey, session.Session{})
	delete(c.Keys, CurrentUserKey)
	c.Request = c.Request.WithContext(session.NewContext(c.Request.Context(), session.Session{}))
}
