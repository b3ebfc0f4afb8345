package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/sangkips/academy-console/internal/application/service"
	"github.com/sangkips/academy-console/internal/config"
	"github.com/sangkips/academy-console/internal/domain/entity"
	"github.com/sangkips/academy-console/internal/presentation/http/dto/response"
	"github.com/sangkips/academy-console/pkg/apperror"
)

const (
	// SessionIDKey is the cookie session field holding the opaque console session id.
	SessionIDKey = "sid"
	// sessionContextKey is where the guard leaves the resolved session.
	sessionContextKey = "console_session"
)

// SessionStore installs the signed cookie store. The cookie only ever carries
// the opaque session id.
func SessionStore(cfg *config.SessionConfig) gin.HandlerFunc {
	store := cookie.NewStore([]byte(cfg.Secret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int(cfg.MaxAge.Seconds()),
		HttpOnly: true,
		Secure:   cfg.SecureCookie,
		SameSite: http.SameSiteStrictMode,
	})
	return sessions.Sessions(cfg.CookieName, store)
}

// ClearSessionCookie drops the session id from the browser.
func ClearSessionCookie(c *gin.Context) {
	s := sessions.Default(c)
	s.Clear()
	s.Options(sessions.Options{Path: "/", MaxAge: -1, HttpOnly: true, SameSite: http.SameSiteStrictMode})
	_ = s.Save()
}

// AuthMiddleware guards console routes. Requests without a live session are
// answered with 401 and a redirect hint to the login page. A handler that
// hit a backend 401 ends the session once it returns.
func AuthMiddleware(sessionService *service.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _ := sessions.Default(c).Get(SessionIDKey).(string)

		result, err := sessionService.Guard(c.Request.Context(), id)
		if err != nil {
			if id != "" {
				ClearSessionCookie(c)
			}
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(sessionContextKey, result.Session)
		c.Next()

		for _, e := range c.Errors {
			if errors.Is(e.Err, apperror.ErrSessionRevoked) {
				sessionService.Revoke(c.Request.Context(), result.Session)
				return
			}
		}
	}
}

// GetSession returns the console session resolved by AuthMiddleware.
func GetSession(c *gin.Context) *entity.ConsoleSession {
	v, exists := c.Get(sessionContextKey)
	if !exists {
		return nil
	}
	session, _ := v.(*entity.ConsoleSession)
	return session
}

// RequireRole creates a middleware that requires a specific role
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := GetSession(c)
		if session == nil {
			response.Forbidden(c, "Access denied")
			c.Abort()
			return
		}

		for _, role := range roles {
			if session.Role == role {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"message": "Insufficient role privileges",
		})
		c.Abort()
	}
}
