package middleware

import (
	"errors"
	"net/http"

	"hospital-gin/internal/models"
	"hospital-gin/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const principalKey = "principal"

// Session resolves the session cookie, when present, and stores the
// principal on the gin context. Requests without a valid session continue
// anonymously; RequireRole decides whether that is acceptable.
func Session(m *session.Manager, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(session.CookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}

		p, err := m.Resolve(c.Request.Context(), token)
		switch {
		case err == nil:
			c.Set(principalKey, p)
		case errors.Is(err, session.ErrInvalidToken):
		default:
			logger.Error().Err(err).Msg("failed to resolve session")
		}
		c.Next()
	}
}

// PrincipalFrom returns the authenticated principal of the request, if any.
func PrincipalFrom(c *gin.Context) (*session.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return nil, false
	}
	p, ok := v.(*session.Principal)
	return p, ok && p != nil
}

// RequireRole aborts with a plain 403 unless the principal has exactly role.
func RequireRole(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := PrincipalFrom(c)
		if !ok || p.Role != role {
			c.String(http.StatusForbidden, "Forbidden")
			c.Abort()
			return
		}
		c.Next()
	}
}
