package handlers

import (
	"errors"
	"net/http"

	"hospital-gin/internal/apperrors"
	"hospital-gin/internal/models"
	"hospital-gin/internal/session"

	"github.com/gin-gonic/gin"
)

// --- Structs for Request Binding ---

type LoginRequest struct {
	Username string `form:"username" json:"username" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

// --- Handler Functions ---

// LoginPage answers the login form for role; an empty role is the shared
// login that accepts any account.
func (h *Handler) LoginPage(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"page": "login", "role": role})
	}
}

// Login authenticates the form, opens a session and redirects to the
// dashboard of the account's role.
func (h *Handler) Login(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": apperrors.ErrInvalidCredentials.Message})
			return
		}

		ctx := c.Request.Context()
		user, err := h.svc.Authenticate(ctx, req.Username, req.Password, role)
		switch {
		case errors.Is(err, apperrors.ErrAccountBlacklisted):
			c.JSON(http.StatusForbidden, gin.H{"msg": apperrors.ErrAccountBlacklisted.Message})
			return
		case errors.Is(err, apperrors.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"msg": apperrors.ErrInvalidCredentials.Message})
			return
		case err != nil:
			h.respondError(c, err)
			return
		}

		token, _, err := h.sessions.Issue(ctx, user)
		if err != nil {
			h.respondError(c, apperrors.NewInternalError("issue session", err))
			return
		}
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(session.CookieName, token, int(h.sessions.TTL().Seconds()), "/", "", h.secureCookie, true)

		h.log.Info().Uint("user_id", user.ID).Str("role", string(user.Role)).Msg("user logged in")
		c.Redirect(http.StatusSeeOther, user.Role.DashboardPath())
	}
}

func (h *Handler) Logout(c *gin.Context) {
	if token, err := c.Cookie(session.CookieName); err == nil && token != "" {
		if err := h.sessions.Revoke(c.Request.Context(), token); err != nil {
			h.log.Error().Err(err).Msg("failed to revoke session")
		}
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(session.CookieName, "", -1, "/", "", h.secureCookie, true)
	c.Redirect(http.StatusFound, "/login")
}
