package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"hospital-gin/internal/apperrors"
	"hospital-gin/internal/middleware"
	"hospital-gin/internal/models"
	"hospital-gin/internal/services"
	"hospital-gin/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Handler serves every portal route. View routes answer JSON view data;
// form submissions answer redirects.
type Handler struct {
	svc          *services.Service
	sessions     *session.Manager
	log          zerolog.Logger
	secureCookie bool
}

func New(svc *services.Service, sessions *session.Manager, logger zerolog.Logger, secureCookie bool) *Handler {
	return &Handler{
		svc:          svc,
		sessions:     sessions,
		log:          logger,
		secureCookie: secureCookie,
	}
}

// respondError maps an error to its HTTP status. Forbidden and NotFound
// keep the plain bodies browsers of the portal expect.
func (h *Handler) respondError(c *gin.Context, err error) {
	switch apperrors.TypeOf(err) {
	case apperrors.ErrorTypeForbidden:
		c.String(http.StatusForbidden, "Forbidden")
	case apperrors.ErrorTypeNotFound:
		c.String(http.StatusNotFound, "Not found")
	case apperrors.ErrorTypeRejected, apperrors.ErrorTypeConflict:
		c.JSON(http.StatusConflict, gin.H{"msg": message(err)})
	case apperrors.ErrorTypeValidation:
		c.JSON(http.StatusBadRequest, gin.H{"msg": message(err)})
	case apperrors.ErrorTypeUnauthorized:
		c.JSON(http.StatusUnauthorized, gin.H{"msg": message(err)})
	default:
		_ = c.Error(err)
		h.log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "internal server error"})
	}
}

func message(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}

// bind decodes a form or JSON body into req, answering 400 on failure.
func bind(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBind(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		return false
	}
	return true
}

// idParam parses a numeric path parameter. Non-numeric ids match no row.
func idParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.String(http.StatusNotFound, "Not found")
		return 0, false
	}
	return uint(id), true
}

func (h *Handler) principal(c *gin.Context) (*session.Principal, bool) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		c.String(http.StatusForbidden, "Forbidden")
	}
	return p, ok
}

func (h *Handler) currentDoctor(c *gin.Context) (*models.Doctor, bool) {
	p, ok := h.principal(c)
	if !ok {
		return nil, false
	}
	doc, err := h.svc.DoctorByUser(c.Request.Context(), p.UserID)
	if err != nil {
		h.respondError(c, err)
		return nil, false
	}
	return doc, true
}

func (h *Handler) currentPatient(c *gin.Context) (*models.Patient, bool) {
	p, ok := h.principal(c)
	if !ok {
		return nil, false
	}
	patient, err := h.svc.PatientByUser(c.Request.Context(), p.UserID)
	if err != nil {
		h.respondError(c, err)
		return nil, false
	}
	return patient, true
}

// Health pings the database.
func (h *Handler) Health(c *gin.Context) {
	if err := h.svc.Ping(c.Request.Context()); err != nil {
		h.log.Error().Err(err).Msg("health check failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
