package handlers

import (
	"net/http"

	"hospital-gin/internal/services"

	"github.com/gin-gonic/gin"
)

// --- Structs for Request Binding ---

type AvailabilityRequest struct {
	Date  string `form:"date" json:"date"`
	Slots string `form:"slots" json:"slots"`
}

type TreatmentRequest struct {
	Diag  string `form:"diag" json:"diag"`
	Presc string `form:"presc" json:"presc"`
	Notes string `form:"notes" json:"notes"`
}

// --- Handler Functions ---

func (h *Handler) DoctorDashboard(c *gin.Context) {
	doc, ok := h.currentDoctor(c)
	if !ok {
		return
	}
	dash, err := h.svc.DoctorDashboard(c.Request.Context(), doc)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dash)
}

func (h *Handler) DoctorAppointments(c *gin.Context) {
	doc, ok := h.currentDoctor(c)
	if !ok {
		return
	}
	apps, err := h.svc.DoctorAppointments(c.Request.Context(), doc.ID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"apps": apps})
}

func (h *Handler) CancelDoctorAppointment(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	doc, ok := h.currentDoctor(c)
	if !ok {
		return
	}
	if _, err := h.svc.CancelAsDoctor(c.Request.Context(), doc.ID, id); err != nil {
		h.respondError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/doctor/appointments")
}

func (h *Handler) DeclareAvailability(c *gin.Context) {
	doc, ok := h.currentDoctor(c)
	if !ok {
		return
	}
	var req AvailabilityRequest
	if !bind(c, &req) {
		return
	}
	if _, err := h.svc.DeclareAvailability(c.Request.Context(), doc.ID, req.Date, req.Slots); err != nil {
		h.respondError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/doctor/dashboard")
}

func (h *Handler) PatientHistory(c *gin.Context) {
	pid, ok := idParam(c, "pid")
	if !ok {
		return
	}
	doc, ok := h.currentDoctor(c)
	if !ok {
		return
	}
	hist, err := h.svc.PatientHistory(c.Request.Context(), doc.ID, pid)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, hist)
}

func (h *Handler) TreatmentForm(c *gin.Context) {
	appID, ok := idParam(c, "app_id")
	if !ok {
		return
	}
	doc, ok := h.currentDoctor(c)
	if !ok {
		return
	}
	app, err := h.svc.TreatmentForm(c.Request.Context(), doc.ID, appID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"app": app})
}

func (h *Handler) AddTreatment(c *gin.Context) {
	appID, ok := idParam(c, "app_id")
	if !ok {
		return
	}
	doc, ok := h.currentDoctor(c)
	if !ok {
		return
	}
	var req TreatmentRequest
	if !bind(c, &req) {
		return
	}
	in := services.TreatmentInput{Diag: req.Diag, Presc: req.Presc, Notes: req.Notes}
	if _, err := h.svc.RecordTreatment(c.Request.Context(), doc.ID, appID, in); err != nil {
		h.respondError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/doctor/appointments")
}
