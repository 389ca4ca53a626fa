package handlers

import (
	"net/http"

	"hospital-gin/internal/services"

	"github.com/gin-gonic/gin"
)

// --- Structs for Request Binding ---

type PatientProfileRequest struct {
	Age        int    `form:"age" json:"age"`
	Gender     string `form:"gender" json:"gender"`
	MedHistory string `form:"med_history" json:"med_history"`
	Phone      string `form:"phone" json:"phone"`
}

func (r PatientProfileRequest) input() services.PatientProfileInput {
	return services.PatientProfileInput{
		Age:        r.Age,
		Gender:     r.Gender,
		MedHistory: r.MedHistory,
		Phone:      r.Phone,
	}
}

type RegisterPatientRequest struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
	FName    string `form:"fname" json:"fname"`
	LName    string `form:"lname" json:"lname"`
	PatientProfileRequest
}

type BookAppointmentRequest struct {
	DocID uint   `form:"doc_id" json:"doc_id"`
	Date  string `form:"date" json:"date"`
	Time  string `form:"time" json:"time"`
}

// --- Handler Functions ---

func (h *Handler) RegisterForm(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"page": "patient_register"})
}

func (h *Handler) RegisterPatient(c *gin.Context) {
	var req RegisterPatientRequest
	if !bind(c, &req) {
		return
	}
	reg := services.PatientRegistration{
		AccountInput: services.AccountInput{
			Username: req.Username,
			Password: req.Password,
			FName:    req.FName,
			LName:    req.LName,
		},
		PatientProfileInput: req.input(),
	}
	if _, err := h.svc.RegisterPatient(c.Request.Context(), reg); err != nil {
		h.respondError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/login")
}

func (h *Handler) PatientDashboard(c *gin.Context) {
	patient, ok := h.currentPatient(c)
	if !ok {
		return
	}
	dash, err := h.svc.PatientDashboard(c.Request.Context(), patient)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dash)
}

func (h *Handler) EditProfileForm(c *gin.Context) {
	patient, ok := h.currentPatient(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"patient": patient})
}

func (h *Handler) EditProfile(c *gin.Context) {
	patient, ok := h.currentPatient(c)
	if !ok {
		return
	}
	var req PatientProfileRequest
	if !bind(c, &req) {
		return
	}
	if _, err := h.svc.UpdatePatientProfile(c.Request.Context(), patient.ID, req.input()); err != nil {
		h.respondError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/patient/dashboard")
}

func (h *Handler) BookForm(c *gin.Context) {
	ctx := c.Request.Context()
	doctors, err := h.svc.SearchDoctors(ctx, "")
	if err != nil {
		h.respondError(c, err)
		return
	}
	depts, err := h.svc.ListDepartments(ctx)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"doctors": doctors, "depts": depts})
}

func (h *Handler) BookAppointment(c *gin.Context) {
	patient, ok := h.currentPatient(c)
	if !ok {
		return
	}
	var req BookAppointmentRequest
	if !bind(c, &req) {
		return
	}
	if _, err := h.svc.BookAppointment(c.Request.Context(), patient.ID, req.DocID, req.Date, req.Time); err != nil {
		h.respondError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/patient/appointments")
}

func (h *Handler) PatientAppointments(c *gin.Context) {
	patient, ok := h.currentPatient(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	apps, err := h.svc.PatientAppointments(ctx, patient.ID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	treatments, err := h.svc.TreatmentsFor(ctx, apps)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"apps": apps, "treatments": treatments})
}

func (h *Handler) CancelPatientAppointment(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	patient, ok := h.currentPatient(c)
	if !ok {
		return
	}
	if _, err := h.svc.CancelAsPatient(c.Request.Context(), patient.ID, id); err != nil {
		h.respondError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/patient/appointments")
}
