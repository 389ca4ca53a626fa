package handlers

import (
	"net/http"

	"hospital-gin/internal/models"
	"hospital-gin/internal/services"

	"github.com/gin-gonic/gin"
)

// --- Structs for Request Binding ---

type DepartmentRequest struct {
	Name string `form:"dname" json:"dname"`
	Desc string `form:"desc" json:"desc"`
}

func (r DepartmentRequest) input() services.DepartmentInput {
	return services.DepartmentInput{Name: r.Name, Desc: r.Desc}
}

// DoctorRequest is shared by the add and edit forms; on edit an empty
// password keeps the current one.
type DoctorRequest struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
	FName    string `form:"fname" json:"fname"`
	LName    string `form:"lname" json:"lname"`
	Spec     string `form:"spec" json:"spec"`
	DeptID   uint   `form:"dept_id" json:"dept_id"`
	Bio      string `form:"bio" json:"bio"`
}

func (r DoctorRequest) input() services.DoctorInput {
	return services.DoctorInput{
		AccountInput: services.AccountInput{
			Username: r.Username,
			Password: r.Password,
			FName:    r.FName,
			LName:    r.LName,
		},
		Spec:         r.Spec,
		DepartmentID: r.DeptID,
		Bio:          r.Bio,
	}
}

type AdminPatientRequest struct {
	FName      string `form:"fname" json:"fname"`
	LName      string `form:"lname" json:"lname"`
	Age        int    `form:"age" json:"age"`
	Gender     string `form:"gender" json:"gender"`
	MedHistory string `form:"med_history" json:"med_history"`
	Phone      string `form:"phone" json:"phone"`
}

// --- Dashboard and appointments ---

func (h *Handler) AdminDashboard(c *gin.Context) {
	stats, err := h.svc.AdminStats(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *Handler) AllAppointments(c *gin.Context) {
	h.listAppointments(c, "")
}

func (h *Handler) CompletedAppointments(c *gin.Context) {
	h.listAppointments(c, models.StatusCompleted)
}

func (h *Handler) listAppointments(c *gin.Context, status models.AppointmentStatus) {
	apps, err := h.svc.ListAppointments(c.Request.Context(), status)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"apps": apps})
}

// --- Departments ---

func (h *Handler) ListDepartments(c *gin.Context) {
	depts, err := h.svc.ListDepartments(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"depts": depts})
}

func (h *Handler) AddDepartmentForm(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"page": "add_dept"})
}

func (h *Handler) AddDepartment(c *gin.Context) {
	var req DepartmentRequest
	if !bind(c, &req) {
		return
	}
	if _, err := h.svc.CreateDepartment(c.Request.Context(), req.input()); err != nil {
		h.respondError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/dept/list")
}

func (h *Handler) EditDepartmentForm(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	dept, err := h.svc.GetDepartment(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"dept": dept})
}

func (h *Handler) EditDepartment(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req DepartmentRequest
	if !bind(c, &req) {
		return
	}
	if _, err := h.svc.UpdateDepartment(c.Request.Context(), id, req.input()); err != nil {
		h.respondError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/dept/list")
}

func (h *Handler) DeleteDepartment(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteDepartment(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/dept/list")
}

// --- Doctors ---

func (h *Handler) ListDoctors(c *gin.Context) {
	q := c.Query("q")
	docs, err := h.svc.SearchDoctors(c.Request.Context(), q)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"docs": docs, "q": q})
}

func (h *Handler) AddDoctorForm(c *gin.Context) {
	depts, err := h.svc.ListDepartments(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"depts": depts})
}

func (h *Handler) AddDoctor(c *gin.Context) {
	var req DoctorRequest
	if !bind(c, &req) {
		return
	}
	if _, err := h.svc.CreateDoctor(c.Request.Context(), req.input()); err != nil {
		h.respondError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/doctor/list")
}

func (h *Handler) EditDoctorForm(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	doc, err := h.svc.GetDoctor(ctx, id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	depts, err := h.svc.ListDepartments(ctx)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"doc": doc, "usr": doc.User, "depts": depts})
}

func (h *Handler) EditDoctor(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req DoctorRequest
	if !bind(c, &req) {
		return
	}
	if _, err := h.svc.UpdateDoctor(c.Request.Context(), id, req.input()); err != nil {
		h.respondError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/doctor/list")
}

func (h *Handler) DeleteDoctor(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteDoctor(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/doctor/list")
}

func (h *Handler) BlacklistDoctor(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.BlacklistDoctor(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/doctor/list")
}

// --- Patients ---

func (h *Handler) ListPatients(c *gin.Context) {
	q := c.Query("q")
	patients, err := h.svc.SearchPatients(c.Request.Context(), q)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"patients": patients, "q": q})
}

func (h *Handler) AdminEditPatientForm(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	patient, err := h.svc.GetPatient(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"patient": patient, "user": patient.User})
}

func (h *Handler) AdminEditPatient(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req AdminPatientRequest
	if !bind(c, &req) {
		return
	}
	in := services.AdminPatientInput{
		FName: req.FName,
		LName: req.LName,
		PatientProfileInput: services.PatientProfileInput{
			Age:        req.Age,
			Gender:     req.Gender,
			MedHistory: req.MedHistory,
			Phone:      req.Phone,
		},
	}
	if _, err := h.svc.AdminUpdatePatient(c.Request.Context(), id, in); err != nil {
		h.respondError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/patient/list")
}

func (h *Handler) DeletePatient(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.DeletePatient(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/patient/list")
}

func (h *Handler) BlacklistPatient(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.BlacklistPatient(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/patient/list")
}
