package routes

import (
	"net/http"
	"time"

	"hospital-gin/internal/handlers"
	"hospital-gin/internal/middleware"
	"hospital-gin/internal/models"
	"hospital-gin/internal/session"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Options configures the engine beyond the route table.
type Options struct {
	CORSOrigins []string
}

// New builds the gin engine with the global middleware and every route.
func New(h *handlers.Handler, sessions *session.Manager, logger zerolog.Logger, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	if len(opts.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     opts.CORSOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost},
			AllowHeaders:     []string{"Origin", "Content-Type", "X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	r.Use(middleware.Session(sessions, logger))

	r.GET("/", func(c *gin.Context) { c.Redirect(http.StatusFound, "/login") })
	r.GET("/healthz", h.Health)

	r.GET("/login", h.LoginPage(""))
	r.POST("/login", h.Login(""))
	r.GET("/login/doctor", h.LoginPage(models.RoleDoctor))
	r.POST("/login/doctor", h.Login(models.RoleDoctor))
	r.GET("/login/admin", h.LoginPage(models.RoleAdmin))
	r.POST("/login/admin", h.Login(models.RoleAdmin))
	r.GET("/logout", h.Logout)

	r.GET("/patient/register", h.RegisterForm)
	r.POST("/patient/register", h.RegisterPatient)

	admin := r.Group("", middleware.RequireRole(models.RoleAdmin))
	{
		admin.GET("/admin/dashboard", h.AdminDashboard)
		admin.GET("/admin/appointments", h.AllAppointments)
		admin.GET("/admin/appointments/completed", h.CompletedAppointments)

		admin.GET("/dept/list", h.ListDepartments)
		admin.GET("/dept/add", h.AddDepartmentForm)
		admin.POST("/dept/add", h.AddDepartment)
		admin.GET("/dept/edit/:id", h.EditDepartmentForm)
		admin.POST("/dept/edit/:id", h.EditDepartment)
		admin.GET("/dept/delete/:id", h.DeleteDepartment)

		admin.GET("/doctor/list", h.ListDoctors)
		admin.GET("/doctor/add", h.AddDoctorForm)
		admin.POST("/doctor/add", h.AddDoctor)
		admin.GET("/doctor/edit/:id", h.EditDoctorForm)
		admin.POST("/doctor/edit/:id", h.EditDoctor)
		admin.GET("/doctor/delete/:id", h.DeleteDoctor)

		admin.GET("/patient/list", h.ListPatients)
		admin.GET("/admin/patient/edit/:id", h.AdminEditPatientForm)
		admin.POST("/admin/patient/edit/:id", h.AdminEditPatient)
		admin.GET("/patient/delete/:id", h.DeletePatient)

		admin.GET("/admin/blacklist/doctor/:id", h.BlacklistDoctor)
		admin.GET("/admin/blacklist/patient/:id", h.BlacklistPatient)
	}

	patient := r.Group("", middleware.RequireRole(models.RolePatient))
	{
		patient.GET("/patient/dashboard", h.PatientDashboard)
		patient.GET("/patient/edit", h.EditProfileForm)
		patient.POST("/patient/edit", h.EditProfile)
		patient.GET("/appointment/book", h.BookForm)
		patient.POST("/appointment/book", h.BookAppointment)
		patient.GET("/patient/appointments", h.PatientAppointments)
		patient.GET("/patient/appointments/cancel/:id", h.CancelPatientAppointment)
	}

	doctor := r.Group("", middleware.RequireRole(models.RoleDoctor))
	{
		doctor.GET("/doctor/dashboard", h.DoctorDashboard)
		doctor.GET("/doctor/appointments", h.DoctorAppointments)
		doctor.GET("/doctor/cancel/:id", h.CancelDoctorAppointment)
		doctor.POST("/doctor/availability", h.DeclareAvailability)
		doctor.GET("/doctor/patient/history/:pid", h.PatientHistory)
		doctor.GET("/treatment/add/:app_id", h.TreatmentForm)
		doctor.POST("/treatment/add/:app_id", h.AddTreatment)
	}

	return r
}
