package dashboard

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mediflow/mediflow/internal/domain/doctor"
	"github.com/mediflow/mediflow/internal/domain/patient"
	"github.com/mediflow/mediflow/internal/domain/schedule"
	"github.com/mediflow/mediflow/internal/platform/session"
	"github.com/mediflow/mediflow/internal/platform/synthetic"
	"github.com/mediflow/mediflow/pkg/pagination"
)

type Handler struct {
	stats     StatsRepository
	patients  *patient.Service
	doctors   *doctor.Service
	schedules *schedule.Service
	metrics   *synthetic.Metrics
}

func NewHandler(stats StatsRepository, patients *patient.Service, doctors *doctor.Service,
	schedules *schedule.Service, metrics *synthetic.Metrics) *Handler {
	return &Handler{stats: stats, patients: patients, doctors: doctors,
		schedules: schedules, metrics: metrics}
}

// RegisterPages mounts the role dashboards. Browser requests without the
// right role are redirected to the login form.
func (h *Handler) RegisterPages(e *echo.Echo) {
	e.GET("/admin", h.AdminPage, session.RequireRolePage("/login", session.RoleAdmin))
	e.GET("/doctor", h.DoctorPage, session.RequireRolePage("/login", session.RoleDoctor))
	e.GET("/patient", h.PatientPage, session.RequireRolePage("/login", session.RolePatient))
}

// RegisterAdminRoutes mounts the admin data endpoints on an
// admin-guarded group.
func (h *Handler) RegisterAdminRoutes(g *echo.Group) {
	g.GET("/stats", h.AdminStats)
	g.GET("/patients", h.AdminPatients)
	g.GET("/doctors", h.AdminDoctors)
}

// RegisterDoctorRoutes mounts the doctor data endpoints on a
// doctor-guarded group.
func (h *Handler) RegisterDoctorRoutes(g *echo.Group) {
	g.GET("/patients", h.DoctorPatients)
	g.GET("/schedule", h.DoctorSchedule)
	g.GET("/stats", h.DoctorStats)
}

// RegisterPatientRoutes mounts the patient data endpoints on a
// patient-guarded group.
func (h *Handler) RegisterPatientRoutes(g *echo.Group) {
	g.GET("/me", h.PatientMe)
}

func (h *Handler) AdminPage(c echo.Context) error {
	return c.Render(http.StatusOK, "admin", session.FromContext(c.Request().Context()))
}

func (h *Handler) DoctorPage(c echo.Context) error {
	return c.Render(http.StatusOK, "doctor", session.FromContext(c.Request().Context()))
}

func (h *Handler) PatientPage(c echo.Context) error {
	return c.Render(http.StatusOK, "patient", session.FromContext(c.Request().Context()))
}

func (h *Handler) AdminStats(c echo.Context) error {
	stats, err := h.stats.AdminStats(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	stats.BedUtilization = h.metrics.AdminUtilization()
	stats.OptimizationsToday = h.metrics.AdminOptimizations()
	stats.Synthetic = true
	return c.JSON(http.StatusOK, stats)
}

func (h *Handler) AdminPatients(c echo.Context) error {
	pg := pagination.FromContext(c)
	patients, total, err := h.patients.List(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(patients, total, pg.Limit, pg.Offset))
}

type doctorItem struct {
	*doctor.Doctor
	Initials string `json:"initials"`
}

func (h *Handler) AdminDoctors(c echo.Context) error {
	pg := pagination.FromContext(c)
	doctors, total, err := h.doctors.List(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	items := make([]doctorItem, len(doctors))
	for i, d := range doctors {
		items[i] = doctorItem{Doctor: d, Initials: d.Initials()}
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

// sessionDoctorID extracts the doctor id a doctor session was started with.
func sessionDoctorID(c echo.Context) (int, error) {
	s := session.FromContext(c.Request().Context())
	if s == nil {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	id, err := strconv.Atoi(s.SubjectID)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "invalid session subject")
	}
	return id, nil
}

func (h *Handler) DoctorPatients(c echo.Context) error {
	id, err := sessionDoctorID(c)
	if err != nil {
		return err
	}
	patients, err := h.patients.ListByDoctor(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, patients)
}

func (h *Handler) DoctorSchedule(c echo.Context) error {
	id, err := sessionDoctorID(c)
	if err != nil {
		return err
	}
	slots, err := h.schedules.ListByDoctor(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, slots)
}

func (h *Handler) DoctorStats(c echo.Context) error {
	id, err := sessionDoctorID(c)
	if err != nil {
		return err
	}
	stats, err := h.stats.DoctorStats(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	stats.Utilization = h.metrics.DoctorDashboardUtilization()
	stats.OptimizationsToday = h.metrics.DoctorOptimizations()
	stats.Synthetic = true
	return c.JSON(http.StatusOK, stats)
}

// PatientMe returns the caller's own record with the assigned doctor and
// the next booked appointment.
func (h *Handler) PatientMe(c echo.Context) error {
	s := session.FromContext(c.Request().Context())
	if s == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	p, err := h.patients.GetWithDoctor(c.Request().Context(), s.SubjectID)
	if errors.Is(err, patient.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "patient not found")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	next, err := h.schedules.NextForPatient(c.Request().Context(), s.SubjectID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"patient":          p,
		"next_appointment": next,
	})
}
