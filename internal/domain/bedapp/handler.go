package bedapp

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mediflow/mediflow/internal/platform/httpx"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterPublicRoutes mounts the unauthenticated intake surface. limit
// guards the submission endpoint against abuse.
func (h *Handler) RegisterPublicRoutes(e *echo.Echo, limit echo.MiddlewareFunc) {
	e.GET("/apply", h.ApplyForm)
	e.POST("/apply", h.SubmitApplication, limit)
	e.GET("/application-status", h.ApplicationStatus)
}

// RegisterAdminRoutes mounts the review queue under an admin-guarded group.
func (h *Handler) RegisterAdminRoutes(g *echo.Group) {
	g.GET("/bed_applications", h.ListApplications)
	g.POST("/bed_applications/:id/status", h.DecideApplication)
}

func (h *Handler) ApplyForm(c echo.Context) error {
	return c.Render(http.StatusOK, "apply", nil)
}

func (h *Handler) SubmitApplication(c echo.Context) error {
	var sub Submission
	if err := c.Bind(&sub); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&sub); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	creds, err := h.svc.Submit(c.Request().Context(), &sub)
	if errors.Is(err, ErrConflict) {
		return echo.NewHTTPError(http.StatusConflict, "could not allocate an application id, please retry")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if httpx.WantsJSON(c) {
		return c.JSON(http.StatusCreated, creds)
	}
	return c.Render(http.StatusOK, "apply_success", creds)
}

func (h *Handler) ApplicationStatus(c echo.Context) error {
	id := strings.TrimSpace(c.QueryParam("id"))
	if id == "" {
		if httpx.WantsJSON(c) {
			return echo.NewHTTPError(http.StatusBadRequest, "id is required")
		}
		return c.Render(http.StatusOK, "status", map[string]interface{}{"Query": ""})
	}
	app, err := h.svc.Lookup(c.Request().Context(), id)
	if errors.Is(err, ErrNotFound) {
		if httpx.WantsJSON(c) {
			return echo.NewHTTPError(http.StatusNotFound, "application not found")
		}
		return c.Render(http.StatusOK, "status", map[string]interface{}{"Query": id, "NotFound": true})
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if httpx.WantsJSON(c) {
		return c.JSON(http.StatusOK, app)
	}
	return c.Render(http.StatusOK, "status", map[string]interface{}{"Query": id, "App": app})
}

func (h *Handler) ListApplications(c echo.Context) error {
	apps, err := h.svc.List(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, apps)
}

type decideRequest struct {
	Status string `json:"status" form:"status"`
}

func (h *Handler) DecideApplication(c echo.Context) error {
	var req decideRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	app, err := h.svc.Decide(c.Request().Context(), c.Param("id"), req.Status)
	switch {
	case errors.Is(err, ErrInvalidStatus):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "application not found")
	case errors.Is(err, ErrInvalidState):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case err != nil:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, app)
}
