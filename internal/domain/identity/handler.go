package identity

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mediflow/mediflow/internal/platform/httpx"
	"github.com/mediflow/mediflow/internal/platform/session"
)

// invalidLoginMessage is shown for every failed attempt so the form does
// not disclose which principal kind, if any, matched the identifier.
const invalidLoginMessage = "Invalid email/ID or password"

type Handler struct {
	resolver *Resolver
	sessions *session.Manager
}

func NewHandler(resolver *Resolver, sessions *session.Manager) *Handler {
	return &Handler{resolver: resolver, sessions: sessions}
}

// RegisterRoutes mounts the public auth surface. limit guards the login
// POST against credential stuffing.
func (h *Handler) RegisterRoutes(e *echo.Echo, limit echo.MiddlewareFunc) {
	e.GET("/login", h.LoginForm)
	e.POST("/login", h.Login, limit)
	e.GET("/logout", h.Logout)
	e.GET("/", h.Home)
}

// homePath maps a role to its landing page after login.
func homePath(s *session.Session) string {
	switch s.Role {
	case session.RoleAdmin:
		return "/admin"
	case session.RoleDoctor:
		return "/doctor"
	case session.RolePatient:
		return "/patient"
	case session.RoleApplicant:
		return "/application-status?id=" + s.SubjectID
	}
	return "/login"
}

func (h *Handler) LoginForm(c echo.Context) error {
	if s, err := h.sessions.Current(c); err == nil {
		return c.Redirect(http.StatusFound, homePath(s))
	}
	return c.Render(http.StatusOK, "login", nil)
}

type loginRequest struct {
	Identifier string `json:"identifier" form:"identifier"`
	Password   string `json:"password" form:"password"`
}

func (h *Handler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	principal, err := h.resolver.Resolve(c.Request().Context(), req.Identifier, req.Password)
	if errors.Is(err, ErrInvalidCredentials) {
		if httpx.WantsJSON(c) {
			return echo.NewHTTPError(http.StatusUnauthorized, invalidLoginMessage)
		}
		return c.Render(http.StatusUnauthorized, "login", map[string]interface{}{"Error": invalidLoginMessage})
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	s := session.Session{
		Role:        principal.Role,
		SubjectID:   principal.SubjectID,
		DisplayName: principal.DisplayName,
		DisplayDept: principal.DisplayDept,
		Color:       principal.Color,
	}
	if err := h.sessions.Start(c, s); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if httpx.WantsJSON(c) {
		return c.JSON(http.StatusOK, map[string]string{
			"role":     principal.Role,
			"redirect": homePath(&s),
		})
	}
	return c.Redirect(http.StatusFound, homePath(&s))
}

func (h *Handler) Logout(c echo.Context) error {
	h.sessions.End(c)
	return c.Redirect(http.StatusFound, "/login")
}

// Home redirects to the caller's dashboard, or the login page when the
// request carries no session.
func (h *Handler) Home(c echo.Context) error {
	s, err := h.sessions.Current(c)
	if err != nil {
		return c.Redirect(http.StatusFound, "/login")
	}
	return c.Redirect(http.StatusFound, homePath(s))
}
