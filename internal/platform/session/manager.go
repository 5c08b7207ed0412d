package session

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// CookieName is the browser cookie carrying the signed session token.
const CookieName = "mediflow_session"

type sessionCtxKey struct{}

// Manager owns the session lifecycle: Start replaces any prior session
// atomically, Current resolves the active one, End destroys it.
type Manager struct {
	store  Store
	secret []byte
	ttl    time.Duration
	secure bool
}

func NewManager(store Store, secret []byte, ttl time.Duration, secure bool) *Manager {
	return &Manager{
		store:  store,
		secret: secret,
		ttl:    ttl,
		secure: secure,
	}
}

// Start establishes a new session for the principal described by s, clearing
// any session the request previously carried. The old record is deleted
// before the new one is written so no request can observe mixed roles.
func (m *Manager) Start(c echo.Context, s Session) error {
	ctx := c.Request().Context()

	if old, err := m.resolve(c); err == nil {
		_ = m.store.Delete(ctx, old.ID)
	}

	s.ID = uuid.New().String()
	s.ExpiresAt = time.Now().Add(m.ttl)
	if err := m.store.Put(ctx, &s); err != nil {
		return err
	}

	token, err := signToken(m.secret, s.ID, s.ExpiresAt)
	if err != nil {
		_ = m.store.Delete(ctx, s.ID)
		return err
	}

	c.SetCookie(m.cookie(token, s.ExpiresAt))
	return nil
}

// Current returns the request's active session, or ErrNoSession.
func (m *Manager) Current(c echo.Context) (*Session, error) {
	if s := FromContext(c.Request().Context()); s != nil {
		return s, nil
	}
	return m.resolve(c)
}

// End destroys the request's session and expires the cookie.
func (m *Manager) End(c echo.Context) {
	if s, err := m.resolve(c); err == nil {
		_ = m.store.Delete(c.Request().Context(), s.ID)
	}
	c.SetCookie(m.cookie("", time.Unix(0, 0)))
}

// resolve reads the cookie, checks the signature and looks the record up.
func (m *Manager) resolve(c echo.Context) (*Session, error) {
	cookie, err := c.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return nil, ErrNoSession
	}
	id, err := parseToken(m.secret, cookie.Value)
	if err != nil {
		return nil, ErrNoSession
	}
	return m.store.Get(c.Request().Context(), id)
}

func (m *Manager) cookie(value string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// Attach resolves the session once per request and stores it on the request
// context for handlers and guards downstream. Requests without a session
// pass through unauthenticated.
func (m *Manager) Attach() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if s, err := m.resolve(c); err == nil {
				c.SetRequest(c.Request().WithContext(NewContext(c.Request().Context(), s)))
			}
			return next(c)
		}
	}
}

// NewContext returns a context carrying the session.
func NewContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionCtxKey{}, s)
}

// FromContext retrieves the session attached by Attach, or nil.
func FromContext(ctx context.Context) *Session {
	s, _ := ctx.Value(sessionCtxKey{}).(*Session)
	return s
}

// RequireRole guards API routes: 401 without a session, 403 on role mismatch.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			s := FromContext(c.Request().Context())
			if s == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			for _, role := range roles {
				if s.Role == role {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden, "insufficient role")
		}
	}
}

// RequireRolePage guards browser page routes: any failure redirects to the
// login entry point rather than surfacing an error payload.
func RequireRolePage(loginPath string, roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			s := FromContext(c.Request().Context())
			if s != nil {
				for _, role := range roles {
					if s.Role == role {
						return next(c)
					}
				}
			}
			return c.Redirect(http.StatusFound, loginPath)
		}
	}
}
