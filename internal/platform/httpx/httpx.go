// Package httpx holds small HTTP helpers shared by the handler packages.
package httpx

import (
	"strings"

	"github.com/labstack/echo/v4"
)

// WantsJSON reports whether the request negotiated a JSON response, either
// by posting a JSON body or by an Accept header naming the media type.
// Handlers serving both browser forms and API clients branch on it.
func WantsJSON(c echo.Context) bool {
	if strings.Contains(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		return true
	}
	return strings.Contains(c.Request().Header.Get("Accept"), echo.MIMEApplicationJSON)
}
