package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/q815101630/flaska/internal/core/domain"
)

// RequirePermission rejects requests whose account lacks the permission bit.
// Must run after Authenticate.
func RequirePermission(p domain.Permission) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, _ := c.Get("user").(*domain.User)
			if user == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
			}
			if !user.Can(p) {
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}
			return next(c)
		}
	}
}

// RequireConfirmed rejects accounts that have not confirmed their email.
// Must run after Authenticate.
func RequireConfirmed() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, _ := c.Get("user").(*domain.User)
			if user == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
			}
			if !user.Confirmed {
				return echo.NewHTTPError(http.StatusForbidden, "account not confirmed")
			}
			return next(c)
		}
	}
}
