package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/innstack/hotel-ops/internal/api/metrics"
	"github.com/innstack/hotel-ops/internal/core/domain"
	"github.com/innstack/hotel-ops/internal/core/gate"
)

// Gate applies an authorization policy to the route, working off the claims
// the Auth middleware injected. Policy semantics live in the gate package;
// this layer only translates decisions to HTTP.
func Gate(p gate.Policy) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			subject := subjectFromContext(c)

			switch gate.Evaluate(p, subject) {
			case gate.Allow:
				return next(c)
			case gate.Forbidden:
				metrics.GateDenialsTotal.WithLabelValues("forbidden").Inc()
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			default:
				metrics.GateDenialsTotal.WithLabelValues("unauthenticated").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
		}
	}
}

// subjectFromContext builds a settled gate subject from request claims. If
// the Auth middleware ran, role is non-empty and the request counts as
// authenticated.
func subjectFromContext(c echo.Context) gate.Subject {
	role, _ := c.Get("role").(string)
	if role == "" {
		return gate.Subject{}
	}
	manageRooms, _ := c.Get("can_manage_rooms").(bool)
	manageStaff, _ := c.Get("can_manage_staff").(bool)
	return gate.Subject{
		Authenticated:  true,
		Role:           domain.Role(role),
		CanManageRooms: manageRooms,
		CanManageStaff: manageStaff,
	}
}
