package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/innstack/hotel-ops/internal/core/domain"
	"github.com/innstack/hotel-ops/internal/core/ports"
)

// ctxActor extracts the auth claims injected by the Auth middleware and
// performs a fast-fail check before any service call:
//   - role must be non-empty (presence proves the middleware ran).
//   - guest role requires hotel and room claims; staff requires a hotel.
//     An admin may lack a hotel (tenant setup pending).
func ctxActor(c echo.Context) (ports.Actor, error) {
	role, _ := c.Get("role").(string)
	if role == "" {
		return ports.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	actor := ports.Actor{Role: domain.Role(role)}
	actor.UserID, _ = c.Get("user_id").(string)
	actor.HotelID, _ = c.Get("hotel_id").(string)
	actor.RoomNumber, _ = c.Get("room_number").(string)

	switch actor.Role {
	case domain.RoleGuest:
		if actor.HotelID == "" || actor.RoomNumber == "" {
			return ports.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "token missing guest identity")
		}
	case domain.RoleStaff:
		if actor.HotelID == "" {
			return ports.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "token missing hotel identity")
		}
	}

	return actor, nil
}
