package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/innstack/hotel-ops/internal/core/domain"
)

func claimsContext(claims map[string]interface{}) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/tickets", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	for k, v := range claims {
		c.Set(k, v)
	}
	return c
}

func TestCtxActor(t *testing.T) {
	actor, err := ctxActor(claimsContext(map[string]interface{}{
		"role": "staff", "user_id": "u1", "hotel_id": "H1",
	}))
	if err != nil {
		t.Fatalf("staff claims rejected: %v", err)
	}
	if actor.Role != domain.RoleStaff || actor.HotelID != "H1" || actor.UserID != "u1" {
		t.Fatalf("actor wrong: %+v", actor)
	}

	actor, err = ctxActor(claimsContext(map[string]interface{}{
		"role": "guest", "user_id": "g1", "hotel_id": "H1", "room_number": "204",
	}))
	if err != nil {
		t.Fatalf("guest claims rejected: %v", err)
	}
	if actor.RoomNumber != "204" {
		t.Fatalf("room number not carried: %+v", actor)
	}

	// Admin without a hotel is a legal actor (tenant setup pending).
	if _, err := ctxActor(claimsContext(map[string]interface{}{
		"role": "admin", "user_id": "a1",
	})); err != nil {
		t.Fatalf("admin without hotel rejected: %v", err)
	}
}

func TestCtxActorRejections(t *testing.T) {
	cases := []struct {
		name   string
		claims map[string]interface{}
	}{
		{"no claims", nil},
		{"guest without room", map[string]interface{}{"role": "guest", "hotel_id": "H1"}},
		{"guest without hotel", map[string]interface{}{"role": "guest", "room_number": "204"}},
		{"staff without hotel", map[string]interface{}{"role": "staff", "user_id": "u1"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ctxActor(claimsContext(tc.claims))
			he, ok := err.(*echo.HTTPError)
			if !ok || he.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %v", err)
			}
		})
	}
}
