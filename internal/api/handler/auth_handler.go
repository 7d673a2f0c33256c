package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/innstack/hotel-ops/internal/api/metrics"
	"github.com/innstack/hotel-ops/internal/core/domain"
	"github.com/innstack/hotel-ops/internal/core/ports"
	"github.com/innstack/hotel-ops/internal/core/session"
)

type AuthHandler struct {
	authService ports.AuthService
	state       *session.State
}

func NewAuthHandler(authService ports.AuthService, state *session.State) *AuthHandler {
	return &AuthHandler{authService: authService, state: state}
}

type staffLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type guestLoginRequest struct {
	HotelCode string `json:"hotel_code" validate:"required"`
	RoomCode  string `json:"room_code" validate:"required"`
}

type passwordSetupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

type loginResponse struct {
	Token              string       `json:"token,omitempty"`
	User               *domain.User `json:"user,omitempty"`
	NeedsPasswordSetup bool         `json:"needs_password_setup,omitempty"`
	Email              string       `json:"email,omitempty"`
}

type sessionResponse struct {
	User            *domain.User `json:"user,omitempty"`
	IsAuthenticated bool         `json:"is_authenticated"`
	IsInitializing  bool         `json:"is_initializing"`
}

// StaffLogin authenticates a staff or admin account.
//
// @Summary      Staff/admin login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      staffLoginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) StaffLogin(c echo.Context) error {
	var req staffLoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result := h.authService.StaffLogin(c.Request().Context(), ports.StaffLoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	return h.renderLogin(c, "staff", result)
}

// GuestLogin establishes a guest session from a hotel and room code.
//
// @Summary      Guest login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      guestLoginRequest  true  "Hotel and room codes"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  map[string]string
// @Router       /auth/guest-login [post]
func (h *AuthHandler) GuestLogin(c echo.Context) error {
	var req guestLoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result := h.authService.GuestLogin(c.Request().Context(), ports.GuestLoginInput{
		HotelCode: req.HotelCode,
		RoomCode:  req.RoomCode,
	})
	return h.renderLogin(c, "guest", result)
}

// PasswordSetup completes the needs-password-setup flow and logs in.
//
// @Summary      Complete password setup
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      passwordSetupRequest  true  "Setup token and new password"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/password-setup [post]
func (h *AuthHandler) PasswordSetup(c echo.Context) error {
	var req passwordSetupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result := h.authService.CompletePasswordSetup(c.Request().Context(), ports.PasswordSetupInput{
		Email:    req.Email,
		Token:    req.Token,
		Password: req.Password,
	})
	return h.renderLogin(c, "password_setup", result)
}

// Logout clears session state and persisted storage. Safe to repeat.
//
// @Summary      Logout
// @Tags         auth
// @Success      204
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.authService.Logout(c.Request().Context()); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Session reports the current session state.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /auth/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	snap := h.state.Snapshot()
	return c.JSON(http.StatusOK, sessionResponse{
		User:            snap.User,
		IsAuthenticated: snap.IsAuthenticated,
		IsInitializing:  snap.IsInitializing,
	})
}

// renderLogin maps a LoginResult to its HTTP shape. Failures flow into the
// central error handler, never out of the handler unformatted.
func (h *AuthHandler) renderLogin(c echo.Context, flow string, result domain.LoginResult) error {
	switch result.Outcome {
	case domain.LoginAuthenticated:
		metrics.LoginsTotal.WithLabelValues(flow, "authenticated").Inc()
		return c.JSON(http.StatusOK, loginResponse{
			Token: result.Session.Token,
			User:  result.User,
		})
	case domain.LoginNeedsPasswordSetup:
		metrics.LoginsTotal.WithLabelValues(flow, "needs_password_setup").Inc()
		return c.JSON(http.StatusOK, loginResponse{
			NeedsPasswordSetup: true,
			Email:              result.SetupEmail,
		})
	default:
		metrics.LoginsTotal.WithLabelValues(flow, "failed").Inc()
		return result.Err
	}
}
