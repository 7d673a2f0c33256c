package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/innstack/hotel-ops/internal/core/domain"
	"github.com/innstack/hotel-ops/internal/core/ports"
)

// AdminHandler hosts the privileged staff-management operations that used
// to live in serverless functions: account creation with a setup email,
// and credential-store user deletion.
type AdminHandler struct {
	admin    ports.CredentialAdmin
	profiles ports.ProfileRepository
	tokens   ports.TokenIssuer
	mail     ports.MailEnqueuer
	log      zerolog.Logger
}

func NewAdminHandler(
	admin ports.CredentialAdmin,
	profiles ports.ProfileRepository,
	tokens ports.TokenIssuer,
	mail ports.MailEnqueuer,
	log zerolog.Logger,
) *AdminHandler {
	return &AdminHandler{admin: admin, profiles: profiles, tokens: tokens, mail: mail, log: log}
}

type createStaffRequest struct {
	Email          string `json:"email" validate:"required,email"`
	Name           string `json:"name" validate:"required"`
	Role           string `json:"role" validate:"required,oneof=staff admin"`
	HotelID        string `json:"hotel_id" validate:"required"`
	CanManageRooms bool   `json:"can_manage_rooms"`
	CanManageStaff bool   `json:"can_manage_staff"`
}

type createStaffResponse struct {
	Profile *domain.Profile `json:"profile"`
}

// CreateStaff provisions a staff account: credential with an unusable
// password, profile row flagged needs_password_setup, setup email enqueued.
//
// @Summary      Create a staff account
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body      createStaffRequest  true  "Staff details"
// @Success      201   {object}  createStaffResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /admin/staff [post]
func (h *AdminHandler) CreateStaff(c echo.Context) error {
	var req createStaffRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()

	id, err := h.admin.CreateUser(ctx, req.Email)
	if err != nil {
		return err
	}

	profile := &domain.Profile{
		ID:                 id,
		Email:              req.Email,
		Name:               req.Name,
		Role:               domain.Role(req.Role),
		HotelID:            req.HotelID,
		CanManageRooms:     req.CanManageRooms,
		CanManageStaff:     req.CanManageStaff,
		NeedsPasswordSetup: true,
	}
	if err := h.profiles.Create(ctx, profile); err != nil {
		// Roll the credential back so a retry isn't stuck on ErrUserExists.
		if delErr := h.admin.DeleteUser(ctx, id); delErr != nil {
			h.log.Error().Err(delErr).Str("email", req.Email).Msg("credential rollback failed")
		}
		return err
	}

	token, err := h.tokens.SignSetup(req.Email)
	if err != nil {
		h.log.Error().Err(err).Str("email", req.Email).Msg("setup token signing failed")
	} else {
		h.mail.Enqueue(ports.MailJob{
			Kind:    ports.MailPasswordSetup,
			To:      req.Email,
			Token:   token,
			HotelID: req.HotelID,
		})
	}

	h.log.Info().Str("email", req.Email).Str("role", req.Role).Str("hotel_id", req.HotelID).Msg("staff account created")
	return c.JSON(http.StatusCreated, createStaffResponse{Profile: profile})
}

// DeleteStaff removes a staff account from both the credential store and
// the profile table.
//
// @Summary      Delete a staff account
// @Tags         admin
// @Param        id  path  string  true  "User id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /admin/staff/{id} [delete]
func (h *AdminHandler) DeleteStaff(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	if err := h.profiles.Delete(ctx, id); err != nil {
		return err
	}
	if err := h.admin.DeleteUser(ctx, id); err != nil {
		return err
	}

	h.log.Info().Str("user_id", id).Msg("staff account deleted")
	return c.NoContent(http.StatusNoContent)
}

// ListStaff returns all credential records.
//
// @Summary      List credential-store users
// @Tags         admin
// @Produce      json
// @Success      200  {array}  domain.Credential
// @Router       /admin/staff [get]
func (h *AdminHandler) ListStaff(c echo.Context) error {
	creds, err := h.admin.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, creds)
}
