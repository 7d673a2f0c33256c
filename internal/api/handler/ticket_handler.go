package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/innstack/hotel-ops/internal/api/metrics"
	"github.com/innstack/hotel-ops/internal/core/domain"
	"github.com/innstack/hotel-ops/internal/core/ports"
)

type TicketHandler struct {
	ticketService ports.TicketService
}

func NewTicketHandler(ticketService ports.TicketService) *TicketHandler {
	return &TicketHandler{ticketService: ticketService}
}

type createTicketRequest struct {
	RoomNumber  string `json:"room_number"`
	Category    string `json:"category" validate:"required,oneof=housekeeping maintenance amenities concierge other"`
	Description string `json:"description" validate:"required,min=3"`
}

type updateTicketStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=open in_progress resolved cancelled"`
	Notes  string `json:"notes"`
}

// Create opens a service request.
//
// @Summary      Create a service request
// @Tags         tickets
// @Accept       json
// @Produce      json
// @Param        body  body      createTicketRequest  true  "Request details"
// @Success      201   {object}  domain.Ticket
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /tickets [post]
func (h *TicketHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createTicketRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ticket, err := h.ticketService.CreateTicket(c.Request().Context(), actor, ports.CreateTicketInput{
		RoomNumber:  req.RoomNumber,
		Category:    req.Category,
		Description: req.Description,
	})
	if err != nil {
		return err
	}

	metrics.TicketsCreatedTotal.WithLabelValues(ticket.Category).Inc()
	return c.JSON(http.StatusCreated, ticket)
}

// Get fetches one ticket.
//
// @Summary      Get a ticket
// @Tags         tickets
// @Produce      json
// @Param        id   path      string  true  "Ticket id"
// @Success      200  {object}  domain.Ticket
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /tickets/{id} [get]
func (h *TicketHandler) Get(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	ticket, err := h.ticketService.GetTicket(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ticket)
}

// UpdateStatus applies a ticket lifecycle transition.
//
// @Summary      Update ticket status
// @Tags         tickets
// @Accept       json
// @Produce      json
// @Param        id    path      string                     true  "Ticket id"
// @Param        body  body      updateTicketStatusRequest  true  "New status"
// @Success      200   {object}  domain.Ticket
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /tickets/{id}/status [patch]
func (h *TicketHandler) UpdateStatus(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req updateTicketStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ticket, err := h.ticketService.UpdateTicketStatus(c.Request().Context(), actor, ports.UpdateTicketStatusInput{
		TicketID: c.Param("id"),
		Status:   domain.TicketStatus(req.Status),
		Notes:    req.Notes,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ticket)
}

// List returns a page of the hotel's tickets.
//
// @Summary      List tickets
// @Tags         tickets
// @Produce      json
// @Param        room      query     string  false  "Filter by room number"
// @Param        status    query     string  false  "Filter by status"
// @Param        category  query     string  false  "Filter by category"
// @Param        page      query     int     false  "Page (1-based)"
// @Param        limit     query     int     false  "Page size"
// @Success      200       {object}  ports.ListTicketsResult
// @Router       /tickets [get]
func (h *TicketHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.ticketService.ListTickets(c.Request().Context(), actor, ports.ListTicketsInput{
		RoomNumber: c.QueryParam("room"),
		Status:     domain.TicketStatus(c.QueryParam("status")),
		Category:   c.QueryParam("category"),
		Page:       page,
		Limit:      limit,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}
