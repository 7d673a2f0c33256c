package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/innstack/hotel-ops/internal/core/domain"
	"github.com/innstack/hotel-ops/internal/core/ports"
)

type RoomHandler struct {
	roomService ports.RoomService
}

func NewRoomHandler(roomService ports.RoomService) *RoomHandler {
	return &RoomHandler{roomService: roomService}
}

// Create adds a room to the hotel inventory.
//
// @Summary      Create a room
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Param        body  body      createRoomRequest  true  "Room details"
// @Success      201   {object}  roomResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /rooms [post]
func (h *RoomHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createRoomRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	room, err := h.roomService.CreateRoom(c.Request().Context(), actor, ports.CreateRoomInput{
		Number: req.Number,
		Floor:  req.Floor,
		Type:   req.Type,
		Notes:  req.Notes,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toRoomResponse(room))
}

// Get fetches a single room by number.
//
// @Summary      Get a room
// @Tags         rooms
// @Produce      json
// @Param        number  path      string  true  "Room number"
// @Success      200     {object}  roomResponse
// @Failure      403     {object}  map[string]string
// @Failure      404     {object}  map[string]string
// @Router       /rooms/{number} [get]
func (h *RoomHandler) Get(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	room, err := h.roomService.GetRoom(c.Request().Context(), actor, c.Param("number"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toRoomResponse(room))
}

// UpdateStatus applies a housekeeping status transition.
//
// @Summary      Update room status
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Param        number  path      string                   true  "Room number"
// @Param        body    body      updateRoomStatusRequest  true  "New status"
// @Success      200     {object}  roomResponse
// @Failure      404     {object}  map[string]string
// @Failure      422     {object}  map[string]string
// @Router       /rooms/{number}/status [patch]
func (h *RoomHandler) UpdateStatus(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req updateRoomStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	room, err := h.roomService.UpdateRoomStatus(c.Request().Context(), actor, ports.UpdateRoomStatusInput{
		Number: c.Param("number"),
		Status: domain.RoomStatus(req.Status),
		Notes:  req.Notes,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toRoomResponse(room))
}

// List returns a page of the hotel's rooms.
//
// @Summary      List rooms
// @Tags         rooms
// @Produce      json
// @Param        status  query     string  false  "Filter by status"
// @Param        floor   query     int     false  "Filter by floor"
// @Param        search  query     string  false  "Partial match on number or type"
// @Param        page    query     int     false  "Page (1-based)"
// @Param        limit   query     int     false  "Page size"
// @Success      200     {object}  listRoomsResponse
// @Router       /rooms [get]
func (h *RoomHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	floor, _ := strconv.Atoi(c.QueryParam("floor"))
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.roomService.ListRooms(c.Request().Context(), actor, ports.ListRoomsInput{
		Status: domain.RoomStatus(c.QueryParam("status")),
		Floor:  floor,
		Search: c.QueryParam("search"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListRoomsResponse(result))
}
