package handler

import (
	"time"

	"github.com/innstack/hotel-ops/internal/core/domain"
	"github.com/innstack/hotel-ops/internal/core/ports"
)

type createRoomRequest struct {
	Number string `json:"number" validate:"required"`
	Floor  int    `json:"floor"`
	Type   string `json:"type" validate:"required"`
	Notes  string `json:"notes"`
}

type updateRoomStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=available occupied cleaning maintenance out_of_service"`
	Notes  string `json:"notes"`
}

type roomResponse struct {
	Number    string    `json:"number"`
	Floor     int       `json:"floor"`
	Type      string    `json:"type"`
	Status    string    `json:"status"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type roomSummaryResponse struct {
	Number    string    `json:"number"`
	Floor     int       `json:"floor"`
	Type      string    `json:"type"`
	Status    string    `json:"status"`
	UpdatedAt time.Time `json:"updated_at"`
}

type listRoomsResponse struct {
	Items      []roomSummaryResponse `json:"items"`
	Total      int64                 `json:"total"`
	Page       int                   `json:"page"`
	Limit      int                   `json:"limit"`
	TotalPages int                   `json:"total_pages"`
}

func toRoomResponse(r *domain.Room) roomResponse {
	return roomResponse{
		Number:    r.Number,
		Floor:     r.Floor,
		Type:      r.Type,
		Status:    string(r.Status),
		Notes:     r.Notes,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func toListRoomsResponse(result *ports.ListRoomsResult) listRoomsResponse {
	items := make([]roomSummaryResponse, 0, len(result.Items))
	for _, r := range result.Items {
		items = append(items, roomSummaryResponse{
			Number:    r.Number,
			Floor:     r.Floor,
			Type:      r.Type,
			Status:    string(r.Status),
			UpdatedAt: r.UpdatedAt,
		})
	}
	return listRoomsResponse{
		Items:      items,
		Total:      result.Total,
		Page:       result.Page,
		Limit:      result.Limit,
		TotalPages: result.TotalPages,
	}
}
