package ports

import (
	"context"

	"github.com/innstack/hotel-ops/internal/core/domain"
)

// ListRoomsFilter carries the query parameters for listing rooms.
// HotelID is always enforced by the service layer (tenant scoping).
type ListRoomsFilter struct {
	HotelID string           // required: tenant scope
	Status  domain.RoomStatus // optional
	Floor   int              // optional: 0 = no filter
	Search  string           // optional: partial match on number or type
	Page    int              // 1-based
	Limit   int              // capped at 100 by the service
}

// RoomRepository defines persistence operations for room inventory.
type RoomRepository interface {
	// Create fails with domain.ErrRoomExists on a duplicate hotel+number.
	Create(ctx context.Context, r *domain.Room) error
	// FindByNumber returns domain.ErrRoomNotFound when no room matches.
	FindByNumber(ctx context.Context, hotelID, number string) (*domain.Room, error)
	// UpdateStatus atomically sets the room's status and updated_at.
	UpdateStatus(ctx context.Context, hotelID, number string, status domain.RoomStatus, notes string) error
	// List returns a page of rooms matching filter and the total count.
	List(ctx context.Context, filter ListRoomsFilter) ([]*domain.Room, int64, error)
}
