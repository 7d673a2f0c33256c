package ports

import (
	"context"
	"time"

	"github.com/innstack/hotel-ops/internal/core/domain"
)

// Actor identifies the caller of a tenant-scoped operation, taken from the
// auth middleware claims. The service layer uses it for scoping decisions.
type Actor struct {
	UserID     string
	Role       domain.Role
	HotelID    string
	RoomNumber string // guests only
}

// CreateRoomInput carries the data to add a room to a hotel's inventory.
type CreateRoomInput struct {
	Number string
	Floor  int
	Type   string
	Notes  string
}

// UpdateRoomStatusInput carries a housekeeping status change.
type UpdateRoomStatusInput struct {
	Number string
	Status domain.RoomStatus
	Notes  string
}

// ListRoomsInput carries the list endpoint parameters.
type ListRoomsInput struct {
	Status domain.RoomStatus
	Floor  int
	Search string
	Page   int
	Limit  int
}

// RoomSummary is the lightweight list view of a room.
type RoomSummary struct {
	Number    string
	Floor     int
	Type      string
	Status    domain.RoomStatus
	UpdatedAt time.Time
}

// ListRoomsResult is returned by ListRooms.
type ListRoomsResult struct {
	Items      []RoomSummary
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// RoomService defines use-case operations for room inventory. Every call is
// scoped to the actor's hotel; guests may only read their own room.
type RoomService interface {
	CreateRoom(ctx context.Context, actor Actor, in CreateRoomInput) (*domain.Room, error)
	GetRoom(ctx context.Context, actor Actor, number string) (*domain.Room, error)
	UpdateRoomStatus(ctx context.Context, actor Actor, in UpdateRoomStatusInput) (*domain.Room, error)
	ListRooms(ctx context.Context, actor Actor, in ListRoomsInput) (*ListRoomsResult, error)
}
