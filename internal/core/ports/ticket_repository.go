package ports

import (
	"context"
	"time"

	"github.com/innstack/hotel-ops/internal/core/domain"
)

// ListTicketsFilter carries the query parameters for listing tickets.
type ListTicketsFilter struct {
	HotelID    string // required: tenant scope
	RoomNumber string // optional: scope to one room (guests)
	Status     domain.TicketStatus
	Category   string
	Page       int
	Limit      int
}

// TicketRepository defines persistence operations for service requests.
type TicketRepository interface {
	Create(ctx context.Context, t *domain.Ticket) error
	// FindByID returns domain.ErrTicketNotFound when no ticket matches
	// id within hotelID.
	FindByID(ctx context.Context, hotelID, id string) (*domain.Ticket, error)
	// UpdateStatus atomically sets the status and appends a history entry.
	UpdateStatus(ctx context.Context, hotelID, id string, status domain.TicketStatus, ts time.Time, actor, notes string) error
	List(ctx context.Context, filter ListTicketsFilter) ([]*domain.Ticket, int64, error)
}
