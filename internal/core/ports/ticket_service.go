package ports

import (
	"context"

	"github.com/innstack/hotel-ops/internal/core/domain"
)

// CreateTicketInput carries a new service request. RoomNumber is ignored for
// guest actors, whose tickets are always scoped to their own room.
type CreateTicketInput struct {
	RoomNumber  string
	Category    string
	Description string
}

// UpdateTicketStatusInput carries a ticket status change.
type UpdateTicketStatusInput struct {
	TicketID string
	Status   domain.TicketStatus
	Notes    string
}

// ListTicketsInput carries the list endpoint parameters.
type ListTicketsInput struct {
	RoomNumber string
	Status     domain.TicketStatus
	Category   string
	Page       int
	Limit      int
}

// ListTicketsResult is returned by ListTickets.
type ListTicketsResult struct {
	Items      []*domain.Ticket
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// TicketService defines use-case operations for service-request ticketing.
type TicketService interface {
	CreateTicket(ctx context.Context, actor Actor, in CreateTicketInput) (*domain.Ticket, error)
	GetTicket(ctx context.Context, actor Actor, id string) (*domain.Ticket, error)
	UpdateTicketStatus(ctx context.Context, actor Actor, in UpdateTicketStatusInput) (*domain.Ticket, error)
	ListTickets(ctx context.Context, actor Actor, in ListTicketsInput) (*ListTicketsResult, error)
}
