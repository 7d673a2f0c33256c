package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/innstack/hotel-ops/internal/core/domain"
	"github.com/innstack/hotel-ops/internal/core/ports"
)

// TicketService implements service-request ticketing. Guest actors are
// scoped to their own room; staff and admin see the whole hotel.
type TicketService struct {
	repo  ports.TicketRepository
	rooms ports.RoomRepository
	log   zerolog.Logger
}

func NewTicketService(repo ports.TicketRepository, rooms ports.RoomRepository, log zerolog.Logger) *TicketService {
	return &TicketService{repo: repo, rooms: rooms, log: log}
}

// CreateTicket opens a service request. The room must exist in the hotel's
// inventory; for guests the room is always their own regardless of input.
func (s *TicketService) CreateTicket(ctx context.Context, actor ports.Actor, in ports.CreateTicketInput) (*domain.Ticket, error) {
	if actor.HotelID == "" {
		return nil, domain.ErrForbidden
	}

	roomNumber := in.RoomNumber
	if actor.Role == domain.RoleGuest {
		roomNumber = actor.RoomNumber
	}

	if _, err := s.rooms.FindByNumber(ctx, actor.HotelID, roomNumber); err != nil {
		if errors.Is(err, domain.ErrRoomNotFound) {
			return nil, domain.ErrRoomNotFound
		}
		return nil, fmt.Errorf("create ticket: %w", err)
	}

	now := time.Now().UTC()
	ticket := &domain.Ticket{
		ID:          uuid.NewString(),
		HotelID:     actor.HotelID,
		RoomNumber:  roomNumber,
		Category:    in.Category,
		Description: in.Description,
		Status:      domain.TicketOpen,
		RequestedBy: actor.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
		History: []domain.TicketHistoryEntry{
			{Status: domain.TicketOpen, Timestamp: now, Actor: actor.UserID},
		},
	}

	if err := s.repo.Create(ctx, ticket); err != nil {
		return nil, fmt.Errorf("create ticket: %w", err)
	}

	s.log.Info().Str("hotel_id", ticket.HotelID).Str("room", ticket.RoomNumber).Str("category", ticket.Category).Msg("ticket created")
	return ticket, nil
}

// GetTicket fetches one ticket. Guests only see tickets for their own room.
func (s *TicketService) GetTicket(ctx context.Context, actor ports.Actor, id string) (*domain.Ticket, error) {
	ticket, err := s.repo.FindByID(ctx, actor.HotelID, id)
	if err != nil {
		return nil, err
	}
	if actor.Role == domain.RoleGuest && ticket.RoomNumber != actor.RoomNumber {
		return nil, domain.ErrForbidden
	}
	return ticket, nil
}

// UpdateTicketStatus applies a status transition. Guests may only cancel
// their own open tickets; staff drive the rest of the lifecycle.
func (s *TicketService) UpdateTicketStatus(ctx context.Context, actor ports.Actor, in ports.UpdateTicketStatusInput) (*domain.Ticket, error) {
	ticket, err := s.repo.FindByID(ctx, actor.HotelID, in.TicketID)
	if err != nil {
		return nil, err
	}

	if actor.Role == domain.RoleGuest {
		if ticket.RoomNumber != actor.RoomNumber || in.Status != domain.TicketCancelled {
			return nil, domain.ErrForbidden
		}
	}

	if !ticket.Status.CanTransitionTo(in.Status) {
		return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, ticket.Status, in.Status)
	}

	now := time.Now().UTC()
	if err := s.repo.UpdateStatus(ctx, actor.HotelID, in.TicketID, in.Status, now, actor.UserID, in.Notes); err != nil {
		return nil, fmt.Errorf("update ticket status: %w", err)
	}

	ticket.Status = in.Status
	ticket.UpdatedAt = now
	ticket.History = append(ticket.History, domain.TicketHistoryEntry{
		Status:    in.Status,
		Timestamp: now,
		Actor:     actor.UserID,
		Notes:     in.Notes,
	})

	s.log.Info().Str("ticket_id", in.TicketID).Str("status", string(in.Status)).Msg("ticket status updated")
	return ticket, nil
}

// ListTickets returns a page of the hotel's tickets. Guest actors are
// forced onto their own room's tickets.
func (s *TicketService) ListTickets(ctx context.Context, actor ports.Actor, in ports.ListTicketsInput) (*ports.ListTicketsResult, error) {
	if actor.HotelID == "" {
		return nil, domain.ErrForbidden
	}

	roomNumber := in.RoomNumber
	if actor.Role == domain.RoleGuest {
		roomNumber = actor.RoomNumber
	}

	page, limit := normalizePage(in.Page, in.Limit)
	tickets, total, err := s.repo.List(ctx, ports.ListTicketsFilter{
		HotelID:    actor.HotelID,
		RoomNumber: roomNumber,
		Status:     in.Status,
		Category:   in.Category,
		Page:       page,
		Limit:      limit,
	})
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}

	return &ports.ListTicketsResult{
		Items:      tickets,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}
