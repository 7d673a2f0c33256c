package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/innstack/hotel-ops/internal/core/domain"
	"github.com/innstack/hotel-ops/internal/core/ports"
)

type stubTickets struct {
	byID map[string]*domain.Ticket
}

func (s *stubTickets) Create(ctx context.Context, t *domain.Ticket) error {
	if s.byID == nil {
		s.byID = map[string]*domain.Ticket{}
	}
	copied := *t
	s.byID[t.ID] = &copied
	return nil
}

func (s *stubTickets) FindByID(ctx context.Context, hotelID, id string) (*domain.Ticket, error) {
	t, ok := s.byID[id]
	if !ok || t.HotelID != hotelID {
		return nil, domain.ErrTicketNotFound
	}
	copied := *t
	return &copied, nil
}

func (s *stubTickets) UpdateStatus(ctx context.Context, hotelID, id string, status domain.TicketStatus, ts time.Time, actor, notes string) error {
	t, ok := s.byID[id]
	if !ok || t.HotelID != hotelID {
		return domain.ErrTicketNotFound
	}
	t.Status = status
	t.UpdatedAt = ts
	t.History = append(t.History, domain.TicketHistoryEntry{
		Status: status, Timestamp: ts, Actor: actor, Notes: notes,
	})
	return nil
}

func (s *stubTickets) List(ctx context.Context, filter ports.ListTicketsFilter) ([]*domain.Ticket, int64, error) {
	var out []*domain.Ticket
	for _, t := range s.byID {
		if t.HotelID != filter.HotelID {
			continue
		}
		if filter.RoomNumber != "" && t.RoomNumber != filter.RoomNumber {
			continue
		}
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		copied := *t
		out = append(out, &copied)
	}
	return out, int64(len(out)), nil
}

func ticketFixture() (*TicketService, *stubTickets) {
	rooms := &stubRooms{rooms: map[string]*domain.Room{
		"H1/204": {ID: "r1", HotelID: "H1", Number: "204", Status: domain.RoomOccupied},
		"H1/205": {ID: "r2", HotelID: "H1", Number: "205", Status: domain.RoomAvailable},
	}}
	tickets := &stubTickets{byID: map[string]*domain.Ticket{}}
	return NewTicketService(tickets, rooms, zerolog.Nop()), tickets
}

func TestCreateTicket(t *testing.T) {
	svc, _ := ticketFixture()

	ticket, err := svc.CreateTicket(context.Background(), staffActor(), ports.CreateTicketInput{
		RoomNumber: "204", Category: "housekeeping", Description: "extra towels",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if ticket.Status != domain.TicketOpen {
		t.Fatalf("new ticket must start open, got %q", ticket.Status)
	}
	if len(ticket.History) != 1 || ticket.History[0].Status != domain.TicketOpen {
		t.Fatalf("opening history entry missing: %+v", ticket.History)
	}
	if ticket.RequestedBy != "u1" {
		t.Fatalf("requester not recorded: %q", ticket.RequestedBy)
	}
}

func TestCreateTicketUnknownRoom(t *testing.T) {
	svc, _ := ticketFixture()
	_, err := svc.CreateTicket(context.Background(), staffActor(), ports.CreateTicketInput{
		RoomNumber: "999", Category: "maintenance",
	})
	if !errors.Is(err, domain.ErrRoomNotFound) {
		t.Fatalf("expected ErrRoomNotFound, got %v", err)
	}
}

func TestCreateTicketGuestForcedToOwnRoom(t *testing.T) {
	svc, _ := ticketFixture()

	// A guest naming another room is silently scoped back to their own.
	ticket, err := svc.CreateTicket(context.Background(), guestActor("204"), ports.CreateTicketInput{
		RoomNumber: "205", Category: "amenities",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if ticket.RoomNumber != "204" {
		t.Fatalf("guest ticket escaped its room: %q", ticket.RoomNumber)
	}
}

func TestGetTicketGuestScoping(t *testing.T) {
	svc, _ := ticketFixture()
	mine, err := svc.CreateTicket(context.Background(), guestActor("204"), ports.CreateTicketInput{Category: "housekeeping"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	other, err := svc.CreateTicket(context.Background(), staffActor(), ports.CreateTicketInput{
		RoomNumber: "205", Category: "maintenance",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.GetTicket(context.Background(), guestActor("204"), mine.ID); err != nil {
		t.Fatalf("guest blocked from own ticket: %v", err)
	}
	if _, err := svc.GetTicket(context.Background(), guestActor("204"), other.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for another room's ticket, got %v", err)
	}
	if _, err := svc.GetTicket(context.Background(), staffActor(), mine.ID); err != nil {
		t.Fatalf("staff blocked from hotel ticket: %v", err)
	}
}

func TestUpdateTicketStatus(t *testing.T) {
	svc, _ := ticketFixture()
	ticket, err := svc.CreateTicket(context.Background(), staffActor(), ports.CreateTicketInput{
		RoomNumber: "204", Category: "maintenance",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.UpdateTicketStatus(context.Background(), staffActor(), ports.UpdateTicketStatusInput{
		TicketID: ticket.ID, Status: domain.TicketInProgress,
	})
	if err != nil {
		t.Fatalf("valid transition rejected: %v", err)
	}
	if updated.Status != domain.TicketInProgress || len(updated.History) != 2 {
		t.Fatalf("transition not recorded: %+v", updated)
	}

	_, err = svc.UpdateTicketStatus(context.Background(), staffActor(), ports.UpdateTicketStatusInput{
		TicketID: ticket.ID, Status: domain.TicketOpen, // in_progress -> open is not allowed
	})
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestUpdateTicketStatusGuestRules(t *testing.T) {
	svc, _ := ticketFixture()
	mine, err := svc.CreateTicket(context.Background(), guestActor("204"), ports.CreateTicketInput{Category: "housekeeping"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Guests may not drive the staff lifecycle.
	_, err = svc.UpdateTicketStatus(context.Background(), guestActor("204"), ports.UpdateTicketStatusInput{
		TicketID: mine.ID, Status: domain.TicketInProgress,
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for guest progress update, got %v", err)
	}

	// But they may cancel their own open ticket.
	updated, err := svc.UpdateTicketStatus(context.Background(), guestActor("204"), ports.UpdateTicketStatusInput{
		TicketID: mine.ID, Status: domain.TicketCancelled,
	})
	if err != nil {
		t.Fatalf("guest cancel rejected: %v", err)
	}
	if updated.Status != domain.TicketCancelled {
		t.Fatalf("cancel not applied: %q", updated.Status)
	}

	// Cancelling someone else's ticket stays forbidden.
	other, err := svc.CreateTicket(context.Background(), staffActor(), ports.CreateTicketInput{
		RoomNumber: "205", Category: "maintenance",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	_, err = svc.UpdateTicketStatus(context.Background(), guestActor("204"), ports.UpdateTicketStatusInput{
		TicketID: other.ID, Status: domain.TicketCancelled,
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for another room's ticket, got %v", err)
	}
}

func TestListTicketsGuestScoping(t *testing.T) {
	svc, _ := ticketFixture()
	if _, err := svc.CreateTicket(context.Background(), guestActor("204"), ports.CreateTicketInput{Category: "housekeeping"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.CreateTicket(context.Background(), staffActor(), ports.CreateTicketInput{
		RoomNumber: "205", Category: "maintenance",
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	res, err := svc.ListTickets(context.Background(), staffActor(), ports.ListTicketsInput{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if res.Total != 2 {
		t.Fatalf("staff should see the whole hotel, got %d", res.Total)
	}

	// Even when a guest asks for another room, the filter is their own room.
	res, err = svc.ListTickets(context.Background(), guestActor("204"), ports.ListTicketsInput{RoomNumber: "205"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if res.Total != 1 || res.Items[0].RoomNumber != "204" {
		t.Fatalf("guest list escaped its room: %+v", res.Items)
	}
}
