package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/innstack/hotel-ops/internal/core/domain"
	"github.com/innstack/hotel-ops/internal/core/ports"
)

func staffActor() ports.Actor {
	return ports.Actor{UserID: "u1", Role: domain.RoleStaff, HotelID: "H1"}
}

func guestActor(room string) ports.Actor {
	return ports.Actor{UserID: "g1", Role: domain.RoleGuest, HotelID: "H1", RoomNumber: room}
}

func TestCreateRoom(t *testing.T) {
	rooms := &stubRooms{rooms: map[string]*domain.Room{}}
	svc := NewRoomService(rooms, zerolog.Nop())

	room, err := svc.CreateRoom(context.Background(), staffActor(), ports.CreateRoomInput{
		Number: "204", Floor: 2, Type: "double",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if room.ID == "" {
		t.Fatalf("room created without an id")
	}
	if room.HotelID != "H1" {
		t.Fatalf("room not scoped to the actor's hotel: %q", room.HotelID)
	}
	if room.Status != domain.RoomAvailable {
		t.Fatalf("new room must start available, got %q", room.Status)
	}

	_, err = svc.CreateRoom(context.Background(), staffActor(), ports.CreateRoomInput{Number: "204"})
	if !errors.Is(err, domain.ErrRoomExists) {
		t.Fatalf("expected ErrRoomExists on duplicate, got %v", err)
	}
}

func TestCreateRoomWithoutHotel(t *testing.T) {
	svc := NewRoomService(&stubRooms{}, zerolog.Nop())
	actor := ports.Actor{UserID: "a1", Role: domain.RoleAdmin} // tenant setup pending
	if _, err := svc.CreateRoom(context.Background(), actor, ports.CreateRoomInput{Number: "1"}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden without a hotel scope, got %v", err)
	}
}

func TestGetRoomGuestScoping(t *testing.T) {
	rooms := &stubRooms{rooms: map[string]*domain.Room{
		"H1/204": {ID: "r1", HotelID: "H1", Number: "204", Status: domain.RoomOccupied},
		"H1/205": {ID: "r2", HotelID: "H1", Number: "205", Status: domain.RoomAvailable},
	}}
	svc := NewRoomService(rooms, zerolog.Nop())

	if _, err := svc.GetRoom(context.Background(), guestActor("204"), "204"); err != nil {
		t.Fatalf("guest blocked from own room: %v", err)
	}
	if _, err := svc.GetRoom(context.Background(), guestActor("204"), "205"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for another room, got %v", err)
	}
	if _, err := svc.GetRoom(context.Background(), staffActor(), "205"); err != nil {
		t.Fatalf("staff blocked from hotel room: %v", err)
	}
	if _, err := svc.GetRoom(context.Background(), staffActor(), "999"); !errors.Is(err, domain.ErrRoomNotFound) {
		t.Fatalf("expected ErrRoomNotFound, got %v", err)
	}
}

func TestUpdateRoomStatus(t *testing.T) {
	rooms := &stubRooms{rooms: map[string]*domain.Room{
		"H1/204": {ID: "r1", HotelID: "H1", Number: "204", Status: domain.RoomOccupied},
	}}
	svc := NewRoomService(rooms, zerolog.Nop())

	room, err := svc.UpdateRoomStatus(context.Background(), staffActor(), ports.UpdateRoomStatusInput{
		Number: "204", Status: domain.RoomCleaning,
	})
	if err != nil {
		t.Fatalf("valid transition rejected: %v", err)
	}
	if room.Status != domain.RoomCleaning {
		t.Fatalf("status not applied: %q", room.Status)
	}

	_, err = svc.UpdateRoomStatus(context.Background(), staffActor(), ports.UpdateRoomStatusInput{
		Number: "204", Status: domain.RoomOccupied, // cleaning -> occupied is not allowed
	})
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}

	_, err = svc.UpdateRoomStatus(context.Background(), staffActor(), ports.UpdateRoomStatusInput{
		Number: "999", Status: domain.RoomCleaning,
	})
	if !errors.Is(err, domain.ErrRoomNotFound) {
		t.Fatalf("expected ErrRoomNotFound, got %v", err)
	}
}

func TestListRooms(t *testing.T) {
	rooms := &stubRooms{rooms: map[string]*domain.Room{
		"H1/101": {ID: "r1", HotelID: "H1", Number: "101", Status: domain.RoomAvailable},
		"H1/204": {ID: "r2", HotelID: "H1", Number: "204", Status: domain.RoomOccupied},
		"H2/101": {ID: "r3", HotelID: "H2", Number: "101", Status: domain.RoomAvailable},
	}}
	svc := NewRoomService(rooms, zerolog.Nop())

	res, err := svc.ListRooms(context.Background(), staffActor(), ports.ListRoomsInput{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if res.Total != 2 {
		t.Fatalf("tenant scoping leaked: total %d", res.Total)
	}
	if res.Page != 1 || res.Limit != defaultPageLimit {
		t.Fatalf("defaults not applied: page %d limit %d", res.Page, res.Limit)
	}

	res, err = svc.ListRooms(context.Background(), staffActor(), ports.ListRoomsInput{Status: domain.RoomOccupied})
	if err != nil {
		t.Fatalf("filtered list: %v", err)
	}
	if res.Total != 1 || res.Items[0].Number != "204" {
		t.Fatalf("status filter wrong: %+v", res.Items)
	}
}

func TestNormalizePage(t *testing.T) {
	cases := []struct {
		page, limit         int
		wantPage, wantLimit int
	}{
		{0, 0, 1, defaultPageLimit},
		{-3, -1, 1, defaultPageLimit},
		{2, 50, 2, 50},
		{1, 500, 1, maxPageLimit},
	}
	for _, tc := range cases {
		p, l := normalizePage(tc.page, tc.limit)
		if p != tc.wantPage || l != tc.wantLimit {
			t.Errorf("normalizePage(%d, %d) = (%d, %d), want (%d, %d)",
				tc.page, tc.limit, p, l, tc.wantPage, tc.wantLimit)
		}
	}
}

func TestTotalPages(t *testing.T) {
	if got := totalPages(0, 20); got != 0 {
		t.Fatalf("empty result should have 0 pages, got %d", got)
	}
	if got := totalPages(41, 20); got != 3 {
		t.Fatalf("41/20 should round up to 3 pages, got %d", got)
	}
}
