package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/innstack/hotel-ops/internal/core/domain"
	"github.com/innstack/hotel-ops/internal/core/ports"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// RoomService implements tenant-scoped room inventory operations.
type RoomService struct {
	repo ports.RoomRepository
	log  zerolog.Logger
}

func NewRoomService(repo ports.RoomRepository, log zerolog.Logger) *RoomService {
	return &RoomService{repo: repo, log: log}
}

// CreateRoom adds a room to the actor's hotel inventory.
func (s *RoomService) CreateRoom(ctx context.Context, actor ports.Actor, in ports.CreateRoomInput) (*domain.Room, error) {
	if actor.HotelID == "" {
		return nil, domain.ErrForbidden
	}

	now := time.Now().UTC()
	room := &domain.Room{
		ID:        uuid.NewString(),
		HotelID:   actor.HotelID,
		Number:    in.Number,
		Floor:     in.Floor,
		Type:      in.Type,
		Status:    domain.RoomAvailable,
		Notes:     in.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, room); err != nil {
		return nil, err
	}

	s.log.Info().Str("hotel_id", room.HotelID).Str("number", room.Number).Msg("room created")
	return room, nil
}

// GetRoom fetches one room. Guests may only fetch their own room.
func (s *RoomService) GetRoom(ctx context.Context, actor ports.Actor, number string) (*domain.Room, error) {
	if actor.Role == domain.RoleGuest && actor.RoomNumber != number {
		return nil, domain.ErrForbidden
	}
	return s.repo.FindByNumber(ctx, actor.HotelID, number)
}

// UpdateRoomStatus applies a housekeeping transition after validating it
// against the room lifecycle state machine.
func (s *RoomService) UpdateRoomStatus(ctx context.Context, actor ports.Actor, in ports.UpdateRoomStatusInput) (*domain.Room, error) {
	room, err := s.repo.FindByNumber(ctx, actor.HotelID, in.Number)
	if err != nil {
		return nil, err
	}

	if !room.Status.CanTransitionTo(in.Status) {
		return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, room.Status, in.Status)
	}

	if err := s.repo.UpdateStatus(ctx, actor.HotelID, in.Number, in.Status, in.Notes); err != nil {
		return nil, fmt.Errorf("update room status: %w", err)
	}

	room.Status = in.Status
	if in.Notes != "" {
		room.Notes = in.Notes
	}
	room.UpdatedAt = time.Now().UTC()

	s.log.Info().Str("hotel_id", actor.HotelID).Str("number", in.Number).Str("status", string(in.Status)).Msg("room status updated")
	return room, nil
}

// ListRooms returns a page of the actor's hotel inventory.
func (s *RoomService) ListRooms(ctx context.Context, actor ports.Actor, in ports.ListRoomsInput) (*ports.ListRoomsResult, error) {
	if actor.HotelID == "" {
		return nil, domain.ErrForbidden
	}

	page, limit := normalizePage(in.Page, in.Limit)
	rooms, total, err := s.repo.List(ctx, ports.ListRoomsFilter{
		HotelID: actor.HotelID,
		Status:  in.Status,
		Floor:   in.Floor,
		Search:  in.Search,
		Page:    page,
		Limit:   limit,
	})
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}

	items := make([]ports.RoomSummary, 0, len(rooms))
	for _, r := range rooms {
		items = append(items, ports.RoomSummary{
			Number:    r.Number,
			Floor:     r.Floor,
			Type:      r.Type,
			Status:    r.Status,
			UpdatedAt: r.UpdatedAt,
		})
	}

	return &ports.ListRoomsResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}

func totalPages(total int64, limit int) int {
	if total == 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
