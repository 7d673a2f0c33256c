package service

import (
	"context"
	"errors"
	"testing"

	"github.com/innstack/hotel-ops/internal/core/domain"
)

func TestResolveProfile(t *testing.T) {
	profiles := &stubProfiles{byEmail: map[string]*domain.Profile{
		"front@h1.test": {
			ID: "p1", Email: "front@h1.test", Name: "Front Desk",
			Role: domain.RoleStaff, HotelID: "H1", CanManageStaff: true,
		},
	}}
	r := NewProfileResolver(profiles)

	user, err := r.Resolve(context.Background(), "front@h1.test")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if user.ID != "p1" || user.Role != domain.RoleStaff || !user.CanManageStaff {
		t.Fatalf("projection wrong: %+v", user)
	}
}

func TestResolveProfileMissingRow(t *testing.T) {
	r := NewProfileResolver(&stubProfiles{byEmail: map[string]*domain.Profile{}})

	user, err := r.Resolve(context.Background(), "ghost@h1.test")
	if err != nil {
		t.Fatalf("a missing row is not an error: %v", err)
	}
	if user != nil {
		t.Fatalf("expected nil user for missing row, got %+v", user)
	}
}

func TestResolveProfileInvalidShape(t *testing.T) {
	profiles := &stubProfiles{byEmail: map[string]*domain.Profile{
		"broken@h1.test": {ID: "p2", Email: "broken@h1.test", Role: domain.RoleStaff}, // no hotel
	}}
	r := NewProfileResolver(profiles)

	_, err := r.Resolve(context.Background(), "broken@h1.test")
	if !errors.Is(err, domain.ErrIncompleteProfile) {
		t.Fatalf("expected ErrIncompleteProfile, got %v", err)
	}
}
