package domain

import "fmt"

// Role classifies an authenticated actor.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
	RoleGuest Role = "guest"
)

// ValidRole reports whether r is one of the three known roles.
func ValidRole(r Role) bool {
	return r == RoleAdmin || r == RoleStaff || r == RoleGuest
}

// User is the session-resident projection of an actor. Staff and admin users
// are derived from a credential-store session plus a profile row; guest users
// are synthesized at login and never touch the credential store.
type User struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Role           Role   `json:"role"`
	HotelID        string `json:"hotel_id,omitempty"`
	RoomNumber     string `json:"room_number,omitempty"`
	CanManageRooms bool   `json:"can_manage_rooms,omitempty"`
	CanManageStaff bool   `json:"can_manage_staff,omitempty"`
}

// Validate enforces the guest/staff shape invariant: a guest carries a room
// number and hotel, everyone else carries a hotel and no room number. An
// admin without a hotel is legal (tenant setup pending).
func (u *User) Validate() error {
	if !ValidRole(u.Role) {
		return fmt.Errorf("%w: unknown role %q", ErrIncompleteProfile, u.Role)
	}
	switch u.Role {
	case RoleGuest:
		if u.RoomNumber == "" {
			return fmt.Errorf("%w: guest without room number", ErrIncompleteProfile)
		}
		if u.HotelID == "" {
			return fmt.Errorf("%w: guest without hotel", ErrIncompleteProfile)
		}
	default:
		if u.RoomNumber != "" {
			return fmt.Errorf("%w: %s carries a room number", ErrIncompleteProfile, u.Role)
		}
		if u.HotelID == "" && u.Role != RoleAdmin {
			return fmt.Errorf("%w: staff without hotel", ErrIncompleteProfile)
		}
	}
	return nil
}

// IsGuest reports whether the user holds a synthesized guest session.
func (u *User) IsGuest() bool { return u.Role == RoleGuest }

// NeedsTenantSetup reports whether this admin still has to be attached to a
// hotel before tenant-scoped screens can work.
func (u *User) NeedsTenantSetup() bool {
	return u.Role == RoleAdmin && u.HotelID == ""
}

// Profile is a row of the profiles collection, keyed by the credential-store
// user id with a unique email. It is the tenant-scoped metadata record,
// distinct from the credential record itself.
type Profile struct {
	ID                 string `json:"id"`
	Email              string `json:"email"`
	Name               string `json:"name"`
	Role               Role   `json:"role"`
	HotelID            string `json:"hotel_id"`
	CanManageRooms     bool   `json:"can_manage_rooms"`
	CanManageStaff     bool   `json:"can_manage_staff"`
	NeedsPasswordSetup bool   `json:"needs_password_setup"`
}

// User projects the profile row into a session User.
func (p *Profile) User() *User {
	return &User{
		ID:             p.ID,
		Name:           p.Name,
		Email:          p.Email,
		Role:           p.Role,
		HotelID:        p.HotelID,
		CanManageRooms: p.CanManageRooms,
		CanManageStaff: p.CanManageStaff,
	}
}
