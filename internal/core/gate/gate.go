// Package gate implements the authorization gate: a single declarative
// policy check every protected route goes through, instead of inline role
// conditionals scattered across handlers.
package gate

import "github.com/innstack/hotel-ops/internal/core/domain"

// Policy is the declarative access requirement attached to a route.
// A zero Policy only requires an authenticated session.
type Policy struct {
	// AllowedRoles restricts access to the listed roles. Empty = any role.
	AllowedRoles []domain.Role
	// RequiresRoomManage grants access to admins or users with the
	// can_manage_rooms flag.
	RequiresRoomManage bool
	// RequiresStaffManage grants access to admins or users with the
	// can_manage_staff flag.
	RequiresStaffManage bool
}

// Subject is the slice of session state the gate decides on.
type Subject struct {
	Initializing   bool
	Authenticated  bool
	Role           domain.Role
	CanManageRooms bool
	CanManageStaff bool
}

// Decision is the gate's verdict.
type Decision int

const (
	// Pending: session state is still initializing; render a placeholder,
	// make no redirect decision yet.
	Pending Decision = iota
	// Unauthenticated: no session; send the caller to the login entry point.
	Unauthenticated
	// Forbidden: authenticated but the policy denies this role/flags.
	Forbidden
	// Allow: render the protected view.
	Allow
)

// Evaluate applies policy to the subject. Permission requirements are OR'd
// with the admin role: an admin always passes regardless of flags, a
// non-admin passes only with the explicit flag set.
func Evaluate(p Policy, s Subject) Decision {
	if s.Initializing {
		return Pending
	}
	if !s.Authenticated {
		return Unauthenticated
	}
	if len(p.AllowedRoles) > 0 && !roleAllowed(p.AllowedRoles, s.Role) {
		return Forbidden
	}
	if p.RequiresRoomManage && s.Role != domain.RoleAdmin && !s.CanManageRooms {
		return Forbidden
	}
	if p.RequiresStaffManage && s.Role != domain.RoleAdmin && !s.CanManageStaff {
		return Forbidden
	}
	return Allow
}

func roleAllowed(allowed []domain.Role, r domain.Role) bool {
	for _, a := range allowed {
		if a == r {
			return true
		}
	}
	return false
}

// SubjectFromUser builds a settled, authenticated subject for u. A nil user
// yields an unauthenticated subject.
func SubjectFromUser(u *domain.User) Subject {
	if u == nil {
		return Subject{}
	}
	return Subject{
		Authenticated:  true,
		Role:           u.Role,
		CanManageRooms: u.CanManageRooms,
		CanManageStaff: u.CanManageStaff,
	}
}
