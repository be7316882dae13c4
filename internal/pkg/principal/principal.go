// Package principal models the authenticated caller as a tagged variant:
// a student or company principal carries its role profile id, an admin
// carries none. Authorization checks are pure functions over the principal
// and the target entity's ownership fields.
package principal

import (
	"github.com/google/uuid"

	"placement-hub/internal/domain/user"
)

type Principal struct {
	UserID uuid.UUID
	Email  string
	Role   user.Role

	// ProfileID is the StudentProfile or CompanyProfile id for the matching
	// role, and uuid.Nil for admins.
	ProfileID uuid.UUID
}

func (p Principal) IsStudent() bool { return p.Role == user.RoleStudent }
func (p Principal) IsCompany() bool { return p.Role == user.RoleCompany }
func (p Principal) IsAdmin() bool   { return p.Role == user.RoleAdmin }

// OwnsStudent reports whether the principal is the student owning profileID.
func (p Principal) OwnsStudent(profileID uuid.UUID) bool {
	return p.IsStudent() && p.ProfileID != uuid.Nil && p.ProfileID == profileID
}

// OwnsCompany reports whether the principal is the company owning profileID.
func (p Principal) OwnsCompany(profileID uuid.UUID) bool {
	return p.IsCompany() && p.ProfileID != uuid.Nil && p.ProfileID == profileID
}

// CanViewMeeting gates interview meeting credentials: the interview's student,
// its company, or an admin.
func (p Principal) CanViewMeeting(studentID, companyID uuid.UUID) bool {
	if p.IsAdmin() {
		return true
	}
	return p.OwnsStudent(studentID) || p.OwnsCompany(companyID)
}
