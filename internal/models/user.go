package models

import "time"

// Role is the business role a user picks during onboarding. Admins are
// promoted through the moderation console, never self-selected.
type Role string

const (
	RoleStaff       Role = "staff"
	RoleSupplier    Role = "supplier"
	RoleManager     Role = "manager"
	RoleDistributor Role = "distributor"
	RoleAdmin       Role = "admin"
	RoleUser        Role = "user"
)

// SelectableRoles are the roles offered on the profile form.
var SelectableRoles = []Role{RoleStaff, RoleSupplier, RoleManager, RoleDistributor, RoleUser}

func (r Role) Valid() bool {
	switch r {
	case RoleStaff, RoleSupplier, RoleManager, RoleDistributor, RoleAdmin, RoleUser:
		return true
	}
	return false
}

// User is the canonical moderation + onboarding record, keyed by account id.
// IsApproved and IsDeclined are never both set by the same write: declining
// clears approval in the same update document.
type User struct {
	ID               string    `bson:"_id,omitempty" json:"id"`
	FirstName        string    `bson:"first_name" json:"first_name"`
	Email            string    `bson:"email" json:"email"`
	Phone            string    `bson:"phone" json:"phone"`
	Role             Role      `bson:"role" json:"role"`
	Birthday         string    `bson:"birthday" json:"birthday"`
	IsApproved       bool      `bson:"is_approved" json:"is_approved"`
	IsDeclined       bool      `bson:"is_declined" json:"is_declined"`
	Description      string    `bson:"description,omitempty" json:"description,omitempty"`
	ProfileCompleted bool      `bson:"profile_completed" json:"profile_completed"`
	UpdatedAt        time.Time `bson:"updated_at" json:"updated_at"`
}
