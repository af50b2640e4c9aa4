package user

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"    // HR/admin - full access, records manual entries
	RoleManager  Role = "manager"  // Can approve leave requests
	RoleEmployee Role = "employee" // Regular employee
)

// IsAdmin reports whether the role is the HR admin role.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// CanApprove reports whether the role may approve leave requests.
func (r Role) CanApprove() bool {
	return r == RoleAdmin || r == RoleManager
}

type User struct {
	ID              string
	Email           string
	PasswordHash    *string
	FullName        string
	Role            Role
	Timezone        string // IANA name, used to resolve the employee's calendar day
	OAuthProvider   *string
	OAuthProviderID *string
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
