package domain

import "time"

// Role enumerates the three account kinds. It is fixed at registration.
type Role string

const (
	RolePublisher Role = "publisher"
	RoleApplicant Role = "applicant"
	RoleApprover  Role = "approver"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RolePublisher, RoleApplicant, RoleApprover:
		return true
	default:
		return false
	}
}

// User is an account that publishes, applies or adjudicates.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
