package domain

import "github.com/google/uuid"

type Role string

const (
	RoleEmployee  Role = "Employee"
	RoleHR        Role = "HR"
	RoleManager   Role = "Manager"
	RoleITSupport Role = "IT Support"
	RoleAdmin     Role = "Admin"
	RoleTeamLead  Role = "Team Lead"
)

var roles = map[Role]struct{}{
	RoleEmployee:  {},
	RoleHR:        {},
	RoleManager:   {},
	RoleITSupport: {},
	RoleAdmin:     {},
	RoleTeamLead:  {},
}

func (r Role) Valid() bool {
	_, ok := roles[r]
	return ok
}

// Actor is the authenticated caller of an operation, as vouched for by the
// identity middleware. Nothing below the transport layer re-verifies it.
type Actor struct {
	ID           uuid.UUID
	Role         Role
	DepartmentID *uuid.UUID
	Email        string
}

func (a Actor) Is(roles ...Role) bool {
	for _, r := range roles {
		if a.Role == r {
			return true
		}
	}
	return false
}

func (a Actor) InDepartment(id uuid.UUID) bool {
	return a.DepartmentID != nil && *a.DepartmentID == id
}
