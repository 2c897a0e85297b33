package entities

import "strings"

type Role string

const (
	RoleCompanyEmployee Role = "company_employee"
	RoleClient          Role = "client"
	RoleContractor      Role = "contractor"
)

// Principal is the authenticated actor performing an operation. It is
// produced by the identity collaborator and threaded explicitly through
// every core call; nothing in the workflow reads ambient auth state.
type Principal struct {
	ID        string
	Role      Role
	CompanyID string
}

func (r Role) Valid() bool {
	switch r {
	case RoleCompanyEmployee, RoleClient, RoleContractor:
		return true
	default:
		return false
	}
}

func ParseRole(raw string) (Role, bool) {
	role := Role(strings.TrimSpace(strings.ToLower(raw)))
	if !role.Valid() {
		return "", false
	}
	return role, true
}

func (p Principal) Valid() bool {
	if strings.TrimSpace(p.ID) == "" || !p.Role.Valid() {
		return false
	}
	// Client principals are meaningless without a company affiliation.
	if p.Role == RoleClient && strings.TrimSpace(p.CompanyID) == "" {
		return false
	}
	return true
}
