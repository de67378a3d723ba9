package access

import (
	"fmt"
	"strings"
)

// Role is the coarse capability level held by a user.
type Role int

const (
	RoleEmployee Role = iota
	RoleManager
	RoleAdmin
)

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "Admin"
	case RoleManager:
		return "Manager"
	case RoleEmployee:
		return "Employee"
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}

// ParseRole converts a stored role name into a Role.
func ParseRole(raw string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "admin":
		return RoleAdmin, nil
	case "manager":
		return RoleManager, nil
	case "employee":
		return RoleEmployee, nil
	}
	return 0, fmt.Errorf("access: unknown role %q: %w", raw, ErrInvalidArgument)
}

// Company is a tenant. A disabled company is soft-deleted or suspended.
type Company struct {
	ID      int64
	Name    string
	Enabled bool
}

// User is the snapshot of an account the engine reasons over.
type User struct {
	ID   int64
	Role Role
	// Company is nil for unaffiliated users.
	Company *Company
}

// CompanyOf returns the user's company when present.
func (u User) CompanyOf() (Company, bool) {
	if u.Company == nil {
		return Company{}, false
	}
	return *u.Company, true
}

// Department belongs to exactly one company and may have an owner.
type Department struct {
	ID      int64
	Company Company
	Owner   *User
}

// OwnerOf returns the department owner when present.
func (d Department) OwnerOf() (User, bool) {
	if d.Owner == nil {
		return User{}, false
	}
	return *d.Owner, true
}

// enabledCompany returns the user's company only when it is enabled.
func enabledCompany(u User) (Company, bool) {
	company, ok := u.CompanyOf()
	if !ok || !company.Enabled {
		return Company{}, false
	}
	return company, true
}

func sameCompany(u User, companyID int64) bool {
	company, ok := u.CompanyOf()
	return ok && company.ID == companyID
}
