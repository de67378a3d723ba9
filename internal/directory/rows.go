package directory

import (
	"errors"
	"fmt"

	"github.com/btto/orgaccess/internal/access"
)

// userRow mirrors a users row joined with its optional company.
type userRow struct {
	ID             *int64
	Role           *string
	CompanyID      *int64
	CompanyName    *string
	CompanyEnabled *bool
}

type departmentRow struct {
	ID             int64
	CompanyID      int64
	CompanyName    string
	CompanyEnabled bool
	Owner          userRow
}

func (r userRow) present() bool {
	return r.ID != nil
}

func (r userRow) toDomain() (access.User, error) {
	if !r.present() {
		return access.User{}, errors.New("directory: user row without id")
	}
	role, err := access.ParseRole(deref(r.Role))
	if err != nil {
		return access.User{}, fmt.Errorf("directory: user %d: %w", *r.ID, err)
	}
	u := access.User{ID: *r.ID, Role: role}
	if r.CompanyID != nil {
		u.Company = &access.Company{
			ID:      *r.CompanyID,
			Name:    deref(r.CompanyName),
			Enabled: deref(r.CompanyEnabled),
		}
	}
	return u, nil
}

func (r departmentRow) toDomain() (access.Department, error) {
	d := access.Department{
		ID: r.ID,
		Company: access.Company{
			ID:      r.CompanyID,
			Name:    r.CompanyName,
			Enabled: r.CompanyEnabled,
		},
	}
	if r.Owner.present() {
		owner, err := r.Owner.toDomain()
		if err != nil {
			return access.Department{}, fmt.Errorf("directory: department %d owner: %w", r.ID, err)
		}
		d.Owner = &owner
	}
	return d, nil
}

func deref[T any](v *T) T {
	var zero T
	if v == nil {
		return zero
	}
	return *v
}
