package directory

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/btto/orgaccess/internal/access"
)

const findUserQuery = `
SELECT u.id, u.role, c.id, c.name, c.enabled
FROM users u
LEFT JOIN companies c ON c.id = u.company_id
WHERE u.id = $1`

const findDepartmentQuery = `
SELECT d.id, c.id, c.name, c.enabled,
       o.id, o.role, oc.id, oc.name, oc.enabled
FROM departments d
JOIN companies c ON c.id = d.company_id
LEFT JOIN users o ON o.id = d.owner_id
LEFT JOIN companies oc ON oc.id = o.company_id
WHERE d.id = $1`

// Repository resolves users and departments from the tables owned by the
// organization service.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// FindUser loads a user with its company.
func (r *Repository) FindUser(ctx context.Context, id int64) (access.User, error) {
	var row userRow
	err := r.pool.QueryRow(ctx, findUserQuery, id).Scan(
		&row.ID, &row.Role, &row.CompanyID, &row.CompanyName, &row.CompanyEnabled,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return access.User{}, fmt.Errorf("directory: user %d: %w", id, access.ErrNotFound)
		}
		return access.User{}, fmt.Errorf("directory: find user: %w", err)
	}
	return row.toDomain()
}

// FindDepartment loads a department with its company and owner.
func (r *Repository) FindDepartment(ctx context.Context, id int64) (access.Department, error) {
	var row departmentRow
	err := r.pool.QueryRow(ctx, findDepartmentQuery, id).Scan(
		&row.ID, &row.CompanyID, &row.CompanyName, &row.CompanyEnabled,
		&row.Owner.ID, &row.Owner.Role, &row.Owner.CompanyID, &row.Owner.CompanyName, &row.Owner.CompanyEnabled,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return access.Department{}, fmt.Errorf("directory: department %d: %w", id, access.ErrNotFound)
		}
		return access.Department{}, fmt.Errorf("directory: find department: %w", err)
	}
	return row.toDomain()
}
