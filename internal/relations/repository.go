package relations

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/btto/orgaccess/internal/access"
)

// DefaultMaxDepth bounds the hierarchy walk in Postgres.
const DefaultMaxDepth = 64

// The walk climbs user_relations from the subordinate. The path array stops
// revisiting a manager, so cyclic data terminates without the depth bound.
const isManagerQuery = `
WITH RECURSIVE chain (manager_id, path, depth) AS (
    SELECT r.manager_id, ARRAY[r.subordinate_id, r.manager_id], 1
    FROM user_relations r
    WHERE r.subordinate_id = $1 AND r.manager_id <> r.subordinate_id
  UNION ALL
    SELECT r.manager_id, c.path || r.manager_id, c.depth + 1
    FROM user_relations r
    JOIN chain c ON r.subordinate_id = c.manager_id
    WHERE NOT r.manager_id = ANY(c.path) AND c.depth < $3
)
SELECT EXISTS (SELECT 1 FROM chain WHERE manager_id = $2)`

// Repository answers relation queries against the user_relations table
// maintained by the organization service.
type Repository struct {
	pool     *pgxpool.Pool
	maxDepth int
}

// NewRepository constructs a repository. maxDepth <= 0 selects DefaultMaxDepth.
func NewRepository(pool *pgxpool.Pool, maxDepth int) *Repository {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Repository{pool: pool, maxDepth: maxDepth}
}

// IsManager reports whether manager transitively manages subordinate.
func (r *Repository) IsManager(ctx context.Context, manager, subordinate access.User) (bool, error) {
	var found bool
	if err := r.pool.QueryRow(ctx, isManagerQuery, subordinate.ID, manager.ID, r.maxDepth).Scan(&found); err != nil {
		return false, fmt.Errorf("relations: is manager: %w", err)
	}
	return found, nil
}
