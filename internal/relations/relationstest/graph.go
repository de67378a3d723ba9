// Package relationstest provides an in-memory RelationOracle for tests that
// need a management hierarchy without Postgres.
package relationstest

import (
	"context"
	"sync"

	"github.com/btto/orgaccess/internal/access"
)

// Graph is an in-memory reporting hierarchy. Edges point from a subordinate
// to its direct managers. Cycles are tolerated and never loop the traversal;
// a user is never reported as their own manager.
type Graph struct {
	mu       sync.RWMutex
	managers map[int64]map[int64]struct{}
}

// NewGraph returns an empty hierarchy.
func NewGraph() *Graph {
	return &Graph{managers: make(map[int64]map[int64]struct{})}
}

// Link records manager as a direct manager of subordinate.
func (g *Graph) Link(manager, subordinate int64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	set := g.managers[subordinate]
	if set == nil {
		set = make(map[int64]struct{})
		g.managers[subordinate] = set
	}
	set[manager] = struct{}{}
}

// Unlink removes a direct reporting line.
func (g *Graph) Unlink(manager, subordinate int64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.managers[subordinate], manager)
}

// IsManager walks up from subordinate and reports whether manager is reached.
func (g *Graph) IsManager(ctx context.Context, manager, subordinate access.User) (bool, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	visited := map[int64]struct{}{subordinate.ID: {}}
	queue := []int64{subordinate.ID}
	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		current := queue[0]
		queue = queue[1:]
		for next := range g.managers[current] {
			if _, seen := visited[next]; seen {
				continue
			}
			if next == manager.ID {
				return true, nil
			}
			visited[next] = struct{}{}
			queue = append(queue, next)
		}
	}
	return false, nil
}
