package access

import (
	"context"
	"fmt"
	"log/slog"
)

// UserDirectory resolves user identifiers. Implementations return ErrNotFound
// (possibly wrapped) for unknown identifiers.
type UserDirectory interface {
	FindUser(ctx context.Context, id int64) (User, error)
}

// DepartmentDirectory resolves department identifiers. Implementations return
// ErrNotFound (possibly wrapped) for unknown identifiers.
type DepartmentDirectory interface {
	FindDepartment(ctx context.Context, id int64) (Department, error)
}

// RelationOracle answers whether manager transitively manages subordinate in
// the reporting hierarchy.
type RelationOracle interface {
	IsManager(ctx context.Context, manager, subordinate User) (bool, error)
}

// Recorder observes every decision made by the engine.
type Recorder interface {
	ObserveDecision(resource, right string, allowed bool, err error)
}

// Option configures the Engine.
type Option func(*Engine)

// WithLogger emits a debug record per decision.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithRecorder reports decisions to r, typically the metrics registry.
func WithRecorder(r Recorder) Option {
	return func(e *Engine) {
		e.recorder = r
	}
}

// Engine evaluates authorization decisions. It keeps no state between calls
// and is safe for concurrent use.
type Engine struct {
	users       UserDirectory
	departments DepartmentDirectory
	relations   RelationOracle
	logger      *slog.Logger
	recorder    Recorder
}

// NewEngine wires the engine to its collaborators.
func NewEngine(users UserDirectory, departments DepartmentDirectory, relations RelationOracle, opts ...Option) *Engine {
	e := &Engine{
		users:       users,
		departments: departments,
		relations:   relations,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// IsAdmin reports whether the user holds the Admin role.
func (e *Engine) IsAdmin(u User) bool {
	return u.Role == RoleAdmin
}

func hasAdminRights(u User) bool {
	return u.Role == RoleAdmin
}

func hasManagerRights(u User) bool {
	return u.Role == RoleAdmin || u.Role == RoleManager
}

func (e *Engine) user(ctx context.Context, id int64) (User, error) {
	u, err := e.users.FindUser(ctx, id)
	if err != nil {
		return User{}, fmt.Errorf("access: find user %d: %w", id, err)
	}
	return u, nil
}

func (e *Engine) department(ctx context.Context, id int64) (Department, error) {
	d, err := e.departments.FindDepartment(ctx, id)
	if err != nil {
		return Department{}, fmt.Errorf("access: find department %d: %w", id, err)
	}
	return d, nil
}

func (e *Engine) manages(ctx context.Context, manager, subordinate User) (bool, error) {
	ok, err := e.relations.IsManager(ctx, manager, subordinate)
	if err != nil {
		return false, fmt.Errorf("access: relation %d -> %d: %w", manager.ID, subordinate.ID, err)
	}
	return ok, nil
}

func (e *Engine) record(ctx context.Context, resource, right string, actorID int64, allowed bool, err error) {
	if e.recorder != nil {
		e.recorder.ObserveDecision(resource, right, allowed, err)
	}
	if e.logger == nil {
		return
	}
	attrs := []slog.Attr{
		slog.String("resource", resource),
		slog.String("right", right),
		slog.Int64("actor_id", actorID),
		slog.Bool("allowed", allowed),
	}
	if err != nil {
		attrs = append(attrs, slog.Any("error", err))
	}
	e.logger.LogAttrs(ctx, slog.LevelDebug, "access decision", attrs...)
}

func requireID(id *int64, what string) (int64, error) {
	if id == nil {
		return 0, fmt.Errorf("access: %s id required: %w", what, ErrInvalidArgument)
	}
	return *id, nil
}
