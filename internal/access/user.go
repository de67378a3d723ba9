package access

import (
	"context"
	"fmt"
)

// HasUserRight decides whether actor may perform right on the user identified
// by userID. UserCreate ignores userID; UserSetStatus denies a nil userID.
func (e *Engine) HasUserRight(ctx context.Context, actor User, userID *int64, right UserRight) (bool, error) {
	allowed, err := e.userRight(ctx, actor, userID, right)
	e.record(ctx, "user", right.String(), actor.ID, allowed, err)
	return allowed, err
}

func (e *Engine) userRight(ctx context.Context, actor User, userID *int64, right UserRight) (bool, error) {
	switch right {
	case UserView, UserGetStatus:
		id, err := requireID(userID, "user")
		if err != nil {
			return false, err
		}
		if actor.ID == id {
			return true, nil
		}
		return e.sharesEnabledCompany(ctx, actor, id)
	case UserEdit:
		id, err := requireID(userID, "user")
		if err != nil {
			return false, err
		}
		if actor.ID == id {
			return true, nil
		}
		return e.adminOverColleague(ctx, actor, id)
	case UserRemove:
		id, err := requireID(userID, "user")
		if err != nil {
			return false, err
		}
		if actor.ID == id && hasAdminRights(actor) {
			return true, nil
		}
		return e.adminOverColleague(ctx, actor, id)
	case UserCreate:
		if _, ok := enabledCompany(actor); !ok {
			return false, nil
		}
		return hasAdminRights(actor), nil
	case UserSetStatus:
		return userID != nil && actor.ID == *userID, nil
	default:
		return false, fmt.Errorf("access: user right %d: %w", int(right), ErrInvalidArgument)
	}
}

// sharesEnabledCompany reports whether the target user belongs to the actor's
// company, provided that company is enabled.
func (e *Engine) sharesEnabledCompany(ctx context.Context, actor User, targetID int64) (bool, error) {
	company, ok := enabledCompany(actor)
	if !ok {
		return false, nil
	}
	target, err := e.user(ctx, targetID)
	if err != nil {
		return false, err
	}
	return sameCompany(target, company.ID), nil
}

func (e *Engine) adminOverColleague(ctx context.Context, actor User, targetID int64) (bool, error) {
	colleague, err := e.sharesEnabledCompany(ctx, actor, targetID)
	if err != nil {
		return false, err
	}
	return colleague && hasAdminRights(actor), nil
}
