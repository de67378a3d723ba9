package access

import (
	"context"
	"fmt"
)

// HasWorkDayRight decides whether actor may perform right on the work-time
// records owned by ownerID. Both users must share an enabled company.
//
// WorkDayAddTime is not granted to the owner on identity alone: added time
// needs an admin or someone above the owner in the hierarchy.
func (e *Engine) HasWorkDayRight(ctx context.Context, actor User, ownerID int64, right WorkDayRight) (bool, error) {
	allowed, err := e.workDayRight(ctx, actor, ownerID, right)
	e.record(ctx, "work_day", right.String(), actor.ID, allowed, err)
	return allowed, err
}

func (e *Engine) workDayRight(ctx context.Context, actor User, ownerID int64, right WorkDayRight) (bool, error) {
	if !right.Valid() {
		return false, fmt.Errorf("access: work day right %d: %w", int(right), ErrInvalidArgument)
	}
	company, ok := enabledCompany(actor)
	if !ok {
		return false, nil
	}
	owner, err := e.user(ctx, ownerID)
	if err != nil {
		return false, err
	}
	if !sameCompany(owner, company.ID) {
		return false, nil
	}

	if hasAdminRights(actor) {
		return true, nil
	}
	switch right {
	case WorkDayView, WorkDaySubtractTime:
		if actor.ID == ownerID {
			return true, nil
		}
		return e.manages(ctx, actor, owner)
	case WorkDayAddTime:
		return e.manages(ctx, actor, owner)
	}
	return false, nil
}
