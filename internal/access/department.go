package access

import (
	"context"
	"fmt"
)

// HasDepartmentRight decides whether actor may perform right on the department
// identified by departmentID. DepartmentCreate ignores departmentID. Members
// of unaffiliated or disabled companies are denied before any lookup.
func (e *Engine) HasDepartmentRight(ctx context.Context, actor User, departmentID *int64, right DepartmentRight) (bool, error) {
	allowed, err := e.departmentRight(ctx, actor, departmentID, right)
	e.record(ctx, "department", right.String(), actor.ID, allowed, err)
	return allowed, err
}

func (e *Engine) departmentRight(ctx context.Context, actor User, departmentID *int64, right DepartmentRight) (bool, error) {
	if !right.Valid() {
		return false, fmt.Errorf("access: department right %d: %w", int(right), ErrInvalidArgument)
	}
	company, ok := enabledCompany(actor)
	if !ok {
		return false, nil
	}
	if right == DepartmentCreate {
		return hasManagerRights(actor), nil
	}

	id, err := requireID(departmentID, "department")
	if err != nil {
		return false, err
	}
	subject, err := e.department(ctx, id)
	if err != nil {
		return false, err
	}
	if subject.Company.ID != company.ID {
		return false, nil
	}
	if right == DepartmentView {
		return true, nil
	}
	if hasAdminRights(actor) {
		return true, nil
	}
	if !hasManagerRights(actor) {
		return false, nil
	}

	owner, owned := subject.OwnerOf()
	switch right {
	case DepartmentEdit, DepartmentRemove:
		return owned && owner.ID == actor.ID, nil
	case DepartmentAssign:
		if !owned || owner.ID == actor.ID {
			return true, nil
		}
		return e.manages(ctx, actor, owner)
	case DepartmentAddParticipant:
		if !owned {
			return false, nil
		}
		if owner.ID == actor.ID {
			return true, nil
		}
		return e.manages(ctx, actor, owner)
	}
	return false, nil
}
