package access

import "context"

// CanAddToDepartment reports whether the user may join the department as a
// participant. A user who already manages the department owner, directly or
// transitively, is rejected so the reporting graph stays acyclic.
func (e *Engine) CanAddToDepartment(ctx context.Context, userID, departmentID int64) (bool, error) {
	allowed, err := e.canAdd(ctx, userID, departmentID)
	e.record(ctx, "department_membership", "ADD", userID, allowed, err)
	return allowed, err
}

// CanRemoveFromDepartment reports whether the user may leave the department
// as a participant. The owner cannot be removed this way.
func (e *Engine) CanRemoveFromDepartment(ctx context.Context, userID, departmentID int64) (bool, error) {
	allowed, err := e.canRemove(ctx, userID, departmentID)
	e.record(ctx, "department_membership", "REMOVE", userID, allowed, err)
	return allowed, err
}

func (e *Engine) canAdd(ctx context.Context, userID, departmentID int64) (bool, error) {
	user, err := e.user(ctx, userID)
	if err != nil {
		return false, err
	}
	department, err := e.department(ctx, departmentID)
	if err != nil {
		return false, err
	}
	if !membershipPossible(user, department) {
		return false, nil
	}
	if owner, ok := department.OwnerOf(); ok && owner.ID != userID {
		manages, err := e.manages(ctx, user, owner)
		if err != nil {
			return false, err
		}
		return !manages, nil
	}
	return true, nil
}

func (e *Engine) canRemove(ctx context.Context, userID, departmentID int64) (bool, error) {
	department, err := e.department(ctx, departmentID)
	if err != nil {
		return false, err
	}
	user, err := e.user(ctx, userID)
	if err != nil {
		return false, err
	}
	if !membershipPossible(user, department) {
		return false, nil
	}
	owner, ok := department.OwnerOf()
	return !ok || owner.ID != userID, nil
}

// membershipPossible requires the user and department to share one enabled company.
func membershipPossible(user User, department Department) bool {
	company, ok := enabledCompany(user)
	if !ok || !department.Company.Enabled {
		return false
	}
	return company.ID == department.Company.ID
}
