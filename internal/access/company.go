package access

import (
	"context"
	"fmt"
)

// HasCompanyRight decides whether actor may perform right on the company
// identified by companyID. CompanyCreate ignores companyID.
func (e *Engine) HasCompanyRight(ctx context.Context, actor User, companyID *int64, right CompanyRight) (bool, error) {
	allowed, err := e.companyRight(actor, companyID, right)
	e.record(ctx, "company", right.String(), actor.ID, allowed, err)
	return allowed, err
}

func (e *Engine) companyRight(actor User, companyID *int64, right CompanyRight) (bool, error) {
	switch right {
	case CompanyView:
		id, err := requireID(companyID, "company")
		if err != nil {
			return false, err
		}
		company, ok := actor.CompanyOf()
		if !ok {
			return false, nil
		}
		// Admins keep sight of their own company after it is disabled.
		if hasAdminRights(actor) || company.Enabled {
			return company.ID == id, nil
		}
		return false, nil
	case CompanyEdit, CompanyRemove:
		id, err := requireID(companyID, "company")
		if err != nil {
			return false, err
		}
		company, ok := actor.CompanyOf()
		if !ok {
			return false, nil
		}
		return hasAdminRights(actor) && company.ID == id, nil
	case CompanyCreate:
		company, ok := actor.CompanyOf()
		return hasAdminRights(actor) && (!ok || !company.Enabled), nil
	default:
		return false, fmt.Errorf("access: company right %d: %w", int(right), ErrInvalidArgument)
	}
}
