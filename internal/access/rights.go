package access

import (
	"fmt"
	"strings"
)

// CompanyRight enumerates actions on companies.
type CompanyRight int

const (
	CompanyView CompanyRight = iota + 1
	CompanyEdit
	CompanyRemove
	CompanyCreate
)

// UserRight enumerates actions on users.
type UserRight int

const (
	UserView UserRight = iota + 1
	UserGetStatus
	UserEdit
	UserRemove
	UserCreate
	UserSetStatus
)

// DepartmentRight enumerates actions on departments.
type DepartmentRight int

const (
	DepartmentView DepartmentRight = iota + 1
	DepartmentEdit
	DepartmentRemove
	DepartmentCreate
	DepartmentAssign
	DepartmentAddParticipant
)

// WorkDayRight enumerates actions on work-time records.
type WorkDayRight int

const (
	WorkDayView WorkDayRight = iota + 1
	WorkDayAddTime
	WorkDaySubtractTime
)

var (
	companyRightNames = map[CompanyRight]string{
		CompanyView:   "VIEW",
		CompanyEdit:   "EDIT",
		CompanyRemove: "REMOVE",
		CompanyCreate: "CREATE",
	}
	userRightNames = map[UserRight]string{
		UserView:      "VIEW",
		UserGetStatus: "GET_STATUS",
		UserEdit:      "EDIT",
		UserRemove:    "REMOVE",
		UserCreate:    "CREATE",
		UserSetStatus: "SET_STATUS",
	}
	departmentRightNames = map[DepartmentRight]string{
		DepartmentView:           "VIEW",
		DepartmentEdit:           "EDIT",
		DepartmentRemove:         "REMOVE",
		DepartmentCreate:         "CREATE",
		DepartmentAssign:         "ASSIGN",
		DepartmentAddParticipant: "ADD_PARTICIPANT",
	}
	workDayRightNames = map[WorkDayRight]string{
		WorkDayView:         "VIEW",
		WorkDayAddTime:      "ADD_TIME",
		WorkDaySubtractTime: "SUBTRACT_TIME",
	}
)

func (r CompanyRight) String() string    { return rightName(companyRightNames, r) }
func (r UserRight) String() string       { return rightName(userRightNames, r) }
func (r DepartmentRight) String() string { return rightName(departmentRightNames, r) }
func (r WorkDayRight) String() string    { return rightName(workDayRightNames, r) }

// Valid reports whether r is a declared CompanyRight.
func (r CompanyRight) Valid() bool {
	_, ok := companyRightNames[r]
	return ok
}

// Valid reports whether r is a declared UserRight.
func (r UserRight) Valid() bool {
	_, ok := userRightNames[r]
	return ok
}

// Valid reports whether r is a declared DepartmentRight.
func (r DepartmentRight) Valid() bool {
	_, ok := departmentRightNames[r]
	return ok
}

// Valid reports whether r is a declared WorkDayRight.
func (r WorkDayRight) Valid() bool {
	_, ok := workDayRightNames[r]
	return ok
}

// AllCompanyRights lists every CompanyRight in declaration order.
func AllCompanyRights() []CompanyRight {
	return []CompanyRight{CompanyView, CompanyEdit, CompanyRemove, CompanyCreate}
}

// AllUserRights lists every UserRight in declaration order.
func AllUserRights() []UserRight {
	return []UserRight{UserView, UserGetStatus, UserEdit, UserRemove, UserCreate, UserSetStatus}
}

// AllDepartmentRights lists every DepartmentRight in declaration order.
func AllDepartmentRights() []DepartmentRight {
	return []DepartmentRight{DepartmentView, DepartmentEdit, DepartmentRemove, DepartmentCreate, DepartmentAssign, DepartmentAddParticipant}
}

// AllWorkDayRights lists every WorkDayRight in declaration order.
func AllWorkDayRights() []WorkDayRight {
	return []WorkDayRight{WorkDayView, WorkDayAddTime, WorkDaySubtractTime}
}

// ParseCompanyRight accepts names such as "view" or "REMOVE".
func ParseCompanyRight(raw string) (CompanyRight, error) {
	return parseRight(companyRightNames, "company", raw)
}

// ParseUserRight accepts names such as "get_status" or "SET-STATUS".
func ParseUserRight(raw string) (UserRight, error) {
	return parseRight(userRightNames, "user", raw)
}

// ParseDepartmentRight accepts names such as "assign" or "add_participant".
func ParseDepartmentRight(raw string) (DepartmentRight, error) {
	return parseRight(departmentRightNames, "department", raw)
}

// ParseWorkDayRight accepts names such as "add_time".
func ParseWorkDayRight(raw string) (WorkDayRight, error) {
	return parseRight(workDayRightNames, "work day", raw)
}

func rightName[R ~int](names map[R]string, r R) string {
	if name, ok := names[r]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%d)", int(r))
}

func parseRight[R ~int](names map[R]string, kind, raw string) (R, error) {
	normalized := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(raw), "-", "_"))
	for right, name := range names {
		if name == normalized {
			return right, nil
		}
	}
	return 0, fmt.Errorf("access: unknown %s right %q: %w", kind, raw, ErrInvalidArgument)
}
