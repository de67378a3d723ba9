package access_test

import (
	"context"
	"errors"
	"fmt"

	"github.com/btto/orgaccess/internal/access"
)

type memoryDirectory struct {
	users       map[int64]access.User
	departments map[int64]access.Department
	userCalls   int
	deptCalls   int
}

func newMemoryDirectory() *memoryDirectory {
	return &memoryDirectory{
		users:       make(map[int64]access.User),
		departments: make(map[int64]access.Department),
	}
}

func (d *memoryDirectory) FindUser(ctx context.Context, id int64) (access.User, error) {
	d.userCalls++
	u, ok := d.users[id]
	if !ok {
		return access.User{}, fmt.Errorf("user %d: %w", id, access.ErrNotFound)
	}
	return u, nil
}

func (d *memoryDirectory) FindDepartment(ctx context.Context, id int64) (access.Department, error) {
	d.deptCalls++
	dept, ok := d.departments[id]
	if !ok {
		return access.Department{}, fmt.Errorf("department %d: %w", id, access.ErrNotFound)
	}
	return dept, nil
}

func (d *memoryDirectory) addUser(u access.User) access.User {
	d.users[u.ID] = u
	return u
}

func (d *memoryDirectory) addDepartment(dept access.Department) access.Department {
	d.departments[dept.ID] = dept
	return dept
}

// stubRelations answers IsManager from an explicit set of (manager, subordinate) pairs.
type stubRelations struct {
	pairs map[[2]int64]bool
	err   error
	calls int
}

func newStubRelations() *stubRelations {
	return &stubRelations{pairs: make(map[[2]int64]bool)}
}

func (r *stubRelations) manages(manager, subordinate int64) *stubRelations {
	r.pairs[[2]int64{manager, subordinate}] = true
	return r
}

func (r *stubRelations) IsManager(ctx context.Context, manager, subordinate access.User) (bool, error) {
	r.calls++
	if r.err != nil {
		return false, r.err
	}
	return r.pairs[[2]int64{manager.ID, subordinate.ID}], nil
}

type companyBuilder struct {
	company access.Company
}

func company(id int64) *companyBuilder {
	return &companyBuilder{company: access.Company{ID: id, Name: fmt.Sprintf("company-%d", id), Enabled: true}}
}

func (b *companyBuilder) disabled() *companyBuilder {
	b.company.Enabled = false
	return b
}

func (b *companyBuilder) build() *access.Company {
	c := b.company
	return &c
}

func user(id int64, role access.Role, c *access.Company) access.User {
	return access.User{ID: id, Role: role, Company: c}
}

func department(id int64, c *access.Company, owner *access.User) access.Department {
	return access.Department{ID: id, Company: *c, Owner: owner}
}

func id(v int64) *int64 {
	return &v
}

type recordedDecision struct {
	resource string
	right    string
	allowed  bool
	err      error
}

type memoryRecorder struct {
	decisions []recordedDecision
}

func (r *memoryRecorder) ObserveDecision(resource, right string, allowed bool, err error) {
	r.decisions = append(r.decisions, recordedDecision{resource: resource, right: right, allowed: allowed, err: err})
}

var errRelationsDown = errors.New("relations unavailable")

var roles = []access.Role{access.RoleAdmin, access.RoleManager, access.RoleEmployee}
