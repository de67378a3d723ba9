package access_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/btto/orgaccess/internal/access"
)

func TestHasUserRight(t *testing.T) {
	acme := company(1).build()
	globex := company(2).build()
	frozen := company(3).disabled().build()

	dir := newMemoryDirectory()
	peer := dir.addUser(user(20, access.RoleEmployee, acme))
	outsider := dir.addUser(user(30, access.RoleEmployee, globex))
	loner := dir.addUser(user(40, access.RoleEmployee, nil))

	admin := dir.addUser(user(1, access.RoleAdmin, acme))
	manager := dir.addUser(user(2, access.RoleManager, acme))
	employee := dir.addUser(user(3, access.RoleEmployee, acme))
	frozenAdmin := dir.addUser(user(4, access.RoleAdmin, frozen))

	cases := []struct {
		name   string
		actor  access.User
		target *int64
		right  access.UserRight
		want   bool
	}{
		{"self view", employee, id(employee.ID), access.UserView, true},
		{"self view in frozen company", frozenAdmin, id(frozenAdmin.ID), access.UserView, true},
		{"peer view", employee, id(peer.ID), access.UserView, true},
		{"peer status", employee, id(peer.ID), access.UserGetStatus, true},
		{"outsider view", employee, id(outsider.ID), access.UserView, false},
		{"unaffiliated target view", employee, id(loner.ID), access.UserView, false},
		{"frozen admin views peer", frozenAdmin, id(peer.ID), access.UserView, false},
		{"self edit", employee, id(employee.ID), access.UserEdit, true},
		{"admin edits peer", admin, id(peer.ID), access.UserEdit, true},
		{"manager edits peer", manager, id(peer.ID), access.UserEdit, false},
		{"admin edits outsider", admin, id(outsider.ID), access.UserEdit, false},
		{"admin removes self", admin, id(admin.ID), access.UserRemove, true},
		{"frozen admin removes self", frozenAdmin, id(frozenAdmin.ID), access.UserRemove, true},
		{"employee removes self", employee, id(employee.ID), access.UserRemove, false},
		{"admin removes peer", admin, id(peer.ID), access.UserRemove, true},
		{"manager removes peer", manager, id(peer.ID), access.UserRemove, false},
		{"admin creates", admin, nil, access.UserCreate, true},
		{"manager creates", manager, nil, access.UserCreate, false},
		{"frozen admin creates", frozenAdmin, nil, access.UserCreate, false},
		{"self status", employee, id(employee.ID), access.UserSetStatus, true},
		{"admin sets peer status", admin, id(peer.ID), access.UserSetStatus, false},
		{"set status without target", admin, nil, access.UserSetStatus, false},
	}

	engine := access.NewEngine(dir, dir, newStubRelations())
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := engine.HasUserRight(context.Background(), tc.actor, tc.target, tc.right)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestHasUserRight_SelfRemovalNeedsAdmin(t *testing.T) {
	acme := company(1).build()
	dir := newMemoryDirectory()
	engine := access.NewEngine(dir, dir, newStubRelations())

	for _, role := range roles {
		actor := dir.addUser(user(int64(10+role), role, acme))
		got, err := engine.HasUserRight(context.Background(), actor, id(actor.ID), access.UserRemove)
		require.NoError(t, err, role.String())
		assert.Equal(t, role == access.RoleAdmin, got, role.String())
	}
}

func TestHasUserRight_SetStatusIsSelfOnly(t *testing.T) {
	dir := newMemoryDirectory()
	engine := access.NewEngine(dir, dir, newStubRelations())
	companies := []*access.Company{nil, company(1).build(), company(2).disabled().build()}

	for _, role := range roles {
		for _, c := range companies {
			actor := user(7, role, c)
			self, err := engine.HasUserRight(context.Background(), actor, id(7), access.UserSetStatus)
			require.NoError(t, err)
			assert.True(t, self)

			other, err := engine.HasUserRight(context.Background(), actor, id(8), access.UserSetStatus)
			require.NoError(t, err)
			assert.False(t, other)
		}
	}
	assert.Zero(t, dir.userCalls)
}

func TestHasUserRight_UnknownTarget(t *testing.T) {
	dir := newMemoryDirectory()
	engine := access.NewEngine(dir, dir, newStubRelations())
	actor := user(1, access.RoleAdmin, company(1).build())

	for _, right := range []access.UserRight{access.UserView, access.UserGetStatus, access.UserEdit, access.UserRemove} {
		_, err := engine.HasUserRight(context.Background(), actor, id(404), right)
		assert.ErrorIs(t, err, access.ErrNotFound, right.String())
	}
}

func TestHasUserRight_DisabledCompanySkipsLookup(t *testing.T) {
	dir := newMemoryDirectory()
	engine := access.NewEngine(dir, dir, newStubRelations())
	actor := user(1, access.RoleAdmin, company(1).disabled().build())

	got, err := engine.HasUserRight(context.Background(), actor, id(404), access.UserEdit)
	require.NoError(t, err)
	assert.False(t, got)
	assert.Zero(t, dir.userCalls)
}

func TestHasUserRight_RequiresUserID(t *testing.T) {
	dir := newMemoryDirectory()
	engine := access.NewEngine(dir, dir, newStubRelations())
	actor := user(1, access.RoleAdmin, company(1).build())

	for _, right := range []access.UserRight{access.UserView, access.UserGetStatus, access.UserEdit, access.UserRemove} {
		_, err := engine.HasUserRight(context.Background(), actor, nil, right)
		assert.ErrorIs(t, err, access.ErrInvalidArgument, right.String())
	}
}
