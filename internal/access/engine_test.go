package access_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/btto/orgaccess/internal/access"
)

// Scenarios lifted from the product requirements for the access engine.
func TestEngineScenarios(t *testing.T) {
	ctx := context.Background()
	acme := company(1).build()
	globex := company(2).build()

	dir := newMemoryDirectory()
	employee := dir.addUser(user(1, access.RoleEmployee, acme))
	m := dir.addUser(user(2, access.RoleManager, acme))
	n := dir.addUser(user(3, access.RoleManager, acme))
	o := dir.addUser(user(4, access.RoleManager, acme))
	relations := newStubRelations().manages(m.ID, o.ID)

	ownedByM := dir.addDepartment(department(10, acme, &m))
	ownedByO := dir.addDepartment(department(11, acme, &o))
	foreign := dir.addDepartment(department(12, globex, nil))
	engine := access.NewEngine(dir, dir, relations)

	t.Run("admin without company may create a company", func(t *testing.T) {
		got, err := engine.HasCompanyRight(ctx, user(9, access.RoleAdmin, nil), nil, access.CompanyCreate)
		require.NoError(t, err)
		assert.True(t, got)
	})

	t.Run("employee views departments of own company only", func(t *testing.T) {
		got, err := engine.HasDepartmentRight(ctx, employee, id(ownedByM.ID), access.DepartmentView)
		require.NoError(t, err)
		assert.True(t, got)
		got, err = engine.HasDepartmentRight(ctx, employee, id(foreign.ID), access.DepartmentView)
		require.NoError(t, err)
		assert.False(t, got)
	})

	t.Run("owner edits, unrelated manager does not", func(t *testing.T) {
		got, err := engine.HasDepartmentRight(ctx, m, id(ownedByM.ID), access.DepartmentEdit)
		require.NoError(t, err)
		assert.True(t, got)
		got, err = engine.HasDepartmentRight(ctx, n, id(ownedByM.ID), access.DepartmentEdit)
		require.NoError(t, err)
		assert.False(t, got)
	})

	t.Run("manager reassigns away from subordinate owner", func(t *testing.T) {
		got, err := engine.HasDepartmentRight(ctx, m, id(ownedByO.ID), access.DepartmentAssign)
		require.NoError(t, err)
		assert.True(t, got)
	})

	t.Run("self add time is never granted by identity", func(t *testing.T) {
		got, err := engine.HasWorkDayRight(ctx, m, m.ID, access.WorkDayAddTime)
		require.NoError(t, err)
		assert.False(t, got)
	})

	t.Run("unknown department raises not found", func(t *testing.T) {
		_, err := engine.HasDepartmentRight(ctx, m, id(404), access.DepartmentEdit)
		assert.ErrorIs(t, err, access.ErrNotFound)
	})

	t.Run("manager of owner cannot join as participant", func(t *testing.T) {
		got, err := engine.CanAddToDepartment(ctx, m.ID, ownedByO.ID)
		require.NoError(t, err)
		assert.False(t, got)
	})
}

func TestIsAdmin(t *testing.T) {
	engine := access.NewEngine(nil, nil, nil)
	assert.True(t, engine.IsAdmin(user(1, access.RoleAdmin, nil)))
	assert.False(t, engine.IsAdmin(user(1, access.RoleManager, nil)))
	assert.False(t, engine.IsAdmin(user(1, access.RoleEmployee, nil)))
}

func TestEngineRecordsDecisions(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	recorder := &memoryRecorder{}
	dir := newMemoryDirectory()
	engine := access.NewEngine(dir, dir, newStubRelations(), access.WithLogger(logger), access.WithRecorder(recorder))
	actor := user(1, access.RoleEmployee, company(1).build())

	_, err := engine.HasUserRight(context.Background(), actor, id(1), access.UserSetStatus)
	require.NoError(t, err)
	_, err = engine.HasDepartmentRight(context.Background(), actor, id(404), access.DepartmentView)
	require.Error(t, err)

	require.Len(t, recorder.decisions, 2)
	assert.Equal(t, recordedDecision{resource: "user", right: "SET_STATUS", allowed: true}, recorder.decisions[0])
	assert.Equal(t, "department", recorder.decisions[1].resource)
	assert.ErrorIs(t, recorder.decisions[1].err, access.ErrNotFound)
	assert.Contains(t, buf.String(), `"msg":"access decision"`)
	assert.Contains(t, buf.String(), `"right":"SET_STATUS"`)
}

func TestParseRights(t *testing.T) {
	right, err := access.ParseUserRight("set-status")
	require.NoError(t, err)
	assert.Equal(t, access.UserSetStatus, right)

	dept, err := access.ParseDepartmentRight("add_participant")
	require.NoError(t, err)
	assert.Equal(t, access.DepartmentAddParticipant, dept)

	_, err = access.ParseWorkDayRight("approve")
	assert.ErrorIs(t, err, access.ErrInvalidArgument)

	role, err := access.ParseRole(" Manager ")
	require.NoError(t, err)
	assert.Equal(t, access.RoleManager, role)

	for _, r := range access.AllCompanyRights() {
		parsed, err := access.ParseCompanyRight(r.String())
		require.NoError(t, err)
		assert.Equal(t, r, parsed)
	}
	assert.False(t, access.WorkDayRight(0).Valid())
}
