package store_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promanage/promanage/internal/model"
	"github.com/promanage/promanage/internal/store"
	"github.com/promanage/promanage/tests/testutil"
)

func TestLoginMatchesUsernameCaseInsensitively(t *testing.T) {
	s := testutil.NewTestStore(t)

	u, ok := s.Login("  ADMIN ")
	require.True(t, ok)
	assert.Equal(t, store.SeedAdmin, u.ID)
	assert.Equal(t, model.RoleManagement, u.Role)

	current, ok := s.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, u, current)
}

func TestLoginMissLeavesSessionUnchanged(t *testing.T) {
	s := testutil.NewTestStoreAs(t, "lead1")

	_, ok := s.Login("nobody")
	assert.False(t, ok)

	current, ok := s.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, store.SeedLead1, current.ID)
}

func TestLoginRecordsActivity(t *testing.T) {
	s := testutil.NewTestStore(t)

	_, ok := s.Login("dev1")
	require.True(t, ok)

	entries := s.Activity()
	require.NotEmpty(t, entries)
	assert.Equal(t, store.SeedDev1, entries[0].UserID)
	assert.Equal(t, "signed in", entries[0].Action)
}

func TestLogoutIsIdempotent(t *testing.T) {
	s := testutil.NewTestStoreAs(t, "admin")

	s.Logout()
	_, ok := s.CurrentUser()
	assert.False(t, ok)

	s.Logout()
	_, ok = s.CurrentUser()
	assert.False(t, ok)
}

func TestAddProjectForcesProgressToZero(t *testing.T) {
	s := testutil.NewTestStoreAs(t, "lead1")

	p, err := s.AddProject(store.ProjectInput{
		Name:         "Search Relevance",
		Description:  "Tune the ranking pipeline.",
		StartDate:    time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC),
		Deadline:     time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
		Priority:     model.PriorityHigh,
		Status:       model.ProjectPlanning,
		LeadID:       store.SeedLead1,
		DeveloperIDs: []string{store.SeedDev1},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, 0, p.Progress)

	got, ok := s.ProjectByID(p.ID)
	require.True(t, ok)
	assert.Equal(t, p.Name, got.Name)
}

func TestAddProjectRequiresCapability(t *testing.T) {
	s := testutil.NewTestStoreAs(t, "dev1")

	_, err := s.AddProject(store.ProjectInput{Name: "Forbidden"})
	require.ErrorIs(t, err, store.ErrNotAuthorized)
	assert.Len(t, s.Projects(), 6)
}

func TestAddProjectRequiresSession(t *testing.T) {
	s := testutil.NewTestStore(t)

	_, err := s.AddProject(store.ProjectInput{Name: "Nobody home"})
	assert.ErrorIs(t, err, store.ErrNotLoggedIn)
}

func TestUpdateProjectPatchesOnlyGivenFields(t *testing.T) {
	s := testutil.NewTestStoreAs(t, "lead1")

	before, ok := s.ProjectByID("p-atlas")
	require.True(t, ok)

	progress := 70
	status := model.ProjectReview
	err := s.UpdateProject("p-atlas", store.ProjectPatch{
		Progress: &progress,
		Status:   &status,
	})
	require.NoError(t, err)

	after, ok := s.ProjectByID("p-atlas")
	require.True(t, ok)
	assert.Equal(t, 70, after.Progress)
	assert.Equal(t, model.ProjectReview, after.Status)
	assert.Equal(t, before.Name, after.Name)
	assert.Equal(t, before.Deadline, after.Deadline)
	assert.Equal(t, before.DeveloperIDs, after.DeveloperIDs)
}

func TestUpdateProjectRejectsOutOfRangeProgress(t *testing.T) {
	s := testutil.NewTestStoreAs(t, "lead1")

	progress := 101
	err := s.UpdateProject("p-atlas", store.ProjectPatch{Progress: &progress})

	var verr *store.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "progress", verr.Field)

	got, _ := s.ProjectByID("p-atlas")
	assert.Equal(t, 45, got.Progress)
}

func TestUpdateProjectMissingIDIsNoOp(t *testing.T) {
	s := testutil.NewTestStoreAs(t, "lead1")

	name := "Ghost"
	err := s.UpdateProject("p-missing", store.ProjectPatch{Name: &name})
	assert.NoError(t, err)
	assert.Len(t, s.Projects(), 6)
}

func TestDeleteProjectCascadesToTasks(t *testing.T) {
	s := testutil.NewTestStoreAs(t, "admin")

	require.NoError(t, s.DeleteProject("p-atlas"))

	_, ok := s.ProjectByID("p-atlas")
	assert.False(t, ok)

	for _, task := range s.Tasks() {
		assert.NotEqual(t, "p-atlas", task.ProjectID)
	}
	assert.Len(t, s.Tasks(), 5)
}

func TestDeleteProjectDeniedForDeveloper(t *testing.T) {
	s := testutil.NewTestStoreAs(t, "dev2")

	err := s.DeleteProject("p-atlas")
	require.ErrorIs(t, err, store.ErrNotAuthorized)

	_, ok := s.ProjectByID("p-atlas")
	assert.True(t, ok)
}

func TestAddTaskOpenToEveryRole(t *testing.T) {
	s := testutil.NewTestStoreAs(t, "dev1")

	task, err := s.AddTask(store.TaskInput{
		ProjectID:  "p-billing",
		Title:      "Draft metering schema",
		AssigneeID: store.SeedDev1,
		Deadline:   time.Date(2025, time.October, 1, 0, 0, 0, 0, time.UTC),
		Status:     model.TaskPending,
		Progress:   0,
	})
	require.NoError(t, err)

	got, ok := s.TaskByID(task.ID)
	require.True(t, ok)
	assert.Equal(t, "Draft metering schema", got.Title)
}

func TestAddTaskRejectsUnknownProject(t *testing.T) {
	s := testutil.NewTestStoreAs(t, "dev1")

	_, err := s.AddTask(store.TaskInput{ProjectID: "p-missing", Title: "Orphan"})

	var verr *store.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "project", verr.Field)
}

func TestAddTaskRejectsOutOfRangeProgress(t *testing.T) {
	s := testutil.NewTestStoreAs(t, "dev1")

	_, err := s.AddTask(store.TaskInput{ProjectID: "p-atlas", Title: "Bad", Progress: -1})

	var verr *store.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "progress", verr.Field)
}

func TestAddThenDeleteTaskLeavesTasksUnchanged(t *testing.T) {
	s := testutil.NewTestStoreAs(t, "dev1")
	before := s.Tasks()

	task, err := s.AddTask(store.TaskInput{ProjectID: "p-atlas", Title: "Ephemeral"})
	require.NoError(t, err)
	require.Len(t, s.Tasks(), len(before)+1)

	s.DeleteTask(task.ID)
	assert.Equal(t, before, s.Tasks())
}

func TestUpdateTaskPatchesOnlyGivenFields(t *testing.T) {
	s := testutil.NewTestStoreAs(t, "dev1")

	before, ok := s.TaskByID("t-atlas-schema")
	require.True(t, ok)

	progress := 60
	require.NoError(t, s.UpdateTask("t-atlas-schema", store.TaskPatch{Progress: &progress}))

	after, ok := s.TaskByID("t-atlas-schema")
	require.True(t, ok)
	assert.Equal(t, 60, after.Progress)
	assert.Equal(t, before.Title, after.Title)
	assert.Equal(t, before.Description, after.Description)
	assert.Equal(t, before.AssigneeID, after.AssigneeID)
	assert.Equal(t, before.Deadline, after.Deadline)
	assert.Equal(t, before.Status, after.Status)
}

func TestUpdateTaskAllowsAnyStatusTransition(t *testing.T) {
	s := testutil.NewTestStoreAs(t, "dev2")

	// Completed back to Pending has no restrictions.
	status := model.TaskPending
	require.NoError(t, s.UpdateTask("t-mobile-auth", store.TaskPatch{Status: &status}))

	got, ok := s.TaskByID("t-mobile-auth")
	require.True(t, ok)
	assert.Equal(t, model.TaskPending, got.Status)
	assert.Equal(t, 100, got.Progress)
}

func TestDeleteTaskMissingIDIsNoOp(t *testing.T) {
	s := testutil.NewTestStoreAs(t, "dev1")

	s.DeleteTask("t-missing")
	assert.Len(t, s.Tasks(), 8)
}

func TestAddUserRequiresManagement(t *testing.T) {
	s := testutil.NewTestStoreAs(t, "lead1")

	_, err := s.AddUser(store.UserInput{Name: "Eve", Username: "eve", Role: model.RoleDeveloper})
	require.ErrorIs(t, err, store.ErrNotAuthorized)

	s2 := testutil.NewTestStoreAs(t, "admin")
	u, err := s2.AddUser(store.UserInput{Name: "Eve Okafor", Username: "eve", Role: model.RoleDeveloper})
	require.NoError(t, err)

	loggedIn, ok := s2.Login("eve")
	require.True(t, ok)
	assert.Equal(t, u.ID, loggedIn.ID)
}

func TestAddUserRejectsUnknownRole(t *testing.T) {
	s := testutil.NewTestStoreAs(t, "admin")

	_, err := s.AddUser(store.UserInput{Name: "X", Username: "x", Role: model.Role("INTERN")})

	var verr *store.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "role", verr.Field)
}

func TestDeleteUserKeepsOrphanedReferences(t *testing.T) {
	s := testutil.NewTestStoreAs(t, "admin")

	require.NoError(t, s.DeleteUser(store.SeedDev2))

	_, ok := s.UserByID(store.SeedDev2)
	assert.False(t, ok)

	// Assignments and rosters keep pointing at the removed id.
	task, ok := s.TaskByID("t-mobile-auth")
	require.True(t, ok)
	assert.Equal(t, store.SeedDev2, task.AssigneeID)

	atlas, ok := s.ProjectByID("p-atlas")
	require.True(t, ok)
	assert.Contains(t, atlas.DeveloperIDs, store.SeedDev2)
}

func TestObserversRunBeforeMutationReturns(t *testing.T) {
	s := testutil.NewTestStoreAs(t, "dev1")

	var seen int
	s.Subscribe(func() {
		seen = len(s.Tasks())
	})

	_, err := s.AddTask(store.TaskInput{ProjectID: "p-atlas", Title: "Notify me"})
	require.NoError(t, err)
	assert.Equal(t, 9, seen)
}

func TestActivityIsNewestFirst(t *testing.T) {
	s := testutil.NewTestStoreAs(t, "admin")

	_, err := s.AddTask(store.TaskInput{ProjectID: "p-docs", Title: "Fresh entry"})
	require.NoError(t, err)

	entries := s.Activity()
	require.NotEmpty(t, entries)
	assert.Equal(t, `created task "Fresh entry"`, entries[0].Action)
	for i := 1; i < len(entries); i++ {
		assert.False(t, entries[i].Timestamp.After(entries[i-1].Timestamp))
	}
}

func TestToggleDarkModeFlipsFlagOnly(t *testing.T) {
	s := store.New(store.DefaultSeed(), true)

	assert.False(t, s.ToggleDarkMode())
	assert.True(t, s.ToggleDarkMode())
	assert.True(t, s.DarkMode())
	assert.Len(t, s.Activity(), 3)
}

func TestAccessorsReturnCopies(t *testing.T) {
	s := testutil.NewTestStore(t)

	projects := s.Projects()
	require.NotEmpty(t, projects)
	projects[0].DeveloperIDs[0] = "tampered"

	fresh, ok := s.ProjectByID(projects[0].ID)
	require.True(t, ok)
	assert.NotContains(t, fresh.DeveloperIDs, "tampered")
}
