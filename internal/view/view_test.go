package view_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promanage/promanage/internal/model"
	"github.com/promanage/promanage/internal/store"
	"github.com/promanage/promanage/internal/view"
)

func seedUser(t *testing.T, seed store.Seed, id string) model.User {
	t.Helper()
	for _, u := range seed.Users {
		if u.ID == id {
			return u
		}
	}
	t.Fatalf("no seed user %s", id)
	return model.User{}
}

func projectIDs(projects []model.Project) []string {
	out := make([]string, len(projects))
	for i, p := range projects {
		out[i] = p.ID
	}
	return out
}

func TestVisibleProjectsForDeveloper(t *testing.T) {
	seed := store.DefaultSeed()

	dev1 := view.VisibleProjects(seedUser(t, seed, store.SeedDev1), seed.Projects)
	assert.Equal(t, []string{"p-atlas", "p-billing", "p-docs", "p-audit"}, projectIDs(dev1))

	dev2 := view.VisibleProjects(seedUser(t, seed, store.SeedDev2), seed.Projects)
	assert.Equal(t, []string{"p-atlas", "p-mobile", "p-audit"}, projectIDs(dev2))
}

func TestVisibleProjectsForTeamLead(t *testing.T) {
	seed := store.DefaultSeed()

	got := view.VisibleProjects(seedUser(t, seed, store.SeedLead1), seed.Projects)
	assert.Equal(t, []string{"p-atlas", "p-billing", "p-mobile", "p-legacy"}, projectIDs(got))
}

func TestVisibleProjectsForManagement(t *testing.T) {
	seed := store.DefaultSeed()

	got := view.VisibleProjects(seedUser(t, seed, store.SeedAdmin), seed.Projects)
	assert.Len(t, got, len(seed.Projects))
}

func TestVisibleTasksFiltersOnlyDevelopers(t *testing.T) {
	seed := store.DefaultSeed()

	dev1 := view.VisibleTasks(seedUser(t, seed, store.SeedDev1), seed.Tasks)
	require.Len(t, dev1, 4)
	for _, task := range dev1 {
		assert.Equal(t, store.SeedDev1, task.AssigneeID)
	}

	lead := view.VisibleTasks(seedUser(t, seed, store.SeedLead1), seed.Tasks)
	assert.Len(t, lead, len(seed.Tasks))
}

func TestSearchProjectsMatchesNameAndDescription(t *testing.T) {
	seed := store.DefaultSeed()

	byName := view.SearchProjects("  ATLAS ", seed.Projects)
	require.Len(t, byName, 1)
	assert.Equal(t, "p-atlas", byName[0].ID)

	byDescription := view.SearchProjects("invoicing", seed.Projects)
	require.Len(t, byDescription, 1)
	assert.Equal(t, "p-billing", byDescription[0].ID)

	assert.Len(t, view.SearchProjects("", seed.Projects), len(seed.Projects))
	assert.Empty(t, view.SearchProjects("zebra", seed.Projects))
}

func TestSearchTasksMatchesTitleAndDescription(t *testing.T) {
	seed := store.DefaultSeed()

	got := view.SearchTasks("gateway", seed.Tasks)
	require.Len(t, got, 1)
	assert.Equal(t, "t-atlas-gateway", got[0].ID)
}

func TestTasksByStatusPreservesOrderWithinGroups(t *testing.T) {
	seed := store.DefaultSeed()

	groups := view.TasksByStatus(seed.Tasks)

	inProgress := groups[model.TaskInProgress]
	require.Len(t, inProgress, 2)
	assert.Equal(t, "t-atlas-schema", inProgress[0].ID)
	assert.Equal(t, "t-mobile-push", inProgress[1].ID)

	assert.Len(t, groups[model.TaskCompleted], 2)
	assert.Len(t, groups[model.TaskCancelled], 1)
	assert.Empty(t, groups[model.TaskStatus("UNKNOWN")])
}
