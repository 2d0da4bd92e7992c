package view_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promanage/promanage/internal/model"
	"github.com/promanage/promanage/internal/store"
	"github.com/promanage/promanage/internal/view"
)

func TestCompletionRateEmptyIsZero(t *testing.T) {
	assert.Equal(t, 0, view.CompletionRate(nil))
}

func TestCompletionRateRoundsToNearest(t *testing.T) {
	tasks := []model.Task{
		{Status: model.TaskCompleted},
		{Status: model.TaskCompleted},
		{Status: model.TaskPending},
	}
	// 2 of 3 is 66.67, rounded to 67.
	assert.Equal(t, 67, view.CompletionRate(tasks))

	assert.Equal(t, 33, view.CompletionRate(tasks[1:]))
	assert.Equal(t, 100, view.CompletionRate(tasks[:2]))
}

func TestHealthScoreClampsToHundred(t *testing.T) {
	assert.Equal(t, 100, view.HealthScore(100, 5, 1))
	assert.Equal(t, 100, view.HealthScore(100, 1, 1))
	assert.Equal(t, 0, view.HealthScore(0, 0, 0))
}

func TestHealthScoreGuardsZeroProjects(t *testing.T) {
	// rate*0.8 with no project term blowing up on divide by zero.
	assert.Equal(t, 40, view.HealthScore(50, 0, 0))
}

func TestComputeStatsForDeveloper(t *testing.T) {
	seed := store.DefaultSeed()
	dev1 := seedUser(t, seed, store.SeedDev1)

	stats := view.ComputeStats(dev1, seed.Users, seed.Projects, seed.Tasks)

	assert.Equal(t, 1, stats.ActiveProjects)
	assert.Equal(t, 1, stats.CompletedTasks)
	assert.Equal(t, 25, stats.CompletionRate)
	// round(25*0.8 + 1/6*20) = round(23.33) = 23; the ratio uses the
	// unfiltered project total.
	assert.Equal(t, 23, stats.HealthScore)
	assert.Equal(t, 4, stats.TeamMembers)
	assert.Equal(t, 4, stats.VisibleProjects)
	assert.Equal(t, 4, stats.VisibleTasks)
}

func TestComputeStatsForManagement(t *testing.T) {
	seed := store.DefaultSeed()
	admin := seedUser(t, seed, store.SeedAdmin)

	stats := view.ComputeStats(admin, seed.Users, seed.Projects, seed.Tasks)

	assert.Equal(t, 2, stats.ActiveProjects)
	assert.Equal(t, 2, stats.CompletedTasks)
	assert.Equal(t, 25, stats.CompletionRate)
	// round(25*0.8 + 2/6*20) = round(26.67) = 27.
	assert.Equal(t, 27, stats.HealthScore)
	assert.Equal(t, 6, stats.VisibleProjects)
	assert.Equal(t, 8, stats.VisibleTasks)
}

func TestStatusDistributionCoversAllStatusesInOrder(t *testing.T) {
	seed := store.DefaultSeed()

	dist := view.StatusDistribution(seed.Projects)
	require.Len(t, dist, len(model.ProjectStatuses()))

	want := map[model.ProjectStatus]int{
		model.ProjectPlanning:  1,
		model.ProjectActive:    2,
		model.ProjectOnHold:    1,
		model.ProjectReview:    1,
		model.ProjectCompleted: 1,
		model.ProjectCancelled: 0,
	}
	for i, sc := range dist {
		assert.Equal(t, model.ProjectStatuses()[i], sc.Status)
		assert.Equal(t, want[sc.Status], sc.Count, "count for %s", sc.Status)
	}
}

func TestDeveloperWorkloadCountsAssignedTasks(t *testing.T) {
	seed := store.DefaultSeed()

	workloads := view.DeveloperWorkload(seed.Users, seed.Tasks)
	require.Len(t, workloads, 2)

	assert.Equal(t, store.SeedDev1, workloads[0].User.ID)
	assert.Equal(t, 4, workloads[0].Tasks)
	assert.Equal(t, store.SeedDev2, workloads[1].User.ID)
	assert.Equal(t, 4, workloads[1].Tasks)
}

func TestDeveloperWorkloadIgnoresNonDevelopers(t *testing.T) {
	users := []model.User{
		{ID: "u1", Role: model.RoleManagement},
		{ID: "u2", Role: model.RoleTeamLead},
	}
	assert.Empty(t, view.DeveloperWorkload(users, store.DefaultSeed().Tasks))
}
