package view

import (
	"math"

	"github.com/promanage/promanage/internal/model"
)

// Stats is the set of headline numbers on the dashboard, computed over the
// viewer's role-filtered projects and tasks.
type Stats struct {
	ActiveProjects  int
	CompletedTasks  int
	CompletionRate  int
	HealthScore     int
	TeamMembers     int
	VisibleProjects int
	VisibleTasks    int
}

// CompletionRate returns round(100 * completed / total) over the given
// tasks, and 0 for an empty set.
func CompletionRate(tasks []model.Task) int {
	if len(tasks) == 0 {
		return 0
	}
	completed := 0
	for _, t := range tasks {
		if t.Status == model.TaskCompleted {
			completed++
		}
	}
	return int(math.Round(100 * float64(completed) / float64(len(tasks))))
}

// HealthScore is a bounded composite of the completion rate and the share
// of active projects: min(100, round(rate*0.8 + active/max(1,total)*20)).
// The max(1, total) guards the no-projects case. The result is always in
// [0, 100] for any rate in [0, 100].
func HealthScore(completionRate, activeProjects, totalProjects int) int {
	denom := totalProjects
	if denom < 1 {
		denom = 1
	}
	score := int(math.Round(float64(completionRate)*0.8 + float64(activeProjects)/float64(denom)*20))
	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	return score
}

// ComputeStats derives the dashboard stat cards for the given viewer.
// ActiveProjects and CompletedTasks count over the viewer's visible
// entities; the health score's project ratio uses the unfiltered project
// total.
func ComputeStats(u model.User, users []model.User, projects []model.Project, tasks []model.Task) Stats {
	visibleProjects := VisibleProjects(u, projects)
	visibleTasks := VisibleTasks(u, tasks)

	active := 0
	for _, p := range visibleProjects {
		if p.Status == model.ProjectActive {
			active++
		}
	}
	completed := 0
	for _, t := range visibleTasks {
		if t.Status == model.TaskCompleted {
			completed++
		}
	}
	rate := CompletionRate(visibleTasks)

	return Stats{
		ActiveProjects:  active,
		CompletedTasks:  completed,
		CompletionRate:  rate,
		HealthScore:     HealthScore(rate, active, len(projects)),
		TeamMembers:     len(users),
		VisibleProjects: len(visibleProjects),
		VisibleTasks:    len(visibleTasks),
	}
}

// StatusCount is one slice of the project status distribution.
type StatusCount struct {
	Status model.ProjectStatus
	Count  int
}

// StatusDistribution counts ALL projects per status, in enum order. It is
// deliberately not role-filtered; the chart shows the aggregate picture.
func StatusDistribution(projects []model.Project) []StatusCount {
	counts := make(map[model.ProjectStatus]int)
	for _, p := range projects {
		counts[p.Status]++
	}
	out := make([]StatusCount, 0, len(model.ProjectStatuses()))
	for _, st := range model.ProjectStatuses() {
		out = append(out, StatusCount{Status: st, Count: counts[st]})
	}
	return out
}

// Workload is the task count assigned to one developer.
type Workload struct {
	User  model.User
	Tasks int
}

// DeveloperWorkload counts, for each user with the developer role, the
// tasks assigned to them. All tasks are counted, not a role-filtered view.
func DeveloperWorkload(users []model.User, tasks []model.Task) []Workload {
	var out []Workload
	for _, u := range users {
		if u.Role != model.RoleDeveloper {
			continue
		}
		n := 0
		for _, t := range tasks {
			if t.AssigneeID == u.ID {
				n++
			}
		}
		out = append(out, Workload{User: u, Tasks: n})
	}
	return out
}
