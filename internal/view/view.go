// Package view computes role-filtered subsets and aggregate metrics from a
// store snapshot. Everything here is a pure function recomputed on every
// read; no derived state is cached.
package view

import (
	"strings"

	"github.com/promanage/promanage/internal/model"
)

// VisibleProjects returns the subset of projects the user may see:
// developers see projects they are staffed on, team leads see projects they
// lead, and management sees everything.
func VisibleProjects(u model.User, projects []model.Project) []model.Project {
	switch u.Role {
	case model.RoleDeveloper:
		var out []model.Project
		for _, p := range projects {
			if p.HasDeveloper(u.ID) {
				out = append(out, p)
			}
		}
		return out
	case model.RoleTeamLead:
		var out []model.Project
		for _, p := range projects {
			if p.LeadID == u.ID {
				out = append(out, p)
			}
		}
		return out
	default:
		return projects
	}
}

// VisibleTasks returns the subset of tasks the user may see. Only the
// developer role is task-filtered; leads and management see all tasks.
func VisibleTasks(u model.User, tasks []model.Task) []model.Task {
	if u.Role != model.RoleDeveloper {
		return tasks
	}
	var out []model.Task
	for _, t := range tasks {
		if t.AssigneeID == u.ID {
			out = append(out, t)
		}
	}
	return out
}

// SearchProjects filters projects by a case-insensitive substring match
// against name and description. An empty query matches everything.
func SearchProjects(query string, projects []model.Project) []model.Project {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return projects
	}
	var out []model.Project
	for _, p := range projects {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Description), q) {
			out = append(out, p)
		}
	}
	return out
}

// SearchTasks filters tasks by a case-insensitive substring match against
// title and description. An empty query matches everything.
func SearchTasks(query string, tasks []model.Task) []model.Task {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return tasks
	}
	var out []model.Task
	for _, t := range tasks {
		if strings.Contains(strings.ToLower(t.Title), q) ||
			strings.Contains(strings.ToLower(t.Description), q) {
			out = append(out, t)
		}
	}
	return out
}

// TasksByStatus groups tasks by status, preserving input order within each
// group.
func TasksByStatus(tasks []model.Task) map[model.TaskStatus][]model.Task {
	out := make(map[model.TaskStatus][]model.Task)
	for _, t := range tasks {
		out[t.Status] = append(out[t.Status], t)
	}
	return out
}
