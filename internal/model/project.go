package model

import "time"

// Priority is the coarse urgency level of a project.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// Priorities lists all priorities from least to most urgent.
func Priorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh}
}

// ProjectStatus is the lifecycle stage of a project.
type ProjectStatus string

const (
	ProjectPlanning  ProjectStatus = "Planning"
	ProjectActive    ProjectStatus = "Active"
	ProjectOnHold    ProjectStatus = "On Hold"
	ProjectReview    ProjectStatus = "Review"
	ProjectCompleted ProjectStatus = "Completed"
	ProjectCancelled ProjectStatus = "Cancelled"
)

// ProjectStatuses lists all project statuses in lifecycle order. The order is
// load-bearing for the dashboard's status distribution chart.
func ProjectStatuses() []ProjectStatus {
	return []ProjectStatus{
		ProjectPlanning,
		ProjectActive,
		ProjectOnHold,
		ProjectReview,
		ProjectCompleted,
		ProjectCancelled,
	}
}

// Project is a unit of delivery owned by one lead and staffed by developers.
type Project struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	StartDate   time.Time     `json:"start_date"`
	Deadline    time.Time     `json:"deadline"`
	Priority    Priority      `json:"priority"`
	Status      ProjectStatus `json:"status"`

	// Progress is a manually tracked completion percentage in [0, 100].
	Progress int `json:"progress"`

	// LeadID references the user responsible for the project.
	LeadID string `json:"lead_id"`

	// DeveloperIDs references the users staffed on the project.
	DeveloperIDs []string `json:"developer_ids"`
}

// HasDeveloper reports whether the user with the given id is staffed on p.
func (p Project) HasDeveloper(userID string) bool {
	for _, id := range p.DeveloperIDs {
		if id == userID {
			return true
		}
	}
	return false
}
