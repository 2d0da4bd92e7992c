package model

import "time"

// TaskStatus is the lifecycle stage of a task. Any status may move to any
// other status; there is no constrained transition graph.
type TaskStatus string

const (
	TaskPending    TaskStatus = "Pending"
	TaskInProgress TaskStatus = "In Progress"
	TaskReview     TaskStatus = "Review"
	TaskCancelled  TaskStatus = "Cancelled"
	TaskCompleted  TaskStatus = "Completed"
	TaskPostponed  TaskStatus = "Postponed"
)

// TaskStatuses lists all task statuses in lifecycle order.
func TaskStatuses() []TaskStatus {
	return []TaskStatus{
		TaskPending,
		TaskInProgress,
		TaskReview,
		TaskCancelled,
		TaskCompleted,
		TaskPostponed,
	}
}

// BoardStatuses lists the statuses shown as columns on the task board.
func BoardStatuses() []TaskStatus {
	return []TaskStatus{TaskPending, TaskInProgress, TaskCompleted, TaskPostponed}
}

// Task is a unit of work inside a project, assigned to one developer.
type Task struct {
	ID          string     `json:"id"`
	ProjectID   string     `json:"project_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	AssigneeID  string     `json:"assignee_id"`
	Deadline    time.Time  `json:"deadline"`
	Status      TaskStatus `json:"status"`

	// Progress is a manually tracked completion percentage in [0, 100].
	Progress int `json:"progress"`
}
