package store

import (
	"time"

	"github.com/promanage/promanage/internal/model"
)

// Seed entity ids are fixed literals rather than generated uuids so the
// dataset is stable across runs and addressable from tests.
const (
	SeedAdmin = "u-admin"
	SeedLead1 = "u-lead1"
	SeedDev1  = "u-dev1"
	SeedDev2  = "u-dev2"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DefaultSeed returns the compiled-in dataset the application starts from.
// It is not configurable; state resets to this on every process start.
func DefaultSeed() Seed {
	return Seed{
		Users: []model.User{
			{ID: SeedAdmin, Name: "Amelia Torres", Username: "admin", Role: model.RoleManagement},
			{ID: SeedLead1, Name: "Marcus Reed", Username: "lead1", Role: model.RoleTeamLead},
			{ID: SeedDev1, Name: "Priya Sharma", Username: "dev1", Role: model.RoleDeveloper},
			{ID: SeedDev2, Name: "Daniel Kim", Username: "dev2", Role: model.RoleDeveloper},
		},
		Projects: []model.Project{
			{
				ID:          "p-atlas",
				Name:        "Atlas Platform Migration",
				Description: "Move the core platform onto the new Atlas runtime.",
				StartDate:   date(2025, time.March, 3),
				Deadline:    date(2025, time.November, 28),
				Priority:    model.PriorityHigh,
				Status:      model.ProjectActive,
				Progress:    45,
				LeadID:      SeedLead1,
				DeveloperIDs: []string{SeedDev1, SeedDev2},
			},
			{
				ID:          "p-billing",
				Name:        "Billing Revamp",
				Description: "Replace the invoicing pipeline and usage metering.",
				StartDate:   date(2025, time.September, 15),
				Deadline:    date(2026, time.February, 27),
				Priority:    model.PriorityMedium,
				Status:      model.ProjectPlanning,
				Progress:    0,
				LeadID:      SeedLead1,
				DeveloperIDs: []string{SeedDev1},
			},
			{
				ID:          "p-mobile",
				Name:        "Mobile Companion App",
				Description: "Read-only mobile views for field engineers.",
				StartDate:   date(2025, time.January, 20),
				Deadline:    date(2025, time.October, 31),
				Priority:    model.PriorityHigh,
				Status:      model.ProjectActive,
				Progress:    60,
				LeadID:      SeedLead1,
				DeveloperIDs: []string{SeedDev2},
			},
			{
				ID:          "p-docs",
				Name:        "Docs Portal Refresh",
				Description: "Migrate the customer docs portal to the new design system.",
				StartDate:   date(2025, time.April, 7),
				Deadline:    date(2025, time.September, 19),
				Priority:    model.PriorityLow,
				Status:      model.ProjectReview,
				Progress:    90,
				LeadID:      SeedAdmin,
				DeveloperIDs: []string{SeedDev1},
			},
			{
				ID:          "p-legacy",
				Name:        "Legacy CRM Sunset",
				Description: "Decommission the legacy CRM and archive its data.",
				StartDate:   date(2025, time.February, 10),
				Deadline:    date(2026, time.June, 30),
				Priority:    model.PriorityLow,
				Status:      model.ProjectOnHold,
				Progress:    20,
				LeadID:      SeedLead1,
				DeveloperIDs: nil,
			},
			{
				ID:          "p-audit",
				Name:        "Security Audit 2025",
				Description: "Annual penetration test remediation round.",
				StartDate:   date(2025, time.May, 5),
				Deadline:    date(2025, time.August, 1),
				Priority:    model.PriorityHigh,
				Status:      model.ProjectCompleted,
				Progress:    100,
				LeadID:      SeedAdmin,
				DeveloperIDs: []string{SeedDev1, SeedDev2},
			},
		},
		Tasks: []model.Task{
			{
				ID:          "t-atlas-schema",
				ProjectID:   "p-atlas",
				Title:       "Port tenant schema migrations",
				Description: "Rewrite the tenant provisioning migrations for Atlas.",
				AssigneeID:  SeedDev1,
				Deadline:    date(2025, time.September, 12),
				Status:      model.TaskInProgress,
				Progress:    55,
			},
			{
				ID:          "t-atlas-gateway",
				ProjectID:   "p-atlas",
				Title:       "Cut over API gateway routes",
				Description: "Switch the remaining v1 routes to the Atlas gateway.",
				AssigneeID:  SeedDev2,
				Deadline:    date(2025, time.October, 3),
				Status:      model.TaskPending,
				Progress:    0,
			},
			{
				ID:          "t-atlas-loadtest",
				ProjectID:   "p-atlas",
				Title:       "Load-test checkout flow",
				Description: "Replay last Black Friday traffic against staging.",
				AssigneeID:  SeedDev1,
				Deadline:    date(2025, time.September, 26),
				Status:      model.TaskReview,
				Progress:    80,
			},
			{
				ID:          "t-billing-spike",
				ProjectID:   "p-billing",
				Title:       "Spike: metering event format",
				Description: "Compare per-request vs batched usage events.",
				AssigneeID:  SeedDev1,
				Deadline:    date(2025, time.October, 10),
				Status:      model.TaskPostponed,
				Progress:    10,
			},
			{
				ID:          "t-mobile-auth",
				ProjectID:   "p-mobile",
				Title:       "Offline token refresh",
				Description: "Handle refresh when the device reconnects.",
				AssigneeID:  SeedDev2,
				Deadline:    date(2025, time.September, 5),
				Status:      model.TaskCompleted,
				Progress:    100,
			},
			{
				ID:          "t-mobile-push",
				ProjectID:   "p-mobile",
				Title:       "Push notification opt-in flow",
				Description: "Permission prompt and settings screen.",
				AssigneeID:  SeedDev2,
				Deadline:    date(2025, time.October, 17),
				Status:      model.TaskInProgress,
				Progress:    35,
			},
			{
				ID:          "t-docs-search",
				ProjectID:   "p-docs",
				Title:       "Wire up portal search",
				Description: "Index the migrated articles and tune ranking.",
				AssigneeID:  SeedDev1,
				Deadline:    date(2025, time.September, 8),
				Status:      model.TaskCompleted,
				Progress:    100,
			},
			{
				ID:          "t-legacy-export",
				ProjectID:   "p-legacy",
				Title:       "Export CRM attachments",
				Description: "Bulk-export attachments to cold storage before shutdown.",
				AssigneeID:  SeedDev2,
				Deadline:    date(2026, time.January, 16),
				Status:      model.TaskCancelled,
				Progress:    5,
			},
		},
		Activity: []model.ActivityEntry{
			{
				ID:        "a-seed-1",
				UserID:    SeedLead1,
				Action:    `moved task "Offline token refresh" to Completed`,
				Timestamp: date(2025, time.August, 29).Add(9 * time.Hour),
			},
			{
				ID:        "a-seed-2",
				UserID:    SeedAdmin,
				Action:    `created project "Billing Revamp"`,
				Timestamp: date(2025, time.August, 29).Add(14 * time.Hour),
			},
			{
				ID:        "a-seed-3",
				UserID:    SeedDev1,
				Action:    `updated task "Load-test checkout flow"`,
				Timestamp: date(2025, time.August, 30).Add(11 * time.Hour),
			},
		},
	}
}
