package theme

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/promanage/promanage/internal/model"
)

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	ColorBlue    = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	ColorGreen   = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	ColorYellow  = lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"}
	ColorRed     = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
	ColorOrange  = lipgloss.AdaptiveColor{Dark: "#FFA94D", Light: "#C05621"}
	ColorMagenta = lipgloss.AdaptiveColor{Dark: "#CC5DE8", Light: "#805AD5"}
	ColorIndigo  = lipgloss.AdaptiveColor{Dark: "#748FFC", Light: "#4C51BF"}
	ColorGray    = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
	ColorWhite   = lipgloss.AdaptiveColor{Dark: "#F8F9FA", Light: "#1A202C"}
	ColorSubtle  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#CBD5E0"}
	ColorBorder  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#E2E8F0"}
)

// HeaderStyle is used for the top bar and the application title.
var HeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	Background(ColorIndigo).
	Padding(0, 1)

// StatusBarStyle is used for the bottom status bar.
var StatusBarStyle = lipgloss.NewStyle().
	Foreground(ColorWhite).
	Background(ColorSubtle).
	Padding(0, 1)

// TabStyle renders an inactive page tab in the header.
var TabStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Padding(0, 1)

// ActiveTabStyle renders the active page tab.
var ActiveTabStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorIndigo).
	Underline(true).
	Padding(0, 1)

// CardStyle wraps a bordered content card (projects, team members, stats).
var CardStyle = lipgloss.NewStyle().
	Padding(0, 1).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// TitleStyle is used for page and section titles.
var TitleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite)

// SubtitleStyle is used for the muted line under a page title.
var SubtitleStyle = lipgloss.NewStyle().
	Foreground(ColorGray)

// ListItemStyle is the base style for items in a list.
var ListItemStyle = lipgloss.NewStyle().
	PaddingLeft(2)

// SelectedItemStyle highlights the currently focused list item.
var SelectedItemStyle = lipgloss.NewStyle().
	PaddingLeft(1).
	Bold(true).
	Foreground(ColorIndigo).
	Border(lipgloss.NormalBorder(), false, false, false, true).
	BorderForeground(ColorIndigo)

// HelpStyle is used for keyboard shortcut hints and help text.
var HelpStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Italic(true)

// ErrorStyle is used for inline error and denial messages.
var ErrorStyle = lipgloss.NewStyle().
	Foreground(ColorRed).
	Italic(true)

// NoticeStyle is used for transient confirmation messages.
var NoticeStyle = lipgloss.NewStyle().
	Foreground(ColorYellow).
	Italic(true)

// ProjectStatusStyle returns a color-coded style for a project status badge.
func ProjectStatusStyle(status model.ProjectStatus) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)

	switch status {
	case model.ProjectPlanning:
		return base.Foreground(ColorBlue)
	case model.ProjectActive:
		return base.Foreground(ColorGreen)
	case model.ProjectOnHold:
		return base.Foreground(ColorOrange)
	case model.ProjectReview:
		return base.Foreground(ColorMagenta)
	case model.ProjectCompleted:
		return base.Foreground(ColorIndigo)
	case model.ProjectCancelled:
		return base.Foreground(ColorRed)
	default:
		return base.Foreground(ColorGray)
	}
}

// TaskStatusStyle returns a color-coded style for a task status badge.
func TaskStatusStyle(status model.TaskStatus) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)

	switch status {
	case model.TaskPending:
		return base.Foreground(ColorBlue)
	case model.TaskInProgress:
		return base.Foreground(ColorYellow)
	case model.TaskReview:
		return base.Foreground(ColorMagenta)
	case model.TaskCompleted:
		return base.Foreground(ColorGreen)
	case model.TaskPostponed:
		return base.Foreground(ColorGray)
	case model.TaskCancelled:
		return base.Foreground(ColorRed)
	default:
		return base.Foreground(ColorGray)
	}
}

// PriorityStyle returns a color-coded style for a project priority.
func PriorityStyle(p model.Priority) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)

	switch p {
	case model.PriorityHigh:
		return base.Foreground(ColorRed)
	case model.PriorityMedium:
		return base.Foreground(ColorYellow)
	case model.PriorityLow:
		return base.Foreground(ColorBlue)
	default:
		return base.Foreground(ColorGray)
	}
}

// RoleStyle returns a color-coded style for a user role label.
func RoleStyle(r model.Role) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)

	switch r {
	case model.RoleManagement:
		return base.Foreground(ColorMagenta)
	case model.RoleTeamLead:
		return base.Foreground(ColorBlue)
	case model.RoleDeveloper:
		return base.Foreground(ColorGreen)
	default:
		return base.Foreground(ColorGray)
	}
}

// ProgressBar renders a fixed-width textual progress bar for a percentage.
func ProgressBar(percent, width int) string {
	if width < 1 {
		width = 1
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := percent * width / 100
	full := strings.Repeat("█", filled)
	empty := strings.Repeat("░", width-filled)
	return lipgloss.NewStyle().Foreground(ColorIndigo).Render(full) +
		lipgloss.NewStyle().Foreground(ColorSubtle).Render(empty)
}
