package dashboard

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/promanage/promanage/internal/model"
	"github.com/promanage/promanage/internal/store"
	"github.com/promanage/promanage/internal/theme"
	"github.com/promanage/promanage/internal/ui"
	"github.com/promanage/promanage/internal/view"
)

// Model is the dashboard page: stat cards, project status distribution,
// developer workload, recent projects, and the activity feed. Everything is
// recomputed from the store on each refresh; the page holds no domain state
// of its own.
type Model struct {
	store   *store.Store
	display model.DisplayConfig
	recent  table.Model
	width   int
	height  int
}

// New creates a dashboard model.
func New(s *store.Store, display model.DisplayConfig, width, height int) Model {
	m := Model{
		store:   s,
		display: display,
		width:   width,
		height:  height,
	}
	m.recent = m.buildRecentTable()
	return m
}

// Init returns the initial command. The recent-projects table is rebuilt on
// RefreshMsg, which fires on every store mutation including sign-in.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the dashboard.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg.(type) {
	case ui.RefreshMsg:
		m.recent = m.buildRecentTable()
		return m, nil
	}
	var cmd tea.Cmd
	m.recent, cmd = m.recent.Update(msg)
	return m, cmd
}

// buildRecentTable derives the recent-projects table from the viewer's
// visible projects.
func (m Model) buildRecentTable() table.Model {
	columns := []table.Column{
		{Title: "Project", Width: 28},
		{Title: "Status", Width: 10},
		{Title: "Deadline", Width: 13},
		{Title: "Progress", Width: 8},
	}

	var rows []table.Row
	if u, ok := m.store.CurrentUser(); ok {
		visible := view.VisibleProjects(u, m.store.Projects())
		limit := m.display.RecentProjects
		if limit > len(visible) {
			limit = len(visible)
		}
		for _, p := range visible[:limit] {
			rows = append(rows, table.Row{
				p.Name,
				string(p.Status),
				p.Deadline.Format("Jan 2, 2006"),
				fmt.Sprintf("%d%%", p.Progress),
			})
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(len(rows)+1),
	)
	st := table.DefaultStyles()
	st.Header = st.Header.Bold(true).Foreground(theme.ColorGray).BorderBottom(true)
	st.Selected = lipgloss.NewStyle()
	t.SetStyles(st)
	return t
}

// View renders the dashboard.
func (m Model) View() string {
	u, ok := m.store.CurrentUser()
	if !ok {
		return ""
	}

	users := m.store.Users()
	projects := m.store.Projects()
	tasks := m.store.Tasks()
	stats := view.ComputeStats(u, users, projects, tasks)

	welcome := theme.TitleStyle.Render("Welcome back, "+u.Name) + "\n" +
		theme.SubtitleStyle.Render("Here's an overview of your projects and tasks.")

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		statCard("Active Projects", fmt.Sprintf("%d", stats.ActiveProjects)),
		statCard("Tasks Completed", fmt.Sprintf("%d", stats.CompletedTasks)),
		statCard("Project Health", fmt.Sprintf("%d%%", stats.HealthScore)),
		statCard("Team Members", fmt.Sprintf("%d", stats.TeamMembers)),
	)

	charts := lipgloss.JoinHorizontal(lipgloss.Top,
		m.statusDistributionPanel(projects),
		" ",
		m.workloadPanel(users, tasks),
	)

	bottom := lipgloss.JoinHorizontal(lipgloss.Top,
		m.recentProjectsPanel(),
		" ",
		m.activityPanel(users),
	)

	return lipgloss.NewStyle().Padding(1, 2).Render(
		lipgloss.JoinVertical(lipgloss.Left, welcome, "", cards, "", charts, "", bottom),
	)
}

func statCard(label, value string) string {
	content := theme.SubtitleStyle.Render(label) + "\n" +
		theme.TitleStyle.Render(value)
	return theme.CardStyle.Width(20).Render(content)
}

// statusDistributionPanel renders the per-status project counts as bars.
// The distribution covers all projects, not the role-filtered view.
func (m Model) statusDistributionPanel(projects []model.Project) string {
	dist := view.StatusDistribution(projects)
	total := len(projects)

	lines := []string{theme.TitleStyle.Render("Status Distribution"), ""}
	for _, sc := range dist {
		label := theme.ProjectStatusStyle(sc.Status).Render(fmt.Sprintf("%-10s", sc.Status))
		bar := theme.ProgressBar(percentOf(sc.Count, total), 20)
		lines = append(lines, fmt.Sprintf("%s %s %d", label, bar, sc.Count))
	}
	return theme.CardStyle.Width(46).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// workloadPanel renders task counts per developer.
func (m Model) workloadPanel(users []model.User, tasks []model.Task) string {
	workloads := view.DeveloperWorkload(users, tasks)

	maxTasks := 1
	for _, w := range workloads {
		if w.Tasks > maxTasks {
			maxTasks = w.Tasks
		}
	}

	lines := []string{theme.TitleStyle.Render("Developer Workload"), ""}
	if len(workloads) == 0 {
		lines = append(lines, theme.SubtitleStyle.Render("No developers on the team."))
	}
	for _, w := range workloads {
		label := fmt.Sprintf("%-14s", firstName(w.User.Name))
		bar := theme.ProgressBar(percentOf(w.Tasks, maxTasks), 16)
		lines = append(lines, fmt.Sprintf("%s %s %d", label, bar, w.Tasks))
	}
	return theme.CardStyle.Width(42).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m Model) recentProjectsPanel() string {
	content := theme.TitleStyle.Render("Recent Projects") + "\n\n" + m.recent.View()
	return theme.CardStyle.Width(68).Render(content)
}

// activityPanel renders the newest activity entries with actor names.
func (m Model) activityPanel(users []model.User) string {
	byID := make(map[string]model.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	entries := m.store.Activity()
	limit := m.display.ActivityFeedSize
	if limit > len(entries) {
		limit = len(entries)
	}

	lines := []string{theme.TitleStyle.Render("Activity Log"), ""}
	if limit == 0 {
		lines = append(lines, theme.SubtitleStyle.Render("No recent activity"))
	}
	for _, e := range entries[:limit] {
		name := "Someone"
		if u, ok := byID[e.UserID]; ok {
			name = u.Name
		}
		lines = append(lines,
			fmt.Sprintf("%s %s", theme.TitleStyle.Render(name), e.Action),
			theme.SubtitleStyle.Render(e.Timestamp.Format("Jan 2, 2006 15:04")),
		)
	}
	return theme.CardStyle.Width(46).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func percentOf(n, total int) int {
	if total <= 0 {
		return 0
	}
	return n * 100 / total
}

func firstName(full string) string {
	for i, r := range full {
		if r == ' ' {
			return full[:i]
		}
	}
	return full
}

// SetSize updates dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
