package app

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/promanage/promanage/internal/model"
	"github.com/promanage/promanage/internal/store"
	"github.com/promanage/promanage/internal/theme"
	"github.com/promanage/promanage/internal/ui"
	"github.com/promanage/promanage/internal/ui/dashboard"
	helpview "github.com/promanage/promanage/internal/ui/help"
	"github.com/promanage/promanage/internal/ui/login"
	"github.com/promanage/promanage/internal/ui/projects"
	"github.com/promanage/promanage/internal/ui/tasks"
	"github.com/promanage/promanage/internal/ui/team"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewLogin ViewState = iota
	ViewDashboard
	ViewProjects
	ViewTasks
	ViewTeam
	ViewHelp
)

// Model is the root Bubble Tea model that manages view routing, layout,
// and access to the domain store.
type Model struct {
	currentView  ViewState
	previousView ViewState
	layout       ui.Layout
	store        *store.Store
	display      model.DisplayConfig
	keys         *KeyMap
	loginView    login.Model
	dashboard    dashboard.Model
	projects     projects.Model
	tasks        tasks.Model
	team         team.Model
	helpView     helpview.Model
	ready        bool
}

// New creates the root application model over the given store.
func New(s *store.Store, display model.DisplayConfig) Model {
	keys := DefaultKeyMap()

	return Model{
		currentView: ViewLogin,
		store:       s,
		display:     display,
		keys:        keys,
		loginView:   login.New(s, 80, 24),
		dashboard:   dashboard.New(s, display, 80, 24),
		projects:    projects.New(s, keys, 80, 24),
		tasks:       tasks.New(s, keys, 80, 24),
		team:        team.New(s, keys, 80, 24),
		helpView:    helpview.New(keys, 80, 24),
	}
}

// Init starts on the sign-in view.
func (m Model) Init() tea.Cmd {
	return m.loginView.Init()
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		contentWidth := m.layout.ContentWidth()
		contentHeight := m.layout.ContentHeight()
		m.loginView.SetSize(contentWidth, contentHeight)
		m.dashboard.SetSize(contentWidth, contentHeight)
		m.projects.SetSize(contentWidth, contentHeight)
		m.tasks.SetSize(contentWidth, contentHeight)
		m.team.SetSize(contentWidth, contentHeight)
		m.helpView.SetSize(contentWidth, contentHeight)
		// Forward to the active view so huh forms can recalculate layout.
		return m.updateActiveView(msg)

	case login.LoggedInMsg:
		// A new identity gets fresh page state; cursors and search text
		// from the previous session must not carry over.
		cw, ch := 80, 24
		if m.ready {
			cw, ch = m.layout.ContentWidth(), m.layout.ContentHeight()
		}
		m.dashboard = dashboard.New(m.store, m.display, cw, ch)
		m.projects = projects.New(m.store, m.keys, cw, ch)
		m.tasks = tasks.New(m.store, m.keys, cw, ch)
		m.team = team.New(m.store, m.keys, cw, ch)
		m.currentView = ViewDashboard
		return m, m.dashboard.Init()

	case ui.RefreshMsg:
		// Store changed. The dashboard is the only page that caches derived
		// widget state; the others re-read the store on render.
		var cmd tea.Cmd
		m.dashboard, cmd = m.dashboard.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if handled, mm, cmd := m.handleGlobalKey(msg); handled {
			return mm, cmd
		}
	}

	return m.updateActiveView(msg)
}

// handleGlobalKey processes keys that work regardless of the focused page,
// unless that page is capturing text input (a form or search box).
func (m Model) handleGlobalKey(msg tea.KeyMsg) (bool, tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return true, m, tea.Quit
	}
	if m.currentView == ViewLogin || m.capturing() {
		return false, m, nil
	}

	switch msg.String() {
	case "q":
		return true, m, tea.Quit

	case "?":
		if m.currentView == ViewHelp {
			m.currentView = m.previousView
			return true, m, nil
		}
		m.previousView = m.currentView
		m.currentView = ViewHelp
		return true, m, nil

	case "1":
		mm, cmd := m.switchTo(ViewDashboard)
		return true, mm, cmd

	case "2":
		mm, cmd := m.switchTo(ViewProjects)
		return true, mm, cmd

	case "3":
		mm, cmd := m.switchTo(ViewTasks)
		return true, mm, cmd

	case "4":
		if m.teamVisible() {
			mm, cmd := m.switchTo(ViewTeam)
			return true, mm, cmd
		}
		return true, m, nil

	case "tab":
		mm, cmd := m.switchTo(m.nextPage())
		return true, mm, cmd

	case "D":
		dark := m.store.ToggleDarkMode()
		lipgloss.SetHasDarkBackground(dark)
		m.display.DarkMode = dark
		// Persist the preference so the next start opens in the same mode.
		// The session keeps going if the write fails.
		_ = model.SaveConfig(model.DefaultConfigPath(), &model.AppConfig{Display: m.display})
		return true, m, nil

	case "L":
		m.store.Logout()
		m.currentView = ViewLogin
		m.loginView = login.New(m.store, m.layout.ContentWidth(), m.layout.ContentHeight())
		return true, m, m.loginView.Init()
	}

	return false, m, nil
}

// capturing reports whether the active page owns the keyboard (form/search).
func (m Model) capturing() bool {
	switch m.currentView {
	case ViewProjects:
		return m.projects.Capturing()
	case ViewTasks:
		return m.tasks.Capturing()
	case ViewTeam:
		return m.team.Capturing()
	}
	return false
}

// teamVisible reports whether the team page is offered to the session user.
// The page itself still enforces nothing; the store is authoritative.
func (m Model) teamVisible() bool {
	u, ok := m.store.CurrentUser()
	return ok && u.Role != model.RoleDeveloper
}

// nextPage cycles Dashboard -> Projects -> Tasks -> (Team) -> Dashboard.
func (m Model) nextPage() ViewState {
	switch m.currentView {
	case ViewDashboard:
		return ViewProjects
	case ViewProjects:
		return ViewTasks
	case ViewTasks:
		if m.teamVisible() {
			return ViewTeam
		}
		return ViewDashboard
	case ViewTeam:
		return ViewDashboard
	default:
		return ViewDashboard
	}
}

func (m Model) switchTo(v ViewState) (tea.Model, tea.Cmd) {
	m.previousView = m.currentView
	m.currentView = v
	switch v {
	case ViewDashboard:
		return m, m.dashboard.Init()
	case ViewProjects:
		return m, m.projects.Init()
	case ViewTasks:
		return m, m.tasks.Init()
	case ViewTeam:
		return m, m.team.Init()
	}
	return m, nil
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewLogin:
		m.loginView, cmd = m.loginView.Update(msg)
	case ViewDashboard:
		m.dashboard, cmd = m.dashboard.Update(msg)
	case ViewProjects:
		m.projects, cmd = m.projects.Update(msg)
	case ViewTasks:
		m.tasks, cmd = m.tasks.Update(msg)
	case ViewTeam:
		m.team, cmd = m.team.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	}

	return m, cmd
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.currentView == ViewLogin {
		return m.loginView.View()
	}

	header := m.layout.RenderHeader("ProManage", m.renderTabs(), m.sessionLabel())
	content := m.renderContent()
	statusBar := m.layout.RenderStatusBar(m.keyHints())

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewDashboard:
		return m.dashboard.View()
	case ViewProjects:
		return m.projects.View()
	case ViewTasks:
		return m.tasks.View()
	case ViewTeam:
		return m.team.View()
	case ViewHelp:
		return m.helpView.View()
	default:
		return ""
	}
}

// renderTabs renders the page tabs in the header.
func (m Model) renderTabs() string {
	type tab struct {
		label string
		view  ViewState
	}
	tabs := []tab{
		{"1 Dashboard", ViewDashboard},
		{"2 Projects", ViewProjects},
		{"3 Tasks", ViewTasks},
	}
	if m.teamVisible() {
		tabs = append(tabs, tab{"4 Team", ViewTeam})
	}

	out := ""
	for _, t := range tabs {
		if t.view == m.currentView {
			out += theme.ActiveTabStyle.Render(t.label)
		} else {
			out += theme.TabStyle.Render(t.label)
		}
	}
	return out
}

// sessionLabel shows who is signed in.
func (m Model) sessionLabel() string {
	u, ok := m.store.CurrentUser()
	if !ok {
		return ""
	}
	return fmt.Sprintf("%s · %s", u.Name, u.Role.Label())
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	switch m.currentView {
	case ViewHelp:
		return "? close help"
	case ViewProjects:
		return "/ search | n new | d delete | D dark mode | L sign out | ? help"
	case ViewTasks:
		return "/ search | n new | m move | +/- progress | d delete | ? help"
	case ViewTeam:
		return "n add | d remove | D dark mode | L sign out | ? help"
	default:
		return "1-4 pages | tab next | D dark mode | L sign out | ? help | q quit"
	}
}
