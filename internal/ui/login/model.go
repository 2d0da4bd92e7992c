package login

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/promanage/promanage/internal/model"
	"github.com/promanage/promanage/internal/store"
	"github.com/promanage/promanage/internal/theme"
)

// LoggedInMsg signals the parent that a user signed in.
type LoggedInMsg struct {
	User model.User
}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	username string
	password string
}

// Model is the sign-in view. The password field is collected but never
// verified; authentication is a username lookup against the seed users.
type Model struct {
	store  *store.Store
	form   *huh.Form
	fb     *formBindings
	errMsg string
	width  int
	height int
}

// New creates a new login model.
func New(s *store.Store, width, height int) Model {
	m := Model{
		store:  s,
		fb:     &formBindings{},
		width:  width,
		height: height,
	}
	m.form = m.buildForm()
	return m
}

func (m Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Username").
				Placeholder("Enter your username").
				Value(&m.fb.username),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&m.fb.password),
		),
	).WithWidth(44).WithShowHelp(false)
}

// Init starts the form.
func (m Model) Init() tea.Cmd {
	return m.form.Init()
}

// Update handles messages for the login view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}
	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		user, ok := m.store.Login(m.fb.username)
		if !ok {
			m.errMsg = "Invalid credentials. Try admin, lead1, dev1 or dev2."
			m.fb.password = ""
			m.form = m.buildForm()
			return m, m.form.Init()
		}
		m.errMsg = ""
		return m, func() tea.Msg { return LoggedInMsg{User: user} }
	}
	if m.form.State == huh.StateAborted {
		// Re-arm the form; there is nowhere to go back to from sign-in.
		m.form = m.buildForm()
		return m, m.form.Init()
	}
	return m, cmd
}

// View renders the sign-in card centered on screen.
func (m Model) View() string {
	title := theme.TitleStyle.Render("ProManage")
	subtitle := theme.SubtitleStyle.Render("Enterprise Project Status Management")

	parts := []string{title, subtitle, "", m.form.View()}
	if m.errMsg != "" {
		parts = append(parts, theme.ErrorStyle.Render(m.errMsg))
	}

	card := theme.CardStyle.Width(50).Render(
		lipgloss.JoinVertical(lipgloss.Left, parts...),
	)

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, card)
}

// SetSize updates dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
