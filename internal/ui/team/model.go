package team

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/promanage/promanage/internal/keys"
	"github.com/promanage/promanage/internal/model"
	"github.com/promanage/promanage/internal/store"
	"github.com/promanage/promanage/internal/theme"
)

type pageMode int

const (
	modeList pageMode = iota
	modeForm
	modeConfirmDelete
)

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	name     string
	username string
	role     model.Role
	confirm  bool
}

// Model is the team page: member cards with add/remove for management.
// Removing yourself is not offered; the session user always stays.
type Model struct {
	store       *store.Store
	keys        *keys.KeyMap
	mode        pageMode
	selectedIdx int
	form        *huh.Form
	confirmForm *huh.Form
	fb          *formBindings
	targetID    string
	statusMsg   string
	width       int
	height      int
}

// New creates a team page model.
func New(s *store.Store, k *keys.KeyMap, width, height int) Model {
	return Model{
		store:  s,
		keys:   k,
		fb:     &formBindings{},
		width:  width,
		height: height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateActiveForm(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch m.mode {
	case modeList:
		return m.handleListKey(msg)
	case modeForm:
		return m.updateForm(msg)
	case modeConfirmDelete:
		return m.updateConfirm(msg)
	}
	return m, nil
}

func (m Model) handleListKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	users := m.store.Users()
	current, _ := m.store.CurrentUser()

	switch {
	case key.Matches(msg, m.keys.Down):
		if len(users) > 0 {
			m.selectedIdx = (m.selectedIdx + 1) % len(users)
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if len(users) > 0 {
			m.selectedIdx--
			if m.selectedIdx < 0 {
				m.selectedIdx = len(users) - 1
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.New):
		if !current.Role.Can(model.CapCreateUser) {
			m.statusMsg = "Only management can add team members"
			return m, nil
		}
		m.fb.name = ""
		m.fb.username = ""
		m.fb.role = model.RoleDeveloper
		m.form = m.buildForm()
		m.mode = modeForm
		m.statusMsg = ""
		return m, m.form.Init()

	case key.Matches(msg, m.keys.Delete):
		if len(users) == 0 {
			return m, nil
		}
		if !current.Role.Can(model.CapDeleteUser) {
			m.statusMsg = "Only management can remove team members"
			return m, nil
		}
		target := users[m.selectedIdx]
		if target.ID == current.ID {
			m.statusMsg = "You cannot remove yourself"
			return m, nil
		}
		m.targetID = target.ID
		m.fb.confirm = false
		m.confirmForm = m.buildConfirmForm(target)
		m.mode = modeConfirmDelete
		return m, m.confirmForm.Init()
	}
	return m, nil
}

func (m Model) buildForm() *huh.Form {
	var roleOpts []huh.Option[model.Role]
	for _, r := range model.Roles() {
		roleOpts = append(roleOpts, huh.NewOption(r.Label(), r))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Full Name").
				Placeholder("Jane Doe").
				Value(&m.fb.name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Username").
				Placeholder("janedoe").
				Value(&m.fb.username).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("username is required")
					}
					return nil
				}),
			huh.NewSelect[model.Role]().
				Title("Role").
				Options(roleOpts...).
				Value(&m.fb.role),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) buildConfirmForm(u model.User) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Remove %s from the team?", u.Name)).
				Description("Their task assignments are kept and shown as unassigned.").
				Affirmative("Yes, remove").
				Negative("Cancel").
				Value(&m.fb.confirm),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) updateForm(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}
	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}
	if m.form.State == huh.StateCompleted {
		m.mode = modeList
		_, err := m.store.AddUser(store.UserInput{
			Name:     m.fb.name,
			Username: m.fb.username,
			Role:     m.fb.role,
		})
		if err != nil {
			m.statusMsg = fmt.Sprintf("Error: %v", err)
		} else {
			m.statusMsg = "User created"
		}
		return m, nil
	}
	if m.form.State == huh.StateAborted {
		m.mode = modeList
		return m, nil
	}
	return m, cmd
}

func (m Model) updateConfirm(msg tea.Msg) (Model, tea.Cmd) {
	if m.confirmForm == nil {
		return m, nil
	}
	mdl, cmd := m.confirmForm.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.confirmForm = f
	}
	if m.confirmForm.State == huh.StateCompleted {
		m.mode = modeList
		if m.fb.confirm {
			if err := m.store.DeleteUser(m.targetID); err != nil {
				m.statusMsg = fmt.Sprintf("Error: %v", err)
			} else {
				m.statusMsg = "User removed"
				m.selectedIdx = 0
			}
		}
		return m, nil
	}
	if m.confirmForm.State == huh.StateAborted {
		m.mode = modeList
		return m, nil
	}
	return m, cmd
}

func (m Model) updateActiveForm(msg tea.Msg) (Model, tea.Cmd) {
	switch m.mode {
	case modeForm:
		return m.updateForm(msg)
	case modeConfirmDelete:
		return m.updateConfirm(msg)
	}
	return m, nil
}

// View renders the team page.
func (m Model) View() string {
	switch m.mode {
	case modeForm:
		return m.viewForm(m.form)
	case modeConfirmDelete:
		return m.viewForm(m.confirmForm)
	default:
		return m.viewList()
	}
}

func (m Model) viewList() string {
	var b strings.Builder

	b.WriteString(theme.TitleStyle.Render("Team Members"))
	b.WriteString("\n")
	b.WriteString(theme.SubtitleStyle.Render("Manage your organization's people and roles."))
	b.WriteString("\n\n")

	users := m.store.Users()
	if len(users) == 0 {
		b.WriteString(theme.SubtitleStyle.Italic(true).Render("No team members."))
	}
	for i, u := range users {
		b.WriteString(m.renderCard(u, i == m.selectedIdx))
		b.WriteString("\n")
	}

	if m.statusMsg != "" {
		b.WriteString("\n")
		b.WriteString(theme.NoticeStyle.Render(m.statusMsg))
	}

	b.WriteString("\n")
	b.WriteString(theme.HelpStyle.Render("n add | d remove | j/k move"))

	return lipgloss.NewStyle().Padding(1, 2).Width(m.width).Render(b.String())
}

func (m Model) renderCard(u model.User, selected bool) string {
	header := fmt.Sprintf("%s %s  %s",
		theme.TitleStyle.Render("["+u.Initial()+"]"),
		theme.TitleStyle.Render(u.Name),
		theme.RoleStyle(u.Role).Render(u.Role.Label()),
	)
	meta := theme.SubtitleStyle.Render("@" + u.Username)

	card := theme.CardStyle.Width(m.cardWidth())
	if selected {
		card = card.BorderForeground(theme.ColorIndigo)
	}
	return card.Render(lipgloss.JoinVertical(lipgloss.Left, header, meta))
}

func (m Model) viewForm(f *huh.Form) string {
	if f == nil {
		return ""
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(f.View())
}

// Capturing reports whether a form currently owns the keyboard.
func (m Model) Capturing() bool {
	return m.mode != modeList
}

// SetSize updates dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Model) cardWidth() int {
	w := m.width - 6
	if w < 36 {
		w = 36
	}
	if w > 80 {
		w = 80
	}
	return w
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func (m Model) formHeight() int {
	h := m.height - 4
	if h < 10 {
		h = 10
	}
	return h
}
