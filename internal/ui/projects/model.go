package projects

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/promanage/promanage/internal/keys"
	"github.com/promanage/promanage/internal/model"
	"github.com/promanage/promanage/internal/store"
	"github.com/promanage/promanage/internal/theme"
	"github.com/promanage/promanage/internal/view"
)

type pageMode int

const (
	modeList pageMode = iota
	modeSearch
	modeForm
	modeConfirmDelete
)

const dateLayout = "2006-01-02"

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	name         string
	description  string
	startDate    string
	deadline     string
	priority     model.Priority
	status       model.ProjectStatus
	leadID       string
	developerIDs []string
	confirm      bool
}

// Model is the projects page: a searchable card list of the viewer's
// visible projects, with create/delete for roles that hold the matching
// capabilities. The store is authoritative for authorization; this page
// merely hides affordances the role does not have.
type Model struct {
	store       *store.Store
	keys        *keys.KeyMap
	mode        pageMode
	search      textinput.Model
	selectedIdx int
	form        *huh.Form
	confirmForm *huh.Form
	fb          *formBindings
	deletingID  string
	statusMsg   string
	width       int
	height      int
}

// New creates a projects page model.
func New(s *store.Store, k *keys.KeyMap, width, height int) Model {
	ti := textinput.New()
	ti.Placeholder = "Search projects..."
	ti.CharLimit = 64
	return Model{
		store:  s,
		keys:   k,
		search: ti,
		fb:     &formBindings{},
		width:  width,
		height: height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// visible returns the viewer's projects after role filtering and search.
func (m Model) visible() []model.Project {
	u, ok := m.store.CurrentUser()
	if !ok {
		return nil
	}
	return view.SearchProjects(m.search.Value(), view.VisibleProjects(u, m.store.Projects()))
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
	case modeSearch:
		return m.handleSearchKey(msg)
	case modeForm:
		return m.updateForm(msg)
	case modeConfirmDelete:
		return m.updateConfirm(msg)
	}
	return m, nil
}

func (m Model) handleListKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	projects := m.visible()
	u, _ := m.store.CurrentUser()

	// The visible list can shrink between keypresses (role change,
	// deletion), so the cursor is clamped before any indexed access.
	if m.selectedIdx >= len(projects) {
		m.selectedIdx = 0
	}

	switch {
	case key.Matches(msg, m.keys.Down):
		if len(projects) > 0 {
			m.selectedIdx = (m.selectedIdx + 1) % len(projects)
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if len(projects) > 0 {
			m.selectedIdx--
			if m.selectedIdx < 0 {
				m.selectedIdx = len(projects) - 1
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.Search):
		m.mode = modeSearch
		m.search.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.New):
		if !u.Role.Can(model.CapCreateProject) {
			m.statusMsg = "Only management and team leads can create projects"
			return m, nil
		}
		m.fb.name = ""
		m.fb.description = ""
		m.fb.startDate = time.Now().Format(dateLayout)
		m.fb.deadline = ""
		m.fb.priority = model.PriorityMedium
		m.fb.status = model.ProjectPlanning
		m.fb.leadID = u.ID
		m.fb.developerIDs = nil
		m.form = m.buildForm()
		m.mode = modeForm
		m.statusMsg = ""
		return m, m.form.Init()

	case key.Matches(msg, m.keys.Delete):
		if len(projects) == 0 {
			return m, nil
		}
		if !u.Role.Can(model.CapDeleteProject) {
			m.statusMsg = "Only management and team leads can delete projects"
			return m, nil
		}
		p := projects[m.selectedIdx]
		m.deletingID = p.ID
		m.fb.confirm = false
		m.confirmForm = m.buildConfirmForm(p)
		m.mode = modeConfirmDelete
		return m, m.confirmForm.Init()
	}
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.mode = modeList
		m.search.Blur()
		m.selectedIdx = 0
		return m, nil
	case "esc":
		m.mode = modeList
		m.search.SetValue("")
		m.search.Blur()
		m.selectedIdx = 0
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m Model) buildForm() *huh.Form {
	users := m.store.Users()

	var leadOpts []huh.Option[string]
	for _, u := range users {
		if u.Role != model.RoleDeveloper {
			leadOpts = append(leadOpts, huh.NewOption(u.Name, u.ID))
		}
	}
	var devOpts []huh.Option[string]
	for _, u := range users {
		if u.Role == model.RoleDeveloper {
			devOpts = append(devOpts, huh.NewOption(u.Name, u.ID))
		}
	}

	var priorityOpts []huh.Option[model.Priority]
	for _, p := range model.Priorities() {
		priorityOpts = append(priorityOpts, huh.NewOption(string(p), p))
	}
	var statusOpts []huh.Option[model.ProjectStatus]
	for _, st := range model.ProjectStatuses() {
		statusOpts = append(statusOpts, huh.NewOption(string(st), st))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Placeholder("Project name").
				Value(&m.fb.name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name is required")
					}
					return nil
				}),
			huh.NewText().
				Title("Description").
				Placeholder("What is this project about?").
				Value(&m.fb.description),
			huh.NewInput().
				Title("Start Date").
				Placeholder(dateLayout).
				Value(&m.fb.startDate).
				Validate(validateDate),
			huh.NewInput().
				Title("Deadline").
				Placeholder(dateLayout).
				Value(&m.fb.deadline).
				Validate(validateDate),
		),
		huh.NewGroup(
			huh.NewSelect[model.Priority]().
				Title("Priority").
				Options(priorityOpts...).
				Value(&m.fb.priority),
			huh.NewSelect[model.ProjectStatus]().
				Title("Status").
				Options(statusOpts...).
				Value(&m.fb.status),
			huh.NewSelect[string]().
				Title("Lead").
				Options(leadOpts...).
				Value(&m.fb.leadID),
			huh.NewMultiSelect[string]().
				Title("Developers").
				Options(devOpts...).
				Value(&m.fb.developerIDs),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func validateDate(s string) error {
	if _, err := time.Parse(dateLayout, strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("use YYYY-MM-DD")
	}
	return nil
}

func (m Model) buildConfirmForm(p model.Project) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete project %q?", p.Name)).
				Description("Tasks in this project will be deleted too.").
				Affirmative("Yes, delete").
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
		start, _ := time.Parse(dateLayout, strings.TrimSpace(m.fb.startDate))
		deadline, _ := time.Parse(dateLayout, strings.TrimSpace(m.fb.deadline))
		_, err := m.store.AddProject(store.ProjectInput{
			Name:         m.fb.name,
			Description:  m.fb.description,
			StartDate:    start,
			Deadline:     deadline,
			Priority:     m.fb.priority,
			Status:       m.fb.status,
			LeadID:       m.fb.leadID,
			DeveloperIDs: m.fb.developerIDs,
		})
		if err != nil {
			m.statusMsg = fmt.Sprintf("Error: %v", err)
		} else {
			m.statusMsg = "Project created"
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
			if err := m.store.DeleteProject(m.deletingID); err != nil {
				m.statusMsg = fmt.Sprintf("Error: %v", err)
			} else {
				m.statusMsg = "Project deleted"
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
	case modeSearch:
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the projects page.
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

	b.WriteString(theme.TitleStyle.Render("Projects"))
	b.WriteString("\n")
	b.WriteString(theme.SubtitleStyle.Render("Manage and track your team's projects."))
	b.WriteString("\n\n")

	if m.mode == modeSearch || m.search.Value() != "" {
		b.WriteString(m.search.View())
		b.WriteString("\n\n")
	}

	users := m.store.Users()
	byID := make(map[string]model.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	projects := m.visible()
	if len(projects) == 0 {
		b.WriteString(theme.SubtitleStyle.Italic(true).Render("No projects to show."))
	}
	for i, p := range projects {
		b.WriteString(m.renderCard(p, byID, i == m.selectedIdx))
		b.WriteString("\n")
	}

	if m.statusMsg != "" {
		b.WriteString("\n")
		b.WriteString(theme.NoticeStyle.Render(m.statusMsg))
	}

	b.WriteString("\n")
	b.WriteString(theme.HelpStyle.Render("/ search | n new | d delete | j/k move"))

	return lipgloss.NewStyle().Padding(1, 2).Width(m.width).Render(b.String())
}

func (m Model) renderCard(p model.Project, byID map[string]model.User, selected bool) string {
	status := theme.ProjectStatusStyle(p.Status).Render(string(p.Status))
	priority := theme.PriorityStyle(p.Priority).Render(string(p.Priority))

	lead := "unassigned"
	if u, ok := byID[p.LeadID]; ok {
		lead = u.Name
	}
	var devs []string
	for _, id := range p.DeveloperIDs {
		if u, ok := byID[id]; ok {
			devs = append(devs, u.Initial())
		}
	}

	header := fmt.Sprintf("%s  %s  %s", theme.TitleStyle.Render(p.Name), status, priority)
	meta := theme.SubtitleStyle.Render(fmt.Sprintf(
		"due %s | lead %s | devs [%s]",
		p.Deadline.Format("Jan 2, 2006"), lead, strings.Join(devs, " "),
	))
	progress := fmt.Sprintf("%s %3d%%", theme.ProgressBar(p.Progress, 24), p.Progress)

	card := theme.CardStyle.Width(m.cardWidth())
	if selected {
		card = card.BorderForeground(theme.ColorIndigo)
	}
	return card.Render(lipgloss.JoinVertical(lipgloss.Left,
		header,
		theme.SubtitleStyle.Render(p.Description),
		meta,
		progress,
	))
}

func (m Model) viewForm(f *huh.Form) string {
	if f == nil {
		return ""
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(f.View())
}

// Capturing reports whether a form or the search box currently owns the
// keyboard.
func (m Model) Capturing() bool {
	return m.mode != modeList
}

// SetSize updates dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.search.Width = width - 8
}

func (m Model) cardWidth() int {
	w := m.width - 6
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
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
