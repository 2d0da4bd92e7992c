package tasks

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
	modeBoard pageMode = iota
	modeSearch
	modeForm
	modeMove
	modeConfirmDelete
)

const dateLayout = "2006-01-02"

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	projectID   string
	title       string
	description string
	assigneeID  string
	deadline    string
	status      model.TaskStatus
	moveTo      model.TaskStatus
	confirm     bool
}

// Model is the tasks page: a board of the viewer's visible tasks grouped by
// status. Developers see only their own tasks; every role can create tasks,
// move them between statuses, and nudge progress.
type Model struct {
	store       *store.Store
	keys        *keys.KeyMap
	mode        pageMode
	search      textinput.Model
	col         int
	row         int
	form        *huh.Form
	moveForm    *huh.Form
	confirmForm *huh.Form
	fb          *formBindings
	targetID    string
	statusMsg   string
	width       int
	height      int
}

// New creates a tasks page model.
func New(s *store.Store, k *keys.KeyMap, width, height int) Model {
	ti := textinput.New()
	ti.Placeholder = "Search tasks..."
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

// board returns the viewer's tasks grouped into the board columns.
func (m Model) board() map[model.TaskStatus][]model.Task {
	u, ok := m.store.CurrentUser()
	if !ok {
		return nil
	}
	visible := view.SearchTasks(m.search.Value(), view.VisibleTasks(u, m.store.Tasks()))
	return view.TasksByStatus(visible)
}

// selectedTask returns the task under the cursor, if any.
func (m Model) selectedTask() (model.Task, bool) {
	cols := model.BoardStatuses()
	if m.col < 0 || m.col >= len(cols) {
		return model.Task{}, false
	}
	column := m.board()[cols[m.col]]
	if m.row < 0 || m.row >= len(column) {
		return model.Task{}, false
	}
	return column[m.row], true
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
	case modeBoard:
		return m.handleBoardKey(msg)
	case modeSearch:
		return m.handleSearchKey(msg)
	case modeForm:
		return m.updateForm(msg)
	case modeMove:
		return m.updateMove(msg)
	case modeConfirmDelete:
		return m.updateConfirm(msg)
	}
	return m, nil
}

func (m Model) handleBoardKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	cols := model.BoardStatuses()

	switch {
	case key.Matches(msg, m.keys.Right):
		m.col = (m.col + 1) % len(cols)
		m.row = 0
		return m, nil

	case key.Matches(msg, m.keys.Left):
		m.col--
		if m.col < 0 {
			m.col = len(cols) - 1
		}
		m.row = 0
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if n := len(m.board()[cols[m.col]]); n > 0 {
			m.row = (m.row + 1) % n
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if n := len(m.board()[cols[m.col]]); n > 0 {
			m.row--
			if m.row < 0 {
				m.row = n - 1
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.Search):
		m.mode = modeSearch
		m.search.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.New):
		if len(m.store.Projects()) == 0 {
			m.statusMsg = "Create a project before adding tasks"
			return m, nil
		}
		u, _ := m.store.CurrentUser()
		m.fb.projectID = m.store.Projects()[0].ID
		m.fb.title = ""
		m.fb.description = ""
		m.fb.assigneeID = u.ID
		m.fb.deadline = ""
		m.fb.status = model.TaskPending
		m.form = m.buildForm()
		m.mode = modeForm
		m.statusMsg = ""
		return m, m.form.Init()

	case key.Matches(msg, m.keys.MoveStatus):
		t, ok := m.selectedTask()
		if !ok {
			return m, nil
		}
		m.targetID = t.ID
		m.fb.moveTo = t.Status
		m.moveForm = m.buildMoveForm(t)
		m.mode = modeMove
		return m, m.moveForm.Init()

	case key.Matches(msg, m.keys.ProgressUp):
		return m.nudgeProgress(5)

	case key.Matches(msg, m.keys.ProgressDown):
		return m.nudgeProgress(-5)

	case key.Matches(msg, m.keys.Delete):
		t, ok := m.selectedTask()
		if !ok {
			return m, nil
		}
		m.targetID = t.ID
		m.fb.confirm = false
		m.confirmForm = m.buildConfirmForm(t)
		m.mode = modeConfirmDelete
		return m, m.confirmForm.Init()
	}
	return m, nil
}

// nudgeProgress moves the selected task's progress by delta, clamped to
// [0, 100] here so the store never sees an out-of-range patch.
func (m Model) nudgeProgress(delta int) (Model, tea.Cmd) {
	t, ok := m.selectedTask()
	if !ok {
		return m, nil
	}
	p := t.Progress + delta
	if p < 0 {
		p = 0
	}
	if p > 100 {
		p = 100
	}
	if err := m.store.UpdateTask(t.ID, store.TaskPatch{Progress: &p}); err != nil {
		m.statusMsg = fmt.Sprintf("Error: %v", err)
	}
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.mode = modeBoard
		m.search.Blur()
		m.row = 0
		return m, nil
	case "esc":
		m.mode = modeBoard
		m.search.SetValue("")
		m.search.Blur()
		m.row = 0
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m Model) buildForm() *huh.Form {
	var projectOpts []huh.Option[string]
	for _, p := range m.store.Projects() {
		projectOpts = append(projectOpts, huh.NewOption(p.Name, p.ID))
	}

	var assigneeOpts []huh.Option[string]
	for _, u := range m.store.Users() {
		if u.Role == model.RoleDeveloper {
			assigneeOpts = append(assigneeOpts, huh.NewOption(u.Name, u.ID))
		}
	}

	var statusOpts []huh.Option[model.TaskStatus]
	for _, st := range model.TaskStatuses() {
		statusOpts = append(statusOpts, huh.NewOption(string(st), st))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Project").
				Options(projectOpts...).
				Value(&m.fb.projectID),
			huh.NewInput().
				Title("Title").
				Placeholder("Task title").
				Value(&m.fb.title).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("title is required")
					}
					return nil
				}),
			huh.NewText().
				Title("Description").
				Placeholder("Optional description").
				Value(&m.fb.description),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Assign To").
				Options(assigneeOpts...).
				Value(&m.fb.assigneeID),
			huh.NewInput().
				Title("Deadline").
				Placeholder(dateLayout).
				Value(&m.fb.deadline).
				Validate(func(s string) error {
					if _, err := time.Parse(dateLayout, strings.TrimSpace(s)); err != nil {
						return fmt.Errorf("use YYYY-MM-DD")
					}
					return nil
				}),
			huh.NewSelect[model.TaskStatus]().
				Title("Status").
				Options(statusOpts...).
				Value(&m.fb.status),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) buildMoveForm(t model.Task) *huh.Form {
	var opts []huh.Option[model.TaskStatus]
	for _, st := range model.TaskStatuses() {
		label := string(st)
		if st == t.Status {
			label += " (current)"
		}
		opts = append(opts, huh.NewOption(label, st))
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[model.TaskStatus]().
				Title(fmt.Sprintf("Move %q to", t.Title)).
				Options(opts...).
				Value(&m.fb.moveTo),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) buildConfirmForm(t model.Task) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete task %q?", t.Title)).
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
		m.mode = modeBoard
		deadline, _ := time.Parse(dateLayout, strings.TrimSpace(m.fb.deadline))
		_, err := m.store.AddTask(store.TaskInput{
			ProjectID:   m.fb.projectID,
			Title:       m.fb.title,
			Description: m.fb.description,
			AssigneeID:  m.fb.assigneeID,
			Deadline:    deadline,
			Status:      m.fb.status,
			Progress:    0,
		})
		if err != nil {
			m.statusMsg = fmt.Sprintf("Error: %v", err)
		} else {
			m.statusMsg = "Task created"
		}
		return m, nil
	}
	if m.form.State == huh.StateAborted {
		m.mode = modeBoard
		return m, nil
	}
	return m, cmd
}

func (m Model) updateMove(msg tea.Msg) (Model, tea.Cmd) {
	if m.moveForm == nil {
		return m, nil
	}
	mdl, cmd := m.moveForm.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.moveForm = f
	}
	if m.moveForm.State == huh.StateCompleted {
		m.mode = modeBoard
		st := m.fb.moveTo
		if err := m.store.UpdateTask(m.targetID, store.TaskPatch{Status: &st}); err != nil {
			m.statusMsg = fmt.Sprintf("Error: %v", err)
		} else {
			m.statusMsg = fmt.Sprintf("Task moved to %s", st)
		}
		m.row = 0
		return m, nil
	}
	if m.moveForm.State == huh.StateAborted {
		m.mode = modeBoard
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
		m.mode = modeBoard
		if m.fb.confirm {
			m.store.DeleteTask(m.targetID)
			m.statusMsg = "Task deleted"
			m.row = 0
		}
		return m, nil
	}
	if m.confirmForm.State == huh.StateAborted {
		m.mode = modeBoard
		return m, nil
	}
	return m, cmd
}

func (m Model) updateActiveForm(msg tea.Msg) (Model, tea.Cmd) {
	switch m.mode {
	case modeForm:
		return m.updateForm(msg)
	case modeMove:
		return m.updateMove(msg)
	case modeConfirmDelete:
		return m.updateConfirm(msg)
	case modeSearch:
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the tasks page.
func (m Model) View() string {
	switch m.mode {
	case modeForm:
		return m.viewForm(m.form)
	case modeMove:
		return m.viewForm(m.moveForm)
	case modeConfirmDelete:
		return m.viewForm(m.confirmForm)
	default:
		return m.viewBoard()
	}
}

func (m Model) viewBoard() string {
	var b strings.Builder

	b.WriteString(theme.TitleStyle.Render("Tasks"))
	b.WriteString("\n")
	b.WriteString(theme.SubtitleStyle.Render("Manage your daily tasks and track progress."))
	b.WriteString("\n\n")

	if m.mode == modeSearch || m.search.Value() != "" {
		b.WriteString(m.search.View())
		b.WriteString("\n\n")
	}

	projects := m.store.Projects()
	projectNames := make(map[string]string, len(projects))
	for _, p := range projects {
		projectNames[p.ID] = p.Name
	}

	board := m.board()
	cols := model.BoardStatuses()
	rendered := make([]string, 0, len(cols))
	for ci, st := range cols {
		rendered = append(rendered, m.renderColumn(st, board[st], projectNames, ci == m.col))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, rendered...))

	if m.statusMsg != "" {
		b.WriteString("\n")
		b.WriteString(theme.NoticeStyle.Render(m.statusMsg))
	}

	b.WriteString("\n")
	b.WriteString(theme.HelpStyle.Render("/ search | n new | m move | +/- progress | d delete | h/l column | j/k row"))

	return lipgloss.NewStyle().Padding(1, 2).Width(m.width).Render(b.String())
}

func (m Model) renderColumn(st model.TaskStatus, tasks []model.Task, projectNames map[string]string, active bool) string {
	header := fmt.Sprintf("%s %s",
		theme.TaskStatusStyle(st).Render(string(st)),
		theme.SubtitleStyle.Render(fmt.Sprintf("(%d)", len(tasks))),
	)

	lines := []string{header, ""}
	if len(tasks) == 0 {
		lines = append(lines, theme.SubtitleStyle.Italic(true).Render("empty"))
	}
	for i, t := range tasks {
		title := truncate(t.Title, m.columnWidth()-6)
		line := title + "\n" +
			theme.SubtitleStyle.Render(projectNames[t.ProjectID]) + "\n" +
			fmt.Sprintf("%s %3d%%", theme.ProgressBar(t.Progress, 10), t.Progress)
		if active && i == m.row {
			lines = append(lines, theme.SelectedItemStyle.Render(line))
		} else {
			lines = append(lines, theme.ListItemStyle.Render(line))
		}
		lines = append(lines, "")
	}

	col := theme.CardStyle.Width(m.columnWidth())
	if active {
		col = col.BorderForeground(theme.ColorIndigo)
	}
	return col.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m Model) viewForm(f *huh.Form) string {
	if f == nil {
		return ""
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(f.View())
}

// truncate shortens s to at most max runes, ending in an ellipsis when cut.
// Counting runes rather than bytes keeps multibyte titles intact.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max < 1 {
		return ""
	}
	return string(runes[:max-1]) + "…"
}

// Capturing reports whether a form or the search box currently owns the
// keyboard.
func (m Model) Capturing() bool {
	return m.mode != modeBoard
}

// SetSize updates dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.search.Width = width - 8
}

func (m Model) columnWidth() int {
	w := (m.width - 8) / len(model.BoardStatuses())
	if w < 22 {
		w = 22
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
