package store

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/promanage/promanage/internal/model"
)

// Store is the single source of truth for users, projects, tasks, the
// activity log, the session, and the dark-mode flag. State lives for the
// process lifetime only; there is no persistence.
//
// The mutex exists because Bubble Tea commands run on their own goroutines,
// not to support concurrent multi-user mutation. Observers are notified
// synchronously: every observer has run before the mutating call returns.
type Store struct {
	mu        sync.Mutex
	users     []model.User
	projects  []model.Project
	tasks     []model.Task
	activity  []model.ActivityEntry
	current   *model.User
	darkMode  bool
	observers []func()
}

// Seed is the fixed dataset a Store starts from.
type Seed struct {
	Users    []model.User
	Projects []model.Project
	Tasks    []model.Task
	Activity []model.ActivityEntry
}

// New creates a Store initialized with the given seed dataset and initial
// dark-mode flag.
func New(seed Seed, darkMode bool) *Store {
	s := &Store{darkMode: darkMode}
	s.users = append(s.users, seed.Users...)
	s.projects = append(s.projects, seed.Projects...)
	s.tasks = append(s.tasks, seed.Tasks...)
	s.activity = append(s.activity, seed.Activity...)
	return s
}

// Subscribe registers an observer invoked after every completed mutation.
// Observers may read the store; they must not mutate it.
func (s *Store) Subscribe(fn func()) {
	s.mu.Lock()
	s.observers = append(s.observers, fn)
	s.mu.Unlock()
}

// notify runs all observers outside the lock so they can read back.
func (s *Store) notify() {
	s.mu.Lock()
	obs := make([]func(), len(s.observers))
	copy(obs, s.observers)
	s.mu.Unlock()
	for _, fn := range obs {
		fn()
	}
}

// appendActivity records an action for the given user. Caller holds the lock.
func (s *Store) appendActivity(userID, action string) {
	s.activity = append(s.activity, model.ActivityEntry{
		ID:        uuid.New().String(),
		UserID:    userID,
		Action:    action,
		Timestamp: time.Now(),
	})
}

// require checks that a session user exists and holds the capability.
// Caller holds the lock.
func (s *Store) require(c model.Capability) (model.User, error) {
	if s.current == nil {
		return model.User{}, ErrNotLoggedIn
	}
	if !s.current.Role.Can(c) {
		return *s.current, fmt.Errorf("%s requires %s: %w", c, roleList(c), ErrNotAuthorized)
	}
	return *s.current, nil
}

// roleList names the roles holding a capability, for error messages.
func roleList(c model.Capability) string {
	var names []string
	for _, r := range model.Roles() {
		if r.Can(c) {
			names = append(names, r.Label())
		}
	}
	return strings.Join(names, " or ")
}

// === Session ===

// Login looks up a user by username (case-insensitive) among the seed and
// any later-added users. On a match the session is set and true is returned;
// on a miss the session is left unchanged and false is returned. There is no
// password verification; authentication is identity lookup only.
func (s *Store) Login(username string) (model.User, bool) {
	s.mu.Lock()
	for _, u := range s.users {
		if strings.EqualFold(u.Username, strings.TrimSpace(username)) {
			u := u
			s.current = &u
			s.appendActivity(u.ID, "signed in")
			s.mu.Unlock()
			s.notify()
			return u, true
		}
	}
	s.mu.Unlock()
	return model.User{}, false
}

// Logout clears the session unconditionally. Idempotent.
func (s *Store) Logout() {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
	s.notify()
}

// CurrentUser returns the session user, if any.
func (s *Store) CurrentUser() (model.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return model.User{}, false
	}
	return *s.current, true
}

// DarkMode returns the current dark-mode flag.
func (s *Store) DarkMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.darkMode
}

// ToggleDarkMode flips the dark-mode flag and returns the new value.
// It has no side effect beyond the flag itself.
func (s *Store) ToggleDarkMode() bool {
	s.mu.Lock()
	s.darkMode = !s.darkMode
	v := s.darkMode
	s.mu.Unlock()
	s.notify()
	return v
}

// === Projects ===

// ProjectInput carries the caller-supplied fields for a new project.
// Progress always starts at 0 regardless of input.
type ProjectInput struct {
	Name         string
	Description  string
	StartDate    time.Time
	Deadline     time.Time
	Priority     model.Priority
	Status       model.ProjectStatus
	LeadID       string
	DeveloperIDs []string
}

// ProjectPatch is a partial-field update; nil fields are left untouched.
type ProjectPatch struct {
	Name         *string
	Description  *string
	StartDate    *time.Time
	Deadline     *time.Time
	Priority     *model.Priority
	Status       *model.ProjectStatus
	Progress     *int
	LeadID       *string
	DeveloperIDs *[]string
}

// AddProject creates a project from the input. The session user must hold
// the create_project capability. Date ordering and the existence of the
// referenced lead/developer users are NOT validated; the caller is trusted.
func (s *Store) AddProject(in ProjectInput) (model.Project, error) {
	s.mu.Lock()
	actor, err := s.require(model.CapCreateProject)
	if err != nil {
		s.mu.Unlock()
		return model.Project{}, err
	}

	p := model.Project{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Description:  in.Description,
		StartDate:    in.StartDate,
		Deadline:     in.Deadline,
		Priority:     in.Priority,
		Status:       in.Status,
		Progress:     0,
		LeadID:       in.LeadID,
		DeveloperIDs: append([]string(nil), in.DeveloperIDs...),
	}
	s.projects = append(s.projects, p)
	s.appendActivity(actor.ID, fmt.Sprintf("created project %q", p.Name))
	s.mu.Unlock()
	s.notify()
	return p, nil
}

// UpdateProject merges the patch into the project with the given id.
// A missing id is a silent no-op.
func (s *Store) UpdateProject(id string, patch ProjectPatch) error {
	s.mu.Lock()
	if patch.Progress != nil && (*patch.Progress < 0 || *patch.Progress > 100) {
		s.mu.Unlock()
		return &ValidationError{Field: "progress", Reason: "must be between 0 and 100"}
	}

	changed := false
	for i := range s.projects {
		if s.projects[i].ID != id {
			continue
		}
		p := &s.projects[i]
		if patch.Name != nil {
			p.Name = *patch.Name
		}
		if patch.Description != nil {
			p.Description = *patch.Description
		}
		if patch.StartDate != nil {
			p.StartDate = *patch.StartDate
		}
		if patch.Deadline != nil {
			p.Deadline = *patch.Deadline
		}
		if patch.Priority != nil {
			p.Priority = *patch.Priority
		}
		if patch.Status != nil {
			p.Status = *patch.Status
		}
		if patch.Progress != nil {
			p.Progress = *patch.Progress
		}
		if patch.LeadID != nil {
			p.LeadID = *patch.LeadID
		}
		if patch.DeveloperIDs != nil {
			p.DeveloperIDs = append([]string(nil), *patch.DeveloperIDs...)
		}
		changed = true
		break
	}
	s.mu.Unlock()
	if changed {
		s.notify()
	}
	return nil
}

// DeleteProject removes the project with the given id and cascades to the
// tasks referencing it, so no task is ever left pointing at a dead project.
// The session user must hold the delete_project capability. A missing id is
// a silent no-op.
func (s *Store) DeleteProject(id string) error {
	s.mu.Lock()
	actor, err := s.require(model.CapDeleteProject)
	if err != nil {
		s.mu.Unlock()
		return err
	}

	changed := false
	for i := range s.projects {
		if s.projects[i].ID != id {
			continue
		}
		name := s.projects[i].Name
		s.projects = append(s.projects[:i], s.projects[i+1:]...)

		kept := s.tasks[:0]
		for _, t := range s.tasks {
			if t.ProjectID != id {
				kept = append(kept, t)
			}
		}
		s.tasks = kept

		s.appendActivity(actor.ID, fmt.Sprintf("deleted project %q", name))
		changed = true
		break
	}
	s.mu.Unlock()
	if changed {
		s.notify()
	}
	return nil
}

// === Tasks ===

// TaskInput carries the caller-supplied fields for a new task.
type TaskInput struct {
	ProjectID   string
	Title       string
	Description string
	AssigneeID  string
	Deadline    time.Time
	Status      model.TaskStatus
	Progress    int
}

// TaskPatch is a partial-field update; nil fields are left untouched.
// Any status may be patched to any other status.
type TaskPatch struct {
	Title       *string
	Description *string
	AssigneeID  *string
	Deadline    *time.Time
	Status      *model.TaskStatus
	Progress    *int
}

// AddTask creates a task from the input. Any authenticated user may create
// tasks. The task must reference a live project and carry a progress value
// in [0, 100]; both are rejected with a ValidationError.
func (s *Store) AddTask(in TaskInput) (model.Task, error) {
	s.mu.Lock()
	if s.current == nil {
		s.mu.Unlock()
		return model.Task{}, ErrNotLoggedIn
	}
	if in.Progress < 0 || in.Progress > 100 {
		s.mu.Unlock()
		return model.Task{}, &ValidationError{Field: "progress", Reason: "must be between 0 and 100"}
	}
	if !s.projectExists(in.ProjectID) {
		s.mu.Unlock()
		return model.Task{}, &ValidationError{Field: "project", Reason: fmt.Sprintf("no project with id %s", in.ProjectID)}
	}

	t := model.Task{
		ID:          uuid.New().String(),
		ProjectID:   in.ProjectID,
		Title:       in.Title,
		Description: in.Description,
		AssigneeID:  in.AssigneeID,
		Deadline:    in.Deadline,
		Status:      in.Status,
		Progress:    in.Progress,
	}
	s.tasks = append(s.tasks, t)
	s.appendActivity(s.current.ID, fmt.Sprintf("created task %q", t.Title))
	s.mu.Unlock()
	s.notify()
	return t, nil
}

// projectExists reports whether a project with the id is live.
// Caller holds the lock.
func (s *Store) projectExists(id string) bool {
	for _, p := range s.projects {
		if p.ID == id {
			return true
		}
	}
	return false
}

// UpdateTask merges the patch into the task with the given id. A missing id
// is a silent no-op; an out-of-range progress value is a ValidationError.
func (s *Store) UpdateTask(id string, patch TaskPatch) error {
	s.mu.Lock()
	if patch.Progress != nil && (*patch.Progress < 0 || *patch.Progress > 100) {
		s.mu.Unlock()
		return &ValidationError{Field: "progress", Reason: "must be between 0 and 100"}
	}

	changed := false
	for i := range s.tasks {
		if s.tasks[i].ID != id {
			continue
		}
		t := &s.tasks[i]
		if patch.Title != nil {
			t.Title = *patch.Title
		}
		if patch.Description != nil {
			t.Description = *patch.Description
		}
		if patch.AssigneeID != nil {
			t.AssigneeID = *patch.AssigneeID
		}
		if patch.Deadline != nil {
			t.Deadline = *patch.Deadline
		}
		if patch.Status != nil {
			t.Status = *patch.Status
		}
		if patch.Progress != nil {
			t.Progress = *patch.Progress
		}
		changed = true
		break
	}
	s.mu.Unlock()
	if changed {
		s.notify()
	}
	return nil
}

// DeleteTask removes the task with the given id. A missing id is a no-op.
func (s *Store) DeleteTask(id string) {
	s.mu.Lock()
	changed := false
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			title := s.tasks[i].Title
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			if s.current != nil {
				s.appendActivity(s.current.ID, fmt.Sprintf("deleted task %q", title))
			}
			changed = true
			break
		}
	}
	s.mu.Unlock()
	if changed {
		s.notify()
	}
}

// === Users ===

// UserInput carries the caller-supplied fields for a new user.
type UserInput struct {
	Name     string
	Username string
	Role     model.Role
}

// AddUser creates a user. The session user must hold the create_user
// capability, and the role must be one of the known roles.
func (s *Store) AddUser(in UserInput) (model.User, error) {
	s.mu.Lock()
	actor, err := s.require(model.CapCreateUser)
	if err != nil {
		s.mu.Unlock()
		return model.User{}, err
	}
	if !in.Role.Valid() {
		s.mu.Unlock()
		return model.User{}, &ValidationError{Field: "role", Reason: fmt.Sprintf("unknown role %q", in.Role)}
	}

	u := model.User{
		ID:       uuid.New().String(),
		Name:     in.Name,
		Username: in.Username,
		Role:     in.Role,
	}
	s.users = append(s.users, u)
	s.appendActivity(actor.ID, fmt.Sprintf("added %s to the team", u.Name))
	s.mu.Unlock()
	s.notify()
	return u, nil
}

// DeleteUser removes the user with the given id. The session user must hold
// the delete_user capability. A missing id is a silent no-op. Tasks and
// projects referencing the removed user keep their now-orphaned references;
// they are not cascaded or nullified.
func (s *Store) DeleteUser(id string) error {
	s.mu.Lock()
	actor, err := s.require(model.CapDeleteUser)
	if err != nil {
		s.mu.Unlock()
		return err
	}

	changed := false
	for i := range s.users {
		if s.users[i].ID == id {
			name := s.users[i].Name
			s.users = append(s.users[:i], s.users[i+1:]...)
			s.appendActivity(actor.ID, fmt.Sprintf("removed %s from the team", name))
			changed = true
			break
		}
	}
	s.mu.Unlock()
	if changed {
		s.notify()
	}
	return nil
}

// === Read accessors ===
//
// All accessors return copies; callers never alias store internals.

// Users returns all users in insertion order.
func (s *Store) Users() []model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.User(nil), s.users...)
}

// Projects returns all projects in insertion order.
func (s *Store) Projects() []model.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Project, len(s.projects))
	for i, p := range s.projects {
		p.DeveloperIDs = append([]string(nil), p.DeveloperIDs...)
		out[i] = p
	}
	return out
}

// Tasks returns all tasks in insertion order.
func (s *Store) Tasks() []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Task(nil), s.tasks...)
}

// Activity returns the activity log, newest entry first.
func (s *Store) Activity() []model.ActivityEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.ActivityEntry, len(s.activity))
	for i, e := range s.activity {
		out[len(s.activity)-1-i] = e
	}
	return out
}

// UserByID returns the user with the given id.
func (s *Store) UserByID(id string) (model.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID == id {
			return u, true
		}
	}
	return model.User{}, false
}

// ProjectByID returns the project with the given id.
func (s *Store) ProjectByID(id string) (model.Project, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.projects {
		if p.ID == id {
			p.DeveloperIDs = append([]string(nil), p.DeveloperIDs...)
			return p, true
		}
	}
	return model.Project{}, false
}

// TaskByID returns the task with the given id.
func (s *Store) TaskByID(id string) (model.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return model.Task{}, false
}
