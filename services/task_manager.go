package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sahilchouksey/task-tracker/database"
	"github.com/sahilchouksey/task-tracker/model"
	"github.com/sirupsen/logrus"
)

// StatusFilter selects which tasks a listing returns.
type StatusFilter string

const (
	StatusAll       StatusFilter = "all"
	StatusPending   StatusFilter = "pending"
	StatusCompleted StatusFilter = "completed"
	StatusOverdue   StatusFilter = "overdue"
)

// ParseStatusFilter maps user input to a filter. Anything unrecognised means all tasks.
func ParseStatusFilter(value string) StatusFilter {
	switch StatusFilter(value) {
	case StatusPending, StatusCompleted, StatusOverdue:
		return StatusFilter(value)
	default:
		return StatusAll
	}
}

// Session is the in-memory record of who is logged in. It is never persisted.
type Session struct {
	ID        uuid.UUID
	User      model.User
	StartedAt time.Time
}

// TaskManager applies the task and account rules on top of a Storage.
// It keeps no task state between calls; every query re-reads storage.
// The only state it holds is the current session, which lives as long as
// the manager does.
type TaskManager struct {
	storage database.Storage
	log     logrus.FieldLogger
	session *Session
}

// NewTaskManager creates a manager with nobody logged in.
func NewTaskManager(storage database.Storage, log logrus.FieldLogger) *TaskManager {
	return &TaskManager{
		storage: storage,
		log:     log,
	}
}

// IsAuthenticated reports whether a user is logged in.
func (m *TaskManager) IsAuthenticated() bool {
	return m.session != nil
}

// CurrentSession returns the active session, or nil.
func (m *TaskManager) CurrentSession() *Session {
	return m.session
}

// Login checks the credentials and, on success, makes the user current.
// A failed attempt leaves any existing session in place.
//
// Passwords are compared as plain text. This mirrors how they are stored and
// is not suitable for real accounts.
func (m *TaskManager) Login(username, password string) (bool, error) {
	user, err := m.storage.GetUser(username)
	if errors.Is(err, database.ErrUserNotFound) {
		m.log.WithField("username", username).Info("Login failed: unknown user")
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to look up user: %w", err)
	}
	if user.Password != password {
		m.log.WithField("username", username).Info("Login failed: wrong password")
		return false, nil
	}

	m.session = &Session{
		ID:        uuid.New(),
		User:      *user,
		StartedAt: time.Now(),
	}
	m.log.WithFields(logrus.Fields{
		"username": username,
		"session":  m.session.ID,
	}).Info("User logged in")
	return true, nil
}

// Register creates a user unless the username is already taken. It does not log the user in.
func (m *TaskManager) Register(username, password string) (bool, error) {
	_, err := m.storage.GetUser(username)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, database.ErrUserNotFound) {
		return false, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := m.storage.AddUser(model.User{Username: username, Password: password}); err != nil {
		return false, fmt.Errorf("failed to save user: %w", err)
	}
	m.log.WithField("username", username).Info("User registered")
	return true, nil
}

// Logout ends the current session, if any.
func (m *TaskManager) Logout() {
	if m.session != nil {
		m.log.WithField("session", m.session.ID).Info("User logged out")
	}
	m.session = nil
}

// AddTask creates and stores a task. A nil dueDate makes it due immediately.
// The returned value is the one that was built, not a fresh read.
func (m *TaskManager) AddTask(title, description string, dueDate *time.Time) (model.Task, error) {
	task := model.NewTask(title, description, dueDate)
	if err := m.storage.AddTask(task); err != nil {
		return model.Task{}, fmt.Errorf("failed to add task: %w", err)
	}
	m.log.WithField("title", title).Debug("Task added")
	return task, nil
}

// GetAllTasks returns every task in stored order.
func (m *TaskManager) GetAllTasks() ([]model.Task, error) {
	return m.storage.GetAllTasks()
}

// GetPendingTasks returns the tasks that are not completed.
func (m *TaskManager) GetPendingTasks() ([]model.Task, error) {
	return m.filter(func(t model.Task) bool { return !t.Completed })
}

// GetCompletedTasks returns the completed tasks.
func (m *TaskManager) GetCompletedTasks() ([]model.Task, error) {
	return m.filter(func(t model.Task) bool { return t.Completed })
}

// GetOverdueTasks returns open tasks whose due date has passed.
func (m *TaskManager) GetOverdueTasks() ([]model.Task, error) {
	now := time.Now()
	return m.filter(func(t model.Task) bool { return t.IsOverdueAt(now) })
}

// IndexedTask pairs a task with its position in the full listing, which is
// the index CompleteTask, UpdateTask and DeleteTask expect.
type IndexedTask struct {
	Index int
	Task  model.Task
}

// ListTasks returns the tasks matching status together with their positions.
func (m *TaskManager) ListTasks(status StatusFilter) ([]IndexedTask, error) {
	now := time.Now()
	switch status {
	case StatusPending:
		return m.filterIndexed(func(t model.Task) bool { return !t.Completed })
	case StatusCompleted:
		return m.filterIndexed(func(t model.Task) bool { return t.Completed })
	case StatusOverdue:
		return m.filterIndexed(func(t model.Task) bool { return t.IsOverdueAt(now) })
	default:
		return m.filterIndexed(func(model.Task) bool { return true })
	}
}

func (m *TaskManager) filter(keep func(model.Task) bool) ([]model.Task, error) {
	indexed, err := m.filterIndexed(keep)
	if err != nil {
		return nil, err
	}
	tasks := make([]model.Task, 0, len(indexed))
	for _, it := range indexed {
		tasks = append(tasks, it.Task)
	}
	return tasks, nil
}

func (m *TaskManager) filterIndexed(keep func(model.Task) bool) ([]IndexedTask, error) {
	tasks, err := m.storage.GetAllTasks()
	if err != nil {
		return nil, err
	}
	filtered := make([]IndexedTask, 0, len(tasks))
	for i, task := range tasks {
		if keep(task) {
			filtered = append(filtered, IndexedTask{Index: i, Task: task})
		}
	}
	return filtered, nil
}

// CompleteTask marks the task at index as completed.
// It returns false without writing anything when index is out of range.
func (m *TaskManager) CompleteTask(index int) (bool, error) {
	tasks, err := m.storage.GetAllTasks()
	if err != nil {
		return false, err
	}
	if index < 0 || index >= len(tasks) {
		return false, nil
	}

	task := tasks[index]
	task.MarkCompleted()
	return m.storage.UpdateTask(index, task)
}

// DeleteTask removes the task at index. Later tasks move down by one.
func (m *TaskManager) DeleteTask(index int) (bool, error) {
	return m.storage.DeleteTask(index)
}

// UpdateTask overwrites the supplied fields of the task at index.
//
// An empty title or description, and a nil or zero due date, count as "not
// supplied" and keep the stored value. A field therefore cannot be cleared
// to blank through this call.
func (m *TaskManager) UpdateTask(index int, title, description string, dueDate *time.Time) (bool, error) {
	tasks, err := m.storage.GetAllTasks()
	if err != nil {
		return false, err
	}
	if index < 0 || index >= len(tasks) {
		return false, nil
	}

	task := tasks[index]
	if title != "" {
		task.Title = title
	}
	if description != "" {
		task.Description = description
	}
	if dueDate != nil && !dueDate.IsZero() {
		task.DueDate = *dueDate
	}
	return m.storage.UpdateTask(index, task)
}
