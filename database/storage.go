package database

import (
	"errors"

	"github.com/sahilchouksey/task-tracker/model"
)

var (
	// ErrUserNotFound is returned by GetUser when no record has the username.
	ErrUserNotFound = errors.New("user not found")
)

// Storage defines the interface that all storage implementations must satisfy.
//
// Tasks are addressed by their zero-based position in the full listing
// returned by GetAllTasks. Deleting a task shifts every later task down by
// one, so an index is only meaningful until the next mutation.
type Storage interface {
	// Lifecycle methods
	Init() error
	Close() error
	HealthCheck() error

	// Task methods
	AddTask(task model.Task) error
	GetAllTasks() ([]model.Task, error)
	// UpdateTask and DeleteTask return false, and leave storage untouched,
	// when index is out of range.
	UpdateTask(index int, task model.Task) (bool, error)
	DeleteTask(index int) (bool, error)

	// User methods
	AddUser(user model.User) error
	GetUser(username string) (*model.User, error)
}

func validIndex(index, length int) bool {
	return index >= 0 && index < length
}
