package database

import (
	"errors"
	"fmt"
	"time"

	"github.com/sahilchouksey/task-tracker/model"
	"github.com/sirupsen/logrus"
)

// Seeder fills an empty store with a demo account and a handful of tasks.
type Seeder struct {
	store Storage
	log   logrus.FieldLogger
	now   func() time.Time
}

// NewSeeder creates a new seeder instance
func NewSeeder(store Storage, log logrus.FieldLogger) *Seeder {
	return &Seeder{store: store, log: log, now: time.Now}
}

// SeedAll runs all seed functions
func (s *Seeder) SeedAll(username, password string) error {
	if err := s.SeedUser(username, password); err != nil {
		return fmt.Errorf("failed to seed user: %w", err)
	}
	if err := s.SeedTasks(); err != nil {
		return fmt.Errorf("failed to seed tasks: %w", err)
	}
	return nil
}

// SeedUser creates the demo user unless the username is taken or credentials are missing.
func (s *Seeder) SeedUser(username, password string) error {
	if username == "" || password == "" {
		s.log.Warn("No seed credentials given, skipping user creation")
		return nil
	}

	_, err := s.store.GetUser(username)
	if err == nil {
		s.log.WithField("username", username).Info("Seed user already exists, skipping")
		return nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return err
	}

	if err := s.store.AddUser(model.User{Username: username, Password: password}); err != nil {
		return err
	}
	s.log.WithField("username", username).Info("Created seed user")
	return nil
}

// SeedTasks adds one overdue, one completed and two upcoming tasks to an empty collection.
func (s *Seeder) SeedTasks() error {
	existing, err := s.store.GetAllTasks()
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		s.log.WithField("count", len(existing)).Info("Tasks already exist, skipping")
		return nil
	}

	now := s.now()
	tasks := []model.Task{
		{Title: "Renew passport", Description: "Book an appointment", CreatedAt: now, DueDate: now.Add(-2 * model.Day)},
		{Title: "Water plants", Description: "Balcony and kitchen", CreatedAt: now, DueDate: now.Add(-model.Day), Completed: true},
		{Title: "Submit expense report", Description: "March receipts", CreatedAt: now, DueDate: now.Add(3 * model.Day)},
		{Title: "Plan trip", Description: "Shortlist three destinations", CreatedAt: now, DueDate: now.Add(14 * model.Day)},
	}

	for _, task := range tasks {
		if err := s.store.AddTask(task); err != nil {
			return err
		}
	}
	s.log.WithField("count", len(tasks)).Info("Created seed tasks")
	return nil
}
