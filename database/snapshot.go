package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/sahilchouksey/task-tracker/model"
	"github.com/sirupsen/logrus"
)

// SnapshotStore keeps tasks and users as two JSON arrays on a Medium. Every
// operation reads the whole collection and every mutation writes it back.
//
// A collection that is missing or cannot be decoded reads as empty. The
// next write then replaces whatever was there. Any other read failure is
// returned and nothing is written.
type SnapshotStore struct {
	medium    Medium
	tasksName string
	usersName string
	log       logrus.FieldLogger
}

// NewSnapshotStore creates a store over medium using the given resource names
// (file paths for FileMedium, keys for the others).
func NewSnapshotStore(medium Medium, tasksName, usersName string, log logrus.FieldLogger) *SnapshotStore {
	return &SnapshotStore{
		medium:    medium,
		tasksName: tasksName,
		usersName: usersName,
		log:       log,
	}
}

func (s *SnapshotStore) Init() error {
	s.log.WithFields(logrus.Fields{
		"tasks": s.tasksName,
		"users": s.usersName,
	}).Debug("Using snapshot storage")
	if err := s.medium.Ping(context.Background()); err != nil {
		return fmt.Errorf("failed to reach storage medium: %w", err)
	}
	return nil
}

func (s *SnapshotStore) Close() error {
	return s.medium.Close()
}

// HealthCheck verifies the medium is reachable
func (s *SnapshotStore) HealthCheck() error {
	return s.medium.Ping(context.Background())
}

// LoadTasks returns the stored task records. Any record whose timestamps do
// not parse makes the whole collection count as corrupt.
func (s *SnapshotStore) LoadTasks() ([]model.TaskRecord, error) {
	var records []model.TaskRecord
	found, err := s.load(s.tasksName, &records)
	if err != nil {
		return nil, err
	}
	if !found || records == nil {
		return []model.TaskRecord{}, nil
	}
	for i, record := range records {
		if _, err := record.ToTask(); err != nil {
			s.log.WithError(err).WithFields(logrus.Fields{
				"resource": s.tasksName,
				"position": i,
			}).Warn("Discarding unreadable task collection")
			return []model.TaskRecord{}, nil
		}
	}
	return records, nil
}

// SaveTasks overwrites the whole task collection.
func (s *SnapshotStore) SaveTasks(records []model.TaskRecord) error {
	if records == nil {
		records = []model.TaskRecord{}
	}
	return s.save(s.tasksName, records)
}

// LoadUsers returns the stored user records.
func (s *SnapshotStore) LoadUsers() ([]model.UserRecord, error) {
	var records []model.UserRecord
	found, err := s.load(s.usersName, &records)
	if err != nil {
		return nil, err
	}
	if !found || records == nil {
		return []model.UserRecord{}, nil
	}
	return records, nil
}

// SaveUsers overwrites the whole user collection.
func (s *SnapshotStore) SaveUsers(records []model.UserRecord) error {
	if records == nil {
		records = []model.UserRecord{}
	}
	return s.save(s.usersName, records)
}

func (s *SnapshotStore) AddTask(task model.Task) error {
	if err := task.Validate(); err != nil {
		return err
	}
	records, err := s.LoadTasks()
	if err != nil {
		return err
	}
	records = append(records, task.ToRecord())
	return s.SaveTasks(records)
}

func (s *SnapshotStore) GetAllTasks() ([]model.Task, error) {
	records, err := s.LoadTasks()
	if err != nil {
		return nil, err
	}
	tasks := make([]model.Task, 0, len(records))
	for _, record := range records {
		task, err := record.ToTask()
		if err != nil {
			// LoadTasks already rejected unparsable collections.
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

func (s *SnapshotStore) UpdateTask(index int, task model.Task) (bool, error) {
	if err := task.Validate(); err != nil {
		return false, err
	}
	records, err := s.LoadTasks()
	if err != nil {
		return false, err
	}
	if !validIndex(index, len(records)) {
		return false, nil
	}
	records[index] = task.ToRecord()
	if err := s.SaveTasks(records); err != nil {
		return false, err
	}
	return true, nil
}

func (s *SnapshotStore) DeleteTask(index int) (bool, error) {
	records, err := s.LoadTasks()
	if err != nil {
		return false, err
	}
	if !validIndex(index, len(records)) {
		return false, nil
	}
	records = slices.Delete(records, index, index+1)
	if err := s.SaveTasks(records); err != nil {
		return false, err
	}
	return true, nil
}

func (s *SnapshotStore) AddUser(user model.User) error {
	records, err := s.LoadUsers()
	if err != nil {
		return err
	}
	records = append(records, user.ToRecord())
	return s.SaveUsers(records)
}

// GetUser returns the first user whose username matches exactly.
func (s *SnapshotStore) GetUser(username string) (*model.User, error) {
	records, err := s.LoadUsers()
	if err != nil {
		return nil, err
	}
	for _, record := range records {
		if record.Username == username {
			user := record.ToUser()
			return &user, nil
		}
	}
	return nil, ErrUserNotFound
}

// load decodes the named snapshot into dest and reports whether it held data.
// A missing or undecodable snapshot is not an error.
func (s *SnapshotStore) load(name string, dest interface{}) (bool, error) {
	data, err := s.medium.Read(context.Background(), name)
	if errors.Is(err, ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to load %s: %w", name, err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		s.log.WithError(err).WithField("resource", name).Warn("Collection is not valid JSON, treating as empty")
		return false, nil
	}
	return true, nil
}

func (s *SnapshotStore) save(name string, records interface{}) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", name, err)
	}
	if err := s.medium.Write(context.Background(), name, data); err != nil {
		return err
	}
	s.log.WithField("resource", name).Debug("Collection saved")
	return nil
}
