package database

import (
	"errors"
	"fmt"
	"time"

	"github.com/sahilchouksey/task-tracker/config"
	"github.com/sahilchouksey/task-tracker/model"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// taskRow is the table form of a task. The auto-increment ID only fixes the
// order; callers still address tasks by position.
type taskRow struct {
	ID          uint      `gorm:"primaryKey"`
	Title       string    `gorm:"not null"`
	Description string    `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"autoCreateTime:false"`
	DueDate     time.Time `gorm:"index"`
	Completed   bool      `gorm:"default:false"`
}

func (taskRow) TableName() string {
	return "tasks"
}

// userRow has no unique constraint on username: duplicates are only
// prevented at registration and lookups take the first match.
type userRow struct {
	ID       uint   `gorm:"primaryKey"`
	Username string `gorm:"index;not null"`
	Password string `gorm:"not null"`
}

func (userRow) TableName() string {
	return "users"
}

func taskRowFrom(task model.Task) taskRow {
	return taskRow{
		Title:       task.Title,
		Description: task.Description,
		CreatedAt:   task.CreatedAt,
		DueDate:     task.DueDate,
		Completed:   task.Completed,
	}
}

func (r taskRow) toTask() model.Task {
	return model.Task{
		Title:       r.Title,
		Description: r.Description,
		CreatedAt:   r.CreatedAt,
		DueDate:     r.DueDate,
		Completed:   r.Completed,
	}
}

type GORMStore struct {
	db  *gorm.DB
	log logrus.FieldLogger
}

// StartGORM initializes a GORM connection to PostgreSQL
func StartGORM(env *config.EnvironmentVariable, log logrus.FieldLogger) (*GORMStore, error) {
	// Build DSN (Data Source Name)
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		env.DB_HOST,
		env.DB_USER_NAME,
		env.DB_PASSWORD,
		env.DB_NAME,
		env.DB_PORT,
		env.DB_SSL_MODE,
	)

	// Configure GORM logger
	gormLogger := logger.Default.LogMode(logger.Warn)
	if env.GO_ENV == "production" {
		gormLogger = logger.Default.LogMode(logger.Error)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// A single local user never needs a wide pool.
	sqlDB.SetMaxIdleConns(2)
	sqlDB.SetMaxOpenConns(4)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.WithField("host", env.DB_HOST).Info("Connected to PostgreSQL")

	return NewGORMStore(db, log), nil
}

// NewGORMStore wraps an already opened connection.
func NewGORMStore(db *gorm.DB, log logrus.FieldLogger) *GORMStore {
	return &GORMStore{db: db, log: log}
}

// Init runs the AutoMigrate to create/update tables
func (s *GORMStore) Init() error {
	if err := s.db.AutoMigrate(&taskRow{}, &userRow{}); err != nil {
		return fmt.Errorf("failed to migrate tables: %w", err)
	}
	s.log.Debug("GORM AutoMigrate completed")
	return nil
}

// Close closes the database connection
func (s *GORMStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// HealthCheck verifies the database connection is alive
func (s *GORMStore) HealthCheck() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func (s *GORMStore) AddTask(task model.Task) error {
	if err := task.Validate(); err != nil {
		return err
	}
	row := taskRowFrom(task)
	return s.db.Create(&row).Error
}

// GetAllTasks retrieves all tasks in insertion order
func (s *GORMStore) GetAllTasks() ([]model.Task, error) {
	var rows []taskRow
	if err := s.db.Order("id asc").Find(&rows).Error; err != nil {
		return nil, err
	}
	tasks := make([]model.Task, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, row.toTask())
	}
	return tasks, nil
}

func (s *GORMStore) UpdateTask(index int, task model.Task) (bool, error) {
	if err := task.Validate(); err != nil {
		return false, err
	}
	row, err := s.rowAt(index)
	if err != nil || row == nil {
		return false, err
	}
	updated := taskRowFrom(task)
	updated.ID = row.ID
	// Save writes zero values too, so un-completing and empty descriptions stick.
	if err := s.db.Save(&updated).Error; err != nil {
		return false, err
	}
	return true, nil
}

func (s *GORMStore) DeleteTask(index int) (bool, error) {
	row, err := s.rowAt(index)
	if err != nil || row == nil {
		return false, err
	}
	if err := s.db.Delete(&taskRow{}, row.ID).Error; err != nil {
		return false, err
	}
	return true, nil
}

func (s *GORMStore) AddUser(user model.User) error {
	row := userRow{Username: user.Username, Password: user.Password}
	return s.db.Create(&row).Error
}

func (s *GORMStore) GetUser(username string) (*model.User, error) {
	var row userRow
	err := s.db.Where("username = ?", username).Order("id asc").First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &model.User{Username: row.Username, Password: row.Password}, nil
}

// rowAt returns the row at the given position, or nil when out of range.
func (s *GORMStore) rowAt(index int) (*taskRow, error) {
	if index < 0 {
		return nil, nil
	}
	var rows []taskRow
	if err := s.db.Order("id asc").Offset(index).Limit(1).Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}
