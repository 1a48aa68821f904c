package model

import (
	"errors"
	"fmt"
	"time"
)

// Day is the unit DaysUntilDue counts in.
const Day = 24 * time.Hour

// TimestampLayout is the layout task timestamps are persisted with.
const TimestampLayout = time.RFC3339Nano

// ErrTimestampOutOfRange is returned for timestamps TimestampLayout cannot
// round-trip, which is any year outside 0000 to 9999.
var ErrTimestampOutOfRange = errors.New("timestamp year must be between 0000 and 9999")

// legacyLayouts are offset-less ISO-8601 forms accepted on read, interpreted in local time.
var legacyLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// Task is a single tracked item. It has no id: its position in the stored
// collection is the only way to address it.
type Task struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	DueDate     time.Time `json:"due_date"`
	Completed   bool      `json:"completed"`
}

// NewTask builds a pending task. A nil dueDate means the task is due now.
func NewTask(title, description string, dueDate *time.Time) Task {
	now := time.Now()
	task := Task{
		Title:       title,
		Description: description,
		CreatedAt:   now,
		DueDate:     now,
	}
	if dueDate != nil && !dueDate.IsZero() {
		task.DueDate = *dueDate
	}
	return task
}

// MarkCompleted marks the task as completed
func (t *Task) MarkCompleted() {
	t.Completed = true
}

// IsOverdue reports whether the due date has passed and the task is still open.
func (t Task) IsOverdue() bool {
	return t.IsOverdueAt(time.Now())
}

// IsOverdueAt is IsOverdue evaluated against the given clock reading.
func (t Task) IsOverdueAt(now time.Time) bool {
	return t.DueDate.Before(now) && !t.Completed
}

// DaysUntilDue returns the whole days left until the due date, rounded up.
// It is 0 once the due date has been reached.
func (t Task) DaysUntilDue() int {
	return t.DaysUntilDueAt(time.Now())
}

// DaysUntilDueAt is DaysUntilDue evaluated against the given clock reading.
func (t Task) DaysUntilDueAt(now time.Time) int {
	remaining := t.DueDate.Sub(now)
	if remaining <= 0 {
		return 0
	}
	return int((remaining + Day - 1) / Day)
}

// TaskRecord is the persisted, flat form of a Task.
type TaskRecord struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
	DueDate     string `json:"due_date"`
	Completed   bool   `json:"completed"`
}

// Validate reports whether both timestamps can be stored and read back.
func (t Task) Validate() error {
	if err := checkYear("created_at", t.CreatedAt); err != nil {
		return err
	}
	return checkYear("due_date", t.DueDate)
}

func checkYear(field string, ts time.Time) error {
	if year := ts.Year(); year < 0 || year > 9999 {
		return fmt.Errorf("invalid %s year %d: %w", field, year, ErrTimestampOutOfRange)
	}
	return nil
}

// ToRecord serialises the task for storage.
func (t Task) ToRecord() TaskRecord {
	return TaskRecord{
		Title:       t.Title,
		Description: t.Description,
		CreatedAt:   t.CreatedAt.Format(TimestampLayout),
		DueDate:     t.DueDate.Format(TimestampLayout),
		Completed:   t.Completed,
	}
}

// ToTask rebuilds a Task, parsing the textual timestamps.
func (r TaskRecord) ToTask() (Task, error) {
	createdAt, err := ParseTimestamp(r.CreatedAt)
	if err != nil {
		return Task{}, fmt.Errorf("invalid created_at %q: %w", r.CreatedAt, err)
	}
	dueDate, err := ParseTimestamp(r.DueDate)
	if err != nil {
		return Task{}, fmt.Errorf("invalid due_date %q: %w", r.DueDate, err)
	}
	return Task{
		Title:       r.Title,
		Description: r.Description,
		CreatedAt:   createdAt,
		DueDate:     dueDate,
		Completed:   r.Completed,
	}, nil
}

// ParseTimestamp reads an ISO-8601 timestamp, with or without a zone offset.
func ParseTimestamp(value string) (time.Time, error) {
	if ts, err := time.Parse(TimestampLayout, value); err == nil {
		return ts, nil
	}
	var lastErr error
	for _, layout := range legacyLayouts {
		ts, err := time.ParseInLocation(layout, value, time.Local)
		if err == nil {
			return ts, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
