package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTaskDefaults(t *testing.T) {
	before := time.Now()
	task := NewTask("write report", "quarterly numbers", nil)
	after := time.Now()

	assert.Equal(t, "write report", task.Title)
	assert.False(t, task.Completed)
	assert.False(t, task.CreatedAt.Before(before))
	assert.False(t, task.CreatedAt.After(after))
	// No explicit due date means the task is due at creation time.
	assert.Equal(t, task.CreatedAt, task.DueDate)
}

func TestNewTaskWithDueDate(t *testing.T) {
	due := time.Date(2030, 5, 1, 0, 0, 0, 0, time.UTC)
	task := NewTask("t", "d", &due)
	assert.Equal(t, due, task.DueDate)

	var zero time.Time
	task = NewTask("t", "d", &zero)
	assert.Equal(t, task.CreatedAt, task.DueDate)
}

func TestOverdue(t *testing.T) {
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

	yesterday := Task{Title: "a", DueDate: now.Add(-Day)}
	assert.True(t, yesterday.IsOverdueAt(now))
	assert.Equal(t, 0, yesterday.DaysUntilDueAt(now))

	yesterday.MarkCompleted()
	assert.False(t, yesterday.IsOverdueAt(now))
	assert.Equal(t, 0, yesterday.DaysUntilDueAt(now))

	dueNow := Task{Title: "b", DueDate: now}
	assert.False(t, dueNow.IsOverdueAt(now), "due date must be strictly in the past")
}

func TestDaysUntilDueRoundsUp(t *testing.T) {
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		due  time.Time
		want int
	}{
		{"in the past", now.Add(-time.Hour), 0},
		{"exactly now", now, 0},
		{"one second ahead", now.Add(time.Second), 1},
		{"exactly tomorrow", now.Add(Day), 1},
		{"just past tomorrow", now.Add(Day + time.Nanosecond), 2},
		{"next week", now.Add(7 * Day), 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := Task{DueDate: tt.due}
			assert.Equal(t, tt.want, task.DaysUntilDueAt(now))
		})
	}
}

func TestTaskRecordRoundTrip(t *testing.T) {
	created := time.Date(2026, 1, 2, 3, 4, 5, 123456789, time.UTC)
	due := created.Add(48 * time.Hour)
	task := Task{Title: "t", Description: "d", CreatedAt: created, DueDate: due, Completed: true}

	record := task.ToRecord()
	assert.Equal(t, "2026-01-02T03:04:05.123456789Z", record.CreatedAt)

	back, err := record.ToTask()
	require.NoError(t, err)
	assert.True(t, back.CreatedAt.Equal(created))
	assert.True(t, back.DueDate.Equal(due))
	assert.Equal(t, task.Title, back.Title)
	assert.True(t, back.Completed)
}

func TestParseTimestampLegacyForms(t *testing.T) {
	ts, err := ParseTimestamp("2024-03-09T14:30:00.250000")
	require.NoError(t, err)
	assert.Equal(t, time.Local, ts.Location())
	assert.Equal(t, 250*time.Millisecond, time.Duration(ts.Nanosecond()))

	ts, err = ParseTimestamp("2024-03-09")
	require.NoError(t, err)
	assert.Equal(t, 9, ts.Day())

	_, err = ParseTimestamp("next tuesday")
	assert.Error(t, err)
}

func TestTaskRecordRejectsBadTimestamp(t *testing.T) {
	record := TaskRecord{Title: "t", CreatedAt: "2024-01-01", DueDate: "soon"}
	_, err := record.ToTask()
	assert.ErrorContains(t, err, "due_date")
}

func TestValidateYearRange(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name    string
		created time.Time
		due     time.Time
		field   string
	}{
		{"in range", now, now, ""},
		{"year zero", time.Date(0, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(9999, 12, 31, 23, 59, 59, 999999999, time.UTC), ""},
		{"due after 9999", now, time.Date(10000, 1, 1, 0, 0, 0, 0, time.UTC), "due_date"},
		{"created before year zero", time.Date(-1, 12, 31, 0, 0, 0, 0, time.UTC), now, "created_at"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := Task{Title: "t", CreatedAt: tt.created, DueDate: tt.due}
			err := task.Validate()
			if tt.field == "" {
				require.NoError(t, err)
				_, err = task.ToRecord().ToTask()
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrTimestampOutOfRange)
			assert.ErrorContains(t, err, tt.field)
		})
	}
}
