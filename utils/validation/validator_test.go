package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDueDate(t *testing.T) {
	due, err := ParseDueDate("2026-12-24")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 12, 24, 0, 0, 0, 0, time.Local), due)

	for _, bad := range []string{"24/12/2026", "2026-13-01", "tomorrow", ""} {
		_, err := ParseDueDate(bad)
		assert.ErrorIs(t, err, ErrInvalidDueDate, bad)
	}
}

func TestParseOptionalDueDate(t *testing.T) {
	due, err := ParseOptionalDueDate("")
	require.NoError(t, err)
	assert.Nil(t, due)

	due, err = ParseOptionalDueDate("2026-01-31")
	require.NoError(t, err)
	require.NotNil(t, due)
	assert.Equal(t, 31, due.Day())

	_, err = ParseOptionalDueDate("2026-02-31")
	assert.ErrorIs(t, err, ErrInvalidDueDate)
}

type taskInput struct {
	Title   string `validate:"required"`
	DueDate string `validate:"omitempty,duedate"`
	Status  string `validate:"omitempty,oneof=all pending"`
}

func TestValidateStructAndFormat(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.ValidateStruct(taskInput{Title: "x", DueDate: "2026-01-01"}))
	assert.NoError(t, v.ValidateStruct(taskInput{Title: "x"}))

	err := v.ValidateStruct(taskInput{DueDate: "01-01-2026", Status: "later"})
	require.Error(t, err)

	formatted := FormatValidationErrors(err)
	assert.Equal(t, "Title is required", formatted["title"])
	assert.Equal(t, ErrInvalidDueDate.Error(), formatted["duedate"])
	assert.Equal(t, "Status must be one of: all pending", formatted["status"])
}
