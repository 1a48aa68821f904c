package services

import (
	"strings"
	"testing"
	"time"

	"github.com/sahilchouksey/task-tracker/model"
	"github.com/sahilchouksey/task-tracker/utils"
	"github.com/stretchr/testify/assert"
)

func TestNotifyOverdueRequiresConfig(t *testing.T) {
	svc := NewEmailService(EmailConfig{Host: "localhost", Port: 25, From: "me@example.com"}, utils.DiscardLogger())
	assert.False(t, svc.IsConfigured())
	assert.ErrorIs(t, svc.NotifyOverdue([]model.Task{{Title: "x"}}), ErrSMTPNotConfigured)
}

func TestOverdueDigestBody(t *testing.T) {
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.Local)
	tasks := []model.Task{
		{Title: "Pay rent", Description: "landlord", DueDate: now.Add(-3 * model.Day)},
		{Title: "Call bank", DueDate: now.Add(-time.Hour)},
	}

	body := buildOverdueDigestBody(tasks, now)
	assert.Contains(t, body, "- Pay rent (due 2026-10-15, 3 day(s) ago)\r\n  landlord\r\n")
	assert.Contains(t, body, "- Call bank (due 2026-10-18, 0 day(s) ago)\r\n")
	assert.Equal(t, 1, strings.Count(body, "landlord"))
}

func TestBuildMessageHeaders(t *testing.T) {
	svc := NewEmailService(EmailConfig{From: "tracker@example.com"}, utils.DiscardLogger())
	msg := svc.buildMessage("me@example.com", "2 overdue task(s)", "body")

	headers, body, found := strings.Cut(msg, "\r\n\r\n")
	assert.True(t, found)
	assert.Equal(t, "body", body)
	assert.Contains(t, headers, "To: me@example.com")
	assert.Contains(t, headers, "Subject: 2 overdue task(s)")
	assert.Contains(t, headers, "From: Task Tracker <tracker@example.com>")
}
