package cron

import (
	"github.com/sirupsen/logrus"
)

// CheckOverdueTasks logs one warning per overdue task and returns how many there were.
func (m *CronManager) CheckOverdueTasks() int {
	jobName := "overdue_reminder"

	overdue, err := m.tasks.GetOverdueTasks()
	if err != nil {
		m.log.WithError(err).WithField("job", jobName).Error("Failed to load overdue tasks")
		return 0
	}

	for _, task := range overdue {
		m.log.WithFields(logrus.Fields{
			"job":      jobName,
			"title":    task.Title,
			"due_date": task.DueDate.Format("2006-01-02"),
		}).Warn("Task is overdue")
	}

	if m.notifier != nil && len(overdue) > 0 {
		if err := m.notifier.NotifyOverdue(overdue); err != nil {
			m.log.WithError(err).WithField("job", jobName).Error("Failed to send overdue reminder")
		}
	}

	m.log.WithFields(logrus.Fields{
		"job":   jobName,
		"count": len(overdue),
	}).Info("Overdue check completed")
	return len(overdue)
}
