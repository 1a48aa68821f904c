package cron

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sahilchouksey/task-tracker/model"
	"github.com/sirupsen/logrus"
)

// OverdueSource supplies the tasks the reminder job reports on.
type OverdueSource interface {
	GetOverdueTasks() ([]model.Task, error)
}

// Notifier delivers the overdue reminder somewhere other than the log.
type Notifier interface {
	NotifyOverdue(tasks []model.Task) error
}

// CronManager manages all scheduled cron jobs
type CronManager struct {
	cron     *cron.Cron
	tasks    OverdueSource
	notifier Notifier
	schedule string
	log      logrus.FieldLogger
}

// NewCronManager creates a new cron manager. schedule uses six fields, seconds first.
func NewCronManager(tasks OverdueSource, schedule string, log logrus.FieldLogger) *CronManager {
	// Create cron with seconds precision
	c := cron.New(cron.WithSeconds())

	return &CronManager{
		cron:     c,
		tasks:    tasks,
		schedule: schedule,
		log:      log,
	}
}

// SetNotifier makes each reminder run also call n when tasks are overdue.
func (m *CronManager) SetNotifier(n Notifier) {
	m.notifier = n
}

// Start starts all cron jobs
func (m *CronManager) Start() error {
	if err := m.registerJobs(); err != nil {
		return err
	}

	m.cron.Start()

	m.log.WithField("schedule", m.schedule).Info("Cron jobs started")
	return nil
}

// Stop stops all cron jobs and waits for running ones to finish
func (m *CronManager) Stop() {
	ctx := m.cron.Stop()
	<-ctx.Done()
	m.log.Info("Cron jobs stopped")
}

// registerJobs registers all cron jobs with their schedules
func (m *CronManager) registerJobs() error {
	_, err := m.cron.AddFunc(m.schedule, func() {
		m.logJobStart("overdue_reminder")
		m.CheckOverdueTasks()
	})
	return err
}

func (m *CronManager) logJobStart(jobName string) {
	m.log.WithFields(logrus.Fields{
		"job":     jobName,
		"started": time.Now().Format(time.RFC3339),
	}).Debug("Cron job started")
}
