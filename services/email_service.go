package services

import (
	"crypto/tls"
	"errors"
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"github.com/sahilchouksey/task-tracker/model"
	"github.com/sirupsen/logrus"
)

// ErrSMTPNotConfigured is returned when a mail is requested without credentials.
var ErrSMTPNotConfigured = errors.New("SMTP not configured")

// EmailConfig holds the SMTP settings and the reminder recipient
type EmailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       string
}

// EmailService handles sending emails via SMTP
type EmailService struct {
	config EmailConfig
	log    logrus.FieldLogger
	now    func() time.Time
}

// NewEmailService creates a new email service instance
func NewEmailService(config EmailConfig, log logrus.FieldLogger) *EmailService {
	return &EmailService{config: config, log: log, now: time.Now}
}

// IsConfigured checks if SMTP is properly configured
func (e *EmailService) IsConfigured() bool {
	return e.config.Username != "" && e.config.Password != "" && e.config.To != ""
}

// NotifyOverdue mails the overdue digest to the configured recipient.
func (e *EmailService) NotifyOverdue(tasks []model.Task) error {
	if !e.IsConfigured() {
		return ErrSMTPNotConfigured
	}

	subject := fmt.Sprintf("%d overdue task(s)", len(tasks))
	if err := e.sendEmail(e.config.To, subject, buildOverdueDigestBody(tasks, e.now())); err != nil {
		return err
	}

	e.log.WithFields(logrus.Fields{
		"to":    e.config.To,
		"count": len(tasks),
	}).Info("Overdue reminder email sent")
	return nil
}

// buildOverdueDigestBody lists each task with its due date and how long ago it fell due.
func buildOverdueDigestBody(tasks []model.Task, now time.Time) string {
	var body strings.Builder
	body.WriteString("The following tasks are overdue:\r\n\r\n")
	for _, task := range tasks {
		late := int(now.Sub(task.DueDate) / model.Day)
		fmt.Fprintf(&body, "- %s (due %s, %d day(s) ago)\r\n", task.Title, task.DueDate.Local().Format("2006-01-02"), late)
		if task.Description != "" {
			fmt.Fprintf(&body, "  %s\r\n", task.Description)
		}
	}
	return body.String()
}

// buildMessage prepends the mail headers to body
func (e *EmailService) buildMessage(to, subject, body string) string {
	headers := []string{
		"From: Task Tracker <" + e.config.From + ">",
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=UTF-8",
		"X-Mailer: Task Tracker Mailer",
	}

	var message strings.Builder
	for _, h := range headers {
		message.WriteString(h)
		message.WriteString("\r\n")
	}
	message.WriteString("\r\n")
	message.WriteString(body)
	return message.String()
}

// sendEmail sends an email using SMTP with TLS
func (e *EmailService) sendEmail(to, subject, body string) error {
	addr := fmt.Sprintf("%s:%d", e.config.Host, e.config.Port)
	auth := smtp.PlainAuth("", e.config.Username, e.config.Password, e.config.Host)

	// Connect to the server
	conn, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer conn.Close()

	// Start TLS
	if err := conn.StartTLS(&tls.Config{ServerName: e.config.Host}); err != nil {
		return fmt.Errorf("failed to start TLS: %w", err)
	}

	// Authenticate
	if err := conn.Auth(auth); err != nil {
		return fmt.Errorf("SMTP authentication failed: %w", err)
	}

	if err := conn.Mail(e.config.From); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err := conn.Rcpt(to); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	// Send the email body
	w, err := conn.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}
	if _, err := w.Write([]byte(e.buildMessage(to, subject, body))); err != nil {
		return fmt.Errorf("failed to write email body: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}

	return conn.Quit()
}
