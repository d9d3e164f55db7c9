// services/reminder_service.go
package services

import (
	"context"
	"fmt"
	"time"

	"freelance-backend/models"
	"freelance-backend/utils"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

const (
	reminderSent   = "sent"
	reminderFailed = "failed"
)

// Notifier delivers one reminder message and reports the channel it used.
type Notifier interface {
	Notify(ctx context.Context, to, body string) (channel string, err error)
}

// TwilioNotifier sends reminders as WhatsApp messages when a WhatsApp sender
// is configured, else as SMS.
type TwilioNotifier struct {
	client         *twilio.RestClient
	phoneNumber    string
	whatsAppNumber string
}

func NewTwilioNotifier(accountSID, authToken, phoneNumber, whatsAppNumber string) *TwilioNotifier {
	return &TwilioNotifier{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSID,
			Password: authToken,
		}),
		phoneNumber:    phoneNumber,
		whatsAppNumber: whatsAppNumber,
	}
}

func (n *TwilioNotifier) Notify(_ context.Context, to, body string) (string, error) {
	channel := "sms"
	params := &twilioApi.CreateMessageParams{}
	params.SetBody(body)
	if n.whatsAppNumber != "" {
		channel = "whatsapp"
		params.SetTo("whatsapp:" + to)
		params.SetFrom("whatsapp:" + n.whatsAppNumber)
	} else {
		params.SetTo(to)
		params.SetFrom(n.phoneNumber)
	}

	resp, err := n.client.Api.CreateMessage(params)
	if err != nil {
		return channel, err
	}
	if resp.Sid != nil {
		logrus.WithFields(logrus.Fields{"channel": channel, "sid": *resp.Sid}).Debug("reminder delivered")
	}
	return channel, nil
}

// LogNotifier only writes the reminder to the log.
type LogNotifier struct{}

func (LogNotifier) Notify(_ context.Context, to, body string) (string, error) {
	logrus.WithField("to", to).Info(body)
	return "log", nil
}

type ReminderService struct {
	db        *gorm.DB
	notifier  Notifier
	to        string
	daysAhead int
	now       Clock
}

func NewReminderService(db *gorm.DB, notifier Notifier, to string, daysAhead int) *ReminderService {
	if daysAhead < 0 {
		daysAhead = 0
	}
	return &ReminderService{db: db, notifier: notifier, to: to, daysAhead: daysAhead, now: systemClock}
}

func (s *ReminderService) WithClock(now Clock) *ReminderService {
	s.now = now
	return s
}

// StartScheduler runs SendDeadlineReminders on the cron spec until the
// returned cron is stopped.
func (s *ReminderService) StartScheduler(spec string) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		if _, err := s.SendDeadlineReminders(ctx); err != nil {
			logrus.WithError(err).Error("deadline reminder run failed")
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid reminder schedule %q: %w", spec, err)
	}
	c.Start()
	logrus.WithField("schedule", spec).Info("reminder scheduler started")
	return c, nil
}

// SendDeadlineReminders notifies once per day about every open project due
// between today and daysAhead days from now. It returns the number of
// reminders delivered.
func (s *ReminderService) SendDeadlineReminders(ctx context.Context) (int, error) {
	now := s.now().UTC()
	today := utils.BeginningOfDay(now)
	dayKey := utils.DateKey(now)

	var projects []models.Project
	if err := s.db.WithContext(ctx).
		Select("id", "number_order", "project_name", "client_name", "deadline", "status").
		Where("status <> ?", models.StatusDone).
		Order("deadline asc").
		Find(&projects).Error; err != nil {
		return 0, translateStoreError(err, "project")
	}

	sent := 0
	for _, project := range projects {
		days := utils.DaysBetween(today, project.Deadline.UTC())
		if days < 0 || days > s.daysAhead {
			continue
		}

		reminded, err := exists(ctx, s.db, &models.ReminderLog{},
			"project_id = ? AND day_key = ? AND status = ?", project.ID, dayKey, reminderSent)
		if err != nil {
			return sent, translateStoreError(err, "reminder")
		}
		if reminded {
			continue
		}

		message := reminderMessage(project, days)
		channel, err := s.notifier.Notify(ctx, s.to, message)
		entry := models.ReminderLog{
			ProjectID:   project.ID,
			NumberOrder: project.NumberOrder,
			DayKey:      dayKey,
			Message:     message,
			Status:      reminderSent,
			Channel:     channel,
			Recipient:   s.to,
			SentAt:      stamp(now),
		}
		if err != nil {
			logrus.WithError(err).WithField("projectId", project.ID).Warn("failed to send deadline reminder")
			entry.Status = reminderFailed
			entry.ErrorMessage = err.Error()
		} else {
			sent++
		}

		if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
			logrus.WithError(err).WithField("projectId", project.ID).Error("failed to log reminder")
		}
	}

	logrus.WithFields(logrus.Fields{"candidates": len(projects), "sent": sent}).Info("deadline reminders processed")
	return sent, nil
}

func reminderMessage(p models.Project, days int) string {
	due := fmt.Sprintf("is due in %d days", days)
	switch days {
	case 0:
		due = "is due today"
	case 1:
		due = "is due tomorrow"
	}
	return fmt.Sprintf("Reminder: %s %s for %s %s", p.NumberOrder, p.ProjectName, p.ClientName, due)
}

// ListLogs returns recorded reminder attempts, newest first.
func (s *ReminderService) ListLogs(ctx context.Context, projectID string) ([]models.ReminderLog, error) {
	logs := []models.ReminderLog{}
	query := s.db.WithContext(ctx).Order("sent_at desc").Order("id desc").Limit(200)
	if projectID != "" {
		query = query.Where("project_id = ?", projectID)
	}
	if err := query.Find(&logs).Error; err != nil {
		return nil, translateStoreError(err, "reminder")
	}
	return logs, nil
}
