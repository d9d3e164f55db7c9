package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"freelance-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Notify(ctx context.Context, to, body string) (string, error) {
	args := m.Called(ctx, to, body)
	return args.String(0), args.Error(1)
}

func seedDeadlines(t *testing.T, db *gorm.DB) {
	t.Helper()
	projects := NewProjectService(db, "FM").WithClock(newStepClock().Now)
	for _, p := range []struct {
		name, deadline, status string
	}{
		{"Due today", "2026-03-15", models.StatusInProgress},
		{"Due in two days", "2026-03-17", models.StatusToDo},
		{"Due next week", "2026-03-22", models.StatusToDo},
		{"Finished", "2026-03-16", models.StatusDone},
		{"Overdue", "2026-03-14", models.StatusRevision},
	} {
		input := validProject(p.name)
		input.Deadline = p.deadline
		input.Status = p.status
		_, err := projects.Create(ctx, input)
		require.NoError(t, err)
	}
}

func TestSendDeadlineReminders(t *testing.T) {
	db := newTestDB(t)
	seedDeadlines(t, db)

	notifier := &mockNotifier{}
	notifier.On("Notify", mock.Anything, "+15559999", mock.MatchedBy(func(body string) bool {
		return strings.HasPrefix(body, "Reminder: FM-150326-")
	})).Return("sms", nil).Times(2)

	svc := NewReminderService(db, notifier, "+15559999", 3).WithClock(func() time.Time { return baseTime })

	sent, err := svc.SendDeadlineReminders(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, sent)

	sent, err = svc.SendDeadlineReminders(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, sent)
	notifier.AssertExpectations(t)

	logs, err := svc.ListLogs(ctx, "")
	require.NoError(t, err)
	require.Len(t, logs, 2)
	messages := []string{logs[0].Message, logs[1].Message}
	assert.Contains(t, strings.Join(messages, "\n"), "Due today for Acme Studio is due today")
	assert.Contains(t, strings.Join(messages, "\n"), "Due in two days for Acme Studio is due in 2 days")
	for _, l := range logs {
		assert.Equal(t, "sent", l.Status)
		assert.Equal(t, "sms", l.Channel)
		assert.Equal(t, "150326", l.DayKey)
	}
}

func TestSendDeadlineRemindersRecordsFailures(t *testing.T) {
	db := newTestDB(t)
	seedDeadlines(t, db)

	notifier := &mockNotifier{}
	notifier.On("Notify", mock.Anything, mock.Anything, mock.Anything).Return("sms", errors.New("twilio down"))

	svc := NewReminderService(db, notifier, "+15559999", 0).WithClock(func() time.Time { return baseTime })

	sent, err := svc.SendDeadlineReminders(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, sent)

	// failed attempts do not block a retry on the same day
	sent, err = svc.SendDeadlineReminders(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, sent)
	notifier.AssertNumberOfCalls(t, "Notify", 2)

	logs, err := svc.ListLogs(ctx, "")
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "failed", logs[0].Status)
	assert.Equal(t, "twilio down", logs[0].ErrorMessage)
}

func TestStartSchedulerRejectsBadSpec(t *testing.T) {
	svc := NewReminderService(newTestDB(t), LogNotifier{}, "", 3)

	_, err := svc.StartScheduler("not a cron spec")
	assert.Error(t, err)

	c, err := svc.StartScheduler("0 9 * * *")
	require.NoError(t, err)
	c.Stop()
}

func TestComputeDashboardStats(t *testing.T) {
	stats := ComputeDashboardStats([]models.Project{
		{Status: models.StatusDone, TotalPrice: 100},
		{Status: models.StatusInReview, TotalPrice: 40},
		{Status: models.StatusWaitingForPayment},
	})
	assert.Equal(t, DashboardStats{Total: 3, Ongoing: 2, Completed: 1, OngoingRevenue: 40, CompletedRevenue: 100}, stats)
	assert.Equal(t, DashboardStats{}, ComputeDashboardStats(nil))
}
