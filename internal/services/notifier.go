package services

import (
	"context"
	"math"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/auroraminds/backend/domain"
	"github.com/auroraminds/backend/repository"
)

// DigestStats summarizes today's activity for the daily digest email.
type DigestStats struct {
	Sessions     int
	TotalMinutes int
}

// WeeklyStats summarizes the trailing week for the weekly report email.
type WeeklyStats struct {
	TotalSessions     int
	TotalMinutes      int
	CompletedTasks    int
	AvgDailyFocus     int
	ProductivityScore int
}

// Sender delivers notification emails. Implementations must be safe for
// concurrent use.
type Sender interface {
	SendTaskReminder(ctx context.Context, to, name string, task domain.Task) error
	SendDailyDigest(ctx context.Context, to, name string, upcoming []domain.Task, stats DigestStats) error
	SendWeeklyReport(ctx context.Context, to, name string, stats WeeklyStats) error
}

// NotifierSchedules holds the cron expressions for the three email jobs.
type NotifierSchedules struct {
	DailyDigest   string
	WeeklyReport  string
	TaskReminders string
}

// Notifier owns the scheduled email jobs. The cron scheduler is internal and
// started explicitly; each job body is also exposed as a synchronous Run*
// method so callers (and tests) can trigger a batch without waiting on
// wall-clock time. A failure for one recipient is logged and never aborts the
// rest of the batch.
type Notifier struct {
	users    repository.UserRepository
	tasks    repository.TaskRepository
	sessions repository.FocusSessionRepository
	sender   Sender
	logger   *zap.Logger
	cron     *cron.Cron
	now      func() time.Time
}

func NewNotifier(
	users repository.UserRepository,
	tasks repository.TaskRepository,
	sessions repository.FocusSessionRepository,
	sender Sender,
	schedules NotifierSchedules,
	logger *zap.Logger,
) (*Notifier, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	n := &Notifier{
		users:    users,
		tasks:    tasks,
		sessions: sessions,
		sender:   sender,
		logger:   logger,
		cron:     cron.New(),
		now:      time.Now,
	}

	jobs := []struct {
		spec string
		name string
		run  func(context.Context) error
	}{
		{schedules.DailyDigest, "daily_digest", n.RunDailyDigest},
		{schedules.WeeklyReport, "weekly_report", n.RunWeeklyReport},
		{schedules.TaskReminders, "task_reminders", n.RunTaskReminders},
	}
	for _, job := range jobs {
		if job.spec == "" {
			continue
		}
		job := job
		if _, err := n.cron.AddFunc(job.spec, func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()
			if err := job.run(ctx); err != nil {
				n.logger.Error("scheduled email job failed", zap.String("job", job.name), zap.Error(err))
			}
		}); err != nil {
			return nil, err
		}
	}

	return n, nil
}

// Start launches the cron scheduler.
func (n *Notifier) Start() {
	n.cron.Start()
	n.logger.Info("email notifier started")
}

// Stop halts the scheduler and waits for running jobs within ctx.
func (n *Notifier) Stop(ctx context.Context) {
	stopCtx := n.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	n.logger.Info("email notifier stopped")
}

// RunDailyDigest sends every opted-in user a summary of today's focus
// activity and their tasks due within three days.
func (n *Notifier) RunDailyDigest(ctx context.Context) error {
	users, err := n.users.ListByNotification(ctx, repository.NotifyDailyDigest)
	if err != nil {
		return err
	}

	now := n.now()
	dayStart := startOfDay(now)
	dayEnd := endOfDay(now)

	for _, user := range users {
		if user.Email == "" {
			continue
		}

		sessions, err := n.sessions.ListByUserBetween(ctx, user.ID, dayStart, dayEnd)
		if err != nil {
			n.logger.Error("daily digest: loading sessions failed",
				zap.String("user_id", user.ID), zap.Error(err))
			continue
		}

		var totalSeconds int
		for _, s := range sessions {
			totalSeconds += s.DurationSeconds
		}

		upcoming, err := n.tasks.ListDueBetween(ctx, user.ID, dayStart, dayStart.AddDate(0, 0, 3), 5)
		if err != nil {
			n.logger.Error("daily digest: loading tasks failed",
				zap.String("user_id", user.ID), zap.Error(err))
			continue
		}

		stats := DigestStats{
			Sessions:     len(sessions),
			TotalMinutes: int(math.Round(float64(totalSeconds) / 60)),
		}
		if err := n.sender.SendDailyDigest(ctx, user.Email, user.Name, upcoming, stats); err != nil {
			n.logger.Error("daily digest: send failed",
				zap.String("user_id", user.ID), zap.Error(err))
			continue
		}
		n.logger.Info("daily digest sent", zap.String("user_id", user.ID))
	}
	return nil
}

// RunWeeklyReport sends every opted-in user their trailing-week totals.
func (n *Notifier) RunWeeklyReport(ctx context.Context) error {
	users, err := n.users.ListByNotification(ctx, repository.NotifyWeeklyReport)
	if err != nil {
		return err
	}

	now := n.now()
	weekAgo := now.AddDate(0, 0, -7)

	for _, user := range users {
		if user.Email == "" {
			continue
		}

		sessions, err := n.sessions.ListByUserBetween(ctx, user.ID, weekAgo, now)
		if err != nil {
			n.logger.Error("weekly report: loading sessions failed",
				zap.String("user_id", user.ID), zap.Error(err))
			continue
		}

		completed, err := n.tasks.List(ctx, repository.TaskFilter{
			UserID:      user.ID,
			Status:      domain.TaskStatusCompleted,
			CreatedFrom: &weekAgo,
			CreatedTo:   &now,
		})
		if err != nil {
			n.logger.Error("weekly report: loading tasks failed",
				zap.String("user_id", user.ID), zap.Error(err))
			continue
		}

		var totalSeconds int
		for _, s := range sessions {
			totalSeconds += s.DurationSeconds
		}

		avgDaily := 0
		if len(sessions) > 0 {
			avgDaily = int(math.Round(float64(totalSeconds) / (60 * 7)))
		}

		stats := WeeklyStats{
			TotalSessions:     len(sessions),
			TotalMinutes:      int(math.Round(float64(totalSeconds) / 60)),
			CompletedTasks:    len(completed),
			AvgDailyFocus:     avgDaily,
			ProductivityScore: min(100, int(math.Round(float64(len(completed))/10*100))),
		}
		if err := n.sender.SendWeeklyReport(ctx, user.Email, user.Name, stats); err != nil {
			n.logger.Error("weekly report: send failed",
				zap.String("user_id", user.ID), zap.Error(err))
			continue
		}
		n.logger.Info("weekly report sent", zap.String("user_id", user.ID))
	}
	return nil
}

// RunTaskReminders emails every opted-in user once per task due within the
// next 24 hours.
func (n *Notifier) RunTaskReminders(ctx context.Context) error {
	users, err := n.users.ListByNotification(ctx, repository.NotifyTaskReminders)
	if err != nil {
		return err
	}

	now := n.now()

	for _, user := range users {
		if user.Email == "" {
			continue
		}

		due, err := n.tasks.ListDueBetween(ctx, user.ID, now, now.Add(24*time.Hour), 50)
		if err != nil {
			n.logger.Error("task reminders: loading tasks failed",
				zap.String("user_id", user.ID), zap.Error(err))
			continue
		}

		for _, task := range due {
			if err := n.sender.SendTaskReminder(ctx, user.Email, user.Name, task); err != nil {
				n.logger.Error("task reminder: send failed",
					zap.String("user_id", user.ID),
					zap.String("task_id", task.ID),
					zap.Error(err))
			}
		}
	}
	return nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), t.Location())
}
