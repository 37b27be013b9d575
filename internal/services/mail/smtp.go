package mail

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/auroraminds/backend/domain"
	"github.com/auroraminds/backend/internal/services"
)

// Config holds SMTP connection settings.
type Config struct {
	Host     string
	Port     string
	User     string
	Password string
	From     string
	BaseURL  string
}

// SMTPSender implements services.Sender over plain SMTP. There is no mail
// library in use anywhere in this codebase's dependency set, so the stdlib
// client is used directly; the Sender port keeps this swappable.
type SMTPSender struct {
	cfg Config
}

func NewSMTPSender(cfg Config) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

func (s *SMTPSender) SendTaskReminder(ctx context.Context, to, name string, task domain.Task) error {
	due := ""
	if task.DueDate != nil {
		due = task.DueDate.Format("Mon, 02 Jan 2006 15:04")
	}
	subject := fmt.Sprintf("Reminder: %s is due soon", task.Title)
	var b strings.Builder
	fmt.Fprintf(&b, "<h2>Aurora Minds - Task Reminder</h2>")
	fmt.Fprintf(&b, "<p>Hi %s,</p>", name)
	fmt.Fprintf(&b, "<p>Your task <strong>%q</strong> is due on <strong>%s</strong>.</p>", task.Title, due)
	fmt.Fprintf(&b, "<p>Login to your account: <a href=%q>Aurora Minds</a></p>", s.cfg.BaseURL)
	return s.send(ctx, to, subject, b.String())
}

func (s *SMTPSender) SendDailyDigest(ctx context.Context, to, name string, upcoming []domain.Task, stats services.DigestStats) error {
	var b strings.Builder
	fmt.Fprintf(&b, "<h2>Aurora Minds - Daily Digest</h2>")
	fmt.Fprintf(&b, "<p>Hi %s, here's your productivity summary for today:</p>", name)
	fmt.Fprintf(&b, "<p><strong>Focus Sessions:</strong> %d</p>", stats.Sessions)
	fmt.Fprintf(&b, "<p><strong>Total Focus Time:</strong> %d minutes</p>", stats.TotalMinutes)
	if len(upcoming) > 0 {
		fmt.Fprintf(&b, "<h3>Upcoming Tasks:</h3><ul>")
		for _, task := range upcoming {
			due := ""
			if task.DueDate != nil {
				due = task.DueDate.Format("Mon, 02 Jan 2006")
			}
			fmt.Fprintf(&b, "<li>%s - Due: %s</li>", task.Title, due)
		}
		fmt.Fprintf(&b, "</ul>")
	} else {
		fmt.Fprintf(&b, "<p>No upcoming tasks! Great job staying on top of things.</p>")
	}
	fmt.Fprintf(&b, "<p>Login to continue: <a href=%q>Aurora Minds</a></p>", s.cfg.BaseURL)
	return s.send(ctx, to, "Your Daily Aurora Minds Digest", b.String())
}

func (s *SMTPSender) SendWeeklyReport(ctx context.Context, to, name string, stats services.WeeklyStats) error {
	var b strings.Builder
	fmt.Fprintf(&b, "<h2>Aurora Minds - Weekly Report</h2>")
	fmt.Fprintf(&b, "<p>Hi %s, here's your productivity summary for this week:</p>", name)
	fmt.Fprintf(&b, "<p><strong>Total Focus Sessions:</strong> %d</p>", stats.TotalSessions)
	fmt.Fprintf(&b, "<p><strong>Total Focus Time:</strong> %d minutes</p>", stats.TotalMinutes)
	fmt.Fprintf(&b, "<p><strong>Tasks Completed:</strong> %d</p>", stats.CompletedTasks)
	fmt.Fprintf(&b, "<p><strong>Average Daily Focus:</strong> %d minutes</p>", stats.AvgDailyFocus)
	fmt.Fprintf(&b, "<p><strong>Productivity Score:</strong> %d%%</p>", stats.ProductivityScore)
	fmt.Fprintf(&b, "<p>Login to view detailed analytics: <a href=%q>Aurora Minds</a></p>", s.cfg.BaseURL)
	return s.send(ctx, to, "Your Weekly Aurora Minds Report", b.String())
}

func (s *SMTPSender) send(ctx context.Context, to, subject, html string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := strings.Join([]string{
		"From: " + s.cfg.From,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		`Content-Type: text/html; charset="UTF-8"`,
		"",
		html,
	}, "\r\n")

	addr := s.cfg.Host + ":" + s.cfg.Port
	var auth smtp.Auth
	if s.cfg.User != "" {
		auth = smtp.PlainAuth("", s.cfg.User, s.cfg.Password, s.cfg.Host)
	}
	return smtp.SendMail(addr, auth, s.cfg.User, []string{to}, []byte(msg))
}

var _ services.Sender = (*SMTPSender)(nil)
