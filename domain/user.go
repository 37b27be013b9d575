package domain

import "time"

// Theme values accepted for the user's UI preference.
const (
	ThemeLight  = "light"
	ThemeDark   = "dark"
	ThemeSystem = "system"
)

// DefaultSubjects is assigned to every newly registered user.
var DefaultSubjects = []string{
	"English", "Math", "Science", "History",
	"Computer Science", "Art", "Music", "Geography",
}

// NotificationPrefs controls which scheduled emails a user receives.
type NotificationPrefs struct {
	TaskReminders bool   `json:"taskReminders"`
	DailyDigest   bool   `json:"dailyDigest"`
	WeeklyReport  bool   `json:"weeklyReport"`
	ReminderTime  string `json:"reminderTime"`
}

// DefaultNotificationPrefs mirrors the defaults applied at registration.
func DefaultNotificationPrefs() NotificationPrefs {
	return NotificationPrefs{
		TaskReminders: true,
		DailyDigest:   false,
		WeeklyReport:  true,
		ReminderTime:  "09:00",
	}
}

// User represents a registered student account. XP is a monotonic counter
// mutated only through atomic storage increments; the level is always derived
// from it and never persisted.
type User struct {
	ID            string            `json:"id"`
	Email         string            `json:"email"`
	Name          string            `json:"name"`
	PasswordHash  string            `json:"-"`
	Theme         string            `json:"theme"`
	Subjects      []string          `json:"subjects"`
	XP            int64             `json:"xp"`
	Notifications NotificationPrefs `json:"emailNotifications"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

// Level returns the user's derived level.
func (u *User) Level() int {
	if u == nil {
		return 1
	}
	return LevelForXP(u.XP)
}

// HasSubject reports whether the subject is already part of the user's set.
func (u *User) HasSubject(subject string) bool {
	if u == nil {
		return false
	}
	for _, s := range u.Subjects {
		if s == subject {
			return true
		}
	}
	return false
}
