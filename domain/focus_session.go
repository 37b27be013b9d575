package domain

import "time"

// Focus session status values.
const (
	FocusStatusCompleted   = "completed"
	FocusStatusInterrupted = "interrupted"
)

// FocusSession records a single timed focus interval. XPEarned is computed
// once at creation from the duration and status and is immutable afterwards.
// Sessions are never updated or deleted.
type FocusSession struct {
	ID              string    `json:"id"`
	UserID          string    `json:"userId"`
	TaskID          string    `json:"taskId,omitempty"`
	DurationSeconds int       `json:"duration"`
	Status          string    `json:"status"`
	XPEarned        int       `json:"xpEarned"`
	Notes           string    `json:"notes,omitempty"`
	StartedAt       time.Time `json:"startedAt"`
	EndedAt         time.Time `json:"endedAt"`
	CreatedAt       time.Time `json:"createdAt"`
}

// ValidFocusStatus reports whether s is one of the focus session status values.
func ValidFocusStatus(s string) bool {
	return s == FocusStatusCompleted || s == FocusStatusInterrupted
}

// FocusStats aggregates a user's all-time session history.
type FocusStats struct {
	TotalSessions       int   `json:"totalSessions"`
	TotalDuration       int64 `json:"totalDuration"`
	TotalXP             int64 `json:"totalXp"`
	CompletedSessions   int   `json:"completedSessions"`
	InterruptedSessions int   `json:"interruptedSessions"`
}
