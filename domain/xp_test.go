package domain

import "testing"

func TestTaskCreationXP(t *testing.T) {
	tests := []struct {
		priority string
		want     int64
	}{
		{TaskPriorityHigh, 20},
		{TaskPriorityMedium, 15},
		{TaskPriorityLow, 10},
		{"", 5},
		{"urgent", 5},
	}

	for _, tt := range tests {
		if got := TaskCreationXP(tt.priority); got != tt.want {
			t.Errorf("TaskCreationXP(%q) = %d, want %d", tt.priority, got, tt.want)
		}
	}
}

func TestTaskCompletionXP(t *testing.T) {
	tests := []struct {
		priority string
		want     int64
	}{
		{TaskPriorityHigh, 50},
		{TaskPriorityMedium, 25},
		{TaskPriorityLow, 15},
		{"", 0},
		{"urgent", 0},
	}

	for _, tt := range tests {
		if got := TaskCompletionXP(tt.priority); got != tt.want {
			t.Errorf("TaskCompletionXP(%q) = %d, want %d", tt.priority, got, tt.want)
		}
	}
}

func TestFocusSessionXP(t *testing.T) {
	tests := []struct {
		name     string
		duration int
		status   string
		want     int64
	}{
		{"whole minutes", 1500, FocusStatusCompleted, 25},
		{"partial minute truncated", 125, FocusStatusCompleted, 2},
		{"under a minute", 59, FocusStatusCompleted, 0},
		{"interrupted earns nothing", 1500, FocusStatusInterrupted, 0},
		{"zero duration", 0, FocusStatusCompleted, 0},
		{"negative duration", -60, FocusStatusCompleted, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FocusSessionXP(tt.duration, tt.status); got != tt.want {
				t.Errorf("FocusSessionXP(%d, %q) = %d, want %d", tt.duration, tt.status, got, tt.want)
			}
		})
	}
}
