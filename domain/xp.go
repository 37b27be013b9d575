package domain

// XP awards attached to task lifecycle events, keyed by priority.
// Creation rewards planning; completion rewards follow-through and is granted
// only on the first transition into the completed status.

// TaskCreationXP returns the XP granted for creating a task.
func TaskCreationXP(priority string) int64 {
	switch priority {
	case TaskPriorityHigh:
		return 20
	case TaskPriorityMedium:
		return 15
	case TaskPriorityLow:
		return 10
	default:
		return 5
	}
}

// TaskCompletionXP returns the XP granted the first time a task enters the
// completed status.
func TaskCompletionXP(priority string) int64 {
	switch priority {
	case TaskPriorityHigh:
		return 50
	case TaskPriorityMedium:
		return 25
	case TaskPriorityLow:
		return 15
	default:
		return 0
	}
}

// FocusSessionXP returns the XP granted for a focus session: one point per
// whole minute for completed sessions, nothing for interrupted ones.
func FocusSessionXP(durationSeconds int, status string) int64 {
	if status != FocusStatusCompleted || durationSeconds <= 0 {
		return 0
	}
	return int64(durationSeconds / 60)
}
