package domain

import "time"

// Task status values.
const (
	TaskStatusPending    = "pending"
	TaskStatusInProgress = "in-progress"
	TaskStatusCompleted  = "completed"
)

// Task priority values.
const (
	TaskPriorityLow    = "low"
	TaskPriorityMedium = "medium"
	TaskPriorityHigh   = "high"
)

// Task types recognised by the client. An empty type is allowed.
const (
	TaskTypeLab        = "lab"
	TaskTypeAssignment = "assignment"
	TaskTypeProject    = "project"
)

// Task represents a user-owned activity item.
//
// CompletionXPAwarded guards the one-time completion grant: it is set on the
// first transition into the completed status and never cleared, so reopening
// and re-completing a task cannot award XP twice.
type Task struct {
	ID                  string     `json:"id"`
	UserID              string     `json:"userId"`
	Title               string     `json:"title"`
	Subject             string     `json:"subject"`
	TaskType            string     `json:"taskType,omitempty"`
	Description         string     `json:"description,omitempty"`
	DueDate             *time.Time `json:"dueDate,omitempty"`
	Priority            string     `json:"priority"`
	Status              string     `json:"status"`
	CompletionXPAwarded bool       `json:"-"`
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           time.Time  `json:"updatedAt"`
}

func (t *Task) IsCompleted() bool {
	return t != nil && t.Status == TaskStatusCompleted
}

// ValidTaskStatus reports whether s is one of the task status values.
func ValidTaskStatus(s string) bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

// ValidTaskPriority reports whether p is one of the task priority values.
func ValidTaskPriority(p string) bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

// ValidTaskType reports whether t is an accepted task type. Empty is allowed.
func ValidTaskType(t string) bool {
	switch t {
	case "", TaskTypeLab, TaskTypeAssignment, TaskTypeProject:
		return true
	}
	return false
}
