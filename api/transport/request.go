package transport

import "github.com/auroraminds/backend/domain"

type RegisterRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	SessionID string `json:"sessionId"`
}

type LogoutRequest struct {
	SessionID string `json:"sessionId"`
}

type ProfileUpdateRequest struct {
	Name          *string                   `json:"name"`
	Password      *string                   `json:"password"`
	Theme         *string                   `json:"theme"`
	Notifications *domain.NotificationPrefs `json:"emailNotifications"`
}

type SubjectRequest struct {
	Subject string `json:"subject"`
}

type TaskCreateRequest struct {
	Title       string `json:"title"`
	Subject     string `json:"subject"`
	TaskType    string `json:"taskType"`
	Description string `json:"description"`
	DueDate     string `json:"dueDate"`
	Priority    string `json:"priority"`
	Status      string `json:"status"`
}

type TaskUpdateRequest struct {
	Title       *string `json:"title"`
	Subject     *string `json:"subject"`
	TaskType    *string `json:"taskType"`
	Description *string `json:"description"`
	DueDate     *string `json:"dueDate"`
	Priority    *string `json:"priority"`
	Status      *string `json:"status"`
}

type FocusSessionRequest struct {
	TaskID    string `json:"taskId"`
	Duration  int    `json:"duration"`
	Status    string `json:"status"`
	Notes     string `json:"notes"`
	StartedAt string `json:"startedAt"`
	EndedAt   string `json:"endedAt"`
}
