package domain

import (
	"fmt"
	"strings"

	"github.com/mentorhub/mentorhub/internal/pkg/apperrors"
)

// TaskStatus tracks a mentor-assigned task.
type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
)

var ErrInvalidTaskStatus = apperrors.NewBadRequestError("task status must be one of pending, in_progress, completed")

func ParseTaskStatus(s string) (TaskStatus, error) {
	switch status := TaskStatus(strings.ToLower(strings.TrimSpace(s))); status {
	case TaskPending, TaskInProgress, TaskCompleted:
		return status, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidTaskStatus, s)
	}
}
