package models

import (
	"time"

	"github.com/mentorhub/mentorhub/internal/domain"
)

// Task is work assigned by a mentor or admin to a mentee.
type Task struct {
	ID          string            `json:"id" db:"id"`
	Title       string            `json:"title" db:"title"`
	Description *string           `json:"description,omitempty" db:"description"`
	DueDate     time.Time         `json:"dueDate" db:"due_date"`
	Status      domain.TaskStatus `json:"status" db:"status"`
	AssignedBy  string            `json:"assignedBy" db:"assigned_by"`
	AssignedTo  string            `json:"assignedTo" db:"assigned_to"`
	CreatedAt   time.Time         `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time         `json:"updatedAt" db:"updated_at"`
}
