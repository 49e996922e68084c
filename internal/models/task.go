package models

import (
	"time"
)

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
	TaskPriorityUrgent TaskPriority = "urgent"
)

// Task references are plain ids without foreign keys: a task may outlive
// its project or parent.
type Task struct {
	ID             uint64       `gorm:"primarykey" json:"id"`
	Title          string       `gorm:"not null" json:"title"`
	Description    string       `gorm:"type:text" json:"description"`
	ProjectID      *uint64      `gorm:"index" json:"projectId"`
	AssigneeID     string       `gorm:"type:varchar(64);index" json:"assigneeId"`
	CreatedBy      string       `gorm:"type:varchar(64);index;not null" json:"createdBy"`
	ParentTaskID   *uint64      `gorm:"index" json:"parentTaskId"`
	Status         TaskStatus   `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Priority       TaskPriority `gorm:"type:varchar(20);not null;default:'medium'" json:"priority"`
	DueDate        *time.Time   `json:"dueDate"`
	Tags           []string     `gorm:"serializer:json;type:text" json:"tags"`
	EstimatedHours *float64     `json:"estimatedHours"`
	ActualHours    *float64     `json:"actualHours"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `gorm:"autoUpdateTime:false" json:"updatedAt"`
	CompletedAt    *time.Time   `json:"completedAt"`
}

// IsValid reports whether s is a known task status.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

// IsValid reports whether p is a known task priority.
func (p TaskPriority) IsValid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh, TaskPriorityUrgent:
		return true
	}
	return false
}
