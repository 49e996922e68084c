package dto

import (
	"github.com/yukikurage/taskgraph-api/internal/models"
)

// CreateTaskRequest is the body of POST /api/tasks
type CreateTaskRequest struct {
	Title          string              `json:"title"`
	Description    string              `json:"description"`
	ProjectID      *uint64             `json:"projectId"`
	Assignee       string              `json:"assignee"`
	ParentTaskID   *uint64             `json:"parentTaskId"`
	Priority       models.TaskPriority `json:"priority"`
	Status         models.TaskStatus   `json:"status"`
	DueDate        *Date               `json:"dueDate"`
	Tags           []string            `json:"tags"`
	EstimatedHours *float64            `json:"estimatedHours"`
	ActualHours    *float64            `json:"actualHours"`
}

// UpdateTaskRequest is the body of PUT /api/tasks/:taskId. Absent fields are
// left unchanged; dueDate may be sent as null or "" to clear it.
type UpdateTaskRequest struct {
	Title          *string              `json:"title"`
	Description    *string              `json:"description"`
	ProjectID      *uint64              `json:"projectId"`
	AssigneeID     *string              `json:"assigneeId"`
	Status         *models.TaskStatus   `json:"status"`
	Priority       *models.TaskPriority `json:"priority"`
	DueDate        *Date                `json:"dueDate"`
	Tags           []string             `json:"tags"`
	EstimatedHours *float64             `json:"estimatedHours"`
	ActualHours    *float64             `json:"actualHours"`
}
