package models

import "time"

type ActivityAction string

const (
	ActionCreated   ActivityAction = "created"
	ActionUpdated   ActivityAction = "updated"
	ActionDeleted   ActivityAction = "deleted"
	ActionCommented ActivityAction = "commented"
)

type ResourceType string

const (
	ResourceProject ResourceType = "project"
	ResourceTask    ResourceType = "task"
	ResourceComment ResourceType = "comment"
)

// ActivityLog is append-only.
type ActivityLog struct {
	ID           uint64         `gorm:"primarykey" json:"id"`
	Username     string         `gorm:"type:varchar(64);index;not null" json:"username"`
	Action       ActivityAction `gorm:"type:varchar(32);not null" json:"action"`
	ResourceType ResourceType   `gorm:"type:varchar(32);index:idx_activity_resource;not null" json:"resourceType"`
	ResourceID   uint64         `gorm:"index:idx_activity_resource" json:"resourceId"`
	ResourceName string         `gorm:"type:varchar(255)" json:"resourceName"`
	Details      map[string]any `gorm:"serializer:json;type:text" json:"details"`
	Timestamp    time.Time      `gorm:"index" json:"timestamp"`
}
