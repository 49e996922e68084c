package models

import "time"

// ProjectMember is one row of a project's membership list. Rows are ordered
// by ID, so the owner, inserted with the project, always comes first.
type ProjectMember struct {
	ID        uint64    `gorm:"primarykey" json:"-"`
	ProjectID uint64    `gorm:"not null;uniqueIndex:idx_project_members_project_user" json:"projectId"`
	Username  string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_project_members_project_user;index" json:"username"`
	JoinedAt  time.Time `json:"joinedAt"`
}
