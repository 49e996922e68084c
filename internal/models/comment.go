package models

import "time"

type Comment struct {
	ID              uint64    `gorm:"primarykey" json:"id"`
	TaskID          uint64    `gorm:"index;not null" json:"taskId"`
	UserID          string    `gorm:"type:varchar(64);index;not null" json:"userId"`
	Content         string    `gorm:"type:text;not null" json:"content"`
	ParentCommentID *uint64   `gorm:"index" json:"parentCommentId"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime:false" json:"updatedAt"`
}
