package models

import (
	"time"
)

type Project struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Color       string    `gorm:"type:varchar(20)" json:"color"`
	OwnerID     string    `gorm:"type:varchar(64);index;not null" json:"ownerId"`
	IsArchived  bool      `gorm:"not null;default:false" json:"isArchived"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime:false" json:"updatedAt"`
}
