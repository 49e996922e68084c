package models

import (
	"time"
)

type User struct {
	Username    string    `gorm:"primaryKey;type:varchar(64)" json:"username"`
	FullName    string    `gorm:"type:varchar(255)" json:"fullName"`
	Email       string    `gorm:"type:varchar(255)" json:"email"`
	CreatedAt   time.Time `json:"createdAt"`
	LastLoginAt time.Time `json:"lastLoginAt"`
}
