package models

import (
	"time"
)

type User struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    string `gorm:"size:50;uniqueIndex;not null"` // Telegram ID, kept opaque
	Username  string `gorm:"size:100"`
	FirstName string `gorm:"size:100"`
	LastName  string `gorm:"size:100"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
