package models

import "time"

type AppSettings struct {
	ID             uint   `gorm:"primaryKey"` // single-row table (ID=1)
	Version        int    `gorm:"not null;default:1"`
	BackendURL     string `gorm:"size:512;not null"`
	Locale         string `gorm:"size:8;not null"` // "en" | "ko"
	TimeoutSeconds int    `gorm:"not null;default:300"`
	UpdatedAt      time.Time
}
