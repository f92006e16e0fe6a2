package models

import (
	"time"

	"gorm.io/gorm"
)

// ErrorLog records a failed scan or a failed write
type ErrorLog struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Timestamp time.Time      `gorm:"not null;index" json:"timestamp"`
	Keyword   string         `gorm:"index" json:"keyword,omitempty"`
	Source    string         `gorm:"not null;default:'scan'" json:"source"` // "scan" or "store"
	ErrorMsg  string         `gorm:"not null" json:"error_msg"`
	CreatedAt time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
