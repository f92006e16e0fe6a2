package models

import (
	"time"

	"gorm.io/gorm"
)

// Observation is one change in a watched window's notification count
type Observation struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Timestamp     time.Time      `gorm:"not null;index" json:"timestamp"`
	Keyword       string         `gorm:"not null;index" json:"keyword"`
	Title         string         `gorm:"not null;default:''" json:"title"`
	Count         uint32         `gorm:"not null;default:0" json:"count"`
	Matched       bool           `gorm:"not null;default:false" json:"matched"`
	DisplayServer string         `gorm:"not null" json:"display_server"` // "win32", "x11" or "wayland"
	CreatedAt     time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

type ReportPeriod struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Type  string    `json:"type"` // "day", "week", "month"
}

type Report struct {
	Period        ReportPeriod `json:"period"`
	Keyword       string       `json:"keyword"`
	Changes       int          `json:"changes"`
	PeakCount     uint32       `json:"peak_count"`
	LastCount     uint32       `json:"last_count"`
	UnreadSeconds int64        `json:"unread_seconds"`
	UnreadMinutes float64      `json:"unread_minutes"`
	ScanErrors    int64        `json:"scan_errors"`
	GeneratedAt   time.Time    `json:"generated_at"`
}
