package store

import "time"

// Execution is one recorded remote command run.
type Execution struct {
	ID         uint   `gorm:"primaryKey"`
	Target     string `gorm:"index;not null"`
	Host       string `gorm:"not null"`
	Remote     string `gorm:"not null"`
	Command    string `gorm:"not null"`
	ExitStatus int    `gorm:"not null"`
	DurationMs int64  `gorm:"not null"`
	CreatedAt  time.Time
}
