package models

import "time"

// AuditLog records session lifecycle and gate events of this frontend.
// Business audit lives server-side.
type AuditLog struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"index"`

	PrincipalID int64
	Username    string `gorm:"size:100"`
	Role        string `gorm:"size:30"`

	Action    string `gorm:"size:50;not null"` // "login", "logout", "deny", ...
	Path      string `gorm:"size:255"`
	Outcome   string `gorm:"size:20;not null"`
	Details   string `gorm:"type:text"`
	RequestID string `gorm:"size:64"`
}
