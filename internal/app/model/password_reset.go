package model

import (
	"time"
)

// PasswordResetAudit is written for every reset link sent out. It is never consulted
// when a token is verified; tokens are stateless and expire on their own.
type PasswordResetAudit struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	UserID     uint       `gorm:"index;not null" json:"user_id"`
	Email      string     `gorm:"size:254;not null;index" json:"email"`
	RequestIP  string     `gorm:"size:64" json:"request_ip"`
	ExpiresAt  time.Time  `gorm:"not null;index" json:"expires_at"`
	ConsumedAt *time.Time `json:"consumed_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

func (PasswordResetAudit) TableName() string {
	return "password_reset_audits"
}
