package model

import (
	"strings"
	"time"
)

// User is the credential record. PasswordHash together with LastLogin is the
// state fingerprinted by password reset tokens and session auth hashes.
type User struct {
	ID                uint       `gorm:"primarykey" json:"id"`
	Username          string     `gorm:"size:150;uniqueIndex;not null" json:"username"`
	Email             string     `gorm:"size:254;uniqueIndex;not null" json:"email"`
	PasswordHash      string     `gorm:"not null" json:"-"`
	FirstName         string     `gorm:"size:150" json:"first_name"`
	LastName          string     `gorm:"size:150" json:"last_name"`
	IsStudent         bool       `gorm:"default:false" json:"is_student"`
	IsLecturer        bool       `gorm:"default:false" json:"is_lecturer"`
	IsActive          bool       `gorm:"default:true" json:"is_active"`
	LastLogin         *time.Time `json:"last_login,omitempty"`
	PasswordChangedAt *time.Time `json:"-"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`

	Profile *Profile `gorm:"foreignKey:UserID" json:"profile,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// DisplayName prefers the full name and falls back to the username.
func (u *User) DisplayName() string {
	full := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if full != "" {
		return full
	}
	return u.Username
}

// NormalizeEmail is the form emails are compared in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
