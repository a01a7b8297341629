package model

import (
	"fmt"
	"time"
)

type Course struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	PriceCents  int64     `gorm:"not null;default:0" json:"price_cents"`
	ImageURL    string    `json:"image_url"`
	Duration    uint      `gorm:"not null;default:0" json:"duration"` // hours
	LecturerID  uint      `gorm:"index;not null" json:"lecturer"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`

	Lecturer *User    `gorm:"foreignKey:LecturerID" json:"-"`
	Lessons  []Lesson `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"lessons,omitempty"`
}

func (Course) TableName() string {
	return "courses"
}

// Price renders PriceCents as a decimal amount.
func (c *Course) Price() string {
	return FormatCents(c.PriceCents)
}

type Lesson struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CourseID    uint      `gorm:"index;not null" json:"course"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	VideoURL    string    `json:"video"`
	PDFURL      string    `json:"pdf"`
	Note        string    `gorm:"type:text" json:"note"`
	Duration    uint      `gorm:"not null;default:0" json:"duration"` // minutes
	IsCompleted bool      `gorm:"default:false" json:"is_completed"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Lesson) TableName() string {
	return "lessons"
}

func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
