package model

import "time"

type PaymentStatus string

const (
	PaymentCompleted PaymentStatus = "Completed"
	PaymentPending   PaymentStatus = "Pending"
	PaymentRefunded  PaymentStatus = "Refunded"
)

// CoursePayment records a student's purchase of a course.
type CoursePayment struct {
	ID              uint          `gorm:"primaryKey" json:"id"`
	StudentID       uint          `gorm:"index;not null" json:"student"`
	CourseID        uint          `gorm:"index;not null" json:"course"`
	AmountPaidCents int64         `gorm:"not null" json:"amount_paid_cents"`
	PaymentDate     time.Time     `gorm:"autoCreateTime" json:"payment_date"`
	PaymentStatus   PaymentStatus `gorm:"type:varchar(20);default:'Completed'" json:"payment_status"`

	Student *User   `gorm:"foreignKey:StudentID" json:"-"`
	Course  *Course `gorm:"foreignKey:CourseID" json:"-"`
}

func (CoursePayment) TableName() string {
	return "course_payments"
}

// CourseProgress is a student's completion percentage for a course.
type CourseProgress struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	StudentID uint    `gorm:"uniqueIndex:idx_progress_student_course;not null" json:"student"`
	CourseID  uint    `gorm:"uniqueIndex:idx_progress_student_course;not null" json:"course"`
	Progress  float64 `gorm:"default:0" json:"progress"`
}

func (CourseProgress) TableName() string {
	return "course_progresses"
}
