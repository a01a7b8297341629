package model

import "time"

// ContactMessage is a visitor message left through the contact page.
type ContactMessage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Email     string    `gorm:"size:254;not null" json:"email"`
	Website   string    `gorm:"size:255" json:"website"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (ContactMessage) TableName() string {
	return "contact_messages"
}
