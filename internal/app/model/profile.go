package model

import "time"

type Profile struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UserID         uint      `gorm:"uniqueIndex;not null" json:"user"`
	Bio            string    `gorm:"type:text" json:"bio"`
	ProfilePicture string    `json:"profile_picture"`
	PhoneNumber    string    `gorm:"size:15" json:"phone_number"`
	Address        string    `gorm:"type:text" json:"address"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (Profile) TableName() string {
	return "profiles"
}
