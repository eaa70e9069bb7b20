package model

import "time"

type User struct {
	ID            string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Email         string    `gorm:"type:varchar(255);not null;unique;index" json:"email"`
	PasswordHash  string    `gorm:"type:varchar(255);not null" json:"-"`
	EmailVerified bool      `gorm:"default:false" json:"email_verified"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
