package models

import "time"

// User is a persistent account. Guest-session deployments never create rows
// here; submitter identity is carried on photos and reviews either way.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"size:100;uniqueIndex;not null" validate:"required,min=3,max=100"`
	Email        string    `json:"email" gorm:"size:120;uniqueIndex;not null" validate:"required,email"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"`
	ProfilePhoto string    `json:"profile_photo,omitempty" gorm:"size:300"`
	IsAdmin      bool      `json:"is_admin" gorm:"not null;default:false"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
