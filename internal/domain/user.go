package domain

import (
	"time"
)

// User is keyed by email; there is no surrogate id. Email is immutable once
// the record exists.
type User struct {
	Email        string    `json:"email" gorm:"primaryKey;size:255"`
	FirstName    string    `json:"first_name" gorm:"size:255;not null"`
	LastName     string    `json:"last_name" gorm:"size:255;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
