package domain

import (
	"time"

	"github.com/google/uuid"
)

// Note is a free-text consultation record owned by one user and linked to
// zero or more diagnosis codes.
type Note struct {
	ID        uuid.UUID `json:"note_id" gorm:"type:uuid;primaryKey"`
	UserEmail string    `json:"user_email" gorm:"size:255;index;not null"`
	Title     string    `json:"title" gorm:"size:255;not null"`
	Content   string    `json:"content" gorm:"type:text"`
	Codes     []Code    `json:"codes" gorm:"many2many:note_codes"`
	CreatedAt time.Time `json:"created_at"`
}
