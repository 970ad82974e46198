package model

import (
	"time"

	"github.com/google/uuid"
)

// DefaultProjectEmoji is shown for projects created without one.
const DefaultProjectEmoji = "📋"

type Project struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name        string    `gorm:"not null"`
	Description *string
	Emoji       *string
	UserID      uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Owner User `gorm:"foreignKey:UserID"`
}
