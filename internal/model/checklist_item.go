package model

import (
	"time"

	"github.com/google/uuid"
)

type ChecklistItem struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	TaskID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Text        string    `gorm:"not null"`
	IsCompleted bool      `gorm:"not null;default:false"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`

	Task Task `gorm:"foreignKey:TaskID"`
}
