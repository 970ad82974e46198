package model

import (
	"time"

	"github.com/google/uuid"
)

type TaskStatus string

const (
	StatusTodo       TaskStatus = "todo"
	StatusInProgress TaskStatus = "in_progress"
	StatusCompleted  TaskStatus = "completed"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type Task struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Title       string    `gorm:"not null"`
	Description *string
	Status      TaskStatus   `gorm:"type:task_status;not null;default:todo"`
	Priority    TaskPriority `gorm:"type:task_priority;not null;default:medium"`
	DueDate     *time.Time
	ProjectID   *uuid.UUID `gorm:"type:uuid;index"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	Emoji       *string
	IsImportant bool `gorm:"not null;default:false"`
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Project *Project `gorm:"foreignKey:ProjectID"`
	Owner   User     `gorm:"foreignKey:UserID"`
}
