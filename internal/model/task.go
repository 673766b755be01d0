package model

import (
	"time"

	"github.com/google/uuid"
)

type Task struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Title       string    `gorm:"size:100;not null"`
	Description string    `gorm:"size:1700"`
	Status      string    `gorm:"not null;default:'To Do'"`
	KanbanID    uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Kanban Kanban `gorm:"foreignKey:KanbanID"`
}

// Task statuses shown as board columns
const (
	StatusToDo  = "To Do"
	StatusDoing = "Doing"
	StatusDone  = "Done"
)
