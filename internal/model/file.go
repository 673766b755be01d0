package model

import (
	"time"

	"github.com/google/uuid"
)

// File is one committed snapshot. Rows are append-only: a re-upload of the
// same name with different content becomes a new row, never an update.
// Hash uniqueness is scoped to the owning repository.
type File struct {
	ID           uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name         string    `gorm:"size:255;not null"`
	Content      string    `gorm:"type:text"`
	Hash         string    `gorm:"not null;uniqueIndex:idx_repository_hash"`
	Message      string    `gorm:"not null"`
	RepositoryID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_repository_hash;index"`
	UserID       uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`

	Repository Repository `gorm:"foreignKey:RepositoryID"`
	User       User       `gorm:"foreignKey:UserID"`
}
