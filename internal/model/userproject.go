package model

import (
	"time"

	"github.com/google/uuid"
)

// UserProject links a collaborator to a project. The owner is not linked
// here; ownership lives on Project.OwnerID.
type UserProject struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_project"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_project"`
	CreatedAt time.Time `gorm:"autoCreateTime"`

	User    User    `gorm:"foreignKey:UserID"`
	Project Project `gorm:"foreignKey:ProjectID"`
}

// Roles a user can have on a project
const (
	RoleOwner        = "owner"
	RoleCollaborator = "collaborator"
)
