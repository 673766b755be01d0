package repository

import (
	"context"
	"errors"

	"codeflow/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserProjectRepository struct {
	db *gorm.DB
}

type UserProjectRepositoryInterface interface {
	Create(ctx context.Context, link *model.UserProject) error
	Find(ctx context.Context, userID, projectID uuid.UUID) (*model.UserProject, error)
	GetByProject(ctx context.Context, projectID uuid.UUID) ([]model.UserProject, error)
	Delete(ctx context.Context, userID, projectID uuid.UUID) error
}

var _ UserProjectRepositoryInterface = (*UserProjectRepository)(nil)

func NewUserProjectRepository(db *gorm.DB) *UserProjectRepository {
	return &UserProjectRepository{db: db}
}

func (r *UserProjectRepository) Create(ctx context.Context, link *model.UserProject) error {
	if err := r.db.WithContext(ctx).Create(link).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateCollaborator
		}
		return err
	}
	return nil
}

func (r *UserProjectRepository) Find(ctx context.Context, userID, projectID uuid.UUID) (*model.UserProject, error) {
	var link model.UserProject
	if err := r.db.WithContext(ctx).Where("user_id = ? AND project_id = ?", userID, projectID).First(&link).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &link, nil
}

// GetByProject returns all collaborator links with the user preloaded.
func (r *UserProjectRepository) GetByProject(ctx context.Context, projectID uuid.UUID) ([]model.UserProject, error) {
	var links []model.UserProject
	err := r.db.WithContext(ctx).Preload("User").Where("project_id = ?", projectID).Find(&links).Error
	return links, err
}

func (r *UserProjectRepository) Delete(ctx context.Context, userID, projectID uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("user_id = ? AND project_id = ?", userID, projectID).Delete(&model.UserProject{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
