package repository

import (
	"context"
	"errors"

	"codeflow/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RepoRepository is the data access layer for the Repository entity (the
// per-project file container).
type RepoRepository struct {
	db *gorm.DB
}

type RepoRepositoryInterface interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Repository, error)
	GetByProjectID(ctx context.Context, projectID uuid.UUID) (*model.Repository, error)
}

var _ RepoRepositoryInterface = (*RepoRepository)(nil)

func NewRepoRepository(db *gorm.DB) *RepoRepository {
	return &RepoRepository{db: db}
}

func (r *RepoRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Repository, error) {
	var repo model.Repository
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&repo).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRepositoryNotFound
		}
		return nil, err
	}
	return &repo, nil
}

func (r *RepoRepository) GetByProjectID(ctx context.Context, projectID uuid.UUID) (*model.Repository, error) {
	var repo model.Repository
	if err := r.db.WithContext(ctx).Where("project_id = ?", projectID).First(&repo).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRepositoryNotFound
		}
		return nil, err
	}
	return &repo, nil
}
