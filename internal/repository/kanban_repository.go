package repository

import (
	"context"
	"errors"

	"codeflow/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type KanbanRepository struct {
	db *gorm.DB
}

type KanbanRepositoryInterface interface {
	Create(ctx context.Context, kanban *model.Kanban) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Kanban, error)
	GetByProjectID(ctx context.Context, projectID uuid.UUID) (*model.Kanban, error)
}

var _ KanbanRepositoryInterface = (*KanbanRepository)(nil)

func NewKanbanRepository(db *gorm.DB) *KanbanRepository {
	return &KanbanRepository{db: db}
}

func (r *KanbanRepository) Create(ctx context.Context, kanban *model.Kanban) error {
	return r.db.WithContext(ctx).Create(kanban).Error
}

func (r *KanbanRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Kanban, error) {
	var kanban model.Kanban
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&kanban).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrKanbanNotFound
		}
		return nil, err
	}
	return &kanban, nil
}

func (r *KanbanRepository) GetByProjectID(ctx context.Context, projectID uuid.UUID) (*model.Kanban, error) {
	var kanban model.Kanban
	if err := r.db.WithContext(ctx).Where("project_id = ?", projectID).First(&kanban).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrKanbanNotFound
		}
		return nil, err
	}
	return &kanban, nil
}
