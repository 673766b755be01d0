package repository

import (
	"context"
	"errors"

	"codeflow/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StatsRepository computes per-project counters for the dashboard. Every
// metric is one independent query; a missing repository or kanban yields 0
// instead of an error. No consistency is promised across metrics.
type StatsRepository struct {
	db *gorm.DB
}

type StatsRepositoryInterface interface {
	CountCommits(ctx context.Context, projectID uuid.UUID) (int64, error)
	CountFiles(ctx context.Context, projectID uuid.UUID) (int64, error)
	CountCollaborators(ctx context.Context, projectID uuid.UUID) (int64, error)
	CountTasks(ctx context.Context, projectID uuid.UUID) (int64, error)
	CountTasksByStatus(ctx context.Context, projectID uuid.UUID, status string) (int64, error)
}

var _ StatsRepositoryInterface = (*StatsRepository)(nil)

func NewStatsRepository(db *gorm.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// CountCommits counts file rows in the project's repository. A commit and a
// file row are the same thing in this model.
func (r *StatsRepository) CountCommits(ctx context.Context, projectID uuid.UUID) (int64, error) {
	var repo model.Repository
	err := r.db.WithContext(ctx).Where("project_id = ?", projectID).First(&repo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	var count int64
	err = r.db.WithContext(ctx).Model(&model.File{}).Where("repository_id = ?", repo.ID).Count(&count).Error
	return count, err
}

func (r *StatsRepository) CountFiles(ctx context.Context, projectID uuid.UUID) (int64, error) {
	return r.CountCommits(ctx, projectID)
}

func (r *StatsRepository) CountCollaborators(ctx context.Context, projectID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.UserProject{}).Where("project_id = ?", projectID).Count(&count).Error
	return count, err
}

func (r *StatsRepository) CountTasks(ctx context.Context, projectID uuid.UUID) (int64, error) {
	var kanban model.Kanban
	err := r.db.WithContext(ctx).Where("project_id = ?", projectID).First(&kanban).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	var count int64
	err = r.db.WithContext(ctx).Model(&model.Task{}).Where("kanban_id = ?", kanban.ID).Count(&count).Error
	return count, err
}

func (r *StatsRepository) CountTasksByStatus(ctx context.Context, projectID uuid.UUID, status string) (int64, error) {
	var kanban model.Kanban
	err := r.db.WithContext(ctx).Where("project_id = ?", projectID).First(&kanban).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	var count int64
	err = r.db.WithContext(ctx).Model(&model.Task{}).
		Where("kanban_id = ? AND status = ?", kanban.ID, status).
		Count(&count).Error
	return count, err
}
