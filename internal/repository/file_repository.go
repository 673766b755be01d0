package repository

import (
	"context"
	"errors"

	"codeflow/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FileRepository struct {
	db *gorm.DB
}

type FileRepositoryInterface interface {
	Create(ctx context.Context, file *model.File) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.File, error)
	GetByRepositoryID(ctx context.Context, repositoryID uuid.UUID) ([]model.File, error)
	ExistsByHash(ctx context.Context, repositoryID uuid.UUID, hash string) (bool, error)
}

var _ FileRepositoryInterface = (*FileRepository)(nil)

func NewFileRepository(db *gorm.DB) *FileRepository {
	return &FileRepository{db: db}
}

// Create appends a new file snapshot. Existing rows are never touched; the
// commit history of a repository only grows. The unique index on
// (repository_id, hash) backs up the handler's pre-check under concurrency.
func (r *FileRepository) Create(ctx context.Context, file *model.File) error {
	if err := r.db.WithContext(ctx).Create(file).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateHash
		}
		return err
	}
	return nil
}

func (r *FileRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.File, error) {
	var file model.File
	if err := r.db.WithContext(ctx).Preload("User").Where("id = ?", id).First(&file).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFileNotFound
		}
		return nil, err
	}
	return &file, nil
}

// GetByRepositoryID lists all snapshots in commit order, with the committing
// user preloaded.
func (r *FileRepository) GetByRepositoryID(ctx context.Context, repositoryID uuid.UUID) ([]model.File, error) {
	var files []model.File
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("repository_id = ?", repositoryID).
		Order("created_at").
		Find(&files).Error
	return files, err
}

// ExistsByHash reports whether the exact content is already committed to the
// repository. Uniqueness is scoped per repository, not global.
func (r *FileRepository) ExistsByHash(ctx context.Context, repositoryID uuid.UUID, hash string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.File{}).
		Where("repository_id = ? AND hash = ?", repositoryID, hash).
		Count(&count).Error
	return count > 0, err
}
