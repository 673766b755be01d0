package repository

import (
	"context"
	"errors"

	"codeflow/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectRepository struct {
	db *gorm.DB
}

type ProjectRepositoryInterface interface {
	CreateWithDefaults(ctx context.Context, project *model.Project, collaboratorID *uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Project, error)
	GetOwned(ctx context.Context, id, ownerID uuid.UUID) (*model.Project, error)
	GetForUser(ctx context.Context, userID uuid.UUID) ([]ProjectWithRole, error)
	Update(ctx context.Context, project *model.Project) error
	DeleteCascade(ctx context.Context, id uuid.UUID) error
}

var _ ProjectRepositoryInterface = (*ProjectRepository)(nil)

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// ProjectWithRole is a project tagged with the querying user's role on it.
type ProjectWithRole struct {
	Project model.Project
	Role    string
}

// CreateWithDefaults persists the project together with its repository and
// kanban board in a single transaction, so a project can never exist without
// them. An optional collaborator distinct from the owner is linked as well.
func (r *ProjectRepository) CreateWithDefaults(ctx context.Context, project *model.Project, collaboratorID *uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(project).Error; err != nil {
			return err
		}

		repo := &model.Repository{ProjectID: project.ID}
		if err := tx.Create(repo).Error; err != nil {
			return err
		}

		kanban := &model.Kanban{ProjectID: project.ID}
		if err := tx.Create(kanban).Error; err != nil {
			return err
		}

		if collaboratorID != nil && *collaboratorID != project.OwnerID {
			link := &model.UserProject{UserID: *collaboratorID, ProjectID: project.ID}
			if err := tx.Create(link).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *ProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	var project model.Project
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return &project, nil
}

// GetOwned looks the project up by id and owner at once. A miss on either is
// reported as not found, so callers cannot probe for foreign projects.
func (r *ProjectRepository) GetOwned(ctx context.Context, id, ownerID uuid.UUID) (*model.Project, error) {
	var project model.Project
	if err := r.db.WithContext(ctx).Where("id = ? AND owner_id = ?", id, ownerID).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return &project, nil
}

// GetForUser returns the union of projects the user owns and projects the
// user collaborates on, each tagged with the role. A project that shows up in
// both sets is reported once, as owned.
func (r *ProjectRepository) GetForUser(ctx context.Context, userID uuid.UUID) ([]ProjectWithRole, error) {
	var owned []model.Project
	if err := r.db.WithContext(ctx).Preload("Owner").Where("owner_id = ?", userID).Find(&owned).Error; err != nil {
		return nil, err
	}

	var links []model.UserProject
	if err := r.db.WithContext(ctx).Preload("Project").Preload("Project.Owner").Where("user_id = ?", userID).Find(&links).Error; err != nil {
		return nil, err
	}

	seen := make(map[uuid.UUID]bool, len(owned))
	result := make([]ProjectWithRole, 0, len(owned)+len(links))
	for _, p := range owned {
		seen[p.ID] = true
		result = append(result, ProjectWithRole{Project: p, Role: model.RoleOwner})
	}
	for _, link := range links {
		if seen[link.ProjectID] {
			continue
		}
		seen[link.ProjectID] = true
		result = append(result, ProjectWithRole{Project: link.Project, Role: model.RoleCollaborator})
	}

	return result, nil
}

func (r *ProjectRepository) Update(ctx context.Context, project *model.Project) error {
	return r.db.WithContext(ctx).Save(project).Error
}

// DeleteCascade removes the project and everything hanging off it: the
// repository with its files, the kanban with its tasks, and all collaborator
// links. The whole cascade runs in one transaction so no orphans survive a
// partial failure.
func (r *ProjectRepository) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var project model.Project
		if err := tx.Where("id = ?", id).First(&project).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProjectNotFound
			}
			return err
		}

		var repo model.Repository
		err := tx.Where("project_id = ?", id).First(&repo).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err == nil {
			if err := tx.Where("repository_id = ?", repo.ID).Delete(&model.File{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&repo).Error; err != nil {
				return err
			}
		}

		var kanban model.Kanban
		err = tx.Where("project_id = ?", id).First(&kanban).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err == nil {
			if err := tx.Where("kanban_id = ?", kanban.ID).Delete(&model.Task{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&kanban).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("project_id = ?", id).Delete(&model.UserProject{}).Error; err != nil {
			return err
		}

		return tx.Delete(&project).Error
	})
}
