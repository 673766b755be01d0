package handler

import (
	"errors"
	"net/http"
	"time"

	"codeflow/internal/model"
	"codeflow/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectHandler struct {
	projectRepo     repository.ProjectRepositoryInterface
	userRepo        repository.UserRepositoryInterface
	userProjectRepo repository.UserProjectRepositoryInterface
}

func NewProjectHandler(
	projectRepo repository.ProjectRepositoryInterface,
	userRepo repository.UserRepositoryInterface,
	userProjectRepo repository.UserProjectRepositoryInterface,
) *ProjectHandler {
	return &ProjectHandler{
		projectRepo:     projectRepo,
		userRepo:        userRepo,
		userProjectRepo: userProjectRepo,
	}
}

type CreateProjectRequest struct {
	Name           string `json:"name" binding:"required"`
	Description    string `json:"description"`
	CollaboratorID string `json:"collaboratorId" binding:"omitempty,uuid"`
}

type UpdateProjectRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

type AddCollaboratorRequest struct {
	Username string `json:"username" binding:"required"`
}

type ProjectResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	OwnerID     string `json:"userId"`
	Role        string `json:"role,omitempty"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

func toProjectResponse(project *model.Project, role string) ProjectResponse {
	return ProjectResponse{
		ID:          project.ID.String(),
		Name:        project.Name,
		Description: project.Description,
		OwnerID:     project.OwnerID.String(),
		Role:        role,
		CreatedAt:   project.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   project.UpdatedAt.Format(time.RFC3339),
	}
}

// Create persists a new project with its repository and kanban board.
func (h *ProjectHandler) Create(c *gin.Context) {
	ownerID, ok := authenticatedUserID(c)
	if !ok {
		return
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Project name is required"})
		return
	}

	project := &model.Project{
		Name:        req.Name,
		Description: req.Description,
		OwnerID:     ownerID,
	}

	var collaboratorID *uuid.UUID
	if req.CollaboratorID != "" {
		id, err := uuid.Parse(req.CollaboratorID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid collaborator ID format"})
			return
		}
		collaboratorID = &id
	}

	if err := h.projectRepo.CreateWithDefaults(c.Request.Context(), project, collaboratorID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error while creating project"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"project": toProjectResponse(project, model.RoleOwner),
	})
}

// GetAll lists the projects the user owns or collaborates on, role-tagged.
func (h *ProjectHandler) GetAll(c *gin.Context) {
	userID, ok := authenticatedUserID(c)
	if !ok {
		return
	}

	projects, err := h.projectRepo.GetForUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error while fetching projects"})
		return
	}

	response := make([]ProjectResponse, len(projects))
	for i, p := range projects {
		project := p.Project
		response[i] = toProjectResponse(&project, p.Role)
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"count":    len(response),
		"projects": response,
	})
}

func (h *ProjectHandler) GetByID(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid project ID format"})
		return
	}

	project, err := h.projectRepo.GetByID(c.Request.Context(), projectID)
	if err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Project not found or you do not have permission"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error while fetching project"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "project": toProjectResponse(project, "")})
}

// Update performs a partial update of name and description. Only the owner
// can update; anyone else sees the same 404 as for a missing project.
func (h *ProjectHandler) Update(c *gin.Context) {
	ownerID, ok := authenticatedUserID(c)
	if !ok {
		return
	}

	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid project ID format"})
		return
	}

	project, err := h.projectRepo.GetOwned(c.Request.Context(), projectID, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Project not found or you do not have permission"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error while updating project"})
		return
	}

	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid input"})
		return
	}

	if req.Name != "" {
		project.Name = req.Name
	}
	if req.Description != nil {
		project.Description = *req.Description
	}

	if err := h.projectRepo.Update(c.Request.Context(), project); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error while updating project"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "project": toProjectResponse(project, model.RoleOwner)})
}

// Delete removes the project and, transitively, its repository, files,
// kanban, tasks and collaborator links.
func (h *ProjectHandler) Delete(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid project ID format"})
		return
	}

	if err := h.projectRepo.DeleteCascade(c.Request.Context(), projectID); err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error while deleting project"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Project deleted successfully"})
}

// AddCollaborator links a user, looked up by username, to the project.
func (h *ProjectHandler) AddCollaborator(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid project ID format"})
		return
	}

	var req AddCollaboratorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Username is required"})
		return
	}

	if _, err := h.projectRepo.GetByID(c.Request.Context(), projectID); err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error while adding collaborator"})
		return
	}

	user, err := h.userRepo.FindByUsername(c.Request.Context(), req.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error while adding collaborator"})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
		return
	}

	existing, err := h.userProjectRepo.Find(c.Request.Context(), user.ID, projectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error while adding collaborator"})
		return
	}
	if existing != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "User is already a collaborator"})
		return
	}

	link := &model.UserProject{UserID: user.ID, ProjectID: projectID}
	if err := h.userProjectRepo.Create(c.Request.Context(), link); err != nil {
		if errors.Is(err, repository.ErrDuplicateCollaborator) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "User is already a collaborator"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error while adding collaborator"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Collaborator added successfully"})
}

// ListCollaborators returns the users linked to the project.
func (h *ProjectHandler) ListCollaborators(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid project ID format"})
		return
	}

	links, err := h.userProjectRepo.GetByProject(c.Request.Context(), projectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error while fetching collaborators"})
		return
	}

	collaborators := make([]UserResponse, len(links))
	for i, link := range links {
		collaborators[i] = toUserResponse(&link.User)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "collaborators": collaborators})
}

// RemoveCollaborator unlinks a user from the project.
func (h *ProjectHandler) RemoveCollaborator(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid project ID format"})
		return
	}

	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid user ID format"})
		return
	}

	if err := h.userProjectRepo.Delete(c.Request.Context(), userID, projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Collaboration not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error while removing collaborator"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Collaborator removed successfully"})
}
