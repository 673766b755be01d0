package handler

import (
	"errors"
	"net/http"
	"time"

	"codeflow/internal/model"
	"codeflow/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BoardHandler struct {
	kanbanRepo repository.KanbanRepositoryInterface
}

func NewBoardHandler(kanbanRepo repository.KanbanRepositoryInterface) *BoardHandler {
	return &BoardHandler{kanbanRepo: kanbanRepo}
}

type CreateKanbanRequest struct {
	ProjectID string `json:"projectId" binding:"required,uuid"`
}

type KanbanResponse struct {
	ID        string `json:"id"`
	ProjectID string `json:"projectId"`
	CreatedAt string `json:"createdAt"`
}

func toKanbanResponse(kanban *model.Kanban) KanbanResponse {
	return KanbanResponse{
		ID:        kanban.ID.String(),
		ProjectID: kanban.ProjectID.String(),
		CreatedAt: kanban.CreatedAt.Format(time.RFC3339),
	}
}

// Create makes a board for a project. Boards are normally created together
// with the project; this endpoint only backfills one and refuses a second.
func (h *BoardHandler) Create(c *gin.Context) {
	var req CreateKanbanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "projectId is required"})
		return
	}

	projectID, err := uuid.Parse(req.ProjectID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid project ID format"})
		return
	}

	existing, err := h.kanbanRepo.GetByProjectID(c.Request.Context(), projectID)
	if err != nil && !errors.Is(err, repository.ErrKanbanNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error while creating kanban board"})
		return
	}
	if existing != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Kanban board already exists for this project"})
		return
	}

	kanban := &model.Kanban{ProjectID: projectID}
	if err := h.kanbanRepo.Create(c.Request.Context(), kanban); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error while creating kanban board"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "kanban": toKanbanResponse(kanban)})
}

func (h *BoardHandler) GetByProjectID(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("projectId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid project ID format"})
		return
	}

	kanban, err := h.kanbanRepo.GetByProjectID(c.Request.Context(), projectID)
	if err != nil {
		if errors.Is(err, repository.ErrKanbanNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Kanban board not found for this project"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error while fetching kanban board"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "kanban": toKanbanResponse(kanban)})
}
