package handler

import (
	"context"
	"net/http"

	"codeflow/internal/model"
	"codeflow/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// StatsHandler serves the per-project dashboard counters. Each endpoint is
// one independent count; a project with no repository or board reports 0.
type StatsHandler struct {
	statsRepo repository.StatsRepositoryInterface
}

func NewStatsHandler(statsRepo repository.StatsRepositoryInterface) *StatsHandler {
	return &StatsHandler{statsRepo: statsRepo}
}

func (h *StatsHandler) TotalCommits(c *gin.Context) {
	h.respondTotal(c, h.statsRepo.CountCommits)
}

func (h *StatsHandler) TotalFiles(c *gin.Context) {
	h.respondTotal(c, h.statsRepo.CountFiles)
}

func (h *StatsHandler) TotalCollaborators(c *gin.Context) {
	h.respondTotal(c, h.statsRepo.CountCollaborators)
}

func (h *StatsHandler) TotalTasks(c *gin.Context) {
	h.respondTotal(c, h.statsRepo.CountTasks)
}

func (h *StatsHandler) DoneTasks(c *gin.Context) {
	h.respondTotalByStatus(c, model.StatusDone)
}

func (h *StatsHandler) ToDoTasks(c *gin.Context) {
	h.respondTotalByStatus(c, model.StatusToDo)
}

func (h *StatsHandler) DoingTasks(c *gin.Context) {
	h.respondTotalByStatus(c, model.StatusDoing)
}

func (h *StatsHandler) respondTotal(c *gin.Context, count func(context.Context, uuid.UUID) (int64, error)) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Project not found!"})
		return
	}

	total, err := count(c.Request.Context(), projectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error while computing stats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "total": total})
}

func (h *StatsHandler) respondTotalByStatus(c *gin.Context, status string) {
	h.respondTotal(c, func(ctx context.Context, projectID uuid.UUID) (int64, error) {
		return h.statsRepo.CountTasksByStatus(ctx, projectID, status)
	})
}
