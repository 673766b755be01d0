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

type TaskHandler struct {
	taskRepo repository.TaskRepositoryInterface
}

func NewTaskHandler(taskRepo repository.TaskRepositoryInterface) *TaskHandler {
	return &TaskHandler{taskRepo: taskRepo}
}

type CreateTaskRequest struct {
	Title       string `json:"title" binding:"required,max=100"`
	Description string `json:"description" binding:"max=1700"`
	Status      string `json:"status" binding:"omitempty,oneof='To Do' 'Doing' 'Done'"`
	KanbanID    string `json:"kanbanId" binding:"required,uuid"`
}

type UpdateTaskRequest struct {
	Title       string  `json:"title" binding:"omitempty,max=100"`
	Description *string `json:"description" binding:"omitempty,max=1700"`
	Status      string  `json:"status" binding:"omitempty,oneof='To Do' 'Doing' 'Done'"`
}

type UpdateTaskStatusRequest struct {
	Status string `json:"status" binding:"required,oneof='To Do' 'Doing' 'Done'"`
}

type TaskResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	KanbanID    string `json:"kanbanId"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

func toTaskResponse(task *model.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID.String(),
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		KanbanID:    task.KanbanID.String(),
		CreatedAt:   task.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   task.UpdatedAt.Format(time.RFC3339),
	}
}

// Create adds a task to a board. Status defaults to "To Do" when omitted.
func (h *TaskHandler) Create(c *gin.Context) {
	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid input"})
		return
	}

	kanbanID, err := uuid.Parse(req.KanbanID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid kanban ID format"})
		return
	}

	status := req.Status
	if status == "" {
		status = model.StatusToDo
	}

	task := &model.Task{
		Title:       req.Title,
		Description: req.Description,
		Status:      status,
		KanbanID:    kanbanID,
	}

	if err := h.taskRepo.Create(c.Request.Context(), task); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error while creating task"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Task added successfully", "task": toTaskResponse(task)})
}

// GetAll lists all tasks on a board.
func (h *TaskHandler) GetAll(c *gin.Context) {
	kanbanID, err := uuid.Parse(c.Param("kanbanId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid kanban ID format"})
		return
	}

	tasks, err := h.taskRepo.GetByKanbanID(c.Request.Context(), kanbanID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error while fetching tasks"})
		return
	}

	response := make([]TaskResponse, len(tasks))
	for i := range tasks {
		response[i] = toTaskResponse(&tasks[i])
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "tasks": response})
}

// Update partially updates title, description and status.
func (h *TaskHandler) Update(c *gin.Context) {
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Task not found!"})
		return
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid input"})
		return
	}

	task, err := h.taskRepo.GetByID(c.Request.Context(), taskID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Task not found!"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error while updating task"})
		return
	}

	if req.Title != "" {
		task.Title = req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Status != "" {
		task.Status = req.Status
	}

	if err := h.taskRepo.Update(c.Request.Context(), task); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error while updating task"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "task": toTaskResponse(task)})
}

// UpdateStatus is the narrow drag-and-drop variant: only the status column
// changes, every other field is left alone.
func (h *TaskHandler) UpdateStatus(c *gin.Context) {
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Task not found!"})
		return
	}

	var req UpdateTaskStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid input"})
		return
	}

	task, err := h.taskRepo.UpdateStatus(c.Request.Context(), taskID, req.Status)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Task not found!"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error while updating task status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "task": toTaskResponse(task)})
}

func (h *TaskHandler) Delete(c *gin.Context) {
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Task not found!"})
		return
	}

	if err := h.taskRepo.Delete(c.Request.Context(), taskID); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Task not found!"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error while deleting task"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Task deleted successfully"})
}
