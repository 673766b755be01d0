package handler

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"net/http"
	"time"

	"codeflow/internal/model"
	"codeflow/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// MaxUploadBytes caps a single file upload at 5 MiB.
const MaxUploadBytes = 5 << 20

type RepositoryHandler struct {
	repoRepo repository.RepoRepositoryInterface
	fileRepo repository.FileRepositoryInterface
}

func NewRepositoryHandler(
	repoRepo repository.RepoRepositoryInterface,
	fileRepo repository.FileRepositoryInterface,
) *RepositoryHandler {
	return &RepositoryHandler{
		repoRepo: repoRepo,
		fileRepo: fileRepo,
	}
}

type RepositoryResponse struct {
	ID        string `json:"id"`
	ProjectID string `json:"projectId"`
	CreatedAt string `json:"createdAt"`
}

type FileResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Content      string `json:"content"`
	Hash         string `json:"hash"`
	Message      string `json:"message"`
	RepositoryID string `json:"repositoryId"`
	Username     string `json:"username"`
	CreatedAt    string `json:"createdAt"`
}

func toFileResponse(file *model.File) FileResponse {
	return FileResponse{
		ID:           file.ID.String(),
		Name:         file.Name,
		Content:      file.Content,
		Hash:         file.Hash,
		Message:      file.Message,
		RepositoryID: file.RepositoryID.String(),
		Username:     file.User.Username,
		CreatedAt:    file.CreatedAt.Format(time.RFC3339),
	}
}

func (h *RepositoryHandler) GetByProjectID(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("projectId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid project ID format"})
		return
	}

	repo, err := h.repoRepo.GetByProjectID(c.Request.Context(), projectID)
	if err != nil {
		if errors.Is(err, repository.ErrRepositoryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Repository not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error while fetching repository"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"repository": RepositoryResponse{
			ID:        repo.ID.String(),
			ProjectID: repo.ProjectID.String(),
			CreatedAt: repo.CreatedAt.Format(time.RFC3339),
		},
	})
}

// GetFile returns a single committed snapshot by id.
func (h *RepositoryHandler) GetFile(c *gin.Context) {
	fileID, err := uuid.Parse(c.Param("fileId"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "File not found!"})
		return
	}

	file, err := h.fileRepo.GetByID(c.Request.Context(), fileID)
	if err != nil {
		if errors.Is(err, repository.ErrFileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "File not found!"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error while fetching file"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "file": toFileResponse(file)})
}

// ListFiles returns every snapshot in the repository, committer included.
func (h *RepositoryHandler) ListFiles(c *gin.Context) {
	repositoryID, err := uuid.Parse(c.Param("repositoryId"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Repository not found!"})
		return
	}

	if _, err := h.repoRepo.GetByID(c.Request.Context(), repositoryID); err != nil {
		if errors.Is(err, repository.ErrRepositoryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Repository not found!"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error while fetching files"})
		return
	}

	files, err := h.fileRepo.GetByRepositoryID(c.Request.Context(), repositoryID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error while fetching files"})
		return
	}

	response := make([]FileResponse, len(files))
	for i := range files {
		response[i] = toFileResponse(&files[i])
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "files": response})
}

// UploadFile appends a new snapshot from a multipart upload. The content is
// decoded as text and addressed by its sha256 digest; committing identical
// content to the same repository twice is rejected. The response carries the
// refreshed file listing.
func (h *RepositoryHandler) UploadFile(c *gin.Context) {
	repositoryID, err := uuid.Parse(c.Param("repositoryId"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Repository not found!"})
		return
	}

	userID, ok := authenticatedUserID(c)
	if !ok {
		return
	}

	if _, err := h.repoRepo.GetByID(c.Request.Context(), repositoryID); err != nil {
		if errors.Is(err, repository.ErrRepositoryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Repository not found!"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error while uploading file"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "No file uploaded"})
		return
	}
	if fileHeader.Size > MaxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "File exceeds the 5 MiB upload limit"})
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error while uploading file"})
		return
	}
	defer src.Close()

	content, err := io.ReadAll(io.LimitReader(src, MaxUploadBytes))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error while uploading file"})
		return
	}

	message := c.PostForm("message")
	if fileHeader.Filename == "" || len(content) == 0 || message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "File, name and commit message are required"})
		return
	}

	sum := sha256.Sum256(content)
	hash := hex.EncodeToString(sum[:])

	exists, err := h.fileRepo.ExistsByHash(c.Request.Context(), repositoryID, hash)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error while uploading file"})
		return
	}
	if exists {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "File content already committed"})
		return
	}

	file := &model.File{
		Name:         fileHeader.Filename,
		Content:      string(content),
		Hash:         hash,
		Message:      message,
		RepositoryID: repositoryID,
		UserID:       userID,
	}

	if err := h.fileRepo.Create(c.Request.Context(), file); err != nil {
		if errors.Is(err, repository.ErrDuplicateHash) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "File content already committed"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error while uploading file"})
		return
	}

	files, err := h.fileRepo.GetByRepositoryID(c.Request.Context(), repositoryID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error while uploading file"})
		return
	}

	response := make([]FileResponse, len(files))
	for i := range files {
		response[i] = toFileResponse(&files[i])
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "files": response})
}
