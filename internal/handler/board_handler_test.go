package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"codeflow/internal/handler"
	"codeflow/internal/model"
	"codeflow/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockKanbanRepository struct {
	mock.Mock
}

func (m *MockKanbanRepository) Create(ctx context.Context, kanban *model.Kanban) error {
	args := m.Called(ctx, kanban)
	return args.Error(0)
}

func (m *MockKanbanRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Kanban, error) {
	args := m.Called(ctx, id)
	kanban := args.Get(0)
	if kanban == nil {
		return nil, args.Error(1)
	}
	return kanban.(*model.Kanban), args.Error(1)
}

func (m *MockKanbanRepository) GetByProjectID(ctx context.Context, projectID uuid.UUID) (*model.Kanban, error) {
	args := m.Called(ctx, projectID)
	kanban := args.Get(0)
	if kanban == nil {
		return nil, args.Error(1)
	}
	return kanban.(*model.Kanban), args.Error(1)
}

func setupBoardTest() (*gin.Engine, *MockKanbanRepository) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	mockRepo := new(MockKanbanRepository)
	boardHandler := handler.NewBoardHandler(mockRepo)

	authorized := r.Group("/", fakeAuth(uuid.New()))
	{
		authorized.POST("/boards", boardHandler.Create)
		authorized.GET("/boards/:projectId", boardHandler.GetByProjectID)
	}

	return r, mockRepo
}

func TestCreateBoard_Backfill(t *testing.T) {
	router, mockRepo := setupBoardTest()

	projectID := uuid.New()
	mockRepo.On("GetByProjectID", mock.Anything, projectID).Return(nil, repository.ErrKanbanNotFound)
	mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(k *model.Kanban) bool {
		return k.ProjectID == projectID
	})).Return(nil)

	body, _ := json.Marshal(handler.CreateKanbanRequest{ProjectID: projectID.String()})
	req, _ := http.NewRequest("POST", "/boards", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusCreated, resp.Code)
	mockRepo.AssertExpectations(t)
}

func TestCreateBoard_AlreadyExists(t *testing.T) {
	router, mockRepo := setupBoardTest()

	projectID := uuid.New()
	existing := &model.Kanban{ID: uuid.New(), ProjectID: projectID}
	mockRepo.On("GetByProjectID", mock.Anything, projectID).Return(existing, nil)

	body, _ := json.Marshal(handler.CreateKanbanRequest{ProjectID: projectID.String()})
	req, _ := http.NewRequest("POST", "/boards", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)

	var response map[string]interface{}
	err := json.Unmarshal(resp.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "Kanban board already exists for this project", response["message"])

	mockRepo.AssertNotCalled(t, "Create")
}

func TestGetBoardByProjectID_NotFound(t *testing.T) {
	router, mockRepo := setupBoardTest()

	projectID := uuid.New()
	mockRepo.On("GetByProjectID", mock.Anything, projectID).Return(nil, repository.ErrKanbanNotFound)

	req, _ := http.NewRequest("GET", "/boards/"+projectID.String(), nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestGetBoardByProjectID_Success(t *testing.T) {
	router, mockRepo := setupBoardTest()

	projectID := uuid.New()
	kanban := &model.Kanban{ID: uuid.New(), ProjectID: projectID}
	mockRepo.On("GetByProjectID", mock.Anything, projectID).Return(kanban, nil)

	req, _ := http.NewRequest("GET", "/boards/"+projectID.String(), nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)

	var response struct {
		Success bool                   `json:"success"`
		Kanban  handler.KanbanResponse `json:"kanban"`
	}
	err := json.Unmarshal(resp.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, kanban.ID.String(), response.Kanban.ID)

	mockRepo.AssertExpectations(t)
}
