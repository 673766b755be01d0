package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"codeflow/internal/handler"
	"codeflow/internal/model"
	"codeflow/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) CreateWithDefaults(ctx context.Context, project *model.Project, collaboratorID *uuid.UUID) error {
	args := m.Called(ctx, project, collaboratorID)
	return args.Error(0)
}

func (m *MockProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	args := m.Called(ctx, id)
	project := args.Get(0)
	if project == nil {
		return nil, args.Error(1)
	}
	return project.(*model.Project), args.Error(1)
}

func (m *MockProjectRepository) GetOwned(ctx context.Context, id, ownerID uuid.UUID) (*model.Project, error) {
	args := m.Called(ctx, id, ownerID)
	project := args.Get(0)
	if project == nil {
		return nil, args.Error(1)
	}
	return project.(*model.Project), args.Error(1)
}

func (m *MockProjectRepository) GetForUser(ctx context.Context, userID uuid.UUID) ([]repository.ProjectWithRole, error) {
	args := m.Called(ctx, userID)
	projects := args.Get(0)
	if projects == nil {
		return nil, args.Error(1)
	}
	return projects.([]repository.ProjectWithRole), args.Error(1)
}

func (m *MockProjectRepository) Update(ctx context.Context, project *model.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *MockProjectRepository) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockUserProjectRepository struct {
	mock.Mock
}

func (m *MockUserProjectRepository) Create(ctx context.Context, link *model.UserProject) error {
	args := m.Called(ctx, link)
	return args.Error(0)
}

func (m *MockUserProjectRepository) Find(ctx context.Context, userID, projectID uuid.UUID) (*model.UserProject, error) {
	args := m.Called(ctx, userID, projectID)
	link := args.Get(0)
	if link == nil {
		return nil, args.Error(1)
	}
	return link.(*model.UserProject), args.Error(1)
}

func (m *MockUserProjectRepository) GetByProject(ctx context.Context, projectID uuid.UUID) ([]model.UserProject, error) {
	args := m.Called(ctx, projectID)
	links := args.Get(0)
	if links == nil {
		return nil, args.Error(1)
	}
	return links.([]model.UserProject), args.Error(1)
}

func (m *MockUserProjectRepository) Delete(ctx context.Context, userID, projectID uuid.UUID) error {
	args := m.Called(ctx, userID, projectID)
	return args.Error(0)
}

type projectTestMocks struct {
	projectRepo     *MockProjectRepository
	userRepo        *MockUserRepository
	userProjectRepo *MockUserProjectRepository
}

func setupProjectTest(userID uuid.UUID) (*gin.Engine, projectTestMocks) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	mocks := projectTestMocks{
		projectRepo:     new(MockProjectRepository),
		userRepo:        new(MockUserRepository),
		userProjectRepo: new(MockUserProjectRepository),
	}
	projectHandler := handler.NewProjectHandler(mocks.projectRepo, mocks.userRepo, mocks.userProjectRepo)

	authorized := r.Group("/", fakeAuth(userID))
	{
		authorized.POST("/projects", projectHandler.Create)
		authorized.GET("/projects", projectHandler.GetAll)
		authorized.GET("/projects/:id", projectHandler.GetByID)
		authorized.PUT("/projects/:id", projectHandler.Update)
		authorized.DELETE("/projects/:id", projectHandler.Delete)
		authorized.POST("/projects/collaborator/:id", projectHandler.AddCollaborator)
		authorized.GET("/projects/collaborator/:id", projectHandler.ListCollaborators)
		authorized.DELETE("/projects/collaborator/:id/:userId", projectHandler.RemoveCollaborator)
	}

	return r, mocks
}

func TestCreateProject_Success(t *testing.T) {
	ownerID := uuid.New()
	router, mocks := setupProjectTest(ownerID)

	mocks.projectRepo.On("CreateWithDefaults", mock.Anything, mock.MatchedBy(func(p *model.Project) bool {
		return p.Name == "New Project" && p.OwnerID == ownerID
	}), (*uuid.UUID)(nil)).Return(nil)

	reqBody := handler.CreateProjectRequest{Name: "New Project", Description: "A test project"}
	jsonBody, _ := json.Marshal(reqBody)
	req, _ := http.NewRequest("POST", "/projects", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusCreated, resp.Code)

	var response struct {
		Success bool                    `json:"success"`
		Project handler.ProjectResponse `json:"project"`
	}
	err := json.Unmarshal(resp.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.True(t, response.Success)
	assert.Equal(t, "New Project", response.Project.Name)
	assert.Equal(t, model.RoleOwner, response.Project.Role)

	mocks.projectRepo.AssertExpectations(t)
}

func TestCreateProject_MissingName(t *testing.T) {
	router, mocks := setupProjectTest(uuid.New())

	req, _ := http.NewRequest("POST", "/projects", bytes.NewBufferString(`{"description":"no name"}`))
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	mocks.projectRepo.AssertNotCalled(t, "CreateWithDefaults")
}

func TestGetAllProjects_RoleTagged(t *testing.T) {
	userID := uuid.New()
	router, mocks := setupProjectTest(userID)

	owned := model.Project{ID: uuid.New(), Name: "Owned", OwnerID: userID, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	shared := model.Project{ID: uuid.New(), Name: "Shared", OwnerID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()}

	mocks.projectRepo.On("GetForUser", mock.Anything, userID).Return([]repository.ProjectWithRole{
		{Project: owned, Role: model.RoleOwner},
		{Project: shared, Role: model.RoleCollaborator},
	}, nil)

	req, _ := http.NewRequest("GET", "/projects", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)

	var response struct {
		Success  bool                      `json:"success"`
		Count    int                       `json:"count"`
		Projects []handler.ProjectResponse `json:"projects"`
	}
	err := json.Unmarshal(resp.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, 2, response.Count)
	assert.Equal(t, model.RoleOwner, response.Projects[0].Role)
	assert.Equal(t, model.RoleCollaborator, response.Projects[1].Role)

	mocks.projectRepo.AssertExpectations(t)
}

func TestUpdateProject_NotOwner(t *testing.T) {
	userID := uuid.New()
	router, mocks := setupProjectTest(userID)

	projectID := uuid.New()
	mocks.projectRepo.On("GetOwned", mock.Anything, projectID, userID).Return(nil, repository.ErrProjectNotFound)

	req, _ := http.NewRequest("PUT", "/projects/"+projectID.String(), bytes.NewBufferString(`{"name":"Renamed"}`))
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusNotFound, resp.Code)
	mocks.projectRepo.AssertNotCalled(t, "Update")
}

func TestDeleteProject_Success(t *testing.T) {
	router, mocks := setupProjectTest(uuid.New())

	projectID := uuid.New()
	mocks.projectRepo.On("DeleteCascade", mock.Anything, projectID).Return(nil)

	req, _ := http.NewRequest("DELETE", "/projects/"+projectID.String(), nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
	mocks.projectRepo.AssertExpectations(t)
}

func TestDeleteProject_NotFound(t *testing.T) {
	router, mocks := setupProjectTest(uuid.New())

	projectID := uuid.New()
	mocks.projectRepo.On("DeleteCascade", mock.Anything, projectID).Return(repository.ErrProjectNotFound)

	req, _ := http.NewRequest("DELETE", "/projects/"+projectID.String(), nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusNotFound, resp.Code)

	var response map[string]interface{}
	err := json.Unmarshal(resp.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, false, response["success"])
	assert.Equal(t, "Project not found", response["message"])
}

func TestAddCollaborator_Success(t *testing.T) {
	router, mocks := setupProjectTest(uuid.New())

	projectID := uuid.New()
	collaborator := &model.User{ID: uuid.New(), Name: "Collab", Username: "collab"}

	mocks.projectRepo.On("GetByID", mock.Anything, projectID).Return(&model.Project{ID: projectID}, nil)
	mocks.userRepo.On("FindByUsername", mock.Anything, "collab").Return(collaborator, nil)
	mocks.userProjectRepo.On("Find", mock.Anything, collaborator.ID, projectID).Return(nil, nil)
	mocks.userProjectRepo.On("Create", mock.Anything, mock.MatchedBy(func(link *model.UserProject) bool {
		return link.UserID == collaborator.ID && link.ProjectID == projectID
	})).Return(nil)

	req, _ := http.NewRequest("POST", "/projects/collaborator/"+projectID.String(), bytes.NewBufferString(`{"username":"collab"}`))
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
	mocks.userProjectRepo.AssertExpectations(t)
}

func TestAddCollaborator_AlreadyLinked(t *testing.T) {
	router, mocks := setupProjectTest(uuid.New())

	projectID := uuid.New()
	collaborator := &model.User{ID: uuid.New(), Username: "collab"}

	mocks.projectRepo.On("GetByID", mock.Anything, projectID).Return(&model.Project{ID: projectID}, nil)
	mocks.userRepo.On("FindByUsername", mock.Anything, "collab").Return(collaborator, nil)
	mocks.userProjectRepo.On("Find", mock.Anything, collaborator.ID, projectID).
		Return(&model.UserProject{UserID: collaborator.ID, ProjectID: projectID}, nil)

	req, _ := http.NewRequest("POST", "/projects/collaborator/"+projectID.String(), bytes.NewBufferString(`{"username":"collab"}`))
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)

	var response map[string]interface{}
	err := json.Unmarshal(resp.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "User is already a collaborator", response["message"])

	mocks.userProjectRepo.AssertNotCalled(t, "Create")
}

func TestAddCollaborator_UserNotFound(t *testing.T) {
	router, mocks := setupProjectTest(uuid.New())

	projectID := uuid.New()
	mocks.projectRepo.On("GetByID", mock.Anything, projectID).Return(&model.Project{ID: projectID}, nil)
	mocks.userRepo.On("FindByUsername", mock.Anything, "ghost").Return(nil, nil)

	req, _ := http.NewRequest("POST", "/projects/collaborator/"+projectID.String(), bytes.NewBufferString(`{"username":"ghost"}`))
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestRemoveCollaborator_NotFound(t *testing.T) {
	router, mocks := setupProjectTest(uuid.New())

	projectID := uuid.New()
	userID := uuid.New()
	mocks.userProjectRepo.On("Delete", mock.Anything, userID, projectID).Return(gorm.ErrRecordNotFound)

	req, _ := http.NewRequest("DELETE", "/projects/collaborator/"+projectID.String()+"/"+userID.String(), nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusNotFound, resp.Code)
}
