package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"taskdeck/internal/handler"
	"taskdeck/internal/middleware"
	"taskdeck/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupTaskTest(userID uuid.UUID) (*gin.Engine, *MockTaskRepository, *MockProjectRepository) {
	gin.SetMode(gin.TestMode)
	r := gin.Default()
	mockTaskRepo := new(MockTaskRepository)
	mockProjectRepo := new(MockProjectRepository)
	taskHandler := handler.NewTaskHandler(mockTaskRepo, mockProjectRepo)

	// Stand-in for the JWT middleware
	r.Use(func(c *gin.Context) {
		c.Set(middleware.UserIDKey, userID)
		c.Next()
	})

	r.POST("/tasks", taskHandler.Create)
	r.GET("/tasks", taskHandler.GetAll)
	r.GET("/tasks/:id", taskHandler.GetByID)
	r.PUT("/tasks/:id", taskHandler.Update)
	r.DELETE("/tasks/:id", taskHandler.Delete)

	return r, mockTaskRepo, mockProjectRepo
}

func strPtr(s string) *string {
	return &s
}

func TestTaskCreate_CompletedStatusStampsCompletedAt(t *testing.T) {
	// Arrange
	userID := uuid.New()
	router, mockTaskRepo, _ := setupTaskTest(userID)

	var created *model.Task
	mockTaskRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Task")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*model.Task)
		}).
		Return(nil)

	reqBody := handler.TaskRequest{
		Title:  "Write report",
		Status: "completed",
	}
	jsonBody, _ := json.Marshal(reqBody)
	req, _ := http.NewRequest("POST", "/tasks", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusCreated, resp.Code)
	assert.NotNil(t, created)
	assert.NotNil(t, created.CompletedAt)
	assert.Equal(t, userID, created.UserID)

	var response handler.TaskResponse
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &response))
	assert.NotNil(t, response.CompletedAt)
}

func TestTaskCreate_TodoStatusLeavesCompletedAtNull(t *testing.T) {
	// Arrange
	userID := uuid.New()
	router, mockTaskRepo, _ := setupTaskTest(userID)

	var created *model.Task
	mockTaskRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Task")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*model.Task)
		}).
		Return(nil)

	reqBody := handler.TaskRequest{
		Title: "Write report",
	}
	jsonBody, _ := json.Marshal(reqBody)
	req, _ := http.NewRequest("POST", "/tasks", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert: defaults applied, nothing stamped
	assert.Equal(t, http.StatusCreated, resp.Code)
	assert.NotNil(t, created)
	assert.Nil(t, created.CompletedAt)
	assert.Equal(t, model.StatusTodo, created.Status)
	assert.Equal(t, model.PriorityMedium, created.Priority)
}

func TestTaskCreate_ForeignProjectRejected(t *testing.T) {
	// Arrange
	userID := uuid.New()
	router, mockTaskRepo, mockProjectRepo := setupTaskTest(userID)

	projectID := uuid.New()
	foreignProject := &model.Project{
		ID:     projectID,
		Name:   "Someone else's project",
		UserID: uuid.New(),
	}
	mockProjectRepo.On("GetByID", mock.Anything, projectID).Return(foreignProject, nil)

	reqBody := handler.TaskRequest{
		Title:     "Sneaky task",
		ProjectID: strPtr(projectID.String()),
	}
	jsonBody, _ := json.Marshal(reqBody)
	req, _ := http.NewRequest("POST", "/tasks", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusNotFound, resp.Code)
	mockTaskRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestTaskUpdate_LeavingCompletedClearsCompletedAt(t *testing.T) {
	// Arrange
	userID := uuid.New()
	router, mockTaskRepo, _ := setupTaskTest(userID)

	taskID := uuid.New()
	completedAt := time.Now().Add(-time.Hour)
	existing := &model.Task{
		ID:          taskID,
		Title:       "Write report",
		Status:      model.StatusCompleted,
		Priority:    model.PriorityMedium,
		UserID:      userID,
		CompletedAt: &completedAt,
	}
	mockTaskRepo.On("GetByID", mock.Anything, taskID).Return(existing, nil)

	var updated *model.Task
	mockTaskRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.Task")).
		Run(func(args mock.Arguments) {
			updated = args.Get(1).(*model.Task)
		}).
		Return(nil)

	reqBody := handler.TaskRequest{
		Title:  "Write report",
		Status: "todo",
	}
	jsonBody, _ := json.Marshal(reqBody)
	req, _ := http.NewRequest("PUT", "/tasks/"+taskID.String(), bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.NotNil(t, updated)
	assert.Nil(t, updated.CompletedAt)
	assert.Equal(t, model.StatusTodo, updated.Status)
}

func TestTaskUpdate_EnteringCompletedStampsCompletedAt(t *testing.T) {
	// Arrange
	userID := uuid.New()
	router, mockTaskRepo, _ := setupTaskTest(userID)

	taskID := uuid.New()
	existing := &model.Task{
		ID:       taskID,
		Title:    "Write report",
		Status:   model.StatusInProgress,
		Priority: model.PriorityHigh,
		UserID:   userID,
	}
	mockTaskRepo.On("GetByID", mock.Anything, taskID).Return(existing, nil)

	var updated *model.Task
	mockTaskRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.Task")).
		Run(func(args mock.Arguments) {
			updated = args.Get(1).(*model.Task)
		}).
		Return(nil)

	reqBody := handler.TaskRequest{
		Title:  "Write report",
		Status: "completed",
	}
	jsonBody, _ := json.Marshal(reqBody)
	req, _ := http.NewRequest("PUT", "/tasks/"+taskID.String(), bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.NotNil(t, updated)
	assert.NotNil(t, updated.CompletedAt)
}

func TestTaskUpdate_ForeignTaskHiddenBehind404(t *testing.T) {
	// Arrange
	userID := uuid.New()
	router, mockTaskRepo, _ := setupTaskTest(userID)

	taskID := uuid.New()
	foreign := &model.Task{
		ID:       taskID,
		Title:    "Not yours",
		Status:   model.StatusTodo,
		Priority: model.PriorityLow,
		UserID:   uuid.New(),
	}
	mockTaskRepo.On("GetByID", mock.Anything, taskID).Return(foreign, nil)

	reqBody := handler.TaskRequest{
		Title: "Hijacked",
	}
	jsonBody, _ := json.Marshal(reqBody)
	req, _ := http.NewRequest("PUT", "/tasks/"+taskID.String(), bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusNotFound, resp.Code)
	mockTaskRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestTaskGetAll_JoinsProjectInfo(t *testing.T) {
	// Arrange
	userID := uuid.New()
	router, mockTaskRepo, _ := setupTaskTest(userID)

	projectID := uuid.New()
	tasks := []model.Task{
		{
			ID:        uuid.New(),
			Title:     "Create wireframes",
			Status:    model.StatusTodo,
			Priority:  model.PriorityHigh,
			ProjectID: &projectID,
			UserID:    userID,
			Project: &model.Project{
				ID:     projectID,
				Name:   "Website Redesign",
				Emoji:  strPtr("🎨"),
				UserID: userID,
			},
		},
	}
	mockTaskRepo.On("GetOwned", mock.Anything, userID).Return(tasks, nil)

	req, _ := http.NewRequest("GET", "/tasks", nil)

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)

	var response []handler.TaskResponse
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &response))
	assert.Len(t, response, 1)
	assert.NotNil(t, response[0].Project)
	assert.Equal(t, "Website Redesign", response[0].Project.Name)
	assert.Equal(t, "🎨", response[0].Project.Emoji)
}

func TestTaskGetAll_SearchIsCaseInsensitive(t *testing.T) {
	// Arrange
	userID := uuid.New()
	router, mockTaskRepo, _ := setupTaskTest(userID)

	tasks := []model.Task{
		{ID: uuid.New(), Title: "Design wireframes", Status: model.StatusTodo, Priority: model.PriorityHigh, UserID: userID},
		{ID: uuid.New(), Title: "Ship release", Status: model.StatusTodo, Priority: model.PriorityMedium, UserID: userID},
	}
	mockTaskRepo.On("GetOwned", mock.Anything, userID).Return(tasks, nil)

	req, _ := http.NewRequest("GET", "/tasks?search=WIRE", nil)

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)

	var response []handler.TaskResponse
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &response))
	assert.Len(t, response, 1)
	assert.Equal(t, "Design wireframes", response[0].Title)
}

func TestTaskGetAll_StatusFilterIgnoresSearchMisses(t *testing.T) {
	// Arrange
	userID := uuid.New()
	router, mockTaskRepo, _ := setupTaskTest(userID)

	tasks := []model.Task{
		{ID: uuid.New(), Title: "A", Status: model.StatusTodo, Priority: model.PriorityLow, UserID: userID},
		{ID: uuid.New(), Title: "B", Status: model.StatusCompleted, Priority: model.PriorityLow, UserID: userID},
		{ID: uuid.New(), Title: "C", Status: model.StatusInProgress, Priority: model.PriorityLow, UserID: userID},
	}
	mockTaskRepo.On("GetOwned", mock.Anything, userID).Return(tasks, nil)

	req, _ := http.NewRequest("GET", "/tasks?status=todo", nil)

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)

	var response []handler.TaskResponse
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &response))
	assert.Len(t, response, 1)
	assert.Equal(t, "todo", response[0].Status)
}

func TestTaskGetAll_InvalidStatusFilter(t *testing.T) {
	// Arrange
	userID := uuid.New()
	router, mockTaskRepo, _ := setupTaskTest(userID)

	req, _ := http.NewRequest("GET", "/tasks?status=bogus", nil)

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	mockTaskRepo.AssertNotCalled(t, "GetOwned", mock.Anything, mock.Anything)
}

func TestTaskGetAll_Unauthenticated(t *testing.T) {
	// Arrange: no user in context, no fetch must be issued
	gin.SetMode(gin.TestMode)
	r := gin.Default()
	mockTaskRepo := new(MockTaskRepository)
	mockProjectRepo := new(MockProjectRepository)
	taskHandler := handler.NewTaskHandler(mockTaskRepo, mockProjectRepo)
	r.GET("/tasks", taskHandler.GetAll)

	req, _ := http.NewRequest("GET", "/tasks", nil)

	// Act
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	mockTaskRepo.AssertNotCalled(t, "GetOwned", mock.Anything, mock.Anything)
}

func TestTaskDelete_Success(t *testing.T) {
	// Arrange
	userID := uuid.New()
	router, mockTaskRepo, _ := setupTaskTest(userID)

	taskID := uuid.New()
	existing := &model.Task{
		ID:       taskID,
		Title:    "Old task",
		Status:   model.StatusTodo,
		Priority: model.PriorityLow,
		UserID:   userID,
	}
	mockTaskRepo.On("GetByID", mock.Anything, taskID).Return(existing, nil)
	mockTaskRepo.On("Delete", mock.Anything, taskID).Return(nil)

	req, _ := http.NewRequest("DELETE", "/tasks/"+taskID.String(), nil)

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)
	mockTaskRepo.AssertExpectations(t)
}
