package handler

import (
	"net/http"
	"time"

	"taskdeck/internal/middleware"
	"taskdeck/internal/model"
	"taskdeck/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ChecklistHandler struct {
	checklistRepo repository.ChecklistRepositoryInterface
	taskRepo      repository.TaskRepositoryInterface
}

func NewChecklistHandler(checklistRepo repository.ChecklistRepositoryInterface, taskRepo repository.TaskRepositoryInterface) *ChecklistHandler {
	return &ChecklistHandler{
		checklistRepo: checklistRepo,
		taskRepo:      taskRepo,
	}
}

type ChecklistItemRequest struct {
	Text        string `json:"text" binding:"required"`
	IsCompleted bool   `json:"is_completed"`
}

type ChecklistItemResponse struct {
	ID          string `json:"id"`
	TaskID      string `json:"task_id"`
	Text        string `json:"text"`
	IsCompleted bool   `json:"is_completed"`
	CreatedAt   string `json:"created_at"`
}

func toChecklistItemResponse(item *model.ChecklistItem) ChecklistItemResponse {
	return ChecklistItemResponse{
		ID:          item.ID.String(),
		TaskID:      item.TaskID.String(),
		Text:        item.Text,
		IsCompleted: item.IsCompleted,
		CreatedAt:   item.CreatedAt.Format(time.RFC3339),
	}
}

// ownedTask resolves the parent task and enforces ownership. Checklist items have no
// user_id of their own; access always goes through the task.
func (h *ChecklistHandler) ownedTask(c *gin.Context, taskID uuid.UUID) (*model.Task, bool) {
	userID, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return nil, false
	}

	ownerID, ok := userID.(uuid.UUID)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user ID format"})
		return nil, false
	}

	task, err := h.taskRepo.GetByID(c.Request.Context(), taskID)
	if err != nil {
		if err == repository.ErrTaskNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve task"})
		return nil, false
	}

	if task.UserID != ownerID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return nil, false
	}

	return task, true
}

// Create adds a checklist item to one of the authenticated user's tasks
func (h *ChecklistHandler) Create(c *gin.Context) {
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	var req ChecklistItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if _, ok := h.ownedTask(c, taskID); !ok {
		return
	}

	item := &model.ChecklistItem{
		ID:          uuid.New(),
		TaskID:      taskID,
		Text:        req.Text,
		IsCompleted: req.IsCompleted,
	}

	if err := h.checklistRepo.Create(c.Request.Context(), item); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create checklist item"})
		return
	}

	c.JSON(http.StatusCreated, toChecklistItemResponse(item))
}

// GetByTaskID lists a task's checklist items in creation order
func (h *ChecklistHandler) GetByTaskID(c *gin.Context) {
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	if _, ok := h.ownedTask(c, taskID); !ok {
		return
	}

	items, err := h.checklistRepo.GetByTaskID(c.Request.Context(), taskID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve checklist items"})
		return
	}

	response := make([]ChecklistItemResponse, len(items))
	for i := range items {
		response[i] = toChecklistItemResponse(&items[i])
	}

	c.JSON(http.StatusOK, response)
}

// Update edits a checklist item's text or toggles its completion
func (h *ChecklistHandler) Update(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid checklist item ID format"})
		return
	}

	var req ChecklistItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	item, err := h.checklistRepo.GetByID(c.Request.Context(), itemID)
	if err != nil {
		if err == repository.ErrChecklistItemNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Checklist item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve checklist item"})
		return
	}

	if _, ok := h.ownedTask(c, item.TaskID); !ok {
		return
	}

	item.Text = req.Text
	item.IsCompleted = req.IsCompleted

	if err := h.checklistRepo.Update(c.Request.Context(), item); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update checklist item"})
		return
	}

	c.JSON(http.StatusOK, toChecklistItemResponse(item))
}

// Delete removes a checklist item
func (h *ChecklistHandler) Delete(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid checklist item ID format"})
		return
	}

	item, err := h.checklistRepo.GetByID(c.Request.Context(), itemID)
	if err != nil {
		if err == repository.ErrChecklistItemNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Checklist item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve checklist item"})
		return
	}

	if _, ok := h.ownedTask(c, item.TaskID); !ok {
		return
	}

	if err := h.checklistRepo.Delete(c.Request.Context(), itemID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete checklist item"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Checklist item deleted"})
}
