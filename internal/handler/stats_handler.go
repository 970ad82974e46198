package handler

import (
	"net/http"
	"time"

	"taskdeck/internal/middleware"
	"taskdeck/internal/repository"
	"taskdeck/internal/stats"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type StatsHandler struct {
	taskRepo repository.TaskRepositoryInterface
}

func NewStatsHandler(taskRepo repository.TaskRepositoryInterface) *StatsHandler {
	return &StatsHandler{taskRepo: taskRepo}
}

// Daily returns today's aggregate task stats for the authenticated user. The numbers
// are recomputed from the full task list on every call.
func (h *StatsHandler) Daily(c *gin.Context) {
	userID, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	ownerID, ok := userID.(uuid.UUID)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user ID format"})
		return
	}

	tasks, err := h.taskRepo.GetOwned(c.Request.Context(), ownerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tasks"})
		return
	}

	c.JSON(http.StatusOK, stats.ComputeDaily(tasks, time.Now()))
}
