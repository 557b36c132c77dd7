package handlers

import (
	"net/http"

	"tms-api/internal/database"
	"tms-api/internal/grid"
	"tms-api/internal/models"

	"github.com/gin-gonic/gin"
)

// GetProjectTasks handles GET /api/projects/:id/tasks
// Returns the project's tasks, newest first, with optional grid filters:
// status, priority, department (ids or "all"), from/to (inclusive YYYY-MM-DD
// bounds on assigned_date).
func GetProjectTasks(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}

	projectID := c.Param("id")

	var tasks []models.Task
	err := database.GetDB().
		Where("project_id = ?", projectID).
		Order("created_at desc").
		Find(&tasks).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tasks"})
		return
	}

	filter := grid.Filter{
		Status:       c.Query("status"),
		Priority:     c.Query("priority"),
		DepartmentID: c.Query("department"),
		AssignedFrom: c.Query("from"),
		AssignedTo:   c.Query("to"),
	}
	filtered := grid.FilterTasks(tasks, filter)

	c.JSON(http.StatusOK, gin.H{
		"tasks": filtered,
		"count": len(filtered),
		"total": len(tasks),
	})
}
