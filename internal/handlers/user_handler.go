package handlers

import (
	"net/http"
	"tms-api/internal/database"
	"tms-api/internal/models"

	"github.com/gin-gonic/gin"
)

type UserResponse struct {
	ID       string          `json:"id"`
	Email    string          `json:"email"`
	FullName *string         `json:"full_name"`
	Role     models.UserRole `json:"role"`
}

// GetAllUsers returns all user profiles (protected)
// GET /api/users
func GetAllUsers(c *gin.Context) {
	var users []models.UserProfile
	if err := database.GetDB().Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}

	// Map to safe response payload
	resp := make([]UserResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, UserResponse{
			ID:       u.ID,
			Email:    u.Email,
			FullName: u.FullName,
			Role:     u.Role,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"users": resp,
		"count": len(resp),
	})
}
