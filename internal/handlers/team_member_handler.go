package handlers

import (
	"errors"
	"net/http"

	"tms-api/internal/database"
	"tms-api/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateTeamMemberRequest represents the request payload for creating a team member
type CreateTeamMemberRequest struct {
	DepartmentID string  `json:"department_id" binding:"required"`
	Name         string  `json:"name" binding:"required"`
	Email        string  `json:"email" binding:"required,email"`
	Role         *string `json:"role"`
	Designation  *string `json:"designation"`
}

// UpdateTeamMemberRequest represents the request payload for updating a team member
type UpdateTeamMemberRequest struct {
	DepartmentID *string `json:"department_id"`
	Name         *string `json:"name"`
	Email        *string `json:"email"`
	Role         *string `json:"role"`
	Designation  *string `json:"designation"`
}

// GetTeamMembers handles GET /api/team-members
// Optional query param: department to filter by department id.
func GetTeamMembers(c *gin.Context) {
	query := database.GetDB().Model(&models.TeamMember{}).Order("name")
	if departmentID := c.Query("department"); departmentID != "" {
		query = query.Where("department_id = ?", departmentID)
	}

	var members []models.TeamMember
	if err := query.Find(&members).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch team members"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"team_members": members,
		"count":        len(members),
	})
}

// CreateTeamMember handles POST /api/team-members
func CreateTeamMember(c *gin.Context) {
	var req CreateTeamMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// The parent department must exist
	var department models.Department
	if err := database.GetDB().Where("id = ?", req.DepartmentID).First(&department).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid department_id: department not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate department_id"})
		}
		return
	}

	member := models.TeamMember{
		ID:           uuid.NewString(),
		DepartmentID: req.DepartmentID,
		Name:         req.Name,
		Email:        req.Email,
		Role:         req.Role,
		Designation:  req.Designation,
	}

	if err := database.GetDB().Create(&member).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create team member"})
		return
	}

	c.JSON(http.StatusCreated, member)
}

// UpdateTeamMember handles PUT /api/team-members/:id
func UpdateTeamMember(c *gin.Context) {
	memberID := c.Param("id")

	var member models.TeamMember
	if err := database.GetDB().Where("id = ?", memberID).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Team member not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch team member"})
		}
		return
	}

	var req UpdateTeamMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.DepartmentID != nil {
		member.DepartmentID = *req.DepartmentID
	}
	if req.Name != nil {
		member.Name = *req.Name
	}
	if req.Email != nil {
		member.Email = *req.Email
	}
	if req.Role != nil {
		member.Role = req.Role
	}
	if req.Designation != nil {
		member.Designation = req.Designation
	}

	if err := database.GetDB().Save(&member).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update team member"})
		return
	}

	c.JSON(http.StatusOK, member)
}

// DeleteTeamMember handles DELETE /api/team-members/:id
func DeleteTeamMember(c *gin.Context) {
	memberID := c.Param("id")

	var member models.TeamMember
	if err := database.GetDB().Where("id = ?", memberID).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Team member not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch team member"})
		}
		return
	}

	if err := database.GetDB().Delete(&member).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete team member"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Team member deleted successfully",
		"id":      memberID,
	})
}
