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

// CreateStakeholderRequest represents the request payload for creating a stakeholder
type CreateStakeholderRequest struct {
	Name        string  `json:"name" binding:"required"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
	Designation *string `json:"designation"`
}

// UpdateStakeholderRequest represents the request payload for updating a stakeholder
type UpdateStakeholderRequest struct {
	Name        *string `json:"name"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
	Designation *string `json:"designation"`
}

// GetProjectStakeholders handles GET /api/projects/:id/stakeholders
func GetProjectStakeholders(c *gin.Context) {
	projectID := c.Param("id")

	var stakeholders []models.Stakeholder
	err := database.GetDB().
		Where("project_id = ?", projectID).
		Order("name").
		Find(&stakeholders).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stakeholders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stakeholders": stakeholders,
		"count":        len(stakeholders),
	})
}

// CreateStakeholder handles POST /api/projects/:id/stakeholders
func CreateStakeholder(c *gin.Context) {
	projectID := c.Param("id")

	// The parent project must exist
	var project models.Project
	if err := database.GetDB().Where("id = ?", projectID).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch project"})
		}
		return
	}

	var req CreateStakeholderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	stakeholder := models.Stakeholder{
		ID:          uuid.NewString(),
		ProjectID:   projectID,
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Designation: req.Designation,
	}

	if err := database.GetDB().Create(&stakeholder).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create stakeholder"})
		return
	}

	c.JSON(http.StatusCreated, stakeholder)
}

// UpdateStakeholder handles PUT /api/stakeholders/:id
func UpdateStakeholder(c *gin.Context) {
	stakeholderID := c.Param("id")

	var stakeholder models.Stakeholder
	if err := database.GetDB().Where("id = ?", stakeholderID).First(&stakeholder).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Stakeholder not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stakeholder"})
		}
		return
	}

	var req UpdateStakeholderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Name != nil {
		stakeholder.Name = *req.Name
	}
	if req.Email != nil {
		stakeholder.Email = req.Email
	}
	if req.Phone != nil {
		stakeholder.Phone = req.Phone
	}
	if req.Designation != nil {
		stakeholder.Designation = req.Designation
	}

	if err := database.GetDB().Save(&stakeholder).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update stakeholder"})
		return
	}

	c.JSON(http.StatusOK, stakeholder)
}

// DeleteStakeholder handles DELETE /api/stakeholders/:id
func DeleteStakeholder(c *gin.Context) {
	stakeholderID := c.Param("id")

	var stakeholder models.Stakeholder
	if err := database.GetDB().Where("id = ?", stakeholderID).First(&stakeholder).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Stakeholder not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stakeholder"})
		}
		return
	}

	if err := database.GetDB().Delete(&stakeholder).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete stakeholder"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Stakeholder deleted successfully",
		"id":      stakeholderID,
	})
}
