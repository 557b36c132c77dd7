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

// DepartmentRequest is shared by create and update payloads
type DepartmentRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
}

// GetDepartments handles GET /api/departments
// Departments sort by name, the way pickers present them.
func GetDepartments(c *gin.Context) {
	var departments []models.Department
	if err := database.GetDB().Order("name").Find(&departments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch departments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"departments": departments,
		"count":       len(departments),
	})
}

// CreateDepartment handles POST /api/departments
func CreateDepartment(c *gin.Context) {
	var req DepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	department := models.Department{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
	}

	if err := database.GetDB().Create(&department).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create department"})
		return
	}

	c.JSON(http.StatusCreated, department)
}

// UpdateDepartment handles PUT /api/departments/:id
func UpdateDepartment(c *gin.Context) {
	departmentID := c.Param("id")

	var department models.Department
	if err := database.GetDB().Where("id = ?", departmentID).First(&department).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Department not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch department"})
		}
		return
	}

	var req DepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	department.Name = req.Name
	if req.Description != nil {
		department.Description = req.Description
	}

	if err := database.GetDB().Save(&department).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update department"})
		return
	}

	c.JSON(http.StatusOK, department)
}

// DeleteDepartment handles DELETE /api/departments/:id
func DeleteDepartment(c *gin.Context) {
	departmentID := c.Param("id")

	var department models.Department
	if err := database.GetDB().Where("id = ?", departmentID).First(&department).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Department not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch department"})
		}
		return
	}

	if err := database.GetDB().Delete(&department).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete department"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Department deleted successfully",
		"id":      departmentID,
	})
}
