package handlers

import (
	"errors"
	"net/http"
	"strings"

	"tms-api/internal/auth"
	"tms-api/internal/database"
	"tms-api/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SignupRequest represents the signup request payload
type SignupRequest struct {
	Email    string          `json:"email" binding:"required,email"`
	Password string          `json:"password" binding:"required,min=8"`
	FullName string          `json:"full_name"`
	Role     models.UserRole `json:"role"`
}

// LoginRequest represents the login request payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse represents a successful signup/login response
type AuthResponse struct {
	Token   string          `json:"token"`
	UserID  string          `json:"user_id"`
	Email   string          `json:"email"`
	Role    models.UserRole `json:"role"`
	Message string          `json:"message"`
}

// Signup handles POST /api/auth/signup
// Creates a user profile with a hashed password and returns a token.
func Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request. Email and a password of at least 8 characters are required.",
		})
		return
	}

	role := req.Role
	if role == "" {
		role = models.RoleProjectManager
	}
	if role != models.RoleAdmin && role != models.RoleProjectManager {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var existing models.UserProfile
	err := database.GetDB().Where("email = ?", email).First(&existing).Error
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Email is already registered"})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check existing users"})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	user := models.UserProfile{
		ID:           uuid.NewString(),
		Email:        email,
		Role:         role,
		PasswordHash: hash,
	}
	if req.FullName != "" {
		user.FullName = &req.FullName
	}

	if err := database.GetDB().Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	token, err := auth.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusCreated, AuthResponse{
		Token:   token,
		UserID:  user.ID,
		Email:   user.Email,
		Role:    user.Role,
		Message: "Signup successful",
	})
}

// Login handles POST /api/auth/login
// Verifies credentials against the stored bcrypt hash.
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request. Email and password are required.",
		})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.UserProfile
	if err := database.GetDB().Where("email = ?", email).First(&user).Error; err != nil {
		// Same response for unknown email and bad password
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	token, err := auth.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, AuthResponse{
		Token:   token,
		UserID:  user.ID,
		Email:   user.Email,
		Role:    user.Role,
		Message: "Login successful",
	})
}

// Me handles GET /api/auth/me
// Returns the authenticated user's profile.
func Me(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}

	var user models.UserProfile
	if err := database.GetDB().Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user"})
		}
		return
	}

	c.JSON(http.StatusOK, user)
}
