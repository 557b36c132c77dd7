package routes

import (
	"tms-api/internal/database"
	"tms-api/internal/grid"
	"tms-api/internal/handlers"
	"tms-api/internal/middleware"
	"tms-api/internal/realtime"
	"tms-api/internal/store"

	"github.com/gin-gonic/gin"
)

func SetupRoutes() *gin.Engine {
	// Create a new GIN Router
	ginRouter := gin.Default()

	// CORS middleware (for frontend integration)
	ginRouter.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204) // This depends on the implementation of the frontend
			return
		}

		c.Next()
	})

	// Health check endpoint
	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Server TMS API is running in Health Check Endpoint",
		})
	})

	// Grid wiring: one hub for push events, one session manager over the task store
	db := database.GetDB()
	hub := realtime.NewHub()
	taskStore := store.NewTaskStore(db)
	resolver := store.NewNameResolver(db)
	manager := grid.NewManager(taskStore, grid.ManagerOptions{
		Emit: hub.BroadcastEvent,
	})
	gridHandler := handlers.NewGridHandler(manager, resolver)

	// Public routes (no authentication required)
	api := ginRouter.Group("/api")
	{
		api.POST("/auth/signup", handlers.Signup)
		api.POST("/auth/login", handlers.Login)
	}

	// Protected routes (authentication required)
	protectedRoutes := api.Group("")
	protectedRoutes.Use(middleware.JWTAuthMiddleware())
	{
		// Session user
		protectedRoutes.GET("/auth/me", handlers.Me)
		protectedRoutes.GET("/users", handlers.GetAllUsers)

		// Project endpoints
		protectedRoutes.GET("/projects", handlers.GetProjects)
		protectedRoutes.POST("/projects", handlers.CreateProject)
		protectedRoutes.PUT("/projects/:id", handlers.UpdateProject)
		protectedRoutes.DELETE("/projects/:id", handlers.DeleteProject)
		protectedRoutes.GET("/projects/:id/tasks", handlers.GetProjectTasks)
		protectedRoutes.GET("/projects/:id/stakeholders", handlers.GetProjectStakeholders)
		protectedRoutes.POST("/projects/:id/stakeholders", handlers.CreateStakeholder)

		// Department endpoints
		protectedRoutes.GET("/departments", handlers.GetDepartments)
		protectedRoutes.POST("/departments", handlers.CreateDepartment)
		protectedRoutes.PUT("/departments/:id", handlers.UpdateDepartment)
		protectedRoutes.DELETE("/departments/:id", handlers.DeleteDepartment)

		// Team member endpoints
		protectedRoutes.GET("/team-members", handlers.GetTeamMembers)
		protectedRoutes.POST("/team-members", handlers.CreateTeamMember)
		protectedRoutes.PUT("/team-members/:id", handlers.UpdateTeamMember)
		protectedRoutes.DELETE("/team-members/:id", handlers.DeleteTeamMember)

		// Stakeholder endpoints
		protectedRoutes.PUT("/stakeholders/:id", handlers.UpdateStakeholder)
		protectedRoutes.DELETE("/stakeholders/:id", handlers.DeleteStakeholder)

		// Task grid endpoints (auto-saving)
		protectedRoutes.POST("/grid/project", gridHandler.SelectProject)
		protectedRoutes.GET("/grid/tasks", gridHandler.GetRows)
		protectedRoutes.POST("/grid/tasks", gridHandler.AddTask)
		protectedRoutes.POST("/grid/tasks/:id/cell", gridHandler.EditCell)
		protectedRoutes.DELETE("/grid/tasks/:id", gridHandler.DeleteTask)
		protectedRoutes.POST("/grid/flush", gridHandler.Flush)
		protectedRoutes.GET("/grid/status", gridHandler.GetStatus)
		protectedRoutes.GET("/grid/team-members", gridHandler.GetTeamMemberSuggestions)

		// WebSocket endpoint for save-cycle and task events
		protectedRoutes.GET("/ws", handlers.WebSocketHandler(hub))
	}

	return ginRouter
}
