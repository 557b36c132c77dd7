package main

import (
	"log"
	"tms-api/internal/database"
	"tms-api/internal/routes"
)

func main() {
	// Init database
	database.InitDB()

	// Setup the routes (public and protected routes)
	ginRoutes := routes.SetupRoutes()

	// Start server
	port := ":8008" // This is customizable based on the environment
	log.Printf("Server starting on port %s", port)
	log.Println("API endpoints:")
	log.Println("  POST   /api/auth/signup")
	log.Println("  POST   /api/auth/login")
	log.Println("  GET    /api/projects")
	log.Println("  GET    /api/projects/:id/tasks")
	log.Println("  POST   /api/grid/project")
	log.Println("  GET    /api/grid/tasks")
	log.Println("  POST   /api/grid/tasks/:id/cell")
	log.Println("  POST   /api/grid/flush")
	log.Println("  GET    /api/grid/status")
	log.Println("  GET    /health")

	if err := ginRoutes.Run(port); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
