package main

import (
	"context"
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"

	"github.com/hackhub/hackhub/internal/db"
	"github.com/hackhub/hackhub/internal/handlers"
	"github.com/hackhub/hackhub/internal/logging"
	"github.com/hackhub/hackhub/internal/middleware"
	"github.com/hackhub/hackhub/internal/services"
	"github.com/hackhub/hackhub/internal/storage"
	"github.com/hackhub/hackhub/internal/store"
)

func main() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading it, using environment variables")
	}

	logging.InitLogger()

	// Initialize Fiber
	app := fiber.New()

	// Middleware
	app.Use(logger.New())
	app.Use(cors.New())

	// Get MongoDB URI from environment
	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017/hackhub" // Default fallback
	}

	// Connect to MongoDB and MinIO
	mongoDB := db.ConnectMongoDB(mongoURI, "hackhub")
	minioClient := storage.InitMinio()

	st := store.NewMongoStore(mongoDB)
	blacklist := services.NewTokenBlacklist()
	authService := services.NewAuthService(st, blacklist)
	projectService := services.NewProjectService(st)
	attachmentService := services.NewAttachmentService(st, minioClient, storage.AttachmentBucket)

	ctx := context.Background()
	if err := projectService.EnsureSeedData(ctx); err != nil {
		log.Fatalf("Failed to seed projects: %v", err)
	}
	if err := authService.EnsureAdmin(ctx, "Admin", os.Getenv("ADMIN_EMAIL"), os.Getenv("ADMIN_PASSWORD")); err != nil {
		log.Fatalf("Failed to create bootstrap admin: %v", err)
	}

	authHandler := handlers.NewAuthHandler(authService)
	projectHandler := handlers.NewProjectHandler(projectService, attachmentService)
	adminHandler := handlers.NewAdminHandler(st, projectService, attachmentService)

	// Auth Routes
	auth := app.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/logout", middleware.Auth(blacklist), authHandler.Logout)
	auth.Get("/me", middleware.Auth(blacklist), authHandler.Me)

	// Project Routes
	projects := app.Group("/projects", middleware.Auth(blacklist))
	projects.Get("/", projectHandler.List)
	projects.Get("/:id", projectHandler.Get)
	projects.Post("/:id/apply", projectHandler.Apply)
	projects.Post("/:id/submissions", projectHandler.Submit)
	projects.Post("/:id/attachments", projectHandler.UploadAttachment)

	// Admin Routes
	admin := app.Group("/admin", middleware.Auth(blacklist), middleware.AdminOnly())
	admin.Get("/users", adminHandler.ListUsers)
	admin.Get("/users/:userid", adminHandler.GetUser)
	admin.Get("/overview", adminHandler.Overview)
	admin.Post("/projects", adminHandler.CreateProject)
	admin.Post("/projects/:id/assign", adminHandler.Assign)
	admin.Post("/projects/:id/close", adminHandler.Close)
	admin.Post("/projects/:id/review", adminHandler.Review)
	admin.Get("/projects/:id/attachments/:user_id", adminHandler.AttachmentURL)

	// Get port from environment
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080" // Default port
	}

	// Start server
	log.Fatal(app.Listen(":" + port))
}
