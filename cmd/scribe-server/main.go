package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/scribehq/scribe/pkg/scribe/auth"
	"github.com/scribehq/scribe/pkg/scribe/database"
	"github.com/scribehq/scribe/pkg/scribe/importexport"
	"github.com/scribehq/scribe/pkg/scribe/models"
	"github.com/scribehq/scribe/pkg/scribe/posts"
	"github.com/scribehq/scribe/pkg/scribe/search"
	"github.com/scribehq/scribe/pkg/scribe/tags"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gopkg.in/natefinch/lumberjack.v2"

	_ "github.com/scribehq/scribe/api/swagger"
)

// @title Scribe API
// @version 1.0
// @description A minimal blogging service with tagged posts and search.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token. Format: "Bearer {token}"

func main() {
	// Load .env if present; real config still comes from the environment
	_ = godotenv.Load()

	// Route logs through a rotating file when configured
	if logFile := os.Getenv("SCRIBE_LOG_FILE"); logFile != "" {
		log.SetOutput(&lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    50, // megabytes
			MaxBackups: 5,
			MaxAge:     28, // days
		})
	}

	// Get database path from environment or use default
	dbPath := os.Getenv("SCRIBE_DB_PATH")
	if dbPath == "" {
		dbPath = "scribe.db"
	}

	// Connect to database
	if err := database.Connect(dbPath); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := models.AutoMigrate(database.GetDB()); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	// Set up Gin router
	r := gin.Default()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Page routes (home listing, post CRUD, search, signup)
	authHandler := auth.NewHandler(database.GetDB())
	authHandler.RegisterSignupRoutes(r)

	postsHandler := posts.NewHandler(database.GetDB())
	postsHandler.RegisterRoutes(r)

	searchHandler := search.NewHandler(database.GetDB())
	searchHandler.RegisterRoutes(r)

	// API routes
	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status":  "ok",
				"service": "scribe",
			})
		})

		// Auth routes (public)
		authHandler.RegisterRoutes(api.Group("/auth"))

		// Tags listing (public)
		tagsHandler := tags.NewHandler(database.GetDB())
		tagsHandler.RegisterRoutes(api.Group(""))

		// Import/Export routes (protected)
		importExportHandler := importexport.NewHandler(database.GetDB())
		importExportHandler.RegisterRoutes(api.Group("", auth.AuthMiddleware()))
	}

	// Get port from environment or use default
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting Scribe server on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
