// @title           Ktirio Backend API
// @version         1.0.0
// @description     Backend API for AI-assisted virtual home staging. Handles project and folder management, canvas mask editing sessions, Gemini-powered image edits with linear version history, and real-time progress updates via Supabase Realtime.

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

package main

import (
	"log"
	"net/http"
	"net/url"

	"ktirio-backend/docs"
	"ktirio-backend/internal/config"
	"ktirio-backend/internal/database"
	"ktirio-backend/internal/editor"
	"ktirio-backend/internal/gemini"
	"ktirio-backend/internal/handlers"
	"ktirio-backend/internal/middleware"
	"ktirio-backend/internal/services"
	"ktirio-backend/internal/supabase"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Update Swagger docs with dynamic base URL
	if cfg.BaseURL != "" {
		baseURL, err := url.Parse(cfg.BaseURL)
		if err == nil {
			docs.SwaggerInfo.Host = baseURL.Host
			if baseURL.Scheme == "https" {
				docs.SwaggerInfo.Schemes = []string{"https", "http"}
			} else {
				docs.SwaggerInfo.Schemes = []string{"http", "https"}
			}
		}
	}

	// Initialize Gemini client; transient failures are retried with backoff
	geminiClient := gemini.NewRetryClient(
		gemini.NewClient(cfg.GeminiAPIBaseURL, cfg.GeminiAPIKey, cfg.GeminiModel), 3)

	// Initialize Supabase clients
	supabaseClient, err := supabase.NewClient(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize Supabase client: %v", err)
	}

	storageClient, err := supabase.NewStorageClient(cfg.SupabaseURL, cfg.SupabasePublishableKey, cfg.SupabaseStorageBucket)
	if err != nil {
		log.Fatalf("Failed to initialize storage client: %v", err)
	}

	realtimeClient := supabase.NewRealtimeClient(supabaseClient.Supabase)

	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required; set it to your Supabase PostgreSQL connection string")
	}

	dbClient, err := supabase.NewDatabaseClient(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize database client: %v", err)
	}
	defer dbClient.Close()

	// Run migrations
	migrator, err := database.NewMigrator(cfg.DatabaseURL)
	if err != nil {
		log.Printf("Warning: Failed to initialize migrator: %v", err)
	} else {
		defer migrator.Close()
		if err := migrator.Run(); err != nil {
			log.Printf("Warning: Migration failed: %v", err)
		} else {
			log.Println("Migrations completed successfully")
		}
	}

	// Initialize services
	mediaService := services.NewMediaService(dbClient, storageClient, realtimeClient)
	sessionManager := editor.NewManager()

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	projectsHandler := handlers.NewProjectsHandler(dbClient, storageClient, mediaService, sessionManager)
	foldersHandler := handlers.NewFoldersHandler(dbClient)
	editorHandler := handlers.NewEditorHandler(dbClient, mediaService, sessionManager, geminiClient)
	exportHandler := handlers.NewExportHandler(sessionManager)

	// Setup router
	router := gin.Default()

	// Middleware
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check (no auth)
	router.GET("/health", healthHandler.Health)

	// API routes
	api := router.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(cfg))

	// Project routes
	api.POST("/projects", projectsHandler.CreateProject)
	api.GET("/projects", projectsHandler.ListProjects)
	api.GET("/projects/:project_id", projectsHandler.GetProject)
	api.PATCH("/projects/:project_id", projectsHandler.UpdateProject)
	api.DELETE("/projects/:project_id", projectsHandler.DeleteProject)
	api.POST("/projects/:project_id/duplicate", projectsHandler.DuplicateProject)
	api.POST("/projects/:project_id/branch", projectsHandler.BranchProject)

	// Folder routes
	api.POST("/folders", foldersHandler.CreateFolder)
	api.GET("/folders", foldersHandler.ListFolders)
	api.PATCH("/folders/:folder_id", foldersHandler.RenameFolder)
	api.DELETE("/folders/:folder_id", foldersHandler.DeleteFolder)

	// Editor session routes
	api.POST("/projects/:project_id/session", editorHandler.OpenSession)
	api.GET("/projects/:project_id/session", editorHandler.GetState)
	api.DELETE("/projects/:project_id/session", editorHandler.CloseSession)
	api.POST("/projects/:project_id/image", editorHandler.UploadBaseImage)
	api.POST("/projects/:project_id/strokes", editorHandler.Strokes)
	api.GET("/projects/:project_id/mask", editorHandler.GetMask)
	api.DELETE("/projects/:project_id/mask", editorHandler.ClearMask)
	api.POST("/projects/:project_id/version", editorHandler.SelectVersion)
	api.POST("/projects/:project_id/view/wheel", editorHandler.Wheel)
	api.POST("/projects/:project_id/view/pan", editorHandler.Pan)
	api.POST("/projects/:project_id/view/reset", editorHandler.ResetView)
	api.POST("/projects/:project_id/tool", editorHandler.SetTool)
	api.POST("/projects/:project_id/brush", editorHandler.SetBrush)
	api.PUT("/projects/:project_id/prompt", editorHandler.SetPrompt)
	api.POST("/projects/:project_id/references", editorHandler.AddReference)
	api.GET("/projects/:project_id/references", editorHandler.ListReferences)
	api.DELETE("/projects/:project_id/references/:reference_id", editorHandler.RemoveReference)
	api.POST("/projects/:project_id/autocomplete", editorHandler.Autocomplete)
	api.POST("/projects/:project_id/generate", editorHandler.Generate)
	api.DELETE("/projects/:project_id/error", editorHandler.DismissError)
	api.GET("/projects/:project_id/export", exportHandler.Export)

	// Start server
	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := http.ListenAndServe(":"+port, router); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
