package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mukbang-backend/internal/config"
	"mukbang-backend/internal/database"
	"mukbang-backend/internal/handlers"
	"mukbang-backend/internal/middleware"
	"mukbang-backend/internal/repository"
	"mukbang-backend/internal/router"
	"mukbang-backend/internal/services"
)

func main() {
	log.Println("🚀 Starting Mukbang Backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Initialize PostgreSQL Connection Pool ────
	pool, err := database.NewPostgresPool(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("✗ PostgreSQL connection failed: %v", err)
	}
	defer pool.Close()
	log.Println("✓ PostgreSQL connected")

	// ──── Step 3: Initialize Redis ────
	redisClient, err := database.NewRedisClient(cfg.RedisURL)
	if err != nil {
		log.Fatalf("✗ Redis connection failed: %v", err)
	}
	defer redisClient.Close()
	log.Println("✓ Redis connected")

	// ──── Step 4: Run Database Migrations ────
	if err := database.RunMigrations(pool, "migrations"); err != nil {
		log.Fatalf("✗ Database migration failed: %v", err)
	}
	log.Println("✓ Database migrations applied")

	// ──── Initialize Repositories ────
	userRepo := repository.NewUserRepo(pool)
	catRepo := repository.NewCatRepo(pool)
	catalogRepo := repository.NewCatalogRepo(pool)
	templateRepo := repository.NewTemplateRepo(pool)
	historyRepo := repository.NewHistoryRepo(pool)

	// ──── Initialize LLM Clients ────
	llmTimeout := time.Duration(cfg.LLMTimeoutSeconds) * time.Second
	deepseekClient := services.NewChatClient(cfg.DeepSeekBaseURL, cfg.DeepSeekAPIKey, "deepseek-chat", llmTimeout)
	geminiClient := services.NewChatClient(cfg.GeminiBaseURL, cfg.GeminiAPIKey, "gemini-2.5-pro", llmTimeout)

	imageGenService, err := services.NewImageGenService(
		context.Background(),
		cfg.GoogleImageAPIKey,
		time.Duration(cfg.ImageGenTimeoutSeconds)*time.Second,
	)
	if err != nil {
		log.Fatalf("✗ Image generation client initialization failed: %v", err)
	}
	defer imageGenService.Close()
	log.Println("✓ LLM clients initialized")

	// ──── Initialize Services ────
	jwtAuth := middleware.NewJWTAuth(cfg.JWTSecret)
	adminGuard := middleware.NewAdminGuard(userRepo)
	authService := services.NewAuthService(userRepo, redisClient, jwtAuth)
	usageService := services.NewUsageService(userRepo)
	generatorService := services.NewGeneratorService(deepseekClient, templateRepo, historyRepo, catalogRepo, catRepo)
	actionService := services.NewActionService(geminiClient)
	visionService := services.NewVisionService(geminiClient)

	// ──── Initialize Handlers ────
	authHandler := handlers.NewAuthHandler(authService)
	generateHandler := handlers.NewGenerateHandler(userRepo, catRepo, catalogRepo, usageService, generatorService)
	videoPromptHandler := handlers.NewVideoPromptHandler(userRepo, historyRepo)
	actionHandler := handlers.NewActionHandler(actionService)
	imageHandler := handlers.NewImageHandler(visionService, imageGenService)
	historyHandler := handlers.NewHistoryHandler(historyRepo)
	userHandler := handlers.NewUserHandler(userRepo, usageService)
	catHandler := handlers.NewCatHandler(catRepo)
	catalogHandler := handlers.NewCatalogHandler(catalogRepo)
	adminHandler := handlers.NewAdminHandler(catalogRepo, templateRepo, userRepo, historyRepo)

	// ──── Start HTTP Server ────
	r := router.New(
		jwtAuth,
		adminGuard,
		authHandler,
		generateHandler,
		videoPromptHandler,
		actionHandler,
		imageHandler,
		historyHandler,
		userHandler,
		catHandler,
		catalogHandler,
		adminHandler,
		cfg.FrontendURL,
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 150 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ Mukbang Backend ready on http://localhost:%s", cfg.Port)
	log.Printf("  API: http://localhost:%s/api", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
