// File: app/app.go
package app

import (
	"context"
	"database/sql"
	"go-blog-api/config"
	"go-blog-api/db"
	"go-blog-api/handler"
	"go-blog-api/logger"
	"go-blog-api/repository"
	"go-blog-api/router"
	"go-blog-api/service"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func Run() {
	config.LoadConfig(".")
	logger.Init()
	logger.Log.Info("Logger initialized")
	logger.Log.Info("Configuration loaded successfully")

	database, err := db.Connect()
	if err != nil {
		logger.Log.Fatalf("Error connecting to the database: %v", err)
	}
	defer database.Close()

	if err := db.RunMigrations("file://db/migrations"); err != nil {
		logger.Log.Fatalf("Error running migrations: %v", err)
	}

	redisClient, err := db.ConnectRedis()
	if err != nil {
		logger.Log.Fatalf("Error connecting to Redis: %v", err)
	}
	defer redisClient.Close()

	// A process without a signing secret cannot authenticate anyone, so
	// this is fatal here rather than a per-request 500 later.
	tokens, err := service.NewTokenService(config.AppConfig.JWT)
	if err != nil {
		logger.Log.Fatalf("Error creating token service: %v", err)
	}

	r := buildRouter(database, redisClient, tokens)

	port := config.AppConfig.Server.Port
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		logger.Log.Infof("Server starting on port :%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Warn("Shutdown signal received. Starting graceful shutdown...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Log.Info("Server exited properly")
}

// buildRouter wires all layers together: repositories over the database,
// services over the repositories, handlers over the services.
func buildRouter(database *sql.DB, cache service.ICacheClient, tokens *service.TokenService) http.Handler {
	userRepo := repository.NewUserRepository(database)
	postRepo := repository.NewPostRepository(database)
	categoryRepo := repository.NewCategoryRepository(database)

	authService := service.NewAuthService(userRepo, tokens)
	userService := service.NewUserService(userRepo, authService)
	postService := service.NewPostService(postRepo, userRepo, categoryRepo)
	categoryService := service.NewCategoryService(categoryRepo, cache)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	postHandler := handler.NewPostHandler(postService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	authMiddleware := handler.NewAuthMiddleware(tokens, userRepo)

	return router.NewRouter(authHandler, userHandler, postHandler, categoryHandler, authMiddleware)
}

// TestApp exposes the fully wired router over injected dependencies so
// integration tests can drive it without a running server.
type TestApp struct {
	DB     *sql.DB
	Router http.Handler
}

func NewTestApp(database *sql.DB, cache service.ICacheClient, tokens *service.TokenService) *TestApp {
	return &TestApp{
		DB:     database,
		Router: buildRouter(database, cache, tokens),
	}
}
