package main

import (
	"context"
	"log"
	"os"

	"github.com/rakuszz0/Inventory/cmd"
	"github.com/rakuszz0/Inventory/internal/core/container"
	"github.com/rakuszz0/Inventory/internal/core/logger"
	"github.com/rakuszz0/Inventory/internal/core/routes"
	"github.com/rakuszz0/Inventory/internal/database"
	"github.com/rakuszz0/Inventory/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load .env file, but don't overwrite system environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: No .env file found, falling back to system environment variables.")
	}

	cmd.Execute(ctx)
}

func main() {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	db, err := database.NewPostgresConnection(dbURL)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	defer db.Close()

	log.Println("Connected to the database successfully!")

	zapLogger := logger.NewLogger()
	defer zapLogger.Sync()

	if os.Getenv("AUTO_MIGRATE") == "true" {
		if err := database.RunMigrations(dbURL, "./migrations", zapLogger); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
	}

	appContainer := container.NewAppContainer(db, zapLogger)

	router := gin.Default()
	router.Use(middleware.RecoveryMiddleware())

	routes.RegisterUtilityRoutes(router)
	routes.RegisterPublicRoutes(router, appContainer)
	routes.RegisterProtectedRoutes(router, appContainer)

	appHost := os.Getenv("APP_HOST")
	if appHost == "" {
		appHost = ":8080"
	}

	if err := router.Run(appHost); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
