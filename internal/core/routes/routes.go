package routes

import (
	"log"
	"net/http"
	"os"

	"github.com/rakuszz0/Inventory/internal/core/container"
	"github.com/rakuszz0/Inventory/internal/middleware"
	"github.com/rakuszz0/Inventory/pkg/security"

	"github.com/gin-gonic/gin"
)

func RegisterPublicRoutes(router *gin.Engine, container *container.Container) {
	container.LoginHandler.RegisterRoutes(router)
}

func RegisterProtectedRoutes(router *gin.Engine, container *container.Container) {
	protectedRoutes := router.Group("")
	protectedRoutes.Use(security.JWTMiddleware())

	container.ItemHandler.RegisterRoutes(protectedRoutes)
	container.LedgerHandler.RegisterRoutes(protectedRoutes)
	container.AlertHandler.RegisterRoutes(protectedRoutes)
	container.WarehouseHandler.RegisterRoutes(protectedRoutes)
	container.CategoryHandler.RegisterRoutes(protectedRoutes)
	container.UserHandler.RegisterRoutes(protectedRoutes)

	protectedRoutes.GET("/audit/:resourceType/:id", security.Authorize("manager"), func(c *gin.Context) {
		history, err := container.AuditLog.ResourceHistory(c.Param("id"), c.Param("resourceType"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch audit history", "details": err.Error()})
			return
		}
		c.JSON(http.StatusOK, history)
	})
}

func RegisterUtilityRoutes(router *gin.Engine) {
	router.GET("/health", middleware.HealthCheckMiddleware())

	openapiFilePath := "./docs/index.html"
	if _, err := os.Stat(openapiFilePath); err == nil {
		router.GET("/openapi.html", func(c *gin.Context) {
			c.File(openapiFilePath)
		})
	} else {
		log.Printf("Warning: %s not found. Route /openapi.html will not be registered.\n", openapiFilePath)
	}
}
