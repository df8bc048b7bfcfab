package warehouses

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	custom_error "github.com/rakuszz0/Inventory/pkg/errors"
	"github.com/rakuszz0/Inventory/pkg/models"
	"github.com/rakuszz0/Inventory/pkg/security"
)

type WarehouseHandler struct {
	Repository *WarehouseRepository
}

func NewWarehouseHandler(r *WarehouseRepository) *WarehouseHandler {
	return &WarehouseHandler{Repository: r}
}

func (h *WarehouseHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/warehouses", security.Authorize("admin"), h.CreateWarehouse)
	router.GET("/warehouses", security.Authorize("staff"), h.GetWarehouses)
	router.GET("/warehouses/:id", security.Authorize("staff"), h.GetWarehouse)
	router.DELETE("/warehouses/:id", security.Authorize("admin"), h.DeactivateWarehouse)
}

func (h *WarehouseHandler) CreateWarehouse(c *gin.Context) {
	var warehouse models.Warehouse
	if err := c.ShouldBindJSON(&warehouse); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	err := h.Repository.PersistWarehouse(&warehouse)
	if _, ok := err.(*custom_error.UniqueViolationError); ok {
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "Warehouse code already registered", "details": err.Error()})
		return
	} else if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Could not create warehouse"})
		return
	}

	c.JSON(http.StatusCreated, warehouse)
}

func (h *WarehouseHandler) GetWarehouses(c *gin.Context) {
	result, err := h.Repository.GetWarehouses()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Could not list warehouses", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *WarehouseHandler) GetWarehouse(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid warehouse ID"})
		return
	}

	warehouse, err := h.Repository.GetWarehouse(id)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch warehouse"})
		return
	}
	if warehouse == nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Warehouse not found"})
		return
	}

	c.JSON(http.StatusOK, warehouse)
}

func (h *WarehouseHandler) DeactivateWarehouse(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid warehouse ID"})
		return
	}

	if err := h.Repository.DeactivateWarehouse(id); err != nil {
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "Could not deactivate warehouse", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Warehouse deactivated successfully"})
}
