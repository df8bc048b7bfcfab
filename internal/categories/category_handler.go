package categories

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	custom_error "github.com/rakuszz0/Inventory/pkg/errors"
	"github.com/rakuszz0/Inventory/pkg/models"
	"github.com/rakuszz0/Inventory/pkg/security"
)

type CategoryHandler struct {
	Repository *CategoryRepository
}

func NewCategoryHandler(r *CategoryRepository) *CategoryHandler {
	return &CategoryHandler{Repository: r}
}

func (h *CategoryHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/categories", security.Authorize("manager"), h.CreateCategory)
	router.GET("/categories", security.Authorize("staff"), h.GetCategories)
	router.GET("/categories/:id/children", security.Authorize("staff"), h.GetChildren)
	router.DELETE("/categories/:id", security.Authorize("admin"), h.DeleteCategory)
}

func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var category models.Category
	if err := c.ShouldBindJSON(&category); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	err := h.Repository.PersistCategory(&category)
	if _, ok := err.(*custom_error.UniqueViolationError); ok {
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "Category with same name already registered"})
		return
	} else if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Could not create category"})
		return
	}

	c.JSON(http.StatusCreated, category)
}

func (h *CategoryHandler) GetCategories(c *gin.Context) {
	result, err := h.Repository.GetCategories()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Could not list categories"})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *CategoryHandler) GetChildren(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID"})
		return
	}

	result, err := h.Repository.GetChildren(id)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Could not list child categories"})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID"})
		return
	}

	if err := h.Repository.DeleteCategory(id); err != nil {
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "Could not delete category", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}
