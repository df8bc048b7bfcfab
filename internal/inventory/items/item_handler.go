package items

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rakuszz0/Inventory/internal/repository"
	"github.com/rakuszz0/Inventory/pkg/auditlog"
	custom_error "github.com/rakuszz0/Inventory/pkg/errors"
	"github.com/rakuszz0/Inventory/pkg/security"
)

type ItemHandler struct {
	Repository     *repository.Repository
	ItemRepository *ItemRepository
	Service        *ItemService
	AuditLog       *auditlog.Auditlog
}

func NewItemHandler(r *repository.Repository, ir *ItemRepository, s *ItemService, a *auditlog.Auditlog) *ItemHandler {
	return &ItemHandler{
		Repository:     r,
		ItemRepository: ir,
		Service:        s,
		AuditLog:       a,
	}
}

func (h *ItemHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/items", security.Authorize("staff"), h.CreateItem)
	router.GET("/items", security.Authorize("staff"), h.GetItems)
	router.GET("/items/summary", security.Authorize("staff"), h.GetSummary)
	router.GET("/items/low-stock", security.Authorize("staff"), h.GetLowStock)
	router.GET("/items/out-of-stock", security.Authorize("staff"), h.GetOutOfStock)
	router.GET("/items/sku/:sku", security.Authorize("staff"), h.GetItemBySKU)
	router.GET("/items/barcode/:barcode", security.Authorize("staff"), h.GetItemByBarcode)
	router.GET("/items/:id", security.Authorize("staff"), h.GetItem)
	router.PATCH("/items/:id", security.Authorize("manager"), h.UpdateItem)
	router.DELETE("/items/:id", security.Authorize("admin"), h.DeactivateItem)
}

func (h *ItemHandler) CreateItem(c *gin.Context) {
	var req ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	actorID, err := security.ActorID(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing actor identity"})
		return
	}

	item, err := h.Service.CreateItem(req, actorID)
	if err != nil {
		switch err.(type) {
		case *custom_error.UniqueViolationError:
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "Item with same SKU or barcode already registered"})
		default:
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to create item", "details": err.Error()})
		}
		return
	}

	go h.AuditLog.Log(
		"create",
		map[string]interface{}{
			"sku":           item.SKU,
			"initial_stock": req.InitialStock,
			"warehouse_id":  item.WarehouseID,
			"msg":           "Register inventory item",
		},
		item,
	)

	c.JSON(http.StatusCreated, item)
}

func (h *ItemHandler) GetItems(c *gin.Context) {
	var query ListItemsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters", "details": err.Error()})
		return
	}

	conditions := repository.NewQueryBuilder()
	if query.WarehouseID != nil {
		conditions.AddCondition("warehouse_id", *query.WarehouseID)
	}
	if query.CategoryID != nil {
		conditions.AddCondition("category_id", *query.CategoryID)
	}
	if !query.IncludeAll {
		conditions.AddCondition("is_active", true)
	}
	conditions.AddRange("stock", query.MinStock, query.MaxStock)
	conditions.AddSearch(query.Search, "name", "sku", "barcode")

	result, total, err := h.ItemRepository.GetItemsBy(conditions, query.Limit, query.Offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch inventory items"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": result, "total": total})
}

func (h *ItemHandler) GetItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}

	item, err := h.ItemRepository.GetItem(id)
	if err != nil {
		h.respondItemError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *ItemHandler) GetItemBySKU(c *gin.Context) {
	item, err := h.ItemRepository.GetItemBySKU(c.Param("sku"))
	if err != nil {
		h.respondItemError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *ItemHandler) GetItemByBarcode(c *gin.Context) {
	item, err := h.ItemRepository.GetItemByBarcode(c.Param("barcode"))
	if err != nil {
		h.respondItemError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *ItemHandler) UpdateItem(c *gin.Context) {
	var req PatchItemRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid URI parameters", "details": err.Error()})
		return
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	item, err := h.ItemRepository.UpdateItem(&req)
	if err != nil {
		switch err.(type) {
		case *custom_error.ItemNotFoundError:
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		case *custom_error.UniqueViolationError:
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "Item with same barcode already registered"})
		default:
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to update item", "details": err.Error()})
		}
		return
	}

	go h.AuditLog.Log("update", map[string]interface{}{"msg": "Update inventory item fields"}, item)

	c.JSON(http.StatusOK, item)
}

func (h *ItemHandler) DeactivateItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}

	if err := h.ItemRepository.DeactivateItem(id); err != nil {
		h.respondItemError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item deactivated successfully"})
}

func (h *ItemHandler) GetLowStock(c *gin.Context) {
	warehouseID, ok := optionalWarehouseID(c)
	if !ok {
		return
	}

	result, err := h.ItemRepository.GetLowStockItems(warehouseID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch low stock items"})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *ItemHandler) GetOutOfStock(c *gin.Context) {
	warehouseID, ok := optionalWarehouseID(c)
	if !ok {
		return
	}

	result, err := h.ItemRepository.GetOutOfStockItems(warehouseID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch out of stock items"})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *ItemHandler) GetSummary(c *gin.Context) {
	warehouseID, ok := optionalWarehouseID(c)
	if !ok {
		return
	}

	summary, err := h.ItemRepository.GetInventorySummary(warehouseID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build inventory summary"})
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *ItemHandler) respondItemError(c *gin.Context, err error) {
	switch err.(type) {
	case *custom_error.ItemNotFoundError:
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Item not found"})
	default:
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch item", "details": err.Error()})
	}
}

func optionalWarehouseID(c *gin.Context) (*uuid.UUID, bool) {
	raw := c.Query("warehouse_id")
	if raw == "" {
		return nil, true
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid warehouse ID"})
		return nil, false
	}
	return &id, true
}
