package ledger

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	custom_error "github.com/rakuszz0/Inventory/pkg/errors"
	"github.com/rakuszz0/Inventory/pkg/metadata"
	"github.com/rakuszz0/Inventory/pkg/models"
	"github.com/rakuszz0/Inventory/pkg/security"
)

type LedgerHandler struct {
	Service          *LedgerService
	LedgerRepository *LedgerRepository
}

func NewLedgerHandler(s *LedgerService, lr *LedgerRepository) *LedgerHandler {
	return &LedgerHandler{
		Service:          s,
		LedgerRepository: lr,
	}
}

func (h *LedgerHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/transactions/stock-in", security.Authorize("staff"), h.StockIn)
	router.POST("/transactions/stock-out", security.Authorize("staff"), h.StockOut)
	router.POST("/transactions/adjustment", security.Authorize("manager"), h.Adjustment)
	router.POST("/transactions/transfer", security.Authorize("manager"), h.Transfer)
	router.GET("/transactions", security.Authorize("staff"), h.GetEntries)
	router.GET("/transactions/sales/today", security.Authorize("staff"), h.GetTodaySales)
	router.GET("/transactions/sales/daily", security.Authorize("staff"), h.GetDailySales)
	router.GET("/transactions/movement/:itemId", security.Authorize("staff"), h.GetStockMovement)
	router.GET("/transactions/audit/:itemId", security.Authorize("manager"), h.AuditBalance)
	router.GET("/transactions/:id", security.Authorize("staff"), h.GetEntry)
}

// StockIn accepts `in` and `return` movements.
func (h *LedgerHandler) StockIn(c *gin.Context) {
	var req StockMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	kind := metadata.MovementIn
	if req.TransactionType != "" {
		parsed, err := metadata.NewMovementKind(req.TransactionType)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid movement kind", "details": err.Error()})
			return
		}
		kind = parsed
	}
	if !kind.Additive() {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Movement kind must be 'in' or 'return' for stock in"})
		return
	}

	h.applyAndRespond(c, models.MovementRequest{
		ItemID:    req.ItemID,
		Kind:      kind,
		Quantity:  req.Quantity,
		UnitPrice: req.UnitPrice,
		Reference: req.Reference,
		Notes:     req.Notes,
	})
}

func (h *LedgerHandler) StockOut(c *gin.Context) {
	var req StockMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	if req.TransactionType != "" && req.TransactionType != metadata.MovementOut.String() {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Movement kind must be 'out' for stock out"})
		return
	}

	h.applyAndRespond(c, models.MovementRequest{
		ItemID:    req.ItemID,
		Kind:      metadata.MovementOut,
		Quantity:  req.Quantity,
		UnitPrice: req.UnitPrice,
		Reference: req.Reference,
		Notes:     req.Notes,
	})
}

func (h *LedgerHandler) Adjustment(c *gin.Context) {
	var req AdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	direction, err := metadata.NewAdjustmentDirection(req.Direction)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid adjustment direction", "details": err.Error()})
		return
	}

	h.applyAndRespond(c, models.MovementRequest{
		ItemID:    req.ItemID,
		Kind:      metadata.MovementAdjustment,
		Quantity:  req.Quantity,
		Direction: direction,
		Reference: req.Reference,
		Notes:     req.Notes,
	})
}

func (h *LedgerHandler) Transfer(c *gin.Context) {
	var req TransferBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	actorID, err := security.ActorID(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing actor identity"})
		return
	}

	outEntry, inEntry, err := h.Service.Transfer(models.TransferRequest{
		SourceItemID:      req.SourceItemID,
		DestinationItemID: req.DestinationItemID,
		Quantity:          req.Quantity,
		UnitPrice:         req.UnitPrice,
		Notes:             req.Notes,
		ActorID:           actorID,
	})
	if err != nil {
		if outEntry != nil {
			// Source leg committed, destination leg did not.
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"error":           "Transfer destination leg failed",
				"details":         err.Error(),
				"source_entry":    outEntry,
				"needs_reconcile": true,
			})
			return
		}
		h.respondMovementError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":           "Transfer completed successfully",
		"source_entry":      outEntry,
		"destination_entry": inEntry,
	})
}

func (h *LedgerHandler) applyAndRespond(c *gin.Context, req models.MovementRequest) {
	actorID, err := security.ActorID(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing actor identity"})
		return
	}
	req.ActorID = actorID

	entry, newStock, err := h.Service.ApplyMovement(req)
	if err != nil {
		h.respondMovementError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Transaction created successfully",
		"transaction": entry,
		"new_stock":   newStock,
	})
}

func (h *LedgerHandler) respondMovementError(c *gin.Context, err error) {
	switch err.(type) {
	case *custom_error.ItemNotFoundError:
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Item not found", "details": err.Error()})
	case *custom_error.InvalidQuantityError:
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid quantity", "details": err.Error()})
	case *custom_error.InsufficientStockError:
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Insufficient stock", "details": err.Error()})
	case *custom_error.DuplicateCodeError:
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to allocate a transaction code"})
	default:
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Failed to apply movement", "details": err.Error()})
	}
}

func (h *LedgerHandler) GetEntries(c *gin.Context) {
	var query ListEntriesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters", "details": err.Error()})
		return
	}

	switch {
	case query.ItemID != nil:
		entries, err := h.LedgerRepository.GetEntriesByItem(*query.ItemID, query.Limit, query.Offset)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch ledger entries"})
			return
		}
		c.JSON(http.StatusOK, entries)
	case query.WarehouseID != nil:
		entries, err := h.LedgerRepository.GetEntriesByWarehouse(*query.WarehouseID, query.StartDate, query.EndDate, query.Limit, query.Offset)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch ledger entries"})
			return
		}
		c.JSON(http.StatusOK, entries)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Either item_id or warehouse_id is required"})
	}
}

func (h *LedgerHandler) GetEntry(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid transaction ID"})
		return
	}

	entry, err := h.LedgerRepository.GetEntry(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch ledger entry"})
		return
	}
	if entry == nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		return
	}

	c.JSON(http.StatusOK, entry)
}

func (h *LedgerHandler) GetTodaySales(c *gin.Context) {
	warehouseID, ok := optionalWarehouseID(c)
	if !ok {
		return
	}

	now := time.Now().UTC()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	report, err := h.LedgerRepository.GetSalesReport(warehouseID, start, now)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build sales report"})
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *LedgerHandler) GetDailySales(c *gin.Context) {
	warehouseID, ok := optionalWarehouseID(c)
	if !ok {
		return
	}

	days, err := strconv.Atoi(c.DefaultQuery("days", "7"))
	if err != nil || days < 1 || days > 30 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "days must be between 1 and 30"})
		return
	}

	end := time.Now().UTC()
	start := end.AddDate(0, 0, -days)

	report, err := h.LedgerRepository.GetSalesReport(warehouseID, start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build sales report"})
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *LedgerHandler) GetStockMovement(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}

	days, err := strconv.Atoi(c.DefaultQuery("days", "30"))
	if err != nil || days < 1 || days > 365 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "days must be between 1 and 365"})
		return
	}

	movement, err := h.LedgerRepository.GetStockMovement(itemID, days)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build stock movement history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"item_id":  itemID,
		"days":     days,
		"movement": movement,
	})
}

// AuditBalance reports whether the item's cached stock still equals the
// signed sum of its ledger entries.
func (h *LedgerHandler) AuditBalance(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}

	ledgerSum, currentStock, err := h.LedgerRepository.VerifyBalance(itemID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify ledger balance", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"item_id":       itemID,
		"ledger_sum":    ledgerSum,
		"current_stock": currentStock,
		"consistent":    ledgerSum == currentStock,
	})
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
