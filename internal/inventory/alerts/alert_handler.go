package alerts

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rakuszz0/Inventory/pkg/auditlog"
	custom_error "github.com/rakuszz0/Inventory/pkg/errors"
	"github.com/rakuszz0/Inventory/pkg/security"
)

type AlertHandler struct {
	Service         *AlertService
	AlertRepository *AlertRepository
	AuditLog        *auditlog.Auditlog
}

func NewAlertHandler(s *AlertService, ar *AlertRepository, a *auditlog.Auditlog) *AlertHandler {
	return &AlertHandler{
		Service:         s,
		AlertRepository: ar,
		AuditLog:        a,
	}
}

func (h *AlertHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/alerts", security.Authorize("staff"), h.GetUnreadAlerts)
	router.GET("/alerts/count", security.Authorize("staff"), h.CountUnread)
	router.GET("/alerts/recent", security.Authorize("staff"), h.GetRecentAlerts)
	router.POST("/alerts/read", security.Authorize("staff"), h.MarkAlertsRead)
	router.POST("/alerts/sweep", security.Authorize("manager"), h.Sweep)
}

func (h *AlertHandler) GetUnreadAlerts(c *gin.Context) {
	warehouseID, ok := optionalWarehouseID(c)
	if !ok {
		return
	}

	result, err := h.AlertRepository.GetUnreadAlerts(warehouseID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch alerts"})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *AlertHandler) CountUnread(c *gin.Context) {
	warehouseID, ok := optionalWarehouseID(c)
	if !ok {
		return
	}

	count, err := h.AlertRepository.CountUnread(warehouseID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count alerts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"unread_count": count})
}

func (h *AlertHandler) GetRecentAlerts(c *gin.Context) {
	warehouseID, ok := optionalWarehouseID(c)
	if !ok {
		return
	}

	days, err := strconv.Atoi(c.DefaultQuery("days", "7"))
	if err != nil || days < 1 || days > 90 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "days must be between 1 and 90"})
		return
	}

	result, err := h.AlertRepository.GetRecentAlerts(days, warehouseID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recent alerts"})
		return
	}

	c.JSON(http.StatusOK, result)
}

type markReadRequest struct {
	AlertIDs []uuid.UUID `json:"alert_ids" binding:"required,min=1"`
}

func (h *AlertHandler) MarkAlertsRead(c *gin.Context) {
	var req markReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	actorID, err := security.ActorID(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing actor identity"})
		return
	}

	updated, err := h.Service.MarkAlertsRead(req.AlertIDs, actorID)
	if err != nil {
		switch err.(type) {
		case *custom_error.AlertNotFoundError:
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Alert not found"})
		default:
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark alerts as read", "details": err.Error()})
		}
		return
	}

	for i := range updated {
		alert := updated[i]
		go h.AuditLog.Log("read", map[string]interface{}{"alert_type": alert.Kind}, &alert)
	}

	c.JSON(http.StatusOK, gin.H{"updated": updated})
}

func (h *AlertHandler) Sweep(c *gin.Context) {
	warehouseID, ok := optionalWarehouseID(c)
	if !ok {
		return
	}

	raised, err := h.Service.EvaluateWarehouse(warehouseID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to run alert sweep", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"alerts_raised": raised})
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
