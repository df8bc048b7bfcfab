package alerts

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	custom_error "github.com/rakuszz0/Inventory/pkg/errors"
	"github.com/rakuszz0/Inventory/pkg/metadata"
	"github.com/rakuszz0/Inventory/pkg/models"
)

// dedupWindow is the span during which repeated unread alerts of the
// same kind for the same item are suppressed.
const dedupWindow = 24 * time.Hour

type AlertStore interface {
	InsertAlert(alert *models.StockAlert) error
	HasRecentUnread(itemID uuid.UUID, kind metadata.AlertKind, since time.Time) (bool, error)
	MarkRead(id uuid.UUID, actorID uuid.UUID, readAt time.Time) (*models.StockAlert, error)
}

type ItemLister interface {
	GetActiveItems(warehouseID *uuid.UUID, limit int) (*[]models.StockItem, error)
}

type AlertService struct {
	store  AlertStore
	items  ItemLister
	logger *zap.Logger
}

func NewAlertService(store AlertStore, items ItemLister, logger *zap.Logger) *AlertService {
	return &AlertService{
		store:  store,
		items:  items,
		logger: logger,
	}
}

// Evaluate classifies the item snapshot into at most one alert
// condition and inserts a record unless an unread alert of the same
// kind already exists within the dedup window. The check-then-insert is
// best effort: a concurrent duplicate is harmless and bounded by the
// window.
func (s *AlertService) Evaluate(item *models.StockItem) (*models.StockAlert, error) {
	kind, threshold, ok := classify(item)
	if !ok {
		return nil, nil
	}

	exists, err := s.store.HasRecentUnread(item.ID, kind, time.Now().UTC().Add(-dedupWindow))
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, nil
	}

	alert := &models.StockAlert{
		ID:           uuid.New(),
		ItemID:       item.ID,
		Kind:         kind,
		CurrentStock: item.CurrentStock,
		Threshold:    threshold,
		Message:      alertMessage(item, kind, threshold),
	}
	if err := s.store.InsertAlert(alert); err != nil {
		return nil, err
	}

	return alert, nil
}

// EvaluateWarehouse sweeps all active items of a warehouse (or all
// warehouses when nil) and returns the number of alerts raised.
func (s *AlertService) EvaluateWarehouse(warehouseID *uuid.UUID) (int, error) {
	result, err := s.items.GetActiveItems(warehouseID, 1000)
	if err != nil {
		return 0, fmt.Errorf("failed to list items for alert sweep: %w", err)
	}

	raised := 0
	for i := range *result {
		alert, err := s.Evaluate(&(*result)[i])
		if err != nil {
			s.logger.Warn("alert evaluation failed during sweep",
				zap.String("item_id", (*result)[i].ID.String()),
				zap.Error(err),
			)
			continue
		}
		if alert != nil {
			raised++
		}
	}

	return raised, nil
}

func (s *AlertService) MarkRead(alertID uuid.UUID, actorID uuid.UUID) (*models.StockAlert, error) {
	return s.store.MarkRead(alertID, actorID, time.Now().UTC())
}

// MarkAlertsRead marks a batch, skipping ids that no longer resolve.
func (s *AlertService) MarkAlertsRead(alertIDs []uuid.UUID, actorID uuid.UUID) ([]models.StockAlert, error) {
	updated := make([]models.StockAlert, 0, len(alertIDs))
	for _, id := range alertIDs {
		alert, err := s.MarkRead(id, actorID)
		if err != nil {
			var notFound *custom_error.AlertNotFoundError
			if errors.As(err, &notFound) {
				continue
			}
			return updated, err
		}
		updated = append(updated, *alert)
	}

	return updated, nil
}

// classify applies the fixed precedence: out of stock, then low stock,
// then over stock.
func classify(item *models.StockItem) (metadata.AlertKind, int, bool) {
	switch {
	case item.CurrentStock == 0:
		return metadata.AlertOutOfStock, 0, true
	case item.CurrentStock <= item.MinStock:
		return metadata.AlertLowStock, item.MinStock, true
	case item.MaxStock != nil && item.CurrentStock >= *item.MaxStock:
		return metadata.AlertOverStock, *item.MaxStock, true
	default:
		return "", 0, false
	}
}

func alertMessage(item *models.StockItem, kind metadata.AlertKind, threshold int) string {
	switch kind {
	case metadata.AlertOutOfStock:
		return fmt.Sprintf("Stock for %s is depleted", item.Name)
	case metadata.AlertLowStock:
		return fmt.Sprintf("Stock for %s is running low (stock: %d, minimum: %d)", item.Name, item.CurrentStock, threshold)
	case metadata.AlertOverStock:
		return fmt.Sprintf("Stock for %s exceeds the maximum (stock: %d, maximum: %d)", item.Name, item.CurrentStock, threshold)
	default:
		return fmt.Sprintf("Stock alert for %s", item.Name)
	}
}
