package alerts

import (
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"

	"github.com/rakuszz0/Inventory/internal/repository"
	custom_error "github.com/rakuszz0/Inventory/pkg/errors"
	"github.com/rakuszz0/Inventory/pkg/metadata"
	"github.com/rakuszz0/Inventory/pkg/models"
)

const (
	alertsTable = "stock_alerts"
	itemsTable  = "inventory_items"
)

type AlertRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *AlertRepository {
	return &AlertRepository{repository: r}
}

func (r *AlertRepository) InsertAlert(alert *models.StockAlert) error {
	query := r.repository.GoquDBWrapper.Insert(alertsTable).
		Rows(goqu.Record{
			"id":            alert.ID,
			"item_id":       alert.ItemID,
			"alert_type":    alert.Kind,
			"current_stock": alert.CurrentStock,
			"threshold":     alert.Threshold,
			"message":       alert.Message,
			"is_read":       false,
		}).
		Returning("created_at")

	if _, err := query.Executor().ScanVal(&alert.CreatedAt); err != nil {
		return fmt.Errorf("failed to insert stock alert: %w", err)
	}

	return nil
}

// HasRecentUnread backs the deduplication window: an unread alert of the
// same kind within the window suppresses a new one.
func (r *AlertRepository) HasRecentUnread(itemID uuid.UUID, kind metadata.AlertKind, since time.Time) (bool, error) {
	var count int64
	query := r.repository.GoquDBWrapper.
		From(alertsTable).
		Select(goqu.COUNT("*")).
		Where(
			goqu.C("item_id").Eq(itemID),
			goqu.C("alert_type").Eq(kind),
			goqu.C("is_read").IsFalse(),
			goqu.C("created_at").Gte(since),
		)

	if _, err := query.Executor().ScanVal(&count); err != nil {
		return false, fmt.Errorf("unable to check for existing alerts: %w", err)
	}

	return count > 0, nil
}

func (r *AlertRepository) GetAlert(id uuid.UUID) (*models.StockAlert, error) {
	var alert models.StockAlert
	query := r.repository.GoquDBWrapper.
		From(alertsTable).
		Where(goqu.Ex{"id": id})

	found, err := query.Executor().ScanStruct(&alert)
	if err != nil {
		return nil, fmt.Errorf("unable to select stock alert: %w", err)
	}
	if !found {
		return nil, &custom_error.AlertNotFoundError{AlertID: id}
	}

	return &alert, nil
}

func (r *AlertRepository) GetUnreadAlerts(warehouseID *uuid.UUID) (*[]models.StockAlert, error) {
	query := r.unreadQuery(warehouseID).
		Order(goqu.I("a.created_at").Desc())

	var result []models.StockAlert
	if err := query.Executor().ScanStructs(&result); err != nil {
		return nil, fmt.Errorf("unable to select unread alerts: %w", err)
	}

	return &result, nil
}

func (r *AlertRepository) CountUnread(warehouseID *uuid.UUID) (int, error) {
	var count int64
	query := r.unreadQuery(warehouseID).
		ClearSelect().
		Select(goqu.COUNT("*"))

	if _, err := query.Executor().ScanVal(&count); err != nil {
		return 0, fmt.Errorf("unable to count unread alerts: %w", err)
	}

	return int(count), nil
}

func (r *AlertRepository) GetRecentAlerts(days int, warehouseID *uuid.UUID) (*[]models.StockAlert, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -days)

	query := r.repository.GoquDBWrapper.
		From(goqu.T(alertsTable).As("a")).
		Select(goqu.I("a.*")).
		Where(goqu.I("a.created_at").Gte(cutoff)).
		Order(goqu.I("a.created_at").Desc())

	if warehouseID != nil {
		query = query.
			Join(
				goqu.T(itemsTable).As("i"),
				goqu.On(goqu.Ex{"a.item_id": goqu.I("i.id")}),
			).
			Where(goqu.Ex{"i.warehouse_id": *warehouseID})
	}

	var result []models.StockAlert
	if err := query.Executor().ScanStructs(&result); err != nil {
		return nil, fmt.Errorf("unable to select recent alerts: %w", err)
	}

	return &result, nil
}

// MarkRead flips the read flag. Reader and timestamp stick with the
// first reader; marking an already-read alert is a no-op on those
// fields.
func (r *AlertRepository) MarkRead(id uuid.UUID, actorID uuid.UUID, readAt time.Time) (*models.StockAlert, error) {
	result, err := r.repository.GoquDBWrapper.
		Update(alertsTable).
		Set(goqu.Record{
			"is_read": true,
			"read_by": goqu.L("COALESCE(read_by, ?)", actorID),
			"read_at": goqu.L("COALESCE(read_at, ?)", readAt),
		}).
		Where(goqu.Ex{"id": id}).
		Executor().Exec()
	if err != nil {
		return nil, fmt.Errorf("failed to mark alert as read: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, &custom_error.AlertNotFoundError{AlertID: id}
	}

	return r.GetAlert(id)
}

func (r *AlertRepository) unreadQuery(warehouseID *uuid.UUID) *goqu.SelectDataset {
	query := r.repository.GoquDBWrapper.
		From(goqu.T(alertsTable).As("a")).
		Select(goqu.I("a.*")).
		Where(goqu.I("a.is_read").IsFalse())

	if warehouseID != nil {
		query = query.
			Join(
				goqu.T(itemsTable).As("i"),
				goqu.On(goqu.Ex{"a.item_id": goqu.I("i.id")}),
			).
			Where(goqu.Ex{"i.warehouse_id": *warehouseID})
	}

	return query
}
