package warehouses

import (
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/rakuszz0/Inventory/internal/repository"
	custom_error "github.com/rakuszz0/Inventory/pkg/errors"
	"github.com/rakuszz0/Inventory/pkg/models"
)

const warehousesTable = "warehouses"

type WarehouseRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *WarehouseRepository {
	return &WarehouseRepository{repository: r}
}

func (r *WarehouseRepository) PersistWarehouse(warehouse *models.Warehouse) error {
	warehouse.ID = uuid.New()
	warehouse.IsActive = true

	query := r.repository.GoquDBWrapper.Insert(warehousesTable).
		Rows(goqu.Record{
			"id":        warehouse.ID,
			"code":      warehouse.Code,
			"name":      warehouse.Name,
			"location":  warehouse.Location,
			"address":   warehouse.Address,
			"phone":     warehouse.Phone,
			"email":     warehouse.Email,
			"is_active": true,
		}).
		Returning("created_at")

	if _, err := query.Executor().ScanVal(&warehouse.CreatedAt); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return custom_error.WrapDBError("Warehouse code already registered", string(pqErr.Code))
		}
		return fmt.Errorf("failed to insert warehouse record: %w", err)
	}

	return nil
}

func (r *WarehouseRepository) GetWarehouses() (*[]models.Warehouse, error) {
	var result []models.Warehouse
	query := r.repository.GoquDBWrapper.
		From(warehousesTable).
		Order(goqu.I("name").Asc())

	if err := query.Executor().ScanStructs(&result); err != nil {
		return nil, fmt.Errorf("unable to select warehouses: %w", err)
	}

	return &result, nil
}

func (r *WarehouseRepository) GetWarehouse(id uuid.UUID) (*models.Warehouse, error) {
	var warehouse models.Warehouse
	query := r.repository.GoquDBWrapper.
		From(warehousesTable).
		Where(goqu.Ex{"id": id})

	found, err := query.Executor().ScanStruct(&warehouse)
	if err != nil {
		return nil, fmt.Errorf("unable to select warehouse: %w", err)
	}
	if !found {
		return nil, nil
	}

	return &warehouse, nil
}

// DeactivateWarehouse refuses while active items still hold stock in it.
func (r *WarehouseRepository) DeactivateWarehouse(id uuid.UUID) error {
	var stockCount int64
	stockQuery := r.repository.GoquDBWrapper.
		From("inventory_items").
		Select(goqu.COUNT("*")).
		Where(
			goqu.C("warehouse_id").Eq(id),
			goqu.C("is_active").IsTrue(),
			goqu.C("current_stock").Gt(0),
		)
	if _, err := stockQuery.Executor().ScanVal(&stockCount); err != nil {
		return fmt.Errorf("unable to check warehouse stock: %w", err)
	}
	if stockCount > 0 {
		return fmt.Errorf("warehouse still holds stock in %d item(s)", stockCount)
	}

	result, err := r.repository.GoquDBWrapper.
		Update(warehousesTable).
		Set(goqu.Record{"is_active": false, "updated_at": goqu.L("now()")}).
		Where(goqu.Ex{"id": id}).
		Executor().Exec()
	if err != nil {
		return fmt.Errorf("failed to deactivate warehouse: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to retrieve rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("warehouse not found")
	}

	return nil
}
