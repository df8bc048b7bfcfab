package items

import (
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/rakuszz0/Inventory/internal/repository"
	custom_error "github.com/rakuszz0/Inventory/pkg/errors"
	"github.com/rakuszz0/Inventory/pkg/models"
)

const itemsTable = "inventory_items"

type ItemRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *ItemRepository {
	return &ItemRepository{repository: r}
}

// PersistItem inserts the row at stock zero. Opening stock is applied
// afterwards as a regular movement so the ledger covers it.
func (r *ItemRepository) PersistItem(req ItemRequest, createdBy uuid.UUID) (*models.StockItem, error) {
	unit := req.Unit
	if unit == "" {
		unit = "pcs"
	}

	item := models.StockItem{
		ID:          uuid.New(),
		SKU:         req.SKU,
		Barcode:     req.Barcode,
		Name:        req.Name,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		WarehouseID: req.WarehouseID,
		Unit:        unit,
		MinStock:    req.MinStock,
		MaxStock:    req.MaxStock,
		BuyPrice:    req.BuyPrice,
		SellPrice:   req.SellPrice,
		IsActive:    true,
		CreatedBy:   &createdBy,
	}

	query := r.repository.GoquDBWrapper.Insert(itemsTable).
		Rows(goqu.Record{
			"id":            item.ID,
			"sku":           item.SKU,
			"barcode":       item.Barcode,
			"name":          item.Name,
			"description":   item.Description,
			"category_id":   item.CategoryID,
			"warehouse_id":  item.WarehouseID,
			"unit":          item.Unit,
			"current_stock": 0,
			"min_stock":     item.MinStock,
			"max_stock":     item.MaxStock,
			"buy_price":     item.BuyPrice,
			"sell_price":    item.SellPrice,
			"is_active":     true,
			"created_by":    createdBy,
		}).
		Returning("created_at")

	if _, err := query.Executor().ScanVal(&item.CreatedAt); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return nil, custom_error.WrapDBError("Item with same SKU or barcode already registered", string(pqErr.Code))
		}
		return nil, fmt.Errorf("failed to insert inventory item: %w", err)
	}

	return &item, nil
}

func (r *ItemRepository) GetItem(id uuid.UUID) (*models.StockItem, error) {
	return r.getItemWhere(goqu.Ex{"id": id}, id)
}

func (r *ItemRepository) GetItemBySKU(sku string) (*models.StockItem, error) {
	return r.getItemWhere(goqu.Ex{"sku": sku}, uuid.Nil)
}

func (r *ItemRepository) GetItemByBarcode(barcode string) (*models.StockItem, error) {
	return r.getItemWhere(goqu.Ex{"barcode": barcode}, uuid.Nil)
}

func (r *ItemRepository) getItemWhere(conditions goqu.Ex, id uuid.UUID) (*models.StockItem, error) {
	var item models.StockItem
	query := r.repository.GoquDBWrapper.
		From(itemsTable).
		Where(conditions)

	found, err := query.Executor().ScanStruct(&item)
	if err != nil {
		return nil, fmt.Errorf("unable to select inventory item: %w", err)
	}
	if !found {
		return nil, &custom_error.ItemNotFoundError{ItemID: id}
	}

	return &item, nil
}

// LockItem reads the item row with a row-level lock so concurrent
// mutations against the same item serialize on the database. Inactive
// items are not valid mutation targets.
func (r *ItemRepository) LockItem(tx *goqu.TxDatabase, id uuid.UUID) (*models.StockItem, error) {
	var item models.StockItem
	query := tx.
		From(itemsTable).
		Where(goqu.Ex{"id": id}).
		ForUpdate(exp.Wait)

	found, err := query.Executor().ScanStruct(&item)
	if err != nil {
		return nil, fmt.Errorf("unable to lock inventory item: %w", err)
	}
	if !found || !item.IsActive {
		return nil, &custom_error.ItemNotFoundError{ItemID: id}
	}

	return &item, nil
}

func (r *ItemRepository) UpdateStockLevel(tx *goqu.TxDatabase, id uuid.UUID, newStock int) error {
	result, err := tx.Update(itemsTable).
		Set(goqu.Record{
			"current_stock": newStock,
			"updated_at":    goqu.L("now()"),
		}).
		Where(goqu.Ex{"id": id}).
		Executor().Exec()
	if err != nil {
		return fmt.Errorf("failed to update stock level: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to retrieve rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return &custom_error.ItemNotFoundError{ItemID: id}
	}

	return nil
}

func (r *ItemRepository) RefreshBuyPrice(tx *goqu.TxDatabase, id uuid.UUID, price decimal.Decimal) error {
	_, err := tx.Update(itemsTable).
		Set(goqu.Record{
			"buy_price":      price,
			"last_buy_price": price,
			"updated_at":     goqu.L("now()"),
		}).
		Where(goqu.Ex{"id": id}).
		Executor().Exec()
	if err != nil {
		return fmt.Errorf("failed to refresh buy price: %w", err)
	}

	return nil
}

func (r *ItemRepository) RefreshSellPrice(tx *goqu.TxDatabase, id uuid.UUID, price decimal.Decimal) error {
	_, err := tx.Update(itemsTable).
		Set(goqu.Record{
			"last_sell_price": price,
			"updated_at":      goqu.L("now()"),
		}).
		Where(goqu.Ex{"id": id}).
		Executor().Exec()
	if err != nil {
		return fmt.Errorf("failed to refresh sell price: %w", err)
	}

	return nil
}

// GetItemsBy returns the filtered page plus the unpaginated count.
func (r *ItemRepository) GetItemsBy(conditions repository.QueryBuilder, limit, offset int) (*[]models.StockItem, int, error) {
	aliases := map[string]string{
		"warehouse_id": "i.warehouse_id",
		"category_id":  "i.category_id",
		"stock":        "i.current_stock",
		"name":         "i.name",
		"sku":          "i.sku",
		"barcode":      "i.barcode",
		"is_active":    "i.is_active",
	}
	where := conditions.BuildConditions(aliases)

	var count int64
	countQuery := r.repository.GoquDBWrapper.
		From(goqu.T(itemsTable).As("i")).
		Select(goqu.COUNT("*")).
		Where(where...)
	if _, err := countQuery.Executor().ScanVal(&count); err != nil {
		return nil, 0, fmt.Errorf("unable to count inventory items: %w", err)
	}

	var result []models.StockItem
	query := r.repository.GoquDBWrapper.
		From(goqu.T(itemsTable).As("i")).
		Where(where...).
		Order(goqu.I("i.name").Asc()).
		Limit(uint(limit)).
		Offset(uint(offset))

	if err := query.Executor().ScanStructs(&result); err != nil {
		return nil, 0, fmt.Errorf("unable to select inventory items: %w", err)
	}

	return &result, int(count), nil
}

func (r *ItemRepository) GetActiveItems(warehouseID *uuid.UUID, limit int) (*[]models.StockItem, error) {
	query := r.repository.GoquDBWrapper.
		From(itemsTable).
		Where(goqu.Ex{"is_active": true}).
		Order(goqu.I("name").Asc()).
		Limit(uint(limit))

	if warehouseID != nil {
		query = query.Where(goqu.Ex{"warehouse_id": *warehouseID})
	}

	var result []models.StockItem
	if err := query.Executor().ScanStructs(&result); err != nil {
		return nil, fmt.Errorf("unable to select active items: %w", err)
	}

	return &result, nil
}

// GetLowStockItems lists active items at or under their minimum but not
// yet depleted.
func (r *ItemRepository) GetLowStockItems(warehouseID *uuid.UUID) (*[]models.StockItem, error) {
	query := r.repository.GoquDBWrapper.
		From(itemsTable).
		Where(
			goqu.C("is_active").IsTrue(),
			goqu.C("current_stock").Gt(0),
			goqu.C("current_stock").Lte(goqu.C("min_stock")),
		)

	if warehouseID != nil {
		query = query.Where(goqu.Ex{"warehouse_id": *warehouseID})
	}

	var result []models.StockItem
	if err := query.Executor().ScanStructs(&result); err != nil {
		return nil, fmt.Errorf("unable to select low stock items: %w", err)
	}

	return &result, nil
}

func (r *ItemRepository) GetOutOfStockItems(warehouseID *uuid.UUID) (*[]models.StockItem, error) {
	query := r.repository.GoquDBWrapper.
		From(itemsTable).
		Where(
			goqu.C("is_active").IsTrue(),
			goqu.C("current_stock").Eq(0),
		)

	if warehouseID != nil {
		query = query.Where(goqu.Ex{"warehouse_id": *warehouseID})
	}

	var result []models.StockItem
	if err := query.Executor().ScanStructs(&result); err != nil {
		return nil, fmt.Errorf("unable to select out of stock items: %w", err)
	}

	return &result, nil
}

func (r *ItemRepository) UpdateItem(req *PatchItemRequest) (*models.StockItem, error) {
	updates, err := buildUpdateFields(req)
	if err != nil {
		return nil, err
	}

	result, err := r.repository.GoquDBWrapper.
		Update(itemsTable).
		Set(updates).
		Where(goqu.Ex{"id": req.ID}).
		Executor().Exec()
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return nil, custom_error.WrapDBError("Item with same barcode already registered", string(pqErr.Code))
		}
		return nil, fmt.Errorf("failed to update inventory item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, &custom_error.ItemNotFoundError{ItemID: req.ID}
	}

	return r.GetItem(req.ID)
}

// DeactivateItem soft-deletes; item rows are never removed, the ledger
// keeps referencing them.
func (r *ItemRepository) DeactivateItem(id uuid.UUID) error {
	result, err := r.repository.GoquDBWrapper.
		Update(itemsTable).
		Set(goqu.Record{
			"is_active":  false,
			"updated_at": goqu.L("now()"),
		}).
		Where(goqu.Ex{"id": id}).
		Executor().Exec()
	if err != nil {
		return fmt.Errorf("failed to deactivate inventory item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to retrieve rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return &custom_error.ItemNotFoundError{ItemID: id}
	}

	return nil
}

func (r *ItemRepository) GetInventorySummary(warehouseID *uuid.UUID) (*models.InventorySummary, error) {
	var summary models.InventorySummary

	query := r.repository.GoquDBWrapper.
		From(itemsTable).
		Select(
			goqu.COUNT("*").As("total_items"),
			goqu.L("COALESCE(SUM(current_stock), 0)").As("total_stock"),
			goqu.L("COALESCE(SUM(current_stock * buy_price), 0)").As("total_value"),
			goqu.L("COUNT(*) FILTER (WHERE current_stock = 0)").As("out_of_stock_items"),
			goqu.L("COUNT(*) FILTER (WHERE current_stock > 0 AND current_stock <= min_stock)").As("low_stock_items"),
		).
		Where(goqu.C("is_active").IsTrue())

	if warehouseID != nil {
		query = query.Where(goqu.Ex{"warehouse_id": *warehouseID})
	}

	if _, err := query.Executor().ScanStruct(&summary); err != nil {
		return nil, fmt.Errorf("unable to build inventory summary: %w", err)
	}

	catQuery := r.repository.GoquDBWrapper.
		From(goqu.T(itemsTable).As("i")).
		Join(
			goqu.T("categories").As("c"),
			goqu.On(goqu.Ex{"i.category_id": goqu.I("c.id")}),
		).
		Select(
			goqu.I("c.name").As("name"),
			goqu.COUNT(goqu.I("i.id")).As("item_count"),
			goqu.L("COALESCE(SUM(i.current_stock), 0)").As("total_stock"),
			goqu.L("COALESCE(SUM(i.current_stock * i.buy_price), 0)").As("total_value"),
		).
		Where(goqu.I("i.is_active").IsTrue()).
		GroupBy(goqu.I("c.id"), goqu.I("c.name"))

	if warehouseID != nil {
		catQuery = catQuery.Where(goqu.Ex{"i.warehouse_id": *warehouseID})
	}

	var categories []models.CategorySummary
	if err := catQuery.Executor().ScanStructs(&categories); err != nil {
		return nil, fmt.Errorf("unable to build category summary: %w", err)
	}
	summary.Categories = categories

	return &summary, nil
}

var errNoFieldsToUpdate = fmt.Errorf("no fields to update")

func buildUpdateFields(req *PatchItemRequest) (goqu.Record, error) {
	updates := goqu.Record{}

	if req.Barcode != nil {
		updates["barcode"] = *req.Barcode
	}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.CategoryID != nil {
		updates["category_id"] = *req.CategoryID
	}
	if req.Unit != nil {
		updates["unit"] = *req.Unit
	}
	if req.MinStock != nil {
		updates["min_stock"] = *req.MinStock
	}
	if req.MaxStock != nil {
		updates["max_stock"] = *req.MaxStock
	}
	if req.BuyPrice != nil {
		updates["buy_price"] = *req.BuyPrice
	}
	if req.SellPrice != nil {
		updates["sell_price"] = *req.SellPrice
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) == 0 {
		return nil, errNoFieldsToUpdate
	}
	updates["updated_at"] = time.Now().UTC()

	return updates, nil
}
