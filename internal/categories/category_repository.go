package categories

import (
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/rakuszz0/Inventory/internal/repository"
	custom_error "github.com/rakuszz0/Inventory/pkg/errors"
	"github.com/rakuszz0/Inventory/pkg/models"
)

const categoriesTable = "categories"

type CategoryRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *CategoryRepository {
	return &CategoryRepository{repository: r}
}

func (r *CategoryRepository) PersistCategory(category *models.Category) error {
	category.ID = uuid.New()
	category.IsActive = true

	query := r.repository.GoquDBWrapper.Insert(categoriesTable).
		Rows(goqu.Record{
			"id":          category.ID,
			"name":        category.Name,
			"description": category.Description,
			"slug":        category.Slug,
			"parent_id":   category.ParentID,
			"is_active":   true,
			"sort_order":  category.SortOrder,
		}).
		Returning("created_at")

	if _, err := query.Executor().ScanVal(&category.CreatedAt); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return custom_error.WrapDBError("Category name or slug already registered", string(pqErr.Code))
		}
		return fmt.Errorf("failed to insert category record: %w", err)
	}

	return nil
}

func (r *CategoryRepository) GetCategories() (*[]models.Category, error) {
	var result []models.Category
	query := r.repository.GoquDBWrapper.
		From(categoriesTable).
		Order(goqu.I("sort_order").Asc(), goqu.I("name").Asc())

	if err := query.Executor().ScanStructs(&result); err != nil {
		return nil, fmt.Errorf("unable to select categories: %w", err)
	}

	return &result, nil
}

// GetChildren resolves the tree one level at a time with an explicit
// query; no loaded back-references.
func (r *CategoryRepository) GetChildren(parentID uuid.UUID) (*[]models.Category, error) {
	var result []models.Category
	query := r.repository.GoquDBWrapper.
		From(categoriesTable).
		Where(goqu.Ex{"parent_id": parentID}).
		Order(goqu.I("sort_order").Asc())

	if err := query.Executor().ScanStructs(&result); err != nil {
		return nil, fmt.Errorf("unable to select child categories: %w", err)
	}

	return &result, nil
}

func (r *CategoryRepository) HasRelatedItems(categoryID uuid.UUID) (bool, error) {
	var count int64
	query := r.repository.GoquDBWrapper.
		From("inventory_items").
		Select(goqu.COUNT("*")).
		Where(goqu.Ex{"category_id": categoryID})

	if _, err := query.Executor().ScanVal(&count); err != nil {
		return false, fmt.Errorf("unable to check category items: %w", err)
	}

	return count > 0, nil
}

func (r *CategoryRepository) DeleteCategory(categoryID uuid.UUID) error {
	hasItems, err := r.HasRelatedItems(categoryID)
	if err != nil {
		return err
	}
	if hasItems {
		return fmt.Errorf("category still has related items")
	}

	result, err := r.repository.GoquDBWrapper.
		Delete(categoriesTable).
		Where(goqu.Ex{"id": categoryID}).
		Executor().Exec()
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to retrieve rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("category not found")
	}

	return nil
}
