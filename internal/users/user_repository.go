package users

import (
	"fmt"

	"github.com/rakuszz0/Inventory/internal/repository"
	"github.com/rakuszz0/Inventory/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

type UserRepository interface {
	PersistUser(req models.CreateUserRequest, hashedPassword []byte) (*models.User, error)
	GetUser(id uuid.UUID) (*models.User, error)
	GetUsers() ([]models.User, error)
	UpdateUser(id uuid.UUID, changes *models.UserChanges) error
}

type userRepositoryImpl struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) UserRepository {
	return &userRepositoryImpl{repository: r}
}

func (r *userRepositoryImpl) PersistUser(req models.CreateUserRequest, hashedPassword []byte) (*models.User, error) {
	user := models.User{
		ID:          uuid.New(),
		Username:    req.Username,
		Fullname:    req.Fullname,
		Role:        req.Role,
		WarehouseID: req.WarehouseID,
		IsActive:    true,
	}

	query := r.repository.GoquDBWrapper.Insert("users").
		Rows(goqu.Record{
			"id":            user.ID,
			"username":      user.Username,
			"fullname":      user.Fullname,
			"password_hash": string(hashedPassword),
			"role":          user.Role,
			"warehouse_id":  user.WarehouseID,
			"is_active":     user.IsActive,
		})

	if _, err := query.Executor().Exec(); err != nil {
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	return &user, nil
}

func (r *userRepositoryImpl) GetUsers() ([]models.User, error) {
	var users []models.User
	query := r.repository.GoquDBWrapper.
		Select("id", "username", "fullname", "role", "warehouse_id", "is_active").
		From("users").
		Order(goqu.C("username").Asc())

	if err := query.Executor().ScanStructs(&users); err != nil {
		return nil, fmt.Errorf("error executing SQL statement: %w", err)
	}

	return users, nil
}

func (r *userRepositoryImpl) GetUser(id uuid.UUID) (*models.User, error) {
	var user models.User
	query := r.repository.GoquDBWrapper.
		Select("id", "username", "fullname", "password_hash", "role", "warehouse_id", "is_active").
		From("users").
		Where(goqu.Ex{"id": id})

	found, err := query.Executor().ScanStruct(&user)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if !found {
		return nil, nil
	}

	return &user, nil
}

func (r *userRepositoryImpl) UpdateUser(id uuid.UUID, changes *models.UserChanges) error {
	record := goqu.Record{}
	if changes.PasswordHash != nil {
		record["password_hash"] = *changes.PasswordHash
	}
	if changes.Fullname != nil {
		record["fullname"] = *changes.Fullname
	}
	if changes.Role != nil {
		record["role"] = *changes.Role
	}
	if changes.WarehouseID != nil {
		record["warehouse_id"] = *changes.WarehouseID
	}
	if changes.IsActive != nil {
		record["is_active"] = *changes.IsActive
	}

	if len(record) == 0 {
		return nil
	}

	query := r.repository.GoquDBWrapper.Update("users").
		Set(record).
		Where(goqu.Ex{"id": id})

	result, err := query.Executor().Exec()
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("user %s not found", id)
	}

	return nil
}
