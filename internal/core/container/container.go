package container

import (
	"database/sql"

	"github.com/rakuszz0/Inventory/internal/categories"
	"github.com/rakuszz0/Inventory/internal/inventory/alerts"
	"github.com/rakuszz0/Inventory/internal/inventory/items"
	"github.com/rakuszz0/Inventory/internal/inventory/ledger"
	"github.com/rakuszz0/Inventory/internal/repository"
	"github.com/rakuszz0/Inventory/internal/users"
	"github.com/rakuszz0/Inventory/internal/warehouses"
	"github.com/rakuszz0/Inventory/pkg/auditlog"
	"github.com/rakuszz0/Inventory/pkg/security"

	"go.uber.org/zap"
)

type Container struct {
	Repository       *repository.Repository
	AuditLog         *auditlog.Auditlog
	LoginHandler     *security.LoginHandler
	ItemHandler      *items.ItemHandler
	LedgerHandler    *ledger.LedgerHandler
	AlertHandler     *alerts.AlertHandler
	WarehouseHandler *warehouses.WarehouseHandler
	CategoryHandler  *categories.CategoryHandler
	UserHandler      *users.UsersHandler
}

func NewAppContainer(db *sql.DB, logger *zap.Logger) *Container {
	repo := repository.NewRepository(db)
	auditLog := auditlog.NewAuditLog(repo)

	itemRepo := items.NewRepository(repo)
	ledgerRepo := ledger.NewRepository(repo)
	alertRepo := alerts.NewRepository(repo)
	warehouseRepo := warehouses.NewRepository(repo)
	categoryRepo := categories.NewRepository(repo)
	userRepo := users.NewRepository(repo)

	alertService := alerts.NewAlertService(alertRepo, itemRepo, logger)
	ledgerService := ledger.NewLedgerService(repo, ledgerRepo, itemRepo, alertService, logger)
	itemService := items.NewItemService(itemRepo, ledgerService)

	loginHandler := security.NewLoginHandler(repo)
	itemHandler := items.NewItemHandler(repo, itemRepo, itemService, auditLog)
	ledgerHandler := ledger.NewLedgerHandler(ledgerService, ledgerRepo)
	alertHandler := alerts.NewAlertHandler(alertService, alertRepo, auditLog)
	warehouseHandler := warehouses.NewWarehouseHandler(warehouseRepo)
	categoryHandler := categories.NewCategoryHandler(categoryRepo)
	userHandler := users.NewHandler(userRepo)

	return &Container{
		Repository:       repo,
		AuditLog:         auditLog,
		LoginHandler:     loginHandler,
		ItemHandler:      itemHandler,
		LedgerHandler:    ledgerHandler,
		AlertHandler:     alertHandler,
		WarehouseHandler: warehouseHandler,
		CategoryHandler:  categoryHandler,
		UserHandler:      userHandler,
	}
}
