package items

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/rakuszz0/Inventory/pkg/metadata"
	"github.com/rakuszz0/Inventory/pkg/models"
)

type MockItemStore struct {
	mock.Mock
}

func (m *MockItemStore) PersistItem(req ItemRequest, createdBy uuid.UUID) (*models.StockItem, error) {
	args := m.Called(req, createdBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StockItem), args.Error(1)
}

func (m *MockItemStore) GetItem(id uuid.UUID) (*models.StockItem, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StockItem), args.Error(1)
}

type MockMovementApplier struct {
	mock.Mock
}

func (m *MockMovementApplier) ApplyMovement(req models.MovementRequest) (*models.LedgerEntry, int, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).(*models.LedgerEntry), args.Int(1), args.Error(2)
}

func TestCreateItemWithoutInitialStock(t *testing.T) {
	store := new(MockItemStore)
	ledger := new(MockMovementApplier)
	service := NewItemService(store, ledger)

	actorID := uuid.New()
	req := ItemRequest{SKU: "SKU-100", Name: "Stretch film", BuyPrice: decimal.NewFromInt(50), SellPrice: decimal.NewFromInt(80)}
	created := &models.StockItem{ID: uuid.New(), SKU: req.SKU, CurrentStock: 0}

	store.On("PersistItem", req, actorID).Return(created, nil).Once()

	item, err := service.CreateItem(req, actorID)

	assert.NoError(t, err)
	assert.Equal(t, 0, item.CurrentStock)
	ledger.AssertNotCalled(t, "ApplyMovement", mock.Anything)
}

func TestCreateItemAppliesOpeningMovement(t *testing.T) {
	store := new(MockItemStore)
	ledger := new(MockMovementApplier)
	service := NewItemService(store, ledger)

	actorID := uuid.New()
	req := ItemRequest{
		SKU:          "SKU-101",
		Name:         "Bubble wrap",
		InitialStock: 25,
		BuyPrice:     decimal.NewFromInt(40),
		SellPrice:    decimal.NewFromInt(65),
	}
	created := &models.StockItem{ID: uuid.New(), SKU: req.SKU, CurrentStock: 0}

	store.On("PersistItem", req, actorID).Return(created, nil).Once()

	var movement models.MovementRequest
	ledger.On("ApplyMovement", mock.Anything).Run(func(args mock.Arguments) {
		movement = args.Get(0).(models.MovementRequest)
	}).Return(&models.LedgerEntry{Code: "TRX-20260831-ABCDEF01"}, 25, nil).Once()

	item, err := service.CreateItem(req, actorID)

	assert.NoError(t, err)
	assert.Equal(t, 25, item.CurrentStock)
	assert.Equal(t, created.ID, movement.ItemID)
	assert.Equal(t, metadata.MovementIn, movement.Kind)
	assert.Equal(t, 25, movement.Quantity)
	assert.Equal(t, "OPENING-STOCK", movement.Reference)
	assert.True(t, movement.UnitPrice.Equal(req.BuyPrice))
	assert.Equal(t, actorID, movement.ActorID)
}

func TestCreateItemReportsOpeningMovementFailure(t *testing.T) {
	store := new(MockItemStore)
	ledger := new(MockMovementApplier)
	service := NewItemService(store, ledger)

	actorID := uuid.New()
	req := ItemRequest{SKU: "SKU-102", Name: "Pallet straps", InitialStock: 10}
	created := &models.StockItem{ID: uuid.New(), SKU: req.SKU}

	store.On("PersistItem", req, actorID).Return(created, nil).Once()
	ledger.On("ApplyMovement", mock.Anything).Return(nil, 0, errors.New("ledger unavailable")).Once()

	_, err := service.CreateItem(req, actorID)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "opening stock movement failed")
}
