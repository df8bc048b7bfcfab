package ledger

import (
	"errors"
	"testing"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/rakuszz0/Inventory/internal/repository"
	custom_error "github.com/rakuszz0/Inventory/pkg/errors"
	"github.com/rakuszz0/Inventory/pkg/metadata"
	"github.com/rakuszz0/Inventory/pkg/models"
)

type MockItemStore struct {
	mock.Mock
}

func (m *MockItemStore) LockItem(tx *goqu.TxDatabase, id uuid.UUID) (*models.StockItem, error) {
	args := m.Called(tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StockItem), args.Error(1)
}

func (m *MockItemStore) UpdateStockLevel(tx *goqu.TxDatabase, id uuid.UUID, newStock int) error {
	args := m.Called(tx, id, newStock)
	return args.Error(0)
}

func (m *MockItemStore) RefreshBuyPrice(tx *goqu.TxDatabase, id uuid.UUID, price decimal.Decimal) error {
	args := m.Called(tx, id, price)
	return args.Error(0)
}

func (m *MockItemStore) RefreshSellPrice(tx *goqu.TxDatabase, id uuid.UUID, price decimal.Decimal) error {
	args := m.Called(tx, id, price)
	return args.Error(0)
}

type MockEntryWriter struct {
	mock.Mock
}

func (m *MockEntryWriter) InsertEntry(tx *goqu.TxDatabase, entry *models.LedgerEntry) error {
	args := m.Called(tx, entry)
	return args.Error(0)
}

type MockAlertEvaluator struct {
	mock.Mock
}

func (m *MockAlertEvaluator) Evaluate(item *models.StockItem) (*models.StockAlert, error) {
	args := m.Called(item)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StockAlert), args.Error(1)
}

func newTestService(items *MockItemStore, entries *MockEntryWriter, alerts *MockAlertEvaluator) *LedgerService {
	s := &LedgerService{
		r:       &repository.Repository{},
		entries: entries,
		items:   items,
		alerts:  alerts,
		logger:  zap.NewNop(),
	}
	s.runTx = func(_ *goqu.Database, fn func(tx *goqu.TxDatabase) error) error {
		return fn(nil)
	}
	return s
}

func testItem(stock int) *models.StockItem {
	return &models.StockItem{
		ID:           uuid.New(),
		SKU:          "SKU-001",
		Name:         "Thermal label roll",
		CurrentStock: stock,
		MinStock:     5,
		BuyPrice:     decimal.NewFromInt(100),
		SellPrice:    decimal.NewFromInt(150),
		IsActive:     true,
	}
}

func TestApplyMovementRejectsNonPositiveQuantity(t *testing.T) {
	service := newTestService(new(MockItemStore), new(MockEntryWriter), new(MockAlertEvaluator))

	for _, quantity := range []int{0, -4} {
		_, _, err := service.ApplyMovement(models.MovementRequest{
			ItemID:   uuid.New(),
			Kind:     metadata.MovementIn,
			Quantity: quantity,
		})

		var invalidErr *custom_error.InvalidQuantityError
		assert.ErrorAs(t, err, &invalidErr)
		assert.Equal(t, quantity, invalidErr.Quantity)
	}
}

func TestApplyMovementRejectsAdjustmentWithoutDirection(t *testing.T) {
	service := newTestService(new(MockItemStore), new(MockEntryWriter), new(MockAlertEvaluator))

	_, _, err := service.ApplyMovement(models.MovementRequest{
		ItemID:   uuid.New(),
		Kind:     metadata.MovementAdjustment,
		Quantity: 3,
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "direction")
}

func TestApplyMovementOutBracketsStockAndDefaultsSellPrice(t *testing.T) {
	items := new(MockItemStore)
	entries := new(MockEntryWriter)
	alerts := new(MockAlertEvaluator)
	service := newTestService(items, entries, alerts)

	item := testItem(10)

	items.On("LockItem", mock.Anything, item.ID).Return(item, nil).Once()

	var inserted *models.LedgerEntry
	entries.On("InsertEntry", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		inserted = args.Get(1).(*models.LedgerEntry)
	}).Return(nil).Once()

	items.On("UpdateStockLevel", mock.Anything, item.ID, 6).Return(nil).Once()
	items.On("RefreshSellPrice", mock.Anything, item.ID, item.SellPrice).Return(nil).Once()
	alerts.On("Evaluate", mock.Anything).Return(nil, nil).Once()

	entry, newStock, err := service.ApplyMovement(models.MovementRequest{
		ItemID:   item.ID,
		Kind:     metadata.MovementOut,
		Quantity: 4,
		ActorID:  uuid.New(),
	})

	assert.NoError(t, err)
	assert.Equal(t, 6, newStock)
	assert.Equal(t, inserted, entry)
	assert.Equal(t, 10, entry.PreviousStock)
	assert.Equal(t, 6, entry.NewStock)
	assert.NotEmpty(t, entry.Code)
	// Unpriced out-movements fall back to the item's sell price.
	assert.True(t, entry.UnitPrice.Equal(item.SellPrice))
	assert.True(t, entry.TotalPrice.Equal(item.SellPrice.Mul(decimal.NewFromInt(4))))

	items.AssertExpectations(t)
	entries.AssertExpectations(t)
	alerts.AssertExpectations(t)
}

func TestApplyMovementInsufficientStockLeavesNoTrace(t *testing.T) {
	items := new(MockItemStore)
	entries := new(MockEntryWriter)
	alerts := new(MockAlertEvaluator)
	service := newTestService(items, entries, alerts)

	item := testItem(3)
	items.On("LockItem", mock.Anything, item.ID).Return(item, nil).Once()

	_, _, err := service.ApplyMovement(models.MovementRequest{
		ItemID:   item.ID,
		Kind:     metadata.MovementOut,
		Quantity: 5,
	})

	var stockErr *custom_error.InsufficientStockError
	assert.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 3, stockErr.Available)
	assert.Equal(t, 5, stockErr.Requested)

	entries.AssertNotCalled(t, "InsertEntry", mock.Anything, mock.Anything)
	items.AssertNotCalled(t, "UpdateStockLevel", mock.Anything, mock.Anything, mock.Anything)
	alerts.AssertNotCalled(t, "Evaluate", mock.Anything)
}

func TestApplyMovementInRefreshesBuyPriceOnlyWhenPriced(t *testing.T) {
	items := new(MockItemStore)
	entries := new(MockEntryWriter)
	alerts := new(MockAlertEvaluator)
	service := newTestService(items, entries, alerts)

	item := testItem(2)
	price := decimal.NewFromInt(90)

	items.On("LockItem", mock.Anything, item.ID).Return(item, nil)
	entries.On("InsertEntry", mock.Anything, mock.Anything).Return(nil)
	items.On("UpdateStockLevel", mock.Anything, item.ID, mock.Anything).Return(nil)
	items.On("RefreshBuyPrice", mock.Anything, item.ID, price).Return(nil).Once()
	alerts.On("Evaluate", mock.Anything).Return(nil, nil)

	_, newStock, err := service.ApplyMovement(models.MovementRequest{
		ItemID:    item.ID,
		Kind:      metadata.MovementIn,
		Quantity:  5,
		UnitPrice: &price,
	})
	assert.NoError(t, err)
	assert.Equal(t, 7, newStock)

	// An unpriced in-movement must not touch the item's prices.
	item.CurrentStock = 7
	_, _, err = service.ApplyMovement(models.MovementRequest{
		ItemID:   item.ID,
		Kind:     metadata.MovementIn,
		Quantity: 1,
	})
	assert.NoError(t, err)

	items.AssertNumberOfCalls(t, "RefreshBuyPrice", 1)
	items.AssertNotCalled(t, "RefreshSellPrice", mock.Anything, mock.Anything, mock.Anything)
}

func TestApplyMovementAdjustmentFollowsDirection(t *testing.T) {
	cases := []struct {
		name      string
		direction metadata.AdjustmentDirection
		expected  int
	}{
		{"increase", metadata.AdjustIncrease, 12},
		{"decrease", metadata.AdjustDecrease, 8},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			items := new(MockItemStore)
			entries := new(MockEntryWriter)
			alerts := new(MockAlertEvaluator)
			service := newTestService(items, entries, alerts)

			item := testItem(10)
			items.On("LockItem", mock.Anything, item.ID).Return(item, nil).Once()
			entries.On("InsertEntry", mock.Anything, mock.Anything).Return(nil).Once()
			items.On("UpdateStockLevel", mock.Anything, item.ID, tc.expected).Return(nil).Once()
			alerts.On("Evaluate", mock.Anything).Return(nil, nil).Once()

			entry, newStock, err := service.ApplyMovement(models.MovementRequest{
				ItemID:    item.ID,
				Kind:      metadata.MovementAdjustment,
				Quantity:  2,
				Direction: tc.direction,
			})

			assert.NoError(t, err)
			assert.Equal(t, tc.expected, newStock)
			assert.Equal(t, 2, entry.Quantity)
			items.AssertExpectations(t)
		})
	}
}

func TestApplyMovementRetriesCodeCollision(t *testing.T) {
	items := new(MockItemStore)
	entries := new(MockEntryWriter)
	alerts := new(MockAlertEvaluator)
	service := newTestService(items, entries, alerts)

	item := testItem(10)
	collision := &pq.Error{Code: "23505", Constraint: ledgerCodeConstraint}

	items.On("LockItem", mock.Anything, item.ID).Return(item, nil).Once()
	entries.On("InsertEntry", mock.Anything, mock.Anything).Return(collision).Twice()
	entries.On("InsertEntry", mock.Anything, mock.Anything).Return(nil).Once()
	items.On("UpdateStockLevel", mock.Anything, item.ID, 15).Return(nil).Once()
	alerts.On("Evaluate", mock.Anything).Return(nil, nil).Once()

	entry, _, err := service.ApplyMovement(models.MovementRequest{
		ItemID:   item.ID,
		Kind:     metadata.MovementIn,
		Quantity: 5,
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, entry.Code)
	entries.AssertNumberOfCalls(t, "InsertEntry", 3)
}

func TestApplyMovementGivesUpAfterExhaustedRetries(t *testing.T) {
	items := new(MockItemStore)
	entries := new(MockEntryWriter)
	alerts := new(MockAlertEvaluator)
	service := newTestService(items, entries, alerts)

	item := testItem(10)
	collision := &pq.Error{Code: "23505", Constraint: ledgerCodeConstraint}

	items.On("LockItem", mock.Anything, item.ID).Return(item, nil).Once()
	entries.On("InsertEntry", mock.Anything, mock.Anything).Return(collision).Times(codeRetryLimit)

	_, _, err := service.ApplyMovement(models.MovementRequest{
		ItemID:   item.ID,
		Kind:     metadata.MovementIn,
		Quantity: 5,
	})

	var dupErr *custom_error.DuplicateCodeError
	assert.ErrorAs(t, err, &dupErr)
	assert.Equal(t, codeRetryLimit, dupErr.Attempts)
	items.AssertNotCalled(t, "UpdateStockLevel", mock.Anything, mock.Anything, mock.Anything)
}

func TestApplyMovementSurvivesAlertFailure(t *testing.T) {
	items := new(MockItemStore)
	entries := new(MockEntryWriter)
	alerts := new(MockAlertEvaluator)
	service := newTestService(items, entries, alerts)

	item := testItem(10)
	items.On("LockItem", mock.Anything, item.ID).Return(item, nil).Once()
	entries.On("InsertEntry", mock.Anything, mock.Anything).Return(nil).Once()
	items.On("UpdateStockLevel", mock.Anything, item.ID, 4).Return(nil).Once()
	items.On("RefreshSellPrice", mock.Anything, item.ID, mock.Anything).Return(nil).Once()
	alerts.On("Evaluate", mock.Anything).Return(nil, errors.New("alert store down")).Once()

	_, newStock, err := service.ApplyMovement(models.MovementRequest{
		ItemID:   item.ID,
		Kind:     metadata.MovementOut,
		Quantity: 6,
	})

	assert.NoError(t, err)
	assert.Equal(t, 4, newStock)
}

func TestTransferRejectsSameItem(t *testing.T) {
	service := newTestService(new(MockItemStore), new(MockEntryWriter), new(MockAlertEvaluator))

	id := uuid.New()
	_, _, err := service.Transfer(models.TransferRequest{
		SourceItemID:      id,
		DestinationItemID: id,
		Quantity:          1,
	})

	assert.Error(t, err)
}

func TestTransferReportsCommittedSourceOnDestinationFailure(t *testing.T) {
	items := new(MockItemStore)
	entries := new(MockEntryWriter)
	alerts := new(MockAlertEvaluator)
	service := newTestService(items, entries, alerts)

	source := testItem(10)
	destinationID := uuid.New()

	items.On("LockItem", mock.Anything, source.ID).Return(source, nil).Once()
	entries.On("InsertEntry", mock.Anything, mock.Anything).Return(nil).Once()
	items.On("UpdateStockLevel", mock.Anything, source.ID, 7).Return(nil).Once()
	alerts.On("Evaluate", mock.Anything).Return(nil, nil).Once()

	items.On("LockItem", mock.Anything, destinationID).
		Return(nil, &custom_error.ItemNotFoundError{ItemID: destinationID}).Once()

	outEntry, inEntry, err := service.Transfer(models.TransferRequest{
		SourceItemID:      source.ID,
		DestinationItemID: destinationID,
		Quantity:          3,
	})

	assert.Error(t, err)
	assert.NotNil(t, outEntry)
	assert.Nil(t, inEntry)
	assert.Contains(t, err.Error(), outEntry.Code)
}

func TestTransferLinksDestinationToSourceCode(t *testing.T) {
	items := new(MockItemStore)
	entries := new(MockEntryWriter)
	alerts := new(MockAlertEvaluator)
	service := newTestService(items, entries, alerts)

	source := testItem(10)
	destination := testItem(1)

	items.On("LockItem", mock.Anything, source.ID).Return(source, nil).Once()
	items.On("LockItem", mock.Anything, destination.ID).Return(destination, nil).Once()
	entries.On("InsertEntry", mock.Anything, mock.Anything).Return(nil)
	items.On("UpdateStockLevel", mock.Anything, source.ID, 7).Return(nil).Once()
	items.On("UpdateStockLevel", mock.Anything, destination.ID, 4).Return(nil).Once()
	alerts.On("Evaluate", mock.Anything).Return(nil, nil)

	outEntry, inEntry, err := service.Transfer(models.TransferRequest{
		SourceItemID:      source.ID,
		DestinationItemID: destination.ID,
		Quantity:          3,
	})

	assert.NoError(t, err)
	assert.Equal(t, metadata.MovementTransfer, outEntry.Kind)
	assert.Equal(t, metadata.MovementIn, inEntry.Kind)
	assert.Equal(t, outEntry.Code, inEntry.Reference)
	assert.NotEqual(t, outEntry.Code, inEntry.Code)
}
