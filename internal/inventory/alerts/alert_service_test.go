package alerts

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	custom_error "github.com/rakuszz0/Inventory/pkg/errors"
	"github.com/rakuszz0/Inventory/pkg/metadata"
	"github.com/rakuszz0/Inventory/pkg/models"
)

type MockAlertStore struct {
	mock.Mock
}

func (m *MockAlertStore) InsertAlert(alert *models.StockAlert) error {
	args := m.Called(alert)
	return args.Error(0)
}

func (m *MockAlertStore) HasRecentUnread(itemID uuid.UUID, kind metadata.AlertKind, since time.Time) (bool, error) {
	args := m.Called(itemID, kind, since)
	return args.Bool(0), args.Error(1)
}

func (m *MockAlertStore) MarkRead(id uuid.UUID, actorID uuid.UUID, readAt time.Time) (*models.StockAlert, error) {
	args := m.Called(id, actorID, readAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StockAlert), args.Error(1)
}

type MockItemLister struct {
	mock.Mock
}

func (m *MockItemLister) GetActiveItems(warehouseID *uuid.UUID, limit int) (*[]models.StockItem, error) {
	args := m.Called(warehouseID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*[]models.StockItem), args.Error(1)
}

func newAlertTestService(store *MockAlertStore, items *MockItemLister) *AlertService {
	return NewAlertService(store, items, zap.NewNop())
}

func snapshot(stock, minStock int, maxStock *int) *models.StockItem {
	return &models.StockItem{
		ID:           uuid.New(),
		SKU:          "SKU-010",
		Name:         "Packing tape",
		CurrentStock: stock,
		MinStock:     minStock,
		MaxStock:     maxStock,
		IsActive:     true,
	}
}

func intPtr(v int) *int { return &v }

func TestEvaluateClassification(t *testing.T) {
	cases := []struct {
		name      string
		stock     int
		minStock  int
		maxStock  *int
		kind      metadata.AlertKind
		threshold int
		raised    bool
	}{
		{"out of stock", 0, 5, nil, metadata.AlertOutOfStock, 0, true},
		{"low stock at threshold", 5, 5, nil, metadata.AlertLowStock, 5, true},
		{"low stock below threshold", 2, 5, nil, metadata.AlertLowStock, 5, true},
		{"normal", 6, 5, nil, "", 0, false},
		{"over stock at maximum", 100, 5, intPtr(100), metadata.AlertOverStock, 100, true},
		{"below maximum", 99, 5, intPtr(100), "", 0, false},
		// Out of stock wins over low stock for a zero snapshot.
		{"zero stock with min zero", 0, 0, nil, metadata.AlertOutOfStock, 0, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := new(MockAlertStore)
			service := newAlertTestService(store, new(MockItemLister))
			item := snapshot(tc.stock, tc.minStock, tc.maxStock)

			if tc.raised {
				store.On("HasRecentUnread", item.ID, tc.kind, mock.Anything).Return(false, nil).Once()
				store.On("InsertAlert", mock.Anything).Return(nil).Once()
			}

			alert, err := service.Evaluate(item)
			assert.NoError(t, err)

			if !tc.raised {
				assert.Nil(t, alert)
				store.AssertNotCalled(t, "InsertAlert", mock.Anything)
				return
			}

			assert.Equal(t, tc.kind, alert.Kind)
			assert.Equal(t, tc.threshold, alert.Threshold)
			assert.Equal(t, tc.stock, alert.CurrentStock)
			assert.NotEmpty(t, alert.Message)
			store.AssertExpectations(t)
		})
	}
}

func TestEvaluateSuppressesRecentUnreadDuplicate(t *testing.T) {
	store := new(MockAlertStore)
	service := newAlertTestService(store, new(MockItemLister))
	item := snapshot(0, 5, nil)

	store.On("HasRecentUnread", item.ID, metadata.AlertOutOfStock, mock.Anything).Return(true, nil).Once()

	alert, err := service.Evaluate(item)

	assert.NoError(t, err)
	assert.Nil(t, alert)
	store.AssertNotCalled(t, "InsertAlert", mock.Anything)
}

func TestEvaluateDedupWindowBound(t *testing.T) {
	store := new(MockAlertStore)
	service := newAlertTestService(store, new(MockItemLister))
	item := snapshot(2, 5, nil)

	var since time.Time
	store.On("HasRecentUnread", item.ID, metadata.AlertLowStock, mock.Anything).
		Run(func(args mock.Arguments) {
			since = args.Get(2).(time.Time)
		}).Return(false, nil).Once()
	store.On("InsertAlert", mock.Anything).Return(nil).Once()

	_, err := service.Evaluate(item)
	assert.NoError(t, err)

	assert.WithinDuration(t, time.Now().UTC().Add(-dedupWindow), since, 5*time.Second)
}

func TestEvaluateWarehouseCountsRaisedAlerts(t *testing.T) {
	store := new(MockAlertStore)
	items := new(MockItemLister)
	service := newAlertTestService(store, items)

	list := []models.StockItem{
		*snapshot(0, 5, nil),  // raises out_of_stock
		*snapshot(3, 5, nil),  // raises low_stock
		*snapshot(20, 5, nil), // normal
	}
	items.On("GetActiveItems", (*uuid.UUID)(nil), 1000).Return(&list, nil).Once()
	store.On("HasRecentUnread", mock.Anything, mock.Anything, mock.Anything).Return(false, nil)
	store.On("InsertAlert", mock.Anything).Return(nil)

	raised, err := service.EvaluateWarehouse(nil)

	assert.NoError(t, err)
	assert.Equal(t, 2, raised)
}

func TestEvaluateWarehouseContinuesPastFailures(t *testing.T) {
	store := new(MockAlertStore)
	items := new(MockItemLister)
	service := newAlertTestService(store, items)

	broken := snapshot(0, 5, nil)
	healthy := snapshot(1, 5, nil)
	list := []models.StockItem{*broken, *healthy}

	items.On("GetActiveItems", (*uuid.UUID)(nil), 1000).Return(&list, nil).Once()
	store.On("HasRecentUnread", broken.ID, mock.Anything, mock.Anything).Return(false, errors.New("store unavailable")).Once()
	store.On("HasRecentUnread", healthy.ID, mock.Anything, mock.Anything).Return(false, nil).Once()
	store.On("InsertAlert", mock.Anything).Return(nil).Once()

	raised, err := service.EvaluateWarehouse(nil)

	assert.NoError(t, err)
	assert.Equal(t, 1, raised)
}

func TestMarkAlertsReadSkipsMissing(t *testing.T) {
	store := new(MockAlertStore)
	service := newAlertTestService(store, new(MockItemLister))
	actorID := uuid.New()

	existing := uuid.New()
	missing := uuid.New()

	read := &models.StockAlert{ID: existing, IsRead: true, ReadBy: &actorID}
	store.On("MarkRead", existing, actorID, mock.Anything).Return(read, nil).Once()
	store.On("MarkRead", missing, actorID, mock.Anything).
		Return(nil, &custom_error.AlertNotFoundError{AlertID: missing}).Once()

	updated, err := service.MarkAlertsRead([]uuid.UUID{existing, missing}, actorID)

	assert.NoError(t, err)
	assert.Len(t, updated, 1)
	assert.Equal(t, existing, updated[0].ID)
	store.AssertExpectations(t)
}
