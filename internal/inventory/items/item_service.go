package items

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/rakuszz0/Inventory/pkg/metadata"
	"github.com/rakuszz0/Inventory/pkg/models"
)

// MovementApplier is the ledger service as seen from item creation. The
// opening stock of a new item goes through it so that the quantity
// invariant holds from the first observable state.
type MovementApplier interface {
	ApplyMovement(req models.MovementRequest) (*models.LedgerEntry, int, error)
}

type ItemStore interface {
	PersistItem(req ItemRequest, createdBy uuid.UUID) (*models.StockItem, error)
	GetItem(id uuid.UUID) (*models.StockItem, error)
}

type ItemService struct {
	store  ItemStore
	ledger MovementApplier
}

func NewItemService(store ItemStore, ledger MovementApplier) *ItemService {
	return &ItemService{store: store, ledger: ledger}
}

// CreateItem registers the item at stock zero and, when an initial
// quantity was supplied, applies an opening in-movement for it.
func (s *ItemService) CreateItem(req ItemRequest, actorID uuid.UUID) (*models.StockItem, error) {
	item, err := s.store.PersistItem(req, actorID)
	if err != nil {
		return nil, err
	}

	if req.InitialStock > 0 {
		unitPrice := req.BuyPrice
		_, newStock, err := s.ledger.ApplyMovement(models.MovementRequest{
			ItemID:    item.ID,
			Kind:      metadata.MovementIn,
			Quantity:  req.InitialStock,
			UnitPrice: &unitPrice,
			Reference: "OPENING-STOCK",
			Notes:     "Initial stock on item creation",
			ActorID:   actorID,
		})
		if err != nil {
			return nil, fmt.Errorf("item created but opening stock movement failed: %w", err)
		}
		item.CurrentStock = newStock
	}

	return item, nil
}
