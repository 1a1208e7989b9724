package orders

import (
	"context"

	"go.uber.org/zap"

	"nursery/models"
)

type Direction string

const (
	DirectionAdd      Direction = "add"
	DirectionSubtract Direction = "subtract"
)

// Ledger adjusts per-size stock counters in response to order events. It is
// the only component that mutates plant stock on behalf of orders.
type Ledger struct {
	products ProductStore
	log      *zap.Logger
}

func NewLedger(products ProductStore, log *zap.Logger) *Ledger {
	return &Ledger{products: products, log: log}
}

// Apply increments (add) or decrements (subtract) the size-keyed stock
// counter of every line item's plant by the item quantity. The subtract path
// uses the store's conditional form so a counter can never go negative, even
// when two checkouts race past the advisory pre-check.
//
// It stops at the first failing item and returns the items already applied;
// there is no partial-application guarantee, the caller compensates with
// Restock when it needs all-or-nothing semantics.
func (l *Ledger) Apply(ctx context.Context, items []models.OrderItem, dir Direction) ([]models.OrderItem, error) {
	applied := make([]models.OrderItem, 0, len(items))
	for _, it := range items {
		delta := it.Quantity
		floor := false
		if dir == DirectionSubtract {
			delta = -it.Quantity
			floor = true
		}
		if err := l.products.AdjustStock(ctx, it.Product, it.Size, delta, floor); err != nil {
			return applied, err
		}
		applied = append(applied, it)
	}
	return applied, nil
}

// Restock is the compensating inverse of a partial subtract. Best effort:
// a plant that vanished mid-flight is logged and skipped so the remaining
// items still get their stock back.
func (l *Ledger) Restock(ctx context.Context, items []models.OrderItem) {
	for _, it := range items {
		if err := l.products.AdjustStock(ctx, it.Product, it.Size, it.Quantity, false); err != nil {
			l.log.Error("stock compensation failed",
				zap.String("product", it.Product.Hex()),
				zap.String("size", it.Size),
				zap.Int("quantity", it.Quantity),
				zap.Error(err))
		}
	}
}
