package orders

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"nursery/models"
)

func TestLedgerSubtractAndAdd(t *testing.T) {
	products := newFakeProductStore()
	fern := products.addPlant("Fern", models.SizeStock{Small: 5})
	ledger := NewLedger(products, zap.NewNop())

	items := []models.OrderItem{{Product: fern, Size: "small", Quantity: 3}}

	applied, err := ledger.Apply(context.Background(), items, DirectionSubtract)
	require.NoError(t, err)
	assert.Len(t, applied, 1)
	assert.Equal(t, 2, products.stock[stockKey{fern, "small"}])
	// Subtracts carry the non-negative floor, adds do not.
	require.Len(t, products.adjustments, 1)
	assert.True(t, products.adjustments[0].floor)
	assert.Equal(t, -3, products.adjustments[0].delta)

	_, err = ledger.Apply(context.Background(), items, DirectionAdd)
	require.NoError(t, err)
	assert.Equal(t, 5, products.stock[stockKey{fern, "small"}])
	assert.False(t, products.adjustments[1].floor)
}

func TestLedgerStopsAtFirstFailure(t *testing.T) {
	products := newFakeProductStore()
	fern := products.addPlant("Fern", models.SizeStock{Small: 5})
	rose := products.addPlant("Rose", models.SizeStock{Large: 1})
	lily := products.addPlant("Lily", models.SizeStock{Medium: 4})
	ledger := NewLedger(products, zap.NewNop())

	items := []models.OrderItem{
		{Product: fern, Size: "small", Quantity: 2},
		{Product: rose, Size: "large", Quantity: 3},
		{Product: lily, Size: "medium", Quantity: 1},
	}

	applied, err := ledger.Apply(context.Background(), items, DirectionSubtract)
	require.ErrorIs(t, err, ErrInsufficientStock)

	// Only the first item went through; the third was never attempted.
	require.Len(t, applied, 1)
	assert.Equal(t, fern, applied[0].Product)
	assert.Equal(t, 3, products.stock[stockKey{fern, "small"}])
	assert.Equal(t, 1, products.stock[stockKey{rose, "large"}])
	assert.Equal(t, 4, products.stock[stockKey{lily, "medium"}])

	ledger.Restock(context.Background(), applied)
	assert.Equal(t, 5, products.stock[stockKey{fern, "small"}])
}

func TestLedgerRestockSkipsFailedItems(t *testing.T) {
	products := newFakeProductStore()
	fern := products.addPlant("Fern", models.SizeStock{Small: 1})
	rose := products.addPlant("Rose", models.SizeStock{Large: 1})
	ledger := NewLedger(products, zap.NewNop())

	// The first restock fails; the second must still be applied.
	key := stockKey{fern, "small"}
	products.failKey = &key
	products.failAdds = true

	ledger.Restock(context.Background(), []models.OrderItem{
		{Product: fern, Size: "small", Quantity: 2},
		{Product: rose, Size: "large", Quantity: 2},
	})
	assert.Equal(t, 3, products.stock[stockKey{rose, "large"}])
	assert.Equal(t, 1, products.stock[stockKey{fern, "small"}])
}
