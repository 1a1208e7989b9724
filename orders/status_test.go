package orders

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"nursery/config"
	"nursery/models"
)

func TestValidateStatusChange(t *testing.T) {
	table := config.DefaultRules().Transitions

	allowed := map[models.OrderStatus][]models.OrderStatus{
		models.OrderPending:    {models.OrderProcessing, models.OrderCancelled},
		models.OrderProcessing: {models.OrderShipped, models.OrderCancelled},
		models.OrderShipped:    {models.OrderDelivered, models.OrderCancelled},
		models.OrderDelivered:  {models.OrderRefunded},
		models.OrderCancelled:  {},
		models.OrderRefunded:   {},
	}

	statuses := []models.OrderStatus{
		models.OrderPending, models.OrderProcessing, models.OrderShipped,
		models.OrderDelivered, models.OrderCancelled, models.OrderRefunded,
	}

	for _, from := range statuses {
		for _, to := range statuses {
			want := false
			for _, next := range allowed[from] {
				if next == to {
					want = true
				}
			}
			got := ValidateStatusChange(table, from, to)
			assert.Equal(t, want, got, "%s -> %s", from, to)
		}
	}
}

func TestValidateStatusChangeRejectsSelfTransition(t *testing.T) {
	table := config.DefaultRules().Transitions
	assert.False(t, ValidateStatusChange(table, models.OrderPending, models.OrderPending))
}

func TestValidateStatusChangeUnknownFrom(t *testing.T) {
	table := config.DefaultRules().Transitions
	assert.False(t, ValidateStatusChange(table, "mystery", models.OrderCancelled))
}

func TestKnownStatus(t *testing.T) {
	assert.True(t, KnownStatus(models.OrderPending))
	assert.True(t, KnownStatus(models.OrderRefunded))
	assert.False(t, KnownStatus("mystery"))
	assert.False(t, KnownStatus(""))
}
