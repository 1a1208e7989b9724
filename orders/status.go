package orders

import "nursery/models"

// ValidateStatusChange reports whether moving an order from one status to
// another is a legal edge in the transition table. Self-transitions and
// anything out of a terminal state are rejected because no table entry lists
// them.
func ValidateStatusChange(table map[models.OrderStatus][]models.OrderStatus, from, to models.OrderStatus) bool {
	for _, next := range table[from] {
		if next == to {
			return true
		}
	}
	return false
}

// KnownStatus reports whether the value is one of the seven order states.
func KnownStatus(s models.OrderStatus) bool {
	switch s {
	case models.OrderPending, models.OrderConfirmed, models.OrderProcessing,
		models.OrderShipped, models.OrderDelivered, models.OrderCancelled,
		models.OrderRefunded:
		return true
	}
	return false
}
