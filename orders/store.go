package orders

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"nursery/models"
)

// ListFilter narrows the admin order listing. Zero values mean "no filter".
type ListFilter struct {
	User      primitive.ObjectID
	Status    models.OrderStatus
	StartDate *time.Time
	EndDate   *time.Time
	Search    string
}

// OrderStore persists order aggregates.
type OrderStore interface {
	Insert(ctx context.Context, o *models.Order) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	FindByIdempotencyKey(ctx context.Context, key string) (*models.Order, error)
	// Save writes back a mutated aggregate. Last write wins; status-change
	// races are an accepted limitation.
	Save(ctx context.Context, o *models.Order) error
	Find(ctx context.Context, f ListFilter, page, limit int) ([]models.Order, int64, error)
	All(ctx context.Context) ([]models.Order, error)
}

// ProductStore is the narrow slice of the plant catalog the order subsystem
// consumes: bulk lookup plus atomic per-size stock adjustment.
type ProductStore interface {
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Plant, error)
	// AdjustStock applies an atomic $inc of delta to stockQuantity.<size>.
	// With enforceFloor set, the update only matches when the resulting
	// counter stays non-negative; no match is returned as an error.
	AdjustStock(ctx context.Context, id primitive.ObjectID, size string, delta int, enforceFloor bool) error
	Count(ctx context.Context) (int64, error)
}

// UserStore covers the order subsystem's touchpoints with user records.
type UserStore interface {
	AppendOrder(ctx context.Context, userID, orderID primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
}

// NotificationSink records an admin-facing notification. Implementations may
// also fan out to live listeners.
type NotificationSink interface {
	Notify(ctx context.Context, title, message, kind string) error
}
