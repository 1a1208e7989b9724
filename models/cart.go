package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// A cart line is keyed by (product, size): the same plant in two sizes is two
// separate lines.
type CartItem struct {
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	Name      string             `bson:"name" json:"name"`
	Price     float64            `bson:"price" json:"price"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	Size      string             `bson:"size" json:"size"`
	Image     string             `bson:"image,omitempty" json:"image,omitempty"`
}

type Cart struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID     primitive.ObjectID `bson:"userId" json:"userId"`
	Items      []CartItem         `bson:"items" json:"items"`
	TotalPrice float64            `bson:"totalPrice" json:"totalPrice"`
	TotalItems int                `bson:"totalItems" json:"totalItems"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Recalculate refreshes the cart totals from its lines.
func (c *Cart) Recalculate() {
	c.TotalPrice = 0
	c.TotalItems = 0
	for _, it := range c.Items {
		c.TotalPrice += it.Price * float64(it.Quantity)
		c.TotalItems += it.Quantity
	}
}
