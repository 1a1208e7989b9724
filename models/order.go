package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderConfirmed  OrderStatus = "confirmed"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
	OrderRefunded   OrderStatus = "refunded"
)

// ReturnWindowDays is how long after delivery an order can still be returned.
const ReturnWindowDays = 7

// OrderUserDetails is a snapshot of the buyer at order time. It is frozen on
// creation and never follows later edits to the user record.
type OrderUserDetails struct {
	FirstName string `bson:"firstName" json:"firstName"`
	LastName  string `bson:"lastName" json:"lastName"`
	Email     string `bson:"email" json:"email"`
	Phone     string `bson:"phone" json:"phone"`
}

// OrderItem carries the price at order time, not the live plant price.
type OrderItem struct {
	Product  primitive.ObjectID `bson:"product" json:"product"`
	Name     string             `bson:"name" json:"name"`
	Price    float64            `bson:"price" json:"price"`
	Quantity int                `bson:"quantity" json:"quantity"`
	Size     string             `bson:"size" json:"size"`
	Image    string             `bson:"image,omitempty" json:"image,omitempty"`
}

type ShippingAddress struct {
	Street  string `bson:"street" json:"street"`
	City    string `bson:"city" json:"city"`
	ZipCode string `bson:"zipCode" json:"zipCode"`
	Country string `bson:"country" json:"country"`
}

// PaymentDetails.Number is write-only: stored for non-COD methods but never
// serialized back to clients.
type PaymentDetails struct {
	Number        string  `bson:"number,omitempty" json:"-"`
	TransactionID string  `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
	Status        string  `bson:"status,omitempty" json:"status,omitempty"`
	Method        string  `bson:"method,omitempty" json:"method,omitempty"`
	PaidAmount    float64 `bson:"paidAmount,omitempty" json:"paidAmount,omitempty"`
}

type Order struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User               primitive.ObjectID `bson:"user" json:"user"`
	UserDetails        OrderUserDetails   `bson:"userDetails" json:"userDetails"`
	Items              []OrderItem        `bson:"items" json:"items"`
	ShippingAddress    ShippingAddress    `bson:"shippingAddress" json:"shippingAddress"`
	PaymentMethod      string             `bson:"paymentMethod" json:"paymentMethod"`
	PaymentDetails     PaymentDetails     `bson:"paymentDetails" json:"paymentDetails"`
	Subtotal           float64            `bson:"subtotal" json:"subtotal"`
	ShippingFee        float64            `bson:"shippingFee" json:"shippingFee"`
	Discount           float64            `bson:"discount" json:"discount"`
	CODCharges         float64            `bson:"codCharges" json:"codCharges"`
	TotalAmount        float64            `bson:"totalAmount" json:"totalAmount"`
	Status             OrderStatus        `bson:"status" json:"status"`
	IsPaid             bool               `bson:"isPaid" json:"isPaid"`
	PaidAt             *time.Time         `bson:"paidAt,omitempty" json:"paidAt,omitempty"`
	IsDelivered        bool               `bson:"isDelivered" json:"isDelivered"`
	DeliveredAt        *time.Time         `bson:"deliveredAt,omitempty" json:"deliveredAt,omitempty"`
	CancelledAt        *time.Time         `bson:"cancelledAt,omitempty" json:"cancelledAt,omitempty"`
	CancelledBy        primitive.ObjectID `bson:"cancelledBy,omitempty" json:"cancelledBy,omitempty"`
	CancellationReason string             `bson:"cancellationReason,omitempty" json:"cancellationReason,omitempty"`
	TrackingNumber     string             `bson:"trackingNumber,omitempty" json:"trackingNumber,omitempty"`
	TrackingCompany    string             `bson:"trackingCompany,omitempty" json:"trackingCompany,omitempty"`
	TrackingURL        string             `bson:"trackingUrl,omitempty" json:"trackingUrl,omitempty"`
	Notes              string             `bson:"notes,omitempty" json:"notes,omitempty"`
	IdempotencyKey     string             `bson:"idempotencyKey,omitempty" json:"-"`
	CreatedAt          time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time          `bson:"updatedAt" json:"updatedAt"`

	// Derived, never stored.
	ReturnWindowExpires *time.Time `bson:"-" json:"returnWindowExpires,omitempty"`
}

// ComputeReturnWindow fills the derived return-window field. Nil while the
// order is undelivered.
func (o *Order) ComputeReturnWindow() {
	if o.DeliveredAt == nil {
		o.ReturnWindowExpires = nil
		return
	}
	t := o.DeliveredAt.Add(ReturnWindowDays * 24 * time.Hour)
	o.ReturnWindowExpires = &t
}
