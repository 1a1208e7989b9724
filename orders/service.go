package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"nursery/config"
	"nursery/email"
	"nursery/models"
)

// ErrInsufficientStock is returned by product stores when a conditional
// decrement matched no document: the floor check lost against a concurrent
// checkout.
var ErrInsufficientStock = errors.New("insufficient stock")

type Deps struct {
	Orders        OrderStore
	Products      ProductStore
	Users         UserStore
	Notifications NotificationSink
	Mail          email.Sender
	Rules         config.Rules
	Log           *zap.Logger
	Now           func() time.Time
}

// Service owns the order lifecycle: creation with stock decrement, the
// pay/deliver/cancel/status mutations, queries and analytics.
type Service struct {
	orders   OrderStore
	products ProductStore
	users    UserStore
	notes    NotificationSink
	mail     email.Sender
	ledger   *Ledger
	rules    config.Rules
	log      *zap.Logger
	now      func() time.Time
	validate *validator.Validate
}

func NewService(d Deps) *Service {
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	return &Service{
		orders:   d.Orders,
		products: d.Products,
		users:    d.Users,
		notes:    d.Notifications,
		mail:     d.Mail,
		ledger:   NewLedger(d.Products, d.Log),
		rules:    d.Rules,
		log:      d.Log,
		now:      d.Now,
		validate: validator.New(),
	}
}

type OrderItemInput struct {
	Product  string  `json:"product"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Size     string  `json:"size"`
	Image    string  `json:"image"`
}

type PaymentDetailsInput struct {
	Number string `json:"number"`
}

type CreateOrderInput struct {
	UserID          string                  `json:"-"`
	IdempotencyKey  string                  `json:"-"`
	Items           []OrderItemInput        `json:"items"`
	ShippingAddress models.ShippingAddress  `json:"shippingAddress"`
	PaymentMethod   string                  `json:"paymentMethod"`
	PaymentDetails  *PaymentDetailsInput    `json:"paymentDetails"`
	UserDetails     models.OrderUserDetails `json:"userDetails"`
	Subtotal        float64                 `json:"subtotal"`
	ShippingFee     *float64                `json:"shippingFee"`
	Discount        float64                 `json:"discount"`
	CODCharges      float64                 `json:"codCharges"`
	TotalAmount     float64                 `json:"totalAmount"`
}

// Create runs the checkout. Preconditions are checked in a fixed order and
// the first failure wins; batch problems (invalid items, missing products,
// insufficient stock) are reported as whole lists, not one at a time.
//
// Stock is taken through the ledger's conditional decrement before the order
// document is written, with compensating restock if the write fails. The
// pre-check against the bulk lookup is advisory only; the floor check on the
// decrement is what actually prevents oversell. Notification, order-history
// append and the confirmation email run after the order is durable and are
// best effort.
func (s *Service) Create(ctx context.Context, in CreateOrderInput) (*models.Order, error) {
	userID, err := primitive.ObjectIDFromHex(in.UserID)
	if in.UserID == "" || err != nil {
		return nil, Unauthenticated("user authentication required")
	}

	if len(in.Items) == 0 {
		return nil, Validation("at least one order item is required")
	}

	var invalidItems []OrderItemInput
	for _, it := range in.Items {
		if it.Product == "" || it.Name == "" || it.Price <= 0 || it.Quantity < 1 ||
			!primitive.IsValidObjectID(it.Product) || !contains(s.rules.Sizes, it.Size) {
			invalidItems = append(invalidItems, it)
		}
	}
	if len(invalidItems) > 0 {
		return nil, Validation("some items are invalid or missing required fields").
			WithDetails(map[string]any{"invalidItems": invalidItems})
	}

	if in.ShippingAddress.Street == "" || in.ShippingAddress.City == "" || in.ShippingAddress.ZipCode == "" {
		return nil, Validation("complete shipping address is required")
	}

	var missingFields []string
	for field, value := range map[string]string{
		"firstName": in.UserDetails.FirstName,
		"lastName":  in.UserDetails.LastName,
		"email":     in.UserDetails.Email,
		"phone":     in.UserDetails.Phone,
	} {
		if value == "" {
			missingFields = append(missingFields, field)
		}
	}
	if len(missingFields) > 0 {
		return nil, Validation("complete user details are required").
			WithDetails(map[string]any{"missingFields": missingFields})
	}
	if err := s.validate.Var(in.UserDetails.Email, "required,email"); err != nil {
		return nil, Validation("invalid email format")
	}

	if !contains(s.rules.PaymentMethods, in.PaymentMethod) {
		return nil, Validation("invalid payment method")
	}
	if in.PaymentMethod != "cod" && (in.PaymentDetails == nil || in.PaymentDetails.Number == "") {
		return nil, Validation("payment details are required for selected payment method")
	}

	if in.Subtotal < 0 || in.Discount < 0 || in.CODCharges < 0 || in.TotalAmount < 0 ||
		(in.ShippingFee != nil && *in.ShippingFee < 0) {
		return nil, Validation("order amounts must not be negative")
	}

	// A replayed idempotency key returns the already-created order instead
	// of taking stock twice.
	if in.IdempotencyKey != "" {
		if existing, err := s.orders.FindByIdempotencyKey(ctx, in.IdempotencyKey); err != nil {
			return nil, Internal("failed to check idempotency key", err)
		} else if existing != nil {
			existing.ComputeReturnWindow()
			return existing, nil
		}
	}

	productIDs := make([]primitive.ObjectID, 0, len(in.Items))
	for _, it := range in.Items {
		oid, _ := primitive.ObjectIDFromHex(it.Product)
		productIDs = append(productIDs, oid)
	}
	plants, err := s.products.FindByIDs(ctx, productIDs)
	if err != nil {
		return nil, Internal("failed to look up products", err)
	}
	byID := make(map[primitive.ObjectID]models.Plant, len(plants))
	for _, p := range plants {
		byID[p.ID] = p
	}

	var missingProducts []string
	for _, id := range productIDs {
		if _, ok := byID[id]; !ok {
			missingProducts = append(missingProducts, id.Hex())
		}
	}
	if len(missingProducts) > 0 {
		return nil, Validation("some products not found").
			WithDetails(map[string]any{"missingProducts": missingProducts})
	}

	var insufficient []map[string]any
	for _, it := range in.Items {
		oid, _ := primitive.ObjectIDFromHex(it.Product)
		available := byID[oid].StockQuantity.Available(it.Size)
		if available < it.Quantity {
			insufficient = append(insufficient, map[string]any{
				"product":           it.Product,
				"name":              it.Name,
				"size":              it.Size,
				"requestedQuantity": it.Quantity,
				"availableQuantity": available,
			})
		}
	}
	if len(insufficient) > 0 {
		return nil, Validation("some items have insufficient stock").
			WithDetails(map[string]any{"items": insufficient})
	}

	now := s.now()
	order := &models.Order{
		ID:   primitive.NewObjectID(),
		User: userID,
		UserDetails: models.OrderUserDetails{
			FirstName: in.UserDetails.FirstName,
			LastName:  in.UserDetails.LastName,
			Email:     in.UserDetails.Email,
			Phone:     in.UserDetails.Phone,
		},
		Items:           make([]models.OrderItem, 0, len(in.Items)),
		ShippingAddress: in.ShippingAddress,
		PaymentMethod:   in.PaymentMethod,
		Subtotal:        in.Subtotal,
		ShippingFee:     s.rules.DefaultShippingFee,
		Discount:        in.Discount,
		CODCharges:      in.CODCharges,
		TotalAmount:     in.TotalAmount,
		Status:          models.OrderPending,
		IsPaid:          false,
		IdempotencyKey:  in.IdempotencyKey,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if in.ShippingFee != nil {
		order.ShippingFee = *in.ShippingFee
	}
	if order.ShippingAddress.Country == "" {
		order.ShippingAddress.Country = s.rules.DefaultCountry
	}
	if in.PaymentMethod != "cod" {
		order.PaymentDetails = models.PaymentDetails{
			Number: in.PaymentDetails.Number,
			Status: "pending",
		}
	}
	for _, it := range in.Items {
		oid, _ := primitive.ObjectIDFromHex(it.Product)
		order.Items = append(order.Items, models.OrderItem{
			Product:  oid,
			Name:     it.Name,
			Price:    it.Price,
			Quantity: it.Quantity,
			Size:     it.Size,
			Image:    it.Image,
		})
	}

	applied, err := s.ledger.Apply(ctx, order.Items, DirectionSubtract)
	if err != nil {
		s.ledger.Restock(ctx, applied)
		if errors.Is(err, ErrInsufficientStock) {
			return nil, Conflict("stock changed during checkout, please retry")
		}
		return nil, Internal("failed to update stock", err)
	}

	if err := s.orders.Insert(ctx, order); err != nil {
		s.ledger.Restock(ctx, order.Items)
		return nil, Internal("failed to create order", err)
	}

	if err := s.notes.Notify(ctx, "New Order Received",
		fmt.Sprintf("New order #%s received from %s %s",
			order.ID.Hex(), order.UserDetails.FirstName, order.UserDetails.LastName),
		"order"); err != nil {
		s.log.Warn("order notification failed", zap.String("order", order.ID.Hex()), zap.Error(err))
	}
	if err := s.users.AppendOrder(ctx, userID, order.ID); err != nil {
		s.log.Warn("order history append failed", zap.String("order", order.ID.Hex()), zap.Error(err))
	}
	s.sendEmail(email.TemplateConfirmation, order)

	order.ComputeReturnWindow()
	return order, nil
}

type PaymentUpdateInput struct {
	TransactionID string  `json:"transactionId"`
	PaidAmount    float64 `json:"paidAmount"`
}

// MarkPaid flips the billing state only. Inventory already left at checkout,
// so payment never touches the ledger.
func (s *Service) MarkPaid(ctx context.Context, id string, in PaymentUpdateInput) (*models.Order, error) {
	order, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.IsPaid {
		return nil, Conflict("order is already paid")
	}

	now := s.now()
	order.IsPaid = true
	order.PaidAt = &now
	order.PaymentDetails.Status = "completed"
	order.PaymentDetails.TransactionID = in.TransactionID
	order.PaymentDetails.Method = order.PaymentMethod
	order.PaymentDetails.PaidAmount = in.PaidAmount
	if order.PaymentDetails.PaidAmount == 0 {
		order.PaymentDetails.PaidAmount = order.TotalAmount
	}
	order.UpdatedAt = now

	if err := s.orders.Save(ctx, order); err != nil {
		return nil, Internal("failed to update payment status", err)
	}

	s.sendEmail(email.TemplatePayment, order)
	order.ComputeReturnWindow()
	return order, nil
}

// MarkDelivered moves the order to delivered, keeping the convenience flags
// in lockstep with the status field.
func (s *Service) MarkDelivered(ctx context.Context, id, trackingNumber string) (*models.Order, error) {
	order, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ValidateStatusChange(s.rules.Transitions, order.Status, models.OrderDelivered) {
		return nil, Conflict(fmt.Sprintf("cannot mark order as delivered from %s status", order.Status))
	}

	now := s.now()
	order.Status = models.OrderDelivered
	order.IsDelivered = true
	order.DeliveredAt = &now
	if trackingNumber != "" {
		order.TrackingNumber = trackingNumber
	}
	order.UpdatedAt = now

	if err := s.orders.Save(ctx, order); err != nil {
		return nil, Internal("failed to update delivery status", err)
	}

	s.sendEmail(email.TemplateDelivered, order)
	order.ComputeReturnWindow()
	return order, nil
}

// Cancel is allowed to the order's owner or an admin. Paid orders get their
// stock restored through the ledger; the restock path does not re-validate
// bounds, trusting the originating transition.
func (s *Service) Cancel(ctx context.Context, id, requesterID string, isAdmin bool, reason string) (*models.Order, error) {
	order, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.User.Hex() != requesterID && !isAdmin {
		return nil, Forbidden("not authorized to cancel this order")
	}
	if !ValidateStatusChange(s.rules.Transitions, order.Status, models.OrderCancelled) {
		return nil, Conflict(fmt.Sprintf("order in %s status cannot be cancelled", order.Status))
	}

	if order.IsPaid {
		if _, err := s.ledger.Apply(ctx, order.Items, DirectionAdd); err != nil {
			return nil, Internal("failed to restore stock", err)
		}
	}

	now := s.now()
	order.Status = models.OrderCancelled
	order.CancelledAt = &now
	if by, err := primitive.ObjectIDFromHex(requesterID); err == nil {
		order.CancelledBy = by
	}
	order.CancellationReason = reason
	if order.CancellationReason == "" {
		order.CancellationReason = s.rules.DefaultCancelNote
	}
	order.UpdatedAt = now

	if err := s.orders.Save(ctx, order); err != nil {
		return nil, Internal("failed to cancel order", err)
	}

	s.sendEmail(email.TemplateCancellation, order)
	order.ComputeReturnWindow()
	return order, nil
}

type TrackingInput struct {
	Number  string `json:"trackingNumber"`
	Company string `json:"trackingCompany"`
	URL     string `json:"trackingUrl"`
}

// SetStatus is the admin's generic transition. Delivered sets the lockstep
// flags, shipped merges tracking details, notes merge whenever present.
// Only shipped, delivered and processing notify the buyer.
func (s *Service) SetStatus(ctx context.Context, id string, status models.OrderStatus, tracking TrackingInput, notes string) (*models.Order, error) {
	if !KnownStatus(status) {
		return nil, Validation("invalid status value")
	}
	order, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ValidateStatusChange(s.rules.Transitions, order.Status, status) {
		return nil, Conflict(fmt.Sprintf("cannot change status from %s to %s", order.Status, status))
	}

	now := s.now()
	order.Status = status
	switch status {
	case models.OrderDelivered:
		order.IsDelivered = true
		order.DeliveredAt = &now
	case models.OrderShipped:
		if tracking.Number != "" {
			order.TrackingNumber = tracking.Number
		}
		if tracking.Company != "" {
			order.TrackingCompany = tracking.Company
		}
		if tracking.URL != "" {
			order.TrackingURL = tracking.URL
		}
	}
	if notes != "" {
		order.Notes = notes
	}
	order.UpdatedAt = now

	if err := s.orders.Save(ctx, order); err != nil {
		return nil, Internal("failed to update order status", err)
	}

	switch status {
	case models.OrderShipped, models.OrderDelivered, models.OrderProcessing:
		s.sendEmail(string(status), order)
	}

	order.ComputeReturnWindow()
	return order, nil
}

// fetch loads an order by hex id, translating a malformed id or a missing
// document into the client-facing taxonomy.
func (s *Service) fetch(ctx context.Context, id string) (*models.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, Validation("invalid order id")
	}
	order, err := s.orders.FindByID(ctx, oid)
	if err != nil {
		return nil, Internal("failed to fetch order", err)
	}
	if order == nil {
		return nil, NotFound("order not found")
	}
	return order, nil
}

func (s *Service) sendEmail(template string, order *models.Order) {
	if err := s.mail.Send(template, order.UserDetails.Email, order); err != nil {
		s.log.Warn("order email failed",
			zap.String("order", order.ID.Hex()),
			zap.String("template", template),
			zap.Error(err))
	}
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
