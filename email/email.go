package email

import (
	"fmt"

	"go.uber.org/zap"

	"nursery/models"
)

// Template names accepted by Send. They mirror the order lifecycle events
// that notify the buyer.
const (
	TemplateConfirmation = "confirmation"
	TemplatePayment      = "payment"
	TemplateProcessing   = "processing"
	TemplateShipped      = "shipped"
	TemplateDelivered    = "delivered"
	TemplateCancellation = "cancellation"
)

// Sender delivers an order lifecycle email. Failures are always recovered by
// the caller: an email must never fail or roll back an order mutation.
type Sender interface {
	Send(template, recipient string, order *models.Order) error
}

// Body renders the message for a template. Unknown templates get a generic
// status line so a new lifecycle event never breaks sending.
func Body(template string, o *models.Order) string {
	id := o.ID.Hex()
	switch template {
	case TemplateConfirmation:
		return fmt.Sprintf("Your order #%s has been confirmed", id)
	case TemplatePayment:
		return fmt.Sprintf("Payment received for order #%s (total %.2f)", id, o.TotalAmount)
	case TemplateProcessing:
		return fmt.Sprintf("Order #%s is being prepared", id)
	case TemplateShipped:
		return fmt.Sprintf("Order #%s has been shipped (Tracking: %s)", id, o.TrackingNumber)
	case TemplateDelivered:
		return fmt.Sprintf("Order #%s was delivered", id)
	case TemplateCancellation:
		return fmt.Sprintf("Order #%s was cancelled: %s", id, o.CancellationReason)
	default:
		return fmt.Sprintf("Order #%s status: %s", id, o.Status)
	}
}

// ServiceSender delivers the confirmation for a garden service booking.
// Like order mail it is best effort and never fails the request.
type ServiceSender interface {
	SendServiceRequest(recipient string, req *models.ServiceRequest) error
}

// ServiceRequestBody renders the booking confirmation.
func ServiceRequestBody(r *models.ServiceRequest) string {
	return fmt.Sprintf("Thank you %s, your %s request for %s (%s) was received. Our team will contact you within 24-48 hours.",
		r.FullName, r.ServiceType, r.PreferredDate.Format("Monday, January 2, 2006"), r.PreferredTime)
}

// LogSender writes the rendered email to the log instead of an SMTP relay.
// Real delivery is out of scope; everything upstream only sees the Sender
// interface.
type LogSender struct {
	log *zap.Logger
}

func NewLogSender(log *zap.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) SendServiceRequest(recipient string, req *models.ServiceRequest) error {
	s.log.Info("service request email",
		zap.String("recipient", recipient),
		zap.String("body", ServiceRequestBody(req)))
	return nil
}

func (s *LogSender) Send(template, recipient string, order *models.Order) error {
	s.log.Info("order email",
		zap.String("template", template),
		zap.String("recipient", recipient),
		zap.String("body", Body(template, order)))
	return nil
}
