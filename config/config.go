package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"nursery/models"
)

// LoadEnv reads .env if present. Missing file is fine in deployed
// environments where everything comes from real env vars.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment variables")
	}
}

func GetEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Rules is the immutable business-rule configuration built once at process
// start and handed to the services and handlers that validate against it.
type Rules struct {
	Transitions        map[models.OrderStatus][]models.OrderStatus
	Sizes              []string
	PaymentMethods     []string
	ServiceTypes       []string
	ServiceTimeSlots   []string
	ServiceStatuses    []string
	DefaultShippingFee float64
	DefaultCountry     string
	DefaultCancelNote  string
}

// DefaultRules returns a fresh copy so callers cannot alias and mutate a
// shared table.
func DefaultRules() Rules {
	return Rules{
		Transitions: map[models.OrderStatus][]models.OrderStatus{
			models.OrderPending:    {models.OrderProcessing, models.OrderCancelled},
			models.OrderProcessing: {models.OrderShipped, models.OrderCancelled},
			models.OrderShipped:    {models.OrderDelivered, models.OrderCancelled},
			models.OrderDelivered:  {models.OrderRefunded},
			models.OrderCancelled:  {},
			models.OrderRefunded:   {},
		},
		Sizes:          []string{"small", "medium", "large"},
		PaymentMethods: []string{"cod", "jazzcash", "easypaisa"},
		ServiceTypes: []string{
			"Tree Planting",
			"Grass Cutting",
			"Weeds Control",
			"Pots & Planters",
			"Garden Maintenance",
			"Landscaping",
			"Irrigation System",
			"Plant Care Consultation",
		},
		ServiceTimeSlots: []string{
			"Morning (8:00 AM - 12:00 PM)",
			"Afternoon (12:00 PM - 4:00 PM)",
			"Evening (4:00 PM - 8:00 PM)",
		},
		ServiceStatuses:    []string{"pending", "confirmed", "in-progress", "completed", "cancelled"},
		DefaultShippingFee: 200,
		DefaultCountry:     "Pakistan",
		DefaultCancelNote:  "Customer request",
	}
}
