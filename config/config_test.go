package config

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"nursery/models"
)

func TestGetEnvFallback(t *testing.T) {
	t.Setenv("NURSERY_TEST_KEY", "set")
	assert.Equal(t, "set", GetEnv("NURSERY_TEST_KEY", "fallback"))
	assert.Equal(t, "fallback", GetEnv("NURSERY_TEST_MISSING", "fallback"))
}

func TestDefaultRulesReturnsFreshCopy(t *testing.T) {
	a := DefaultRules()
	a.Transitions[models.OrderPending] = nil
	a.PaymentMethods[0] = "mutated"

	b := DefaultRules()
	assert.NotEmpty(t, b.Transitions[models.OrderPending])
	assert.Equal(t, "cod", b.PaymentMethods[0])
}

func TestDefaultRulesServiceTables(t *testing.T) {
	rules := DefaultRules()
	assert.Len(t, rules.ServiceTypes, 8)
	assert.Contains(t, rules.ServiceTypes, "Plant Care Consultation")
	assert.Len(t, rules.ServiceTimeSlots, 3)
	assert.Contains(t, rules.ServiceStatuses, models.ServicePending)
	assert.Contains(t, rules.ServiceStatuses, models.ServiceCancelled)
}

func TestDefaultRulesTerminalStates(t *testing.T) {
	rules := DefaultRules()
	assert.Empty(t, rules.Transitions[models.OrderCancelled])
	assert.Empty(t, rules.Transitions[models.OrderRefunded])
	assert.Equal(t, 200.0, rules.DefaultShippingFee)
	assert.Equal(t, "Pakistan", rules.DefaultCountry)
}
