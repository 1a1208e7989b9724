package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"nursery/models"
)

func TestPurchaseReceiptProducesPDF(t *testing.T) {
	purchase := models.Purchase{
		ID:          primitive.NewObjectID(),
		NurseryName: "Green Valley",
		Size:        "medium",
		Quantity:    10,
		CreatedAt:   time.Now(),
	}
	plant := models.Plant{PlantName: "Boston Fern", StockQuantity: models.SizeStock{Medium: 15}}

	var buf bytes.Buffer
	require.NoError(t, PurchaseReceipt(&buf, purchase, plant))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestWasteReceiptProducesPDF(t *testing.T) {
	waste := models.Waste{
		ID:        primitive.NewObjectID(),
		Reason:    "frost damage",
		Size:      "small",
		Quantity:  3,
		CreatedAt: time.Now(),
	}
	plant := models.Plant{PlantName: "Aloe Vera", StockQuantity: models.SizeStock{Small: 2}}

	var buf bytes.Buffer
	require.NoError(t, WasteReceipt(&buf, waste, plant))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestMonthlyReportsProducePDF(t *testing.T) {
	rows := []ReportRow{
		{PlantName: "Boston Fern", Detail: "Green Valley", Size: "small", Quantity: 5, Date: time.Now()},
		{Detail: "Rose Garden", Size: "large", Quantity: 2, Date: time.Now()},
	}

	var buf bytes.Buffer
	require.NoError(t, MonthlyPurchaseReport(&buf, rows))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))

	buf.Reset()
	require.NoError(t, MonthlyWasteReport(&buf, rows))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}
