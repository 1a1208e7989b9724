package controllers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"nursery/database"
	"nursery/models"
	"nursery/pdf"
)

type purchaseRequest struct {
	PlantID     string `json:"plantId"`
	NurseryName string `json:"nurseryName"`
	Size        string `json:"size"`
	Quantity    int    `json:"quantity"`
}

// CreatePurchase records a stock intake and adds the quantity to the plant's
// per-size stock.
func CreatePurchase(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var body purchaseRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}
	if body.PlantID == "" || body.NurseryName == "" || body.Size == "" || body.Quantity <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "plantId, nurseryName, size and a positive quantity are required"})
		return
	}
	if !validSize(body.Size) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Size must be small, medium or large"})
		return
	}

	plantID, err := primitive.ObjectIDFromHex(body.PlantID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid plant id"})
		return
	}

	update := bson.M{
		"$inc": bson.M{"stockQuantity." + body.Size: body.Quantity},
		"$set": bson.M{"updatedAt": time.Now()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var plant models.Plant
	err = database.PlantCollection.FindOneAndUpdate(ctx, bson.M{"_id": plantID}, update, opts).Decode(&plant)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Plant not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update stock"})
		return
	}

	now := time.Now()
	purchase := models.Purchase{
		ID:          primitive.NewObjectID(),
		PlantID:     plantID,
		NurseryName: body.NurseryName,
		Size:        body.Size,
		Quantity:    body.Quantity,
		Date:        now,
		CreatedAt:   now,
	}
	if _, err := database.PurchaseCollection.InsertOne(ctx, purchase); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to record purchase"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":    true,
		"message":    "Purchase recorded",
		"purchase":   purchase,
		"plant":      plant,
		"receiptUrl": fmt.Sprintf("/api/admin/purchases/%s/receipt", purchase.ID.Hex()),
	})
}

// GetPurchases lists intake records, newest first.
func GetPurchases(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := database.PurchaseCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch purchases"})
		return
	}
	defer cursor.Close(ctx)

	purchases := []models.Purchase{}
	if err := cursor.All(ctx, &purchases); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to decode purchases"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "purchases": purchases, "count": len(purchases)})
}

// GetPurchaseReceipt streams a PDF receipt for one intake record.
func GetPurchaseReceipt(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid purchase id"})
		return
	}

	var purchase models.Purchase
	if err := database.PurchaseCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&purchase); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Purchase not found"})
		return
	}

	var plant models.Plant
	if err := database.PlantCollection.FindOne(ctx, bson.M{"_id": purchase.PlantID}).Decode(&plant); err != nil {
		plant = models.Plant{PlantName: "Unknown plant"}
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=purchase-%s.pdf", purchase.ID.Hex()))
	if err := pdf.PurchaseReceipt(c.Writer, purchase, plant); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to generate receipt"})
	}
}

// monthRange parses year and month query params and returns the matching
// closed-open interval. Defaults to the current month.
func monthRange(c *gin.Context) (time.Time, time.Time, error) {
	now := time.Now()
	year, month := now.Year(), int(now.Month())

	if v := c.Query("year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid year %q", v)
		}
		year = y
	}
	if v := c.Query("month"); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil || m < 1 || m > 12 {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid month %q", v)
		}
		month = m
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0), nil
}

func plantNames(ctx context.Context, ids []primitive.ObjectID) map[primitive.ObjectID]string {
	names := map[primitive.ObjectID]string{}
	if len(ids) == 0 {
		return names
	}
	cursor, err := database.PlantCollection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return names
	}
	defer cursor.Close(ctx)
	var plants []models.Plant
	if err := cursor.All(ctx, &plants); err != nil {
		return names
	}
	for _, p := range plants {
		names[p.ID] = p.PlantName
	}
	return names
}

// MonthlyPurchaseReport streams a PDF of all intake records in one month.
func MonthlyPurchaseReport(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	start, end, err := monthRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	filter := bson.M{"date": bson.M{"$gte": start, "$lt": end}}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	cursor, err := database.PurchaseCollection.Find(ctx, filter, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch purchases"})
		return
	}
	defer cursor.Close(ctx)

	var purchases []models.Purchase
	if err := cursor.All(ctx, &purchases); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to decode purchases"})
		return
	}

	ids := make([]primitive.ObjectID, 0, len(purchases))
	for _, p := range purchases {
		ids = append(ids, p.PlantID)
	}
	names := plantNames(ctx, ids)

	rows := make([]pdf.ReportRow, 0, len(purchases))
	for _, p := range purchases {
		rows = append(rows, pdf.ReportRow{
			PlantName: names[p.PlantID],
			Detail:    p.NurseryName,
			Size:      p.Size,
			Quantity:  p.Quantity,
			Date:      p.Date,
		})
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=purchases-%s.pdf", start.Format("2006-01")))
	if err := pdf.MonthlyPurchaseReport(c.Writer, rows); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to generate report"})
	}
}
