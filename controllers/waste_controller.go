package controllers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"nursery/database"
	"nursery/models"
	"nursery/pdf"
)

type wasteRequest struct {
	PlantID  string `json:"plantId"`
	Reason   string `json:"reason"`
	Size     string `json:"size"`
	Quantity int    `json:"quantity"`
}

// CreateWaste records a write-off and subtracts the quantity from the plant's
// per-size stock. The subtraction never takes stock below zero.
func CreateWaste(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var body wasteRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}
	if body.PlantID == "" || body.Size == "" || body.Quantity <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "plantId, size and a positive quantity are required"})
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

	stockField := "stockQuantity." + body.Size
	filter := bson.M{"_id": plantID, stockField: bson.M{"$gte": body.Quantity}}
	update := bson.M{
		"$inc": bson.M{stockField: -body.Quantity},
		"$set": bson.M{"updatedAt": time.Now()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var plant models.Plant
	err = database.PlantCollection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&plant)
	if err != nil {
		// Distinguish a missing plant from one without enough stock.
		count, cerr := database.PlantCollection.CountDocuments(ctx, bson.M{"_id": plantID})
		if cerr == nil && count == 0 {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Plant not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": fmt.Sprintf("Not enough %s stock to write off %d", body.Size, body.Quantity)})
		return
	}

	now := time.Now()
	waste := models.Waste{
		ID:        primitive.NewObjectID(),
		PlantID:   plantID,
		Reason:    body.Reason,
		Size:      body.Size,
		Quantity:  body.Quantity,
		Date:      now,
		CreatedAt: now,
	}
	if _, err := database.WasteCollection.InsertOne(ctx, waste); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to record waste"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":    true,
		"message":    "Waste recorded",
		"waste":      waste,
		"plant":      plant,
		"receiptUrl": fmt.Sprintf("/api/admin/waste/%s/receipt", waste.ID.Hex()),
	})
}

// GetWasteRecords lists write-offs, newest first.
func GetWasteRecords(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := database.WasteCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch waste records"})
		return
	}
	defer cursor.Close(ctx)

	records := []models.Waste{}
	if err := cursor.All(ctx, &records); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to decode waste records"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "waste": records, "count": len(records)})
}

// GetWasteReceipt streams a PDF receipt for one write-off.
func GetWasteReceipt(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid waste id"})
		return
	}

	var waste models.Waste
	if err := database.WasteCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&waste); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Waste record not found"})
		return
	}

	var plant models.Plant
	if err := database.PlantCollection.FindOne(ctx, bson.M{"_id": waste.PlantID}).Decode(&plant); err != nil {
		plant = models.Plant{PlantName: "Unknown plant"}
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=waste-%s.pdf", waste.ID.Hex()))
	if err := pdf.WasteReceipt(c.Writer, waste, plant); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to generate receipt"})
	}
}

// MonthlyWasteReport streams a PDF of all write-offs in one month.
func MonthlyWasteReport(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	start, end, err := monthRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	filter := bson.M{"date": bson.M{"$gte": start, "$lt": end}}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	cursor, err := database.WasteCollection.Find(ctx, filter, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch waste records"})
		return
	}
	defer cursor.Close(ctx)

	var records []models.Waste
	if err := cursor.All(ctx, &records); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to decode waste records"})
		return
	}

	ids := make([]primitive.ObjectID, 0, len(records))
	for _, w := range records {
		ids = append(ids, w.PlantID)
	}
	names := plantNames(ctx, ids)

	rows := make([]pdf.ReportRow, 0, len(records))
	for _, w := range records {
		rows = append(rows, pdf.ReportRow{
			PlantName: names[w.PlantID],
			Detail:    w.Reason,
			Size:      w.Size,
			Quantity:  w.Quantity,
			Date:      w.Date,
		})
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=waste-%s.pdf", start.Format("2006-01")))
	if err := pdf.MonthlyWasteReport(c.Writer, rows); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to generate report"})
	}
}
