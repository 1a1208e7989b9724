package controllers

import (
	"context"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"nursery/config"
	"nursery/database"
	"nursery/models"
)

func CreatePlant(c *gin.Context) {
	var plant models.Plant
	if err := c.ShouldBindJSON(&plant); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "All fields are required"})
		return
	}
	if plant.StockQuantity.Small < 0 || plant.StockQuantity.Medium < 0 || plant.StockQuantity.Large < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Stock cannot be negative"})
		return
	}

	plant.ID = primitive.NewObjectID()
	plant.CreatedAt = time.Now()
	plant.UpdatedAt = time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := database.PlantCollection.InsertOne(ctx, plant); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create plant"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Plant created", "plant": plant})
}

func UpdatePlant(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid plant ID"})
		return
	}

	var body struct {
		PlantName     *string             `json:"plantName"`
		Description   *string             `json:"description"`
		Prices        *models.SizeAmounts `json:"prices"`
		StockQuantity *models.SizeStock   `json:"stockQuantity"`
		Category      *string             `json:"category"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	update := bson.M{}
	if body.PlantName != nil {
		update["plantName"] = *body.PlantName
	}
	if body.Description != nil {
		update["description"] = *body.Description
	}
	if body.Prices != nil {
		update["prices"] = *body.Prices
	}
	if body.StockQuantity != nil {
		update["stockQuantity"] = *body.StockQuantity
	}
	if body.Category != nil {
		update["category"] = *body.Category
	}
	update["updatedAt"] = time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Plant
	err = database.PlantCollection.FindOneAndUpdate(ctx, bson.M{"_id": objID}, bson.M{"$set": update}, opts).Decode(&updated)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Plant not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "plant": updated})
}

func DeletePlant(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid plant ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res, err := database.PlantCollection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete plant"})
		return
	}
	if res.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Plant not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Plant deleted", "id": c.Param("id")})
}

// UploadPlantImage stores a plant photo under the uploads dir and records
// its public path on the plant.
func UploadPlantImage(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid plant ID"})
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "No image file provided"})
		return
	}

	name := uuid.NewString() + filepath.Ext(file.Filename)
	dest := filepath.Join(config.GetEnv("UPLOAD_DIR", "uploads"), "plants", name)
	if err := c.SaveUploadedFile(file, dest); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to store image"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	imagePath := "/uploads/plants/" + name
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Plant
	err = database.PlantCollection.FindOneAndUpdate(ctx,
		bson.M{"_id": objID},
		bson.M{"$set": bson.M{"plantImage": imagePath, "updatedAt": time.Now()}},
		opts).Decode(&updated)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Plant not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "plant": updated})
}

func GetPlantsAdmin(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cursor, err := database.PlantCollection.Find(ctx, bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}

	var plants []models.Plant = []models.Plant{}
	if err := cursor.All(ctx, &plants); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(plants), "plants": plants})
}

// GetOutOfStockPlants lists plants with any size counter at zero.
func GetOutOfStockPlants(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{"$or": []bson.M{
		{"stockQuantity.small": bson.M{"$lte": 0}},
		{"stockQuantity.medium": bson.M{"$lte": 0}},
		{"stockQuantity.large": bson.M{"$lte": 0}},
	}}
	cursor, err := database.PlantCollection.Find(ctx, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}

	var plants []models.Plant = []models.Plant{}
	if err := cursor.All(ctx, &plants); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(plants), "plants": plants})
}
