package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"nursery/database"
	"nursery/models"
)

func GetPlantsPublic(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{}
	if category := c.Query("category"); category != "" {
		filter["category"] = category
	}
	if search := c.Query("search"); search != "" {
		filter["plantName"] = primitive.Regex{Pattern: search, Options: "i"}
	}

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

	c.JSON(http.StatusOK, gin.H{"success": true, "data": plants})
}

func GetPlantByID(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid plant ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var plant models.Plant
	if err := database.PlantCollection.FindOne(ctx, bson.M{"_id": objID}).Decode(&plant); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Plant not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": plant})
}
