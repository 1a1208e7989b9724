package controllers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"nursery/config"
	"nursery/database"
	"nursery/middleware"
	"nursery/models"
)

// rules carries the validation tables shared by the cart, purchase and
// waste handlers. UseRules lets the bootstrap hand in the same copy the
// order service receives.
var rules = config.DefaultRules()

func UseRules(r config.Rules) {
	rules = r
}

func validSize(size string) bool {
	for _, s := range rules.Sizes {
		if s == size {
			return true
		}
	}
	return false
}

func loadCart(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	var cart models.Cart
	err := database.CartCollection.FindOne(ctx, bson.M{"userId": userID}).Decode(&cart)
	if err == mongo.ErrNoDocuments {
		return &models.Cart{ID: primitive.NewObjectID(), UserID: userID, Items: []models.CartItem{}}, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func saveCart(ctx context.Context, cart *models.Cart) error {
	cart.Recalculate()
	cart.UpdatedAt = time.Now()
	opts := options.Replace().SetUpsert(true)
	_, err := database.CartCollection.ReplaceOne(ctx, bson.M{"userId": cart.UserID}, cart, opts)
	return err
}

func GetCart(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cart, err := loadCart(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":      cart.Items,
		"totalPrice": cart.TotalPrice,
		"totalItems": cart.TotalItems,
	})
}

func AddToCart(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
		return
	}

	var body struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
		Size      string `json:"size"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.ProductID == "" || body.Size == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Product ID and size are required"})
		return
	}
	if !validSize(body.Size) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid size. Must be small, medium, or large"})
		return
	}
	if body.Quantity < 1 {
		body.Quantity = 1
	}

	plantID, err := primitive.ObjectIDFromHex(body.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid product ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var plant models.Plant
	if err := database.PlantCollection.FindOne(ctx, bson.M{"_id": plantID}).Decode(&plant); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Plant not found"})
		return
	}

	if plant.StockQuantity.Available(body.Size) < body.Quantity {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": fmt.Sprintf("Not enough stock for %s (%s), available: %d",
				plant.PlantName, body.Size, plant.StockQuantity.Available(body.Size)),
		})
		return
	}

	cart, err := loadCart(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching cart"})
		return
	}

	price := plant.Prices.Small
	switch body.Size {
	case "medium":
		price = plant.Prices.Medium
	case "large":
		price = plant.Prices.Large
	}

	merged := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == plantID && cart.Items[i].Size == body.Size {
			cart.Items[i].Quantity += body.Quantity
			merged = true
			break
		}
	}
	if !merged {
		cart.Items = append(cart.Items, models.CartItem{
			ProductID: plantID,
			Name:      plant.PlantName,
			Price:     price,
			Quantity:  body.Quantity,
			Size:      body.Size,
			Image:     plant.PlantImage,
		})
	}

	if err := saveCart(ctx, cart); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Added to cart", "cart": cart})
}

func UpdateCart(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
		return
	}

	plantID, err := primitive.ObjectIDFromHex(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid product ID"})
		return
	}

	var body struct {
		Quantity int    `json:"quantity" binding:"required"`
		Size     string `json:"size" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || !validSize(body.Size) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Quantity and a valid size are required"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cart, err := loadCart(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching cart"})
		return
	}

	found := false
	items := cart.Items[:0]
	for _, it := range cart.Items {
		if it.ProductID == plantID && it.Size == body.Size {
			found = true
			if body.Quantity > 0 {
				it.Quantity = body.Quantity
				items = append(items, it)
			}
			continue
		}
		items = append(items, it)
	}
	cart.Items = items

	if !found {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Item not in cart"})
		return
	}

	if err := saveCart(ctx, cart); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "cart": cart})
}

func RemoveFromCart(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
		return
	}

	plantID, err := primitive.ObjectIDFromHex(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid product ID"})
		return
	}
	size := c.Query("size")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cart, err := loadCart(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching cart"})
		return
	}

	items := cart.Items[:0]
	for _, it := range cart.Items {
		if it.ProductID == plantID && (size == "" || it.Size == size) {
			continue
		}
		items = append(items, it)
	}
	cart.Items = items

	if err := saveCart(ctx, cart); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "cart": cart})
}

func ClearCart(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := database.CartCollection.DeleteOne(ctx, bson.M{"userId": userID}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to clear cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Cart cleared"})
}
