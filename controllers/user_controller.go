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
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"nursery/config"
	"nursery/database"
	"nursery/middleware"
	"nursery/models"
)

// GetAllUsers lists every account without password hashes.
func GetAllUsers(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	opts := options.Find().
		SetProjection(bson.M{"password": 0}).
		SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := database.UserCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch users"})
		return
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to decode users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "users": users, "count": len(users)})
}

// GetUserData returns one account without its password hash.
func GetUserData(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid user id"})
		return
	}

	opts := options.FindOne().SetProjection(bson.M{"password": 0})
	var user models.User
	err = database.UserCollection.FindOne(ctx, bson.M{"_id": id}, opts).Decode(&user)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

// DeleteUser removes an account.
func DeleteUser(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid user id"})
		return
	}

	result, err := database.UserCollection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete user"})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "User deleted"})
}

// GetCurrentUser returns the authenticated account's own profile.
func GetCurrentUser(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	id, err := primitive.ObjectIDFromHex(middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "User authentication required"})
		return
	}

	opts := options.FindOne().SetProjection(bson.M{"password": 0})
	var user models.User
	if err := database.UserCollection.FindOne(ctx, bson.M{"_id": id}, opts).Decode(&user); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

type profileUpdateBody struct {
	FullName string `json:"fullName"`
	Email    string `json:"email" binding:"omitempty,email"`
	Password string `json:"password"`
}

// UpdateMyProfile lets an account change its own name, email or password.
// Absent fields are left untouched; a changed email must not collide with
// another account.
func UpdateMyProfile(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	id, err := primitive.ObjectIDFromHex(middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "User authentication required"})
		return
	}

	var body profileUpdateBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	set := bson.M{}
	if body.FullName != "" {
		set["fullName"] = body.FullName
	}
	if body.Email != "" {
		count, err := database.UserCollection.CountDocuments(ctx,
			bson.M{"email": body.Email, "_id": bson.M{"$ne": id}})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update profile"})
			return
		}
		if count > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Email already exists"})
			return
		}
		set["email"] = body.Email
	}
	if body.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update profile"})
			return
		}
		set["password"] = string(hashed)
	}
	if len(set) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Nothing to update"})
		return
	}

	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(bson.M{"password": 0})
	var user models.User
	err = database.UserCollection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&user)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Profile updated", "user": user})
}

// UploadProfileImage stores an avatar under the uploads dir and records its
// public path on the account.
func UploadProfileImage(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "User authentication required"})
		return
	}

	file, err := c.FormFile("profileImage")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "No image file provided"})
		return
	}

	name := uuid.NewString() + filepath.Ext(file.Filename)
	dest := filepath.Join(config.GetEnv("UPLOAD_DIR", "uploads"), "profiles", name)
	if err := c.SaveUploadedFile(file, dest); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to store image"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	imagePath := "/uploads/profiles/" + name
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(bson.M{"password": 0})
	var user models.User
	err = database.UserCollection.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"profilePic": imagePath}},
		opts).Decode(&user)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

// UpdateUserRole changes an account's role. Only the roles the API knows
// about are accepted.
func UpdateUserRole(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid user id"})
		return
	}

	var body struct {
		Role string `json:"role"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || !inList([]string{"user", "admin", "moderator"}, body.Role) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid role. Must be one of: user, admin, moderator"})
		return
	}

	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(bson.M{"password": 0})
	var user models.User
	err = database.UserCollection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"role": body.Role}}, opts).Decode(&user)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update role"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "User role updated", "user": user})
}

// TotalUsers returns the account count for the dashboard.
func TotalUsers(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	count, err := database.UserCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to count users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "totalUsers": count})
}
