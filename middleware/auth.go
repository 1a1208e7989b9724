package middleware

import (
	"context"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson"

	"nursery/database"
)

func jwtSecret() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

// BearerToken strips the Bearer prefix from an Authorization header.
func BearerToken(header string) string {
	if strings.HasPrefix(header, "Bearer ") {
		return header[len("Bearer "):]
	}
	return header
}

// ParseClaims validates a token against the secret and returns its claims.
func ParseClaims(tokenString string, secret []byte) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := BearerToken(c.GetHeader("Authorization"))
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Token required"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var blacklisted bson.M
		err := database.DB.Collection("blacklist_tokens").FindOne(ctx, bson.M{"token": tokenString}).Decode(&blacklisted)
		if err == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Token has been revoked"})
			return
		}

		claims, err := ParseClaims(tokenString, jwtSecret())
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid or expired token"})
			return
		}

		userID, _ := claims["userId"].(string)
		role, _ := claims["role"].(string)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid or expired token"})
			return
		}

		c.Set("userId", userID)
		c.Set("role", role)
		c.Next()
	}
}

func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists || role != "admin" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "message": "Access denied: admin only"})
			return
		}
		c.Next()
	}
}

// IsAdmin reads the role the auth middleware stored on the request.
func IsAdmin(c *gin.Context) bool {
	role, _ := c.Get("role")
	return role == "admin"
}

// UserID reads the authenticated user id, empty when unauthenticated.
func UserID(c *gin.Context) string {
	id, _ := c.Get("userId")
	s, _ := id.(string)
	return s
}
