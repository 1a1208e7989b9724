package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID         primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	FullName   string               `bson:"fullName" json:"fullName"`
	Email      string               `bson:"email" json:"email"`
	Password   string               `bson:"password" json:"-"`
	Role       string               `bson:"role" json:"role"`
	ProfilePic string               `bson:"profilePic,omitempty" json:"profilePic,omitempty"`
	Orders     []primitive.ObjectID `bson:"orders,omitempty" json:"orders,omitempty"`
	CreatedAt  time.Time            `bson:"createdAt" json:"createdAt"`
}
