package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Waste is a stock write-off record: dead or damaged plants removed from
// inventory.
type Waste struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PlantID   primitive.ObjectID `bson:"plantId" json:"plantId"`
	Reason    string             `bson:"reason,omitempty" json:"reason,omitempty"`
	Size      string             `bson:"size" json:"size"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	Date      time.Time          `bson:"date" json:"date"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
