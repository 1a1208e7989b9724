package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Purchase is a stock intake record: plants bought from a supplier nursery.
type Purchase struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PlantID     primitive.ObjectID `bson:"plantId" json:"plantId"`
	NurseryName string             `bson:"nurseryName" json:"nurseryName"`
	Size        string             `bson:"size" json:"size"`
	Quantity    int                `bson:"quantity" json:"quantity"`
	Date        time.Time          `bson:"date" json:"date"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}
