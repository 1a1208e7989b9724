package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SizeAmounts keys a number by plant size. Used both for prices and for
// stock counters.
type SizeAmounts struct {
	Small  float64 `bson:"small" json:"small"`
	Medium float64 `bson:"medium" json:"medium"`
	Large  float64 `bson:"large" json:"large"`
}

type SizeStock struct {
	Small  int `bson:"small" json:"small"`
	Medium int `bson:"medium" json:"medium"`
	Large  int `bson:"large" json:"large"`
}

// Available returns the stock counter for a size, 0 for an unknown size.
func (s SizeStock) Available(size string) int {
	switch size {
	case "small":
		return s.Small
	case "medium":
		return s.Medium
	case "large":
		return s.Large
	}
	return 0
}

type Plant struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PlantName     string             `bson:"plantName" json:"plantName" binding:"required"`
	Description   string             `bson:"description" json:"description"`
	Prices        SizeAmounts        `bson:"prices" json:"prices"`
	StockQuantity SizeStock          `bson:"stockQuantity" json:"stockQuantity"`
	Category      string             `bson:"category" json:"category"`
	PlantImage    string             `bson:"plantImage,omitempty" json:"plantImage,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}
