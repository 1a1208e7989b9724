package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ServiceRequest statuses. Requests start pending and are moved along by an
// admin; there is no transition table, any known status may be set.
const (
	ServicePending    = "pending"
	ServiceConfirmed  = "confirmed"
	ServiceInProgress = "in-progress"
	ServiceCompleted  = "completed"
	ServiceCancelled  = "cancelled"
)

// ServiceRequest is a booking for garden work at the customer's address:
// planting, maintenance, landscaping and the like.
type ServiceRequest struct {
	ID              primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID          *primitive.ObjectID `bson:"userId,omitempty" json:"userId,omitempty"`
	ServiceType     string              `bson:"serviceType" json:"serviceType"`
	FullName        string              `bson:"fullName" json:"fullName"`
	Email           string              `bson:"email" json:"email"`
	PhoneNumber     string              `bson:"phoneNumber" json:"phoneNumber"`
	PreferredDate   time.Time           `bson:"preferredDate" json:"preferredDate"`
	PreferredTime   string              `bson:"preferredTime" json:"preferredTime"`
	StreetAddress   string              `bson:"streetAddress" json:"streetAddress"`
	City            string              `bson:"city" json:"city"`
	ZipCode         string              `bson:"zipCode" json:"zipCode"`
	AdditionalNotes string              `bson:"additionalNotes,omitempty" json:"additionalNotes,omitempty"`
	Status          string              `bson:"status" json:"status"`
	AdminNotes      string              `bson:"adminNotes,omitempty" json:"adminNotes,omitempty"`
	EstimatedCost   float64             `bson:"estimatedCost,omitempty" json:"estimatedCost,omitempty"`
	CreatedAt       time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time           `bson:"updatedAt" json:"updatedAt"`
}
