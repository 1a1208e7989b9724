package controllers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"nursery/database"
	"nursery/email"
	"nursery/middleware"
	"nursery/models"
)

// serviceMail delivers booking confirmations. Sending is best effort; a
// failed email never fails the request.
var serviceMail email.ServiceSender

func UseServiceMailer(m email.ServiceSender) {
	serviceMail = m
}

func inList(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

type serviceRequestBody struct {
	ServiceType     string `json:"serviceType"`
	FullName        string `json:"fullName"`
	Email           string `json:"email"`
	PhoneNumber     string `json:"phoneNumber"`
	PreferredDate   string `json:"preferredDate"`
	PreferredTime   string `json:"preferredTime"`
	StreetAddress   string `json:"streetAddress"`
	City            string `json:"city"`
	ZipCode         string `json:"zipCode"`
	AdditionalNotes string `json:"additionalNotes"`
}

// validateServiceBody checks the booking form and parses the preferred date.
// The date must not fall before today's midnight. Returns a user-facing
// message on failure.
func validateServiceBody(body serviceRequestBody, now time.Time) (time.Time, string) {
	for _, field := range []string{
		body.ServiceType, body.FullName, body.Email, body.PhoneNumber,
		body.PreferredDate, body.PreferredTime, body.StreetAddress,
		body.City, body.ZipCode,
	} {
		if field == "" {
			return time.Time{}, "All required fields must be provided"
		}
	}
	if !inList(rules.ServiceTypes, body.ServiceType) {
		return time.Time{}, "Invalid service type"
	}
	if !inList(rules.ServiceTimeSlots, body.PreferredTime) {
		return time.Time{}, "Invalid preferred time"
	}
	if len(body.AdditionalNotes) > 500 {
		return time.Time{}, "Additional notes cannot exceed 500 characters"
	}

	date, err := time.Parse("2006-01-02", body.PreferredDate)
	if err != nil {
		if date, err = time.Parse(time.RFC3339, body.PreferredDate); err != nil {
			return time.Time{}, "Invalid preferred date"
		}
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if date.Before(today) {
		return time.Time{}, "Preferred date cannot be in the past"
	}
	return date, ""
}

// CreateServiceRequest books garden work at the customer's address. The
// request starts pending and an admin follows up with a quote.
func CreateServiceRequest(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var body serviceRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	date, msg := validateServiceBody(body, time.Now())
	if msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": msg})
		return
	}

	now := time.Now()
	req := models.ServiceRequest{
		ID:              primitive.NewObjectID(),
		ServiceType:     body.ServiceType,
		FullName:        body.FullName,
		Email:           body.Email,
		PhoneNumber:     body.PhoneNumber,
		PreferredDate:   date,
		PreferredTime:   body.PreferredTime,
		StreetAddress:   body.StreetAddress,
		City:            body.City,
		ZipCode:         body.ZipCode,
		AdditionalNotes: body.AdditionalNotes,
		Status:          models.ServicePending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if uid, err := primitive.ObjectIDFromHex(middleware.UserID(c)); err == nil {
		req.UserID = &uid
	}

	if _, err := database.ServiceCollection.InsertOne(ctx, req); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create service request"})
		return
	}

	if serviceMail != nil {
		serviceMail.SendServiceRequest(req.Email, &req)
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":               true,
		"message":               "Service request submitted",
		"id":                    req.ID.Hex(),
		"serviceType":           req.ServiceType,
		"status":                req.Status,
		"estimatedResponseTime": "24-48 hours",
	})
}

// buildServiceFilter translates the listing query params into a Mongo filter.
// Search matches name, email or city case-insensitively.
func buildServiceFilter(status, serviceType, search string) bson.M {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	if serviceType != "" {
		filter["serviceType"] = serviceType
	}
	if search != "" {
		rx := primitive.Regex{Pattern: regexQuoteMeta(search), Options: "i"}
		filter["$or"] = []bson.M{
			{"fullName": rx},
			{"email": rx},
			{"city": rx},
		}
	}
	return filter
}

// regexQuoteMeta escapes regex metacharacters so user search text is matched
// literally.
func regexQuoteMeta(s string) string {
	var b strings.Builder
	for _, r := range s {
		if strings.ContainsRune(`\.+*?()|[]{}^$`, r) {
			b.WriteRune('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// GetServiceRequests lists bookings for the admin panel, newest first, with
// status, type and free-text filters.
func GetServiceRequests(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	page, limit := pageParams(c)
	filter := buildServiceFilter(c.Query("status"), c.Query("serviceType"), c.Query("search"))

	total, err := database.ServiceCollection.CountDocuments(ctx, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to count service requests"})
		return
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))
	cursor, err := database.ServiceCollection.Find(ctx, filter, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch service requests"})
		return
	}
	defer cursor.Close(ctx)

	requests := []models.ServiceRequest{}
	if err := cursor.All(ctx, &requests); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to decode service requests"})
		return
	}

	pages := int((total + int64(limit) - 1) / int64(limit))
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"services": requests,
		"pagination": gin.H{
			"currentPage":  page,
			"totalPages":   pages,
			"totalItems":   total,
			"itemsPerPage": limit,
		},
	})
}

func GetServiceRequestByID(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid service request id"})
		return
	}

	var req models.ServiceRequest
	if err := database.ServiceCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&req); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Service request not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "service": req})
}

type serviceStatusBody struct {
	Status        string   `json:"status"`
	AdminNotes    *string  `json:"adminNotes"`
	EstimatedCost *float64 `json:"estimatedCost"`
}

// UpdateServiceStatus partially updates a booking: status, admin notes and
// the quoted cost. Absent fields are left untouched.
func UpdateServiceStatus(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid service request id"})
		return
	}

	var body serviceStatusBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	set := bson.M{"updatedAt": time.Now()}
	if body.Status != "" {
		if !inList(rules.ServiceStatuses, body.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid status"})
			return
		}
		set["status"] = body.Status
	}
	if body.AdminNotes != nil {
		set["adminNotes"] = *body.AdminNotes
	}
	if body.EstimatedCost != nil {
		if *body.EstimatedCost < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Estimated cost must not be negative"})
			return
		}
		set["estimatedCost"] = *body.EstimatedCost
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var req models.ServiceRequest
	err = database.ServiceCollection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&req)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Service request not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update service request"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Service request updated", "service": req})
}

func DeleteServiceRequest(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid service request id"})
		return
	}

	res, err := database.ServiceCollection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete service request"})
		return
	}
	if res.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Service request not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Service request deleted"})
}

type serviceTypeCount struct {
	Type  string `bson:"_id" json:"serviceType"`
	Count int    `bson:"count" json:"count"`
}

type serviceMonthCount struct {
	Period struct {
		Year  int `bson:"year" json:"year"`
		Month int `bson:"month" json:"month"`
	} `bson:"_id" json:"period"`
	Count int `bson:"count" json:"count"`
}

// GetServiceStatistics summarizes bookings for the admin dashboard: totals,
// the per-type distribution and a six-month trend.
func GetServiceStatistics(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	total, err := database.ServiceCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to compute statistics"})
		return
	}
	pending, err := database.ServiceCollection.CountDocuments(ctx, bson.M{"status": models.ServicePending})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to compute statistics"})
		return
	}
	completed, err := database.ServiceCollection.CountDocuments(ctx, bson.M{"status": models.ServiceCompleted})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to compute statistics"})
		return
	}

	var byType []serviceTypeCount
	cursor, err := database.ServiceCollection.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$serviceType", "count": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: bson.M{"count": -1}}},
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to compute statistics"})
		return
	}
	if err := cursor.All(ctx, &byType); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to compute statistics"})
		return
	}

	since := time.Now().AddDate(0, -6, 0)
	var trend []serviceMonthCount
	cursor, err = database.ServiceCollection.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"createdAt": bson.M{"$gte": since}}}},
		{{Key: "$group", Value: bson.M{
			"_id":   bson.M{"year": bson.M{"$year": "$createdAt"}, "month": bson.M{"$month": "$createdAt"}},
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id.year", Value: 1}, {Key: "_id.month", Value: 1}}}},
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to compute statistics"})
		return
	}
	if err := cursor.All(ctx, &trend); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to compute statistics"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"statistics": gin.H{
			"totalServices":     total,
			"pendingServices":   pending,
			"completedServices": completed,
			"serviceTypeStats":  byType,
			"monthlyTrend":      trend,
		},
	})
}
