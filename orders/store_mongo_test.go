package orders

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"nursery/models"
)

func TestBuildOrderFilterEmpty(t *testing.T) {
	assert.Equal(t, bson.M{}, buildOrderFilter(ListFilter{}))
}

func TestBuildOrderFilterUserAndStatus(t *testing.T) {
	user := primitive.NewObjectID()
	filter := buildOrderFilter(ListFilter{User: user, Status: models.OrderShipped})

	assert.Equal(t, user, filter["user"])
	assert.Equal(t, models.OrderShipped, filter["status"])
}

func TestBuildOrderFilterDateRange(t *testing.T) {
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)

	filter := buildOrderFilter(ListFilter{StartDate: &start, EndDate: &end})
	assert.Equal(t, bson.M{"$gte": start, "$lte": end}, filter["createdAt"])

	// A half-open range is ignored; both bounds are required.
	filter = buildOrderFilter(ListFilter{StartDate: &start})
	_, ok := filter["createdAt"]
	assert.False(t, ok)
}

func TestBuildOrderFilterSearch(t *testing.T) {
	filter := buildOrderFilter(ListFilter{Search: "sara"})

	or, ok := filter["$or"].([]bson.M)
	require.True(t, ok)
	require.Len(t, or, 3)

	re, ok := or[0]["userDetails.email"].(primitive.Regex)
	require.True(t, ok)
	assert.Equal(t, "sara", re.Pattern)
	assert.Equal(t, "i", re.Options)
}

func TestBuildOrderFilterSearchByID(t *testing.T) {
	id := primitive.NewObjectID()
	filter := buildOrderFilter(ListFilter{Search: id.Hex()})

	or, ok := filter["$or"].([]bson.M)
	require.True(t, ok)
	require.Len(t, or, 4)
	assert.Equal(t, id, or[3]["_id"])
}
