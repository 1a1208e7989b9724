package controllers

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func bookingForm() serviceRequestBody {
	return serviceRequestBody{
		ServiceType:   "Tree Planting",
		FullName:      "Sara Khan",
		Email:         "sara@example.com",
		PhoneNumber:   "03001234567",
		PreferredDate: "2024-06-20",
		PreferredTime: "Morning (8:00 AM - 12:00 PM)",
		StreetAddress: "12 Garden Road",
		City:          "Lahore",
		ZipCode:       "54000",
	}
}

func TestValidateServiceBody(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	date, msg := validateServiceBody(bookingForm(), now)
	require.Empty(t, msg)
	assert.Equal(t, time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC), date)

	// A booking for today is still acceptable.
	form := bookingForm()
	form.PreferredDate = "2024-06-15"
	_, msg = validateServiceBody(form, now)
	assert.Empty(t, msg)
}

func TestValidateServiceBodyRejectsPastDate(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	form := bookingForm()
	form.PreferredDate = "2024-06-14"
	_, msg := validateServiceBody(form, now)
	assert.Equal(t, "Preferred date cannot be in the past", msg)
}

func TestValidateServiceBodyFieldChecks(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	cases := map[string]struct {
		mutate func(*serviceRequestBody)
		want   string
	}{
		"missing field": {
			mutate: func(f *serviceRequestBody) { f.PhoneNumber = "" },
			want:   "All required fields must be provided",
		},
		"unknown service type": {
			mutate: func(f *serviceRequestBody) { f.ServiceType = "Rocket Assembly" },
			want:   "Invalid service type",
		},
		"unknown time slot": {
			mutate: func(f *serviceRequestBody) { f.PreferredTime = "Midnight" },
			want:   "Invalid preferred time",
		},
		"notes too long": {
			mutate: func(f *serviceRequestBody) { f.AdditionalNotes = strings.Repeat("x", 501) },
			want:   "Additional notes cannot exceed 500 characters",
		},
		"unparseable date": {
			mutate: func(f *serviceRequestBody) { f.PreferredDate = "someday" },
			want:   "Invalid preferred date",
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			form := bookingForm()
			tc.mutate(&form)
			_, msg := validateServiceBody(form, now)
			assert.Equal(t, tc.want, msg)
		})
	}
}

func TestBuildServiceFilter(t *testing.T) {
	assert.Equal(t, bson.M{}, buildServiceFilter("", "", ""))

	f := buildServiceFilter("pending", "Landscaping", "")
	assert.Equal(t, "pending", f["status"])
	assert.Equal(t, "Landscaping", f["serviceType"])

	f = buildServiceFilter("", "", "sara")
	or, ok := f["$or"].([]bson.M)
	require.True(t, ok)
	require.Len(t, or, 3)
	rx, ok := or[0]["fullName"].(primitive.Regex)
	require.True(t, ok)
	assert.Equal(t, "sara", rx.Pattern)
	assert.Equal(t, "i", rx.Options)
}

func TestBuildServiceFilterEscapesSearch(t *testing.T) {
	f := buildServiceFilter("", "", "a.b(c)")
	or := f["$or"].([]bson.M)
	rx := or[0]["fullName"].(primitive.Regex)
	assert.Equal(t, `a\.b\(c\)`, rx.Pattern)
}
