package orders

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"nursery/models"
)

func order(status models.OrderStatus, total float64, createdAt time.Time) models.Order {
	return models.Order{
		ID:          primitive.NewObjectID(),
		Status:      status,
		TotalAmount: total,
		CreatedAt:   createdAt,
	}
}

func TestBuildStatsOnlyDeliveredCountsAsSales(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	yesterday := now.Add(-24 * time.Hour)

	orders := []models.Order{
		order(models.OrderDelivered, 500, yesterday),
		order(models.OrderDelivered, 300, yesterday),
		order(models.OrderPending, 100, yesterday),
	}

	stats := BuildStats(orders, now)

	// The pending order keeps its revenue out of sales but still shows up
	// in the status counts and the day buckets.
	require.Len(t, stats.MonthlySales, 1)
	assert.Equal(t, 800.0, stats.MonthlySales[0].Total)
	assert.Equal(t, 2, stats.MonthlySales[0].Count)

	require.Len(t, stats.StatusCounts, 2)
	counts := map[models.OrderStatus]int{}
	for _, sc := range stats.StatusCounts {
		counts[sc.Status] = sc.Count
	}
	assert.Equal(t, 2, counts[models.OrderDelivered])
	assert.Equal(t, 1, counts[models.OrderPending])

	require.Len(t, stats.TimeBasedOrders, 1)
	assert.Equal(t, 900.0, stats.TimeBasedOrders[0].TotalAmount)
	assert.Equal(t, 3, stats.TimeBasedOrders[0].Count)
}

func TestBuildStatsRecentOrdersTodayBoundary(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	today := order(models.OrderPending, 100, now.Add(-time.Hour))
	midnight := order(models.OrderPending, 100, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC))
	yesterday := order(models.OrderPending, 100, now.Add(-24*time.Hour))
	tomorrow := order(models.OrderPending, 100, time.Date(2024, 6, 16, 0, 0, 0, 0, time.UTC))

	stats := BuildStats([]models.Order{today, midnight, yesterday, tomorrow}, now)

	require.Len(t, stats.RecentOrders, 2)
	// Newest first.
	assert.Equal(t, today.ID, stats.RecentOrders[0].ID)
	assert.Equal(t, midnight.ID, stats.RecentOrders[1].ID)
}

func TestBuildStatsSortsDayRollups(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	orders := []models.Order{
		order(models.OrderDelivered, 100, time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)),
		order(models.OrderDelivered, 200, time.Date(2024, 5, 30, 9, 0, 0, 0, time.UTC)),
		order(models.OrderDelivered, 300, time.Date(2024, 6, 12, 9, 0, 0, 0, time.UTC)),
	}

	stats := BuildStats(orders, now)

	// Sales run oldest to newest, day buckets newest to oldest.
	require.Len(t, stats.MonthlySales, 3)
	assert.Equal(t, DayKey{2024, 5, 30}, stats.MonthlySales[0].Key)
	assert.Equal(t, DayKey{2024, 6, 12}, stats.MonthlySales[2].Key)

	require.Len(t, stats.TimeBasedOrders, 3)
	assert.Equal(t, 300.0, stats.TimeBasedOrders[0].TotalAmount)
	assert.Equal(t, 200.0, stats.TimeBasedOrders[2].TotalAmount)
}

func TestBuildStatsDropsUnbucketableOrders(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	orders := []models.Order{
		{ID: primitive.NewObjectID(), Status: "", TotalAmount: 50},
	}

	stats := BuildStats(orders, now)

	// Zero creation time keeps the order out of every day rollup, but the
	// blank status still lands in the counters as unknown.
	assert.Empty(t, stats.MonthlySales)
	assert.Empty(t, stats.TimeBasedOrders)
	assert.Empty(t, stats.RecentOrders)
	require.Len(t, stats.StatusCounts, 1)
	assert.Equal(t, models.OrderStatus("unknown"), stats.StatusCounts[0].Status)
}

func TestBuildStatsEmpty(t *testing.T) {
	stats := BuildStats(nil, time.Now())
	assert.NotNil(t, stats.StatusCounts)
	assert.NotNil(t, stats.MonthlySales)
	assert.NotNil(t, stats.RecentOrders)
	assert.NotNil(t, stats.TimeBasedOrders)
	assert.Empty(t, stats.StatusCounts)
}

func TestServiceStatsIncludesTotals(t *testing.T) {
	f := newFixture(t)
	f.users.count = 7
	f.products.count = 12
	f.orders.all = []models.Order{order(models.OrderPending, 100, f.now)}

	stats, err := f.svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(7), stats.TotalUsers)
	assert.Equal(t, int64(12), stats.TotalProducts)
	require.Len(t, stats.StatusCounts, 1)
}
