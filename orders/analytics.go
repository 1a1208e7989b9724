package orders

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"nursery/models"
)

// DayKey buckets orders by local calendar day.
type DayKey struct {
	Year  int `bson:"year" json:"year"`
	Month int `bson:"month" json:"month"`
	Day   int `bson:"day" json:"day"`
}

type StatusCount struct {
	Status models.OrderStatus `json:"_id"`
	Count  int                `json:"count"`
}

type DailySales struct {
	Key   DayKey  `json:"_id"`
	Total float64 `json:"total"`
	Count int     `json:"count"`
}

type DayBucket struct {
	Date        time.Time      `json:"date"`
	Orders      []models.Order `json:"orders"`
	TotalAmount float64        `json:"totalAmount"`
	Count       int            `json:"count"`
}

type Stats struct {
	StatusCounts    []StatusCount  `json:"statusCounts"`
	MonthlySales    []DailySales   `json:"monthlySales"`
	RecentOrders    []models.Order `json:"recentOrders"`
	TimeBasedOrders []DayBucket    `json:"timeBasedOrders"`
	TotalUsers      int64          `json:"totalUsers"`
	TotalProducts   int64          `json:"totalProducts"`
}

// Stats builds the dashboard rollups over the whole order collection plus
// user/product totals.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	orders, err := s.orders.All(ctx)
	if err != nil {
		return nil, Internal("failed to process analytics data", err)
	}
	stats := BuildStats(orders, s.now())

	// The headline totals are decoration; a failed count degrades to 0
	// rather than failing the dashboard.
	if n, err := s.users.Count(ctx); err == nil {
		stats.TotalUsers = n
	} else {
		s.log.Warn("user count failed", zap.Error(err))
	}
	if n, err := s.products.Count(ctx); err == nil {
		stats.TotalProducts = n
	} else {
		s.log.Warn("product count failed", zap.Error(err))
	}
	return stats, nil
}

// BuildStats computes every rollup in one pass over the orders. Missing
// numeric values are already zero in Go; orders that cannot be bucketed
// (zero creation time) are dropped from the day rollups rather than failing
// the whole response.
func BuildStats(orders []models.Order, now time.Time) *Stats {
	statusCounts := make(map[models.OrderStatus]int)
	sales := make(map[DayKey]*DailySales)
	buckets := make(map[DayKey]*DayBucket)

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	stats := &Stats{
		StatusCounts:    []StatusCount{},
		MonthlySales:    []DailySales{},
		RecentOrders:    []models.Order{},
		TimeBasedOrders: []DayBucket{},
	}

	for _, o := range orders {
		status := o.Status
		if status == "" {
			status = "unknown"
		}
		statusCounts[status]++

		if o.CreatedAt.IsZero() {
			continue
		}
		key := DayKey{Year: o.CreatedAt.Year(), Month: int(o.CreatedAt.Month()), Day: o.CreatedAt.Day()}

		if o.Status == models.OrderDelivered {
			entry := sales[key]
			if entry == nil {
				entry = &DailySales{Key: key}
				sales[key] = entry
			}
			entry.Total += o.TotalAmount
			entry.Count++
		}

		if !o.CreatedAt.Before(dayStart) && o.CreatedAt.Before(dayEnd) {
			stats.RecentOrders = append(stats.RecentOrders, o)
		}

		bucket := buckets[key]
		if bucket == nil {
			bucket = &DayBucket{
				Date: time.Date(key.Year, time.Month(key.Month), key.Day, 0, 0, 0, 0, now.Location()),
			}
			buckets[key] = bucket
		}
		bucket.Orders = append(bucket.Orders, o)
		bucket.TotalAmount += o.TotalAmount
		bucket.Count++
	}

	for status, count := range statusCounts {
		stats.StatusCounts = append(stats.StatusCounts, StatusCount{Status: status, Count: count})
	}
	sort.Slice(stats.StatusCounts, func(i, j int) bool {
		return stats.StatusCounts[i].Status < stats.StatusCounts[j].Status
	})

	for _, entry := range sales {
		stats.MonthlySales = append(stats.MonthlySales, *entry)
	}
	sort.Slice(stats.MonthlySales, func(i, j int) bool {
		return dayLess(stats.MonthlySales[i].Key, stats.MonthlySales[j].Key)
	})

	sort.Slice(stats.RecentOrders, func(i, j int) bool {
		return stats.RecentOrders[i].CreatedAt.After(stats.RecentOrders[j].CreatedAt)
	})

	for _, bucket := range buckets {
		sort.Slice(bucket.Orders, func(i, j int) bool {
			return bucket.Orders[i].CreatedAt.After(bucket.Orders[j].CreatedAt)
		})
		stats.TimeBasedOrders = append(stats.TimeBasedOrders, *bucket)
	}
	sort.Slice(stats.TimeBasedOrders, func(i, j int) bool {
		return stats.TimeBasedOrders[i].Date.After(stats.TimeBasedOrders[j].Date)
	})

	return stats
}

func dayLess(a, b DayKey) bool {
	if a.Year != b.Year {
		return a.Year < b.Year
	}
	if a.Month != b.Month {
		return a.Month < b.Month
	}
	return a.Day < b.Day
}
