package orders

import (
	"context"
	"math"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"nursery/models"
)

// Page is one page of the order listing plus the counters clients page with.
type Page struct {
	Orders []models.Order `json:"orders"`
	Count  int            `json:"count"`
	Total  int64          `json:"total"`
	Page   int            `json:"page"`
	Pages  int            `json:"pages"`
}

// List is the admin listing: optional status, creation date range and free
// text search, newest first.
func (s *Service) List(ctx context.Context, f ListFilter, page, limit int) (*Page, error) {
	return s.find(ctx, f, page, limit)
}

// ListMine scopes the listing to one buyer.
func (s *Service) ListMine(ctx context.Context, userID string, status models.OrderStatus, page, limit int) (*Page, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if userID == "" || err != nil {
		return nil, Unauthenticated("user authentication required")
	}
	return s.find(ctx, ListFilter{User: uid, Status: status}, page, limit)
}

func (s *Service) find(ctx context.Context, f ListFilter, page, limit int) (*Page, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	found, total, err := s.orders.Find(ctx, f, page, limit)
	if err != nil {
		return nil, Internal("failed to fetch orders", err)
	}
	if found == nil {
		found = []models.Order{}
	}
	for i := range found {
		found[i].ComputeReturnWindow()
	}
	return &Page{
		Orders: found,
		Count:  len(found),
		Total:  total,
		Page:   page,
		Pages:  int(math.Ceil(float64(total) / float64(limit))),
	}, nil
}

// Export returns every order for offline reporting.
func (s *Service) Export(ctx context.Context) ([]models.Order, error) {
	all, err := s.orders.All(ctx)
	if err != nil {
		return nil, Internal("failed to fetch orders", err)
	}
	return all, nil
}

// GetByID returns a single order to its owner or to an admin.
func (s *Service) GetByID(ctx context.Context, id, requesterID string, isAdmin bool) (*models.Order, error) {
	order, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.User.Hex() != requesterID && !isAdmin {
		return nil, Forbidden("not authorized to view this order")
	}
	order.ComputeReturnWindow()
	return order, nil
}
