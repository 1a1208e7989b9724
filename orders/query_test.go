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

func TestListDefaultsAndPaging(t *testing.T) {
	f := newFixture(t)
	delivered := f.now.Add(-time.Hour)
	f.orders.found = []models.Order{
		{ID: primitive.NewObjectID(), Status: models.OrderDelivered, DeliveredAt: &delivered},
	}
	f.orders.total = 25

	page, err := f.svc.List(context.Background(), ListFilter{}, 0, 0)
	require.NoError(t, err)

	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 1, page.Count)
	assert.Equal(t, int64(25), page.Total)
	assert.Equal(t, 3, page.Pages)

	// Delivered rows carry the derived return window.
	require.NotNil(t, page.Orders[0].ReturnWindowExpires)
	assert.Equal(t, delivered.Add(7*24*time.Hour), *page.Orders[0].ReturnWindowExpires)
}

func TestListEmptyResultIsNotAnError(t *testing.T) {
	f := newFixture(t)
	f.orders.found = nil
	f.orders.total = 0

	page, err := f.svc.List(context.Background(), ListFilter{Search: "nobody"}, 1, 10)
	require.NoError(t, err)
	assert.NotNil(t, page.Orders)
	assert.Empty(t, page.Orders)
	assert.Equal(t, int64(0), page.Total)
	assert.Equal(t, 0, page.Pages)
}

func TestListMineRequiresValidUser(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.ListMine(context.Background(), "", "", 1, 10)
	assert.Equal(t, KindUnauthenticated, KindOf(err))

	_, err = f.svc.ListMine(context.Background(), "garbage", "", 1, 10)
	assert.Equal(t, KindUnauthenticated, KindOf(err))

	_, err = f.svc.ListMine(context.Background(), primitive.NewObjectID().Hex(), models.OrderPending, 1, 10)
	assert.NoError(t, err)
}

func TestGetByIDAuthorization(t *testing.T) {
	f := newFixture(t)
	order := seedOrder(f, nil)

	got, err := f.svc.GetByID(context.Background(), order.ID.Hex(), order.User.Hex(), false)
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)

	_, err = f.svc.GetByID(context.Background(), order.ID.Hex(), primitive.NewObjectID().Hex(), false)
	assert.Equal(t, KindForbidden, KindOf(err))

	_, err = f.svc.GetByID(context.Background(), order.ID.Hex(), primitive.NewObjectID().Hex(), true)
	assert.NoError(t, err)

	_, err = f.svc.GetByID(context.Background(), "bad-id", order.User.Hex(), false)
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestExportReturnsAllOrders(t *testing.T) {
	f := newFixture(t)
	f.orders.all = []models.Order{
		{ID: primitive.NewObjectID()},
		{ID: primitive.NewObjectID()},
	}

	all, err := f.svc.Export(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
