package orders

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"nursery/models"
)

// MongoOrderStore keeps order aggregates in a single collection.
type MongoOrderStore struct {
	col *mongo.Collection
}

func NewMongoOrderStore(col *mongo.Collection) *MongoOrderStore {
	return &MongoOrderStore{col: col}
}

func (s *MongoOrderStore) Insert(ctx context.Context, o *models.Order) error {
	_, err := s.col.InsertOne(ctx, o)
	return err
}

func (s *MongoOrderStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	var o models.Order
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&o)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (s *MongoOrderStore) FindByIdempotencyKey(ctx context.Context, key string) (*models.Order, error) {
	var o models.Order
	err := s.col.FindOne(ctx, bson.M{"idempotencyKey": key}).Decode(&o)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (s *MongoOrderStore) Save(ctx context.Context, o *models.Order) error {
	_, err := s.col.ReplaceOne(ctx, bson.M{"_id": o.ID}, o)
	return err
}

func (s *MongoOrderStore) Find(ctx context.Context, f ListFilter, page, limit int) ([]models.Order, int64, error) {
	filter := buildOrderFilter(f)

	total, err := s.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit)).
		SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}

	var found []models.Order
	if err := cursor.All(ctx, &found); err != nil {
		return nil, 0, err
	}
	return found, total, nil
}

func (s *MongoOrderStore) All(ctx context.Context) ([]models.Order, error) {
	cursor, err := s.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var found []models.Order
	if err := cursor.All(ctx, &found); err != nil {
		return nil, err
	}
	return found, nil
}

// buildOrderFilter translates a ListFilter to a Mongo query. Search matches
// buyer email and names case-insensitively, plus exact id when the text is
// valid hex.
func buildOrderFilter(f ListFilter) bson.M {
	filter := bson.M{}
	if !f.User.IsZero() {
		filter["user"] = f.User
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.StartDate != nil && f.EndDate != nil {
		filter["createdAt"] = bson.M{"$gte": *f.StartDate, "$lte": *f.EndDate}
	}
	if f.Search != "" {
		re := primitive.Regex{Pattern: f.Search, Options: "i"}
		or := []bson.M{
			{"userDetails.email": re},
			{"userDetails.firstName": re},
			{"userDetails.lastName": re},
		}
		if oid, err := primitive.ObjectIDFromHex(f.Search); err == nil {
			or = append(or, bson.M{"_id": oid})
		}
		filter["$or"] = or
	}
	return filter
}

// MongoPlantStore is the order subsystem's view of the plant catalog.
type MongoPlantStore struct {
	col *mongo.Collection
}

func NewMongoPlantStore(col *mongo.Collection) *MongoPlantStore {
	return &MongoPlantStore{col: col}
}

func (s *MongoPlantStore) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Plant, error) {
	cursor, err := s.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	var plants []models.Plant
	if err := cursor.All(ctx, &plants); err != nil {
		return nil, err
	}
	return plants, nil
}

// AdjustStock is a single atomic $inc on stockQuantity.<size>. The floor
// variant adds a $gte guard to the filter so the counter cannot go below
// zero; losing that guard to a concurrent writer surfaces as
// ErrInsufficientStock.
func (s *MongoPlantStore) AdjustStock(ctx context.Context, id primitive.ObjectID, size string, delta int, enforceFloor bool) error {
	filter := bson.M{"_id": id}
	if enforceFloor && delta < 0 {
		filter["stockQuantity."+size] = bson.M{"$gte": -delta}
	}
	res, err := s.col.UpdateOne(ctx, filter, bson.M{"$inc": bson.M{"stockQuantity." + size: delta}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		if enforceFloor {
			return ErrInsufficientStock
		}
		return mongo.ErrNoDocuments
	}
	return nil
}

func (s *MongoPlantStore) Count(ctx context.Context) (int64, error) {
	return s.col.CountDocuments(ctx, bson.M{})
}

// MongoUserStore covers the order history append and the analytics headcount.
type MongoUserStore struct {
	col *mongo.Collection
}

func NewMongoUserStore(col *mongo.Collection) *MongoUserStore {
	return &MongoUserStore{col: col}
}

func (s *MongoUserStore) AppendOrder(ctx context.Context, userID, orderID primitive.ObjectID) error {
	_, err := s.col.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$push": bson.M{"orders": orderID}})
	return err
}

func (s *MongoUserStore) Count(ctx context.Context) (int64, error) {
	return s.col.CountDocuments(ctx, bson.M{})
}

// MongoNotificationSink writes notification records for the admin dashboard.
type MongoNotificationSink struct {
	col *mongo.Collection
}

func NewMongoNotificationSink(col *mongo.Collection) *MongoNotificationSink {
	return &MongoNotificationSink{col: col}
}

func (s *MongoNotificationSink) Notify(ctx context.Context, title, message, kind string) error {
	_, err := s.col.InsertOne(ctx, models.Notification{
		ID:        primitive.NewObjectID(),
		Title:     title,
		Message:   message,
		Type:      kind,
		Read:      false,
		CreatedAt: time.Now(),
	})
	return err
}
