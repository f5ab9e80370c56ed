package store

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/beanhouse-cafe/api/internal/enum"
)

const (
	ordersCollection = "orders"
	menuCollection   = "menu_items"

	mongoConnectTimeout = 10 * time.Second
)

// MongoStore is the durable Store implementation backed by a document database.
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewMongoStore connects to the given URI and pings the server so a dead
// database is caught at startup, not on the first request.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return &MongoStore{client: client, db: client.Database(database)}, nil
}

func (s *MongoStore) Backend() string { return enum.BackendMongo }

func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// --- Menu ---

func (s *MongoStore) ListMenu(ctx context.Context) ([]MenuItem, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := s.db.Collection(menuCollection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list menu: %w", err)
	}
	defer cursor.Close(ctx)

	items := []MenuItem{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("decode menu: %w", err)
	}
	return items, nil
}

func (s *MongoStore) CreateMenuItem(ctx context.Context, item MenuItem) (MenuItem, error) {
	taken, err := s.menuNameTaken(ctx, item.Name, "")
	if err != nil {
		return MenuItem{}, err
	}
	if taken {
		return MenuItem{}, ErrDuplicateName
	}
	if _, err := s.db.Collection(menuCollection).InsertOne(ctx, item); err != nil {
		return MenuItem{}, fmt.Errorf("insert menu item: %w", err)
	}
	return item, nil
}

func (s *MongoStore) UpdateMenuItem(ctx context.Context, item MenuItem) (MenuItem, error) {
	taken, err := s.menuNameTaken(ctx, item.Name, item.ID)
	if err != nil {
		return MenuItem{}, err
	}
	if taken {
		return MenuItem{}, ErrDuplicateName
	}

	res, err := s.db.Collection(menuCollection).ReplaceOne(ctx, bson.M{"_id": item.ID}, item)
	if err != nil {
		return MenuItem{}, fmt.Errorf("update menu item: %w", err)
	}
	if res.MatchedCount == 0 {
		return MenuItem{}, ErrNotFound
	}
	return item, nil
}

func (s *MongoStore) DeleteMenuItem(ctx context.Context, id string) error {
	res, err := s.db.Collection(menuCollection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete menu item: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// menuNameTaken reports whether another item already uses the name,
// matched case-insensitively. excludeID skips the item being updated.
func (s *MongoStore) menuNameTaken(ctx context.Context, name, excludeID string) (bool, error) {
	filter := bson.M{"name": primitive.Regex{
		Pattern: "^" + regexp.QuoteMeta(name) + "$",
		Options: "i",
	}}
	if excludeID != "" {
		filter["_id"] = bson.M{"$ne": excludeID}
	}
	err := s.db.Collection(menuCollection).FindOne(ctx, filter).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check menu name: %w", err)
	}
	return true, nil
}

// --- Orders ---

func (s *MongoStore) InsertOrders(ctx context.Context, orders []Order) error {
	docs := make([]interface{}, len(orders))
	for i, o := range orders {
		docs[i] = o
	}
	if _, err := s.db.Collection(ordersCollection).InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("insert orders: %w", err)
	}
	return nil
}

func (s *MongoStore) ListPendingOrders(ctx context.Context) ([]Order, error) {
	return s.findOrders(ctx,
		bson.M{"status": enum.OrderStatusPending},
		bson.D{{Key: "created_at", Value: 1}})
}

func (s *MongoStore) ListFinishedOrders(ctx context.Context) ([]Order, error) {
	return s.findOrders(ctx,
		bson.M{"status": bson.M{"$in": []string{enum.OrderStatusCompleted, enum.OrderStatusCanceled}}},
		bson.D{{Key: "updated_at", Value: -1}})
}

func (s *MongoStore) ListAllOrders(ctx context.Context) ([]Order, error) {
	return s.findOrders(ctx, bson.M{}, bson.D{{Key: "created_at", Value: -1}})
}

func (s *MongoStore) findOrders(ctx context.Context, filter bson.M, sort bson.D) ([]Order, error) {
	cursor, err := s.db.Collection(ordersCollection).Find(ctx, filter, options.Find().SetSort(sort))
	if err != nil {
		return nil, fmt.Errorf("find orders: %w", err)
	}
	defer cursor.Close(ctx)

	orders := []Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}
	return orders, nil
}

// UpdateOrderStatus applies the transition atomically: the filter requires the
// order to still be pending, so a stale click against a finished order never
// overwrites the terminal state. When no document matches, a follow-up fetch
// distinguishes "unknown id" from "already terminal".
func (s *MongoStore) UpdateOrderStatus(ctx context.Context, id, status string, updatedAt time.Time) (Order, error) {
	var updated Order
	err := s.db.Collection(ordersCollection).FindOneAndUpdate(ctx,
		bson.M{"_id": id, "status": enum.OrderStatusPending},
		bson.M{"$set": bson.M{"status": status, "updated_at": updatedAt}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err == nil {
		return updated, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return Order{}, fmt.Errorf("update order status: %w", err)
	}

	fetchErr := s.db.Collection(ordersCollection).FindOne(ctx, bson.M{"_id": id}).Err()
	if errors.Is(fetchErr, mongo.ErrNoDocuments) {
		return Order{}, ErrNotFound
	}
	if fetchErr != nil {
		return Order{}, fmt.Errorf("fetch order for status update: %w", fetchErr)
	}
	return Order{}, ErrAlreadyFinal
}
