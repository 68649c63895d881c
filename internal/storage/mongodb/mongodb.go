// Package mongodb provides a MongoDB-backed implementation of the storage.Store interface.
package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/mmynk/todolist/internal/storage"
)

// Ensure MongoStore implements storage.Store
var _ storage.Store = (*MongoStore)(nil)

// Collection names match the ones the API has always written to.
const (
	usersCollection      = "users"
	todoGroupsCollection = "todogroups"
	todosCollection      = "todos"
)

// Config holds the connection settings for the MongoDB store.
type Config struct {
	URI      string
	Database string

	// Transactions runs the group cascade delete in a multi-document
	// transaction. Requires a replica set or sharded cluster.
	Transactions bool

	// ConnectTimeout bounds the initial connect and ping.
	ConnectTimeout time.Duration
}

// MongoStore implements storage.Store using MongoDB.
type MongoStore struct {
	client       *mongo.Client
	users        *mongo.Collection
	todoGroups   *mongo.Collection
	todos        *mongo.Collection
	transactions bool
}

// New connects to MongoDB, verifies the connection and ensures indexes exist.
func New(ctx context.Context, cfg Config) (*MongoStore, error) {
	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	db := client.Database(cfg.Database)
	s := &MongoStore{
		client:       client,
		users:        db.Collection(usersCollection),
		todoGroups:   db.Collection(todoGroupsCollection),
		todos:        db.Collection(todosCollection),
		transactions: cfg.Transactions,
	}

	if err := s.ensureIndexes(ctx); err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to create indexes: %w", err)
	}

	return s, nil
}

// ensureIndexes creates the non-unique lookup indexes.
func (s *MongoStore) ensureIndexes(ctx context.Context) error {
	indexes := []struct {
		coll  *mongo.Collection
		field string
	}{
		{s.users, "email"},
		{s.todoGroups, "owner"},
		{s.todos, "group"},
	}
	for _, idx := range indexes {
		_, err := idx.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys: bson.D{{Key: idx.field, Value: 1}},
		})
		if err != nil {
			return fmt.Errorf("index %s.%s: %w", idx.coll.Name(), idx.field, err)
		}
	}
	return nil
}

// Ping checks that the primary is reachable.
func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// objectID parses a hex id. Ids that are not valid ObjectIDs cannot match
// any document, so callers treat ok == false as "not found".
func objectID(id string) (oid primitive.ObjectID, ok bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return oid, true
}
