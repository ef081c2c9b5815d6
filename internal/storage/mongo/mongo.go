// Package mongo provides a MongoDB-backed implementation of storage.Store.
//
// Each ledger collection maps to a MongoDB collection of documents
// {_id: key, seq: n, payload: json}. seq is drawn from a counters
// collection when a key is first inserted and orders Values.
package mongo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mmynk/chamaa/internal/models"
	"github.com/mmynk/chamaa/internal/storage"
)

var _ storage.Store = (*MongoStore)(nil)

const countersCollection = "counters"

type document struct {
	Key     string `bson:"_id"`
	Seq     int64  `bson:"seq"`
	Payload string `bson:"payload"`
}

// Collection is a storage.Collection backed by one MongoDB collection.
type Collection[V any] struct {
	coll     *mongo.Collection
	counters *mongo.Collection
	name     string
}

func newCollection[V any](db *mongo.Database, name string) *Collection[V] {
	return &Collection[V]{
		coll:     db.Collection(name),
		counters: db.Collection(countersCollection),
		name:     name,
	}
}

// Get implements storage.Collection.
func (c *Collection[V]) Get(ctx context.Context, key string) (V, bool, error) {
	var zero V
	var doc document
	err := c.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return zero, false, nil
	}
	if err != nil {
		return zero, false, fmt.Errorf("failed to get %s %q: %w", c.name, key, err)
	}

	var v V
	if err := json.Unmarshal([]byte(doc.Payload), &v); err != nil {
		return zero, false, fmt.Errorf("failed to decode %s %q: %w", c.name, key, err)
	}
	return v, true, nil
}

// Insert implements storage.Collection. The sequence number is only set on
// the first insert, so overwriting keeps the key's position.
func (c *Collection[V]) Insert(ctx context.Context, key string, value V) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s %q: %w", c.name, key, err)
	}

	seq, err := c.nextSeq(ctx)
	if err != nil {
		return err
	}

	update := bson.M{
		"$set":         bson.M{"payload": string(payload)},
		"$setOnInsert": bson.M{"seq": seq},
	}
	if _, err := c.coll.UpdateByID(ctx, key, update, options.Update().SetUpsert(true)); err != nil {
		return fmt.Errorf("failed to insert %s %q: %w", c.name, key, err)
	}
	return nil
}

// Delete implements storage.Collection.
func (c *Collection[V]) Delete(ctx context.Context, key string) error {
	if _, err := c.coll.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return fmt.Errorf("failed to delete %s %q: %w", c.name, key, err)
	}
	return nil
}

// Values implements storage.Collection.
func (c *Collection[V]) Values(ctx context.Context) ([]V, error) {
	cursor, err := c.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "seq", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", c.name, err)
	}
	defer cursor.Close(ctx)

	values := []V{}
	for cursor.Next(ctx) {
		var doc document
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", c.name, err)
		}
		var v V
		if err := json.Unmarshal([]byte(doc.Payload), &v); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", c.name, err)
		}
		values = append(values, v)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s: %w", c.name, err)
	}
	return values, nil
}

// nextSeq atomically increments this collection's counter.
func (c *Collection[V]) nextSeq(ctx context.Context) (int64, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)
	err := c.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": c.name},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		opts,
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("failed to allocate %s sequence: %w", c.name, err)
	}
	return counter.Seq, nil
}

// MongoStore implements storage.Store on a MongoDB database.
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database

	admins        *Collection[models.Admin]
	groups        *Collection[models.Group]
	members       *Collection[models.Member]
	contributions *Collection[models.Contribution]
}

// New connects to uri, verifies the connection and prepares the seq
// indexes in database.
func New(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	db := client.Database(database)
	s := &MongoStore{
		client:        client,
		db:            db,
		admins:        newCollection[models.Admin](db, storage.AdminsCollection),
		groups:        newCollection[models.Group](db, storage.GroupsCollection),
		members:       newCollection[models.Member](db, storage.MembersCollection),
		contributions: newCollection[models.Contribution](db, storage.ContributionsCollection),
	}

	for _, name := range []string{
		storage.AdminsCollection,
		storage.GroupsCollection,
		storage.MembersCollection,
		storage.ContributionsCollection,
	} {
		_, err := db.Collection(name).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys: bson.D{{Key: "seq", Value: 1}},
		})
		if err != nil {
			client.Disconnect(context.Background())
			return nil, fmt.Errorf("create %s index: %w", name, err)
		}
	}

	return s, nil
}

func (s *MongoStore) Admins() storage.Collection[models.Admin]   { return s.admins }
func (s *MongoStore) Groups() storage.Collection[models.Group]   { return s.groups }
func (s *MongoStore) Members() storage.Collection[models.Member] { return s.members }
func (s *MongoStore) Contributions() storage.Collection[models.Contribution] {
	return s.contributions
}

// Database returns the underlying database handle.
func (s *MongoStore) Database() *mongo.Database { return s.db }

// Close disconnects the client.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}
