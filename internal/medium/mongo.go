package medium

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	defaultMongoTimeout = 10 * time.Second
	mongoCollection     = "kv"
)

// MongoConfig captures the settings for a MongoDB-backed medium.
type MongoConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Mongo stores each key as {_id: key, value: text} in one collection
type Mongo struct {
	client *mongo.Client
	coll   *mongo.Collection
}

type mongoEntry struct {
	Key   string `bson:"_id"`
	Value string `bson:"value"`
}

// ConnectMongo establishes a client and verifies connectivity with a ping.
func ConnectMongo(ctx context.Context, cfg MongoConfig) (*Mongo, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultMongoTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	return &Mongo{
		client: client,
		coll:   client.Database(cfg.Database).Collection(mongoCollection),
	}, nil
}

func (m *Mongo) Get(ctx context.Context, key string) (string, bool, error) {
	var e mongoEntry
	err := m.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&e)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("mongo get %s: %w", key, err)
	}
	return e.Value, true, nil
}

func (m *Mongo) Set(ctx context.Context, key, value string) error {
	_, err := m.coll.ReplaceOne(ctx, bson.M{"_id": key}, mongoEntry{Key: key, Value: value},
		options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("mongo set %s: %w", key, err)
	}
	return nil
}

func (m *Mongo) Delete(ctx context.Context, key string) error {
	if _, err := m.coll.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return fmt.Errorf("mongo delete %s: %w", key, err)
	}
	return nil
}

func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}
