package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const mongoCollection = "kv"

type kvDoc struct {
	Key       string    `bson:"_id"`
	Value     []byte    `bson:"value"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// MongoRepository stores documents in a single MongoDB collection keyed by _id.
type MongoRepository struct {
	client *mongo.Client
	col    *mongo.Collection
}

// NewMongoRepository connects to uri and uses the kv collection of database db.
func NewMongoRepository(ctx context.Context, uri, db string) (*MongoRepository, error) {
	cl, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := cl.Ping(ctx, nil); err != nil {
		_ = cl.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return &MongoRepository{
		client: cl,
		col:    cl.Database(db).Collection(mongoCollection),
	}, nil
}

func (r *MongoRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var doc kvDoc
	err := r.col.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("mongo get %q: %w", key, err)
	}
	return doc.Value, nil
}

func (r *MongoRepository) Set(ctx context.Context, key string, value []byte) error {
	doc := kvDoc{Key: key, Value: value, UpdatedAt: clock.Now().UTC()}
	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": key},
		bson.M{"$set": doc},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("mongo set %q: %w", key, err)
	}
	return nil
}

func (r *MongoRepository) Close(ctx context.Context) { _ = r.client.Disconnect(ctx) }
