package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/appstate"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// appStateDocument keeps the value as its JSON text so every store reads back identical bytes.
type appStateDocument struct {
	DeviceID  string    `bson:"device_id"`
	Key       string    `bson:"key"`
	Value     string    `bson:"value"`
	UpdatedAt time.Time `bson:"updated_at"`
}

type appStateRepository struct {
	collection *mongo.Collection
}

func NewAppStateRepository(collection *mongo.Collection) appstate.AppStateRepository {
	return &appStateRepository{collection: collection}
}

// EnsureAppStateIndexes creates the unique device/key index and the prune index.
func EnsureAppStateIndexes(ctx context.Context, collection *mongo.Collection) error {
	_, err := collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "device_id", Value: 1}, {Key: "key", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "updated_at", Value: 1}},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create app_state indexes: %w", err)
	}
	return nil
}

func (r *appStateRepository) Get(ctx context.Context, deviceID, key string) ([]byte, error) {
	var doc appStateDocument
	err := r.collection.FindOne(ctx, bson.M{"device_id": deviceID, "key": key}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, appstate.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get app state %s: %w", key, err)
	}
	return []byte(doc.Value), nil
}

func (r *appStateRepository) Put(ctx context.Context, deviceID, key string, value []byte) error {
	now := time.Now().UTC()

	_, err := r.collection.UpdateOne(ctx,
		bson.M{"device_id": deviceID, "key": key},
		bson.M{"$set": bson.M{"value": string(value), "updated_at": now}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to put app state %s: %w", key, err)
	}

	_, err = r.collection.UpdateMany(ctx,
		bson.M{"device_id": deviceID, "key": bson.M{"$ne": key}},
		bson.M{"$set": bson.M{"updated_at": now}},
	)
	if err != nil {
		return fmt.Errorf("failed to touch app state: %w", err)
	}
	return nil
}

func (r *appStateRepository) Delete(ctx context.Context, deviceID string, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	_, err := r.collection.DeleteMany(ctx, bson.M{"device_id": deviceID, "key": bson.M{"$in": keys}})
	if err != nil {
		return fmt.Errorf("failed to delete app state: %w", err)
	}
	return nil
}

func (r *appStateRepository) Clear(ctx context.Context, deviceID string) error {
	if _, err := r.collection.DeleteMany(ctx, bson.M{"device_id": deviceID}); err != nil {
		return fmt.Errorf("failed to clear app state: %w", err)
	}
	return nil
}

func (r *appStateRepository) PruneBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.collection.DeleteMany(ctx, bson.M{"updated_at": bson.M{"$lt": cutoff.UTC()}})
	if err != nil {
		return 0, fmt.Errorf("failed to prune app state: %w", err)
	}
	return res.DeletedCount, nil
}
