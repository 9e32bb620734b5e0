package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	mongooptions "go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dakshpokar/UnifiedWebInsights/internal/domain/model"
	"github.com/dakshpokar/UnifiedWebInsights/pkg/metrics"
)

const (
	defaultDatabase   = "unified_web_insights"
	defaultCollection = "evaluations"
	connectTimeout    = 10 * time.Second
)

// MongoStore persists evaluations in a MongoDB collection, one document
// per evaluation keyed by its id. Pipeline transitions map to partial
// $set updates so concurrent readers always see a consistent record.
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection

	database       string
	collectionName string
}

// MongoOption applies a configuration option to the MongoStore.
type MongoOption func(*MongoStore)

// WithDatabase selects the database name.
func WithDatabase(name string) MongoOption {
	return func(s *MongoStore) {
		if name != "" {
			s.database = name
		}
	}
}

// WithCollection selects the collection name.
func WithCollection(name string) MongoOption {
	return func(s *MongoStore) {
		if name != "" {
			s.collectionName = name
		}
	}
}

// NewMongoStore connects to MongoDB and prepares the evaluation
// collection and its indexes.
func NewMongoStore(ctx context.Context, uri string, opts ...MongoOption) (*MongoStore, error) {
	s := &MongoStore{
		database:       defaultDatabase,
		collectionName: defaultCollection,
	}
	for _, opt := range opts {
		opt(s)
	}

	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, mongooptions.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connecting to mongodb: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		return nil, fmt.Errorf("pinging mongodb: %w", err)
	}

	s.client = client
	s.collection = client.Database(s.database).Collection(s.collectionName)

	// Query indexes for listing and user scoping.
	_, _ = s.collection.Indexes().CreateMany(connectCtx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	})

	return s, nil
}

// Close disconnects the underlying client.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *MongoStore) Create(ctx context.Context, ev *model.Evaluation) error {
	_, err := s.collection.InsertOne(ctx, ev)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateID
		}
		metrics.RecordStoreError()
		return fmt.Errorf("inserting evaluation: %w", err)
	}
	return nil
}

func (s *MongoStore) Get(ctx context.Context, id string) (*model.Evaluation, error) {
	var ev model.Evaluation
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&ev)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		metrics.RecordStoreError()
		return nil, fmt.Errorf("reading evaluation: %w", err)
	}
	// The lifecycle invariant holds at every read, even if a transition
	// write raced or was skipped.
	ev.Status = ev.DeriveStatus()
	return &ev, nil
}

func (s *MongoStore) SetSnapshot(ctx context.Context, id string, snap model.Snapshot) error {
	return s.set(ctx, id, bson.M{"site": snap})
}

func (s *MongoStore) SetResult(ctx context.Context, id string, dim model.Dimension, result model.AnalysisResult) error {
	return s.set(ctx, id, bson.M{dim.ResultKey(): result})
}

func (s *MongoStore) SetSynthesis(ctx context.Context, id string, report model.SynthesisReport) error {
	return s.set(ctx, id, bson.M{model.DimensionSynthesis.ResultKey(): report})
}

func (s *MongoStore) MarkComplete(ctx context.Context, id string) error {
	return s.set(ctx, id, bson.M{"status": model.StatusComplete})
}

func (s *MongoStore) SetError(ctx context.Context, id string, detail string) error {
	return s.set(ctx, id, bson.M{
		"status":         model.StatusErrored,
		"analysis_error": detail,
	})
}

func (s *MongoStore) Count(ctx context.Context) int {
	n, err := s.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		metrics.RecordStoreError()
		return 0
	}
	return int(n)
}

func (s *MongoStore) set(ctx context.Context, id string, fields bson.M) error {
	res, err := s.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		metrics.RecordStoreError()
		return fmt.Errorf("updating evaluation: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
