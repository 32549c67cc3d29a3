package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/polyskel/pkg/errors"
	"github.com/matzehuels/polyskel/pkg/observability"
)

const collectionSkeletons = "skeletons"

// MongoStore persists skeleton documents in a MongoDB collection.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to MongoDB and returns a store over the given
// database. The connection is verified with a ping so misconfiguration
// surfaces at startup, not on first request.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "connect to mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeStore, err, "ping mongodb")
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(database).Collection(collectionSkeletons),
	}, nil
}

// Save inserts or replaces a document by its ID.
func (s *MongoStore) Save(ctx context.Context, doc SkeletonDocument) error {
	start := time.Now()
	opts := options.Replace().SetUpsert(true)
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, opts)
	observability.Store().OnStoreWrite(ctx, collectionSkeletons, time.Since(start), err)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "save skeleton %s", doc.ID)
	}
	return nil
}

// Get retrieves a document by ID.
func (s *MongoStore) Get(ctx context.Context, id string) (SkeletonDocument, error) {
	start := time.Now()
	var doc SkeletonDocument
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	observability.Store().OnStoreRead(ctx, collectionSkeletons, err == nil, time.Since(start))
	if err == mongo.ErrNoDocuments {
		return SkeletonDocument{}, errors.New(errors.ErrCodeSkeletonNotFound, "skeleton %s not found", id)
	}
	if err != nil {
		return SkeletonDocument{}, errors.Wrap(errors.ErrCodeStore, err, "load skeleton %s", id)
	}
	return doc, nil
}

// ListRecent returns up to limit documents, newest first.
func (s *MongoStore) ListRecent(ctx context.Context, limit int) ([]SkeletonDocument, error) {
	if limit <= 0 {
		limit = 20
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))
	cur, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "list skeletons")
	}
	defer cur.Close(ctx)

	var docs []SkeletonDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "decode skeletons")
	}
	return docs, nil
}

// Delete removes a document by ID.
func (s *MongoStore) Delete(ctx context.Context, id string) error {
	_, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "delete skeleton %s", id)
	}
	return nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)
