package docstore

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/miltrack/miltrack/internal/logging"
)

const mongoPermissionDenied = 13

// MongoStore is the real document-store backend. Collections and documents
// map directly onto MongoDB collections and documents; subscriptions are
// change streams. String identifiers are generated client-side and stored
// as _id, so ids stay opaque strings across backends.
type MongoStore struct {
	db     *mongo.Database
	logger logging.Logger
}

var _ Store = (*MongoStore)(nil)

// NewMongoStore connects to the document store and verifies the connection.
func NewMongoStore(ctx context.Context, uri, dbName string, logger logging.Logger) (*MongoStore, error) {
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, mapMongoError(err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		return nil, mapMongoError(err)
	}

	return &MongoStore{db: client.Database(dbName), logger: logger}, nil
}

// Close disconnects from the backend.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.db.Client().Disconnect(ctx)
}

// mapMongoError converts a driver failure into the capability taxonomy.
func mapMongoError(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrDocumentNotFound
	}
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) && cmdErr.Code == mongoPermissionDenied {
		return ErrPermissionDenied
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return ErrNetwork
	}
	if mongo.IsTimeout(err) || mongo.IsNetworkError(err) {
		return ErrNetwork
	}
	return fmt.Errorf("document store: %w", err)
}

// toBson converts a caller value into a bson document, failing with
// ErrInvalidData when the payload cannot round-trip.
func toBson(doc any) (bson.M, error) {
	stored, err := Encode(doc)
	if err != nil {
		return nil, err
	}
	return bson.M(stored), nil
}

func fromBson(m bson.M) Document {
	out := make(Document, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (s *MongoStore) Create(ctx context.Context, collection string, doc any) (string, error) {
	s.logger.Debug(ctx, "create document", "collection", collection)

	stored, err := toBson(doc)
	if err != nil {
		return "", err
	}

	id := uuid.NewString()
	stored["_id"] = id

	if _, err := s.db.Collection(collection).InsertOne(ctx, stored); err != nil {
		return "", mapMongoError(err)
	}
	return id, nil
}

func (s *MongoStore) Read(ctx context.Context, collection, id string) (Document, bool, error) {
	s.logger.Debug(ctx, "read document", "collection", collection, "id", id)

	var raw bson.M
	err := s.db.Collection(collection).FindOne(ctx, bson.M{"_id": id}).Decode(&raw)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, false, nil
		}
		return nil, false, mapMongoError(err)
	}

	doc := fromBson(raw)
	delete(doc, "_id")
	return doc, true, nil
}

func (s *MongoStore) Update(ctx context.Context, collection, id string, doc any) error {
	s.logger.Debug(ctx, "update document", "collection", collection, "id", id)

	stored, err := toBson(doc)
	if err != nil {
		return err
	}
	stored["_id"] = id

	res, err := s.db.Collection(collection).ReplaceOne(ctx, bson.M{"_id": id}, stored)
	if err != nil {
		return mapMongoError(err)
	}
	if res.MatchedCount == 0 {
		return ErrDocumentNotFound
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, collection, id string) error {
	s.logger.Debug(ctx, "delete document", "collection", collection, "id", id)

	res, err := s.db.Collection(collection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return mapMongoError(err)
	}
	if res.DeletedCount == 0 {
		return ErrDocumentNotFound
	}
	return nil
}

// queryFilter translates the portable Query filters into a bson filter.
func queryFilter(q Query) bson.M {
	filter := bson.M{}
	for _, f := range q.Filters() {
		switch f.Op {
		case OpEqual:
			filter[f.Field] = f.Value
		case OpGreaterThan:
			filter[f.Field] = bson.M{"$gt": f.Value}
		case OpLessThan:
			filter[f.Field] = bson.M{"$lt": f.Value}
		}
	}
	return filter
}

func (s *MongoStore) Find(ctx context.Context, collection string, q Query) ([]Document, error) {
	s.logger.Debug(ctx, "query", "collection", collection)

	opts := options.Find()
	if field, desc := q.Order(); field != "" {
		dir := 1
		if desc {
			dir = -1
		}
		opts = opts.SetSort(bson.D{{Key: field, Value: dir}})
	}
	if n := q.Max(); n > 0 {
		opts = opts.SetLimit(int64(n))
	}

	cur, err := s.db.Collection(collection).Find(ctx, queryFilter(q), opts)
	if err != nil {
		return nil, mapMongoError(err)
	}
	defer cur.Close(ctx)

	var results []Document
	for cur.Next(ctx) {
		var raw bson.M
		if err := cur.Decode(&raw); err != nil {
			return nil, ErrInvalidData
		}
		doc := fromBson(raw)
		delete(doc, "_id")
		results = append(results, doc)
	}
	if err := cur.Err(); err != nil {
		return nil, mapMongoError(err)
	}
	return results, nil
}

// WatchDocument opens a change stream scoped to one document. Cancelling
// the subscription closes the stream and releases the server cursor.
func (s *MongoStore) WatchDocument(ctx context.Context, collection, id string) (*Subscription, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"documentKey._id": id}}},
	}
	opts := options.ChangeStream().SetFullDocument(options.UpdateLookup)

	stream, err := s.db.Collection(collection).Watch(ctx, pipeline, opts)
	if err != nil {
		return nil, mapMongoError(err)
	}

	streamCtx, cancel := context.WithCancel(ctx)
	sub := newSubscription(watchBuffer, cancel)

	// Current state first, then live changes.
	doc, found, err := s.Read(ctx, collection, id)
	if err != nil {
		cancel()
		stream.Close(context.Background())
		return nil, err
	}
	sub.updates <- Snapshot{ID: id, Exists: found, Data: doc}

	go func() {
		defer close(sub.updates)
		defer stream.Close(context.Background())

		for stream.Next(streamCtx) {
			var event struct {
				OperationType string `bson:"operationType"`
				FullDocument  bson.M `bson:"fullDocument"`
			}
			if err := stream.Decode(&event); err != nil {
				continue
			}

			snap := Snapshot{ID: id}
			if event.OperationType != "delete" && event.FullDocument != nil {
				snap.Exists = true
				snap.Data = fromBson(event.FullDocument)
				delete(snap.Data, "_id")
			}

			select {
			case sub.updates <- snap:
			case <-streamCtx.Done():
				return
			}
		}
	}()

	return sub, nil
}

// WatchQuery opens a change stream on the collection and re-runs the query
// after every relevant event, pushing full result sets.
func (s *MongoStore) WatchQuery(ctx context.Context, collection string, q Query) (*QuerySubscription, error) {
	stream, err := s.db.Collection(collection).Watch(ctx, mongo.Pipeline{})
	if err != nil {
		return nil, mapMongoError(err)
	}

	streamCtx, cancel := context.WithCancel(ctx)
	sub := newQuerySubscription(watchBuffer, cancel)

	initial, err := s.Find(ctx, collection, q)
	if err != nil {
		cancel()
		stream.Close(context.Background())
		return nil, err
	}
	sub.updates <- initial

	go func() {
		defer close(sub.updates)
		defer stream.Close(context.Background())

		for stream.Next(streamCtx) {
			results, err := s.Find(streamCtx, collection, q)
			if err != nil {
				continue
			}
			select {
			case sub.updates <- results:
			case <-streamCtx.Done():
				return
			}
		}
	}()

	return sub, nil
}
