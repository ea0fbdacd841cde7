// Package mongo keeps every document of the store in a single MongoDB
// collection keyed by path.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/BruksfildServices01/gym-scheduler/internal/logs"
	"github.com/BruksfildServices01/gym-scheduler/internal/store"
	"github.com/BruksfildServices01/gym-scheduler/internal/store/notify"
)

const collectionName = "documents"

type row struct {
	Path       string         `bson:"_id"`
	Collection string         `bson:"collection"`
	Data       map[string]any `bson:"data"`
	Version    int64          `bson:"version"`
	CreatedAt  time.Time      `bson:"createdAt"`
	UpdatedAt  time.Time      `bson:"updatedAt"`
}

type Store struct {
	db       *mongo.Database
	coll     *mongo.Collection
	notifier notify.Notifier
}

// Connect opens a client whose nested documents decode as maps.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true})

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return client, nil
}

func New(ctx context.Context, db *mongo.Database, notifier notify.Notifier) (*Store, error) {
	coll := db.Collection(collectionName)

	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "collection", Value: 1}},
	})
	if err != nil {
		return nil, fmt.Errorf("create collection index: %w", err)
	}

	return &Store{db: db, coll: coll, notifier: notifier}, nil
}

var _ store.Store = (*Store)(nil)

// --------------------------------------------------
// Reads
// --------------------------------------------------

func (s *Store) Get(ctx context.Context, path string) (*store.Doc, error) {
	return get(ctx, s.coll, path)
}

func (s *Store) Query(ctx context.Context, collection string, filters ...store.Filter) ([]store.Doc, error) {
	filter := bson.M{"collection": collection}
	for _, f := range filters {
		switch f.Op {
		// Equality against an array field matches its elements, which is
		// exactly array-contains.
		case store.OpEqual, store.OpArrayContains:
			filter["data."+f.Field] = store.NormalizeValue(f.Value)
		default:
			return nil, fmt.Errorf("unsupported filter op %q", f.Op)
		}
	}

	cur, err := s.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", collection, err)
	}
	defer cur.Close(ctx)

	out := []store.Doc{}
	for cur.Next(ctx) {
		var r row
		if err := cur.Decode(&r); err != nil {
			return nil, fmt.Errorf("decode %s: %w", collection, err)
		}
		d, err := toDoc(r)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("query %s: %w", collection, err)
	}
	return out, nil
}

func (s *Store) Subscribe(ctx context.Context, collection string, filters ...store.Filter) (<-chan []store.Doc, error) {
	signals, err := s.notifier.Subscribe(ctx, collection)
	if err != nil {
		return nil, err
	}
	return store.Follow(ctx, signals, func(ctx context.Context) ([]store.Doc, error) {
		return s.Query(ctx, collection, filters...)
	}), nil
}

// --------------------------------------------------
// Writes
// --------------------------------------------------

func (s *Store) Create(ctx context.Context, collection string, data map[string]any) (string, error) {
	id := uuid.NewString()
	path := store.Join(collection, id)
	now := time.Now()

	_, err := s.coll.InsertOne(ctx, row{
		Path:       path,
		Collection: collection,
		Data:       orEmpty(data),
		Version:    1,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if mongo.IsDuplicateKeyError(err) {
		return "", store.ErrExists
	}
	if err != nil {
		return "", fmt.Errorf("create in %s: %w", collection, err)
	}
	s.publish(ctx, collection)
	return id, nil
}

func (s *Store) Set(ctx context.Context, path string, data map[string]any) error {
	if err := set(ctx, s.coll, path, data); err != nil {
		return err
	}
	s.publishPath(ctx, path)
	return nil
}

func (s *Store) Update(ctx context.Context, path string, data map[string]any) error {
	return s.merge(ctx, path, data, nil)
}

func (s *Store) UpdateIf(ctx context.Context, path string, version int64, data map[string]any) error {
	return s.merge(ctx, path, data, &version)
}

func (s *Store) merge(ctx context.Context, path string, data map[string]any, version *int64) error {
	filter := bson.M{"_id": path}
	if version != nil {
		filter["version"] = *version
	}

	fields := bson.M{"updatedAt": time.Now()}
	for k, v := range data {
		fields["data."+k] = v
	}

	res, err := s.coll.UpdateOne(ctx, filter, bson.M{
		"$set": fields,
		"$inc": bson.M{"version": 1},
	})
	if err != nil {
		return fmt.Errorf("update %s: %w", path, err)
	}

	if res.MatchedCount == 0 {
		if _, err := s.Get(ctx, path); err != nil {
			return err
		}
		return store.ErrConflict
	}

	s.publishPath(ctx, path)
	return nil
}

func (s *Store) Delete(ctx context.Context, path string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": path})
	if err != nil {
		return fmt.Errorf("delete %s: %w", path, err)
	}
	if res.DeletedCount > 0 {
		s.publishPath(ctx, path)
	}
	return nil
}

// --------------------------------------------------
// Transactions
// --------------------------------------------------

// RunTransaction needs a replica set; WithTransaction retries fn on
// transient write conflicts.
func (s *Store) RunTransaction(ctx context.Context, fn func(ctx context.Context, tx store.Tx) error) error {
	sess, err := s.db.Client().StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer sess.EndSession(ctx)

	var tx *mongoTx
	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		tx = &mongoTx{ctx: sc, coll: s.coll}
		return nil, fn(sc, tx)
	})
	if err != nil {
		return err
	}

	for _, path := range tx.touched {
		s.publishPath(ctx, path)
	}
	return nil
}

type mongoTx struct {
	ctx     context.Context
	coll    *mongo.Collection
	touched []string
}

func (t *mongoTx) Get(path string) (*store.Doc, error) {
	return get(t.ctx, t.coll, path)
}

func (t *mongoTx) Set(path string, data map[string]any) error {
	t.touched = append(t.touched, path)
	return set(t.ctx, t.coll, path, data)
}

func (t *mongoTx) Delete(path string) error {
	t.touched = append(t.touched, path)
	_, err := t.coll.DeleteOne(t.ctx, bson.M{"_id": path})
	return err
}

// --------------------------------------------------
// Helpers
// --------------------------------------------------

func get(ctx context.Context, coll *mongo.Collection, path string) (*store.Doc, error) {
	var r row
	err := coll.FindOne(ctx, bson.M{"_id": path}).Decode(&r)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", path, err)
	}
	return toDoc(r)
}

func set(ctx context.Context, coll *mongo.Collection, path string, data map[string]any) error {
	if !store.ValidDocPath(path) {
		return fmt.Errorf("invalid document path %q", path)
	}
	collection, _ := store.Split(path)
	now := time.Now()

	_, err := coll.UpdateOne(ctx,
		bson.M{"_id": path},
		bson.M{
			"$set": bson.M{
				"collection": collection,
				"data":       orEmpty(data),
				"updatedAt":  now,
			},
			"$inc":         bson.M{"version": 1},
			"$setOnInsert": bson.M{"createdAt": now},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("set %s: %w", path, err)
	}
	return nil
}

func toDoc(r row) (*store.Doc, error) {
	data, err := store.Normalize(r.Data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", r.Path, err)
	}
	_, id := store.Split(r.Path)
	return &store.Doc{
		ID:         id,
		Path:       r.Path,
		Data:       data,
		Version:    r.Version,
		CreateTime: r.CreatedAt,
		UpdateTime: r.UpdatedAt,
	}, nil
}

func orEmpty(data map[string]any) map[string]any {
	if data == nil {
		return map[string]any{}
	}
	return data
}

func (s *Store) publishPath(ctx context.Context, path string) {
	collection, _ := store.Split(path)
	s.publish(ctx, collection)
}

func (s *Store) publish(ctx context.Context, collection string) {
	if err := s.notifier.Publish(ctx, collection); err != nil {
		logs.Log.WithError(err).WithField("collection", collection).Warn("change notification failed")
	}
}
