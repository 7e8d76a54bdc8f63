package mongodb

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"wheeldeal/internal/backend"
	apperrors "wheeldeal/pkg/errors"
	"wheeldeal/pkg/logger"
)

var _ backend.Store = (*Store)(nil)

type Store struct {
	db     *mongo.Database
	logger logger.Logger
}

func NewStore(client *mongo.Client, database string, logger logger.Logger) *Store {
	return &Store{db: client.Database(database), logger: logger}
}

func (s *Store) Create(ctx context.Context, collection string, doc backend.Document) (string, error) {
	id := doc.String("id")
	if id == "" {
		id = primitive.NewObjectID().Hex()
	}

	record := bson.M{"_id": id}
	for k, v := range doc {
		if k == "id" {
			continue
		}
		record[k] = v
	}
	if _, ok := record["createdAt"]; !ok {
		record["createdAt"] = time.Now().UTC()
	}

	if _, err := s.db.Collection(collection).InsertOne(ctx, record); err != nil {
		return "", errors.Wrap(err, "mongoStore.Create.InsertOne")
	}
	return id, nil
}

func (s *Store) Get(ctx context.Context, collection, id string) (backend.Document, error) {
	var raw bson.M
	err := s.db.Collection(collection).FindOne(ctx, bson.M{"_id": id}).Decode(&raw)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrDocumentNotFound
		}
		return nil, errors.Wrap(err, "mongoStore.Get.FindOne")
	}
	return fromBSON(raw), nil
}

func (s *Store) Query(ctx context.Context, collection string, filters backend.Filters, opts ...backend.QueryOption) ([]backend.Document, error) {
	o := backend.BuildQueryOptions(opts)

	findOpts := options.Find()
	if o.SortField != "" {
		dir := 1
		if o.Descending {
			dir = -1
		}
		findOpts.SetSort(bson.D{{Key: sortKey(o.SortField), Value: dir}})
	}

	cur, err := s.db.Collection(collection).Find(ctx, toFilter(filters), findOpts)
	if err != nil {
		return nil, errors.Wrap(err, "mongoStore.Query.Find")
	}
	defer cur.Close(ctx)

	docs := make([]backend.Document, 0)
	for cur.Next(ctx) {
		var raw bson.M
		if err := cur.Decode(&raw); err != nil {
			return nil, errors.Wrap(err, "mongoStore.Query.Decode")
		}
		docs = append(docs, fromBSON(raw))
	}
	if err := cur.Err(); err != nil {
		return nil, errors.Wrap(err, "mongoStore.Query.Cursor")
	}
	return docs, nil
}

func (s *Store) Update(ctx context.Context, collection, id string, patch backend.Document) error {
	set := bson.M{}
	for k, v := range patch {
		if k == "id" {
			continue
		}
		set[k] = v
	}

	res, err := s.db.Collection(collection).UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		return errors.Wrap(err, "mongoStore.Update.UpdateByID")
	}
	if res.MatchedCount == 0 {
		return apperrors.ErrDocumentNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, collection, id string) error {
	_, err := s.db.Collection(collection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrap(err, "mongoStore.Delete.DeleteOne")
	}
	return nil
}

// Subscribe watches the collection's change stream and re-queries the full
// filtered set on every event, delivering snapshots rather than diffs.
func (s *Store) Subscribe(ctx context.Context, collection string, filters backend.Filters, opts ...backend.QueryOption) (<-chan []backend.Document, backend.CancelFunc, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	streamCtx, stop := context.WithCancel(ctx)

	stream, err := s.db.Collection(collection).Watch(streamCtx, mongo.Pipeline{})
	if err != nil {
		stop()
		return nil, nil, errors.Wrap(err, "mongoStore.Subscribe.Watch")
	}

	ch := make(chan []backend.Document, 1)
	var once sync.Once
	cancel := func() {
		once.Do(stop)
	}

	go func() {
		defer close(ch)
		defer stream.Close(context.Background())

		s.deliver(streamCtx, ch, collection, filters, opts)
		for stream.Next(streamCtx) {
			s.deliver(streamCtx, ch, collection, filters, opts)
		}
	}()

	return ch, cancel, nil
}

func (s *Store) deliver(ctx context.Context, ch chan []backend.Document, collection string, filters backend.Filters, opts []backend.QueryOption) {
	snapshot, err := s.Query(ctx, collection, filters, opts...)
	if err != nil {
		if ctx.Err() == nil {
			s.logger.Warn("snapshot re-query failed", "collection", collection, "err", err)
		}
		return
	}
	for {
		select {
		case ch <- snapshot:
		default:
			select {
			case <-ch:
			default:
			}
			continue
		}
		break
	}
}

func toFilter(filters backend.Filters) bson.M {
	q := bson.M{}
	for k, v := range filters {
		q[sortKey(k)] = v
	}
	return q
}

// sortKey maps the adapter-level "id" field onto Mongo's "_id".
func sortKey(field string) string {
	if field == "id" {
		return "_id"
	}
	return field
}

// fromBSON flattens driver types back into adapter documents: _id becomes
// id, DateTime becomes time.Time, arrays become []any.
func fromBSON(raw bson.M) backend.Document {
	doc := make(backend.Document, len(raw))
	for k, v := range raw {
		if k == "_id" {
			doc["id"] = normalize(v)
			continue
		}
		doc[k] = normalize(v)
	}
	return doc
}

func normalize(v any) any {
	switch t := v.(type) {
	case primitive.DateTime:
		return t.Time().UTC()
	case primitive.A:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = normalize(e)
		}
		return out
	case bson.M:
		inner := make(map[string]any, len(t))
		for k, e := range t {
			inner[k] = normalize(e)
		}
		return inner
	default:
		return v
	}
}
