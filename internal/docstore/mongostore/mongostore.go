// Package mongostore implements docstore.Store on MongoDB.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/qaforge/qaforge/internal/catalog"
	"github.com/qaforge/qaforge/internal/docstore"
)

// Store wraps a mongo database handle.
type Store struct {
	db  *mongo.Database
	now func() time.Time
}

// New constructs a Store over db.
func New(db *mongo.Database) *Store {
	return &Store{db: db, now: func() time.Time { return time.Now().UTC() }}
}

// EnsureIndexes creates the unique indexes declared in the catalog.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	for _, c := range catalog.All() {
		if len(c.Unique) == 0 {
			continue
		}
		models := make([]mongo.IndexModel, 0, len(c.Unique))
		for _, field := range c.Unique {
			models = append(models, mongo.IndexModel{
				Keys:    bson.D{{Key: field, Value: 1}},
				Options: options.Index().SetUnique(true).SetName(field + "_unique"),
			})
		}
		if _, err := s.db.Collection(c.Name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("mongostore: create indexes %s: %w", c.Name, err)
		}
	}
	return nil
}

func (s *Store) collection(name string) (*mongo.Collection, error) {
	if _, ok := catalog.Lookup(name); !ok {
		return nil, fmt.Errorf("%w: %s", docstore.ErrUnknownCollection, name)
	}
	return s.db.Collection(name), nil
}

// Count implements docstore.Store.
func (s *Store) Count(ctx context.Context, name string, filter docstore.Filter) (int64, error) {
	coll, err := s.collection(name)
	if err != nil {
		return 0, err
	}
	if filter.Unsatisfiable() {
		return 0, nil
	}
	n, err := coll.CountDocuments(ctx, toBSON(filter))
	if err != nil {
		return 0, fmt.Errorf("mongostore: count %s: %w", name, err)
	}
	return n, nil
}

// Find implements docstore.Store.
func (s *Store) Find(ctx context.Context, name string, q docstore.Query) ([]docstore.Document, error) {
	coll, err := s.collection(name)
	if err != nil {
		return nil, err
	}
	if q.Filter.Unsatisfiable() {
		return []docstore.Document{}, nil
	}
	opts := options.Find()
	if len(q.Sort) > 0 {
		sortDoc := make(bson.D, 0, len(q.Sort))
		for _, o := range q.Sort {
			dir := 1
			if o.Desc {
				dir = -1
			}
			sortDoc = append(sortDoc, bson.E{Key: o.Field, Value: dir})
		}
		opts.SetSort(sortDoc)
	}
	if q.Skip > 0 {
		opts.SetSkip(q.Skip)
	}
	if q.Limit > 0 {
		opts.SetLimit(q.Limit)
	}
	if len(q.Fields) > 0 {
		projection := bson.D{{Key: docstore.FieldID, Value: 1}}
		for _, f := range q.Fields {
			if f != docstore.FieldID {
				projection = append(projection, bson.E{Key: f, Value: 1})
			}
		}
		opts.SetProjection(projection)
	}
	cursor, err := coll.Find(ctx, toBSON(q.Filter), opts)
	if err != nil {
		return nil, fmt.Errorf("mongostore: find %s: %w", name, err)
	}
	var raw []bson.M
	if err := cursor.All(ctx, &raw); err != nil {
		return nil, fmt.Errorf("mongostore: decode %s: %w", name, err)
	}
	docs := make([]docstore.Document, 0, len(raw))
	for _, m := range raw {
		docs = append(docs, fromBSON(m))
	}
	return docs, nil
}

// Get implements docstore.Store.
func (s *Store) Get(ctx context.Context, name, id string) (docstore.Document, error) {
	if !docstore.ValidID(id) {
		return nil, docstore.ErrInvalidID
	}
	coll, err := s.collection(name)
	if err != nil {
		return nil, err
	}
	var m bson.M
	if err := coll.FindOne(ctx, bson.M{docstore.FieldID: id}).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, docstore.ErrNotFound
		}
		return nil, fmt.Errorf("mongostore: get %s: %w", name, err)
	}
	return fromBSON(m), nil
}

// Insert implements docstore.Store.
func (s *Store) Insert(ctx context.Context, name string, doc docstore.Document) (docstore.Document, error) {
	coll, err := s.collection(name)
	if err != nil {
		return nil, err
	}
	prepared := docstore.PrepareInsert(doc, s.now())
	if !docstore.ValidID(prepared.ID()) {
		return nil, docstore.ErrInvalidID
	}
	if _, err := coll.InsertOne(ctx, bson.M(prepared)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, &docstore.DuplicateError{Collection: name, Field: duplicateField(err)}
		}
		return nil, fmt.Errorf("mongostore: insert %s: %w", name, err)
	}
	return prepared, nil
}

// Update implements docstore.Store.
func (s *Store) Update(ctx context.Context, name, id string, set docstore.Document) (docstore.Document, error) {
	if !docstore.ValidID(id) {
		return nil, docstore.ErrInvalidID
	}
	coll, err := s.collection(name)
	if err != nil {
		return nil, err
	}
	prepared := docstore.PrepareUpdate(set, s.now())
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var m bson.M
	err = coll.FindOneAndUpdate(ctx, bson.M{docstore.FieldID: id}, bson.M{"$set": bson.M(prepared)}, opts).Decode(&m)
	if err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			return nil, docstore.ErrNotFound
		case mongo.IsDuplicateKeyError(err):
			return nil, &docstore.DuplicateError{Collection: name, Field: duplicateField(err)}
		}
		return nil, fmt.Errorf("mongostore: update %s: %w", name, err)
	}
	return fromBSON(m), nil
}

// Close disconnects the underlying client.
func (s *Store) Close(ctx context.Context) error {
	return s.db.Client().Disconnect(ctx)
}

func toBSON(filter docstore.Filter) bson.M {
	if len(filter) == 0 {
		return bson.M{}
	}
	clauses := make(bson.A, 0, len(filter))
	for _, p := range filter {
		switch p.Op {
		case docstore.OpEq:
			clauses = append(clauses, bson.M{p.Field: p.Value})
		case docstore.OpContains:
			term, _ := p.Value.(string)
			clauses = append(clauses, bson.M{p.Field: primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}})
		case docstore.OpIn:
			clauses = append(clauses, bson.M{p.Field: bson.M{"$in": p.Value}})
		}
	}
	if len(clauses) == 1 {
		return clauses[0].(bson.M)
	}
	return bson.M{"$and": clauses}
}

var dupKeyPattern = regexp.MustCompile(`index: (\w+)_unique`)

func duplicateField(err error) string {
	if m := dupKeyPattern.FindStringSubmatch(err.Error()); len(m) == 2 {
		return m[1]
	}
	return ""
}

func fromBSON(m bson.M) docstore.Document {
	out := make(docstore.Document, len(m))
	for k, v := range m {
		out[k] = normalize(v)
	}
	return out
}

func normalize(v any) any {
	switch val := v.(type) {
	case primitive.DateTime:
		return val.Time().UTC()
	case primitive.M:
		return map[string]any(fromBSON(bson.M(val)))
	case primitive.D:
		return map[string]any(fromBSON(bson.M(val.Map())))
	case primitive.A:
		out := make([]any, len(val))
		for i := range val {
			out[i] = normalize(val[i])
		}
		return out
	case map[string]any:
		return map[string]any(fromBSON(bson.M(val)))
	default:
		return v
	}
}
