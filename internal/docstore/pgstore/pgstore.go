// Package pgstore implements docstore.Store on PostgreSQL JSONB tables.
package pgstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/qaforge/qaforge/internal/catalog"
	"github.com/qaforge/qaforge/internal/docstore"
)

// timeLayout is fixed width so that lexical jsonb ordering matches chronological order.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Querier is the subset of pgxpool.Pool used by the store.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Store keeps one table per collection with an id column and a jsonb document.
type Store struct {
	db      Querier
	builder sq.StatementBuilderType
	now     func() time.Time
}

// New constructs a Store.
func New(db Querier) *Store {
	return &Store{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func table(name string) (string, error) {
	if _, ok := catalog.Lookup(name); !ok {
		return "", fmt.Errorf("%w: %s", docstore.ErrUnknownCollection, name)
	}
	return pgx.Identifier{name}.Sanitize(), nil
}

// Count implements docstore.Store.
func (s *Store) Count(ctx context.Context, name string, filter docstore.Filter) (int64, error) {
	tbl, err := table(name)
	if err != nil {
		return 0, err
	}
	if filter.Unsatisfiable() {
		return 0, nil
	}
	stmt, args, err := s.builder.Select("count(*)").From(tbl).Where(where(filter)).ToSql()
	if err != nil {
		return 0, fmt.Errorf("pgstore: build count %s: %w", name, err)
	}
	var n int64
	if err := s.db.QueryRow(ctx, stmt, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("pgstore: count %s: %w", name, err)
	}
	return n, nil
}

// Find implements docstore.Store.
func (s *Store) Find(ctx context.Context, name string, q docstore.Query) ([]docstore.Document, error) {
	tbl, err := table(name)
	if err != nil {
		return nil, err
	}
	if q.Filter.Unsatisfiable() {
		return []docstore.Document{}, nil
	}
	builder := s.builder.Select("doc").From(tbl).Where(where(q.Filter))
	for _, o := range q.Sort {
		dir := "ASC"
		if o.Desc {
			dir = "DESC"
		}
		if o.Field == docstore.FieldID {
			builder = builder.OrderBy("id " + dir)
			continue
		}
		builder = builder.OrderByClause("doc #> ? "+dir, path(o.Field))
	}
	if q.Skip > 0 {
		builder = builder.Offset(uint64(q.Skip))
	}
	if q.Limit > 0 {
		builder = builder.Limit(uint64(q.Limit))
	}
	stmt, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("pgstore: build find %s: %w", name, err)
	}
	rows, err := s.db.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("pgstore: find %s: %w", name, err)
	}
	defer rows.Close()

	docs := []docstore.Document{}
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("pgstore: scan %s: %w", name, err)
		}
		doc, err := decode(raw)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc.Select(q.Fields))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgstore: iterate %s: %w", name, err)
	}
	return docs, nil
}

// Get implements docstore.Store.
func (s *Store) Get(ctx context.Context, name, id string) (docstore.Document, error) {
	if !docstore.ValidID(id) {
		return nil, docstore.ErrInvalidID
	}
	tbl, err := table(name)
	if err != nil {
		return nil, err
	}
	stmt, args, err := s.builder.Select("doc").From(tbl).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("pgstore: build get %s: %w", name, err)
	}
	var raw []byte
	if err := s.db.QueryRow(ctx, stmt, args...).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, docstore.ErrNotFound
		}
		return nil, fmt.Errorf("pgstore: get %s: %w", name, err)
	}
	return decode(raw)
}

// Insert implements docstore.Store.
func (s *Store) Insert(ctx context.Context, name string, doc docstore.Document) (docstore.Document, error) {
	tbl, err := table(name)
	if err != nil {
		return nil, err
	}
	prepared := docstore.PrepareInsert(doc, s.now())
	if !docstore.ValidID(prepared.ID()) {
		return nil, docstore.ErrInvalidID
	}
	payload, err := encode(prepared)
	if err != nil {
		return nil, err
	}
	stmt, args, err := s.builder.Insert(tbl).
		Columns("id", "doc").
		Values(prepared.ID(), sq.Expr("?::jsonb", payload)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("pgstore: build insert %s: %w", name, err)
	}
	if _, err := s.db.Exec(ctx, stmt, args...); err != nil {
		return nil, writeError(name, "insert", err)
	}
	return prepared, nil
}

// Update implements docstore.Store.
func (s *Store) Update(ctx context.Context, name, id string, set docstore.Document) (docstore.Document, error) {
	if !docstore.ValidID(id) {
		return nil, docstore.ErrInvalidID
	}
	tbl, err := table(name)
	if err != nil {
		return nil, err
	}
	payload, err := encode(docstore.PrepareUpdate(set, s.now()))
	if err != nil {
		return nil, err
	}
	stmt, args, err := s.builder.Update(tbl).
		Set("doc", sq.Expr("doc || ?::jsonb", payload)).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING doc").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("pgstore: build update %s: %w", name, err)
	}
	var raw []byte
	if err := s.db.QueryRow(ctx, stmt, args...).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, docstore.ErrNotFound
		}
		return nil, writeError(name, "update", err)
	}
	return decode(raw)
}

// Close releases the pool when the querier owns one.
func (s *Store) Close(context.Context) error {
	if c, ok := s.db.(interface{ Close() }); ok {
		c.Close()
	}
	return nil
}

func where(filter docstore.Filter) sq.And {
	clauses := sq.And{}
	for _, p := range filter {
		switch p.Op {
		case docstore.OpEq:
			if p.Field == docstore.FieldID {
				clauses = append(clauses, sq.Eq{"id": p.Value})
				continue
			}
			raw, _ := json.Marshal(encodeValue(p.Value))
			clauses = append(clauses, sq.Expr("doc #> ? = ?::jsonb", path(p.Field), string(raw)))
		case docstore.OpContains:
			clauses = append(clauses, sq.Expr("position(lower(?::text) in lower(doc #>> ?)) > 0", p.Value, path(p.Field)))
		case docstore.OpIn:
			if p.Field == docstore.FieldID {
				clauses = append(clauses, sq.Expr("id = ANY(?)", p.Value))
				continue
			}
			clauses = append(clauses, sq.Expr("doc #>> ? = ANY(?)", path(p.Field), p.Value))
		}
	}
	return clauses
}

func path(field string) []string {
	return strings.Split(field, ".")
}

func writeError(name, op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		field := strings.TrimSuffix(strings.TrimPrefix(pgErr.ConstraintName, name+"_"), "_unique")
		if pgErr.ConstraintName == name+"_pkey" {
			field = docstore.FieldID
		}
		return &docstore.DuplicateError{Collection: name, Field: field}
	}
	return fmt.Errorf("pgstore: %s %s: %w", op, name, err)
}

func encode(doc docstore.Document) (string, error) {
	raw, err := json.Marshal(encodeValue(doc))
	if err != nil {
		return "", fmt.Errorf("pgstore: encode document: %w", err)
	}
	return string(raw), nil
}

func encodeValue(v any) any {
	switch val := v.(type) {
	case time.Time:
		return val.UTC().Format(timeLayout)
	case docstore.Document:
		return encodeValue(map[string]any(val))
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = encodeValue(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i := range val {
			out[i] = encodeValue(val[i])
		}
		return out
	default:
		return v
	}
}

func decode(raw []byte) (docstore.Document, error) {
	var doc docstore.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("pgstore: decode document: %w", err)
	}
	for k, v := range doc {
		if s, ok := v.(string); ok && len(s) == len(timeLayout) {
			if t, err := time.Parse(timeLayout, s); err == nil {
				doc[k] = t
			}
		}
	}
	return doc, nil
}
