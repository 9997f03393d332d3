package pgstore

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/require"

	"github.com/qaforge/qaforge/internal/catalog"
	"github.com/qaforge/qaforge/internal/docstore"
)

var fixedNow = time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

func newMockStore(t *testing.T) (*Store, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	store := New(mock)
	store.now = func() time.Time { return fixedNow }
	return store, mock
}

func TestCount(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery(`SELECT count\(\*\) FROM "projects" WHERE \(doc #> \$1 = \$2::jsonb\)`).
		WithArgs(path(docstore.FieldDeleted), "false").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(3)))

	n, err := store.Count(context.Background(), catalog.Projects, docstore.Filter{docstore.Eq(docstore.FieldDeleted, false)})
	require.NoError(t, err)
	require.EqualValues(t, 3, n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUnsatisfiableFilterSkipsQuery(t *testing.T) {
	store, mock := newMockStore(t)
	n, err := store.Count(context.Background(), catalog.Projects, docstore.Filter{docstore.None()})
	require.NoError(t, err)
	require.Zero(t, n)
	docs, err := store.Find(context.Background(), catalog.Projects, docstore.Query{Filter: docstore.Filter{docstore.None()}})
	require.NoError(t, err)
	require.Empty(t, docs)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindDecodesDocuments(t *testing.T) {
	store, mock := newMockStore(t)
	id := docstore.NewID()
	rows := pgxmock.NewRows([]string{"doc"}).
		AddRow([]byte(`{"_id":"` + id + `","name":"Alpha","description":"demo","createdAt":"2024-03-01T09:30:00.000000000Z"}`))
	mock.ExpectQuery(`SELECT doc FROM "projects" WHERE .* ORDER BY doc #> \$3 ASC, id ASC LIMIT 10 OFFSET 20`).
		WithArgs("alp", path("name"), path("name")).
		WillReturnRows(rows)

	docs, err := store.Find(context.Background(), catalog.Projects, docstore.Query{
		Filter: docstore.Filter{docstore.Contains("name", "alp")},
		Sort:   []docstore.Sort{{Field: "name"}, {Field: docstore.FieldID}},
		Skip:   20,
		Limit:  10,
		Fields: []string{"name", docstore.FieldCreatedAt},
	})
	require.NoError(t, err)
	require.Len(t, docs, 1)
	require.Equal(t, id, docs[0].ID())
	require.Equal(t, fixedNow, docs[0][docstore.FieldCreatedAt])
	require.NotContains(t, docs[0], "description")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGet(t *testing.T) {
	store, mock := newMockStore(t)
	id := docstore.NewID()
	mock.ExpectQuery(`SELECT doc FROM "projects" WHERE id = \$1`).
		WithArgs(id).
		WillReturnError(pgx.ErrNoRows)

	_, err := store.Get(context.Background(), catalog.Projects, id)
	require.ErrorIs(t, err, docstore.ErrNotFound)

	_, err = store.Get(context.Background(), catalog.Projects, "42")
	require.ErrorIs(t, err, docstore.ErrInvalidID)
	_, err = store.Get(context.Background(), "widgets", id)
	require.ErrorIs(t, err, docstore.ErrUnknownCollection)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInsert(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectExec(`INSERT INTO "projects" \(id,doc\) VALUES \(\$1,\$2::jsonb\)`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	doc, err := store.Insert(context.Background(), catalog.Projects, docstore.Document{"name": "Alpha"})
	require.NoError(t, err)
	require.True(t, docstore.ValidID(doc.ID()))
	require.Equal(t, fixedNow, doc[docstore.FieldCreatedAt])
	require.Equal(t, false, doc[docstore.FieldDeleted])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertUniqueViolation(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectExec(`INSERT INTO "permissions"`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "permissions_key_unique"})

	_, err := store.Insert(context.Background(), catalog.Permissions, docstore.Document{"key": "vwprj"})
	var dup *docstore.DuplicateError
	require.ErrorAs(t, err, &dup)
	require.Equal(t, "key", dup.Field)
	require.ErrorIs(t, err, docstore.ErrDuplicate)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate(t *testing.T) {
	store, mock := newMockStore(t)
	id := docstore.NewID()
	mock.ExpectQuery(`UPDATE "projects" SET doc = doc \|\| \$1::jsonb WHERE id = \$2 RETURNING doc`).
		WithArgs(pgxmock.AnyArg(), id).
		WillReturnRows(pgxmock.NewRows([]string{"doc"}).
			AddRow([]byte(`{"_id":"` + id + `","name":"Beta","isDeleted":false}`)))

	doc, err := store.Update(context.Background(), catalog.Projects, id, docstore.Document{"name": "Beta"})
	require.NoError(t, err)
	require.Equal(t, "Beta", doc["name"])

	mock.ExpectQuery(`UPDATE "projects"`).
		WithArgs(pgxmock.AnyArg(), id).
		WillReturnError(pgx.ErrNoRows)
	_, err = store.Update(context.Background(), catalog.Projects, id, docstore.Document{"name": "Gamma"})
	require.ErrorIs(t, err, docstore.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWhereClauses(t *testing.T) {
	sql, args, err := where(docstore.Filter{
		docstore.Eq(docstore.FieldDeleted, false),
		docstore.Contains("project_id.name", "alp"),
		docstore.In(docstore.FieldID, []string{"a", "b"}),
		docstore.In("key", []string{"vwprj"}),
	}).ToSql()
	require.NoError(t, err)
	require.Equal(t, "(doc #> ? = ?::jsonb AND position(lower(?::text) in lower(doc #>> ?)) > 0 AND id = ANY(?) AND doc #>> ? = ANY(?))", sql)
	require.Equal(t, []any{
		[]string{"isDeleted"}, "false",
		"alp", []string{"project_id", "name"},
		[]string{"a", "b"},
		[]string{"key"}, []string{"vwprj"},
	}, args)
}

func TestEncodeTimes(t *testing.T) {
	payload, err := encode(docstore.Document{"executed_at": fixedNow, "nested": map[string]any{"at": fixedNow}})
	require.NoError(t, err)
	require.JSONEq(t, `{"executed_at":"2024-03-01T09:30:00.000000000Z","nested":{"at":"2024-03-01T09:30:00.000000000Z"}}`, payload)
}
