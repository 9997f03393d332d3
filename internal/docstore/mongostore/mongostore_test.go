package mongostore

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/qaforge/qaforge/internal/docstore"
)

func TestToBSON(t *testing.T) {
	require.Equal(t, bson.M{}, toBSON(nil))
	require.Equal(t, bson.M{"isDeleted": false}, toBSON(docstore.Filter{docstore.Eq(docstore.FieldDeleted, false)}))

	got := toBSON(docstore.Filter{
		docstore.Eq(docstore.FieldDeleted, false),
		docstore.Contains("name", "a.b(c"),
		docstore.In(docstore.FieldID, []string{"x", "y"}),
	})
	require.Equal(t, bson.M{"$and": bson.A{
		bson.M{"isDeleted": false},
		bson.M{"name": primitive.Regex{Pattern: `a\.b\(c`, Options: "i"}},
		bson.M{"_id": bson.M{"$in": []string{"x", "y"}}},
	}}, got)
}

func TestDuplicateField(t *testing.T) {
	err := errors.New(`E11000 duplicate key error collection: qaforge.permissions index: key_unique dup key: { key: "vwprj" }`)
	require.Equal(t, "key", duplicateField(err))
	require.Equal(t, "", duplicateField(errors.New("E11000 duplicate key error index: _id_")))
}

func TestFromBSONNormalizes(t *testing.T) {
	at := time.Date(2024, 2, 3, 4, 5, 6, 0, time.UTC)
	doc := fromBSON(bson.M{
		"_id":        "1",
		"executedAt": primitive.NewDateTimeFromTime(at),
		"roles":      bson.A{"r1", bson.M{"_id": "r2"}},
		"meta":       bson.D{{Key: "k", Value: "v"}},
	})
	require.Equal(t, at, doc["executedAt"])
	require.Equal(t, []any{"r1", map[string]any{"_id": "r2"}}, doc["roles"])
	require.Equal(t, map[string]any{"k": "v"}, doc["meta"])
	require.Equal(t, "1", doc.ID())
}
