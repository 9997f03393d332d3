package docstore

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDocumentLookup(t *testing.T) {
	doc := Document{"name": "Smoke", "project_id": map[string]any{"name": "Alpha"}}

	v, ok := doc.Lookup("project_id.name")
	require.True(t, ok)
	require.Equal(t, "Alpha", v)

	_, ok = doc.Lookup("project_id.missing")
	require.False(t, ok)
	_, ok = doc.Lookup("name.first")
	require.False(t, ok)
}

func TestDocumentCloneIsDeep(t *testing.T) {
	doc := Document{"steps": []any{"a"}, "meta": map[string]any{"k": "v"}}
	clone := doc.Clone()
	clone["steps"].([]any)[0] = "b"
	clone["meta"].(map[string]any)["k"] = "w"

	require.Equal(t, "a", doc["steps"].([]any)[0])
	require.Equal(t, "v", doc["meta"].(map[string]any)["k"])
}

func TestDocumentSelectKeepsID(t *testing.T) {
	doc := Document{FieldID: "1", "name": "Alpha", "description": "x"}
	require.Equal(t, Document{FieldID: "1", "name": "Alpha"}, doc.Select([]string{"name"}))
	require.Equal(t, doc, doc.Select(nil))
	require.Equal(t, Document{FieldID: "1", "name": "Alpha"}, doc.Without("description"))
}

func TestPrepareInsertAndUpdate(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	doc := PrepareInsert(Document{"name": "Alpha"}, now)
	require.True(t, ValidID(doc.ID()))
	require.False(t, doc.Deleted())
	require.Equal(t, now, doc[FieldCreatedAt])
	require.Equal(t, now, doc[FieldUpdatedAt])

	later := now.Add(time.Hour)
	set := PrepareUpdate(Document{FieldID: "other", FieldCreatedAt: later, "name": "Beta"}, later)
	require.NotContains(t, set, FieldID)
	require.NotContains(t, set, FieldCreatedAt)
	require.Equal(t, later, set[FieldUpdatedAt])
}

func TestValidID(t *testing.T) {
	require.True(t, ValidID(NewID()))
	require.False(t, ValidID("not-a-uuid"))
	require.False(t, ValidID(""))
}

func TestRefJSON(t *testing.T) {
	type holder struct {
		Project Ref   `json:"project_id"`
		Steps   []Ref `json:"steps"`
		Owner   Ref   `json:"owner"`
	}
	var h holder
	require.NoError(t, Decode(Document{
		"project_id": Document{FieldID: "p1", "name": "Alpha"},
		"steps":      []any{"s1", "s2"},
		"owner":      nil,
	}, &h))

	require.True(t, h.Project.Expanded())
	require.Equal(t, "p1", h.Project.ID)
	require.Equal(t, []string{"s1", "s2"}, RefIDs(h.Steps))
	require.False(t, h.Owner.Expanded())

	raw, err := json.Marshal(h)
	require.NoError(t, err)
	require.JSONEq(t, `{"project_id":{"_id":"p1","name":"Alpha"},"steps":["s1","s2"],"owner":null}`, string(raw))
}

func TestDuplicateErrorMatchesSentinel(t *testing.T) {
	err := error(&DuplicateError{Collection: "permissions", Field: "name"})
	require.ErrorIs(t, err, ErrDuplicate)
	require.Equal(t, "docstore: duplicate name in permissions", err.Error())
	require.Equal(t, "docstore: duplicate key in roles", (&DuplicateError{Collection: "roles"}).Error())
}
