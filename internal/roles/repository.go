package roles

import (
	"context"

	"github.com/qaforge/qaforge/internal/catalog"
	"github.com/qaforge/qaforge/internal/docstore"
	"github.com/qaforge/qaforge/internal/listquery"
	"github.com/qaforge/qaforge/internal/shared"
)

// Repository persists roles.
type Repository interface {
	List(ctx context.Context, params listquery.Params) (listquery.Page[Role], error)
	Get(ctx context.Context, id string, includeDeleted bool) (Role, error)
	Create(ctx context.Context, doc docstore.Document) (Role, error)
	Update(ctx context.Context, id string, set docstore.Document) (Role, error)
	SoftDelete(ctx context.Context, id string) (Role, error)
}

// ListConfig is the list behaviour of the roles collection. Permissions are
// expanded to their display fields.
func ListConfig() listquery.Config {
	return listquery.Config{
		Collection:  catalog.Roles,
		DefaultSort: docstore.FieldCreatedAt,
		Expand: []listquery.Expansion{
			{Field: "permissions", Collection: catalog.Permissions, Fields: []string{"key", "name", "description"}},
		},
	}
}

// NewRepository returns the document-backed repository.
func NewRepository(store docstore.Store) Repository {
	return shared.NewDocumentRepository[Role](store, ListConfig(), "role")
}
