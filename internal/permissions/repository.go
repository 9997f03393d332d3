package permissions

import (
	"context"

	"github.com/qaforge/qaforge/internal/catalog"
	"github.com/qaforge/qaforge/internal/docstore"
	"github.com/qaforge/qaforge/internal/listquery"
	"github.com/qaforge/qaforge/internal/shared"
)

// Repository persists permissions.
type Repository interface {
	List(ctx context.Context, params listquery.Params) (listquery.Page[Permission], error)
	Get(ctx context.Context, id string, includeDeleted bool) (Permission, error)
	Document(ctx context.Context, id string) (docstore.Document, error)
	Create(ctx context.Context, doc docstore.Document) (Permission, error)
	Update(ctx context.Context, id string, set docstore.Document) (Permission, error)
	SoftDelete(ctx context.Context, id string) (Permission, error)
}

// ListConfig is the list behaviour of the permissions collection.
func ListConfig() listquery.Config {
	return listquery.Config{Collection: catalog.Permissions, DefaultSort: docstore.FieldCreatedAt}
}

// NewRepository returns the document-backed repository.
func NewRepository(store docstore.Store) Repository {
	return shared.NewDocumentRepository[Permission](store, ListConfig(), "permission")
}
