package projects

import (
	"context"

	"github.com/qaforge/qaforge/internal/catalog"
	"github.com/qaforge/qaforge/internal/docstore"
	"github.com/qaforge/qaforge/internal/listquery"
	"github.com/qaforge/qaforge/internal/shared"
)

// Repository persists projects.
type Repository interface {
	List(ctx context.Context, params listquery.Params) (listquery.Page[Project], error)
	Get(ctx context.Context, id string, includeDeleted bool) (Project, error)
	Create(ctx context.Context, doc docstore.Document) (Project, error)
	Update(ctx context.Context, id string, set docstore.Document) (Project, error)
	SoftDelete(ctx context.Context, id string) (Project, error)
}

// ListConfig is the list behaviour of the projects collection.
func ListConfig() listquery.Config {
	return listquery.Config{Collection: catalog.Projects, DefaultSort: docstore.FieldCreatedAt}
}

// NewRepository returns the document-backed repository.
func NewRepository(store docstore.Store) Repository {
	return shared.NewDocumentRepository[Project](store, ListConfig(), "project")
}
