package executions

import (
	"context"

	"github.com/qaforge/qaforge/internal/catalog"
	"github.com/qaforge/qaforge/internal/docstore"
	"github.com/qaforge/qaforge/internal/listquery"
	"github.com/qaforge/qaforge/internal/shared"
)

// Repository persists test step executions.
type Repository interface {
	List(ctx context.Context, params listquery.Params) (listquery.Page[Execution], error)
	ListScoped(ctx context.Context, scope docstore.Filter, params listquery.Params) (listquery.Page[Execution], error)
	Get(ctx context.Context, id string, includeDeleted bool) (Execution, error)
	Document(ctx context.Context, id string) (docstore.Document, error)
	Create(ctx context.Context, doc docstore.Document) (Execution, error)
	Update(ctx context.Context, id string, set docstore.Document) (Execution, error)
	SoftDelete(ctx context.Context, id string) (Execution, error)
}

// ListConfig is the list behaviour of the executions collection.
func ListConfig() listquery.Config {
	return listquery.Config{
		Collection:  catalog.TestExecutions,
		DefaultSort: docstore.FieldCreatedAt,
		Expand: []listquery.Expansion{
			{Field: "test_step_id", Collection: catalog.TestSteps, Fields: []string{"name", "expected_result"}},
			{Field: "executed_by", Collection: catalog.Users, Fields: []string{"name", "email"}},
		},
	}
}

// NewRepository returns the document-backed repository.
func NewRepository(store docstore.Store) Repository {
	return shared.NewDocumentRepository[Execution](store, ListConfig(), "test step execution")
}
