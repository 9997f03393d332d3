package teststeps

import (
	"context"

	"github.com/qaforge/qaforge/internal/catalog"
	"github.com/qaforge/qaforge/internal/docstore"
	"github.com/qaforge/qaforge/internal/listquery"
	"github.com/qaforge/qaforge/internal/shared"
)

// Repository persists test steps.
type Repository interface {
	List(ctx context.Context, params listquery.Params) (listquery.Page[TestStep], error)
	ListScoped(ctx context.Context, scope docstore.Filter, params listquery.Params) (listquery.Page[TestStep], error)
	Get(ctx context.Context, id string, includeDeleted bool) (TestStep, error)
	Create(ctx context.Context, doc docstore.Document) (TestStep, error)
	Update(ctx context.Context, id string, set docstore.Document) (TestStep, error)
	SoftDelete(ctx context.Context, id string) (TestStep, error)
}

// ListConfig is the list behaviour of the test steps collection.
func ListConfig() listquery.Config {
	return listquery.Config{
		Collection:  catalog.TestSteps,
		DefaultSort: docstore.FieldCreatedAt,
		Expand: []listquery.Expansion{
			{Field: "test_plan_id", Collection: catalog.TestPlans, Fields: []string{"name"}},
		},
	}
}

// NewRepository returns the document-backed repository.
func NewRepository(store docstore.Store) Repository {
	return shared.NewDocumentRepository[TestStep](store, ListConfig(), "test step")
}
