package testplans

import (
	"context"

	"github.com/qaforge/qaforge/internal/catalog"
	"github.com/qaforge/qaforge/internal/docstore"
	"github.com/qaforge/qaforge/internal/listquery"
	"github.com/qaforge/qaforge/internal/shared"
)

// Repository persists test plans.
type Repository interface {
	List(ctx context.Context, params listquery.Params) (listquery.Page[TestPlan], error)
	Get(ctx context.Context, id string, includeDeleted bool) (TestPlan, error)
	Create(ctx context.Context, doc docstore.Document) (TestPlan, error)
	Update(ctx context.Context, id string, set docstore.Document) (TestPlan, error)
	SoftDelete(ctx context.Context, id string) (TestPlan, error)
}

// ListConfig is the list behaviour of the test plans collection. Project,
// author and steps are expanded for display.
func ListConfig() listquery.Config {
	return listquery.Config{
		Collection:  catalog.TestPlans,
		DefaultSort: docstore.FieldCreatedAt,
		Expand: []listquery.Expansion{
			{Field: "project_id", Collection: catalog.Projects, Fields: []string{"name", "description"}},
			{Field: "created_by", Collection: catalog.Users, Fields: []string{"name", "email"}},
			{Field: "steps", Collection: catalog.TestSteps, Fields: []string{"name", "expected_result"}},
		},
	}
}

// NewRepository returns the document-backed repository.
func NewRepository(store docstore.Store) Repository {
	return shared.NewDocumentRepository[TestPlan](store, ListConfig(), "test plan")
}
