package users

import (
	"context"

	"github.com/qaforge/qaforge/internal/catalog"
	"github.com/qaforge/qaforge/internal/docstore"
	"github.com/qaforge/qaforge/internal/listquery"
	"github.com/qaforge/qaforge/internal/rbac"
	"github.com/qaforge/qaforge/internal/shared"
)

const passwordField = "password"

// Repository persists users.
type Repository interface {
	List(ctx context.Context, params listquery.Params) (listquery.Page[User], error)
	Get(ctx context.Context, id string, includeDeleted bool) (User, error)
	Document(ctx context.Context, id string) (docstore.Document, error)
	Create(ctx context.Context, doc docstore.Document) (User, error)
	Update(ctx context.Context, id string, set docstore.Document) (User, error)
	SoftDelete(ctx context.Context, id string) (User, error)
}

// ListConfig is the list behaviour of the users collection. Roles are expanded
// together with their permissions; the password hash can be neither filtered
// nor sorted on.
func ListConfig() listquery.Config {
	roles := rbac.Aggregator{IncludeDeleted: true}.RoleExpansion()
	roles.Nested[0].Fields = append(roles.Nested[0].Fields, "description")
	return listquery.Config{
		Collection:  catalog.Users,
		DefaultSort: docstore.FieldCreatedAt,
		Hidden:      []string{passwordField},
		Expand:      []listquery.Expansion{roles},
	}
}

// NewRepository returns the document-backed repository.
func NewRepository(store docstore.Store) Repository {
	return shared.NewDocumentRepository[User](store, ListConfig(), "user")
}
