package rbac

import (
	"context"

	"github.com/qaforge/qaforge/internal/catalog"
	"github.com/qaforge/qaforge/internal/docstore"
	"github.com/qaforge/qaforge/internal/listquery"
)

// EffectivePermissions unions the permission keys of every role of u. Roles and
// permissions are taken as given, soft-deleted or not.
func EffectivePermissions(u UserWithRoles) Set {
	return Aggregator{IncludeDeleted: true}.Effective(u)
}

// Aggregator computes effective permissions.
type Aggregator struct {
	// IncludeDeleted counts soft-deleted roles and permissions as granting.
	IncludeDeleted bool
}

// Effective returns the deduplicated permission keys reachable through u's roles.
func (a Aggregator) Effective(u UserWithRoles) Set {
	keys := make(Set)
	for _, role := range u.Roles {
		if role.IsDeleted && !a.IncludeDeleted {
			continue
		}
		for _, perm := range role.Permissions {
			if perm.IsDeleted && !a.IncludeDeleted {
				continue
			}
			keys.Add(perm.Key)
		}
	}
	return keys
}

// FromDocument decodes a user document with expanded roles and aggregates it.
func (a Aggregator) FromDocument(doc docstore.Document) (Set, error) {
	var u UserWithRoles
	if err := docstore.Decode(doc, &u); err != nil {
		return nil, err
	}
	return a.Effective(u), nil
}

// RoleExpansion expands user roles and their permissions for aggregation.
func (a Aggregator) RoleExpansion() listquery.Expansion {
	return listquery.Expansion{
		Field:       "roles",
		Collection:  catalog.Roles,
		Fields:      []string{"name", "key"},
		SkipDeleted: !a.IncludeDeleted,
		Nested: []listquery.Expansion{{
			Field:       "permissions",
			Collection:  catalog.Permissions,
			Fields:      []string{"key", "name"},
			SkipDeleted: !a.IncludeDeleted,
		}},
	}
}

// Resolver loads a user and computes its effective permissions.
type Resolver struct {
	engine     *listquery.Engine
	aggregator Aggregator
}

// NewResolver constructs a Resolver.
func NewResolver(engine *listquery.Engine, aggregator Aggregator) *Resolver {
	return &Resolver{engine: engine, aggregator: aggregator}
}

// Aggregator exposes the configured aggregation policy.
func (r *Resolver) Aggregator() Aggregator {
	return r.aggregator
}

// ForUser returns the effective permissions of a non-deleted user.
func (r *Resolver) ForUser(ctx context.Context, userID string) (Set, error) {
	cfg := listquery.Config{
		Collection: catalog.Users,
		Expand:     []listquery.Expansion{r.aggregator.RoleExpansion()},
	}
	doc, err := r.engine.Get(ctx, cfg, userID, false)
	if err != nil {
		return nil, err
	}
	return r.aggregator.FromDocument(doc)
}
