package users

import (
	"time"

	"github.com/qaforge/qaforge/internal/docstore"
	"github.com/qaforge/qaforge/internal/rbac"
)

// Provider identifies where a user's credentials live.
type Provider string

// Supported providers.
const (
	ProviderLocal  Provider = "local"
	ProviderGoogle Provider = "google"
	ProviderGitHub Provider = "github"
)

// Valid reports whether p is a supported provider.
func (p Provider) Valid() bool {
	switch p {
	case ProviderLocal, ProviderGoogle, ProviderGitHub:
		return true
	}
	return false
}

// User is an account with role assignments. The password hash is never decoded.
type User struct {
	ID        string         `json:"_id"`
	Name      string         `json:"name"`
	Email     string         `json:"email"`
	Roles     []docstore.Ref `json:"roles"`
	Provider  Provider       `json:"provider"`
	OAuthID   string         `json:"oauth_id,omitempty"`
	IsDeleted bool           `json:"isDeleted"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// Detail is a user merged with its effective permissions.
type Detail struct {
	User
	EffectivePermissions []string `json:"effectivePermissions"`
}

// grants converts expanded roles into the aggregator input. Roles that were not
// expanded carry no permissions.
func (u User) grants() (rbac.UserWithRoles, error) {
	out := rbac.UserWithRoles{ID: u.ID, Roles: make([]rbac.Role, 0, len(u.Roles))}
	for _, ref := range u.Roles {
		if !ref.Expanded() {
			continue
		}
		var role rbac.Role
		if err := docstore.Decode(ref.Doc, &role); err != nil {
			return rbac.UserWithRoles{}, err
		}
		out.Roles = append(out.Roles, role)
	}
	return out, nil
}
