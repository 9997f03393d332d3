package roles

import (
	"time"

	"github.com/qaforge/qaforge/internal/docstore"
)

// Role is a named bundle of permissions.
type Role struct {
	ID          string         `json:"_id"`
	Name        string         `json:"name"`
	Key         string         `json:"key"`
	Description string         `json:"description,omitempty"`
	Permissions []docstore.Ref `json:"permissions"`
	IsDeleted   bool           `json:"isDeleted"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}
