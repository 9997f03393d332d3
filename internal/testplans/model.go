package testplans

import (
	"time"

	"github.com/qaforge/qaforge/internal/docstore"
)

// TestPlan groups ordered test steps under a project.
type TestPlan struct {
	ID          string         `json:"_id"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	ProjectID   docstore.Ref   `json:"project_id"`
	CreatedBy   docstore.Ref   `json:"created_by"`
	Steps       []docstore.Ref `json:"steps"`
	IsDeleted   bool           `json:"isDeleted"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}
