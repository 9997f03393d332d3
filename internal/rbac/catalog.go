package rbac

import (
	"context"
	"fmt"

	"github.com/qaforge/qaforge/internal/catalog"
	"github.com/qaforge/qaforge/internal/docstore"
)

// Resource suffixes used to build permission keys.
const (
	ResProjects   = "prj"
	ResTestPlans  = "tpl"
	ResTestSteps  = "tst"
	ResExecutions = "tex"
	ResPerms      = "prm"
	ResRoles      = "rol"
	ResUsers      = "usr"
)

// Action prefixes used to build permission keys.
const (
	ActView   = "vw"
	ActCreate = "cr"
	ActUpdate = "up"
	ActDelete = "dl"
)

// AdminRoleKey identifies the role granted the whole catalog on reset.
const AdminRoleKey = "admin"

// CatalogEntry describes one canonical permission.
type CatalogEntry struct {
	Key         string
	Name        string
	Description string
}

var resourceLabels = []struct {
	suffix string
	label  string
}{
	{ResProjects, "projects"},
	{ResTestPlans, "test plans"},
	{ResTestSteps, "test steps"},
	{ResExecutions, "test step executions"},
	{ResPerms, "permissions"},
	{ResRoles, "roles"},
	{ResUsers, "users"},
}

var actionLabels = []struct {
	prefix string
	label  string
}{
	{ActView, "View"},
	{ActCreate, "Create"},
	{ActUpdate, "Update"},
	{ActDelete, "Delete"},
}

// Catalog lists the canonical permissions, one per action and resource.
func Catalog() []CatalogEntry {
	entries := make([]CatalogEntry, 0, len(resourceLabels)*len(actionLabels))
	for _, res := range resourceLabels {
		for _, act := range actionLabels {
			entries = append(entries, CatalogEntry{
				Key:         act.prefix + res.suffix,
				Name:        act.label + " " + res.label,
				Description: fmt.Sprintf("%s access to %s", act.label, res.label),
			})
		}
	}
	return entries
}

// CatalogKeys returns every canonical permission key.
func CatalogKeys() []string {
	entries := Catalog()
	keys := make([]string, len(entries))
	for i, e := range entries {
		keys[i] = e.Key
	}
	return keys
}

// ResetResult summarises a catalog reset.
type ResetResult struct {
	Created  int
	Restored int
	AdminID  string
}

// Reset brings the permission collection in line with Catalog and grants every
// catalog permission to the admin role, creating it when missing. Existing
// permissions are matched by key and undeleted; unknown permissions are left alone.
func Reset(ctx context.Context, store docstore.Store) (ResetResult, error) {
	var result ResetResult
	ids := make([]any, 0)
	for _, entry := range Catalog() {
		existing, err := store.Find(ctx, catalog.Permissions, docstore.Query{
			Filter: docstore.Filter{docstore.Eq("key", entry.Key)},
			Limit:  1,
		})
		if err != nil {
			return result, fmt.Errorf("find permission %s: %w", entry.Key, err)
		}
		fields := docstore.Document{
			"key":                 entry.Key,
			"name":                entry.Name,
			"description":         entry.Description,
			docstore.FieldDeleted: false,
		}
		if len(existing) == 0 {
			doc, err := store.Insert(ctx, catalog.Permissions, fields)
			if err != nil {
				return result, fmt.Errorf("insert permission %s: %w", entry.Key, err)
			}
			result.Created++
			ids = append(ids, doc.ID())
			continue
		}
		doc := existing[0]
		if doc.Deleted() {
			result.Restored++
		}
		if _, err := store.Update(ctx, catalog.Permissions, doc.ID(), fields); err != nil {
			return result, fmt.Errorf("update permission %s: %w", entry.Key, err)
		}
		ids = append(ids, doc.ID())
	}

	roles, err := store.Find(ctx, catalog.Roles, docstore.Query{
		Filter: docstore.Filter{docstore.Eq("key", AdminRoleKey)},
		Limit:  1,
	})
	if err != nil {
		return result, fmt.Errorf("find admin role: %w", err)
	}
	role := docstore.Document{
		"key":                 AdminRoleKey,
		"name":                "Administrator",
		"permissions":         ids,
		docstore.FieldDeleted: false,
	}
	if len(roles) == 0 {
		doc, err := store.Insert(ctx, catalog.Roles, role)
		if err != nil {
			return result, fmt.Errorf("insert admin role: %w", err)
		}
		result.AdminID = doc.ID()
		return result, nil
	}
	if _, err := store.Update(ctx, catalog.Roles, roles[0].ID(), role); err != nil {
		return result, fmt.Errorf("update admin role: %w", err)
	}
	result.AdminID = roles[0].ID()
	return result, nil
}
