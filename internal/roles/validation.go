package roles

import (
	"strings"

	"github.com/qaforge/qaforge/internal/docstore"
	"github.com/qaforge/qaforge/internal/shared"
)

func normalizeKey(raw string) (string, error) {
	key := strings.ToLower(strings.TrimSpace(raw))
	if key == "" {
		return "", shared.Validation("role key is required", "key")
	}
	if strings.ContainsAny(key, " \t\n") {
		return "", shared.Validation("role key cannot contain whitespace", "key")
	}
	return key, nil
}

// permissionIDs trims and de-duplicates ids, keeping first occurrence order.
func permissionIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func toAny(ids []string) []any {
	out := make([]any, len(ids))
	for i, id := range ids {
		out[i] = id
	}
	return out
}

func (req CreateRoleRequest) document() (docstore.Document, []string, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, nil, shared.Validation("role name is required", "name")
	}
	key, err := normalizeKey(req.Key)
	if err != nil {
		return nil, nil, err
	}
	perms := permissionIDs(req.Permissions)
	return docstore.Document{
		"name":        name,
		"key":         key,
		"description": strings.TrimSpace(req.Description),
		"permissions": toAny(perms),
	}, perms, nil
}

func (req UpdateRoleRequest) changes() (docstore.Document, []string, error) {
	set := docstore.Document{}
	var perms []string
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, nil, shared.Validation("role name cannot be empty", "name")
		}
		set["name"] = name
	}
	if req.Key != nil {
		key, err := normalizeKey(*req.Key)
		if err != nil {
			return nil, nil, err
		}
		set["key"] = key
	}
	if req.Description != nil {
		set["description"] = strings.TrimSpace(*req.Description)
	}
	if req.Permissions != nil {
		perms = permissionIDs(*req.Permissions)
		set["permissions"] = toAny(perms)
	}
	if len(set) == 0 {
		return nil, nil, shared.Validation("no updatable field supplied")
	}
	return set, perms, nil
}
