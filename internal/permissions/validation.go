package permissions

import (
	"regexp"
	"strings"

	"github.com/qaforge/qaforge/internal/docstore"
	"github.com/qaforge/qaforge/internal/shared"
)

var keyPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_.:-]*$`)

func normalizeKey(raw string) (string, error) {
	key := strings.ToLower(strings.TrimSpace(raw))
	if key == "" {
		return "", shared.Validation("permission key is required", "key")
	}
	if !keyPattern.MatchString(key) {
		return "", shared.Validation("permission key may contain only letters, digits and _.:-", "key")
	}
	return key, nil
}

func (req CreatePermissionRequest) document() (docstore.Document, error) {
	key, err := normalizeKey(req.Key)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, shared.Validation("permission name is required", "name")
	}
	return docstore.Document{
		"key":         key,
		"name":        name,
		"description": strings.TrimSpace(req.Description),
	}, nil
}

// changes builds the update document. A supplied key must equal currentKey.
func (req UpdatePermissionRequest) changes(currentKey string) (docstore.Document, error) {
	set := docstore.Document{}
	if req.Key != nil {
		key, err := normalizeKey(*req.Key)
		if err != nil {
			return nil, err
		}
		if key != currentKey {
			return nil, shared.Validation("permission key is immutable", "key")
		}
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, shared.Validation("permission name cannot be empty", "name")
		}
		set["name"] = name
	}
	if req.Description != nil {
		set["description"] = strings.TrimSpace(*req.Description)
	}
	if len(set) == 0 {
		return nil, shared.Validation("no updatable field supplied")
	}
	return set, nil
}
