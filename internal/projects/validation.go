package projects

import (
	"strings"

	"github.com/qaforge/qaforge/internal/docstore"
	"github.com/qaforge/qaforge/internal/shared"
)

func (req CreateProjectRequest) document() (docstore.Document, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, shared.Validation("project name is required", "name")
	}
	return docstore.Document{
		"name":        name,
		"description": strings.TrimSpace(req.Description),
	}, nil
}

func (req UpdateProjectRequest) changes() (docstore.Document, error) {
	set := docstore.Document{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, shared.Validation("project name cannot be empty", "name")
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
