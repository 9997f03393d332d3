package testplans

import (
	"strings"

	"github.com/qaforge/qaforge/internal/docstore"
	"github.com/qaforge/qaforge/internal/shared"
)

func (req CreateTestPlanRequest) document() (docstore.Document, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, shared.Validation("test plan name is required", "name")
	}
	projectID := strings.TrimSpace(req.ProjectID)
	if projectID == "" {
		return nil, shared.Validation("project is required", "project_id")
	}
	doc := docstore.Document{
		"name":        name,
		"description": strings.TrimSpace(req.Description),
		"project_id":  projectID,
		"steps":       stepIDs(req.Steps),
	}
	if createdBy := strings.TrimSpace(req.CreatedBy); createdBy != "" {
		doc["created_by"] = createdBy
	}
	return doc, nil
}

func (req UpdateTestPlanRequest) changes() (docstore.Document, error) {
	set := docstore.Document{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, shared.Validation("test plan name cannot be empty", "name")
		}
		set["name"] = name
	}
	if req.Description != nil {
		set["description"] = strings.TrimSpace(*req.Description)
	}
	if req.ProjectID != nil {
		projectID := strings.TrimSpace(*req.ProjectID)
		if projectID == "" {
			return nil, shared.Validation("project cannot be empty", "project_id")
		}
		set["project_id"] = projectID
	}
	if req.CreatedBy != nil {
		if createdBy := strings.TrimSpace(*req.CreatedBy); createdBy != "" {
			set["created_by"] = createdBy
		} else {
			set["created_by"] = nil
		}
	}
	if req.Steps != nil {
		set["steps"] = stepIDs(*req.Steps)
	}
	if len(set) == 0 {
		return nil, shared.Validation("no updatable field supplied")
	}
	return set, nil
}

func stepIDs(ids []string) []any {
	out := make([]any, 0, len(ids))
	for _, id := range ids {
		out = append(out, strings.TrimSpace(id))
	}
	return out
}

func anyStrings(values []any) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
