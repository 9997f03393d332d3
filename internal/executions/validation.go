package executions

import (
	"strings"
	"time"

	"github.com/qaforge/qaforge/internal/docstore"
	"github.com/qaforge/qaforge/internal/shared"
)

func parseStatus(raw string) (Status, error) {
	status := Status(strings.ToLower(strings.TrimSpace(raw)))
	if status == "" {
		return StatusNotExecuted, nil
	}
	if !status.Valid() {
		return "", shared.Validation("status must be one of not_executed, pass, fail, skipped", "status")
	}
	return status, nil
}

func (req CreateExecutionRequest) document(now time.Time) (docstore.Document, error) {
	stepID := strings.TrimSpace(req.TestStepID)
	if stepID == "" {
		return nil, shared.Validation("test step is required", "test_step_id")
	}
	status, err := parseStatus(req.Status)
	if err != nil {
		return nil, err
	}
	doc := docstore.Document{
		"test_step_id":  stepID,
		"status":        string(status),
		"actual_result": strings.TrimSpace(req.ActualResult),
		"notes":         strings.TrimSpace(req.Notes),
	}
	if executedBy := strings.TrimSpace(req.ExecutedBy); executedBy != "" {
		doc["executed_by"] = executedBy
	}
	switch {
	case req.ExecutedAt != nil:
		doc["executed_at"] = req.ExecutedAt.UTC()
	case status != StatusNotExecuted:
		doc["executed_at"] = now
	}
	return doc, nil
}

// changes builds the update document. current is the stored status, used to
// stamp executed_at when a run is first recorded.
func (req UpdateExecutionRequest) changes(current Status, hasExecutedAt bool, now time.Time) (docstore.Document, error) {
	set := docstore.Document{}
	if req.ExecutedBy != nil {
		if executedBy := strings.TrimSpace(*req.ExecutedBy); executedBy != "" {
			set["executed_by"] = executedBy
		} else {
			set["executed_by"] = nil
		}
	}
	if req.ExecutedAt != nil {
		set["executed_at"] = req.ExecutedAt.UTC()
	}
	if req.Status != nil {
		status, err := parseStatus(*req.Status)
		if err != nil {
			return nil, err
		}
		set["status"] = string(status)
		if status != StatusNotExecuted && current == StatusNotExecuted && req.ExecutedAt == nil && !hasExecutedAt {
			set["executed_at"] = now
		}
	}
	if req.ActualResult != nil {
		set["actual_result"] = strings.TrimSpace(*req.ActualResult)
	}
	if req.Notes != nil {
		set["notes"] = strings.TrimSpace(*req.Notes)
	}
	if len(set) == 0 {
		return nil, shared.Validation("no updatable field supplied")
	}
	return set, nil
}
