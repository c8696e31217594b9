package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/joseph-ayodele/labelscan/internal/aggregate"
	"github.com/joseph-ayodele/labelscan/internal/common"
	"github.com/joseph-ayodele/labelscan/internal/reconcile"
)

// Report is the machine-readable summary written next to the artifacts of a run.
type Report struct {
	RunID          string            `json:"runId"`
	Command        string            `json:"command"`
	StartedAt      time.Time         `json:"startedAt"`
	FinishedAt     time.Time         `json:"finishedAt"`
	Files          []string          `json:"files"`
	Stats          *aggregate.Stats  `json:"stats,omitempty"`
	UniqueIDs      []string          `json:"uniqueIds"`
	Reconciliation *ReconcileSummary `json:"reconciliation,omitempty"`
	Artifacts      []string          `json:"artifacts"`
}

// ReconcileSummary mirrors the counters shown after a reconciliation.
type ReconcileSummary struct {
	Extracted       int      `json:"extracted"`
	Unique          int      `json:"unique"`
	MasterIDs       int      `json:"masterIds"`
	Matched         int      `json:"matched"`
	Pending         int      `json:"pending"`
	Unrecognized    int      `json:"unrecognized"`
	PendingIDs      []string `json:"pendingIds"`
	UnrecognizedIDs []string `json:"unrecognizedIds"`
}

func NewReconcileSummary(o *reconcile.Outcome) *ReconcileSummary {
	return &ReconcileSummary{
		Extracted:       o.ExtractedIDs,
		Unique:          o.UniqueOrders,
		MasterIDs:       o.MasterIDs,
		Matched:         o.Matched,
		Pending:         o.Pending,
		Unrecognized:    len(o.Unrecognized),
		PendingIDs:      nonNil(o.PendingIDs),
		UnrecognizedIDs: nonNil(o.Unrecognized),
	}
}

var counter = map[string]any{"type": "integer", "minimum": 0}

var stringList = map[string]any{"type": "array", "items": map[string]any{"type": "string"}}

// reportSchema is the contract for report.json.
var reportSchema = map[string]any{
	"$schema":  "https://json-schema.org/draft/2020-12/schema",
	"type":     "object",
	"required": []any{"runId", "command", "startedAt", "finishedAt", "files", "uniqueIds", "artifacts"},
	"properties": map[string]any{
		"runId":      map[string]any{"type": "string", "minLength": 1},
		"command":    map[string]any{"type": "string", "enum": []any{"extract", "scan-ocr", "reconcile", "watch"}},
		"startedAt":  map[string]any{"type": "string", "format": "date-time"},
		"finishedAt": map[string]any{"type": "string", "format": "date-time"},
		"files":      stringList,
		"uniqueIds":  stringList,
		"artifacts":  stringList,
		"stats": map[string]any{
			"type":     "object",
			"required": []any{"withSourceId", "awbOnly", "manualReview", "total"},
			"properties": map[string]any{
				"withSourceId": counter,
				"awbOnly":      counter,
				"manualReview": counter,
				"total":        counter,
			},
		},
		"reconciliation": map[string]any{
			"type":     "object",
			"required": []any{"matched", "pending", "unrecognized", "pendingIds", "unrecognizedIds"},
			"properties": map[string]any{
				"extracted":       counter,
				"unique":          counter,
				"masterIds":       counter,
				"matched":         counter,
				"pending":         counter,
				"unrecognized":    counter,
				"pendingIds":      stringList,
				"unrecognizedIds": stringList,
			},
		},
	},
}

// MarshalReport encodes r and checks the result against the report schema.
func MarshalReport(r Report) ([]byte, error) {
	r.Files = nonNil(r.Files)
	r.UniqueIDs = nonNil(r.UniqueIDs)
	r.Artifacts = nonNil(r.Artifacts)

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal report: %w", err)
	}
	if err := validateJSON(reportSchema, data); err != nil {
		return nil, err
	}
	return data, nil
}

// validateJSON validates data against schemaMap.
func validateJSON(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	if err := compiler.AddResource("report.schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("report.schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("%w: report does not match schema: %w", common.ErrValidation, err)
	}
	return nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
