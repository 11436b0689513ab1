package events

import (
	"encoding/json"
	"io"

	"storyline/internal/domain"
)

// JSONEmitter writes newline-delimited JSON records, one per event, with
// an "event" discriminator: created, error, warning, summary, dry_run.
type JSONEmitter struct {
	RunID string
	enc   *json.Encoder
}

func NewJSON(out io.Writer, runID string) *JSONEmitter {
	return &JSONEmitter{RunID: runID, enc: json.NewEncoder(out)}
}

func (j *JSONEmitter) Outcome(o domain.Outcome) {
	if o.Created() {
		j.emit(map[string]any{
			"event":  "created",
			"run_id": j.RunID,
			"kind":   o.Kind,
			"id":     o.ID,
			"name":   o.Name,
			"url":    o.URL,
		})
		return
	}
	j.emit(map[string]any{
		"event":  "error",
		"run_id": j.RunID,
		"kind":   o.Kind,
		"name":   o.Name,
		"error":  o.Error,
	})
}

func (j *JSONEmitter) Warning(kind domain.Kind, name, message string) {
	j.emit(map[string]any{
		"event":   "warning",
		"run_id":  j.RunID,
		"kind":    kind,
		"name":    name,
		"message": message,
	})
}

func (j *JSONEmitter) Summary(s domain.Summary) {
	j.emit(map[string]any{
		"event":              "summary",
		"run_id":             s.RunID,
		"objectives_created": s.ObjectivesCreated,
		"epics_created":      s.EpicsCreated,
		"stories_created":    s.StoriesCreated,
		"error_count":        s.ErrorCount(),
		"errors":             errorList(s.Errors),
	})
}

func (j *JSONEmitter) DryRun(r domain.DryRunReport) {
	j.emit(map[string]any{
		"event":  "dry_run",
		"run_id": r.RunID,
		"valid":  r.Valid(),
		"errors": errorList(r.Errors),
	})
}

func (j *JSONEmitter) emit(record map[string]any) {
	_ = j.enc.Encode(record)
}

// errorList keeps "errors" a JSON array rather than null.
func errorList(errs []string) []string {
	if errs == nil {
		return []string{}
	}
	return errs
}
