package events

import "storyline/internal/domain"

// Emitter consumes the outcome stream of a run: one event per resource in
// strict phase-then-input order, then a single terminal summary. Dry runs
// emit one terminal report instead.
type Emitter interface {
	// Outcome records a created or failed resource.
	Outcome(o domain.Outcome)
	// Warning surfaces a non-fatal notice, e.g. an unresolved reference.
	Warning(kind domain.Kind, name, message string)
	Summary(s domain.Summary)
	DryRun(r domain.DryRunReport)
}
