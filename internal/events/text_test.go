package events_test

import (
	"bytes"
	"strings"
	"testing"

	"storyline/internal/domain"
	"storyline/internal/events"
)

func TestTextOutcomeLines(t *testing.T) {
	var buf bytes.Buffer
	em := events.NewText(&buf)
	em.Outcome(domain.Outcome{Kind: domain.KindEpic, Name: "Platform", ID: 7, URL: "https://example.com/7"})
	em.Outcome(domain.Outcome{Kind: domain.KindStory, Name: "Fix bug", Error: "boom"})
	em.Warning(domain.KindStory, "Fix bug", "unknown team \"ghosts\"")

	out := buf.String()
	for _, want := range []string{"epic: Platform", "(#7)", "https://example.com/7", "story: Fix bug", "boom", "unknown team"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestTextSummaryTable(t *testing.T) {
	var buf bytes.Buffer
	em := events.NewText(&buf)
	em.Summary(domain.Summary{
		ObjectivesCreated: 1,
		EpicsCreated:      2,
		StoriesCreated:    3,
		Errors:            []string{`Story "x": boom`},
	})
	out := buf.String()
	for _, want := range []string{"OBJECTIVES", "EPICS", "STORIES", "ERRORS", `Story "x": boom`} {
		if !strings.Contains(strings.ToUpper(out), strings.ToUpper(want)) {
			t.Fatalf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestTextDryRunVerdict(t *testing.T) {
	var buf bytes.Buffer
	em := events.NewText(&buf)
	em.DryRun(domain.DryRunReport{})
	if !strings.Contains(buf.String(), "All validations passed") {
		t.Fatalf("valid verdict missing:\n%s", buf.String())
	}

	buf.Reset()
	em.DryRun(domain.DryRunReport{Errors: []string{"Epic: 'name' is required"}})
	out := buf.String()
	if !strings.Contains(out, "1 validation error") || !strings.Contains(out, "'name' is required") {
		t.Fatalf("invalid verdict missing:\n%s", out)
	}
}
