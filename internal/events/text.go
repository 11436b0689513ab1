package events

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"storyline/internal/domain"
)

// TextEmitter renders the outcome stream for humans.
type TextEmitter struct {
	Out io.Writer
}

func NewText(out io.Writer) *TextEmitter {
	return &TextEmitter{Out: out}
}

func (t *TextEmitter) Outcome(o domain.Outcome) {
	if o.Created() {
		line := fmt.Sprintf("  %s %s: %s  (#%d)", text.FgGreen.Sprint("✓"), o.Kind, o.Name, o.ID)
		if o.URL != "" {
			line += "  " + text.Faint.Sprint(o.URL)
		}
		fmt.Fprintln(t.Out, line)
		return
	}
	fmt.Fprintf(t.Out, "  %s %s: %s\n    %s\n", text.FgRed.Sprint("✗"), o.Kind, o.Name, o.Error)
}

func (t *TextEmitter) Warning(kind domain.Kind, name, message string) {
	fmt.Fprintf(t.Out, "  %s %s: %s\n    %s\n", text.FgYellow.Sprint("!"), kind, name, message)
}

func (t *TextEmitter) Summary(s domain.Summary) {
	fmt.Fprintln(t.Out)
	tw := table.NewWriter()
	tw.SetOutputMirror(t.Out)
	tw.AppendHeader(table.Row{"Kind", "Created"})
	tw.AppendRow(table.Row{"Objectives", s.ObjectivesCreated})
	tw.AppendRow(table.Row{"Epics", s.EpicsCreated})
	tw.AppendRow(table.Row{"Stories", s.StoriesCreated})
	tw.AppendFooter(table.Row{"Errors", s.ErrorCount()})
	tw.Render()
	for _, e := range s.Errors {
		fmt.Fprintf(t.Out, "  %s %s\n", text.FgRed.Sprint("✗"), e)
	}
}

func (t *TextEmitter) DryRun(r domain.DryRunReport) {
	if r.Valid() {
		fmt.Fprintf(t.Out, "%s All validations passed, no resources created (dry run).\n", text.FgGreen.Sprint("✓"))
		return
	}
	fmt.Fprintf(t.Out, "%s %d validation error(s):\n", text.FgRed.Sprint("✗"), len(r.Errors))
	for _, e := range r.Errors {
		fmt.Fprintf(t.Out, "  %s %s\n", text.FgRed.Sprint("•"), e)
	}
}
