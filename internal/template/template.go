package template

import (
	"fmt"
	"os"
	"strings"

	"storyline/internal/domain"
)

// Template is a markdown description template for epics. Placeholders of
// the form {{name}} are replaced per-epic; unknown placeholders are left
// untouched.
//
// Variables: name, description, objective, owners, teams, labels,
// start_date, deadline. Multi-value fields render comma-separated.
type Template struct {
	content string
}

// Load reads a template file once; Render applies it per epic.
func Load(path string) (*Template, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read template %q: %w", path, err)
	}
	return New(string(content)), nil
}

func New(content string) *Template {
	return &Template{content: content}
}

// Render substitutes the epic's field values into the template.
func (t *Template) Render(e domain.Epic) string {
	vars := [][2]string{
		{"name", e.Name},
		{"description", e.Description},
		{"objective", e.Objective},
		{"owners", e.Owners.Join()},
		{"teams", e.Teams.Join()},
		{"labels", e.Labels.Join()},
		{"start_date", e.StartDate},
		{"deadline", e.Deadline},
	}
	out := t.content
	for _, kv := range vars {
		out = strings.ReplaceAll(out, "{{"+kv[0]+"}}", kv[1])
	}
	return out
}
