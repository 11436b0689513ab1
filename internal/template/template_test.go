package template_test

import (
	"os"
	"path/filepath"
	"testing"

	"storyline/internal/domain"
	"storyline/internal/template"
)

func TestRender(t *testing.T) {
	tmpl := template.New("# {{name}}\n\n{{description}}\n\nOwners: {{owners}}\nDue: {{deadline}}")
	epic := domain.Epic{
		Name:        "Platform",
		Description: "Harden the platform",
		Owners:      domain.StringList{"alice", "bob"},
		Deadline:    "2026-09-30",
	}
	got := tmpl.Render(epic)
	want := "# Platform\n\nHarden the platform\n\nOwners: alice, bob\nDue: 2026-09-30"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestRenderUnknownPlaceholderLeftIntact(t *testing.T) {
	tmpl := template.New("{{name}} {{reviewer}}")
	got := tmpl.Render(domain.Epic{Name: "Platform"})
	if got != "Platform {{reviewer}}" {
		t.Fatalf("got %q", got)
	}
}

func TestRenderEmptyFields(t *testing.T) {
	tmpl := template.New("[{{objective}}][{{labels}}]")
	if got := tmpl.Render(domain.Epic{}); got != "[][]" {
		t.Fatalf("got %q", got)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "epic.md")
	if err := os.WriteFile(path, []byte("hello {{name}}"), 0o644); err != nil {
		t.Fatal(err)
	}
	tmpl, err := template.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := tmpl.Render(domain.Epic{Name: "Platform"}); got != "hello Platform" {
		t.Fatalf("got %q", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := template.Load(filepath.Join(t.TempDir(), "absent.md")); err == nil {
		t.Fatal("expected error for missing template")
	}
}
