package input_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"storyline/internal/domain"
	"storyline/internal/input"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseYAML(t *testing.T) {
	path := writeFile(t, "batch.yaml", `
objectives:
  - name: Q3 Goals
    description: quarterly
    state: to do
epics:
  - name: Platform
    objective: Q3 Goals
    owners: alice, bob
    teams:
      - platform
stories:
  - name: Fix bug
    type: bug
    epic: Platform
    estimate: 3
`)
	m, err := input.ParseFile(path, "")
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if m.Total() != 3 {
		t.Fatalf("expected 3 resources, got %d", m.Total())
	}
	if m.Objectives[0].Name != "Q3 Goals" || m.Objectives[0].State != "to do" {
		t.Fatalf("objective: %+v", m.Objectives[0])
	}
	// A comma string and a sequence both decode to lists.
	epic := m.Epics[0]
	if len(epic.Owners) != 2 || epic.Owners[0] != "alice" || epic.Owners[1] != "bob" {
		t.Fatalf("owners: %v", epic.Owners)
	}
	if len(epic.Teams) != 1 || epic.Teams[0] != "platform" {
		t.Fatalf("teams: %v", epic.Teams)
	}
	story := m.Stories[0]
	if story.Estimate == nil || *story.Estimate != 3 {
		t.Fatalf("estimate: %v", story.Estimate)
	}
}

func TestParseYAMLInvalid(t *testing.T) {
	path := writeFile(t, "bad.yaml", "objectives: [\n")
	if _, err := input.ParseFile(path, ""); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestParseCSVStories(t *testing.T) {
	path := writeFile(t, "stories.csv", strings.Join([]string{
		"name,type,epic,owners,estimate",
		"Fix bug,bug,Platform,alice;bob,5",
		",,,,",
		"Add cache,feature,12,carol,",
	}, "\n"))
	m, err := input.ParseFile(path, domain.KindStory)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if len(m.Stories) != 2 {
		t.Fatalf("blank-name rows must be skipped, got %d stories", len(m.Stories))
	}
	first := m.Stories[0]
	if first.Name != "Fix bug" || first.Epic != "Platform" {
		t.Fatalf("first story: %+v", first)
	}
	if len(first.Owners) != 2 || first.Owners[1] != "bob" {
		t.Fatalf("semicolon owners: %v", first.Owners)
	}
	if first.Estimate == nil || *first.Estimate != 5 {
		t.Fatalf("estimate: %v", first.Estimate)
	}
	if m.Stories[1].Estimate != nil {
		t.Fatalf("empty estimate must stay nil: %v", m.Stories[1].Estimate)
	}
}

func TestParseCSVRequiresKind(t *testing.T) {
	path := writeFile(t, "stories.csv", "name\nFix bug\n")
	if _, err := input.ParseFile(path, ""); err == nil {
		t.Fatal("expected error without --type")
	}
}

func TestParseCSVMissingNameColumn(t *testing.T) {
	path := writeFile(t, "epics.csv", "title,state\nPlatform,to do\n")
	_, err := input.ParseFile(path, domain.KindEpic)
	if err == nil || !strings.Contains(err.Error(), `"name"`) {
		t.Fatalf("expected missing name column error, got %v", err)
	}
}

func TestParseCSVBadEstimate(t *testing.T) {
	path := writeFile(t, "stories.csv", "name,estimate\nFix bug,huge\n")
	_, err := input.ParseFile(path, domain.KindStory)
	if err == nil || !strings.Contains(err.Error(), "row 2") {
		t.Fatalf("expected row-numbered estimate error, got %v", err)
	}
}

func TestParseUnsupportedExtension(t *testing.T) {
	path := writeFile(t, "batch.toml", "")
	if _, err := input.ParseFile(path, ""); err == nil {
		t.Fatal("expected unsupported extension error")
	}
}

func writeWorkbook(t *testing.T, sheets map[string][][]string) string {
	t.Helper()
	wb := excelize.NewFile()
	first := true
	for name, rows := range sheets {
		if first {
			wb.SetSheetName("Sheet1", name)
			first = false
		} else {
			if _, err := wb.NewSheet(name); err != nil {
				t.Fatal(err)
			}
		}
		for i, row := range rows {
			cell, _ := excelize.CoordinatesToCellName(1, i+1)
			if err := wb.SetSheetRow(name, cell, &row); err != nil {
				t.Fatal(err)
			}
		}
	}
	path := filepath.Join(t.TempDir(), "batch.xlsx")
	if err := wb.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseXLSXSheetMatching(t *testing.T) {
	path := writeWorkbook(t, map[string][][]string{
		"Epics": {
			{"name", "objective", "owners"},
			{"Platform", "Q3 Goals", "alice;bob"},
		},
		"Stories": {
			{"name", "epic", "estimate"},
			{"Fix bug", "Platform", "3.0"},
		},
	})
	m, err := input.ParseFile(path, "")
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if len(m.Epics) != 1 || len(m.Stories) != 1 {
		t.Fatalf("epics=%d stories=%d", len(m.Epics), len(m.Stories))
	}
	if m.Epics[0].Objective != "Q3 Goals" || len(m.Epics[0].Owners) != 2 {
		t.Fatalf("epic: %+v", m.Epics[0])
	}
	// Spreadsheets format integers as floats.
	st := m.Stories[0]
	if st.Estimate == nil || *st.Estimate != 3 {
		t.Fatalf("estimate: %v", st.Estimate)
	}
}

func TestParseXLSXExplicitKindUsesFirstSheet(t *testing.T) {
	path := writeWorkbook(t, map[string][][]string{
		"Data": {
			{"name", "state"},
			{"Q3 Goals", "in progress"},
		},
	})
	m, err := input.ParseFile(path, domain.KindObjective)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if len(m.Objectives) != 1 || m.Objectives[0].State != "in progress" {
		t.Fatalf("objectives: %+v", m.Objectives)
	}
}

func TestParseXLSXNoRecognizedSheets(t *testing.T) {
	path := writeWorkbook(t, map[string][][]string{
		"Data": {{"name"}, {"x"}},
	})
	if _, err := input.ParseFile(path, ""); err == nil {
		t.Fatal("expected error for unrecognized sheet names")
	}
}
