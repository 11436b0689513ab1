package input

import (
	"fmt"
	"strconv"
	"strings"

	"storyline/internal/domain"
)

// Tabular formats (CSV, XLSX) share a header-row shape: the first row maps
// column names, each following row is one resource. Multi-value cells
// (owners, teams, labels) are semicolon-separated, since commas delimit
// CSV fields. Rows with an empty name are skipped.

type header map[string]int

func headerFromRow(row []string) header {
	h := header{}
	for i, cell := range row {
		if name := strings.ToLower(strings.TrimSpace(cell)); name != "" {
			h[name] = i
		}
	}
	return h
}

func (h header) cell(row []string, name string) string {
	idx, ok := h[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func (h header) list(row []string, name string) domain.StringList {
	return domain.SplitList(h.cell(row, name), ";")
}

func manifestFromRows(kind domain.Kind, rows [][]string) (domain.Manifest, error) {
	if len(rows) == 0 {
		return domain.Manifest{}, nil
	}
	h := headerFromRow(rows[0])
	if _, ok := h["name"]; !ok {
		return domain.Manifest{}, fmt.Errorf("missing %q column", "name")
	}
	var m domain.Manifest
	for i, row := range rows[1:] {
		if h.cell(row, "name") == "" {
			continue
		}
		switch kind {
		case domain.KindObjective:
			m.Objectives = append(m.Objectives, rowToObjective(h, row))
		case domain.KindEpic:
			m.Epics = append(m.Epics, rowToEpic(h, row))
		case domain.KindStory:
			story, err := rowToStory(h, row)
			if err != nil {
				return domain.Manifest{}, fmt.Errorf("row %d: %w", i+2, err)
			}
			m.Stories = append(m.Stories, story)
		}
	}
	return m, nil
}

func rowToObjective(h header, row []string) domain.Objective {
	return domain.Objective{
		Name:        h.cell(row, "name"),
		Description: h.cell(row, "description"),
		State:       h.cell(row, "state"),
	}
}

func rowToEpic(h header, row []string) domain.Epic {
	return domain.Epic{
		Name:        h.cell(row, "name"),
		Description: h.cell(row, "description"),
		Objective:   h.cell(row, "objective"),
		Owners:      h.list(row, "owners"),
		Teams:       h.list(row, "teams"),
		Labels:      h.list(row, "labels"),
		State:       h.cell(row, "state"),
		StartDate:   h.cell(row, "start_date"),
		Deadline:    h.cell(row, "deadline"),
		Template:    h.cell(row, "template"),
	}
}

func rowToStory(h header, row []string) (domain.Story, error) {
	s := domain.Story{
		Name:          h.cell(row, "name"),
		Type:          h.cell(row, "type"),
		Description:   h.cell(row, "description"),
		Epic:          h.cell(row, "epic"),
		Owners:        h.list(row, "owners"),
		Team:          h.cell(row, "team"),
		Labels:        h.list(row, "labels"),
		DueDate:       h.cell(row, "due_date"),
		WorkflowState: h.cell(row, "workflow_state"),
	}
	if raw := h.cell(row, "estimate"); raw != "" {
		est, err := parseEstimate(raw)
		if err != nil {
			return s, err
		}
		s.Estimate = &est
	}
	return s, nil
}

// parseEstimate accepts integers and whole floats; spreadsheet cells often
// format integers as "3.0".
func parseEstimate(raw string) (int64, error) {
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return n, nil
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil && f == float64(int64(f)) {
		return int64(f), nil
	}
	return 0, fmt.Errorf("invalid estimate %q", raw)
}
