package input

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"storyline/internal/domain"
)

// parseXLSX reads an Excel workbook. With an explicit kind the first sheet
// is used; otherwise sheets whose lowercase names contain "objective",
// "epic", or "stor" are parsed.
func parseXLSX(path string, kind domain.Kind) (domain.Manifest, error) {
	wb, err := excelize.OpenFile(path)
	if err != nil {
		return domain.Manifest{}, fmt.Errorf("cannot open Excel file %q: %w", path, err)
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return domain.Manifest{}, fmt.Errorf("excel file %q has no sheets", path)
	}

	if kind != "" {
		rows, err := wb.GetRows(sheets[0])
		if err != nil {
			return domain.Manifest{}, fmt.Errorf("error reading sheet %q: %w", sheets[0], err)
		}
		return manifestFromRows(kind, rows)
	}

	var m domain.Manifest
	matched := false
	for _, sheet := range sheets {
		sheetKind, ok := kindFromSheetName(sheet)
		if !ok {
			continue
		}
		rows, err := wb.GetRows(sheet)
		if err != nil {
			return domain.Manifest{}, fmt.Errorf("error reading sheet %q: %w", sheet, err)
		}
		part, err := manifestFromRows(sheetKind, rows)
		if err != nil {
			return domain.Manifest{}, fmt.Errorf("sheet %q: %w", sheet, err)
		}
		m.Objectives = append(m.Objectives, part.Objectives...)
		m.Epics = append(m.Epics, part.Epics...)
		m.Stories = append(m.Stories, part.Stories...)
		matched = true
	}
	if !matched {
		return domain.Manifest{}, fmt.Errorf(
			"no recognized sheet names in %q: name sheets 'Objectives', 'Epics', or 'Stories', or supply --type to use the first sheet", path)
	}
	return m, nil
}

func kindFromSheetName(name string) (domain.Kind, bool) {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "objective"):
		return domain.KindObjective, true
	case strings.Contains(lower, "epic"):
		return domain.KindEpic, true
	case strings.Contains(lower, "stor"):
		return domain.KindStory, true
	}
	return "", false
}
