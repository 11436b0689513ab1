package input

import (
	"fmt"
	"path/filepath"
	"strings"

	"storyline/internal/domain"
)

// ParseFile detects the format from the file extension and parses it into
// a manifest.
//
// YAML files may mix objectives, epics, and stories under top-level keys;
// kind is ignored. CSV files hold one kind per file and require kind.
// XLSX files use the first sheet when kind is given, otherwise sheets are
// matched by name.
func ParseFile(path string, kind domain.Kind) (domain.Manifest, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return parseYAML(path)
	case ".csv":
		if kind == "" {
			return domain.Manifest{}, fmt.Errorf("--type is required for CSV files: objective, epic, or story")
		}
		return parseCSV(path, kind)
	case ".xlsx", ".xls":
		return parseXLSX(path, kind)
	default:
		return domain.Manifest{}, fmt.Errorf("unsupported file extension %q: use .yaml, .csv, or .xlsx", ext)
	}
}
