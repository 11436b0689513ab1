package input

import (
	"encoding/csv"
	"fmt"
	"os"

	"storyline/internal/domain"
)

func parseCSV(path string, kind domain.Kind) (domain.Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.Manifest{}, fmt.Errorf("failed to open CSV %q: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	rows, err := r.ReadAll()
	if err != nil {
		return domain.Manifest{}, fmt.Errorf("failed to parse CSV %q: %w", path, err)
	}
	m, err := manifestFromRows(kind, rows)
	if err != nil {
		return domain.Manifest{}, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}
