package input

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"storyline/internal/domain"
)

func parseYAML(path string) (domain.Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Manifest{}, err
	}
	var m domain.Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return domain.Manifest{}, fmt.Errorf("failed to parse YAML file %q: %w", path, err)
	}
	return m, nil
}
