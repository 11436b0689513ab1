package domain

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// StringList accepts either a YAML sequence of strings or a single
// comma-separated string. Entries are trimmed; empty entries dropped.
type StringList []string

func (l *StringList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var s string
		if err := node.Decode(&s); err != nil {
			return err
		}
		*l = SplitList(s, ",")
		return nil
	case yaml.SequenceNode:
		var items []string
		if err := node.Decode(&items); err != nil {
			return err
		}
		out := make(StringList, 0, len(items))
		for _, it := range items {
			if t := strings.TrimSpace(it); t != "" {
				out = append(out, t)
			}
		}
		*l = out
		return nil
	}
	return fmt.Errorf("expected string or list of strings, got yaml kind %d", node.Kind)
}

// Join returns the entries comma-joined for display and templating.
func (l StringList) Join() string {
	return strings.Join(l, ", ")
}

// SplitList splits on sep, trimming entries and dropping empty ones.
func SplitList(s, sep string) StringList {
	parts := strings.Split(s, sep)
	out := make(StringList, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
