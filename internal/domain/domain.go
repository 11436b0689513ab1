package domain

import "strings"

// Kind identifies a resource kind. Creation runs in phase order:
// objectives, then epics, then stories.
type Kind string

const (
	KindObjective Kind = "objective"
	KindEpic      Kind = "epic"
	KindStory     Kind = "story"
)

// Phase returns the creation phase index for the kind.
func (k Kind) Phase() int {
	switch k {
	case KindObjective:
		return 0
	case KindEpic:
		return 1
	case KindStory:
		return 2
	}
	return -1
}

func ParseKind(s string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "objective", "objectives":
		return KindObjective, true
	case "epic", "epics":
		return KindEpic, true
	case "story", "stories":
		return KindStory, true
	}
	return "", false
}

type Objective struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	// "to do" | "in progress" | "done"
	State string `yaml:"state,omitempty" json:"state,omitempty"`
}

type Epic struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	// Objective name resolved in-run, or a numeric ID passed through as-is.
	Objective string     `yaml:"objective,omitempty" json:"objective,omitempty"`
	Owners    StringList `yaml:"owners,omitempty" json:"owners,omitempty"`
	Teams     StringList `yaml:"teams,omitempty" json:"teams,omitempty"`
	Labels    StringList `yaml:"labels,omitempty" json:"labels,omitempty"`
	State     string     `yaml:"state,omitempty" json:"state,omitempty"`
	StartDate string     `yaml:"start_date,omitempty" json:"start_date,omitempty"`
	Deadline  string     `yaml:"deadline,omitempty" json:"deadline,omitempty"`
	// Per-epic markdown template path; overrides the run-wide template.
	Template string `yaml:"template,omitempty" json:"template,omitempty"`
}

type Story struct {
	Name string `yaml:"name" json:"name"`
	// "feature" (default) | "bug" | "chore"
	Type        string `yaml:"type,omitempty" json:"type,omitempty"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	// Epic name resolved in-run, or a numeric ID passed through as-is.
	Epic          string     `yaml:"epic,omitempty" json:"epic,omitempty"`
	Owners        StringList `yaml:"owners,omitempty" json:"owners,omitempty"`
	Team          string     `yaml:"team,omitempty" json:"team,omitempty"`
	Labels        StringList `yaml:"labels,omitempty" json:"labels,omitempty"`
	Estimate      *int64     `yaml:"estimate,omitempty" json:"estimate,omitempty"`
	DueDate       string     `yaml:"due_date,omitempty" json:"due_date,omitempty"`
	WorkflowState string     `yaml:"workflow_state,omitempty" json:"workflow_state,omitempty"`
}

// Manifest is the parsed input for one run. Any section may be empty.
type Manifest struct {
	Objectives []Objective `yaml:"objectives" json:"objectives"`
	Epics      []Epic      `yaml:"epics" json:"epics"`
	Stories    []Story     `yaml:"stories" json:"stories"`
}

func (m Manifest) Total() int {
	return len(m.Objectives) + len(m.Epics) + len(m.Stories)
}

// Outcome is the terminal result for one submitted resource.
type Outcome struct {
	Kind  Kind   `json:"kind"`
	Name  string `json:"name"`
	ID    int64  `json:"id,omitempty"`
	URL   string `json:"url,omitempty"`
	Error string `json:"error,omitempty"`
}

func (o Outcome) Created() bool {
	return o.Error == ""
}

// Summary aggregates a full run.
type Summary struct {
	RunID             string   `json:"run_id"`
	ObjectivesCreated int      `json:"objectives_created"`
	EpicsCreated      int      `json:"epics_created"`
	StoriesCreated    int      `json:"stories_created"`
	Errors            []string `json:"errors"`
}

func (s Summary) ErrorCount() int {
	return len(s.Errors)
}

// DryRunReport is the terminal verdict of a validation-only run.
type DryRunReport struct {
	RunID  string   `json:"run_id"`
	Errors []string `json:"errors"`
}

func (r DryRunReport) Valid() bool {
	return len(r.Errors) == 0
}
