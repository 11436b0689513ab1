package shortcut

// Wire models for the Shortcut v3 API, limited to the fields this tool
// reads and writes.

type CreateLabelParams struct {
	Name string `json:"name"`
}

// CreateObjectiveRequest is the body for POST /objectives.
type CreateObjectiveRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	// "to do" | "in progress" | "done"
	State string `json:"state,omitempty"`
}

type Objective struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	State       string `json:"state"`
	AppURL      string `json:"app_url,omitempty"`
}

// CreateEpicRequest is the body for POST /epics.
type CreateEpicRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	State       string `json:"state,omitempty"`
	// Linked objective integer IDs.
	ObjectiveIDs []int64 `json:"objective_ids,omitempty"`
	// Owner member UUIDs.
	OwnerIDs []string `json:"owner_ids,omitempty"`
	// Team/group UUIDs.
	GroupIDs []string            `json:"group_ids,omitempty"`
	Labels   []CreateLabelParams `json:"labels,omitempty"`
	// ISO 8601 dates, e.g. "2024-01-15".
	PlannedStartDate string `json:"planned_start_date,omitempty"`
	Deadline         string `json:"deadline,omitempty"`
}

type Epic struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	State       string `json:"state"`
	AppURL      string `json:"app_url,omitempty"`
}

// CreateStoryRequest is the body for POST /stories.
type CreateStoryRequest struct {
	Name string `json:"name"`
	// "feature" (default) | "bug" | "chore"
	StoryType   string   `json:"story_type,omitempty"`
	Description string   `json:"description,omitempty"`
	OwnerIDs    []string `json:"owner_ids,omitempty"`
	// Stories take a single team/group UUID.
	GroupID string `json:"group_id,omitempty"`
	// Parent epic integer ID.
	EpicID          int64               `json:"epic_id,omitempty"`
	WorkflowStateID int64               `json:"workflow_state_id,omitempty"`
	Labels          []CreateLabelParams `json:"labels,omitempty"`
	Estimate        *int64              `json:"estimate,omitempty"`
	Deadline        string              `json:"deadline,omitempty"`
}

type Story struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	StoryType string `json:"story_type"`
	AppURL    string `json:"app_url,omitempty"`
}

// Directory models, read once per run for name resolution.

type Member struct {
	ID       string        `json:"id"`
	Profile  MemberProfile `json:"profile"`
	Disabled bool          `json:"disabled"`
}

type MemberProfile struct {
	Name         string `json:"name"`
	MentionName  string `json:"mention_name"`
	EmailAddress string `json:"email_address,omitempty"`
}

type Group struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	MentionName string `json:"mention_name"`
	Archived    bool   `json:"archived"`
}

type Workflow struct {
	ID             int64           `json:"id"`
	Name           string          `json:"name"`
	DefaultStateID int64           `json:"default_state_id"`
	States         []WorkflowState `json:"states"`
}

type WorkflowState struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	// "unstarted" | "started" | "done"
	Type string `json:"type"`
}
