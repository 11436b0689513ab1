package resolver

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"storyline/internal/domain"
	"storyline/internal/shortcut"
)

// directoryClient is the read-only slice of the API the resolver needs.
type directoryClient interface {
	ListMembers(ctx context.Context) ([]shortcut.Member, error)
	ListGroups(ctx context.Context) ([]shortcut.Group, error)
	ListWorkflows(ctx context.Context) ([]shortcut.Workflow, error)
}

// Resolver maps names to identifiers. Directory maps (members, groups,
// workflow states) are built once per run from workspace data. The
// objective and epic maps are append-only and grow as resources are
// created in this run, so later resources can reference earlier ones by
// name.
type Resolver struct {
	members              map[string]string
	groups               map[string]string
	workflowStates       map[string]int64
	defaultWorkflowState int64
	hasDefaultState      bool

	objectives map[string]int64
	epics      map[string]int64
}

// New fetches members, groups, and workflows and builds the lookup maps.
func New(ctx context.Context, client directoryClient) (*Resolver, error) {
	members, err := client.ListMembers(ctx)
	if err != nil {
		return nil, err
	}
	groups, err := client.ListGroups(ctx)
	if err != nil {
		return nil, err
	}
	workflows, err := client.ListWorkflows(ctx)
	if err != nil {
		return nil, err
	}
	return FromDirectory(members, groups, workflows), nil
}

// FromDirectory builds a resolver from already-fetched workspace data.
func FromDirectory(members []shortcut.Member, groups []shortcut.Group, workflows []shortcut.Workflow) *Resolver {
	r := &Resolver{
		members:        map[string]string{},
		groups:         map[string]string{},
		workflowStates: map[string]int64{},
		objectives:     map[string]int64{},
		epics:          map[string]int64{},
	}
	for _, m := range members {
		if m.Disabled {
			continue
		}
		r.members[m.Profile.Name] = m.ID
		r.members[m.Profile.MentionName] = m.ID
		if m.Profile.EmailAddress != "" {
			r.members[m.Profile.EmailAddress] = m.ID
		}
	}
	for _, g := range groups {
		if g.Archived {
			continue
		}
		r.groups[g.Name] = g.ID
		r.groups[g.MentionName] = g.ID
	}
	for _, wf := range workflows {
		for _, st := range wf.States {
			// Last write wins for duplicate state names across workflows.
			r.workflowStates[st.Name] = st.ID
			if !r.hasDefaultState && st.Type == "unstarted" {
				r.defaultWorkflowState = st.ID
				r.hasDefaultState = true
			}
		}
		if !r.hasDefaultState {
			r.defaultWorkflowState = wf.DefaultStateID
			r.hasDefaultState = true
		}
	}
	return r
}

// Ref is the result of resolving a cross-reference field.
type Ref struct {
	// Raw is the original reference text.
	Raw string
	// ID is the resolved identifier; meaningful only when OK.
	ID int64
	OK bool
	// ByID reports that Raw was taken as a literal numeric identifier.
	// Literal IDs are trusted as-is; the remote system is authoritative.
	ByID bool
}

// Resolve maps reference text to an identifier for the given parent kind.
// Positive integers pass through unchecked. Names match exactly
// (case-sensitive, trimmed) against resources created earlier in this run.
func (r *Resolver) Resolve(kind domain.Kind, raw string) Ref {
	text := strings.TrimSpace(raw)
	if id, err := strconv.ParseInt(text, 10, 64); err == nil && id > 0 {
		return Ref{Raw: raw, ID: id, OK: true, ByID: true}
	}
	if id, ok := r.table(kind)[text]; ok {
		return Ref{Raw: raw, ID: id, OK: true}
	}
	return Ref{Raw: raw}
}

// Register records a created resource's identifier under its name.
// Called only after confirmed creation; duplicate names overwrite, so the
// most recently created resource wins subsequent lookups.
func (r *Resolver) Register(kind domain.Kind, name string, id int64) {
	if table := r.table(kind); table != nil {
		table[strings.TrimSpace(name)] = id
	}
}

func (r *Resolver) table(kind domain.Kind) map[string]int64 {
	switch kind {
	case domain.KindObjective:
		return r.objectives
	case domain.KindEpic:
		return r.epics
	}
	return nil
}

func (r *Resolver) Member(name string) (string, bool) {
	id, ok := r.members[strings.TrimSpace(name)]
	return id, ok
}

// Members resolves a list of member names, returning resolved UUIDs and
// the names that did not match.
func (r *Resolver) Members(names []string) (ids []string, missing []string) {
	for _, n := range names {
		if id, ok := r.Member(n); ok {
			ids = append(ids, id)
		} else {
			missing = append(missing, n)
		}
	}
	return ids, missing
}

func (r *Resolver) Group(name string) (string, bool) {
	id, ok := r.groups[strings.TrimSpace(name)]
	return id, ok
}

func (r *Resolver) Groups(names []string) (ids []string, missing []string) {
	for _, n := range names {
		if id, ok := r.Group(n); ok {
			ids = append(ids, id)
		} else {
			missing = append(missing, n)
		}
	}
	return ids, missing
}

func (r *Resolver) WorkflowState(name string) (int64, bool) {
	id, ok := r.workflowStates[strings.TrimSpace(name)]
	return id, ok
}

// DefaultWorkflowState is the story default: the first unstarted state
// seen, else the first workflow's declared default.
func (r *Resolver) DefaultWorkflowState() (int64, bool) {
	return r.defaultWorkflowState, r.hasDefaultState
}

func (r *Resolver) MemberNames() []string {
	return sortedKeys(r.members)
}

func (r *Resolver) GroupNames() []string {
	return sortedKeys(r.groups)
}

func (r *Resolver) WorkflowStateNames() []string {
	names := make([]string, 0, len(r.workflowStates))
	for n := range r.workflowStates {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
