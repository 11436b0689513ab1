package engine

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"storyline/internal/domain"
	"storyline/internal/events"
	"storyline/internal/resolver"
	"storyline/internal/shortcut"
	"storyline/internal/template"
)

// Transport performs one create call per resource. Implemented by
// *shortcut.Client; retries are internal to the transport and invisible
// here except as latency.
type Transport interface {
	CreateObjective(ctx context.Context, req shortcut.CreateObjectiveRequest) (shortcut.Objective, error)
	CreateEpic(ctx context.Context, req shortcut.CreateEpicRequest) (shortcut.Epic, error)
	CreateStory(ctx context.Context, req shortcut.CreateStoryRequest) (shortcut.Story, error)
}

// Engine drives a run to completion: objectives, then epics, then
// stories, each in input order. A resource failure never aborts the run;
// it is recorded and processing moves on, so a missing parent surfaces as
// an unresolved reference in a later phase rather than a crash.
type Engine struct {
	Transport Transport
	Resolver  *resolver.Resolver
	Events    events.Emitter
	// Template is the run-wide epic description template; a per-epic
	// template path overrides it.
	Template *template.Template
	Log      zerolog.Logger
	RunID    string
	// LoadTemplate reads per-epic template files; overridable in tests.
	LoadTemplate func(path string) (*template.Template, error)
}

func New(t Transport, r *resolver.Resolver, em events.Emitter) *Engine {
	return &Engine{
		Transport:    t,
		Resolver:     r,
		Events:       em,
		Log:          zerolog.Nop(),
		RunID:        uuid.NewString(),
		LoadTemplate: template.Load,
	}
}

// Run creates every resource in the manifest and emits the outcome
// stream. The returned summary is also emitted as the terminal event.
func (e *Engine) Run(ctx context.Context, m domain.Manifest) domain.Summary {
	s := domain.Summary{RunID: e.RunID}

	e.Log.Debug().Str("run_id", e.RunID).
		Int("objectives", len(m.Objectives)).
		Int("epics", len(m.Epics)).
		Int("stories", len(m.Stories)).
		Msg("run starting")

	for _, obj := range m.Objectives {
		e.createObjective(ctx, obj, &s)
	}
	for _, epic := range m.Epics {
		e.createEpic(ctx, epic, &s)
	}
	for _, story := range m.Stories {
		e.createStory(ctx, story, &s)
	}

	e.Events.Summary(s)
	return s
}

func (e *Engine) createObjective(ctx context.Context, obj domain.Objective, s *domain.Summary) {
	req := shortcut.CreateObjectiveRequest{
		Name:        obj.Name,
		Description: obj.Description,
		State:       obj.State,
	}
	created, err := e.Transport.CreateObjective(ctx, req)
	if err != nil {
		e.fail(s, domain.KindObjective, obj.Name, err)
		return
	}
	e.Resolver.Register(domain.KindObjective, obj.Name, created.ID)
	s.ObjectivesCreated++
	e.Events.Outcome(domain.Outcome{Kind: domain.KindObjective, Name: created.Name, ID: created.ID, URL: created.AppURL})
}

func (e *Engine) createEpic(ctx context.Context, epic domain.Epic, s *domain.Summary) {
	req := shortcut.CreateEpicRequest{
		Name:             epic.Name,
		State:            epic.State,
		Labels:           labelsParam(epic.Labels),
		PlannedStartDate: epic.StartDate,
		Deadline:         epic.Deadline,
	}
	req.OwnerIDs = e.resolveMembers(domain.KindEpic, epic.Name, epic.Owners)
	req.GroupIDs = e.resolveGroups(domain.KindEpic, epic.Name, epic.Teams)

	if epic.Objective != "" {
		ref := e.Resolver.Resolve(domain.KindObjective, epic.Objective)
		if ref.OK {
			req.ObjectiveIDs = []int64{ref.ID}
		} else {
			e.Events.Warning(domain.KindEpic, epic.Name,
				fmt.Sprintf("objective %q not found; epic will be created without an objective link", epic.Objective))
		}
	}

	desc, err := e.epicDescription(epic)
	if err != nil {
		e.fail(s, domain.KindEpic, epic.Name, err)
		return
	}
	req.Description = desc

	created, err := e.Transport.CreateEpic(ctx, req)
	if err != nil {
		e.fail(s, domain.KindEpic, epic.Name, err)
		return
	}
	e.Resolver.Register(domain.KindEpic, epic.Name, created.ID)
	s.EpicsCreated++
	e.Events.Outcome(domain.Outcome{Kind: domain.KindEpic, Name: created.Name, ID: created.ID, URL: created.AppURL})
}

func (e *Engine) createStory(ctx context.Context, story domain.Story, s *domain.Summary) {
	req := shortcut.CreateStoryRequest{
		Name:        story.Name,
		StoryType:   story.Type,
		Description: story.Description,
		Labels:      labelsParam(story.Labels),
		Estimate:    story.Estimate,
		Deadline:    story.DueDate,
	}
	req.OwnerIDs = e.resolveMembers(domain.KindStory, story.Name, story.Owners)

	if story.Team != "" {
		if id, ok := e.Resolver.Group(story.Team); ok {
			req.GroupID = id
		} else {
			e.Events.Warning(domain.KindStory, story.Name,
				fmt.Sprintf("unknown team %q; story will be created without a team", story.Team))
		}
	}

	if story.Epic != "" {
		ref := e.Resolver.Resolve(domain.KindEpic, story.Epic)
		if ref.OK {
			req.EpicID = ref.ID
		} else {
			e.Events.Warning(domain.KindStory, story.Name,
				fmt.Sprintf("epic %q not found; story will be created without an epic link", story.Epic))
		}
	}

	if story.WorkflowState != "" {
		if id, ok := e.Resolver.WorkflowState(story.WorkflowState); ok {
			req.WorkflowStateID = id
		} else {
			e.Events.Warning(domain.KindStory, story.Name,
				fmt.Sprintf("unknown workflow state %q; using the default state", story.WorkflowState))
		}
	}
	if req.WorkflowStateID == 0 {
		if id, ok := e.Resolver.DefaultWorkflowState(); ok {
			req.WorkflowStateID = id
		}
	}

	created, err := e.Transport.CreateStory(ctx, req)
	if err != nil {
		e.fail(s, domain.KindStory, story.Name, err)
		return
	}
	s.StoriesCreated++
	e.Events.Outcome(domain.Outcome{Kind: domain.KindStory, Name: created.Name, ID: created.ID, URL: created.AppURL})
}

// epicDescription applies the template rule: a per-epic template path
// overrides the run-wide template; with no template the raw description
// is used.
func (e *Engine) epicDescription(epic domain.Epic) (string, error) {
	tmpl := e.Template
	if epic.Template != "" {
		loaded, err := e.LoadTemplate(epic.Template)
		if err != nil {
			return "", err
		}
		tmpl = loaded
	}
	if tmpl == nil {
		return epic.Description, nil
	}
	return tmpl.Render(epic), nil
}

func (e *Engine) resolveMembers(kind domain.Kind, name string, owners []string) []string {
	ids, missing := e.Resolver.Members(owners)
	for _, m := range missing {
		e.Events.Warning(kind, name, fmt.Sprintf("unknown user %q; omitted from owners", m))
	}
	return ids
}

func (e *Engine) resolveGroups(kind domain.Kind, name string, teams []string) []string {
	ids, missing := e.Resolver.Groups(teams)
	for _, g := range missing {
		e.Events.Warning(kind, name, fmt.Sprintf("unknown team %q; omitted from teams", g))
	}
	return ids
}

func (e *Engine) fail(s *domain.Summary, kind domain.Kind, name string, err error) {
	msg := err.Error()
	s.Errors = append(s.Errors, fmt.Sprintf("%s %q: %s", kindTitle(kind), name, msg))
	e.Events.Outcome(domain.Outcome{Kind: kind, Name: name, Error: msg})
}

func labelsParam(names []string) []shortcut.CreateLabelParams {
	if len(names) == 0 {
		return nil
	}
	labels := make([]shortcut.CreateLabelParams, 0, len(names))
	for _, n := range names {
		labels = append(labels, shortcut.CreateLabelParams{Name: n})
	}
	return labels
}

func kindTitle(kind domain.Kind) string {
	k := string(kind)
	if k == "" {
		return k
	}
	return strings.ToUpper(k[:1]) + k[1:]
}

func isNumeric(s string) bool {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return err == nil && id > 0
}
