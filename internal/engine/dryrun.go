package engine

import (
	"fmt"
	"strings"

	"storyline/internal/domain"
)

var (
	validStates     = []string{"to do", "in progress", "done"}
	validStoryTypes = []string{"feature", "bug", "chore"}
)

// DryRun performs resolution and structural validation without any create
// call, and emits a single terminal report. Cross-references are checked
// against the current batch, since in-run registration is what would
// resolve them in a real run; numeric IDs pass unchecked.
func (e *Engine) DryRun(m domain.Manifest) domain.DryRunReport {
	r := domain.DryRunReport{RunID: e.RunID}

	for _, obj := range m.Objectives {
		if obj.Name == "" {
			r.Errors = append(r.Errors, "Objective: 'name' is required")
			continue
		}
		e.checkState(&r, domain.KindObjective, obj.Name, obj.State)
	}

	batchObjectives := nameSet(len(m.Objectives), func(i int) string { return m.Objectives[i].Name })
	for _, epic := range m.Epics {
		if epic.Name == "" {
			r.Errors = append(r.Errors, "Epic: 'name' is required")
			continue
		}
		e.checkState(&r, domain.KindEpic, epic.Name, epic.State)
		e.checkMembers(&r, domain.KindEpic, epic.Name, epic.Owners)
		e.checkGroups(&r, domain.KindEpic, epic.Name, epic.Teams)
		if epic.Objective != "" && !isNumeric(epic.Objective) && !batchObjectives[strings.TrimSpace(epic.Objective)] {
			r.Errors = append(r.Errors, fmt.Sprintf(
				"Epic %q: objective %q not found in current batch (use a numeric ID to reference a pre-existing objective)",
				epic.Name, epic.Objective))
		}
		if epic.Template != "" {
			if _, err := e.LoadTemplate(epic.Template); err != nil {
				r.Errors = append(r.Errors, fmt.Sprintf("Epic %q: %v", epic.Name, err))
			}
		}
	}

	batchEpics := nameSet(len(m.Epics), func(i int) string { return m.Epics[i].Name })
	for _, story := range m.Stories {
		if story.Name == "" {
			r.Errors = append(r.Errors, "Story: 'name' is required")
			continue
		}
		if story.Type != "" && !contains(validStoryTypes, story.Type) {
			r.Errors = append(r.Errors, fmt.Sprintf(
				"Story %q: invalid type %q: must be 'feature', 'bug', or 'chore'", story.Name, story.Type))
		}
		e.checkMembers(&r, domain.KindStory, story.Name, story.Owners)
		if story.Team != "" {
			if _, ok := e.Resolver.Group(story.Team); !ok {
				r.Errors = append(r.Errors, fmt.Sprintf(
					"Story %q: unknown team %q. Available: %s", story.Name, story.Team, nameSample(e.Resolver.GroupNames())))
			}
		}
		if story.Epic != "" && !isNumeric(story.Epic) && !batchEpics[strings.TrimSpace(story.Epic)] {
			r.Errors = append(r.Errors, fmt.Sprintf(
				"Story %q: epic %q not found in current batch (use a numeric ID to reference a pre-existing epic)",
				story.Name, story.Epic))
		}
		if story.WorkflowState != "" {
			if _, ok := e.Resolver.WorkflowState(story.WorkflowState); !ok {
				r.Errors = append(r.Errors, fmt.Sprintf(
					"Story %q: unknown workflow state %q. Available: %s",
					story.Name, story.WorkflowState, nameSample(e.Resolver.WorkflowStateNames())))
			}
		}
	}

	e.Events.DryRun(r)
	return r
}

func (e *Engine) checkState(r *domain.DryRunReport, kind domain.Kind, name, state string) {
	if state != "" && !contains(validStates, state) {
		r.Errors = append(r.Errors, fmt.Sprintf(
			"%s %q: invalid state %q: must be 'to do', 'in progress', or 'done'", kindTitle(kind), name, state))
	}
}

func (e *Engine) checkMembers(r *domain.DryRunReport, kind domain.Kind, name string, owners []string) {
	_, missing := e.Resolver.Members(owners)
	for _, m := range missing {
		r.Errors = append(r.Errors, fmt.Sprintf(
			"%s %q: unknown user %q. Available: %s", kindTitle(kind), name, m, nameSample(e.Resolver.MemberNames())))
	}
}

func (e *Engine) checkGroups(r *domain.DryRunReport, kind domain.Kind, name string, teams []string) {
	_, missing := e.Resolver.Groups(teams)
	for _, g := range missing {
		r.Errors = append(r.Errors, fmt.Sprintf(
			"%s %q: unknown team %q. Available: %s", kindTitle(kind), name, g, nameSample(e.Resolver.GroupNames())))
	}
}

func nameSet(n int, name func(i int) string) map[string]bool {
	set := make(map[string]bool, n)
	for i := 0; i < n; i++ {
		set[strings.TrimSpace(name(i))] = true
	}
	return set
}

// nameSample previews up to five known names for error hints.
func nameSample(names []string) string {
	if len(names) == 0 {
		return "(none)"
	}
	if len(names) > 5 {
		return fmt.Sprintf("%s … (+%d)", strings.Join(names[:5], ", "), len(names)-5)
	}
	return strings.Join(names, ", ")
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
