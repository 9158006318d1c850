package services

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker"
	"gorm.io/gorm"

	"github.com/clienttrack/clienttrack/internal/db/models"
	"github.com/clienttrack/clienttrack/internal/logger"
	"github.com/clienttrack/clienttrack/pkg/progress"
)

// TemplateStore is the read access the aggregator needs for template links
// and plans
type TemplateStore interface {
	ListActiveForProject(ctx context.Context, projectID uint) ([]models.ProjectTemplate, error)
	ListPlan(ctx context.Context, templateID uint) ([]models.TemplatePhase, error)
}

// PhaseStore is the read access the aggregator needs for actual phases
type PhaseStore interface {
	ListForProject(ctx context.Context, projectID uint) ([]models.Phase, error)
}

// TeamStore is the read access the aggregator needs for team membership
type TeamStore interface {
	ListForProject(ctx context.Context, projectID uint) ([]models.ProjectTeam, error)
}

// Aggregator assembles the denormalized progress view for a project.
//
// Only the primary project read is fatal. Every secondary branch (templates,
// plans, phases, team) degrades to empty on failure so a broken nested fetch
// never takes down the whole view; those reads run through a shared circuit
// breaker so a struggling store is not hammered per branch.
type Aggregator struct {
	projects  ProjectGetter
	templates TemplateStore
	phases    PhaseStore
	team      TeamStore
	breaker   *gobreaker.CircuitBreaker
}

// NewAggregator creates a new project aggregator
func NewAggregator(projects ProjectGetter, templates TemplateStore, phases PhaseStore, team TeamStore) *Aggregator {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "progress-secondary-reads",
		MaxRequests: 1,
		Timeout:     2 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warnf("circuit breaker '%s' changed from '%s' to '%s'", name, from.String(), to.String())
		},
	})

	return &Aggregator{
		projects:  projects,
		templates: templates,
		phases:    phases,
		team:      team,
		breaker:   breaker,
	}
}

// Aggregate builds the full progress view for a project id. It fails with
// ErrProjectNotFound when the project row is absent; secondary fetch failures
// are logged and degrade to empty collections.
func (a *Aggregator) Aggregate(ctx context.Context, projectID uint) (*progress.Project, error) {
	record, err := a.projects.Get(ctx, projectID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProjectNotFound
	}
	if err != nil {
		return nil, err
	}

	links := secondary(a, "template links", func() ([]models.ProjectTemplate, error) {
		return a.templates.ListActiveForProject(ctx, projectID)
	})
	phases := secondary(a, "phases", func() ([]models.Phase, error) {
		return a.phases.ListForProject(ctx, projectID)
	})
	members := secondary(a, "team", func() ([]models.ProjectTeam, error) {
		return a.team.ListForProject(ctx, projectID)
	})

	templates := make([]progress.Template, 0, len(links))
	for _, link := range links {
		templateID := link.TemplateID
		plan := secondary(a, "template plan", func() ([]models.TemplatePhase, error) {
			return a.templates.ListPlan(ctx, templateID)
		})
		templates = append(templates, buildTemplate(link, plan, phases))
	}

	view := &progress.Project{
		ID:          record.ID,
		Name:        record.Name,
		Description: record.Description,
		Type:        record.Type,
		Status:      record.Status,
		CreatedAt:   record.CreatedAt,
		UpdatedAt:   record.UpdatedAt,
		Templates:   templates,
		Team:        buildTeam(members),
	}

	if view.Status == "" {
		view.Status = progress.ProjectStatus(trackedPhases(templates))
	}
	view.Statistics = progress.ComputeStatistics(templates)

	return view, nil
}

// secondary runs a branch fetch through the circuit breaker, degrading to the
// zero value on failure
func secondary[T any](a *Aggregator, branch string, fn func() (T, error)) T {
	result, err := a.breaker.Execute(func() (interface{}, error) {
		return fn()
	})
	if err != nil {
		logger.WarnWithFields("progress branch degraded to empty", map[string]interface{}{
			"branch": branch,
			"error":  err.Error(),
		})
		var zero T
		return zero
	}
	return result.(T)
}

// trackedPhases flattens the actual phases across all templates
func trackedPhases(templates []progress.Template) []progress.Phase {
	var phases []progress.Phase
	for _, tpl := range templates {
		phases = append(phases, tpl.Phases...)
	}
	return phases
}

// buildTemplate pairs a template's plan with the actual phases instantiated
// from it. A phase belongs to at most one template via its template id.
func buildTemplate(link models.ProjectTemplate, plan []models.TemplatePhase, phases []models.Phase) progress.Template {
	tpl := progress.Template{
		ID:             link.TemplateID,
		Name:           link.Template.Name,
		Category:       link.Template.Category,
		Description:    link.Template.Description,
		TemplatePhases: make([]progress.TemplatePhase, 0, len(plan)),
		Phases:         []progress.Phase{},
	}

	for _, ph := range plan {
		tpl.TemplatePhases = append(tpl.TemplatePhases, buildTemplatePhase(ph))
	}
	for _, ph := range phases {
		if ph.TemplateID != nil && *ph.TemplateID == link.TemplateID {
			tpl.Phases = append(tpl.Phases, buildPhase(ph))
		}
	}

	return tpl
}

func buildTemplatePhase(ph models.TemplatePhase) progress.TemplatePhase {
	out := progress.TemplatePhase{
		ID:    ph.ID,
		Name:  ph.Name,
		Order: ph.PhaseOrder,
		Tasks: make([]progress.TemplateTask, 0, len(ph.Tasks)),
	}
	for _, t := range ph.Tasks {
		out.Tasks = append(out.Tasks, progress.TemplateTask{
			ID:          t.ID,
			Description: t.Description,
		})
	}
	return out
}

func buildPhase(ph models.Phase) progress.Phase {
	out := progress.Phase{
		ID:         ph.ID,
		ProjectID:  ph.ProjectID,
		TemplateID: ph.TemplateID,
		Name:       ph.Name,
		Order:      ph.PhaseOrder,
		Status:     ph.Status,
		CreatedAt:  ph.CreatedAt,
		Tasks:      make([]progress.Task, 0, len(ph.Tasks)),
	}
	for _, t := range ph.Tasks {
		out.Tasks = append(out.Tasks, buildTask(t))
	}
	// Stored label wins for display; an empty label derives from tasks.
	if out.Status == "" {
		out.Status = progress.PhaseStatus(out.Tasks)
	}
	return out
}

func buildTask(t models.Task) progress.Task {
	out := progress.Task{
		ID:          t.ID,
		Description: t.Description,
		Status:      t.Status.String(),
		DueDate:     t.DueDate,
		CreatedAt:   t.CreatedAt,
		Assignments: make([]progress.TaskAssignment, 0, len(t.Assignments)),
	}
	for _, a := range t.Assignments {
		out.Assignments = append(out.Assignments, progress.TaskAssignment{
			ID:          a.ID,
			AssignedAt:  a.AssignedAt,
			CompletedAt: a.CompletedAt,
			User:        buildUser(a.User),
		})
	}
	return out
}

func buildTeam(members []models.ProjectTeam) []progress.TeamMember {
	team := make([]progress.TeamMember, 0, len(members))
	for _, m := range members {
		team = append(team, progress.TeamMember{
			ID:      m.ID,
			Role:    m.Role,
			AddedAt: m.CreatedAt,
			User:    buildUser(m.User),
		})
	}
	return team
}

func buildUser(u models.User) progress.User {
	return progress.User{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}
}
