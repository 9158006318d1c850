package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/clienttrack/clienttrack/internal/db/models"
	"github.com/clienttrack/clienttrack/pkg/progress"
)

// stubTemplates is an in-memory TemplateStore
type stubTemplates struct {
	links    []models.ProjectTemplate
	plans    map[uint][]models.TemplatePhase
	linksErr error
	planErr  error
}

func (s stubTemplates) ListActiveForProject(_ context.Context, _ uint) ([]models.ProjectTemplate, error) {
	return s.links, s.linksErr
}

func (s stubTemplates) ListPlan(_ context.Context, templateID uint) ([]models.TemplatePhase, error) {
	if s.planErr != nil {
		return nil, s.planErr
	}
	return s.plans[templateID], nil
}

// stubPhases is an in-memory PhaseStore
type stubPhases struct {
	phases []models.Phase
	err    error
}

func (s stubPhases) ListForProject(_ context.Context, _ uint) ([]models.Phase, error) {
	return s.phases, s.err
}

// stubTeam is an in-memory TeamStore
type stubTeam struct {
	members []models.ProjectTeam
	err     error
}

func (s stubTeam) ListForProject(_ context.Context, _ uint) ([]models.ProjectTeam, error) {
	return s.members, s.err
}

func uintPtr(v uint) *uint {
	return &v
}

// fixtureStores builds one project with one active template: a one-phase,
// two-task plan and one actual phase holding a completed and an in-progress
// task, plus one unattached phase and a one-member team.
func fixtureStores() (stubProjects, stubTemplates, stubPhases, stubTeam) {
	projects := stubProjects{projects: map[uint]*models.Project{
		1: {Model: gorm.Model{ID: 1}, Name: "Acme Site", Type: "web"},
	}}

	templates := stubTemplates{
		links: []models.ProjectTemplate{{
			ProjectID:  1,
			TemplateID: 7,
			IsActive:   true,
			Template:   models.Template{Model: gorm.Model{ID: 7}, Name: "Website", Category: "web"},
		}},
		plans: map[uint][]models.TemplatePhase{
			7: {{
				Model:      gorm.Model{ID: 70},
				TemplateID: 7,
				Name:       "Discovery",
				PhaseOrder: 1,
				Tasks: []models.TemplateTask{
					{Model: gorm.Model{ID: 700}, Description: "kickoff"},
					{Model: gorm.Model{ID: 701}, Description: "requirements"},
				},
			}},
		},
	}

	phases := stubPhases{phases: []models.Phase{
		{
			Model:      gorm.Model{ID: 10},
			ProjectID:  1,
			TemplateID: uintPtr(7),
			Name:       "Discovery",
			PhaseOrder: 1,
			Tasks: []models.Task{
				{Model: gorm.Model{ID: 100}, Status: models.TaskStatusCompleted},
				{Model: gorm.Model{ID: 101}, Status: models.TaskStatusInProgress},
			},
		},
		{
			// Not instantiated from any template; belongs to no template's view
			Model:      gorm.Model{ID: 11},
			ProjectID:  1,
			Name:       "Ad hoc",
			PhaseOrder: 2,
		},
	}}

	team := stubTeam{members: []models.ProjectTeam{{
		Model:     gorm.Model{ID: 1},
		ProjectID: 1,
		UserID:    5,
		Role:      "lead",
		User:      models.User{Model: gorm.Model{ID: 5}, Name: "Dana", Email: "dana@example.com"},
	}}}

	return projects, templates, phases, team
}

func TestAggregateAssemblesView(t *testing.T) {
	projects, templates, phases, team := fixtureStores()
	aggregator := NewAggregator(projects, templates, phases, team)

	view, err := aggregator.Aggregate(context.Background(), 1)
	require.NoError(t, err)

	require.Equal(t, uint(1), view.ID)
	require.Equal(t, "Acme Site", view.Name)
	require.Len(t, view.Templates, 1)

	tpl := view.Templates[0]
	require.Equal(t, uint(7), tpl.ID)
	require.Equal(t, "Website", tpl.Name)
	require.Len(t, tpl.TemplatePhases, 1)
	require.Len(t, tpl.TemplatePhases[0].Tasks, 2)

	// Only the phase instantiated from this template is attached
	require.Len(t, tpl.Phases, 1)
	require.Equal(t, uint(10), tpl.Phases[0].ID)
	require.Equal(t, progress.StatusInProgress, tpl.Phases[0].Status)

	require.Len(t, view.Team, 1)
	require.Equal(t, "dana@example.com", view.Team[0].User.Email)

	// Derived overall status: the single tracked phase is in progress
	require.Equal(t, progress.StatusInProgress, view.Status)

	stats := view.Statistics
	require.Equal(t, 1, stats.TotalPhases)
	require.Equal(t, 0, stats.CompletedPhases)
	require.Equal(t, 2, stats.TotalTasks)
	require.Equal(t, 1, stats.CompletedTasks)
	require.Equal(t, 50, stats.TaskCompletionPercentage)
	require.Equal(t, 1, stats.TotalTemplatePhases)
	require.Equal(t, 2, stats.TotalTemplateTasks)
}

func TestAggregateUnknownProject(t *testing.T) {
	projects, templates, phases, team := fixtureStores()
	aggregator := NewAggregator(projects, templates, phases, team)

	_, err := aggregator.Aggregate(context.Background(), 99)
	require.ErrorIs(t, err, ErrProjectNotFound)
}

func TestAggregateStoredStatusWins(t *testing.T) {
	projects, templates, phases, team := fixtureStores()
	projects.projects[1].Status = "On Hold"
	phases.phases[0].Status = "Blocked"
	aggregator := NewAggregator(projects, templates, phases, team)

	view, err := aggregator.Aggregate(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, "On Hold", view.Status)
	require.Equal(t, "Blocked", view.Templates[0].Phases[0].Status)

	// Statistics still count from task state, not the stored labels
	require.Equal(t, 0, view.Statistics.CompletedPhases)
	require.Equal(t, 1, view.Statistics.CompletedTasks)
}

func TestAggregateTeamFailureDegradesToEmpty(t *testing.T) {
	projects, templates, phases, _ := fixtureStores()
	failing := stubTeam{err: errors.New("team table unavailable")}
	aggregator := NewAggregator(projects, templates, phases, failing)

	view, err := aggregator.Aggregate(context.Background(), 1)
	require.NoError(t, err)

	// The failed branch is empty; everything else is intact
	require.Empty(t, view.Team)
	require.Len(t, view.Templates, 1)
	require.Equal(t, 2, view.Statistics.TotalTasks)
}

func TestAggregatePlanFailureDegradesToEmpty(t *testing.T) {
	projects, templates, phases, team := fixtureStores()
	templates.planErr = errors.New("templatephases unavailable")
	aggregator := NewAggregator(projects, templates, phases, team)

	view, err := aggregator.Aggregate(context.Background(), 1)
	require.NoError(t, err)

	require.Len(t, view.Templates, 1)
	require.Empty(t, view.Templates[0].TemplatePhases)
	require.Zero(t, view.Statistics.TotalTemplatePhases)

	// Actual progress is unaffected by a missing plan
	require.Len(t, view.Templates[0].Phases, 1)
	require.Equal(t, 2, view.Statistics.TotalTasks)
}

func TestAggregateEmptyProject(t *testing.T) {
	projects := stubProjects{projects: map[uint]*models.Project{
		1: {Model: gorm.Model{ID: 1, CreatedAt: time.Now()}, Name: "Empty"},
	}}
	aggregator := NewAggregator(projects, stubTemplates{}, stubPhases{}, stubTeam{})

	view, err := aggregator.Aggregate(context.Background(), 1)
	require.NoError(t, err)

	require.Empty(t, view.Templates)
	require.Empty(t, view.Team)
	require.Equal(t, progress.StatusNotStarted, view.Status)
	require.Zero(t, view.Statistics.TotalTasks)
	require.Zero(t, view.Statistics.TaskCompletionPercentage)
}

// The server-side statistics must match an independent recomputation over
// the assembled tree.
func TestAggregateStatisticsMatchRecomputation(t *testing.T) {
	projects, templates, phases, team := fixtureStores()
	aggregator := NewAggregator(projects, templates, phases, team)

	view, err := aggregator.Aggregate(context.Background(), 1)
	require.NoError(t, err)

	recomputed := progress.ComputeStatistics(view.Templates)
	require.Equal(t, view.Statistics, recomputed)
}
