package progress

import (
	"math"
	"time"
)

// PhaseStatus derives a phase's status from its tasks: Completed when every
// task of a non-empty list is completed, Not Started when there are no tasks,
// In Progress as soon as any task has been started or finished.
func PhaseStatus(tasks []Task) string {
	if len(tasks) == 0 {
		return StatusNotStarted
	}

	completed := 0
	inProgress := 0
	for _, t := range tasks {
		switch t.Status {
		case StatusCompleted:
			completed++
		case StatusInProgress:
			inProgress++
		}
	}

	if completed == len(tasks) {
		return StatusCompleted
	}
	if inProgress > 0 || completed > 0 {
		return StatusInProgress
	}
	return StatusNotStarted
}

// ProjectStatus derives a project's overall status from its phases, applying
// the same rule as PhaseStatus over the derived phase statuses.
func ProjectStatus(phases []Phase) string {
	if len(phases) == 0 {
		return StatusNotStarted
	}

	completed := 0
	inProgress := 0
	for _, ph := range phases {
		switch PhaseStatus(ph.Tasks) {
		case StatusCompleted:
			completed++
		case StatusInProgress:
			inProgress++
		}
	}

	if completed == len(phases) {
		return StatusCompleted
	}
	if inProgress > 0 || completed > 0 {
		return StatusInProgress
	}
	return StatusNotStarted
}

// EffectiveStatus returns the stored label when one exists, otherwise the
// status derived from the phase's tasks.
func (p Phase) EffectiveStatus() string {
	if p.Status != "" {
		return p.Status
	}
	return PhaseStatus(p.Tasks)
}

// ComputeStatistics computes the roll-up summary for the given templates
// against the current time. Apart from the overdue count, the result depends
// only on the input tree.
func ComputeStatistics(templates []Template) Statistics {
	return ComputeStatisticsAt(templates, time.Now())
}

// ComputeStatisticsAt computes the roll-up summary for the given templates,
// counting a task as overdue when its due date is before now and it is not
// completed.
//
// Phase counts use the status derived from tasks, not the stored label, so
// the numbers stay consistent with task state. Percentages are rounded and
// defined as 0 when the denominator is 0.
func ComputeStatisticsAt(templates []Template, now time.Time) Statistics {
	var stats Statistics

	for _, tpl := range templates {
		stats.TotalTemplatePhases += len(tpl.TemplatePhases)
		for _, plan := range tpl.TemplatePhases {
			stats.TotalTemplateTasks += len(plan.Tasks)
		}

		for _, ph := range tpl.Phases {
			stats.TotalPhases++
			if PhaseStatus(ph.Tasks) == StatusCompleted {
				stats.CompletedPhases++
			}

			for _, t := range ph.Tasks {
				stats.TotalTasks++
				if t.Status == StatusCompleted {
					stats.CompletedTasks++
				}
				if t.DueDate != nil && t.DueDate.Before(now) && t.Status != StatusCompleted {
					stats.OverdueTasks++
				}

				stats.TotalAssignments += len(t.Assignments)
				for _, a := range t.Assignments {
					if a.CompletedAt != nil {
						stats.CompletedAssignments++
					}
				}
			}
		}
	}

	stats.CompletionPercentage = percentage(stats.CompletedPhases, stats.TotalPhases)
	stats.TaskCompletionPercentage = percentage(stats.CompletedTasks, stats.TotalTasks)
	stats.AssignmentCompletionPercentage = percentage(stats.CompletedAssignments, stats.TotalAssignments)

	return stats
}

// TemplateCompletion returns a single template's completion percentage,
// computed from tasks across its actual phases rather than from phase counts.
// A template with no tasks is 0% complete.
func TemplateCompletion(tpl Template) int {
	total := 0
	completed := 0
	for _, ph := range tpl.Phases {
		total += len(ph.Tasks)
		for _, t := range ph.Tasks {
			if t.Status == StatusCompleted {
				completed++
			}
		}
	}
	return percentage(completed, total)
}

// percentage returns round(100 * n / d), or 0 when d is 0
func percentage(n, d int) int {
	if d == 0 {
		return 0
	}
	return int(math.Round(float64(n) / float64(d) * 100))
}
