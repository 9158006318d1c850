package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/clienttrack/clienttrack/internal/db/models"
)

// PhaseRepository handles database operations for actual project phases
type PhaseRepository struct {
	db *gorm.DB
}

// NewPhaseRepository creates a new instance of PhaseRepository
func NewPhaseRepository(db *gorm.DB) *PhaseRepository {
	return &PhaseRepository{
		db: db,
	}
}

// Create creates a new phase in the database
func (r *PhaseRepository) Create(ctx context.Context, phase *models.Phase) error {
	return r.db.WithContext(ctx).Create(phase).Error
}

// ListForProject retrieves all phases for a project in ascending order with
// tasks, task assignments and assignment users attached. Order ties break by
// id for stable output.
func (r *PhaseRepository) ListForProject(ctx context.Context, projectID uint) ([]models.Phase, error) {
	var phases []models.Phase
	err := r.db.WithContext(ctx).
		Where(models.Phase{ProjectID: projectID}).
		Preload("Tasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("tasks.id ASC")
		}).
		Preload("Tasks.Assignments", func(db *gorm.DB) *gorm.DB {
			return db.Order("task_assignments.id ASC")
		}).
		Preload("Tasks.Assignments.User").
		Order("phase_order ASC, id ASC").
		Find(&phases).Error
	return phases, err
}
