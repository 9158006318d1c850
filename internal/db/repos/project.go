// Package repos provides database repository implementations
package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/clienttrack/clienttrack/internal/db/models"
)

// ProjectRepository handles database operations for projects
type ProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new instance of ProjectRepository
func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{
		db: db,
	}
}

// Create creates a new project in the database
func (r *ProjectRepository) Create(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

// Get retrieves a project by ID from the database
func (r *ProjectRepository) Get(ctx context.Context, id uint) (*models.Project, error) {
	var project models.Project
	if err := r.db.WithContext(ctx).First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// List retrieves projects from the database with pagination, newest first
func (r *ProjectRepository) List(ctx context.Context, opts *models.ListOptions) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(opts.Limit).Offset(opts.Offset).
		Find(&projects).Error
	return projects, err
}
