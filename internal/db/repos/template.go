package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/clienttrack/clienttrack/internal/db/models"
)

// TemplateRepository handles database operations for templates and their plans
type TemplateRepository struct {
	db *gorm.DB
}

// NewTemplateRepository creates a new instance of TemplateRepository
func NewTemplateRepository(db *gorm.DB) *TemplateRepository {
	return &TemplateRepository{
		db: db,
	}
}

// Create creates a new template in the database
func (r *TemplateRepository) Create(ctx context.Context, template *models.Template) error {
	return r.db.WithContext(ctx).Create(template).Error
}

// Link attaches a template to a project
func (r *TemplateRepository) Link(ctx context.Context, link *models.ProjectTemplate) error {
	return r.db.WithContext(ctx).Create(link).Error
}

// ListActiveForProject retrieves the active template links for a project with
// each template's descriptive fields resolved
func (r *TemplateRepository) ListActiveForProject(ctx context.Context, projectID uint) ([]models.ProjectTemplate, error) {
	var links []models.ProjectTemplate
	err := r.db.WithContext(ctx).
		Where(models.ProjectTemplate{ProjectID: projectID, IsActive: true}).
		Preload("Template").
		Order("template_id ASC").
		Find(&links).Error
	return links, err
}

// ListPlan retrieves a template's plan: its phases in ascending order with
// their tasks attached. Order ties break by id for stable output.
func (r *TemplateRepository) ListPlan(ctx context.Context, templateID uint) ([]models.TemplatePhase, error) {
	var phases []models.TemplatePhase
	err := r.db.WithContext(ctx).
		Where(models.TemplatePhase{TemplateID: templateID}).
		Preload("Tasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("template_tasks.id ASC")
		}).
		Order("phase_order ASC, id ASC").
		Find(&phases).Error
	return phases, err
}
