package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/clienttrack/clienttrack/internal/db/models"
)

// TeamRepository handles database operations for project team membership
type TeamRepository struct {
	db *gorm.DB
}

// NewTeamRepository creates a new instance of TeamRepository
func NewTeamRepository(db *gorm.DB) *TeamRepository {
	return &TeamRepository{
		db: db,
	}
}

// Add adds a user to a project's team
func (r *TeamRepository) Add(ctx context.Context, member *models.ProjectTeam) error {
	return r.db.WithContext(ctx).Create(member).Error
}

// ListForProject retrieves a project's team with each member's user resolved
func (r *TeamRepository) ListForProject(ctx context.Context, projectID uint) ([]models.ProjectTeam, error) {
	var members []models.ProjectTeam
	err := r.db.WithContext(ctx).
		Where(models.ProjectTeam{ProjectID: projectID}).
		Preload("User").
		Order("id ASC").
		Find(&members).Error
	return members, err
}
