package repos

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/clienttrack/clienttrack/internal/db/models"
)

// DBRepositoryTestSuite provides a base test suite for repository tests
type DBRepositoryTestSuite struct {
	suite.Suite
	db           *gorm.DB
	ctx          context.Context
	projectRepo  *ProjectRepository
	templateRepo *TemplateRepository
	phaseRepo    *PhaseRepository
	teamRepo     *TeamRepository
	userRepo     *UserRepository
}

// randomSuffix creates a random suffix for unique test names
func (s *DBRepositoryTestSuite) randomSuffix() string {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	s.Require().NoError(err, "Failed to generate random suffix")
	return fmt.Sprintf("%06d", n.Uint64())
}

func (s *DBRepositoryTestSuite) SetupTest() {
	// Create new in-memory database
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   logger.Default.LogMode(logger.Silent),
	})
	require.NoError(s.T(), err, "Failed to create in-memory database")

	// Run migrations
	err = db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.ProjectTeam{},
		&models.Template{},
		&models.TemplatePhase{},
		&models.TemplateTask{},
		&models.ProjectTemplate{},
		&models.Phase{},
		&models.Task{},
		&models.TaskAssignment{},
	)
	require.NoError(s.T(), err, "Failed to run database migrations")

	// Initialize repositories
	s.db = db
	s.projectRepo = NewProjectRepository(s.db)
	s.templateRepo = NewTemplateRepository(s.db)
	s.phaseRepo = NewPhaseRepository(s.db)
	s.teamRepo = NewTeamRepository(s.db)
	s.userRepo = NewUserRepository(s.db)
	s.ctx = context.Background()
}

func (s *DBRepositoryTestSuite) TearDownTest() {
	sqlDB, err := s.db.DB()
	if err == nil && sqlDB != nil {
		_ = sqlDB.Close()
	}
}

// Helper methods for creating test data

func (s *DBRepositoryTestSuite) createTestProject() *models.Project {
	project := &models.Project{
		Name:        "test-project-" + s.randomSuffix(),
		Description: "Test project",
		Type:        "web",
	}
	err := s.projectRepo.Create(s.ctx, project)
	s.Require().NoError(err)
	return project
}

func (s *DBRepositoryTestSuite) createTestUser() *models.User {
	user := &models.User{
		Name:    "test-user",
		Email:   fmt.Sprintf("user-%s@example.com", s.randomSuffix()),
		Company: "Test Co",
		Role:    models.DefaultRole,
	}
	err := s.userRepo.Create(s.ctx, user)
	s.Require().NoError(err)
	return user
}

func (s *DBRepositoryTestSuite) createTestTemplate() *models.Template {
	template := &models.Template{
		Name:        "test-template-" + s.randomSuffix(),
		Category:    "web",
		Description: "Test template",
	}
	err := s.templateRepo.Create(s.ctx, template)
	s.Require().NoError(err)
	return template
}

func (s *DBRepositoryTestSuite) createTestPhase(projectID uint, templateID *uint, order int, tasks ...models.Task) *models.Phase {
	phase := &models.Phase{
		ProjectID:  projectID,
		TemplateID: templateID,
		Name:       fmt.Sprintf("phase-%d", order),
		PhaseOrder: order,
		Tasks:      tasks,
	}
	err := s.phaseRepo.Create(s.ctx, phase)
	s.Require().NoError(err)
	return phase
}

func (s *DBRepositoryTestSuite) dueIn(d time.Duration) *time.Time {
	due := time.Now().Add(d)
	return &due
}
