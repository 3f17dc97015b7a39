package services

import (
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/project-dashboard-api/internal/models"
	"github.com/yukikurage/project-dashboard-api/internal/repository"
	"github.com/yukikurage/project-dashboard-api/internal/testutil"
	"gorm.io/gorm"
)

// serviceSuite gives each test a fresh database and fixtures.
type serviceSuite struct {
	suite.Suite
	db    *gorm.DB
	store *repository.Store
	fx    *testutil.Fixtures
	today time.Time

	admin  *models.User
	leader *models.User
	m1     *models.User
	m2     *models.User
}

func (s *serviceSuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.store = repository.NewStore(s.db)
	s.fx = testutil.NewFixtures(s.db)
	s.today = time.Date(2026, 10, 18, 14, 0, 0, 0, time.UTC)

	s.admin = s.fx.CreateUser(s.T(), models.RoleAdmin)
	s.leader = s.fx.CreateUser(s.T(), models.RoleLeader)
	s.m1 = s.fx.CreateUser(s.T(), models.RoleMember)
	s.m2 = s.fx.CreateUser(s.T(), models.RoleMember)
}

func (s *serviceSuite) day(offset int) *time.Time {
	return testutil.Date(s.today, offset)
}

// teamProject creates a project led by s.leader with m1 and m2 as members.
func (s *serviceSuite) teamProject(opts ...testutil.ProjectOption) *models.Project {
	project := s.fx.CreateProject(s.T(), s.leader, opts...)
	s.fx.AddMember(s.T(), project, s.m1, s.m2)
	return project
}
