package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/project-dashboard-api/internal/models"
)

type UserServiceTestSuite struct {
	serviceSuite
	service *UserService
}

func (s *UserServiceTestSuite) SetupTest() {
	s.serviceSuite.SetupTest()
	s.service = NewUserService(s.store)
}

func (s *UserServiceTestSuite) TestUpdateRole() {
	user, err := s.service.UpdateRole(s.admin, s.m1.ID, "leader")
	s.Require().NoError(err)
	s.Equal(models.RoleLeader, user.Role)

	_, err = s.service.UpdateRole(s.leader, s.m2.ID, "ADMIN")
	s.ErrorIs(err, ErrForbidden)

	_, err = s.service.UpdateRole(s.admin, s.m2.ID, "owner")
	s.ErrorIs(err, ErrInvalidRole)

	_, err = s.service.UpdateRole(s.admin, uuid.New(), "MEMBER")
	s.ErrorIs(err, ErrNotFound)
}

func (s *UserServiceTestSuite) TestUpdateDisplayName() {
	user, err := s.service.UpdateDisplayName(s.m1, "  Morgan ")
	s.Require().NoError(err)
	s.Equal("Morgan", user.DisplayName)

	_, err = s.service.UpdateDisplayName(s.m1, " ")
	s.ErrorIs(err, ErrInvalidInput)
}

func (s *UserServiceTestSuite) TestListAndGet() {
	users, err := s.service.List()
	s.Require().NoError(err)
	s.Len(users, 4)

	user, err := s.service.Get(s.m2.ID)
	s.Require().NoError(err)
	s.Equal(s.m2.Email, user.Email)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
