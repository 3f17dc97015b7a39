package handlers

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/project-dashboard-api/internal/dto"
	apierrors "github.com/yukikurage/project-dashboard-api/internal/errors"
	"github.com/yukikurage/project-dashboard-api/internal/identity"
	"github.com/yukikurage/project-dashboard-api/internal/models"
)

type AuthHandlerTestSuite struct {
	handlerSuite
}

func TestAuthHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}

func (s *AuthHandlerTestSuite) TestHealth() {
	w := s.do(http.MethodGet, "/health", nil, nil)

	s.Equal(http.StatusOK, w.Code)
	body := decodeJSON[map[string]string](s.T(), w)
	s.Equal("ok", body["status"])
}

func (s *AuthHandlerTestSuite) TestLogin_CreatesUserAndSession() {
	token := s.tokenFor(identity.Identity{
		ExternalID: "firebase-uid-42",
		Email:      "hanako@example.com",
		Name:       "Hanako",
	})

	w := s.do(http.MethodPost, "/api/auth/login", map[string]string{"idToken": token}, nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	user := decodeJSON[dto.UserDTO](s.T(), w)
	s.Equal("hanako@example.com", user.Email)
	s.Equal("Hanako", user.DisplayName)
	s.Equal(models.RoleMember, user.Role)

	cookies := w.Result().Cookies()
	s.Require().NotEmpty(cookies)

	me := s.do(http.MethodGet, "/api/auth/me", nil, nil, cookies...)
	s.Require().Equal(http.StatusOK, me.Code, me.Body.String())
	s.Equal(user.ID, decodeJSON[dto.UserDTO](s.T(), me).ID)
}

func (s *AuthHandlerTestSuite) TestLogin_ExistingUserKeepsRole() {
	token := s.tokenFor(identity.Identity{ExternalID: s.leader.ExternalID, Email: s.leader.Email})

	w := s.do(http.MethodPost, "/api/auth/login", map[string]string{"idToken": token}, nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	user := decodeJSON[dto.UserDTO](s.T(), w)
	s.Equal(s.leader.ID, user.ID)
	s.Equal(models.RoleLeader, user.Role)
}

func (s *AuthHandlerTestSuite) TestLogin_Rejects() {
	tests := []struct {
		name   string
		body   any
		status int
		code   string
	}{
		{"missing token", map[string]string{}, http.StatusBadRequest, apierrors.ErrCodeInvalidInput},
		{"malformed body", "{", http.StatusBadRequest, apierrors.ErrCodeInvalidInput},
		{"invalid token", map[string]string{"idToken": "not-a-jwt"}, http.StatusUnauthorized, apierrors.ErrCodeUnauthorized},
		{"foreign signature", map[string]string{"idToken": s.foreignToken()}, http.StatusUnauthorized, apierrors.ErrCodeUnauthorized},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			w := s.do(http.MethodPost, "/api/auth/login", tt.body, nil)
			s.expectError(w, tt.status, tt.code)
		})
	}
}

func (s *AuthHandlerTestSuite) foreignToken() string {
	token, err := identity.NewHMACVerifier("other-secret", "handler-test").
		Sign(identity.Identity{ExternalID: s.m1.ExternalID}, 0)
	s.Require().NoError(err)
	return token
}

func (s *AuthHandlerTestSuite) TestLogout_ClearsSession() {
	token := s.tokenFor(identity.Identity{ExternalID: s.m1.ExternalID, Email: s.m1.Email})
	login := s.do(http.MethodPost, "/api/auth/login", map[string]string{"idToken": token}, nil)
	s.Require().Equal(http.StatusOK, login.Code)

	logout := s.do(http.MethodPost, "/api/auth/logout", nil, nil, login.Result().Cookies()...)
	s.Require().Equal(http.StatusOK, logout.Code)

	me := s.do(http.MethodGet, "/api/auth/me", nil, nil, logout.Result().Cookies()...)
	s.expectError(me, http.StatusUnauthorized, apierrors.ErrCodeUnauthorized)
}

func (s *AuthHandlerTestSuite) TestProtectedRoutes_RequireAuthentication() {
	for _, path := range []string{"/api/auth/me", "/api/users", "/api/projects", "/api/tasks/my", "/api/dashboard/member"} {
		s.Run(path, func() {
			w := s.do(http.MethodGet, path, nil, nil)
			s.expectError(w, http.StatusUnauthorized, apierrors.ErrCodeUnauthorized)
		})
	}
}

func (s *AuthHandlerTestSuite) TestBearer_UnknownIdentityIsNotCreated() {
	w := s.do(http.MethodGet, "/api/users/me", nil, &models.User{ExternalID: "never-logged-in"})
	s.expectError(w, http.StatusUnauthorized, apierrors.ErrCodeUnauthorized)

	var count int64
	s.Require().NoError(s.db.Model(&models.User{}).Count(&count).Error)
	s.Equal(int64(4), count)
}

type UserHandlerTestSuite struct {
	handlerSuite
}

func TestUserHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(UserHandlerTestSuite))
}

func (s *UserHandlerTestSuite) TestListAndGet() {
	w := s.do(http.MethodGet, "/api/users", nil, s.m1)
	s.Require().Equal(http.StatusOK, w.Code)
	list := decodeJSON[struct {
		Users []dto.UserDTO `json:"users"`
	}](s.T(), w)
	s.Len(list.Users, 4)

	w = s.do(http.MethodGet, "/api/users/"+s.leader.ID.String(), nil, s.m1)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal(s.leader.Email, decodeJSON[dto.UserDTO](s.T(), w).Email)

	w = s.do(http.MethodGet, "/api/users/me", nil, s.m1)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal(s.m1.ID, decodeJSON[dto.UserDTO](s.T(), w).ID)
}

func (s *UserHandlerTestSuite) TestGet_InvalidAndUnknownID() {
	s.expectError(s.do(http.MethodGet, "/api/users/42", nil, s.m1), http.StatusBadRequest, apierrors.ErrCodeInvalidInput)
	s.expectError(s.do(http.MethodGet, "/api/users/"+uuid.NewString(), nil, s.m1), http.StatusNotFound, apierrors.ErrCodeNotFound)
}

func (s *UserHandlerTestSuite) TestUpdateMyName() {
	w := s.do(http.MethodPut, "/api/users/me/name", map[string]string{"displayName": "  Taro  "}, s.m1)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.Equal("Taro", decodeJSON[dto.UserDTO](s.T(), w).DisplayName)

	w = s.do(http.MethodPut, "/api/users/me/name", map[string]string{"displayName": "   "}, s.m1)
	s.expectError(w, http.StatusBadRequest, apierrors.ErrCodeInvalidInput)
}

func (s *UserHandlerTestSuite) TestUpdateRole() {
	path := "/api/users/" + s.m1.ID.String() + "/role"

	w := s.do(http.MethodPatch, path, map[string]string{"role": "leader"}, s.admin)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.Equal(models.RoleLeader, decodeJSON[dto.UserDTO](s.T(), w).Role)

	s.expectError(s.do(http.MethodPatch, path, map[string]string{"role": "OWNER"}, s.admin), http.StatusBadRequest, apierrors.ErrCodeInvalidInput)
	s.expectError(s.do(http.MethodPatch, path, map[string]string{"role": "ADMIN"}, s.leader), http.StatusForbidden, apierrors.ErrCodeForbidden)
}
