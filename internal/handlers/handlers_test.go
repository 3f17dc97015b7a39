package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/project-dashboard-api/internal/constants"
	apierrors "github.com/yukikurage/project-dashboard-api/internal/errors"
	"github.com/yukikurage/project-dashboard-api/internal/identity"
	"github.com/yukikurage/project-dashboard-api/internal/middleware"
	"github.com/yukikurage/project-dashboard-api/internal/models"
	"github.com/yukikurage/project-dashboard-api/internal/repository"
	"github.com/yukikurage/project-dashboard-api/internal/services"
	"github.com/yukikurage/project-dashboard-api/internal/testutil"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// handlerSuite serves the full route table against an in-memory database.
// Requests authenticate with HMAC-signed bearer tokens unless a test uses
// the session cookie explicitly.
type handlerSuite struct {
	suite.Suite
	db        *gorm.DB
	store     *repository.Store
	fx        *testutil.Fixtures
	signer    *identity.HMACVerifier
	suggester *stubSuggester
	router    *gin.Engine
	today     time.Time

	admin  *models.User
	leader *models.User
	m1     *models.User
	m2     *models.User
}

func (s *handlerSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	s.db = testutil.NewTestDB(s.T())
	s.store = repository.NewStore(s.db)
	s.fx = testutil.NewFixtures(s.db)
	s.signer = identity.NewHMACVerifier("handler-test-secret", "handler-test")
	s.today = time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)

	s.suggester = &stubSuggester{}
	s.router = s.newRouter(s.suggester)

	s.admin = s.fx.CreateUser(s.T(), models.RoleAdmin)
	s.leader = s.fx.CreateUser(s.T(), models.RoleLeader)
	s.m1 = s.fx.CreateUser(s.T(), models.RoleMember)
	s.m2 = s.fx.CreateUser(s.T(), models.RoleMember)
}

func (s *handlerSuite) newRouter(suggester services.TaskSuggester) *gin.Engine {
	log := zap.NewNop()
	authService := services.NewAuthService(s.store, s.signer, log)

	dashboard := NewDashboardHandler(services.NewDashboardService(s.store), time.UTC, log)
	dashboard.now = func() time.Time { return s.today }

	h := &Handlers{
		Auth:      NewAuthHandler(authService, log),
		User:      NewUserHandler(services.NewUserService(s.store), log),
		Project:   NewProjectHandler(services.NewProjectService(s.store), log),
		Task:      NewTaskHandler(services.NewTaskService(s.store, suggester), log),
		Dashboard: dashboard,
		Health:    NewHealthHandler(s.db, log),
	}

	r := gin.New()
	r.Use(sessions.Sessions(constants.SessionCookieName, cookie.NewStore([]byte("handler-test-session"))))
	RegisterRoutes(r, h, middleware.RequireAuth(authService, log))
	return r
}

func (s *handlerSuite) day(offset int) *time.Time {
	return testutil.Date(s.today, offset)
}

func (s *handlerSuite) teamProject(opts ...testutil.ProjectOption) *models.Project {
	project := s.fx.CreateProject(s.T(), s.leader, opts...)
	s.fx.AddMember(s.T(), project, s.m1, s.m2)
	return project
}

func (s *handlerSuite) tokenFor(id identity.Identity) string {
	token, err := s.signer.Sign(id, time.Hour)
	s.Require().NoError(err)
	return token
}

// do sends a request as the given user. body may be a raw JSON string or any
// value to marshal.
func (s *handlerSuite) do(method, path string, body any, as *models.User, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if as != nil {
		token := s.tokenFor(identity.Identity{ExternalID: as.ExternalID, Email: as.Email})
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// expectError asserts the status and error code of an APIError response.
func (s *handlerSuite) expectError(w *httptest.ResponseRecorder, status int, code string) {
	s.T().Helper()
	s.Require().Equal(status, w.Code, w.Body.String())
	body := decodeJSON[apierrors.APIError](s.T(), w)
	s.Equal(code, body.Code)
}

func decodeJSON[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

type stubSuggester struct {
	tasks []services.GeneratedTask
	err   error
	calls int
}

func (f *stubSuggester) GenerateTasksFromText(ctx context.Context, projectName, text string, today time.Time) ([]services.GeneratedTask, error) {
	f.calls++
	return f.tasks, f.err
}
