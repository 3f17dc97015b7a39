package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/yukikurage/project-dashboard-api/internal/services"
	"go.uber.org/zap"
)

func TestRespondServiceError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", services.ErrProjectNotFound, http.StatusNotFound},
		{"forbidden", services.ErrNotProjectManager, http.StatusForbidden},
		{"unauthenticated", services.ErrInvalidCredential, http.StatusUnauthorized},
		{"invalid input", services.ErrIneligibleAssignee, http.StatusBadRequest},
		{"duplicate member", services.ErrAlreadyMember, http.StatusConflict},
		{"duplicate email", services.ErrEmailAlreadyRegistered, http.StatusConflict},
		{"wrapped kind", fmt.Errorf("loading: %w", services.ErrTaskNotFound), http.StatusNotFound},
		{"ai unavailable", services.ErrAIServiceNotConfigured, http.StatusServiceUnavailable},
		{"ai empty", services.ErrAINoTasksGenerated, http.StatusBadGateway},
		{"store failure", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			respondServiceError(c, zap.NewNop(), tt.err)

			assert.Equal(t, tt.status, w.Code)
			assert.True(t, c.IsAborted())
		})
	}
}

func TestRespondServiceError_HidesInternalDetail(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	respondServiceError(c, zap.NewNop(), errors.New("pq: password authentication failed"))

	assert.NotContains(t, w.Body.String(), "password")
}
