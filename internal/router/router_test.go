package router_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"fbauth/internal/auth/facebook"
	"fbauth/internal/config"
	"fbauth/internal/domain"
	"fbauth/internal/handler"
	"fbauth/internal/metrics"
	"fbauth/internal/router"
	"fbauth/internal/service"
	"fbauth/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	engine *gin.Engine
	tokens service.TokenService
	users  *mocks.MockUserService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	reg := prometheus.NewRegistry()
	tokens := service.NewTokenService(config.JWTConfig{
		Secret:             "router-secret",
		AccessTokenExpiry:  time.Minute,
		RefreshTokenExpiry: time.Hour,
		Issuer:             "fbauth",
	})
	authSvc := new(mocks.MockFacebookAuthService)
	users := new(mocks.MockUserService)
	log := zap.NewNop()

	engine := router.Setup(log, reg, nil, tokens,
		handler.NewAuthHandler(authSvc, config.SessionConfig{CookieName: "fbauth_sid"}, log),
		handler.NewUserHandler(users, log),
		handler.NewHealthHandler(nil),
	)
	metrics.NewAuthMetrics(reg).ObserveAttempt(facebook.ProviderName, "success")
	return &testServer{engine: engine, tokens: tokens, users: users}
}

// bearer issues an access token for a user with roles.
func (s *testServer) bearer(t *testing.T, roles ...string) string {
	t.Helper()
	user := &domain.User{ID: uuid.New(), FacebookID: "100", Roles: roles, IsActive: true}
	p, err := facebook.NewProvider(facebook.Config{ProviderKey: "main"}, new(mocks.MockFacebookClient))
	require.NoError(t, err)
	token, err := p.Authenticate(context.Background(), facebook.NewUserToken("main", user, nil))
	require.NoError(t, err)
	pair, err := s.tokens.IssueForToken(token)
	require.NoError(t, err)
	return "Bearer " + pair.AccessToken
}

func (s *testServer) do(method, path, authorization string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, http.NoBody)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	s := newTestServer(t)

	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/healthz", "").Code)
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/readyz", "").Code)

	w := s.do(http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "fbauth_authentication_attempts_total")
}

func TestRouter_MeRequiresToken(t *testing.T) {
	s := newTestServer(t)

	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/api/v1/me", "").Code)
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/v1/me", s.bearer(t, "ROLE_USER")).Code)
}

func TestRouter_AdminRequiresAdminRole(t *testing.T) {
	s := newTestServer(t)
	id := uuid.New()
	s.users.On("GetByID", mock.Anything, id).Return(&domain.User{ID: id, FacebookID: "200"}, nil)

	path := "/api/v1/admin/users/" + id.String()
	assert.Equal(t, http.StatusForbidden, s.do(http.MethodGet, path, s.bearer(t, "ROLE_USER")).Code)
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, path, s.bearer(t, "ROLE_USER", "ROLE_ADMIN")).Code)
	s.users.AssertExpectations(t)
}
