package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/nexstu/socialgraph/config"
	"github.com/nexstu/socialgraph/internal/container"
	"github.com/nexstu/socialgraph/internal/domain/entity"
	"github.com/nexstu/socialgraph/internal/infrastructure/memory"
	"github.com/nexstu/socialgraph/internal/router"
	"github.com/nexstu/socialgraph/pkg/helpers"
)

const (
	amaraID = "11111111-1111-4111-8111-111111111111"
	bolaID  = "22222222-2222-4222-8222-222222222222"
)

type envelope struct {
	Status    string          `json:"status"`
	Code      int             `json:"code"`
	RequestID string          `json:"request_id"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
	Meta      map[string]any  `json:"meta"`
	Error     *struct {
		Code    string            `json:"code"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

type APISuite struct {
	suite.Suite
	engine *gin.Engine
	store  *memory.Store
	jwt    *helpers.JWTManager
	amara  string
	bola   string
}

func TestAPISuite(t *testing.T) {
	suite.Run(t, new(APISuite))
}

func (s *APISuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	container.Reset()

	cfg := config.Load()
	cfg.MetricsEnabled = true
	cfg.DebugMetricsEnabled = false
	cfg.HTTPLogEnabled = false
	cfg.CORSAllowedOrigins = ""
	container.SetConfig(cfg)

	s.store = memory.NewStore()
	s.store.AddUser(entity.User{ID: amaraID, Email: "amara@unn.edu.ng"})
	s.store.AddUser(entity.User{ID: bolaID, Email: "bola@unn.edu.ng", Bio: "400L CSC"})
	container.SetMemoryStore(s.store)

	s.jwt = helpers.NewJWTManager("api-test-secret", time.Hour, "test")
	container.SetJWT(s.jwt)

	var err error
	s.amara, _, err = s.jwt.GenerateAccessToken(amaraID)
	require.NoError(s.T(), err)
	s.bola, _, err = s.jwt.GenerateAccessToken(bolaID)
	require.NoError(s.T(), err)

	s.engine = router.NewEngine()
}

func (s *APISuite) TearDownTest() {
	container.Reset()
}

func (s *APISuite) call(method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.T(), json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	var env envelope
	if w.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func (s *APISuite) TestFollowToggleRoundTrip() {
	t := s.T()

	w, env := s.call(http.MethodPost, "/api/follow", s.amara, map[string]string{"target_user_id": bolaID})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "success", env.Status)
	assert.NotEmpty(t, env.RequestID)
	assert.JSONEq(t, `{"action":"followed","is_following":true,"followers_count":1}`, string(env.Data))

	w, env = s.call(http.MethodGet, "/api/profile/"+bolaID, s.amara, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var view map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &view))
	assert.Equal(t, true, view["is_following"])
	assert.EqualValues(t, 1, view["stats"].(map[string]any)["followers"])
	assert.Equal(t, "400L CSC", view["user"].(map[string]any)["bio"])

	w, env = s.call(http.MethodPost, "/api/follow", s.amara, map[string]string{"target_user_id": bolaID})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"action":"unfollowed","is_following":false,"followers_count":0}`, string(env.Data))
}

func (s *APISuite) TestFollowErrors() {
	t := s.T()

	w, env := s.call(http.MethodPost, "/api/follow", "", map[string]string{"target_user_id": bolaID})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "UNAUTHENTICATED", env.Error.Code)

	w, env = s.call(http.MethodPost, "/api/follow", s.amara, map[string]string{"target_user_id": amaraID})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "SELF_FOLLOW", env.Error.Code)
	assert.Equal(t, 0, s.store.EdgeCount(amaraID, amaraID))

	w, env = s.call(http.MethodPost, "/api/follow", s.amara, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	assert.Equal(t, "is required", env.Error.Details["target_user_id"])

	w, env = s.call(http.MethodPost, "/api/follow", s.amara, map[string]string{"target_user_id": "99999999-9999-4999-8999-999999999999"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)

	w, _ = s.call(http.MethodPost, "/api/follow", "a.b.c", map[string]string{"target_user_id": bolaID})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func (s *APISuite) TestFollowRejectsTokenSignedWithOtherKey() {
	t := s.T()
	forger := helpers.NewJWTManager(config.DevJWTSecret+"-guess", time.Hour, "test")
	forged, _, err := forger.GenerateAccessToken(amaraID)
	require.NoError(t, err)

	w, env := s.call(http.MethodPost, "/api/follow", forged, map[string]string{"target_user_id": bolaID})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "UNAUTHENTICATED", env.Error.Code)
	assert.Equal(t, "Invalid token", env.Message)
	assert.Equal(t, 0, s.store.EdgeCount(amaraID, bolaID))
}

func (s *APISuite) TestProfileAnonymousAndMissing() {
	t := s.T()

	w, env := s.call(http.MethodGet, "/api/profile/"+bolaID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var view map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &view))
	assert.Equal(t, false, view["is_following"])
	assert.Equal(t, "bola", view["user"].(map[string]any)["name"])
	assert.Equal(t, []any{}, view["posts"])

	w, env = s.call(http.MethodGet, "/api/profile/not-a-user", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)

	w, _ = s.call(http.MethodGet, "/api/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, env = s.call(http.MethodGet, "/api/profile", s.bola, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(env.Data, &view))
	assert.Equal(t, bolaID, view["user"].(map[string]any)["id"])
}

func (s *APISuite) TestSearch() {
	t := s.T()

	w, env := s.call(http.MethodGet, "/api/users/search?q=a", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	assert.Equal(t, "Type at least 2 characters", env.Message)

	w, env = s.call(http.MethodGet, "/api/users/search?q=zz", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, string(env.Data))

	w, env = s.call(http.MethodGet, "/api/users/search?q=BOL", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list, 1)
	assert.Equal(t, "bola", list[0]["name"])
	assert.Equal(t, bolaID, list[0]["id"])
}

func (s *APISuite) TestConnections() {
	t := s.T()
	_, _ = s.call(http.MethodPost, "/api/follow", s.amara, map[string]string{"target_user_id": bolaID})

	w, env := s.call(http.MethodGet, "/api/users/"+bolaID+"/connections?type=followers", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list, 1)
	assert.Equal(t, amaraID, list[0]["id"])

	w, env = s.call(http.MethodGet, "/api/users/"+bolaID+"/connections?type=friends", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)

	w, _ = s.call(http.MethodGet, "/api/users/"+bolaID+"/connections?type=following&limit=500", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func (s *APISuite) TestActivityRequiresAuth() {
	w, _ := s.call(http.MethodGet, "/api/activity", "", nil)
	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)

	w, env := s.call(http.MethodGet, "/api/activity", s.bola, nil)
	require.Equal(s.T(), http.StatusOK, w.Code)
	assert.JSONEq(s.T(), `[]`, string(env.Data))
}

func (s *APISuite) TestHealthAndMetrics() {
	w, env := s.call(http.MethodGet, "/api/healthz", "", nil)
	assert.Equal(s.T(), http.StatusOK, w.Code)
	assert.Equal(s.T(), "success", env.Status)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)
	assert.Equal(s.T(), http.StatusOK, rec.Code)
	assert.Contains(s.T(), rec.Body.String(), "http_requests_total")
}
