package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexstu/socialgraph/internal/domain/shared"
)

type fakeResolver map[string]string

func (f fakeResolver) Resolve(cred string) (string, error) {
	if id, ok := f[cred]; ok {
		return id, nil
	}
	return "", shared.E("test", shared.ErrUnauthenticated, "Invalid token", errors.New("bad"))
}

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw...)
	r.GET("/who", func(c *gin.Context) {
		c.String(http.StatusOK, "caller=%s", CallerID(c))
	})
	return r
}

func do(r http.Handler, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/who", nil)
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuth(t *testing.T) {
	r := newEngine(Auth(fakeResolver{"Bearer good": "u1"}))

	w := do(r, http.Header{"Authorization": {"Bearer good"}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "caller=u1", w.Body.String())

	w = do(r, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"UNAUTHENTICATED"`)

	w = do(r, http.Header{"Authorization": {"Bearer bad"}})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid token")
}

func TestOptionalAuth(t *testing.T) {
	r := newEngine(OptionalAuth(fakeResolver{"Bearer good": "u1"}))

	w := do(r, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "caller=", w.Body.String())

	w = do(r, http.Header{"Authorization": {"Bearer"}})
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.Header{"Authorization": {"Bearer good"}})
	assert.Equal(t, "caller=u1", w.Body.String())

	w = do(r, http.Header{"Authorization": {"Bearer forged"}})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequestID(t *testing.T) {
	r := newEngine(RequestIDMiddleware())

	w := do(r, nil)
	_, err := uuid.Parse(w.Header().Get(HeaderRequestID))
	assert.NoError(t, err)

	in := uuid.NewString()
	w = do(r, http.Header{HeaderRequestID: {in}})
	assert.Equal(t, in, w.Header().Get(HeaderRequestID))

	w = do(r, http.Header{HeaderRequestID: {"<script>"}})
	assert.NotEqual(t, "<script>", w.Header().Get(HeaderRequestID))
}

func TestRealIPPriority(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RealIP())
	r.GET("/who", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("real_ip")) })

	w := do(r, http.Header{"X-Forwarded-For": {"203.0.113.7, 10.0.0.1"}})
	assert.Equal(t, "203.0.113.7", w.Body.String())

	w = do(r, http.Header{"X-Forwarded-For": {"203.0.113.7"}, "CF-Connecting-IP": {"198.51.100.2"}})
	assert.Equal(t, "198.51.100.2", w.Body.String())
}

func TestAllowFuncs(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	allow := AnyOf(AllowPaths("/api/healthz"), nil)
	r.GET("/api/healthz", func(c *gin.Context) { c.String(http.StatusOK, "%v", allow(c)) })
	r.GET("/who", func(c *gin.Context) { c.String(http.StatusOK, "%v", allow(c)) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/healthz", nil))
	assert.Equal(t, "true", w.Body.String())
	assert.Equal(t, "false", do(r, nil).Body.String())
}

func TestRateLimitWithoutRedisPassesThrough(t *testing.T) {
	r := newEngine(RateLimit(nil, "read", 1, time.Minute, KeyByIP(), nil))
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, do(r, nil).Code)
	}
}

func TestRateLimitWithRedis(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("Skipping redis tests: TEST_REDIS_ADDR not set")
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = rdb.Close() })

	scope := "test-" + uuid.NewString()
	r := newEngine(RateLimit(rdb, scope, 2, time.Minute, KeyByUserID(scope), nil))

	for i := 0; i < 2; i++ {
		w := do(r, nil)
		require.Equal(t, http.StatusOK, w.Code)
	}
	w := do(r, nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), `"RATE_LIMITED"`)
}
