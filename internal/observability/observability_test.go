package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you/librarysvc/domain"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger("debug", "release", &buf)
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())

	logger.WithField("k", "v").Info("hello")
	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "hello", line["msg"])
	assert.Equal(t, "v", line["k"])

	fallback := NewLogger("loud", "debug", &buf)
	assert.Equal(t, logrus.InfoLevel, fallback.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, fallback.Formatter)
}

func TestMetricsMiddleware(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/books/:id", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/metrics", m.Handler())

	for _, path := range []string{"/books/1", "/books/2", "/missing"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/books/:id", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "unmatched", "404")))

	m.OTPSentTotal.WithLabelValues(string(domain.PurposeActivation)).Inc()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `librarysvc_otp_sent_total{purpose="ACTIVATION"} 1`)
}

func TestRequestLogger(t *testing.T) {
	logger, hook := test.NewNullLogger()

	var seen *domain.ClientContext
	r := gin.New()
	r.Use(RequestLogger(logger))
	r.GET("/ok", func(c *gin.Context) {
		seen = domain.ClientContextFrom(c.Request.Context())
		c.Status(http.StatusOK)
	})
	r.GET("/bad", func(c *gin.Context) { c.Status(http.StatusBadRequest) })
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	t.Run("keeps caller request id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ok", nil)
		req.Header.Set(RequestIDHeader, "req-123")
		req.Header.Set("User-Agent", "tests")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, "req-123", w.Header().Get(RequestIDHeader))
		require.NotNil(t, seen)
		assert.Equal(t, "req-123", seen.RequestID)
		assert.Equal(t, "tests", seen.UserAgent)
		assert.Equal(t, logrus.InfoLevel, hook.LastEntry().Level)
		assert.Equal(t, 200, hook.LastEntry().Data["status"])
	})

	t.Run("generates request id", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
		assert.Len(t, w.Header().Get(RequestIDHeader), 36)
	})

	levels := map[string]logrus.Level{
		"/bad":  logrus.WarnLevel,
		"/boom": logrus.ErrorLevel,
	}
	for path, level := range levels {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, level, hook.LastEntry().Level, path)
	}
}

func TestHealthChecker(t *testing.T) {
	ok := PingFunc(func(ctx context.Context) error { return nil })
	down := PingFunc(func(ctx context.Context) error { return errors.New("connection refused") })

	tests := []struct {
		name       string
		deps       map[string]Pinger
		wantCode   int
		wantStatus string
	}{
		{name: "all healthy", deps: map[string]Pinger{"database": ok, "redis": ok}, wantCode: http.StatusOK, wantStatus: StatusHealthy},
		{name: "redis down", deps: map[string]Pinger{"database": ok, "redis": down}, wantCode: http.StatusServiceUnavailable, wantStatus: StatusUnhealthy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/health", NewHealthChecker(tt.deps).Handler())

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
			assert.Equal(t, tt.wantCode, w.Code)

			var body struct {
				Status       string            `json:"status"`
				Dependencies map[string]string `json:"dependencies"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantStatus, body.Status)
			assert.Equal(t, StatusHealthy, body.Dependencies["database"])
		})
	}
}
