package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/you/librarysvc/domain"
	"github.com/you/librarysvc/internal/http/middleware"
)

type envelope struct {
	Status  string                 `json:"status"`
	Message string                 `json:"message"`
	Data    map[string]interface{} `json:"data"`
}

// asCaller stands in for AuthMiddleware
func asCaller(p domain.Principal) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, p.ID)
		c.Set(middleware.UserRoleKey, p.Role)
		c.Next()
	}
}

func newTestEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func testLogger() logrus.FieldLogger {
	logger, _ := test.NewNullLogger()
	return logger
}

func performRequest(t *testing.T, r http.Handler, method, path string, body interface{}, cookies ...*http.Cookie) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func findCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, ck := range w.Result().Cookies() {
		if ck.Name == name {
			return ck
		}
	}
	return nil
}
