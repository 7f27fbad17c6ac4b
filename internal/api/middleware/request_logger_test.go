package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLoggedRouter(t *testing.T) (*gin.Engine, *test.Hook) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	l, hook := test.NewNullLogger()
	l.SetLevel(logrus.DebugLevel)

	r := gin.New()
	r.Use(RequestLogger(l))
	r.GET("/health/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/message/echo", func(c *gin.Context) {
		c.Set(ctxSubject, "dr-lopez")
		c.String(http.StatusOK, RequestID(c))
	})
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusBadGateway) })
	return r, hook
}

func get(r http.Handler, path, requestID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if requestID != "" {
		req.Header.Set(HeaderRequestID, requestID)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequestLoggerKeepsPlainRequestID(t *testing.T) {
	r, hook := newLoggedRouter(t)

	w := get(r, "/message/echo", "trace-42.a_b")
	assert.Equal(t, "trace-42.a_b", w.Header().Get(HeaderRequestID))
	assert.Equal(t, "trace-42.a_b", w.Body.String())

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.InfoLevel, entry.Level)
	assert.Equal(t, "trace-42.a_b", entry.Data["request_id"])
	assert.Equal(t, "/message/echo", entry.Data["route"])
	assert.Equal(t, "dr-lopez", entry.Data["subject"])
	assert.Equal(t, 200, entry.Data["status"])
}

func TestRequestLoggerReplacesUnsafeRequestID(t *testing.T) {
	r, hook := newLoggedRouter(t)

	for _, bad := range []string{"two words", "line\nbreak", strings.Repeat("x", 65)} {
		w := get(r, "/message/echo", bad)
		id := w.Header().Get(HeaderRequestID)
		assert.NotEqual(t, bad, id)
		assert.Len(t, id, 36)
		assert.Equal(t, id, hook.LastEntry().Data["request_id"])
	}
}

func TestRequestLoggerLevels(t *testing.T) {
	r, hook := newLoggedRouter(t)

	get(r, "/health/ping", "")
	assert.Equal(t, logrus.DebugLevel, hook.LastEntry().Level)

	get(r, "/boom", "")
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)

	get(r, "/nowhere", "")
	entry := hook.LastEntry()
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, "unmatched", entry.Data["route"])
	_, hasSubject := entry.Data["subject"]
	assert.False(t, hasSubject)
}
