package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveRequest(t *testing.T, header string) (*httptest.ResponseRecorder, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var ctxID string
	r := gin.New()
	r.Use(RequestLogger())
	r.GET("/ping", func(c *gin.Context) {
		ctxID = c.GetString(RequestIDKey)
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	req, err := http.NewRequest(http.MethodGet, "/ping", nil)
	require.NoError(t, err)
	if header != "" {
		req.Header.Set("X-Request-ID", header)
	}
	r.ServeHTTP(w, req)
	return w, ctxID
}

func TestRequestLogger(t *testing.T) {
	t.Run("Echoes the caller's request id", func(t *testing.T) {
		w, ctxID := serveRequest(t, "req-42")
		assert.Equal(t, "req-42", w.Header().Get("X-Request-ID"))
		assert.Equal(t, "req-42", ctxID)
	})

	t.Run("Generates an id when absent", func(t *testing.T) {
		w, ctxID := serveRequest(t, "")
		generated := w.Header().Get("X-Request-ID")
		assert.NotEmpty(t, generated)
		assert.Equal(t, generated, ctxID)
	})
}
