package logger

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_WritesToFile(t *testing.T) {
	original := Logger
	t.Cleanup(func() { Logger = original })

	path := filepath.Join(t.TempDir(), "habitmind.log")
	require.NoError(t, Init(Config{Level: "debug", File: path}))

	Info("hello", "key", "value")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
	assert.Contains(t, string(data), "key=value")
}

func TestInit_RejectsUnknownLevel(t *testing.T) {
	original := Logger
	t.Cleanup(func() { Logger = original })

	assert.Error(t, Init(Config{Level: "chatty"}))
}

func TestMiddleware(t *testing.T) {
	original := Logger
	t.Cleanup(func() { Logger = original })

	var buf bytes.Buffer
	Logger = log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware())
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/boom", nil))

	out := buf.String()
	assert.Contains(t, out, "INFO")
	assert.Contains(t, out, "path=/ok")
	assert.Contains(t, out, "ERRO")
	assert.Contains(t, out, "status=500")
}
