package app

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"taskflow/internal/classifier"
	"taskflow/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClassifier(t *testing.T) {
	log, hook := test.NewNullLogger()

	cl := NewClassifier(config.AIConfig{Enabled: true}, log)
	assert.IsType(t, classifier.Disabled{}, cl)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.InfoLevel, hook.LastEntry().Level)

	cl = NewClassifier(config.AIConfig{Enabled: false, APIKey: "k"}, log)
	assert.IsType(t, classifier.Disabled{}, cl)

	cl = NewClassifier(config.AIConfig{Enabled: true, APIKey: "k", BreakerFailures: 2}, log)
	b, ok := cl.(*classifier.Breaker)
	require.True(t, ok)
	assert.Equal(t, "closed", b.State())
}

func TestMetaRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	registerMetaRoutes(r, config.Config{App: config.AppConfig{Env: "test", Version: "1.2.3"}}, classifier.Disabled{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/version", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "1.2.3", body["version"])

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true,"env":"test","ai":false}`, w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger", nil))
	assert.Equal(t, http.StatusFound, w.Code)
}

func TestHealthReportsBreakerState(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log, _ := test.NewNullLogger()
	cfg := config.Config{App: config.AppConfig{Env: "test"}, AI: config.AIConfig{Enabled: true, APIKey: "k"}}
	r := gin.New()
	registerMetaRoutes(r, cfg, NewClassifier(cfg.AI, log))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true,"env":"test","ai":true,"ai_breaker":"closed"}`, w.Body.String())
}
