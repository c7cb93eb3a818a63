package app

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	base := func() Config {
		return Config{SceneFile: "scene.hcl", LogFormat: "text", LogLevel: "info"}
	}

	testCases := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "scene file", mutate: func(c *Config) {}},
		{name: "backend", mutate: func(c *Config) { c.SceneFile = ""; c.BackendURL = "http://localhost:3000/socket.io/" }},
		{name: "no source", mutate: func(c *Config) { c.SceneFile = "" }, wantErr: "SceneFile is required unless BackendURL is set"},
		{name: "both sources", mutate: func(c *Config) { c.BackendURL = "http://localhost:3000" }, wantErr: "cannot be combined with BackendURL"},
		{name: "bad url", mutate: func(c *Config) { c.SceneFile = ""; c.BackendURL = "not a url" }, wantErr: "invalid BackendURL"},
		{name: "bad log level", mutate: func(c *Config) { c.LogLevel = "trace" }, wantErr: "invalid LogLevel 'trace'"},
		{name: "bad log format", mutate: func(c *Config) { c.LogFormat = "xml" }, wantErr: "invalid LogFormat 'xml'"},
		{name: "bad port", mutate: func(c *Config) { c.HealthcheckPort = 70000 }, wantErr: "invalid HealthcheckPort"},
		{name: "negative width", mutate: func(c *Config) { c.Width = -1 }, wantErr: "invalid Width"},
		{name: "negative timeout", mutate: func(c *Config) { c.Timeout = -1 }, wantErr: "timeout cannot be negative"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base()
			tc.mutate(&cfg)
			got, err := NewConfig(cfg)
			if tc.wantErr == "" {
				require.NoError(t, err)
				assert.Equal(t, cfg, *got)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestHealthMux(t *testing.T) {
	a := &App{ctx: context.Background()}
	srv := httptest.NewServer(a.newHealthMux())
	defer srv.Close()

	res, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	body, _ := io.ReadAll(res.Body)
	res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "OK\n", string(body))

	res, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	body, _ = io.ReadAll(res.Body)
	res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, string(body), "gategrid_feedback_gates")
}

func TestNewLogger_Levels(t *testing.T) {
	var buf testWriter
	logger := newLogger("warn", "json", &buf)
	logger.Info("hidden")
	logger.Warn("shown")
	assert.NotContains(t, string(buf), "hidden")
	assert.Contains(t, string(buf), `"msg":"shown"`)
}

type testWriter []byte

func (w *testWriter) Write(p []byte) (int, error) {
	*w = append(*w, p...)
	return len(p), nil
}
