package testutil

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/gategrid/internal/app"
	"github.com/vk/gategrid/internal/hcl"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	Output string
	Err    error
	App    *app.App
	// Dir is the temporary directory the files were written to.
	Dir string
}

// Path returns the absolute path of a file written by the harness.
func (r *HarnessResult) Path(name string) string {
	return filepath.Join(r.Dir, name)
}

// RunApp writes files into a temporary directory, builds an App over them
// and runs task. Relative paths in cfg and task are resolved against that
// directory. A panic during startup is returned as Err.
func RunApp(t *testing.T, files map[string]string, cfg app.Config, task app.Task) *HarnessResult {
	t.Helper()
	return RunAppWithContext(context.Background(), t, files, cfg, task)
}

// RunAppWithContext is RunApp with a caller-provided context.
func RunAppWithContext(ctx context.Context, t *testing.T, files map[string]string, cfg app.Config, task app.Task) *HarnessResult {
	t.Helper()

	tmpDir := t.TempDir()
	for name, content := range files {
		filePath := filepath.Join(tmpDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0o755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0o644))
	}

	resolve := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(tmpDir, p)
	}
	for i, p := range cfg.ConfigPaths {
		cfg.ConfigPaths[i] = resolve(p)
	}
	cfg.SceneFile = resolve(cfg.SceneFile)
	task.OutPath = resolve(task.OutPath)
	task.ScriptPath = resolve(task.ScriptPath)
	if cfg.LogLevel == "" {
		cfg.LogLevel = "debug"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}

	out := &SafeBuffer{}
	result := &HarnessResult{Dir: tmpDir}

	appConfig, err := app.NewConfig(cfg)
	if err != nil {
		result.Err = err
		return result
	}

	var panicErr any
	func() {
		defer func() {
			if r := recover(); r != nil {
				panicErr = r
			}
		}()
		result.App = app.NewApp(out, appConfig, hcl.NewLoader())
	}()

	if panicErr != nil {
		result.Output = out.String()
		result.Err = fmt.Errorf("application startup panicked | %v", panicErr)
		return result
	}

	result.Err = result.App.Run(ctx, task)
	result.Output = out.String()

	if os.Getenv("GATEGRID_TEST_LOGS") == "true" {
		t.Logf("--- Full Output for %s ---\n%s", t.Name(), result.Output)
	}
	return result
}
