package testutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/gridcalc/internal/app"
	"github.com/specialistvlad/gridcalc/internal/celladdr"
	"github.com/specialistvlad/gridcalc/internal/sheet"
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
	Output    string
	LogOutput string
	Err       error
	App       *app.App
}

// WriteFiles writes files, keyed by relative path, into a fresh temporary
// directory and returns that directory.
func WriteFiles(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		filePath := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0644))
	}
	return dir
}

// RunIntegrationTest runs the app with cfg, feeding input to the interactive
// session, using a default background context.
func RunIntegrationTest(t *testing.T, cfg app.Config, input string) *HarnessResult {
	t.Helper()
	return RunIntegrationTestWithContext(context.Background(), t, cfg, input)
}

// RunIntegrationTestWithContext runs the app with a context provided by the
// caller. Logging is forced to debug text so tests can assert on it.
func RunIntegrationTestWithContext(ctx context.Context, t *testing.T, cfg app.Config, input string) *HarnessResult {
	t.Helper()

	cfg.LogLevel = "debug"
	cfg.LogFormat = "text"
	appConfig, err := app.NewConfig(cfg)
	require.NoError(t, err)

	outBuffer := &SafeBuffer{}
	logBuffer := &SafeBuffer{}
	testApp := app.NewApp(outBuffer, logBuffer, strings.NewReader(input), appConfig)
	runErr := testApp.Run(ctx)

	if os.Getenv("GRIDCALC_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
	}

	return &HarnessResult{
		Output:    outBuffer.String(),
		LogOutput: logBuffer.String(),
		Err:       runErr,
		App:       testApp,
	}
}

// CellView reads one cell of the sheet the run worked on.
func CellView(t *testing.T, result *HarnessResult, label string) sheet.CellView {
	t.Helper()
	require.NotNil(t, result.App.Sheet(), "the run did not open a sheet")

	addr, err := celladdr.Parse(label)
	require.NoError(t, err)
	view, err := result.App.Sheet().Cell(addr)
	require.NoError(t, err)
	return view
}

// AssertCellValue checks that a cell evaluated to want without error.
func AssertCellValue(t *testing.T, result *HarnessResult, label string, want int) {
	t.Helper()
	view := CellView(t, result, label)
	require.NoError(t, view.Err, "cell %s should have evaluated cleanly", label)
	require.Equal(t, want, view.Value, "unexpected value for cell %s", label)
}
