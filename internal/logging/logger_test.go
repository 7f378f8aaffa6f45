package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func resetForTest(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		_ = Initialize(Config{})
	})
}

func TestInitialize_DisabledIsNoop(t *testing.T) {
	resetForTest(t)
	require.NoError(t, Initialize(Config{DebugMode: false, File: filepath.Join(t.TempDir(), "x.log")}))

	assert.False(t, IsDebugMode())
	assert.False(t, IsCategoryEnabled(CategorySession))
	Get(CategorySession).Info("dropped %d", 1)
}

func TestInitialize_WritesToFile(t *testing.T) {
	resetForTest(t)
	path := filepath.Join(t.TempDir(), "logs", "sliderplot.log")
	require.NoError(t, Initialize(Config{DebugMode: true, Level: "debug", File: path}))

	Get(CategoryScript).Debug("loaded %s", "demo.go")
	Session("recompute %d", 3)
	Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "loaded demo.go")
	assert.Contains(t, content, `"category":"script"`)
	assert.Contains(t, content, "recompute 3")
}

func TestCategoryFilter(t *testing.T) {
	resetForTest(t)
	core, logs := observer.New(zapcore.DebugLevel)
	UseLogger(zap.New(core))
	config.Categories = map[string]bool{"render": false}

	assert.True(t, IsCategoryEnabled(CategorySession))
	assert.False(t, IsCategoryEnabled(CategoryRender))

	RenderDebug("hidden")
	SessionDebug("visible")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "visible", entries[0].Message)
}

func TestLevels(t *testing.T) {
	resetForTest(t)
	core, logs := observer.New(zapcore.WarnLevel)
	UseLogger(zap.New(core))

	l := Get(CategoryUI)
	l.Debug("d")
	l.Info("i")
	l.Warn("w %s", "x")
	l.Error("e")

	var msgs []string
	for _, e := range logs.All() {
		msgs = append(msgs, e.Message)
	}
	assert.Equal(t, "w x,e", strings.Join(msgs, ","))
}

func TestWithAddsContext(t *testing.T) {
	resetForTest(t)
	core, logs := observer.New(zapcore.InfoLevel)
	UseLogger(zap.New(core))

	Get(CategorySession).With("session_id", "abc").Info("started")

	entries := logs.FilterField(zap.String("session_id", "abc")).All()
	require.Len(t, entries, 1)
	assert.Equal(t, "started", entries[0].Message)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("debug").Level())
	assert.Equal(t, zapcore.WarnLevel, ParseLevel("warning").Level())
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("bogus").Level())
}
