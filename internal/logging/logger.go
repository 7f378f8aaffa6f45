// Package logging provides config-driven categorized logging for sliderplot.
// Logs go to a file because the terminal is owned by the interactive view.
// Logging is controlled by debug_mode - when false, every logger is a no-op.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category represents a log category/system
type Category string

const (
	CategoryBoot    Category = "boot"    // Startup and config loading
	CategorySession Category = "session" // Slider notifications, recomputes, resets
	CategoryScript  Category = "script"  // Script parsing and interpretation
	CategoryRender  Category = "render"  // Canvas and surface rendering
	CategoryExport  Category = "export"  // Image export
	CategoryWatch   Category = "watch"   // Script file watcher
	CategoryUI      Category = "ui"      // Terminal view events
)

// Config mirrors the relevant parts of config.LoggingConfig
// to avoid circular imports
type Config struct {
	DebugMode  bool
	Level      string // debug, info, warn, error
	Format     string // json, console
	File       string
	Categories map[string]bool
}

// Logger is a category-scoped logger with printf-style helpers.
type Logger struct {
	category Category
	sugar    *zap.SugaredLogger
}

var (
	mu      sync.RWMutex
	base    = zap.NewNop()
	config  Config
	loggers = make(map[Category]*Logger)
)

// Initialize builds the shared zap core from cfg. Calling it again replaces
// the previous core. It is a silent no-op when debug mode is off.
func Initialize(cfg Config) error {
	mu.Lock()
	defer mu.Unlock()

	config = cfg
	loggers = make(map[Category]*Logger)
	if !cfg.DebugMode {
		base = zap.NewNop()
		return nil
	}

	path := cfg.File
	if path == "" {
		path = "sliderplot.log"
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	zapConfig := zap.NewProductionConfig()
	zapConfig.Level = ParseLevel(cfg.Level)
	zapConfig.Encoding = "json"
	if cfg.Format == "console" || cfg.Format == "text" {
		zapConfig.Encoding = "console"
		zapConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	zapConfig.OutputPaths = []string{path}
	zapConfig.ErrorOutputPaths = []string{path}
	zapConfig.DisableStacktrace = true

	logger, err := zapConfig.Build()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	base = logger
	return nil
}

// UseLogger installs an existing zap logger, bypassing file setup.
// Debug mode is considered on for every category.
func UseLogger(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	base = l
	config = Config{DebugMode: true}
	loggers = make(map[Category]*Logger)
}

// ParseLevel maps a level name to a zap level, defaulting to info.
func ParseLevel(level string) zap.AtomicLevel {
	switch level {
	case "debug":
		return zap.NewAtomicLevelAt(zapcore.DebugLevel)
	case "info":
		return zap.NewAtomicLevelAt(zapcore.InfoLevel)
	case "warn", "warning":
		return zap.NewAtomicLevelAt(zapcore.WarnLevel)
	case "error":
		return zap.NewAtomicLevelAt(zapcore.ErrorLevel)
	default:
		return zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}
}

// IsDebugMode returns whether logging is enabled at all
func IsDebugMode() bool {
	mu.RLock()
	defer mu.RUnlock()
	return config.DebugMode
}

// IsCategoryEnabled returns whether a specific category is enabled
func IsCategoryEnabled(category Category) bool {
	mu.RLock()
	defer mu.RUnlock()
	return categoryEnabled(category)
}

func categoryEnabled(category Category) bool {
	if !config.DebugMode {
		return false
	}
	if config.Categories == nil {
		return true // All enabled by default in debug mode
	}
	enabled, exists := config.Categories[string(category)]
	if !exists {
		return true
	}
	return enabled
}

// Get returns (or creates) a logger for the given category.
// Returns a no-op logger if debug mode is disabled or category is disabled.
func Get(category Category) *Logger {
	mu.RLock()
	if l, ok := loggers[category]; ok {
		mu.RUnlock()
		return l
	}
	mu.RUnlock()

	mu.Lock()
	defer mu.Unlock()
	if l, ok := loggers[category]; ok {
		return l
	}

	z := zap.NewNop()
	if categoryEnabled(category) {
		z = base.With(zap.String("category", string(category)))
	}
	l := &Logger{category: category, sugar: z.Sugar()}
	loggers[category] = l
	return l
}

// Zap exposes the underlying structured logger.
func (l *Logger) Zap() *zap.Logger {
	return l.sugar.Desugar()
}

// With returns a child logger carrying key-value context.
func (l *Logger) With(keysAndValues ...interface{}) *Logger {
	return &Logger{category: l.category, sugar: l.sugar.With(keysAndValues...)}
}

// Debug logs a debug message
func (l *Logger) Debug(format string, args ...interface{}) {
	l.sugar.Debugf(format, args...)
}

// Info logs an informational message
func (l *Logger) Info(format string, args ...interface{}) {
	l.sugar.Infof(format, args...)
}

// Warn logs a warning message
func (l *Logger) Warn(format string, args ...interface{}) {
	l.sugar.Warnf(format, args...)
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	l.sugar.Errorf(format, args...)
}

// Sync flushes buffered entries (call at shutdown)
func Sync() {
	mu.RLock()
	defer mu.RUnlock()
	_ = base.Sync()
}

// =============================================================================
// CONVENIENCE FUNCTIONS - Quick logging without getting a logger first
// These are no-ops if the category is disabled
// =============================================================================

// Boot logs to the boot category
func Boot(format string, args ...interface{}) {
	Get(CategoryBoot).Info(format, args...)
}

// BootDebug logs debug to the boot category
func BootDebug(format string, args ...interface{}) {
	Get(CategoryBoot).Debug(format, args...)
}

// Session logs to the session category
func Session(format string, args ...interface{}) {
	Get(CategorySession).Info(format, args...)
}

// SessionDebug logs debug to the session category
func SessionDebug(format string, args ...interface{}) {
	Get(CategorySession).Debug(format, args...)
}

// Script logs to the script category
func Script(format string, args ...interface{}) {
	Get(CategoryScript).Info(format, args...)
}

// ScriptDebug logs debug to the script category
func ScriptDebug(format string, args ...interface{}) {
	Get(CategoryScript).Debug(format, args...)
}

// RenderDebug logs debug to the render category
func RenderDebug(format string, args ...interface{}) {
	Get(CategoryRender).Debug(format, args...)
}

// Export logs to the export category
func Export(format string, args ...interface{}) {
	Get(CategoryExport).Info(format, args...)
}

// Watch logs to the watch category
func Watch(format string, args ...interface{}) {
	Get(CategoryWatch).Info(format, args...)
}

// WatchDebug logs debug to the watch category
func WatchDebug(format string, args ...interface{}) {
	Get(CategoryWatch).Debug(format, args...)
}

// UIDebug logs debug to the ui category
func UIDebug(format string, args ...interface{}) {
	Get(CategoryUI).Debug(format, args...)
}
