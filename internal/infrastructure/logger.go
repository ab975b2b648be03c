package infrastructure

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sahilpilke/RealEstateAnalysis-Project/internal/config"
)

// processLog is the logger installed by InitializeLogger together with the
// file it may be writing to.
var processLog struct {
	mu     sync.Mutex
	once   sync.Once
	logger *slog.Logger
	file   *os.File
}

// InitializeLogger builds the process logger from cfg and makes it the slog
// default. Later calls return the first logger unchanged.
func InitializeLogger(cfg config.LoggingConfig) (*slog.Logger, error) {
	var err error
	processLog.once.Do(func() {
		var (
			w    io.Writer
			file *os.File
		)
		w, file, err = logDestination(cfg)
		if err != nil {
			return
		}

		logger := NewLogger(cfg, w)
		processLog.mu.Lock()
		processLog.logger, processLog.file = logger, file
		processLog.mu.Unlock()
		slog.SetDefault(logger)
	})

	processLog.mu.Lock()
	defer processLog.mu.Unlock()
	return processLog.logger, err
}

// GetLogger returns the process logger, or slog.Default before initialization.
func GetLogger() *slog.Logger {
	processLog.mu.Lock()
	defer processLog.mu.Unlock()
	if processLog.logger == nil {
		return slog.Default()
	}
	return processLog.logger
}

// NewLogger builds a logger writing to w. Format "text" selects the
// key=value handler; anything else logs JSON lines. Every record carries
// the request trace id when the context has one.
func NewLogger(cfg config.LoggingConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		AddSource: cfg.Development,
		Level:     ParseLogLevel(cfg.Level),
	}

	var h slog.Handler
	if strings.EqualFold(cfg.Format, "text") {
		h = slog.NewTextHandler(w, opts)
	} else {
		h = slog.NewJSONHandler(w, opts)
	}
	return slog.New(traceHandler{h})
}

// logDestination maps Output ("stdout", "file" or "both") to a writer. The
// returned file is non-nil when one was opened.
func logDestination(cfg config.LoggingConfig) (io.Writer, *os.File, error) {
	mode := strings.ToLower(cfg.Output)
	if mode != "file" && mode != "both" {
		return os.Stdout, nil, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	file, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file %s: %w", cfg.FilePath, err)
	}

	if mode == "both" {
		return io.MultiWriter(os.Stdout, file), file, nil
	}
	return file, file, nil
}

// traceHandler stamps trace_id onto records whose context carries one.
type traceHandler struct {
	slog.Handler
}

func (h traceHandler) Handle(ctx context.Context, r slog.Record) error {
	if id := GetTraceID(ctx); id != "" {
		r.AddAttrs(slog.String("trace_id", id))
	}
	return h.Handler.Handle(ctx, r)
}

func (h traceHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return traceHandler{h.Handler.WithAttrs(attrs)}
}

func (h traceHandler) WithGroup(name string) slog.Handler {
	return traceHandler{h.Handler.WithGroup(name)}
}

// ParseLogLevel maps a configured level name to a slog level. "warning" is
// accepted as an alias and unknown names fall back to info.
func ParseLogLevel(level string) slog.Level {
	name := strings.TrimSpace(level)
	if strings.EqualFold(name, "warning") {
		return slog.LevelWarn
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelInfo
	}
	return l
}

// CloseLogFile closes the log file opened by InitializeLogger, if any.
func CloseLogFile() error {
	processLog.mu.Lock()
	defer processLog.mu.Unlock()

	if processLog.file == nil {
		return nil
	}
	err := processLog.file.Close()
	processLog.file = nil
	return err
}

// ResetLoggerForTesting forgets the process logger so InitializeLogger can
// run again.
func ResetLoggerForTesting() {
	_ = CloseLogFile()
	processLog.mu.Lock()
	processLog.logger = nil
	processLog.once = sync.Once{}
	processLog.mu.Unlock()
}
