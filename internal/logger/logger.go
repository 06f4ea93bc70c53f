package logger

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Hook receives every entry that passes the level filter, after it has been
// written.
type Hook func(entry map[string]any)

type Logger struct {
	mu    sync.Mutex
	zl    *zap.Logger
	level zap.AtomicLevel
	hooks []Hook
}

func New(level string) *Logger {
	return NewWithWriter(level, os.Stdout)
}

// NewFile appends to path. It is used when the terminal belongs to the UI.
func NewFile(level string, path string) (*Logger, io.Closer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return NewWithWriter(level, f), f, nil
}

func NewWithWriter(level string, out io.Writer) *Logger {
	enc := zapcore.NewJSONEncoder(zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		MessageKey:     "msg",
		EncodeTime:     zapcore.RFC3339TimeEncoder,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	})
	atom := zap.NewAtomicLevelAt(ParseLevel(level))
	core := zapcore.NewCore(enc, zapcore.AddSync(out), atom)
	return &Logger{
		zl:    zap.New(core),
		level: atom,
	}
}

// ParseLevel maps debug, info, warn and error in any case to a zap level.
// Anything else is info.
func ParseLevel(level string) zapcore.Level {
	lvl, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}

func (l *Logger) AddHook(h Hook) {
	if h == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.hooks = append(l.hooks, h)
}

func (l *Logger) Level() zapcore.Level {
	return l.level.Level()
}

func (l *Logger) Debug(msg string, fields map[string]any) {
	l.log(zapcore.DebugLevel, msg, fields)
}

func (l *Logger) Info(msg string, fields map[string]any) {
	l.log(zapcore.InfoLevel, msg, fields)
}

func (l *Logger) Warn(msg string, fields map[string]any) {
	l.log(zapcore.WarnLevel, msg, fields)
}

func (l *Logger) Error(msg string, fields map[string]any) {
	l.log(zapcore.ErrorLevel, msg, fields)
}

func (l *Logger) Sync() error {
	return l.zl.Sync()
}

func (l *Logger) log(level zapcore.Level, msg string, fields map[string]any) {
	ce := l.zl.Check(level, msg)
	if ce == nil {
		return
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	zf := make([]zap.Field, 0, len(keys))
	for _, k := range keys {
		zf = append(zf, zap.Any(k, fields[k]))
	}
	ts := ce.Time
	ce.Write(zf...)

	l.mu.Lock()
	hooks := append([]Hook(nil), l.hooks...)
	l.mu.Unlock()
	if len(hooks) == 0 {
		return
	}
	entry := map[string]any{
		"ts":    ts.Format(time.RFC3339),
		"level": level.String(),
		"msg":   msg,
	}
	for k, v := range fields {
		entry[k] = v
	}
	for _, h := range hooks {
		h(entry)
	}
}
