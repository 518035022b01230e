// Package logging builds the zap logger shared by the hosts.
package logging

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/miniapp-factory/square-invasion/internal/config"
)

// New returns a console-encoded logger. With a file configured it writes
// there through a rotating writer; otherwise it writes to stderr.
func New(s config.LogSettings) (*zap.Logger, error) {
	var out io.Writer = os.Stderr
	if s.File != "" {
		out = &lumberjack.Logger{
			Filename:   s.File,
			MaxSize:    s.MaxSizeMB, // MB
			MaxBackups: s.MaxBackups,
			MaxAge:     s.MaxAgeDays, // days
		}
	}
	return NewWithWriter(s, out)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(s config.LogSettings, w io.Writer) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if s.Level != "" {
		l, err := zapcore.ParseLevel(s.Level)
		if err != nil {
			return nil, fmt.Errorf("log level %q: %w", s.Level, config.ErrInvalidSettings)
		}
		level = l
	}

	encCfg := zapcore.EncoderConfig{
		TimeKey:       "ts",
		LevelKey:      "level",
		NameKey:       "logger",
		CallerKey:     "caller",
		MessageKey:    "msg",
		StacktraceKey: "stack",
		LineEnding:    zapcore.DefaultLineEnding,
		EncodeLevel:   zapcore.CapitalLevelEncoder,
		EncodeTime:    zapcore.ISO8601TimeEncoder,
		EncodeCaller:  zapcore.ShortCallerEncoder,
		EncodeName:    zapcore.FullNameEncoder,
	}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), level)
	return zap.New(core, zap.AddCaller()), nil
}
