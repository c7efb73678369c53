// Package logger builds the zap logger shared by the API server and the
// migration CLI, plus the gin and GORM adapters around it.
package logger

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the logging knobs exposed through app configuration.
type Config struct {
	Level      string // debug, info, warn or error
	Format     string // json or console
	Output     string // stdout or stderr
	TimeFormat string // layout passed to zapcore.TimeEncoderOfLayout
}

// New builds a zap logger from the config. Unknown level or output
// values fall back to info on stdout rather than failing startup.
func New(cfg *Config) (*zap.Logger, error) {
	core := zapcore.NewCore(encoder(cfg), sink(cfg.Output), level(cfg.Level))
	return zap.New(core,
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
	), nil
}

func level(name string) zapcore.Level {
	switch strings.ToLower(name) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	case "fatal":
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

func encoder(cfg *Config) zapcore.Encoder {
	ec := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.TimeEncoderOfLayout(cfg.TimeFormat),
		EncodeDuration: zapcore.MillisDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	if cfg.Format == "console" {
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return zapcore.NewConsoleEncoder(ec)
	}
	return zapcore.NewJSONEncoder(ec)
}

func sink(output string) zapcore.WriteSyncer {
	if strings.ToLower(output) == "stderr" {
		return zapcore.AddSync(os.Stderr)
	}
	return zapcore.AddSync(os.Stdout)
}

// Sync flushes any buffered entries. Called on shutdown.
func Sync(logger *zap.Logger) error {
	return logger.Sync()
}
