package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func newObservedGormLogger(level gormlogger.LogLevel) (*GormLogger, *observer.ObservedLogs) {
	core, recorded := observer.New(zapcore.DebugLevel)
	return NewGormLogger(zap.New(core), level), recorded
}

func traceQuery(l *GormLogger, ctx context.Context, begin time.Time, err error) {
	l.Trace(ctx, begin, func() (string, int64) {
		return "SELECT * FROM members", 3
	}, err)
}

func TestGormLoggerTrace(t *testing.T) {
	t.Run("successful query logs at debug", func(t *testing.T) {
		l, recorded := newObservedGormLogger(gormlogger.Info)

		traceQuery(l, context.Background(), time.Now(), nil)

		entries := recorded.TakeAll()
		require.Len(t, entries, 1)
		assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
		assert.Equal(t, "SELECT * FROM members", entries[0].ContextMap()["sql"])
		assert.Equal(t, int64(3), entries[0].ContextMap()["rows"])
	})

	t.Run("failed query logs the error", func(t *testing.T) {
		l, recorded := newObservedGormLogger(gormlogger.Warn)

		traceQuery(l, context.Background(), time.Now(), errors.New("connection reset"))

		entries := recorded.TakeAll()
		require.Len(t, entries, 1)
		assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
		assert.Equal(t, "query failed", entries[0].Message)
	})

	t.Run("record not found is not an error", func(t *testing.T) {
		l, recorded := newObservedGormLogger(gormlogger.Warn)

		traceQuery(l, context.Background(), time.Now(), gormlogger.ErrRecordNotFound)

		assert.Empty(t, recorded.TakeAll())
	})

	t.Run("slow query logs a warning", func(t *testing.T) {
		l, recorded := newObservedGormLogger(gormlogger.Warn)

		traceQuery(l, context.Background(), time.Now().Add(-slowQueryThreshold-100*time.Millisecond), nil)

		entries := recorded.TakeAll()
		require.Len(t, entries, 1)
		assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
		assert.Equal(t, "slow query", entries[0].Message)
	})

	t.Run("silent level logs nothing", func(t *testing.T) {
		l, recorded := newObservedGormLogger(gormlogger.Silent)

		traceQuery(l, context.Background(), time.Now(), errors.New("ignored"))

		assert.Empty(t, recorded.TakeAll())
	})

	t.Run("request id from context is attached", func(t *testing.T) {
		l, recorded := newObservedGormLogger(gormlogger.Info)
		ctx := context.WithValue(context.Background(), RequestIDKey, "front-desk-42")

		traceQuery(l, ctx, time.Now(), nil)

		entries := recorded.TakeAll()
		require.Len(t, entries, 1)
		assert.Equal(t, "front-desk-42", entries[0].ContextMap()["request_id"])
	})
}

func TestGormLoggerLogMode(t *testing.T) {
	l, recorded := newObservedGormLogger(gormlogger.Error)

	quieter := l.LogMode(gormlogger.Silent)
	traceQuery(quieter.(*GormLogger), context.Background(), time.Now(), errors.New("boom"))
	assert.Empty(t, recorded.TakeAll())

	// The original keeps its level.
	traceQuery(l, context.Background(), time.Now(), errors.New("boom"))
	assert.Len(t, recorded.TakeAll(), 1)
}

func TestMapGormLogLevel(t *testing.T) {
	tests := []struct {
		name string
		want gormlogger.LogLevel
	}{
		{"silent", gormlogger.Silent},
		{"error", gormlogger.Error},
		{"warn", gormlogger.Warn},
		{"info", gormlogger.Info},
		{"debug", gormlogger.Info},
		{"", gormlogger.Warn},
		{"verbose", gormlogger.Warn},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MapGormLogLevel(tt.name), "level %q", tt.name)
	}
}
