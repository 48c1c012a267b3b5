package logger

import (
	"context"
	"testing"

	"github.com/muhammadchandra19/stockmarket/pkg/errors"
	"github.com/muhammadchandra19/stockmarket/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedLogger() (*Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return &Logger{logger: zap.New(core)}, logs
}

func TestLevel_getZapLevel(t *testing.T) {
	testCases := []struct {
		level    Level
		expected zapcore.Level
	}{
		{DebugLevel, zapcore.DebugLevel},
		{InfoLevel, zapcore.InfoLevel},
		{WarnLevel, zapcore.WarnLevel},
		{ErrorLevel, zapcore.ErrorLevel},
		{Level("unknown"), zapcore.InfoLevel},
	}

	for _, tc := range testCases {
		t.Run(string(tc.level), func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.level.getZapLevel())
		})
	}
}

func TestNewLogger(t *testing.T) {
	log, err := NewLogger(WithLoggingLevel(DebugLevel), WithOutputPaths([]string{"stderr"}), WithTimeKey("ts"))
	require.NoError(t, err)
	assert.NotNil(t, log.GetZap())
}

func TestLogger_InfoContext(t *testing.T) {
	log, logs := newObservedLogger()
	ctx := util.WithSymbol(util.WithRequestID(context.Background(), "pass-1"), "X")

	log.InfoContext(ctx, "matched", NewField("volume", 8))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "matched", entry.Message)
	fields := entry.ContextMap()
	assert.Equal(t, int64(8), fields["volume"])
	assert.Equal(t, "pass-1", fields["request_id"])
	assert.Equal(t, "X", fields["symbol"])
}

func TestLogger_Error(t *testing.T) {
	log, logs := newObservedLogger()

	log.Error(errors.NewTracer("publish failed").Wrap(assert.AnError), NewField("action", "publish"))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.ErrorLevel, entry.Level)
	assert.Contains(t, entry.Message, "publish failed")
	assert.Equal(t, "publish", entry.ContextMap()["action"])
}

func TestLogger_WithFields(t *testing.T) {
	log, logs := newObservedLogger()

	log.WithFields(NewField("component", "book")).Warn("empty side")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "book", logs.All()[0].ContextMap()["component"])
}
