package logctx

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestFromContextDefault(t *testing.T) {
	// must never return an unusable logger
	logger := FromContext(nil)
	logger.Info().Msg("ok")

	logger = FromContext(context.Background())
	logger.Info().Msg("ok")
}

func TestWithLoggerRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	ctx := WithLogger(context.Background(), logger)
	ctxLogger := FromContext(ctx)
	ctxLogger.Info().Str("suite", "kvwrite").Msg("run")

	out := buf.String()
	if !strings.Contains(out, `"suite":"kvwrite"`) {
		t.Errorf("context logger not used: %s", out)
	}
}

func TestNewConfiguredLoggerLevels(t *testing.T) {
	if l := NewConfiguredLogger(false, false); l.GetLevel() != zerolog.InfoLevel {
		t.Errorf("default level = %s, want info", l.GetLevel())
	}
	if l := NewConfiguredLogger(true, true); l.GetLevel() != zerolog.DebugLevel {
		t.Errorf("debug level = %s, want debug", l.GetLevel())
	}
}
