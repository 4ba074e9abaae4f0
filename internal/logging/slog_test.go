package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferLogger() (*SlogLogger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	h := slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return NewSlogLogger(slog.New(h)), buf
}

func lastRecord(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	return rec
}

func TestSlogLogger_Levels(t *testing.T) {
	ctx := context.Background()

	for _, tc := range []struct {
		level string
		log   func(l *SlogLogger)
	}{
		{"DEBUG", func(l *SlogLogger) { l.Debug(ctx, "msg") }},
		{"INFO", func(l *SlogLogger) { l.Info(ctx, "msg") }},
		{"WARN", func(l *SlogLogger) { l.Warn(ctx, "msg") }},
		{"ERROR", func(l *SlogLogger) { l.Error(ctx, "msg") }},
	} {
		l, buf := newBufferLogger()
		tc.log(l)
		rec := lastRecord(t, buf)
		assert.Equal(t, tc.level, rec["level"])
		assert.Equal(t, "msg", rec["msg"])
	}
}

func TestSlogLogger_WithAddsAttrs(t *testing.T) {
	l, buf := newBufferLogger()

	child := l.With("module", "httpapi")
	child.Info(context.Background(), "started", "addr", ":8080")

	rec := lastRecord(t, buf)
	assert.Equal(t, "httpapi", rec["module"])
	assert.Equal(t, ":8080", rec["addr"])
}
