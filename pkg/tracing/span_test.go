package tracing

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpanTree(t *testing.T) {
	ctx, root := StartSpan(context.Background(), "run", "trace-1")
	require.Same(t, root, SpanFromContext(ctx))

	_, load := StartChildSpan(ctx, "load")
	load.End()
	childCtx, scan := StartChildSpan(ctx, "scan")
	scan.SetAttr("indexed", 3)
	_, nested := StartChildSpan(childCtx, "read")
	nested.End()
	scan.End()
	root.End()

	require.Len(t, root.Children, 2)
	assert.Equal(t, "load", root.Children[0].Name)
	assert.Equal(t, "trace-1", scan.TraceID)
	assert.Equal(t, "trace-1", nested.TraceID)
	assert.Equal(t, []*Span{nested}, scan.Children)
	assert.Equal(t, 3, scan.Attrs["indexed"])
}

func TestStartChildSpan_NoParent(t *testing.T) {
	_, span := StartChildSpan(context.Background(), "orphan")
	assert.Empty(t, span.TraceID)
	assert.Nil(t, SpanFromContext(context.Background()))
}

func TestLog(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	ctx, root := StartSpan(context.Background(), "run", "trace-2")
	_, child := StartChildSpan(ctx, "rank")
	child.SetAttr("result", "ok")
	child.End()
	root.End()
	root.Log(logger)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "span=run")
	assert.Contains(t, lines[0], "depth=0")
	assert.Contains(t, lines[1], "span=rank")
	assert.Contains(t, lines[1], "depth=1")
	assert.Contains(t, lines[1], "result=ok")
}

func TestEnd_FreezesSpan(t *testing.T) {
	_, span := StartSpan(context.Background(), "run", "trace-3")
	span.SetAttr("result", "ok")
	span.End()
	first := span.Duration

	span.SetAttr("late", true)
	span.End()

	assert.Equal(t, map[string]any{"result": "ok"}, span.Attrs)
	assert.Equal(t, first, span.Duration)
}
