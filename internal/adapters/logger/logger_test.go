package logger_adapter

import (
	"bytes"
	"errors"
	"listing-search-service/internal/core/port"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFluent struct {
	mu    sync.Mutex
	tags  []string
	posts []map[string]interface{}
}

func (f *fakeFluent) Post(tag string, message interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tags = append(f.tags, tag)
	f.posts = append(f.posts, message.(port.Fields))
	return nil
}

func (f *fakeFluent) Close() error { return nil }

func TestSlogAdapter_TextOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogAdapter(SlogConfig{Writer: &buf, Level: slog.LevelDebug})

	logger.WithFields(port.Fields{"component": "test"}).
		Error("Search failed", errors.New("boom"), port.Fields{"page": 2, "b": "x"})

	out := buf.String()
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, "component=test")
	assert.Contains(t, out, "b=x page=2")
	assert.Contains(t, out, "error=boom")
}

func TestSlogAdapter_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogAdapter(SlogConfig{Writer: &buf, Level: slog.LevelWarn, IsJSON: true})

	logger.Info("hidden", nil)
	logger.Warn("shown", nil)

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
}

func TestFluentLoggerAdapter(t *testing.T) {
	client := &fakeFluent{}
	adapter, err := NewFluentLoggerAdapter(client, slog.LevelInfo)
	require.NoError(t, err)

	logger := adapter.WithFields(port.Fields{"session_id": "s1"})
	logger.Debug("skipped", nil)
	logger.Info("kept", port.Fields{"count": 3})
	logger.Error("failed", errors.New("down"), nil)

	require.Equal(t, []string{"info", "error"}, client.tags)
	assert.Equal(t, "s1", client.posts[0]["session_id"])
	assert.Equal(t, 3, client.posts[0]["count"])
	assert.Equal(t, "kept", client.posts[0]["message"])
	assert.Equal(t, "down", client.posts[1]["error"])

	_, err = NewFluentLoggerAdapter(nil, nil)
	assert.Error(t, err)
}

func TestMultiLoggerAdapter(t *testing.T) {
	var buf bytes.Buffer
	client := &fakeFluent{}
	fluentAdapter, err := NewFluentLoggerAdapter(client, slog.LevelDebug)
	require.NoError(t, err)

	multi, err := NewMultiloggerAdapter(NewSlogAdapter(SlogConfig{Writer: &buf}), fluentAdapter)
	require.NoError(t, err)

	multi.WithFields(port.Fields{"trace_id": "t-1"}).Warn("slow api", nil)

	assert.Contains(t, buf.String(), "trace_id=t-1")
	require.Len(t, client.posts, 1)
	assert.Equal(t, "t-1", client.posts[0]["trace_id"])

	_, err = NewMultiloggerAdapter()
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
}
