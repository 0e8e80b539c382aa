package securesql

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSlogLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewSlogLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	l.Log(Entry{Kind: KindInsert, Statement: "INSERT INTO t (a) VALUES (:param0)", Params: Params{"param0": 1}, Duration: time.Millisecond})
	out := buf.String()
	assert.Contains(t, out, "level=DEBUG")
	assert.Contains(t, out, `msg="statement executed"`)
	assert.Contains(t, out, "kind=insert")
	assert.Contains(t, out, "params=1")
	assert.NotContains(t, out, "param0=", "bound values are never logged")

	buf.Reset()
	l.Log(Entry{Kind: KindSelect, Statement: "SELECT 1", Err: errors.New("boom")})
	out = buf.String()
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, `msg="statement failed"`)
	assert.Contains(t, out, "error=boom")
}

func TestNewSlogLogger_Default(t *testing.T) {
	assert.Same(t, slog.Default(), NewSlogLogger(nil).Logger)
}

func TestMultiLogger(t *testing.T) {
	a, b := &recordingLogger{}, &recordingLogger{}
	m := MultiLogger{a, nil, b}

	m.Log(Entry{Statement: "SELECT 1"})

	assert.Len(t, a.entries, 1)
	assert.Len(t, b.entries, 1)
}

func TestWithDebug(t *testing.T) {
	b := New(WithDebug(true))
	_, ok := b.logger.(*SlogLogger)
	assert.True(t, ok)

	custom := &recordingLogger{}
	b = New(WithLogger(custom), WithDebug(true))
	assert.Same(t, custom, b.logger)

	b = New()
	assert.Equal(t, NopLogger{}, b.logger)
}
