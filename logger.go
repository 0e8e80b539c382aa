package securesql

import (
	"context"
	"log/slog"
	"time"
)

// ----------------------------------------------------------------------------
// Logger Interface
// ----------------------------------------------------------------------------

// Entry, tek bir Execute denemesinin kaydıdır.
type Entry struct {
	Kind      StatementKind
	Statement string
	Params    Params
	Duration  time.Duration
	Cached    bool
	Err       error
}

// Logger, çalıştırılan ifadeleri, parametreleri, süreyi ve olası hataları
// izlemek için kullanılan arayüzdür. Her Execute denemesi (önbellek isabeti
// ve hata dahil) bir kez raporlanır.
type Logger interface {
	Log(e Entry)
}

// NopLogger tüm kayıtları yutar.
type NopLogger struct{}

// Log, NopLogger'ın implementasyonudur. Gelen tüm veriyi yok sayar.
func (NopLogger) Log(Entry) {}

// SlogLogger writes entries to a log/slog logger. Successful statements are
// logged at Debug, failures at Error.
type SlogLogger struct {
	Logger *slog.Logger
}

// NewSlogLogger wraps l; a nil l falls back to slog.Default().
func NewSlogLogger(l *slog.Logger) *SlogLogger {
	if l == nil {
		l = slog.Default()
	}
	return &SlogLogger{Logger: l}
}

// Log implements Logger.
func (s *SlogLogger) Log(e Entry) {
	attrs := []slog.Attr{
		slog.String("kind", e.Kind.String()),
		slog.String("statement", e.Statement),
		slog.Int("params", len(e.Params)),
		slog.Duration("duration", e.Duration),
		slog.Bool("cached", e.Cached),
	}
	if e.Err != nil {
		attrs = append(attrs, slog.Any("error", e.Err))
		s.Logger.LogAttrs(context.Background(), slog.LevelError, "statement failed", attrs...)
		return
	}
	s.Logger.LogAttrs(context.Background(), slog.LevelDebug, "statement executed", attrs...)
}

// MultiLogger fans every entry out to each logger in order.
type MultiLogger []Logger

// Log implements Logger.
func (m MultiLogger) Log(e Entry) {
	for _, l := range m {
		if l != nil {
			l.Log(e)
		}
	}
}
