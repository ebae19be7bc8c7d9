package logger

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/lmittmann/tint"
)

type customKey int

const (
	LogDataKey customKey = iota
)

// ContextHandler adds the LogData stored in the context to every record.
type ContextHandler struct {
	handler slog.Handler
}

type LogData struct {
	RequestID string
	Details   map[string]any
}

// New returns a colored text logger for dev and a JSON logger otherwise.
func New(w io.Writer, env string, level slog.Level) *slog.Logger {
	var h slog.Handler
	if env == "dev" {
		h = tint.NewHandler(w, &tint.Options{
			Level:      level,
			AddSource:  true,
			TimeFormat: time.Kitchen,
		})
	} else {
		h = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	}
	return slog.New(NewContextHandler(h)).With("app", "uvsearch", "env", env)
}

func NewContextHandler(h slog.Handler) *ContextHandler {
	return &ContextHandler{handler: h}
}

func (h *ContextHandler) Enabled(ctx context.Context, lvl slog.Level) bool {
	return h.handler.Enabled(ctx, lvl)
}

func (h *ContextHandler) Handle(ctx context.Context, rec slog.Record) error {
	if ld, ok := ctx.Value(LogDataKey).(LogData); ok {
		if ld.RequestID != "" {
			rec.Add("request_id", ld.RequestID)
		}
		if ld.Details != nil {
			rec.Add("details", ld.Details)
		}
	}
	return h.handler.Handle(ctx, rec)
}

func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return NewContextHandler(h.handler.WithAttrs(attrs))
}

func (h *ContextHandler) WithGroup(name string) slog.Handler {
	return NewContextHandler(h.handler.WithGroup(name))
}

func WithRequestID(ctx context.Context, id string) context.Context {
	if ld, ok := ctx.Value(LogDataKey).(LogData); ok {
		ld.RequestID = id
		return context.WithValue(ctx, LogDataKey, ld)
	}
	return context.WithValue(ctx, LogDataKey, LogData{RequestID: id})
}

// WithDetails is mostly for extra context on errors. The details map is copied
// so a parent context never sees keys added by a child.
func WithDetails(ctx context.Context, key string, detail any) context.Context {
	if ld, ok := ctx.Value(LogDataKey).(LogData); ok {
		details := make(map[string]any, len(ld.Details)+1)
		for k, v := range ld.Details {
			details[k] = v
		}
		details[key] = detail
		ld.Details = details
		return context.WithValue(ctx, LogDataKey, ld)
	}
	return context.WithValue(ctx, LogDataKey, LogData{Details: map[string]any{key: detail}})
}
