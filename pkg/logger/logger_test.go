package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"go.opentelemetry.io/otel/trace"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal log line: %v", err)
	}
	return out
}

func TestNewWithWriter_ComponentAttr(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("storefront", "info", "json", &buf)
	l.Info("hello")

	out := decodeLine(t, &buf)
	if got := out["component"]; got != "storefront" {
		t.Errorf("component = %v, want %q", got, "storefront")
	}
}

func TestNewWithWriter_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("storefront", "info", "text", &buf)
	l.Info("hello")

	if !strings.Contains(buf.String(), "component=storefront") {
		t.Errorf("text output missing component attr: %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"WARN":  slog.LevelWarn,
		"error": slog.LevelError,
		"":      slog.LevelInfo,
		"bogus": slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestWithContext_NoFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("test", "info", "json", &buf)

	WithContext(context.Background(), l).Info("bare")

	out := decodeLine(t, &buf)
	for _, k := range []string{"correlation_id", "user_id", "store_id", "trace_id", "span_id"} {
		if _, ok := out[k]; ok {
			t.Errorf("%s should not be present", k)
		}
	}
}

func TestWithContext_AllFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("test", "info", "json", &buf)

	traceID, _ := trace.TraceIDFromHex("abcdef1234567890abcdef1234567890")
	spanID, _ := trace.SpanIDFromHex("1234567890abcdef")
	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)
	ctx = WithCorrelationID(ctx, "corr-all")
	ctx = WithUserID(ctx, "user-all")
	ctx = WithStoreID(ctx, "store-all")

	WithContext(ctx, l).Info("all fields")

	out := decodeLine(t, &buf)
	want := map[string]string{
		"correlation_id": "corr-all",
		"user_id":        "user-all",
		"store_id":       "store-all",
		"trace_id":       "abcdef1234567890abcdef1234567890",
		"span_id":        "1234567890abcdef",
	}
	for k, v := range want {
		if got := out[k]; got != v {
			t.Errorf("%s = %v, want %q", k, got, v)
		}
	}
}

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("test", "info", "json", &buf)

	if got := FromContext(NewContext(context.Background(), l)); got != l {
		t.Error("FromContext should return the logger stored via NewContext")
	}
	if got := FromContext(context.Background()); got == nil {
		t.Error("FromContext should return a non-nil fallback logger")
	}
}
