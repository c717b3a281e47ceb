package transcoder

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/wippyai/hostvalue/model"
)

func TestLogger_Default(t *testing.T) {
	if Logger() == nil {
		t.Fatal("Logger() should never be nil")
	}
}

func TestLogger_EncodeFailure(t *testing.T) {
	prev := Logger()
	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))
	defer SetLogger(prev)

	enc := NewEncoder()
	if _, err := enc.Encode(model.I64(1 << 60)); err == nil {
		t.Fatal("expected integer overflow")
	}

	if n := logs.FilterMessage("encoder configured").Len(); n != 1 {
		t.Errorf("configured entries = %d, want 1", n)
	}
	failed := logs.FilterMessage("encode failed").All()
	if len(failed) != 1 {
		t.Fatalf("failure entries = %d, want 1", len(failed))
	}
	if got := failed[0].ContextMap()["kind"]; got != "i64" {
		t.Errorf("kind field = %v, want i64", got)
	}
}
