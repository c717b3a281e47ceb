package transcoder

import (
	"testing"

	"github.com/wippyai/hostvalue/errors"
)

func TestState_Path(t *testing.T) {
	st := getState(errors.PhaseEncode, 8)
	defer putState(st)

	if err := st.enter("items"); err != nil {
		t.Fatal(err)
	}
	if err := st.enterIndex(2); err != nil {
		t.Fatal(err)
	}
	snap := st.snapshot()
	if got := errors.JoinPath(snap); got != "items[2]" {
		t.Errorf("path = %q, want items[2]", got)
	}

	st.leave()
	if err := st.enter("other"); err != nil {
		t.Fatal(err)
	}
	if snap[1] != "[2]" {
		t.Error("snapshot must not alias the live path")
	}
	if st.depth != 2 {
		t.Errorf("depth = %d, want 2", st.depth)
	}
}

func TestState_Depth(t *testing.T) {
	st := getState(errors.PhaseDecode, 2)
	defer putState(st)

	if err := st.deeper(); err != nil {
		t.Fatal(err)
	}
	if err := st.enter("a"); err != nil {
		t.Fatal(err)
	}
	err := st.deeper()
	if !errors.Is(err, errors.ErrDepthExceeded) {
		t.Fatalf("expected depth_exceeded, got %v", err)
	}
	var e *errors.Error
	if errors.As(err, &e) && e.Phase != errors.PhaseDecode {
		t.Errorf("Phase = %s, want decode", e.Phase)
	}
}

func TestState_Reuse(t *testing.T) {
	st := getState(errors.PhaseEncode, 4)
	_ = st.enter("x")
	putState(st)

	st = getState(errors.PhaseDecode, 4)
	defer putState(st)
	if len(st.path) != 0 || st.depth != 0 {
		t.Errorf("pooled state not reset: path=%v depth=%d", st.path, st.depth)
	}
}

func TestOptions(t *testing.T) {
	opts := DefaultOptions()
	if opts.maxDepth() != DefaultMaxDepth {
		t.Errorf("maxDepth = %d, want %d", opts.maxDepth(), DefaultMaxDepth)
	}
	if opts.MapMode != MapAsObject || opts.Int64 != Int64Strict {
		t.Errorf("defaults = %s/%s", opts.MapMode, opts.Int64)
	}
	if (Options{MaxDepth: -1}).maxDepth() != DefaultMaxDepth {
		t.Error("negative MaxDepth should fall back to the default")
	}
	if (Options{MaxDepth: 3}).maxDepth() != 3 {
		t.Error("explicit MaxDepth ignored")
	}
	if Int64BigIntWhenUnsafe.String() != "bigint-when-unsafe" || MapAsPairs.String() != "pairs" {
		t.Error("unexpected mode names")
	}
}
