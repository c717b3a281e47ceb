package transcoder

import (
	"strconv"
	"sync"

	"github.com/wippyai/hostvalue/errors"
)

const (
	// Pool limits to prevent memory bloat
	poolMaxPath  = 256
	poolInitPath = 16
)

// state is the per-call bookkeeping for one Encode or Decode. It never outlives
// the call, so concurrent calls share nothing.
type state struct {
	path  []string
	depth int
	limit int
	phase errors.Phase
}

var statePool = sync.Pool{
	New: func() any {
		return &state{path: make([]string, 0, poolInitPath)}
	},
}

func getState(phase errors.Phase, limit int) *state {
	st := statePool.Get().(*state)
	st.phase = phase
	st.limit = limit
	return st
}

func putState(st *state) {
	if st == nil || cap(st.path) > poolMaxPath {
		return // reject oversized
	}
	st.path = st.path[:0]
	st.depth = 0
	statePool.Put(st)
}

// enter descends one nesting level under the given path segment.
func (st *state) enter(seg string) error {
	st.path = append(st.path, seg)
	st.depth++
	if st.depth > st.limit {
		return errors.DepthExceeded(st.phase, st.snapshot(), st.limit)
	}
	return nil
}

func (st *state) enterIndex(i int) error {
	return st.enter("[" + strconv.Itoa(i) + "]")
}

func (st *state) leave() {
	st.path = st.path[:len(st.path)-1]
	st.depth--
}

// deeper descends one nesting level without a path segment (options, newtypes).
func (st *state) deeper() error {
	st.depth++
	if st.depth > st.limit {
		return errors.DepthExceeded(st.phase, st.snapshot(), st.limit)
	}
	return nil
}

func (st *state) shallower() {
	st.depth--
}

// snapshot copies the current path for use in an error.
func (st *state) snapshot() []string {
	if len(st.path) == 0 {
		return nil
	}
	out := make([]string, len(st.path))
	copy(out, st.path)
	return out
}
