package sim

// history is the growable temperature-state buffer owned by one Analysis.
//
// The buffer is a sequence of blocks of blockLen values. Block 0 holds the
// state as of the previous window; blocks 1..steps receive the states
// computed in the current window. Capacity is tracked by the backing slice
// and never shrinks; the logical length is len(data).
type history struct {
	blockLen int
	data     []float64
}

func newHistory(blockLen int) *history {
	return &history{blockLen: blockLen, data: make([]float64, blockLen)}
}

// ensureCapacity grows the backing array to hold at least required values,
// carrying block 0 over. It reports whether a new zeroed array was allocated.
func (h *history) ensureCapacity(required int) bool {
	if cap(h.data) >= required {
		return false
	}
	grown := make([]float64, required)
	copy(grown, h.data[:h.blockLen])
	h.data = grown
	return true
}

// advanceWindow starts a new window of the given number of steps. The last
// block of the previous window becomes block 0 and every following block is
// zero, ready for accumulation.
func (h *history) advanceWindow(steps int) {
	n := h.blockLen
	required := (steps + 1) * n
	copy(h.data[:n], h.data[len(h.data)-n:])
	if h.ensureCapacity(required) {
		return
	}
	h.data = h.data[:required]
	clear(h.data[n:])
}

// block returns block i of the current window.
func (h *history) block(i int) []float64 {
	return h.data[i*h.blockLen : (i+1)*h.blockLen]
}

// window returns blocks 1..steps as one contiguous slice.
func (h *history) window() []float64 {
	return h.data[h.blockLen:]
}

// last returns the most recent state.
func (h *history) last() []float64 {
	return h.data[len(h.data)-h.blockLen:]
}
