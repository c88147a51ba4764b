package domain

// DefaultWindowCapacity is the number of samples the chart surface renders.
const DefaultWindowCapacity = 60

// Window is a bounded, order-preserving rolling history of samples.
// Insertion order is chronological order; once capacity is reached the
// oldest sample is evicted on every append. Samples are never mutated after
// insertion. Not safe for concurrent use; callers synchronize.
type Window struct {
	capacity int
	samples  []Sample
}

// NewWindow creates a window with the given capacity. Non-positive
// capacities fall back to DefaultWindowCapacity.
func NewWindow(capacity int) *Window {
	if capacity <= 0 {
		capacity = DefaultWindowCapacity
	}
	return &Window{
		capacity: capacity,
		samples:  make([]Sample, 0, capacity),
	}
}

// Append adds a sample to the end of the window, evicting the single oldest
// sample if the capacity would otherwise be exceeded.
func (w *Window) Append(s Sample) {
	if len(w.samples) == w.capacity {
		copy(w.samples, w.samples[1:])
		w.samples = w.samples[:len(w.samples)-1]
	}
	w.samples = append(w.samples, s)
}

// Samples returns the full ordered sequence as a copy.
func (w *Window) Samples() []Sample {
	out := make([]Sample, len(w.samples))
	copy(out, w.samples)
	return out
}

// Len returns the number of samples currently held.
func (w *Window) Len() int {
	return len(w.samples)
}

// Last returns the most recent sample, if any.
func (w *Window) Last() (Sample, bool) {
	if len(w.samples) == 0 {
		return Sample{}, false
	}
	return w.samples[len(w.samples)-1], true
}

// Capacity returns the fixed capacity of the window.
func (w *Window) Capacity() int {
	return w.capacity
}
