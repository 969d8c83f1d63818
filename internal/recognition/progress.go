package recognition

import "sync/atomic"

// Tracker keeps the latest recognition progress value. Engines may tick many
// times per run and out of order; the tracker clamps to max-seen so readers
// always observe a monotonically non-decreasing value in [0,100].
type Tracker struct {
	v atomic.Int64
}

// Report records a progress tick. Values outside [0,100] are clamped and
// values below the current one are ignored.
func (t *Tracker) Report(p int) {
	if p < 0 {
		p = 0
	}
	if p > 100 {
		p = 100
	}
	for {
		cur := t.v.Load()
		if int64(p) <= cur {
			return
		}
		if t.v.CompareAndSwap(cur, int64(p)) {
			return
		}
	}
}

// Value returns the last reported progress.
func (t *Tracker) Value() int {
	return int(t.v.Load())
}

// Reset rewinds the tracker before a new recognition run.
func (t *Tracker) Reset() {
	t.v.Store(0)
}
