package recognition

import "testing"

func TestTrackerMonotonic(t *testing.T) {
	var tr Tracker
	ticks := []int{0, 10, 40, 30, 90, 60, 100}
	max := 0
	for _, p := range ticks {
		tr.Report(p)
		if p > max {
			max = p
		}
		if got := tr.Value(); got != max {
			t.Fatalf("after Report(%d): Value() = %d, want %d", p, got, max)
		}
	}
}

func TestTrackerClamps(t *testing.T) {
	var tr Tracker
	tr.Report(-5)
	if tr.Value() != 0 {
		t.Fatalf("Value() = %d after negative tick", tr.Value())
	}
	tr.Report(150)
	if tr.Value() != 100 {
		t.Fatalf("Value() = %d after oversized tick", tr.Value())
	}
}

func TestTrackerReset(t *testing.T) {
	var tr Tracker
	tr.Report(80)
	tr.Reset()
	if tr.Value() != 0 {
		t.Fatalf("Value() = %d after reset", tr.Value())
	}
	tr.Report(10)
	if tr.Value() != 10 {
		t.Fatal("tracker must advance again after reset")
	}
}
