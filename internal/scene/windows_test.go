package scene

import (
	"math"
	"testing"
)

func changesAt(timestamps ...float64) []SceneChange {
	changes := make([]SceneChange, len(timestamps))
	for i, ts := range timestamps {
		changes[i] = SceneChange{Timestamp: ts, Confidence: 0.8, Method: MethodStructural}
	}
	return changes
}

func TestPartitionWindowsEmpty(t *testing.T) {
	if windows := PartitionWindows(nil, 300); windows != nil {
		t.Errorf("expected nil for empty change list, got %+v", windows)
	}
}

func TestPartitionWindowsSingleChange(t *testing.T) {
	windows := PartitionWindows(changesAt(45), 300)
	if len(windows) != 2 {
		t.Fatalf("expected 2 windows, got %d", len(windows))
	}
	// [0, 45+300] split at the 300s cap: [0, 300], [300, 345].
	if windows[0].Start != 0 || windows[0].End != 300 {
		t.Errorf("first window = [%.0f, %.0f], want [0, 300]", windows[0].Start, windows[0].End)
	}
	if windows[1].Start != 300 || windows[1].End != 345 {
		t.Errorf("second window = [%.0f, %.0f], want [300, 345]", windows[1].Start, windows[1].End)
	}
}

func TestPartitionWindowsCoverage(t *testing.T) {
	const limit = 120.0
	cases := [][]float64{
		{35},
		{35, 80, 400},
		{10, 12, 500, 900, 901},
	}

	for _, timestamps := range cases {
		changes := changesAt(timestamps...)
		windows := PartitionWindows(changes, limit)

		if len(windows) == 0 {
			t.Fatalf("no windows for changes %v", timestamps)
		}
		if windows[0].Start != 0 {
			t.Errorf("first window starts at %f, want 0", windows[0].Start)
		}

		wantEnd := timestamps[len(timestamps)-1] + limit
		if got := windows[len(windows)-1].End; math.Abs(got-wantEnd) > 1e-9 {
			t.Errorf("last window ends at %f, want %f", got, wantEnd)
		}

		for i, w := range windows {
			if w.Start >= w.End {
				t.Errorf("window %d has start >= end: %+v", i, w)
			}
			if w.Duration() > limit+1e-9 {
				t.Errorf("window %d longer than limit: %+v", i, w)
			}
			if w.Index != i {
				t.Errorf("window %d has index %d", i, w.Index)
			}
			if i > 0 && windows[i-1].End != w.Start {
				t.Errorf("gap or overlap between windows %d and %d", i-1, i)
			}
		}
	}
}

func TestFilterWindowsWithContent(t *testing.T) {
	windows := PartitionWindows(changesAt(60, 120, 180), 300)

	// Pretend only the range [100, 200] has transcript coverage.
	kept := FilterWindowsWithContent(windows, func(w SlideWindow) bool {
		return w.Start <= 200 && w.End >= 100
	})

	if len(kept) == 0 {
		t.Fatal("expected surviving windows")
	}
	for i, w := range kept {
		if w.Index != i {
			t.Errorf("kept window %d not reindexed: %+v", i, w)
		}
		if w.Start > 200 || w.End < 100 {
			t.Errorf("window without content survived: %+v", w)
		}
	}
}
