package scene

import (
	"context"
	"testing"
)

func testOptions() Options {
	return Options{
		SceneChangeThreshold:   0.3,
		HistogramThreshold:     0.15,
		MinTimeBetweenCaptures: 1.0,
		SkipIntroOutro:         true,
		IntroOutroDuration:     30.0,
	}
}

// alternating solid frames guarantee both sub-detectors fire on every pair.
func alternatingFrames(timestamps []float64) []Frame {
	frames := make([]Frame, len(timestamps))
	for i, ts := range timestamps {
		if i%2 == 0 {
			frames[i] = solidFrame(ts, 64, 48, 0, 0, 0)
		} else {
			frames[i] = solidFrame(ts, 64, 48, 255, 255, 255)
		}
	}
	return frames
}

func TestDetectScenesRequiresTwoFrames(t *testing.T) {
	d := NewDetector(testOptions())

	changes, err := d.DetectScenes(context.Background(), nil)
	if err != nil {
		t.Fatalf("DetectScenes failed: %v", err)
	}
	if len(changes) != 0 {
		t.Errorf("expected no changes for empty input, got %d", len(changes))
	}

	changes, err = d.DetectScenes(context.Background(), alternatingFrames([]float64{5.0}))
	if err != nil {
		t.Fatalf("DetectScenes failed: %v", err)
	}
	if len(changes) != 0 {
		t.Errorf("expected no changes for single frame, got %d", len(changes))
	}
}

func TestMinimumTimeGateMonotonic(t *testing.T) {
	d := NewDetector(testOptions())
	frames := alternatingFrames([]float64{0.0, 0.5, 1.0, 1.5, 2.0, 4.0, 4.2, 7.0})

	changes, err := d.DetectScenes(context.Background(), frames)
	if err != nil {
		t.Fatalf("DetectScenes failed: %v", err)
	}
	if len(changes) == 0 {
		t.Fatal("expected changes from alternating frames")
	}

	last := 0.0
	for i, c := range changes {
		if c.Timestamp-last < d.opts.MinTimeBetweenCaptures {
			t.Errorf("change %d at %.2f violates minimum spacing from %.2f", i, c.Timestamp, last)
		}
		if i > 0 && c.Timestamp <= changes[i-1].Timestamp {
			t.Errorf("timestamps not strictly increasing at %d", i)
		}
		last = c.Timestamp
	}
}

func TestGateKeepsFirstSeenNotHighestConfidence(t *testing.T) {
	// Two transitions 0.3s apart with a 1s gate: the earlier one wins even
	// though the later pair is just as strong. This differs from the merge
	// step, where confidence breaks the tie.
	d := NewDetector(testOptions())
	frames := []Frame{
		solidFrame(9.5, 64, 48, 0, 0, 0),
		solidFrame(10.0, 64, 48, 255, 255, 255),
		solidFrame(10.3, 64, 48, 0, 0, 0),
	}

	changes, err := d.DetectScenes(context.Background(), frames)
	if err != nil {
		t.Fatalf("DetectScenes failed: %v", err)
	}
	if len(changes) != 1 {
		t.Fatalf("expected exactly one change, got %d", len(changes))
	}
	if changes[0].Timestamp != 10.0 {
		t.Errorf("gate kept change at %.2f, want 10.0", changes[0].Timestamp)
	}
}

func TestWatermarkPersistsAcrossCalls(t *testing.T) {
	d := NewDetector(testOptions())

	first, err := d.DetectScenes(context.Background(), alternatingFrames([]float64{9.0, 10.0}))
	if err != nil {
		t.Fatalf("DetectScenes failed: %v", err)
	}
	if len(first) != 1 || first[0].Timestamp != 10.0 {
		t.Fatalf("unexpected first pass result: %+v", first)
	}

	// A transition 0.5s after the accepted one must be gated out even
	// though it arrives in a separate call.
	second, err := d.DetectScenes(context.Background(), alternatingFrames([]float64{10.2, 10.5}))
	if err != nil {
		t.Fatalf("DetectScenes failed: %v", err)
	}
	if len(second) != 0 {
		t.Errorf("expected watermark to gate out change at 10.5, got %+v", second)
	}
}

func TestDetectScenesCancellation(t *testing.T) {
	d := NewDetector(testOptions())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := d.DetectScenes(ctx, alternatingFrames([]float64{0, 1, 2})); err == nil {
		t.Error("expected error from cancelled context")
	}
}

func TestFilterChangesByConfidence(t *testing.T) {
	changes := []SceneChange{
		{Timestamp: 1, Confidence: 0.2, Method: MethodStructural},
		{Timestamp: 2, Confidence: 0.5, Method: MethodHistogram},
		{Timestamp: 3, Confidence: 0.9, Method: MethodStructural},
	}

	filtered := FilterChangesByConfidence(changes, 0.5)
	if len(filtered) != 2 {
		t.Fatalf("expected 2 changes, got %d", len(filtered))
	}
	if filtered[0].Timestamp != 2 || filtered[1].Timestamp != 3 {
		t.Errorf("wrong changes kept: %+v", filtered)
	}

	// Re-filtering with the same threshold is idempotent.
	again := FilterChangesByConfidence(filtered, 0.5)
	if len(again) != len(filtered) {
		t.Errorf("re-filter changed result: %d vs %d", len(again), len(filtered))
	}
}

func TestMergeNearbyChangesKeepsHigherConfidence(t *testing.T) {
	changes := []SceneChange{
		{Timestamp: 10.0, Confidence: 0.5, Method: MethodStructural},
		{Timestamp: 10.5, Confidence: 0.8, Method: MethodHistogram},
	}

	merged := MergeNearbyChanges(changes, 1.0)
	if len(merged) != 1 {
		t.Fatalf("expected 1 merged change, got %d", len(merged))
	}
	if merged[0].Timestamp != 10.5 || merged[0].Confidence != 0.8 {
		t.Errorf("merge kept %+v, want change at 10.5 with confidence 0.8", merged[0])
	}
}

func TestMergeNearbyChangesFirstSeenWinsTies(t *testing.T) {
	changes := []SceneChange{
		{Timestamp: 10.0, Confidence: 0.8, Method: MethodStructural},
		{Timestamp: 10.5, Confidence: 0.8, Method: MethodHistogram},
		{Timestamp: 20.0, Confidence: 0.4, Method: MethodStructural},
	}

	merged := MergeNearbyChanges(changes, 1.0)
	if len(merged) != 2 {
		t.Fatalf("expected 2 changes, got %d", len(merged))
	}
	if merged[0].Timestamp != 10.0 {
		t.Errorf("tie should keep first-seen change, got %+v", merged[0])
	}
}

func TestSkipIntroOutro(t *testing.T) {
	d := NewDetector(testOptions())
	changes := []SceneChange{
		{Timestamp: 15, Confidence: 0.9},
		{Timestamp: 150, Confidence: 0.9},
		{Timestamp: 290, Confidence: 0.9},
	}

	filtered := d.SkipIntroOutro(changes, 300)
	if len(filtered) != 1 {
		t.Fatalf("expected 1 change, got %d", len(filtered))
	}
	if filtered[0].Timestamp != 150 {
		t.Errorf("kept change at %.0f, want 150", filtered[0].Timestamp)
	}
}

func TestSkipIntroOutroDisabled(t *testing.T) {
	opts := testOptions()
	opts.SkipIntroOutro = false
	d := NewDetector(opts)

	changes := []SceneChange{{Timestamp: 15, Confidence: 0.9}}
	filtered := d.SkipIntroOutro(changes, 300)
	if len(filtered) != 1 {
		t.Errorf("disabled trim should be a no-op, got %d changes", len(filtered))
	}
}
