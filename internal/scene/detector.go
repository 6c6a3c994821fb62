package scene

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os/exec"
	"regexp"
	"sort"
	"strconv"
)

// Detection methods, recorded on each SceneChange.
const (
	MethodStructural = "structural"
	MethodHistogram  = "histogram"
	MethodContent    = "content"
)

// SceneChange is a detected discontinuity between consecutive frames.
type SceneChange struct {
	Timestamp  float64
	Confidence float64
	Method     string
}

// Options controls detection thresholds and the minimum-spacing gate.
type Options struct {
	SceneChangeThreshold   float64
	HistogramThreshold     float64
	MinTimeBetweenCaptures float64
	SkipIntroOutro         bool
	IntroOutroDuration     float64
}

// Detector finds slide transitions in a sampled frame sequence. It carries
// the timestamp of the most recently accepted change across calls, so a
// single instance enforces minimum spacing over an entire video. Detector is
// not safe for concurrent use; create one per video.
type Detector struct {
	opts            Options
	engine          *SimilarityEngine
	lastCaptureTime float64
}

func NewDetector(opts Options) *Detector {
	return &Detector{
		opts:   opts,
		engine: NewSimilarityEngine(),
	}
}

// DetectScenes runs both similarity sub-detectors over the frame sequence,
// pools the candidates in timestamp order, and applies the minimum-time
// gate. Fewer than two frames yields no changes. The scan checks ctx between
// frame pairs; partial results on cancellation are discarded.
func (d *Detector) DetectScenes(ctx context.Context, frames []Frame) ([]SceneChange, error) {
	if len(frames) < 2 {
		return nil, nil
	}

	log.Printf("Detecting scene changes across %d frames", len(frames))

	structural, err := d.detectStructuralChanges(ctx, frames)
	if err != nil {
		return nil, err
	}
	histogram, err := d.detectHistogramChanges(ctx, frames)
	if err != nil {
		return nil, err
	}

	candidates := append(structural, histogram...)
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Timestamp < candidates[j].Timestamp
	})

	// Minimum-time gate: first candidate in timestamp order wins, later
	// candidates inside the gate window are dropped regardless of
	// confidence. Confidence-based resolution happens only in
	// MergeNearbyChanges.
	var accepted []SceneChange
	for _, c := range candidates {
		if c.Timestamp-d.lastCaptureTime >= d.opts.MinTimeBetweenCaptures {
			accepted = append(accepted, c)
			d.lastCaptureTime = c.Timestamp
		}
	}

	log.Printf("Detected %d significant scene changes", len(accepted))
	return accepted, nil
}

func (d *Detector) detectStructuralChanges(ctx context.Context, frames []Frame) ([]SceneChange, error) {
	var changes []SceneChange

	for i := 1; i < len(frames); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		confidence := d.engine.StructuralConfidence(frames[i-1], frames[i])
		if confidence > d.opts.SceneChangeThreshold {
			changes = append(changes, SceneChange{
				Timestamp:  frames[i].Timestamp,
				Confidence: confidence,
				Method:     MethodStructural,
			})
		}
	}

	return changes, nil
}

func (d *Detector) detectHistogramChanges(ctx context.Context, frames []Frame) ([]SceneChange, error) {
	var changes []SceneChange

	for i := 1; i < len(frames); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		confidence := d.engine.HistogramConfidence(frames[i-1], frames[i])
		if confidence > d.opts.HistogramThreshold {
			changes = append(changes, SceneChange{
				Timestamp:  frames[i].Timestamp,
				Confidence: confidence,
				Method:     MethodHistogram,
			})
		}
	}

	return changes, nil
}

// FilterChangesByConfidence keeps changes at or above the threshold.
func FilterChangesByConfidence(changes []SceneChange, minConfidence float64) []SceneChange {
	var filtered []SceneChange
	for _, c := range changes {
		if c.Confidence >= minConfidence {
			filtered = append(filtered, c)
		}
	}
	return filtered
}

// MergeNearbyChanges collapses changes within timeThreshold of the last kept
// change, keeping the higher-confidence one. On equal confidence the
// first-seen change wins. Input must be sorted by timestamp.
func MergeNearbyChanges(changes []SceneChange, timeThreshold float64) []SceneChange {
	if len(changes) == 0 {
		return nil
	}

	merged := []SceneChange{changes[0]}

	for _, c := range changes[1:] {
		last := merged[len(merged)-1]
		if c.Timestamp-last.Timestamp <= timeThreshold {
			if c.Confidence > last.Confidence {
				merged[len(merged)-1] = c
			}
		} else {
			merged = append(merged, c)
		}
	}

	return merged
}

// SkipIntroOutro drops changes inside the configured intro and outro
// sections. It is a no-op when the feature is disabled.
func (d *Detector) SkipIntroOutro(changes []SceneChange, videoDuration float64) []SceneChange {
	if !d.opts.SkipIntroOutro {
		return changes
	}

	var filtered []SceneChange
	for _, c := range changes {
		if c.Timestamp < d.opts.IntroOutroDuration {
			continue
		}
		if c.Timestamp > videoDuration-d.opts.IntroOutroDuration {
			continue
		}
		filtered = append(filtered, c)
	}

	return filtered
}

// ffmpeg showinfo lines carry the presentation timestamp of frames that
// passed the scene filter.
var ptsTimeRe = regexp.MustCompile(`pts_time:([0-9]+\.?[0-9]*)`)

// Fixed confidence for content-detected changes; the ffmpeg scene filter
// does not report one.
const contentConfidence = 0.8

// DetectScenesAdvanced is the fallback path when the frame-based detectors
// find nothing. It runs ffmpeg's content-based scene filter directly on the
// video file and applies the same minimum-time gate.
func (d *Detector) DetectScenesAdvanced(ctx context.Context, videoPath string) ([]SceneChange, error) {
	ffmpegPath, err := exec.LookPath("ffmpeg")
	if err != nil {
		return nil, fmt.Errorf("ffmpeg not found in PATH: %w", err)
	}

	filter := fmt.Sprintf("select='gt(scene,%.3f)',showinfo", d.opts.SceneChangeThreshold)
	cmd := exec.CommandContext(ctx, ffmpegPath,
		"-i", videoPath,
		"-vf", filter,
		"-f", "null",
		"-")

	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to open ffmpeg stderr: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start ffmpeg: %w", err)
	}

	var changes []SceneChange
	scanner := bufio.NewScanner(stderr)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		m := ptsTimeRe.FindStringSubmatch(scanner.Text())
		if m == nil {
			continue
		}
		timestamp, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}

		if timestamp-d.lastCaptureTime >= d.opts.MinTimeBetweenCaptures {
			changes = append(changes, SceneChange{
				Timestamp:  timestamp,
				Confidence: contentConfidence,
				Method:     MethodContent,
			})
			d.lastCaptureTime = timestamp
		}
	}

	if err := cmd.Wait(); err != nil {
		return nil, fmt.Errorf("ffmpeg scene detection failed: %w", err)
	}

	log.Printf("Content-based detection found %d scene changes", len(changes))
	return changes, nil
}
