package enhance

import (
	"math"
	"strings"

	"github.com/dkarpov/slidecast/internal/transcript"
)

// Soft bounds around the target batch size. A batch is closed once adding
// the next segment would exceed maxTokensFactor×target and the batch already
// holds at least minTokensFactor×target.
const (
	maxTokensFactor = 1.5
	minTokensFactor = 0.7
)

// charsPerToken is the conservative character-to-token ratio used for
// estimation.
const charsPerToken = 3.5

// EstimateTokens approximates the token count of a text string.
func EstimateTokens(text string) int {
	n := int(math.Ceil(float64(len(text)) / charsPerToken))
	if n < 1 {
		return 1
	}
	return n
}

// Batch is a contiguous group of transcript segments packed for a single
// enhancement call.
type Batch struct {
	Segments []transcript.Segment
	Tokens   int
}

// CombinedText joins the batch's segment text into the single string sent
// for enhancement.
func (b Batch) CombinedText() string {
	parts := make([]string, len(b.Segments))
	for i, seg := range b.Segments {
		parts[i] = seg.Text
	}
	return strings.Join(parts, " ")
}

// Packer groups ordered segments into token-bounded batches.
type Packer struct {
	TargetTokens int
	Enabled      bool
}

// Pack partitions segments into contiguous batches approximating
// TargetTokens each. Order is preserved, nothing is dropped or duplicated,
// and the final batch is flushed even when under the minimum. A single
// segment larger than the cap becomes an oversized singleton batch. When
// batching is disabled, every segment is its own batch.
func (p Packer) Pack(segments []transcript.Segment) []Batch {
	if !p.Enabled {
		batches := make([]Batch, len(segments))
		for i, seg := range segments {
			batches[i] = Batch{
				Segments: []transcript.Segment{seg},
				Tokens:   EstimateTokens(seg.Text),
			}
		}
		return batches
	}

	maxTokens := int(float64(p.TargetTokens) * maxTokensFactor)
	minTokens := int(float64(p.TargetTokens) * minTokensFactor)

	var batches []Batch
	var current Batch

	for _, seg := range segments {
		segmentTokens := EstimateTokens(seg.Text)

		if current.Tokens+segmentTokens > maxTokens && current.Tokens >= minTokens {
			batches = append(batches, current)
			current = Batch{
				Segments: []transcript.Segment{seg},
				Tokens:   segmentTokens,
			}
		} else {
			current.Segments = append(current.Segments, seg)
			current.Tokens += segmentTokens
		}
	}

	if len(current.Segments) > 0 {
		batches = append(batches, current)
	}

	return batches
}
