package enhance

import (
	"regexp"
	"strings"

	"github.com/dkarpov/slidecast/internal/transcript"
)

var sentenceSplitRe = regexp.MustCompile(`[.!?]+`)

// DistributeText splits enhanced batch text back across the batch's original
// segments, proportionally by sentence count. The mapping is best-effort: a
// specific enhanced sentence is not guaranteed to align with its originating
// segment. Segments with no sentences left fall back to their original text.
func DistributeText(enhanced string, segments []transcript.Segment) []string {
	if len(segments) == 0 {
		return nil
	}

	var sentences []string
	for _, s := range sentenceSplitRe.Split(enhanced, -1) {
		if s = strings.TrimSpace(s); s != "" {
			sentences = append(sentences, s)
		}
	}

	perSegment := len(sentences) / len(segments)
	remainder := len(sentences) % len(segments)

	result := make([]string, len(segments))
	index := 0
	for i, seg := range segments {
		count := perSegment
		if i < remainder {
			count++
		}

		if index < len(sentences) {
			end := index + count
			if end > len(sentences) {
				end = len(sentences)
			}
			result[i] = strings.Join(sentences[index:end], ". ") + "."
			index = end
		} else {
			result[i] = seg.Text
		}
	}

	return result
}
