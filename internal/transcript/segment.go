package transcript

import (
	"fmt"
	"regexp"
	"strings"
)

// Segment is one timed span of transcript text. Start and end come from the
// subtitle file and may overlap slightly at boundaries.
type Segment struct {
	Start    float64
	End      float64
	Text     string
	Enhanced string
}

// DisplayText returns the enhanced text when present, otherwise the
// original.
func (s Segment) DisplayText() string {
	if s.Enhanced != "" && s.Enhanced != s.Text {
		return s.Enhanced
	}
	return s.Text
}

// SegmentsInRange returns all segments overlapping [start, end]. The overlap
// test is inclusive on both ends.
func SegmentsInRange(segments []Segment, start, end float64) []Segment {
	var inRange []Segment
	for _, seg := range segments {
		if seg.Start <= end && seg.End >= start {
			inRange = append(inRange, seg)
		}
	}
	return inRange
}

var (
	whitespaceRe  = regexp.MustCompile(`\s+`)
	bracketedRe   = regexp.MustCompile(`\[.*?\]`)
	parentheticRe = regexp.MustCompile(`\(.*?\)`)
)

// CleanText normalizes whitespace and strips common subtitle artifacts like
// [Music] and (applause).
func CleanText(text string) string {
	text = bracketedRe.ReplaceAllString(text, "")
	text = parentheticRe.ReplaceAllString(text, "")
	text = whitespaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// CombinedText joins the original text of the segments, cleaned.
func CombinedText(segments []Segment) string {
	parts := make([]string, 0, len(segments))
	for _, seg := range segments {
		if seg.Text != "" {
			parts = append(parts, seg.Text)
		}
	}
	return CleanText(strings.Join(parts, " "))
}

// Stats summarizes a parsed transcript.
type Stats struct {
	TotalSegments  int
	TotalDuration  float64
	TotalWords     int
	WordsPerMinute float64
}

func Statistics(segments []Segment) Stats {
	if len(segments) == 0 {
		return Stats{}
	}

	var stats Stats
	stats.TotalSegments = len(segments)
	for _, seg := range segments {
		if seg.End > stats.TotalDuration {
			stats.TotalDuration = seg.End
		}
		stats.TotalWords += len(strings.Fields(seg.Text))
	}
	if stats.TotalDuration > 0 {
		stats.WordsPerMinute = float64(stats.TotalWords) / stats.TotalDuration * 60
	}
	return stats
}

// FormatTimestamp renders seconds as HH:MM:SS.
func FormatTimestamp(seconds float64) string {
	h := int(seconds) / 3600
	m := (int(seconds) % 3600) / 60
	s := int(seconds) % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
