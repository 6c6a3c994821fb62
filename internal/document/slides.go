package document

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dkarpov/slidecast/internal/scene"
	"github.com/dkarpov/slidecast/internal/transcript"
)

// Slide is one renderable page of the generated presentation: a screenshot
// plus the speech that was delivered while it was on screen.
type Slide struct {
	Number         int
	Timestamp      float64
	EndTime        float64
	ScreenshotPath string
	Transcript     string
	Enhanced       string
	KeyPoints      []string
}

// HasEnhanced reports whether the slide carries enhanced text that differs
// from the raw transcript.
func (s Slide) HasEnhanced() bool {
	return s.Enhanced != "" && s.Enhanced != s.Transcript
}

// BuildSlides materializes slides from time windows and transcript segments.
// Windows with no overlapping speech produce no slide; numbering is
// sequential over the slides that remain.
func BuildSlides(windows []scene.SlideWindow, segments []transcript.Segment, screenshotFormat string) []Slide {
	var slides []Slide

	for _, w := range windows {
		inRange := transcript.SegmentsInRange(segments, w.Start, w.End)
		if len(inRange) == 0 {
			continue
		}

		var originals, enhanced []string
		for _, seg := range inRange {
			if seg.Text != "" {
				originals = append(originals, seg.Text)
			}
			enhanced = append(enhanced, seg.DisplayText())
		}

		number := len(slides) + 1
		slides = append(slides, Slide{
			Number:         number,
			Timestamp:      w.Start,
			EndTime:        w.End,
			ScreenshotPath: screenshotRelPath(number, screenshotFormat),
			Transcript:     transcript.CleanText(strings.Join(originals, " ")),
			Enhanced:       stripMarkdown(transcript.CleanText(strings.Join(enhanced, " "))),
		})
	}

	return slides
}

func screenshotRelPath(number int, format string) string {
	return filepath.Join("pics", fmt.Sprintf("screenshot_%03d.%s", number, strings.ToLower(format)))
}
