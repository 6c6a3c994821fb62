package transcript

import (
	"fmt"
	"io"
	"os"
)

// SaveOriginal writes the transcript with timestamps to a plain-text file.
func SaveOriginal(segments []Segment, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create transcript file: %w", err)
	}
	defer f.Close()

	return writeReport(f, segments, false)
}

// SaveEnhanced writes the transcript including enhanced text where it
// differs from the original.
func SaveEnhanced(segments []Segment, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create transcript file: %w", err)
	}
	defer f.Close()

	return writeReport(f, segments, true)
}

func writeReport(w io.Writer, segments []Segment, enhanced bool) error {
	title := "Original Transcript with Timestamps"
	if enhanced {
		title = "Enhanced Transcript with Timestamps"
	}
	fmt.Fprintf(w, "%s\n%s\n\n", title, separator)

	enhancedCount := 0
	for i, seg := range segments {
		fmt.Fprintf(w, "Segment %d [%s - %s]\n", i+1, FormatTimestamp(seg.Start), FormatTimestamp(seg.End))

		if enhanced && seg.Enhanced != "" && seg.Enhanced != seg.Text {
			fmt.Fprintf(w, "Enhanced: %s\n", seg.Enhanced)
			fmt.Fprintf(w, "Original: %s\n", seg.Text)
			enhancedCount++
		} else {
			fmt.Fprintf(w, "%s\n", seg.Text)
		}
		fmt.Fprintln(w)
	}

	stats := Statistics(segments)
	fmt.Fprintf(w, "\n%s\n", separator)
	fmt.Fprintf(w, "Total segments: %d\n", stats.TotalSegments)
	fmt.Fprintf(w, "Total words: %d\n", stats.TotalWords)
	fmt.Fprintf(w, "Duration: %.2f seconds\n", stats.TotalDuration)
	if enhanced && len(segments) > 0 {
		fmt.Fprintf(w, "Enhanced segments: %d\n", enhancedCount)
		fmt.Fprintf(w, "Enhancement coverage: %.1f%%\n", float64(enhancedCount)/float64(len(segments))*100)
	}

	return nil
}

const separator = "=================================================="
