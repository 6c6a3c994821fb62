package document

import (
	"fmt"
	"os"
	"strings"
)

func (g *Generator) writeMarkdown(outputPath string, slides []Slide, title string, duration float64) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "*Generated on %s*\n\n", generatedDate())
	fmt.Fprintf(&b, "**Video Duration:** %s\n", formatDuration(duration))
	fmt.Fprintf(&b, "**Total Slides:** %d\n\n", len(slides))

	enhancedCount := 0
	for _, slide := range slides {
		if slide.HasEnhanced() {
			enhancedCount++
		}
	}
	if enhancedCount > 0 {
		fmt.Fprintf(&b, "**Enhanced Content:** %d slides have AI-enhanced transcripts\n\n", enhancedCount)
	}

	if g.cfg.IncludeNavigation {
		b.WriteString("## Table of Contents\n\n")
		for _, slide := range slides {
			fmt.Fprintf(&b, "- [Slide %d (%s)](#slide-%d)\n", slide.Number, formatTimestamp(slide.Timestamp), slide.Number)
		}
		b.WriteString("\n---\n\n")
	}

	for _, slide := range slides {
		fmt.Fprintf(&b, "## Slide %d\n\n", slide.Number)

		if g.cfg.IncludeTimestamps {
			fmt.Fprintf(&b, "**Timestamp:** %s\n\n", formatTimestamp(slide.Timestamp))
		}

		fmt.Fprintf(&b, "![Slide %d](%s)\n\n", slide.Number, slide.ScreenshotPath)

		if slide.HasEnhanced() {
			b.WriteString("**Enhanced Transcript:**\n\n")
			fmt.Fprintf(&b, "%s\n\n", slide.Enhanced)

			if len(slide.KeyPoints) > 0 {
				b.WriteString("**Key Points:**\n\n")
				for _, point := range slide.KeyPoints {
					fmt.Fprintf(&b, "- %s\n", point)
				}
				b.WriteString("\n")
			}

			if slide.Transcript != "" {
				b.WriteString("<details>\n<summary>Original Transcript</summary>\n\n")
				fmt.Fprintf(&b, "%s\n\n", slide.Transcript)
				b.WriteString("</details>\n\n")
			}
		} else if slide.Transcript != "" {
			b.WriteString("**Transcript:**\n\n")
			fmt.Fprintf(&b, "%s\n\n", slide.Transcript)
		} else {
			b.WriteString("*No transcript available for this slide.*\n\n")
		}

		b.WriteString("---\n\n")
	}

	if err := os.WriteFile(outputPath, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("failed to write markdown file: %w", err)
	}
	return nil
}
