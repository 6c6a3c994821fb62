package document

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dkarpov/slidecast/internal/config"
)

// Generator renders built slides into a presentation document.
type Generator struct {
	cfg *config.Config
}

func NewGenerator(cfg *config.Config) *Generator {
	return &Generator{cfg: cfg}
}

// Generate writes the presentation in the configured output format and
// returns the path of the generated file.
func (g *Generator) Generate(slides []Slide, title string, duration float64, outputFilename string) (string, error) {
	if err := os.MkdirAll(g.cfg.OutputDirectory, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	outputPath := filepath.Join(g.cfg.OutputDirectory, outputFilename)

	switch strings.ToLower(g.cfg.OutputFormat) {
	case "html":
		if err := g.writeHTML(outputPath, slides, title, duration); err != nil {
			return "", err
		}
	case "markdown", "md":
		if err := g.writeMarkdown(outputPath, slides, title, duration); err != nil {
			return "", err
		}
	default:
		return "", fmt.Errorf("unsupported output format: %s", g.cfg.OutputFormat)
	}

	return outputPath, nil
}

// OutputFilename derives the document filename from a video title.
func (g *Generator) OutputFilename(title string) string {
	name := sanitizeFilename(title)
	if name == "" {
		name = "presentation"
	}
	switch strings.ToLower(g.cfg.OutputFormat) {
	case "markdown", "md":
		return name + ".md"
	default:
		return name + ".html"
	}
}

func sanitizeFilename(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteByte('-')
		}
	}
	return strings.Trim(b.String(), "-")
}

// formatTimestamp renders seconds as MM:SS, or HH:MM:SS past the hour mark.
func formatTimestamp(seconds float64) string {
	total := int(seconds)
	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%02d:%02d", minutes, secs)
}

func formatDuration(seconds float64) string {
	switch {
	case seconds < 60:
		return fmt.Sprintf("%.1f seconds", seconds)
	case seconds < 3600:
		return fmt.Sprintf("%.1f minutes", seconds/60)
	default:
		return fmt.Sprintf("%.1f hours", seconds/3600)
	}
}

func generatedDate() string {
	return time.Now().Format("2006-01-02 15:04:05")
}
