package document

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dkarpov/slidecast/internal/config"
	"github.com/dkarpov/slidecast/internal/scene"
)

func testConfig(t *testing.T, format string) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.OutputDirectory = t.TempDir()
	cfg.OutputFormat = format
	return cfg
}

func sampleSlides() []Slide {
	return []Slide{
		{Number: 1, Timestamp: 0, EndTime: 60, ScreenshotPath: "pics/screenshot_001.png", Transcript: "intro material"},
		{Number: 2, Timestamp: 60, EndTime: 120, ScreenshotPath: "pics/screenshot_002.png",
			Transcript: "raw text", Enhanced: "Polished text.", KeyPoints: []string{"main idea"}},
	}
}

func TestGenerator_HTML(t *testing.T) {
	cfg := testConfig(t, "html")
	gen := NewGenerator(cfg)

	path, err := gen.Generate(sampleSlides(), "Test Lecture", 120, "test.html")
	if err != nil {
		t.Fatalf("Failed to generate html: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	html := string(content)

	for _, want := range []string{
		"Test Lecture",
		"Slide 1",
		"intro material",
		"Polished text.",
		"main idea",
		`id="slide-2"`,
		"pics/screenshot_001.png",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("Expected html to contain %q", want)
		}
	}
}

func TestGenerator_Markdown(t *testing.T) {
	cfg := testConfig(t, "markdown")
	gen := NewGenerator(cfg)

	path, err := gen.Generate(sampleSlides(), "Test Lecture", 120, "test.md")
	if err != nil {
		t.Fatalf("Failed to generate markdown: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	md := string(content)

	for _, want := range []string{
		"# Test Lecture",
		"## Table of Contents",
		"## Slide 1",
		"**Enhanced Transcript:**",
		"Polished text.",
		"- main idea",
		"![Slide 1](pics/screenshot_001.png)",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("Expected markdown to contain %q", want)
		}
	}
}

func TestGenerator_UnsupportedFormat(t *testing.T) {
	cfg := testConfig(t, "docx")
	gen := NewGenerator(cfg)

	if _, err := gen.Generate(sampleSlides(), "Test", 10, "test.docx"); err == nil {
		t.Error("Expected error for unsupported format, got nil")
	}
}

func TestGenerator_OutputFilename(t *testing.T) {
	cfg := testConfig(t, "html")
	gen := NewGenerator(cfg)

	if got := gen.OutputFilename("My Great Talk!"); got != "my-great-talk.html" {
		t.Errorf("Expected my-great-talk.html, got %s", got)
	}

	cfg.OutputFormat = "markdown"
	if got := gen.OutputFilename(""); got != "presentation.md" {
		t.Errorf("Expected presentation.md, got %s", got)
	}
}

func TestSaveScreenshots(t *testing.T) {
	dir := t.TempDir()

	frames := []scene.Frame{
		{Timestamp: 0, Width: 4, Height: 4, Pixels: make([]byte, 4*4*3)},
		{Timestamp: 60, Width: 4, Height: 4, Pixels: make([]byte, 4*4*3)},
	}
	slides := []Slide{
		{Number: 1, Timestamp: 2, ScreenshotPath: filepath.Join("pics", "screenshot_001.png")},
		{Number: 2, Timestamp: 58, ScreenshotPath: filepath.Join("pics", "screenshot_002.png")},
	}

	paths, err := SaveScreenshots(dir, slides, frames, "png")
	if err != nil {
		t.Fatalf("Failed to save screenshots: %v", err)
	}

	if len(paths) != 2 {
		t.Fatalf("Expected 2 screenshot paths, got %d", len(paths))
	}
	for _, p := range paths {
		if _, err := os.Stat(filepath.Join(dir, p)); err != nil {
			t.Errorf("Expected screenshot file %s to exist: %v", p, err)
		}
	}
}

func TestSaveScreenshots_NoFrames(t *testing.T) {
	dir := t.TempDir()
	slides := []Slide{{Number: 1, Timestamp: 2, ScreenshotPath: "pics/screenshot_001.png"}}

	paths, err := SaveScreenshots(dir, slides, nil, "png")
	if err != nil {
		t.Fatalf("Expected no error with empty frames, got %v", err)
	}
	if len(paths) != 1 {
		t.Errorf("Expected placeholder path, got %d paths", len(paths))
	}
}
