package document

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/dkarpov/slidecast/internal/scene"
)

const jpegQuality = 90

// SaveScreenshots writes one image per slide into a pics directory under
// outputDir, picking the extracted frame closest to each slide's start time.
// It returns the relative paths in slide order.
func SaveScreenshots(outputDir string, slides []Slide, frames []scene.Frame, format string) ([]string, error) {
	picsDir := filepath.Join(outputDir, "pics")
	if err := os.MkdirAll(picsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create screenshot directory: %w", err)
	}

	var paths []string
	for _, slide := range slides {
		frame := closestFrame(frames, slide.Timestamp)
		if frame == nil {
			paths = append(paths, slide.ScreenshotPath)
			continue
		}

		fullPath := filepath.Join(outputDir, slide.ScreenshotPath)
		if err := writeImage(fullPath, frame, format); err != nil {
			return nil, fmt.Errorf("failed to save screenshot %d: %w", slide.Number, err)
		}
		paths = append(paths, slide.ScreenshotPath)
	}

	return paths, nil
}

func closestFrame(frames []scene.Frame, timestamp float64) *scene.Frame {
	var best *scene.Frame
	minDiff := math.Inf(1)
	for i := range frames {
		diff := math.Abs(frames[i].Timestamp - timestamp)
		if diff < minDiff {
			minDiff = diff
			best = &frames[i]
		}
	}
	return best
}

func writeImage(path string, frame *scene.Frame, format string) error {
	img := image.NewRGBA(image.Rect(0, 0, frame.Width, frame.Height))
	for i := 0; i < frame.Width*frame.Height; i++ {
		img.Pix[i*4+0] = frame.Pixels[i*3+0]
		img.Pix[i*4+1] = frame.Pixels[i*3+1]
		img.Pix[i*4+2] = frame.Pixels[i*3+2]
		img.Pix[i*4+3] = 0xff
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create image file: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(format) {
	case "jpg", "jpeg":
		if err := jpeg.Encode(f, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
			return fmt.Errorf("failed to encode jpeg: %w", err)
		}
	default:
		if err := png.Encode(f, img); err != nil {
			return fmt.Errorf("failed to encode png: %w", err)
		}
	}
	return nil
}
