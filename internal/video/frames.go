package video

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"os/exec"

	"github.com/dkarpov/slidecast/internal/scene"
)

// ExtractFrames samples frames between startTime and endTime at the
// configured frame rate, decoded to raw RGB at the configured analysis
// resolution. endTime <= 0 means the end of the video.
func (p *Processor) ExtractFrames(ctx context.Context, startTime, endTime float64) ([]scene.Frame, error) {
	if p.videoPath == "" {
		return nil, fmt.Errorf("no video loaded")
	}

	ffmpegPath, err := exec.LookPath("ffmpeg")
	if err != nil {
		return nil, fmt.Errorf("ffmpeg not found in PATH: %w", err)
	}

	if endTime <= 0 && p.metadata != nil {
		endTime = p.metadata.Duration
	}
	if endTime <= startTime {
		return nil, fmt.Errorf("invalid frame range [%.2f, %.2f]", startTime, endTime)
	}

	width := p.cfg.FrameWidth
	height := p.cfg.FrameHeight
	rate := p.cfg.FrameRate
	if rate <= 0 {
		rate = 1
	}

	args := []string{
		"-ss", fmt.Sprintf("%.3f", startTime),
		"-to", fmt.Sprintf("%.3f", endTime),
		"-i", p.videoPath,
		"-vf", fmt.Sprintf("fps=%g,scale=%d:%d", rate, width, height),
		"-f", "rawvideo",
		"-pix_fmt", "rgb24",
		"-",
	}

	cmd := exec.CommandContext(ctx, ffmpegPath, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to open ffmpeg stdout: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start ffmpeg: %w", err)
	}

	log.Printf("Extracting frames from %.2fs to %.2fs at %g fps", startTime, endTime, rate)

	frameSize := width * height * 3
	interval := 1.0 / rate

	var frames []scene.Frame
	for i := 0; ; i++ {
		if err := ctx.Err(); err != nil {
			cmd.Process.Kill()
			cmd.Wait()
			return nil, err
		}

		pixels := make([]byte, frameSize)
		if _, err := io.ReadFull(stdout, pixels); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				break
			}
			cmd.Wait()
			return nil, fmt.Errorf("failed to read frame data: %w", err)
		}

		frames = append(frames, scene.Frame{
			Timestamp: startTime + float64(i)*interval,
			Width:     width,
			Height:    height,
			Pixels:    pixels,
		})
	}

	if err := cmd.Wait(); err != nil {
		return nil, fmt.Errorf("ffmpeg frame extraction failed: %w: %s", err, stderr.String())
	}

	log.Printf("Extracted %d frames", len(frames))
	return frames, nil
}
