package video

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dkarpov/slidecast/internal/config"
)

// Metadata describes a downloaded or local video.
type Metadata struct {
	Title       string
	Duration    float64
	Width       int
	Height      int
	VideoID     string
	UploadDate  string
	Description string
}

// Processor handles video acquisition and frame extraction through yt-dlp
// and ffmpeg.
type Processor struct {
	cfg       *config.Config
	tempDir   string
	videoPath string
	metadata  *Metadata
}

func NewProcessor(cfg *config.Config) *Processor {
	return &Processor{cfg: cfg}
}

// VideoPath returns the path of the acquired video file.
func (p *Processor) VideoPath() string {
	return p.videoPath
}

// Metadata returns the metadata of the acquired video.
func (p *Processor) Metadata() *Metadata {
	return p.metadata
}

var qualityFormats = map[string]string{
	"144p":  "worst[height<=144]",
	"240p":  "worst[height<=240]",
	"360p":  "worst[height<=360]",
	"480p":  "worst[height<=480]",
	"720p":  "best[height<=720]",
	"1080p": "best[height<=1080]",
	"1440p": "best[height<=1440]",
	"2160p": "best[height<=2160]",
}

// Download fetches a video with yt-dlp, including subtitles and the
// info.json metadata file. Subtitle download failures degrade through two
// fallback command forms before giving up.
func (p *Processor) Download(ctx context.Context, url string) (*Metadata, error) {
	ytdlpPath, err := exec.LookPath("yt-dlp")
	if err != nil {
		return nil, fmt.Errorf("yt-dlp not found in PATH: %w", err)
	}

	tempDir, err := os.MkdirTemp("", "slidecast_")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}
	p.tempDir = tempDir

	outputTemplate := filepath.Join(tempDir, "%(id)s.%(ext)s")
	format, ok := qualityFormats[p.cfg.VideoQuality]
	if !ok {
		format = qualityFormats["720p"]
	}

	attempts := [][]string{
		{
			"--format", format,
			"--write-info-json",
			"--write-subs",
			"--write-auto-subs",
			"--sub-format", "srt",
			"--sub-lang", "en,en-US,en-GB",
			"--convert-subs", "srt",
			"--output", outputTemplate,
			url,
		},
		{
			"--format", format,
			"--write-info-json",
			"--write-subs",
			"--sub-format", "srt",
			"--output", outputTemplate,
			url,
		},
		{
			"--format", format,
			"--write-info-json",
			"--output", outputTemplate,
			url,
		},
	}

	var lastErr error
	for i, args := range attempts {
		cmd := exec.CommandContext(ctx, ytdlpPath, args...)
		var stderr bytes.Buffer
		cmd.Stderr = &stderr

		if err := cmd.Run(); err != nil {
			lastErr = fmt.Errorf("yt-dlp failed: %v: %s", err, strings.TrimSpace(stderr.String()))
			log.Printf("Download attempt %d failed, trying fallback options", i+1)
			continue
		}
		if i == len(attempts)-1 {
			log.Printf("Warning: downloaded video but no subtitles requested in final fallback")
		}
		lastErr = nil
		break
	}
	if lastErr != nil {
		p.Cleanup()
		return nil, lastErr
	}

	videoPath, err := p.findVideoFile()
	if err != nil {
		p.Cleanup()
		return nil, err
	}
	p.videoPath = videoPath

	meta, err := p.loadMetadata(ctx)
	if err != nil {
		p.Cleanup()
		return nil, err
	}
	p.metadata = meta

	log.Printf("Downloaded %q (%.2fs, %dx%d)", meta.Title, meta.Duration, meta.Width, meta.Height)
	return meta, nil
}

// OpenLocal points the processor at an already-downloaded video file.
func (p *Processor) OpenLocal(ctx context.Context, path string) (*Metadata, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("video file not accessible: %w", err)
	}
	p.videoPath = path

	duration, width, height, err := probeVideo(ctx, path)
	if err != nil {
		return nil, err
	}

	p.metadata = &Metadata{
		Title:    strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		Duration: duration,
		Width:    width,
		Height:   height,
	}
	return p.metadata, nil
}

func (p *Processor) findVideoFile() (string, error) {
	for _, pattern := range []string{"*.mp4", "*.webm", "*.mkv"} {
		matches, err := filepath.Glob(filepath.Join(p.tempDir, pattern))
		if err == nil && len(matches) > 0 {
			return matches[0], nil
		}
	}
	return "", fmt.Errorf("no video file found after download")
}

func (p *Processor) loadMetadata(ctx context.Context) (*Metadata, error) {
	infoFiles, err := filepath.Glob(filepath.Join(p.tempDir, "*.info.json"))
	if err != nil || len(infoFiles) == 0 {
		return nil, fmt.Errorf("no metadata file found")
	}

	data, err := os.ReadFile(infoFiles[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read metadata: %w", err)
	}

	var info struct {
		Title       string  `json:"title"`
		Duration    float64 `json:"duration"`
		ID          string  `json:"id"`
		UploadDate  string  `json:"upload_date"`
		Description string  `json:"description"`
	}
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("failed to parse metadata: %w", err)
	}

	duration, width, height, err := probeVideo(ctx, p.videoPath)
	if err != nil {
		return nil, err
	}
	if info.Duration > 0 {
		duration = info.Duration
	}

	title := info.Title
	if title == "" {
		title = "Unknown"
	}

	return &Metadata{
		Title:       title,
		Duration:    duration,
		Width:       width,
		Height:      height,
		VideoID:     info.ID,
		UploadDate:  info.UploadDate,
		Description: info.Description,
	}, nil
}

// probeVideo reads duration and dimensions with ffprobe.
func probeVideo(ctx context.Context, path string) (duration float64, width, height int, err error) {
	ffprobePath, err := exec.LookPath("ffprobe")
	if err != nil {
		return 0, 0, 0, fmt.Errorf("ffprobe not found in PATH: %w", err)
	}

	cmd := exec.CommandContext(ctx, ffprobePath,
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=width,height:format=duration",
		"-of", "json",
		path)

	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	if err := cmd.Run(); err != nil {
		return 0, 0, 0, fmt.Errorf("ffprobe failed: %w", err)
	}

	var probe struct {
		Streams []struct {
			Width  int `json:"width"`
			Height int `json:"height"`
		} `json:"streams"`
		Format struct {
			Duration string `json:"duration"`
		} `json:"format"`
	}
	if err := json.Unmarshal(stdout.Bytes(), &probe); err != nil {
		return 0, 0, 0, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}

	duration, err = strconv.ParseFloat(probe.Format.Duration, 64)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid duration %q: %w", probe.Format.Duration, err)
	}
	if len(probe.Streams) == 0 {
		return 0, 0, 0, fmt.Errorf("no video stream found")
	}

	return duration, probe.Streams[0].Width, probe.Streams[0].Height, nil
}

// SubtitleFiles lists subtitle files written next to the download.
func (p *Processor) SubtitleFiles() []string {
	if p.tempDir == "" {
		return nil
	}

	var files []string
	for _, pattern := range []string{"*.srt", "*.vtt", "*.json"} {
		matches, err := filepath.Glob(filepath.Join(p.tempDir, pattern))
		if err != nil {
			continue
		}
		for _, m := range matches {
			if strings.HasSuffix(m, ".info.json") {
				continue
			}
			files = append(files, m)
		}
	}
	return files
}

// Cleanup removes the temporary download directory.
func (p *Processor) Cleanup() {
	if p.tempDir != "" {
		if err := os.RemoveAll(p.tempDir); err != nil {
			log.Printf("Warning: could not clean up temp directory: %v", err)
		}
		p.tempDir = ""
	}
	p.videoPath = ""
	p.metadata = nil
}
