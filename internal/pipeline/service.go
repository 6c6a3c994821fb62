package pipeline

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dkarpov/slidecast/internal/config"
	"github.com/dkarpov/slidecast/internal/database"
	"github.com/dkarpov/slidecast/internal/document"
	"github.com/dkarpov/slidecast/internal/enhance"
	"github.com/dkarpov/slidecast/internal/models"
	"github.com/dkarpov/slidecast/internal/scene"
	"github.com/dkarpov/slidecast/internal/transcript"
	"github.com/dkarpov/slidecast/internal/video"
)

const (
	minSceneConfidence = 0.3
	mergeWindowSeconds = 1.0
)

// Service runs the extraction pipeline end to end: download, transcript,
// detection, windowing, optional enhancement, rendering, and persistence.
type Service struct {
	cfg       *config.Config
	deckRepo  *database.DeckRepository
	completer enhance.Completer
	jobs      map[string]*Job
	jobsMu    sync.RWMutex
}

// Job tracks one asynchronous extraction.
type Job struct {
	ID          string     `json:"id"`
	Source      string     `json:"source"`
	Status      string     `json:"status"`
	Error       string     `json:"error,omitempty"`
	DeckID      string     `json:"deck_id,omitempty"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// Result is what a completed extraction produced.
type Result struct {
	Deck       *models.Deck
	Slides     []models.Slide
	OutputPath string
	Enhance    enhance.Stats
}

func NewService(cfg *config.Config, deckRepo *database.DeckRepository, completer enhance.Completer) *Service {
	return &Service{
		cfg:       cfg,
		deckRepo:  deckRepo,
		completer: completer,
		jobs:      make(map[string]*Job),
	}
}

// StartExtraction launches an extraction in the background and returns the
// job handle immediately.
func (s *Service) StartExtraction(source string) *Job {
	job := &Job{
		ID:        uuid.New().String(),
		Source:    source,
		Status:    "running",
		StartedAt: time.Now(),
	}

	s.jobsMu.Lock()
	s.jobs[job.ID] = job
	s.jobsMu.Unlock()

	go func() {
		result, err := s.Extract(context.Background(), source)

		s.jobsMu.Lock()
		defer s.jobsMu.Unlock()

		now := time.Now()
		job.CompletedAt = &now
		if err != nil {
			log.Printf("[PIPELINE] Job %s failed: %v", job.ID, err)
			job.Status = "error"
			job.Error = err.Error()
			return
		}
		job.Status = "complete"
		job.DeckID = result.Deck.ID
	}()

	return job
}

func (s *Service) GetJob(id string) (*Job, bool) {
	s.jobsMu.RLock()
	defer s.jobsMu.RUnlock()
	job, ok := s.jobs[id]
	return job, ok
}

func (s *Service) ListJobs() []*Job {
	s.jobsMu.RLock()
	defer s.jobsMu.RUnlock()
	jobs := make([]*Job, 0, len(s.jobs))
	for _, job := range s.jobs {
		jobs = append(jobs, job)
	}
	return jobs
}

// Extract runs the full pipeline synchronously. Source is either a video URL
// or a path to a local file.
func (s *Service) Extract(ctx context.Context, source string) (*Result, error) {
	processor := video.NewProcessor(s.cfg)
	defer processor.Cleanup()

	log.Printf("[PIPELINE] Starting extraction for %s", source)

	var metadata *video.Metadata
	var err error
	if isURL(source) {
		metadata, err = processor.Download(ctx, source)
	} else {
		metadata, err = processor.OpenLocal(ctx, source)
	}
	if err != nil {
		return nil, fmt.Errorf("preparing video: %w", err)
	}
	log.Printf("[PIPELINE] Video ready: %q, %.2fs", metadata.Title, metadata.Duration)

	segments := s.loadTranscript(processor)

	startTime, endTime := 0.0, metadata.Duration
	if s.cfg.SkipIntroOutro && metadata.Duration > 2*s.cfg.IntroOutroDuration {
		startTime = s.cfg.IntroOutroDuration
		endTime = metadata.Duration - s.cfg.IntroOutroDuration
	}

	frames, err := processor.ExtractFrames(ctx, startTime, endTime)
	if err != nil {
		return nil, fmt.Errorf("extracting frames: %w", err)
	}
	if len(frames) == 0 {
		return nil, fmt.Errorf("no frames extracted from video")
	}
	log.Printf("[PIPELINE] Extracted %d frames", len(frames))

	changes, err := s.detectChanges(ctx, frames, processor.VideoPath(), metadata.Duration)
	if err != nil {
		return nil, err
	}
	log.Printf("[PIPELINE] Detected %d significant scene changes", len(changes))

	windows := scene.PartitionWindows(changes, s.cfg.TimeLimitPerSlide)
	windows = scene.FilterWindowsWithContent(windows, func(w scene.SlideWindow) bool {
		return len(transcript.SegmentsInRange(segments, w.Start, w.End)) > 0
	})
	if len(windows) == 0 {
		return nil, fmt.Errorf("no slide windows with transcript content")
	}

	var keyPoints []string
	var enhStats enhance.Stats
	if s.cfg.EnableEnhancement && s.completer != nil && len(segments) > 0 {
		segments, keyPoints, enhStats = s.enhance(ctx, segments)
	}

	slides := document.BuildSlides(windows, segments, s.cfg.ScreenshotFormat)
	if len(slides) > 0 && len(keyPoints) > 0 {
		slides[0].KeyPoints = keyPoints
	}

	if _, err := document.SaveScreenshots(s.cfg.OutputDirectory, slides, frames, s.cfg.ScreenshotFormat); err != nil {
		return nil, fmt.Errorf("saving screenshots: %w", err)
	}

	gen := document.NewGenerator(s.cfg)
	outputPath, err := gen.Generate(slides, metadata.Title, metadata.Duration, gen.OutputFilename(metadata.Title))
	if err != nil {
		return nil, fmt.Errorf("generating document: %w", err)
	}
	log.Printf("[PIPELINE] Generated presentation: %s", outputPath)

	deck := models.NewDeck(metadata.Title, source, s.cfg.OutputFormat)
	deck.Duration = metadata.Duration
	deck.SlideCount = len(slides)
	deck.OutputPath = outputPath

	records := slideRecords(deck.ID, slides)
	if s.deckRepo != nil {
		if err := s.deckRepo.InsertDeck(deck); err != nil {
			return nil, fmt.Errorf("persisting deck: %w", err)
		}
		if err := s.deckRepo.InsertSlides(records); err != nil {
			return nil, fmt.Errorf("persisting slides: %w", err)
		}
	}

	return &Result{
		Deck:       deck,
		Slides:     records,
		OutputPath: outputPath,
		Enhance:    enhStats,
	}, nil
}

// loadTranscript parses whatever subtitle files the download produced. A
// video without captions still yields a deck, just one with empty slides
// filtered out later.
func (s *Service) loadTranscript(processor *video.Processor) []transcript.Segment {
	files := processor.SubtitleFiles()
	if len(files) == 0 {
		log.Println("[PIPELINE] No subtitle files found")
		return nil
	}

	segments, err := transcript.LoadSubtitles(files)
	if err != nil {
		log.Printf("[PIPELINE] Could not parse subtitle files: %v", err)
		return nil
	}

	stats := transcript.Statistics(segments)
	log.Printf("[PIPELINE] Loaded %d transcript segments, %d words", stats.TotalSegments, stats.TotalWords)

	originalPath := filepath.Join(s.cfg.OutputDirectory, "original_transcript.txt")
	if err := transcript.SaveOriginal(segments, originalPath); err != nil {
		log.Printf("[PIPELINE] Could not save original transcript: %v", err)
	}

	return segments
}

// detectChanges runs the frame comparison detectors, falls back to content
// detection when they find nothing, then filters, merges, and trims the
// result.
func (s *Service) detectChanges(ctx context.Context, frames []scene.Frame, videoPath string, duration float64) ([]scene.SceneChange, error) {
	detector := scene.NewDetector(scene.Options{
		SceneChangeThreshold:   s.cfg.SceneChangeThreshold,
		HistogramThreshold:     s.cfg.HistogramThreshold,
		MinTimeBetweenCaptures: s.cfg.MinTimeBetweenCaptures,
		SkipIntroOutro:         s.cfg.SkipIntroOutro,
		IntroOutroDuration:     s.cfg.IntroOutroDuration,
	})

	changes, err := detector.DetectScenes(ctx, frames)
	if err != nil {
		return nil, fmt.Errorf("detecting scenes: %w", err)
	}

	if len(changes) == 0 {
		log.Println("[PIPELINE] No scene changes from frame comparison, trying content detection")
		changes, err = detector.DetectScenesAdvanced(ctx, videoPath)
		if err != nil {
			return nil, fmt.Errorf("content detection: %w", err)
		}
	}

	changes = scene.FilterChangesByConfidence(changes, minSceneConfidence)
	changes = scene.MergeNearbyChanges(changes, mergeWindowSeconds)
	changes = detector.SkipIntroOutro(changes, duration)

	if len(changes) == 0 {
		return nil, fmt.Errorf("no scene changes detected; the video may not contain slides")
	}
	return changes, nil
}

func (s *Service) enhance(ctx context.Context, segments []transcript.Segment) ([]transcript.Segment, []string, enhance.Stats) {
	enhancer := enhance.NewEnhancer(s.completer, s.cfg)

	cachePath := filepath.Join(s.cfg.OutputDirectory, s.cfg.CacheFile)
	if s.cfg.CacheEnhanced {
		if err := enhancer.LoadCache(cachePath); err != nil {
			log.Printf("[PIPELINE] No enhancement cache loaded: %v", err)
		}
	}

	enhanced, err := enhancer.EnhanceSegments(ctx, segments)
	if err != nil {
		log.Printf("[PIPELINE] Enhancement failed, keeping original transcript: %v", err)
		return segments, nil, enhancer.Stats()
	}

	keyPoints, err := enhancer.ExtractKeyPoints(ctx, enhanced)
	if err != nil {
		log.Printf("[PIPELINE] Key point extraction failed: %v", err)
	}

	enhancedPath := filepath.Join(s.cfg.OutputDirectory, "enhanced_transcript.txt")
	if err := transcript.SaveEnhanced(enhanced, enhancedPath); err != nil {
		log.Printf("[PIPELINE] Could not save enhanced transcript: %v", err)
	}

	if s.cfg.CacheEnhanced {
		if err := enhancer.SaveCache(cachePath); err != nil {
			log.Printf("[PIPELINE] Could not save enhancement cache: %v", err)
		}
	}

	stats := enhancer.Stats()
	log.Printf("[PIPELINE] Enhanced %d segments, cost $%.4f", stats.EnhancedSegments, stats.TotalCost)
	return enhanced, keyPoints, stats
}

func slideRecords(deckID string, slides []document.Slide) []models.Slide {
	records := make([]models.Slide, 0, len(slides))
	for _, s := range slides {
		records = append(records, models.Slide{
			ID:             uuid.New().String(),
			DeckID:         deckID,
			Number:         s.Number,
			StartTime:      s.Timestamp,
			EndTime:        s.EndTime,
			ScreenshotPath: s.ScreenshotPath,
			Transcript:     s.Transcript,
			EnhancedText:   s.Enhanced,
		})
	}
	return records
}

func isURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}
