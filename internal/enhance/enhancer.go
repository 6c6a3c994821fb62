package enhance

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/dkarpov/slidecast/internal/config"
	"github.com/dkarpov/slidecast/internal/transcript"
)

// Approximate per-1k-token cost used for the budget ceiling.
const costPer1kTokens = 0.003

// Stats tracks enhancement totals for one video.
type Stats struct {
	TotalSegments    int
	EnhancedSegments int
	TotalTokens      int
	TotalCost        float64
	ProcessingTime   time.Duration
	Errors           []string
}

// Completer is the LLM call the enhancer depends on.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Enhancer rewrites transcript segments through an LLM, batching segments to
// amortize call overhead. A failed batch falls back to its original text;
// enhancement never corrupts the segment sequence.
type Enhancer struct {
	client Completer
	cfg    *config.Config
	cache  map[string]string
	stats  Stats
}

func NewEnhancer(client Completer, cfg *config.Config) *Enhancer {
	return &Enhancer{
		client: client,
		cfg:    cfg,
		cache:  make(map[string]string),
	}
}

// EnhanceSegments returns a copy of segments with Enhanced text filled in.
// The segment sequence itself is never reordered or resized.
func (e *Enhancer) EnhanceSegments(ctx context.Context, segments []transcript.Segment) ([]transcript.Segment, error) {
	e.stats = Stats{TotalSegments: len(segments)}
	start := time.Now()

	packer := Packer{
		TargetTokens: e.cfg.BatchTargetTokens,
		Enabled:      e.cfg.EnableBatching,
	}
	batches := packer.Pack(segments)
	log.Printf("Enhancing %d segments in %d batches", len(segments), len(batches))

	enhanced := make([]transcript.Segment, 0, len(segments))

	for i, batch := range batches {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		batchText := batch.CombinedText()
		enhancedText, err := e.enhanceBatch(ctx, batchText)
		if err != nil {
			log.Printf("Batch %d/%d enhancement failed, keeping original text: %v", i+1, len(batches), err)
			e.stats.Errors = append(e.stats.Errors, err.Error())
			enhancedText = batchText
		}

		distributed := DistributeText(enhancedText, batch.Segments)
		for j, seg := range batch.Segments {
			if j < len(distributed) {
				seg.Enhanced = distributed[j]
			} else {
				seg.Enhanced = seg.Text
			}
			enhanced = append(enhanced, seg)
		}

		if e.cfg.MaxCostPerVideo > 0 && e.stats.TotalCost > e.cfg.MaxCostPerVideo {
			log.Printf("Cost limit reached ($%.2f), stopping enhancement", e.stats.TotalCost)
			// Remaining segments pass through unenhanced.
			for _, rest := range batches[i+1:] {
				enhanced = append(enhanced, rest.Segments...)
			}
			break
		}
	}

	e.stats.ProcessingTime = time.Since(start)
	e.stats.EnhancedSegments = len(enhanced)
	log.Printf("Enhancement completed: %d segments, $%.2f, %s",
		e.stats.EnhancedSegments, e.stats.TotalCost, e.stats.ProcessingTime.Round(time.Millisecond))

	return enhanced, nil
}

func (e *Enhancer) enhanceBatch(ctx context.Context, batchText string) (string, error) {
	cacheKey := fmt.Sprintf("%s_%s", batchText, e.cfg.EnhancementLevel)
	if e.cfg.CacheEnhanced {
		if cached, ok := e.cache[cacheKey]; ok {
			return cached, nil
		}
	}

	prompt, err := enhancementPrompt(batchText, e.cfg.EnhancementLevel)
	if err != nil {
		return "", err
	}

	response, err := e.client.Complete(ctx, prompt)
	if err != nil {
		return "", err
	}

	enhancedText := parseEnhancedText(response)

	tokens := EstimateTokens(response)
	e.stats.TotalTokens += tokens
	e.stats.TotalCost += float64(tokens) / 1000 * costPer1kTokens

	if e.cfg.CacheEnhanced {
		e.cache[cacheKey] = enhancedText
	}

	return enhancedText, nil
}

// ExtractKeyPoints asks the LLM for the main concepts of the full
// transcript.
func (e *Enhancer) ExtractKeyPoints(ctx context.Context, segments []transcript.Segment) ([]string, error) {
	fullText := transcript.CombinedText(segments)
	prompt := fmt.Sprintf(`Please extract the key points from this presentation transcript.
Focus on the main concepts, important facts, and central ideas.

Transcript:
%s

Please provide a list of key points, one per line, starting with a bullet point (-).`, fullText)

	response, err := e.client.Complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to extract key points: %w", err)
	}

	return parseKeyPoints(response), nil
}

// Stats returns totals for the last EnhanceSegments run.
func (e *Enhancer) Stats() Stats {
	return e.stats
}

// SaveCache persists cached enhancements to a JSON file.
func (e *Enhancer) SaveCache(path string) error {
	data, err := json.MarshalIndent(e.cache, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal cache: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write cache: %w", err)
	}
	return nil
}

// LoadCache restores cached enhancements; a missing file is not an error.
func (e *Enhancer) LoadCache(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read cache: %w", err)
	}
	if err := json.Unmarshal(data, &e.cache); err != nil {
		return fmt.Errorf("failed to parse cache: %w", err)
	}
	return nil
}
