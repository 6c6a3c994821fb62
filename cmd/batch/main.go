package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/dkarpov/slidecast/internal/config"
	"github.com/dkarpov/slidecast/internal/enhance"
	"github.com/dkarpov/slidecast/internal/pipeline"
)

type batchError struct {
	URL   string `json:"url"`
	Index int    `json:"index"`
	Error string `json:"error"`
}

type batchResults struct {
	Total      int          `json:"total"`
	Successful int          `json:"successful"`
	Failed     int          `json:"failed"`
	Errors     []batchError `json:"errors"`
}

func loadURLs(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open URLs file: %w", err)
	}
	defer f.Close()

	var urls []string
	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !strings.Contains(line, "youtube.com") && !strings.Contains(line, "youtu.be") {
			log.Printf("Warning: line %d doesn't look like a video URL: %s", lineNum, line)
			continue
		}
		urls = append(urls, line)
	}
	return urls, scanner.Err()
}

func main() {
	var (
		outputDir   = flag.String("output-dir", "batch_output", "Base output directory for all videos")
		format      = flag.String("format", "html", "Output format: html or markdown")
		sensitivity = flag.Float64("sensitivity", 0.3, "Scene change detection sensitivity")
		minTime     = flag.Float64("min-time", 2.0, "Minimum time between screenshots in seconds")
		delay       = flag.Duration("delay", 5*time.Second, "Delay between videos")
		keepGoing   = flag.Bool("continue-on-error", false, "Continue processing if one video fails")
		configPath  = flag.String("config", "", "Path to configuration file")
	)
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: batch [flags] <urls file>")
		flag.PrintDefaults()
		os.Exit(1)
	}

	urls, err := loadURLs(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}
	if len(urls) == 0 {
		log.Fatal("No valid URLs found")
	}

	cfg := config.Default()
	if *configPath != "" {
		cfg, err = config.LoadFromFile(*configPath)
		if err != nil {
			log.Fatal("Failed to load config:", err)
		}
	}
	cfg.OutputFormat = *format
	cfg.SceneChangeThreshold = *sensitivity
	cfg.MinTimeBetweenCaptures = *minTime

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatal("Failed to create output directory:", err)
	}

	var completer enhance.Completer
	if cfg.EnableEnhancement {
		if apiKey := os.Getenv("ANTHROPIC_API_KEY"); apiKey != "" {
			completer = enhance.NewAnthropicClient(
				apiKey,
				cfg.AnthropicModel,
				cfg.MaxTokensPerRequest,
				cfg.MaxRetries,
				time.Duration(cfg.TimeoutSeconds)*time.Second,
			)
		} else {
			cfg.EnableEnhancement = false
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("Starting batch processing of %d videos", len(urls))

	bar := progressbar.NewOptions(len(urls),
		progressbar.OptionSetDescription("Processing videos"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(50),
		progressbar.OptionSetRenderBlankState(true),
	)

	results := batchResults{Total: len(urls)}
	start := time.Now()

	for i, url := range urls {
		if ctx.Err() != nil {
			log.Println("Batch processing interrupted")
			break
		}

		// Each video gets its own output directory so screenshots don't
		// collide between runs.
		videoCfg := *cfg
		videoCfg.OutputDirectory = filepath.Join(*outputDir, fmt.Sprintf("video_%03d", i+1))

		service := pipeline.NewService(&videoCfg, nil, completer)
		if _, err := service.Extract(ctx, url); err != nil {
			log.Printf("Failed to process video %d (%s): %v", i+1, url, err)
			results.Failed++
			results.Errors = append(results.Errors, batchError{URL: url, Index: i + 1, Error: err.Error()})
			if !*keepGoing {
				log.Println("Stopping batch processing due to error")
				break
			}
		} else {
			results.Successful++
		}

		bar.Add(1)

		if i < len(urls)-1 && *delay > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(*delay):
			}
		}
	}
	fmt.Println()

	log.Printf("Batch complete: %d/%d successful, %d failed, elapsed %s",
		results.Successful, results.Total, results.Failed, time.Since(start).Round(time.Second))

	resultsPath := filepath.Join(*outputDir, "batch_results.json")
	data, err := json.MarshalIndent(results, "", "  ")
	if err == nil {
		err = os.WriteFile(resultsPath, data, 0644)
	}
	if err != nil {
		log.Printf("Warning: could not save batch results: %v", err)
	} else {
		log.Printf("Batch results saved to %s", resultsPath)
	}

	if results.Failed > 0 {
		os.Exit(1)
	}
}
