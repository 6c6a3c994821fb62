package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"regexp"
	"syscall"
	"time"

	"github.com/dkarpov/slidecast/internal/config"
	"github.com/dkarpov/slidecast/internal/enhance"
	"github.com/dkarpov/slidecast/internal/pipeline"
)

var urlPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^https?://(?:www\.)?youtube\.com/watch\?v=[\w-]+`),
	regexp.MustCompile(`^https?://youtu\.be/[\w-]+`),
	regexp.MustCompile(`^https?://(?:www\.)?youtube\.com/embed/[\w-]+`),
}

func validURL(url string) bool {
	for _, p := range urlPatterns {
		if p.MatchString(url) {
			return true
		}
	}
	return false
}

func main() {
	var (
		output      = flag.String("output", "", "Output filename (default: derived from video title)")
		format      = flag.String("format", "html", "Output format: html or markdown")
		outputDir   = flag.String("output-dir", "output", "Output directory")
		sensitivity = flag.Float64("sensitivity", 0.3, "Scene change detection sensitivity (0.1-1.0)")
		minTime     = flag.Float64("min-time", 2.0, "Minimum time between screenshots in seconds")
		quality     = flag.String("video-quality", "720p", "Video quality to download")
		configPath  = flag.String("config", "", "Path to configuration file")
		saveConfig  = flag.String("save-config", "", "Save current settings to configuration file")
		enhanceFlag = flag.Bool("enhance-transcript", false, "Enable AI transcript enhancement")
		level       = flag.String("enhancement-level", "detailed", "Enhancement level: basic, detailed, or academic")
		maxCost     = flag.Float64("max-cost", 5.0, "Maximum enhancement cost per video in USD")
		noCache     = flag.Bool("no-cache", false, "Don't cache enhanced results")
		noIntro     = flag.Bool("no-intro-outro", false, "Don't trim intro/outro sections")
		noTimes     = flag.Bool("no-timestamps", false, "Don't include timestamps in output")
		noNav       = flag.Bool("no-navigation", false, "Don't include navigation in output")
	)
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: extract [flags] <video URL or local file>")
		flag.PrintDefaults()
		os.Exit(1)
	}
	source := flag.Arg(0)

	if _, err := os.Stat(source); err != nil && !validURL(source) {
		fmt.Fprintln(os.Stderr, "Error: source must be a video URL or an existing local file")
		fmt.Fprintln(os.Stderr, "Supported URL formats:")
		fmt.Fprintln(os.Stderr, "  https://youtube.com/watch?v=VIDEO_ID")
		fmt.Fprintln(os.Stderr, "  https://youtu.be/VIDEO_ID")
		fmt.Fprintln(os.Stderr, "  https://youtube.com/embed/VIDEO_ID")
		os.Exit(1)
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.LoadFromFile(*configPath)
		if err != nil {
			log.Fatal("Failed to load config:", err)
		}
		cfg = loaded
	}

	cfg.OutputDirectory = *outputDir
	cfg.OutputFormat = *format
	cfg.SceneChangeThreshold = *sensitivity
	cfg.MinTimeBetweenCaptures = *minTime
	cfg.VideoQuality = *quality
	cfg.SkipIntroOutro = !*noIntro
	cfg.IncludeTimestamps = !*noTimes
	cfg.IncludeNavigation = !*noNav
	cfg.EnableEnhancement = *enhanceFlag
	cfg.EnhancementLevel = *level
	cfg.MaxCostPerVideo = *maxCost
	cfg.CacheEnhanced = !*noCache

	if *saveConfig != "" {
		if err := cfg.SaveToFile(*saveConfig); err != nil {
			log.Fatal("Failed to save config:", err)
		}
		log.Printf("Configuration saved to %s", *saveConfig)
	}

	var completer enhance.Completer
	if cfg.EnableEnhancement {
		apiKey := os.Getenv("ANTHROPIC_API_KEY")
		if apiKey == "" {
			log.Println("Warning: ANTHROPIC_API_KEY not set, continuing without enhancement")
			cfg.EnableEnhancement = false
		} else {
			completer = enhance.NewAnthropicClient(
				apiKey,
				cfg.AnthropicModel,
				cfg.MaxTokensPerRequest,
				cfg.MaxRetries,
				time.Duration(cfg.TimeoutSeconds)*time.Second,
			)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	service := pipeline.NewService(cfg, nil, completer)

	start := time.Now()
	result, err := service.Extract(ctx, source)
	if err != nil {
		log.Fatal("Extraction failed: ", err)
	}

	// The pipeline derives the output name from the title; honor an explicit
	// -output by renaming.
	outputPath := result.OutputPath
	if *output != "" {
		renamed := cfg.OutputDirectory + string(os.PathSeparator) + *output
		if err := os.Rename(outputPath, renamed); err != nil {
			log.Printf("Warning: could not rename output to %s: %v", renamed, err)
		} else {
			outputPath = renamed
		}
	}

	fmt.Println("Extraction completed successfully!")
	fmt.Printf("Output file: %s\n", outputPath)
	fmt.Printf("Total slides: %d\n", result.Deck.SlideCount)
	fmt.Printf("Video duration: %.2f seconds\n", result.Deck.Duration)
	fmt.Printf("Elapsed: %s\n", time.Since(start).Round(time.Second))

	if cfg.EnableEnhancement {
		fmt.Printf("Enhanced segments: %d\n", result.Enhance.EnhancedSegments)
		fmt.Printf("Total enhancement cost: $%.2f\n", result.Enhance.TotalCost)
	}
}
