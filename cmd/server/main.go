package main

import (
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/dkarpov/slidecast/internal/api"
	"github.com/dkarpov/slidecast/internal/config"
	"github.com/dkarpov/slidecast/internal/database"
	"github.com/dkarpov/slidecast/internal/enhance"
	"github.com/dkarpov/slidecast/internal/pipeline"
	"github.com/dkarpov/slidecast/internal/storage"
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	port := getEnv("PORT", "8080")
	uploadDir := getEnv("UPLOAD_DIR", "./uploads")
	dbPath := getEnv("DB_PATH", "./slidecast.db")
	migrationsPath := getEnv("MIGRATIONS_PATH", "./migrations")

	maxSize, err := strconv.ParseInt(getEnv("MAX_UPLOAD_SIZE", "1073741824"), 10, 64)
	if err != nil {
		log.Fatal("Invalid MAX_UPLOAD_SIZE:", err)
	}

	cfg := config.Default()
	if configPath := os.Getenv("CONFIG_PATH"); configPath != "" {
		cfg, err = config.LoadFromFile(configPath)
		if err != nil {
			log.Fatal("Failed to load config:", err)
		}
	}
	cfg.OutputDirectory = getEnv("OUTPUT_DIR", cfg.OutputDirectory)

	localStorage, err := storage.NewLocalStorage(uploadDir)
	if err != nil {
		log.Fatal("Failed to initialize storage:", err)
	}

	db, err := database.NewDB(database.Config{Path: dbPath})
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer db.Close()

	log.Printf("Running database migrations from %s", migrationsPath)
	if err := db.RunMigrations(migrationsPath); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	deckRepo := database.NewDeckRepository(db)

	var completer enhance.Completer
	if apiKey := os.Getenv("ANTHROPIC_API_KEY"); apiKey != "" {
		completer = enhance.NewAnthropicClient(
			apiKey,
			cfg.AnthropicModel,
			cfg.MaxTokensPerRequest,
			cfg.MaxRetries,
			time.Duration(cfg.TimeoutSeconds)*time.Second,
		)
		log.Println("Transcript enhancement enabled")
	} else {
		cfg.EnableEnhancement = false
		log.Println("ANTHROPIC_API_KEY not set, transcript enhancement disabled")
	}

	pipelineService := pipeline.NewService(cfg, deckRepo, completer)

	app := &api.App{
		Storage:       localStorage,
		DeckRepo:      deckRepo,
		Pipeline:      pipelineService,
		OutputDir:     cfg.OutputDirectory,
		MaxUploadSize: maxSize,
	}

	router := api.NewRouter(app)

	log.Printf("Server starting on port %s", port)
	log.Printf("Upload directory: %s", uploadDir)
	log.Printf("Output directory: %s", cfg.OutputDirectory)
	log.Printf("Database path: %s", dbPath)
	log.Printf("Max upload size: %d bytes", maxSize)

	if err := http.ListenAndServe(":"+port, router); err != nil {
		log.Fatal(err)
	}
}
