package api

import (
	"encoding/json"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dkarpov/slidecast/internal/database"
	"github.com/dkarpov/slidecast/internal/models"
	"github.com/dkarpov/slidecast/internal/pipeline"
	"github.com/dkarpov/slidecast/internal/storage"
)

type App struct {
	Storage       storage.Storage
	DeckRepo      *database.DeckRepository
	Pipeline      *pipeline.Service
	OutputDir     string
	MaxUploadSize int64
}

func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}

type extractRequest struct {
	URL string `json:"url"`
}

// ExtractHandler starts an extraction job for a video URL.
func (app *App) ExtractHandler(w http.ResponseWriter, r *http.Request) {
	var req extractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !strings.HasPrefix(req.URL, "http://") && !strings.HasPrefix(req.URL, "https://") {
		writeError(w, http.StatusBadRequest, "url must be an http(s) video URL")
		return
	}

	job := app.Pipeline.StartExtraction(req.URL)
	writeJSON(w, http.StatusAccepted, job)
}

// UploadHandler accepts a video file and starts an extraction job on it.
func (app *App) UploadHandler(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, app.MaxUploadSize)

	if err := r.ParseMultipartForm(app.MaxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, "file too large")
		return
	}

	file, header, err := r.FormFile("video")
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to get file")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "video/") {
		ext := strings.ToLower(filepath.Ext(header.Filename))
		if ext != ".mp4" && ext != ".webm" && ext != ".mkv" {
			writeError(w, http.StatusBadRequest, "only video files are allowed")
			return
		}
	}

	filename, err := app.Storage.SaveFile(file, storage.FileInfo{
		Filename:    header.Filename,
		ContentType: contentType,
		Size:        header.Size,
	})
	if err != nil {
		log.Printf("[API] Failed to save upload: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to save file")
		return
	}

	job := app.Pipeline.StartExtraction(app.Storage.FilePath(filename))
	writeJSON(w, http.StatusAccepted, job)
}

func (app *App) JobStatusHandler(w http.ResponseWriter, r *http.Request) {
	job, ok := app.Pipeline.GetJob(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "job not found")
		return
	}
	writeJSON(w, http.StatusOK, job)
}

func (app *App) ListJobsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, app.Pipeline.ListJobs())
}

func (app *App) ListDecksHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	var decks []models.Deck
	var err error
	if query != "" {
		decks, err = app.DeckRepo.SearchDecks(query)
	} else {
		decks, err = app.DeckRepo.ListDecks()
	}
	if err != nil {
		log.Printf("[API] Failed to list decks: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to list decks")
		return
	}

	if decks == nil {
		decks = []models.Deck{}
	}
	writeJSON(w, http.StatusOK, decks)
}

type deckResponse struct {
	Deck   *models.Deck   `json:"deck"`
	Slides []models.Slide `json:"slides"`
}

func (app *App) GetDeckHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	deck, err := app.DeckRepo.GetDeckByID(id)
	if err != nil {
		writeError(w, http.StatusNotFound, "deck not found")
		return
	}

	slides, err := app.DeckRepo.GetSlidesByDeck(id)
	if err != nil {
		log.Printf("[API] Failed to load slides for deck %s: %v", id, err)
		writeError(w, http.StatusInternalServerError, "failed to load slides")
		return
	}

	writeJSON(w, http.StatusOK, deckResponse{Deck: deck, Slides: slides})
}

func (app *App) DeleteDeckHandler(w http.ResponseWriter, r *http.Request) {
	if err := app.DeckRepo.DeleteDeck(chi.URLParam(r, "id")); err != nil {
		writeError(w, http.StatusNotFound, "deck not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[API] Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
