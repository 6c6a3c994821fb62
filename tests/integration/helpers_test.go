package integration

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/dkarpov/slidecast/internal/api"
	"github.com/dkarpov/slidecast/internal/config"
	"github.com/dkarpov/slidecast/internal/database"
	"github.com/dkarpov/slidecast/internal/pipeline"
	"github.com/dkarpov/slidecast/internal/storage"
)

type TestServer struct {
	Server   *httptest.Server
	App      *api.App
	DB       *database.DB
	DeckRepo *database.DeckRepository
	Storage  storage.Storage
}

func setupTestServer(t *testing.T) *TestServer {
	t.Helper()

	tempDir := t.TempDir()

	uploadDir := filepath.Join(tempDir, "uploads")
	localStorage, err := storage.NewLocalStorage(uploadDir)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	db, err := database.NewDB(database.Config{Path: filepath.Join(tempDir, "test.db")})
	if err != nil {
		t.Fatalf("Failed to create database: %v", err)
	}

	deckRepo := database.NewDeckRepository(db)

	cfg := config.Default()
	cfg.OutputDirectory = filepath.Join(tempDir, "output")

	app := &api.App{
		Storage:       localStorage,
		DeckRepo:      deckRepo,
		Pipeline:      pipeline.NewService(cfg, deckRepo, nil),
		OutputDir:     cfg.OutputDirectory,
		MaxUploadSize: 10 * 1024 * 1024,
	}

	server := httptest.NewServer(api.NewRouter(app))
	t.Cleanup(func() {
		server.Close()
		db.Close()
	})

	return &TestServer{
		Server:   server,
		App:      app,
		DB:       db,
		DeckRepo: deckRepo,
		Storage:  localStorage,
	}
}

func createMultipartUpload(filename string, content []byte) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("video", filename)
	if err != nil {
		return nil, "", err
	}
	if _, err := io.Copy(part, bytes.NewReader(content)); err != nil {
		return nil, "", err
	}

	if err := writer.Close(); err != nil {
		return nil, "", err
	}

	return body, writer.FormDataContentType(), nil
}

func uploadTestVideo(t *testing.T, server string, filename string) *http.Response {
	t.Helper()

	content := []byte("fake mp4 content for testing")
	body, contentType, err := createMultipartUpload(filename, content)
	if err != nil {
		t.Fatalf("Failed to create multipart upload: %v", err)
	}

	req, err := http.NewRequest(http.MethodPost, server+"/api/upload", body)
	if err != nil {
		t.Fatalf("Failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("Failed to upload video: %v", err)
	}

	return resp
}
