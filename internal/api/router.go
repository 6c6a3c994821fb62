package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(app *App) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/ping", PingHandler)

	r.Route("/api", func(r chi.Router) {
		r.Post("/extract", app.ExtractHandler)
		r.Post("/upload", app.UploadHandler)

		r.Get("/jobs", app.ListJobsHandler)
		r.Get("/jobs/{id}", app.JobStatusHandler)

		r.Get("/decks", app.ListDecksHandler)
		r.Get("/decks/{id}", app.GetDeckHandler)
		r.Delete("/decks/{id}", app.DeleteDeckHandler)
	})

	fileServer := http.FileServer(http.Dir(app.OutputDir))
	r.Handle("/output/*", http.StripPrefix("/output", fileServer))

	return r
}
