package models

import (
	"time"

	"github.com/google/uuid"
)

// Deck is one extracted slide-deck document.
type Deck struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	SourceURL  string    `json:"source_url"`
	Duration   float64   `json:"duration"`
	SlideCount int       `json:"slide_count"`
	Format     string    `json:"format"`
	OutputPath string    `json:"output_path"`
	CreatedAt  time.Time `json:"created_at"`
}

func NewDeck(title, sourceURL, format string) *Deck {
	return &Deck{
		ID:        uuid.New().String(),
		Title:     title,
		SourceURL: sourceURL,
		Format:    format,
		CreatedAt: time.Now(),
	}
}

// Slide is one stored slide belonging to a deck.
type Slide struct {
	ID             string  `json:"id"`
	DeckID         string  `json:"deck_id"`
	Number         int     `json:"number"`
	StartTime      float64 `json:"start_time"`
	EndTime        float64 `json:"end_time"`
	ScreenshotPath string  `json:"screenshot_path"`
	Transcript     string  `json:"transcript"`
	EnhancedText   string  `json:"enhanced_text,omitempty"`
}
