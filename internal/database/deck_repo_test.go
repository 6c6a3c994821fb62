package database

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/dkarpov/slidecast/internal/models"
)

func TestDeckRepository_InsertDeck(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewDeckRepository(db)

	deck := models.NewDeck("Intro to Compilers", "https://example.com/watch?v=abc", "html")
	deck.Duration = 1800
	deck.SlideCount = 12
	deck.OutputPath = "output/intro-to-compilers"

	err := repo.InsertDeck(deck)
	if err != nil {
		t.Fatalf("Failed to insert deck: %v", err)
	}

	retrieved, err := repo.GetDeckByID(deck.ID)
	if err != nil {
		t.Fatalf("Failed to retrieve deck: %v", err)
	}

	if retrieved.Title != deck.Title {
		t.Errorf("Expected title %s, got %s", deck.Title, retrieved.Title)
	}
	if retrieved.SlideCount != deck.SlideCount {
		t.Errorf("Expected slide count %d, got %d", deck.SlideCount, retrieved.SlideCount)
	}
	if retrieved.Duration != deck.Duration {
		t.Errorf("Expected duration %f, got %f", deck.Duration, retrieved.Duration)
	}
}

func TestDeckRepository_GetDeckByID_NotFound(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewDeckRepository(db)

	_, err := repo.GetDeckByID("00000000-0000-0000-0000-000000000000")
	if err == nil {
		t.Error("Expected error for non-existent deck, got nil")
	}
}

func TestDeckRepository_ListDecks(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewDeckRepository(db)

	deck1 := models.NewDeck("First Lecture", "https://example.com/1", "html")
	deck2 := models.NewDeck("Second Lecture", "https://example.com/2", "markdown")
	deck2.CreatedAt = deck1.CreatedAt.Add(10 * time.Millisecond)

	if err := repo.InsertDeck(deck1); err != nil {
		t.Fatalf("Failed to insert deck1: %v", err)
	}
	if err := repo.InsertDeck(deck2); err != nil {
		t.Fatalf("Failed to insert deck2: %v", err)
	}

	decks, err := repo.ListDecks()
	if err != nil {
		t.Fatalf("Failed to list decks: %v", err)
	}

	if len(decks) != 2 {
		t.Fatalf("Expected 2 decks, got %d", len(decks))
	}

	if decks[0].ID != deck2.ID {
		t.Errorf("Expected first deck to be most recent (deck2), got %s", decks[0].ID)
	}
}

func TestDeckRepository_SearchDecks(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewDeckRepository(db)

	deck1 := models.NewDeck("Distributed Systems Lecture", "https://example.com/1", "html")
	deck2 := models.NewDeck("Cooking Basics", "https://example.com/2", "html")
	deck3 := models.NewDeck("Systems Programming", "https://example.com/3", "markdown")

	for _, d := range []*models.Deck{deck1, deck2, deck3} {
		if err := repo.InsertDeck(d); err != nil {
			t.Fatalf("Failed to insert deck: %v", err)
		}
	}

	results, err := repo.SearchDecks("systems")
	if err != nil {
		t.Fatalf("Failed to search decks: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("Expected 2 results for 'systems', got %d", len(results))
	}

	results, err = repo.SearchDecks("cooking")
	if err != nil {
		t.Fatalf("Failed to search decks: %v", err)
	}
	if len(results) != 1 {
		t.Errorf("Expected 1 result for 'cooking', got %d", len(results))
	}

	results, err = repo.SearchDecks("")
	if err != nil {
		t.Fatalf("Failed to search with empty query: %v", err)
	}
	if len(results) != 3 {
		t.Errorf("Expected 3 results for empty query, got %d", len(results))
	}
}

func TestDeckRepository_Slides(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewDeckRepository(db)

	deck := models.NewDeck("Slide Roundtrip", "https://example.com/1", "html")
	if err := repo.InsertDeck(deck); err != nil {
		t.Fatalf("Failed to insert deck: %v", err)
	}

	slides := []models.Slide{
		{ID: uuid.New().String(), DeckID: deck.ID, Number: 2, StartTime: 30, EndTime: 60, Transcript: "second"},
		{ID: uuid.New().String(), DeckID: deck.ID, Number: 1, StartTime: 0, EndTime: 30, Transcript: "first", EnhancedText: "first, enhanced"},
	}

	if err := repo.InsertSlides(slides); err != nil {
		t.Fatalf("Failed to insert slides: %v", err)
	}

	retrieved, err := repo.GetSlidesByDeck(deck.ID)
	if err != nil {
		t.Fatalf("Failed to get slides: %v", err)
	}

	if len(retrieved) != 2 {
		t.Fatalf("Expected 2 slides, got %d", len(retrieved))
	}
	if retrieved[0].Number != 1 || retrieved[1].Number != 2 {
		t.Errorf("Expected slides ordered by number, got %d then %d", retrieved[0].Number, retrieved[1].Number)
	}
	if retrieved[0].EnhancedText != "first, enhanced" {
		t.Errorf("Expected enhanced text to round-trip, got %q", retrieved[0].EnhancedText)
	}
}

func TestDeckRepository_DeleteDeck(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewDeckRepository(db)

	deck := models.NewDeck("Removable", "https://example.com/1", "html")
	if err := repo.InsertDeck(deck); err != nil {
		t.Fatalf("Failed to insert deck: %v", err)
	}
	slides := []models.Slide{
		{ID: uuid.New().String(), DeckID: deck.ID, Number: 1, StartTime: 0, EndTime: 30},
	}
	if err := repo.InsertSlides(slides); err != nil {
		t.Fatalf("Failed to insert slides: %v", err)
	}

	if err := repo.DeleteDeck(deck.ID); err != nil {
		t.Fatalf("Failed to delete deck: %v", err)
	}

	if _, err := repo.GetDeckByID(deck.ID); err == nil {
		t.Error("Expected error for deleted deck, got nil")
	}

	remaining, err := repo.GetSlidesByDeck(deck.ID)
	if err != nil {
		t.Fatalf("Failed to query slides after delete: %v", err)
	}
	if len(remaining) != 0 {
		t.Errorf("Expected no slides after deck delete, got %d", len(remaining))
	}

	if err := repo.DeleteDeck(deck.ID); err == nil {
		t.Error("Expected error deleting missing deck, got nil")
	}
}
