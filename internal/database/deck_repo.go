package database

import (
	"database/sql"
	"fmt"

	"github.com/dkarpov/slidecast/internal/models"
)

type DeckRepository struct {
	db *DB
}

func NewDeckRepository(db *DB) *DeckRepository {
	return &DeckRepository{db: db}
}

func (r *DeckRepository) InsertDeck(deck *models.Deck) error {
	query := `
	INSERT INTO decks (id, title, source_url, duration, slide_count, format, output_path, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.conn.Exec(query,
		deck.ID, deck.Title, deck.SourceURL, deck.Duration,
		deck.SlideCount, deck.Format, deck.OutputPath, deck.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert deck: %w", err)
	}
	return nil
}

func (r *DeckRepository) GetDeckByID(id string) (*models.Deck, error) {
	query := `
	SELECT id, title, source_url, duration, slide_count, format, output_path, created_at
	FROM decks WHERE id = ?`

	var deck models.Deck
	err := r.db.conn.QueryRow(query, id).Scan(
		&deck.ID, &deck.Title, &deck.SourceURL, &deck.Duration,
		&deck.SlideCount, &deck.Format, &deck.OutputPath, &deck.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("deck not found")
		}
		return nil, fmt.Errorf("failed to get deck: %w", err)
	}
	return &deck, nil
}

func (r *DeckRepository) ListDecks() ([]models.Deck, error) {
	query := `
	SELECT id, title, source_url, duration, slide_count, format, output_path, created_at
	FROM decks ORDER BY created_at DESC`

	rows, err := r.db.conn.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list decks: %w", err)
	}
	defer rows.Close()

	var decks []models.Deck
	for rows.Next() {
		var deck models.Deck
		if err := rows.Scan(
			&deck.ID, &deck.Title, &deck.SourceURL, &deck.Duration,
			&deck.SlideCount, &deck.Format, &deck.OutputPath, &deck.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan deck: %w", err)
		}
		decks = append(decks, deck)
	}
	return decks, rows.Err()
}

func (r *DeckRepository) SearchDecks(query string) ([]models.Deck, error) {
	if query == "" {
		return r.ListDecks()
	}

	searchPattern := "%" + query + "%"
	stmt := `
	SELECT id, title, source_url, duration, slide_count, format, output_path, created_at
	FROM decks
	WHERE LOWER(title) LIKE LOWER(?) OR LOWER(source_url) LIKE LOWER(?)
	ORDER BY created_at DESC LIMIT 20`

	rows, err := r.db.conn.Query(stmt, searchPattern, searchPattern)
	if err != nil {
		return nil, fmt.Errorf("failed to search decks: %w", err)
	}
	defer rows.Close()

	var decks []models.Deck
	for rows.Next() {
		var deck models.Deck
		if err := rows.Scan(
			&deck.ID, &deck.Title, &deck.SourceURL, &deck.Duration,
			&deck.SlideCount, &deck.Format, &deck.OutputPath, &deck.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan deck: %w", err)
		}
		decks = append(decks, deck)
	}
	return decks, rows.Err()
}

func (r *DeckRepository) DeleteDeck(id string) error {
	tx, err := r.db.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM slides WHERE deck_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete slides: %w", err)
	}
	result, err := tx.Exec("DELETE FROM decks WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete deck: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("deck not found")
	}
	return tx.Commit()
}

func (r *DeckRepository) InsertSlides(slides []models.Slide) error {
	if len(slides) == 0 {
		return nil
	}

	tx, err := r.db.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
	INSERT INTO slides (id, deck_id, number, start_time, end_time, screenshot_path, transcript, enhanced_text)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare slide insert: %w", err)
	}
	defer stmt.Close()

	for _, slide := range slides {
		if _, err := stmt.Exec(
			slide.ID, slide.DeckID, slide.Number, slide.StartTime,
			slide.EndTime, slide.ScreenshotPath, slide.Transcript, slide.EnhancedText); err != nil {
			return fmt.Errorf("failed to insert slide %d: %w", slide.Number, err)
		}
	}
	return tx.Commit()
}

func (r *DeckRepository) GetSlidesByDeck(deckID string) ([]models.Slide, error) {
	query := `
	SELECT id, deck_id, number, start_time, end_time, screenshot_path, transcript, enhanced_text
	FROM slides WHERE deck_id = ? ORDER BY number`

	rows, err := r.db.conn.Query(query, deckID)
	if err != nil {
		return nil, fmt.Errorf("failed to get slides: %w", err)
	}
	defer rows.Close()

	var slides []models.Slide
	for rows.Next() {
		var slide models.Slide
		if err := rows.Scan(
			&slide.ID, &slide.DeckID, &slide.Number, &slide.StartTime,
			&slide.EndTime, &slide.ScreenshotPath, &slide.Transcript, &slide.EnhancedText); err != nil {
			return nil, fmt.Errorf("failed to scan slide: %w", err)
		}
		slides = append(slides, slide)
	}
	return slides, rows.Err()
}
