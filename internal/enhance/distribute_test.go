package enhance

import (
	"strings"
	"testing"
)

func TestDistributeTextEvenSplit(t *testing.T) {
	segments := segmentsWithText("a", "b")
	enhanced := "First sentence. Second sentence! Third sentence? Fourth sentence."

	parts := DistributeText(enhanced, segments)
	if len(parts) != 2 {
		t.Fatalf("expected 2 parts, got %d", len(parts))
	}
	if !strings.Contains(parts[0], "First sentence") || !strings.Contains(parts[0], "Second sentence") {
		t.Errorf("part 0 = %q", parts[0])
	}
	if !strings.Contains(parts[1], "Third sentence") || !strings.Contains(parts[1], "Fourth sentence") {
		t.Errorf("part 1 = %q", parts[1])
	}
}

func TestDistributeTextRemainderGoesFirst(t *testing.T) {
	segments := segmentsWithText("a", "b", "c")
	enhanced := "One. Two. Three. Four."

	parts := DistributeText(enhanced, segments)
	if len(parts) != 3 {
		t.Fatalf("expected 3 parts, got %d", len(parts))
	}
	// 4 sentences over 3 segments: first segment takes the extra one.
	if !strings.Contains(parts[0], "One") || !strings.Contains(parts[0], "Two") {
		t.Errorf("part 0 = %q", parts[0])
	}
}

func TestDistributeTextFewerSentencesThanSegments(t *testing.T) {
	segments := segmentsWithText("original one", "original two", "original three")
	parts := DistributeText("Only sentence.", segments)

	if len(parts) != 3 {
		t.Fatalf("expected 3 parts, got %d", len(parts))
	}
	if !strings.Contains(parts[0], "Only sentence") {
		t.Errorf("part 0 = %q", parts[0])
	}
	// Segments beyond available sentences keep their original text.
	if parts[2] != "original three" {
		t.Errorf("part 2 = %q, want original text fallback", parts[2])
	}
}

func TestDistributeTextEmptySegments(t *testing.T) {
	if parts := DistributeText("anything", nil); parts != nil {
		t.Errorf("expected nil for no segments, got %v", parts)
	}
}
