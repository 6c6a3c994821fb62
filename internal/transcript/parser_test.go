package transcript

import (
	"math"
	"testing"
)

const sampleSRT = `1
00:00:00,000 --> 00:00:01,830
I'm happy to
have you here today.

2
00:00:01,910 --> 00:00:03,610
As I'm sure you're all
aware, there's going
`

func TestParseSRT(t *testing.T) {
	segments, err := ParseSRT(sampleSRT)
	if err != nil {
		t.Fatalf("ParseSRT failed: %v", err)
	}
	if len(segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segments))
	}

	if segments[0].Start != 0 || math.Abs(segments[0].End-1.83) > 1e-9 {
		t.Errorf("segment 0 times = [%f, %f]", segments[0].Start, segments[0].End)
	}
	if segments[0].Text != "I'm happy to have you here today." {
		t.Errorf("segment 0 text = %q", segments[0].Text)
	}
	if math.Abs(segments[1].Start-1.91) > 1e-9 {
		t.Errorf("segment 1 start = %f, want 1.91", segments[1].Start)
	}
}

const sampleVTT = `WEBVTT

NOTE this is a comment

00:00:05.000 --> 00:00:08.500 align:start
First cue text

00:01:00.000 --> 00:01:02.000
Second cue
continues here
`

func TestParseVTT(t *testing.T) {
	segments, err := ParseVTT(sampleVTT)
	if err != nil {
		t.Fatalf("ParseVTT failed: %v", err)
	}
	if len(segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segments))
	}
	if segments[0].Start != 5.0 || segments[0].End != 8.5 {
		t.Errorf("segment 0 times = [%f, %f], want [5, 8.5]", segments[0].Start, segments[0].End)
	}
	if segments[1].Text != "Second cue continues here" {
		t.Errorf("segment 1 text = %q", segments[1].Text)
	}
}

func TestParseJSONEventsFormat(t *testing.T) {
	data := []byte(`{"events":[
		{"tStartMs":1000,"dDurationMs":2000,"segs":[{"utf8":"hello "},{"utf8":"world"}]},
		{"tStartMs":4000,"dDurationMs":1500,"segs":[{"utf8":"  "}]},
		{"tStartMs":5000,"dDurationMs":1000,"segs":[{"utf8":"next"}]}
	]}`)

	segments, err := ParseJSON(data)
	if err != nil {
		t.Fatalf("ParseJSON failed: %v", err)
	}
	if len(segments) != 2 {
		t.Fatalf("expected 2 segments (blank event skipped), got %d", len(segments))
	}
	if segments[0].Start != 1.0 || segments[0].End != 3.0 {
		t.Errorf("segment 0 times = [%f, %f], want [1, 3]", segments[0].Start, segments[0].End)
	}
	if segments[0].Text != "hello world" {
		t.Errorf("segment 0 text = %q", segments[0].Text)
	}
}

func TestParseJSONCaptionsFormat(t *testing.T) {
	data := []byte(`{"captions":[{"start":2.5,"end":4.0,"text":"caption text"}]}`)

	segments, err := ParseJSON(data)
	if err != nil {
		t.Fatalf("ParseJSON failed: %v", err)
	}
	if len(segments) != 1 || segments[0].Text != "caption text" {
		t.Fatalf("unexpected segments: %+v", segments)
	}
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"00:00:01,830", 1.83},
		{"00:01:30.500", 90.5},
		{"01:00:00", 3600},
		{"02:15.250", 135.25},
	}

	for _, tt := range tests {
		got, err := ParseTimestamp(tt.in)
		if err != nil {
			t.Errorf("ParseTimestamp(%q) failed: %v", tt.in, err)
			continue
		}
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("ParseTimestamp(%q) = %f, want %f", tt.in, got, tt.want)
		}
	}

	if _, err := ParseTimestamp("garbage"); err == nil {
		t.Error("expected error for invalid timestamp")
	}
}

func TestSegmentsInRangeInclusive(t *testing.T) {
	segments := []Segment{
		{Start: 0, End: 10, Text: "a"},
		{Start: 10, End: 20, Text: "b"},
		{Start: 30, End: 40, Text: "c"},
	}

	// Boundaries touch at exactly 20 and 30; inclusive test keeps both.
	got := SegmentsInRange(segments, 20, 30)
	if len(got) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(got))
	}
	if got[0].Text != "b" || got[1].Text != "c" {
		t.Errorf("wrong segments: %+v", got)
	}
}

func TestCleanText(t *testing.T) {
	in := "  hello   [Music] world (applause)  again "
	if got := CleanText(in); got != "hello world again" {
		t.Errorf("CleanText = %q", got)
	}
}

func TestStatistics(t *testing.T) {
	segments := []Segment{
		{Start: 0, End: 30, Text: "one two three"},
		{Start: 30, End: 60, Text: "four five"},
	}

	stats := Statistics(segments)
	if stats.TotalSegments != 2 || stats.TotalWords != 5 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.TotalDuration != 60 {
		t.Errorf("duration = %f, want 60", stats.TotalDuration)
	}
	if stats.WordsPerMinute != 5 {
		t.Errorf("wpm = %f, want 5", stats.WordsPerMinute)
	}
}

func TestFormatTimestamp(t *testing.T) {
	if got := FormatTimestamp(3725); got != "01:02:05" {
		t.Errorf("FormatTimestamp(3725) = %q", got)
	}
}
