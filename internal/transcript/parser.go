package transcript

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// LoadSubtitles parses the first usable subtitle file, preferring manual
// captions over auto-generated ones. Returns nil when no file parses.
func LoadSubtitles(paths []string) ([]Segment, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	var manual, auto []string
	for _, p := range paths {
		lower := strings.ToLower(p)
		if strings.Contains(lower, "auto") || strings.Contains(lower, "generated") {
			auto = append(auto, p)
		} else {
			manual = append(manual, p)
		}
	}

	for _, p := range append(manual, auto...) {
		segments, err := ParseFile(p)
		if err != nil {
			log.Printf("Skipping subtitle file %s: %v", filepath.Base(p), err)
			continue
		}
		if len(segments) > 0 {
			log.Printf("Loaded %d segments from %s", len(segments), filepath.Base(p))
			return segments, nil
		}
	}

	return nil, fmt.Errorf("no parseable subtitle file among %d candidates", len(paths))
}

// ParseFile dispatches on the file extension.
func ParseFile(path string) ([]Segment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read subtitle file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".srt":
		return ParseSRT(string(data))
	case ".vtt":
		return ParseVTT(string(data))
	case ".json":
		return ParseJSON(data)
	default:
		return nil, fmt.Errorf("unsupported subtitle format: %s", filepath.Ext(path))
	}
}

// ParseSRT parses SubRip text:
//
//	1
//	00:00:00,000 --> 00:00:01,830
//	first line
//	second line
func ParseSRT(content string) ([]Segment, error) {
	var segments []Segment
	var current *Segment

	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" {
			if current != nil && current.Text != "" {
				segments = append(segments, *current)
			}
			current = nil
			continue
		}

		if isDigitsOnly(line) && current == nil {
			continue
		}

		if strings.Contains(line, "-->") {
			start, end, err := parseTimeRange(line)
			if err != nil {
				return nil, err
			}
			current = &Segment{Start: start, End: end}
			continue
		}

		if current != nil {
			if current.Text != "" {
				current.Text += " "
			}
			current.Text += line
		}
	}
	if current != nil && current.Text != "" {
		segments = append(segments, *current)
	}

	return segments, nil
}

// ParseVTT parses WebVTT, ignoring the header, NOTE blocks, and cue
// settings after the time range.
func ParseVTT(content string) ([]Segment, error) {
	var segments []Segment
	var current *Segment

	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || line == "WEBVTT" || strings.HasPrefix(line, "NOTE") {
			if line == "" && current != nil && current.Text != "" {
				segments = append(segments, *current)
				current = nil
			}
			continue
		}

		if strings.Contains(line, "-->") {
			if current != nil && current.Text != "" {
				segments = append(segments, *current)
			}
			start, end, err := parseTimeRange(line)
			if err != nil {
				return nil, err
			}
			current = &Segment{Start: start, End: end}
			continue
		}

		if current != nil {
			if current.Text != "" {
				current.Text += " "
			}
			current.Text += line
		}
	}
	if current != nil && current.Text != "" {
		segments = append(segments, *current)
	}

	return segments, nil
}

// youtubeTimedText is the JSON timed-text format yt-dlp writes.
type youtubeTimedText struct {
	Events []struct {
		StartMs    float64 `json:"tStartMs"`
		DurationMs float64 `json:"dDurationMs"`
		Segs       []struct {
			UTF8 string `json:"utf8"`
		} `json:"segs"`
	} `json:"events"`
	Captions []struct {
		Start float64 `json:"start"`
		End   float64 `json:"end"`
		Text  string  `json:"text"`
	} `json:"captions"`
}

// ParseJSON handles both the YouTube events format and the simpler captions
// array form.
func ParseJSON(data []byte) ([]Segment, error) {
	var doc youtubeTimedText
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse JSON subtitles: %w", err)
	}

	var segments []Segment

	for _, event := range doc.Events {
		var text strings.Builder
		for _, seg := range event.Segs {
			text.WriteString(seg.UTF8)
		}
		trimmed := strings.TrimSpace(text.String())
		if trimmed == "" {
			continue
		}
		segments = append(segments, Segment{
			Start: event.StartMs / 1000.0,
			End:   (event.StartMs + event.DurationMs) / 1000.0,
			Text:  trimmed,
		})
	}

	for _, caption := range doc.Captions {
		text := strings.TrimSpace(caption.Text)
		if text == "" {
			continue
		}
		segments = append(segments, Segment{
			Start: caption.Start,
			End:   caption.End,
			Text:  text,
		})
	}

	return segments, nil
}

func parseTimeRange(line string) (float64, float64, error) {
	parts := strings.SplitN(line, "-->", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid time range: %q", line)
	}

	// VTT cue settings may trail the end timestamp.
	endField := strings.Fields(strings.TrimSpace(parts[1]))
	if len(endField) == 0 {
		return 0, 0, fmt.Errorf("invalid time range: %q", line)
	}

	start, err := ParseTimestamp(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, err
	}
	end, err := ParseTimestamp(endField[0])
	if err != nil {
		return 0, 0, err
	}

	return start, end, nil
}

// ParseTimestamp converts HH:MM:SS,mmm / HH:MM:SS.mmm / MM:SS.mmm to
// seconds.
func ParseTimestamp(value string) (float64, error) {
	value = strings.ReplaceAll(value, ",", ".")
	parts := strings.Split(value, ":")

	var hours, minutes int
	var seconds float64
	var err error

	switch len(parts) {
	case 3:
		if hours, err = strconv.Atoi(parts[0]); err != nil {
			return 0, fmt.Errorf("invalid timestamp %q: %w", value, err)
		}
		if minutes, err = strconv.Atoi(parts[1]); err != nil {
			return 0, fmt.Errorf("invalid timestamp %q: %w", value, err)
		}
		if seconds, err = strconv.ParseFloat(parts[2], 64); err != nil {
			return 0, fmt.Errorf("invalid timestamp %q: %w", value, err)
		}
	case 2:
		if minutes, err = strconv.Atoi(parts[0]); err != nil {
			return 0, fmt.Errorf("invalid timestamp %q: %w", value, err)
		}
		if seconds, err = strconv.ParseFloat(parts[1], 64); err != nil {
			return 0, fmt.Errorf("invalid timestamp %q: %w", value, err)
		}
	default:
		return 0, fmt.Errorf("invalid timestamp format: %q", value)
	}

	return float64(hours)*3600 + float64(minutes)*60 + seconds, nil
}

func isDigitsOnly(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
