package enhance

import (
	"fmt"
	"strings"
)

// Enhancement levels.
const (
	LevelBasic    = "basic"
	LevelDetailed = "detailed"
	LevelAcademic = "academic"
)

const basicPrompt = `Improve this transcript segment:
- Fix grammar and spelling errors
- Improve sentence structure and clarity
- Use paragraphs where appropriate
- Keep factual and descriptive tone

Transcript: %s

Provide only the corrected text.`

const detailedPrompt = `Enhance this transcript segment covering multiple slides:
- Fix transcription errors
- Improve sentence structure and clarity
- Add factual explanations and context
- Structure content logically
- Keep text concise and focused
- Extract key concepts

Transcript: %s

Format response as:
ENHANCED_TEXT: [enhanced transcript - keep concise]
KEY_POINTS: [bullet points of key concepts]`

const academicPrompt = `Convert to academic language:
- Use formal, scholarly language
- Improve sentence structure and clarity
- Add proper context and explanations
- Structure content logically
- Include key concepts and definitions

Transcript: %s

Format response as:
ACADEMIC_TEXT: [academic version]
KEY_CONCEPTS: [important concepts and definitions]`

func enhancementPrompt(text, level string) (string, error) {
	switch level {
	case LevelBasic:
		return fmt.Sprintf(basicPrompt, text), nil
	case LevelDetailed:
		return fmt.Sprintf(detailedPrompt, text), nil
	case LevelAcademic:
		return fmt.Sprintf(academicPrompt, text), nil
	default:
		return "", fmt.Errorf("unknown enhancement level: %s", level)
	}
}

// parseEnhancedText extracts the enhanced transcript from a structured
// response, falling back to the whole response for the basic format.
func parseEnhancedText(response string) string {
	for _, marker := range []struct{ text, points string }{
		{"ENHANCED_TEXT:", "KEY_POINTS:"},
		{"ACADEMIC_TEXT:", "KEY_CONCEPTS:"},
	} {
		if idx := strings.Index(response, marker.text); idx >= 0 {
			section := response[idx+len(marker.text):]
			if end := strings.Index(section, marker.points); end >= 0 {
				section = section[:end]
			}
			return strings.TrimSpace(section)
		}
	}
	return strings.TrimSpace(response)
}

// parseKeyPoints extracts the bullet list following the key-points marker.
func parseKeyPoints(response string) []string {
	var section string
	for _, marker := range []string{"KEY_POINTS:", "KEY_CONCEPTS:"} {
		if idx := strings.Index(response, marker); idx >= 0 {
			section = response[idx+len(marker):]
			break
		}
	}
	if section == "" {
		return nil
	}

	var points []string
	for _, line := range strings.Split(section, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		line = strings.TrimLeft(line, "-•* ")
		if line != "" {
			points = append(points, line)
		}
	}
	return points
}
