package document

import (
	"regexp"
	"strings"
)

var (
	mdHeaderRe    = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	mdBoldRe      = regexp.MustCompile(`\*\*(.*?)\*\*`)
	mdItalicRe    = regexp.MustCompile(`\*(.*?)\*`)
	mdUnderBoldRe = regexp.MustCompile(`__(.*?)__`)
	mdUnderRe     = regexp.MustCompile(`_(.*?)_`)
	mdBulletRe    = regexp.MustCompile(`(?m)^\s*[-*+]\s+`)
	mdNumListRe   = regexp.MustCompile(`(?m)^\s*\d+\.\s+`)
	mdCodeBlockRe = regexp.MustCompile("(?s)```.*?```")
	mdInlineRe    = regexp.MustCompile("`(.*?)`")
	mdLinkRe      = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
	blankLinesRe  = regexp.MustCompile(`\n\s*\n`)
	multiSpaceRe  = regexp.MustCompile(` +`)
)

// stripMarkdown flattens markdown formatting the model sometimes emits so
// enhanced text renders as plain prose in every output format.
func stripMarkdown(text string) string {
	text = mdCodeBlockRe.ReplaceAllString(text, "")
	text = mdHeaderRe.ReplaceAllString(text, "")
	text = mdBoldRe.ReplaceAllString(text, "$1")
	text = mdItalicRe.ReplaceAllString(text, "$1")
	text = mdUnderBoldRe.ReplaceAllString(text, "$1")
	text = mdUnderRe.ReplaceAllString(text, "$1")
	text = mdBulletRe.ReplaceAllString(text, "")
	text = mdNumListRe.ReplaceAllString(text, "")
	text = mdInlineRe.ReplaceAllString(text, "$1")
	text = mdLinkRe.ReplaceAllString(text, "$1")
	text = blankLinesRe.ReplaceAllString(text, "\n\n")
	text = multiSpaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
