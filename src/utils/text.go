package utils

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	breakTags  = regexp.MustCompile(`(?i)<br\s*/?>|</p>`)
	blankLines = regexp.MustCompile(`\n{3,}`)
)

// PlainText strips HTML markup from s, turning line and paragraph breaks
// into newlines. Text without markup is only trimmed.
func PlainText(s string) string {
	if !strings.Contains(s, "<") {
		return strings.TrimSpace(s)
	}
	marked := breakTags.ReplaceAllStringFunc(s, func(tag string) string {
		if strings.HasPrefix(strings.ToLower(tag), "</p") {
			return "\n\n"
		}
		return "\n"
	})
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(marked))
	if err != nil {
		return strings.TrimSpace(s)
	}
	text := strings.ReplaceAll(doc.Text(), "\r\n", "\n")
	text = blankLines.ReplaceAllString(text, "\n\n")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
