package domain

import (
	"strings"
	"time"
)

const maxTitleRunes = 80

type ProcessedDocument struct {
	Mode       Mode
	Transcript string
	Text       string
}

// Title derives an issue title from the first non-empty line of the document.
func (d ProcessedDocument) Title() string {
	for _, line := range strings.Split(d.Text, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "#*> ")
		line = strings.TrimSpace(strings.Trim(line, "*_`"))
		if lower := strings.ToLower(line); strings.HasPrefix(lower, "title:") {
			line = strings.TrimSpace(line[len("title:"):])
		}
		if line == "" {
			continue
		}
		return truncateRunes(line, maxTitleRunes)
	}
	return truncateRunes(strings.TrimSpace(d.Transcript), maxTitleRunes)
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return strings.TrimSpace(string(r[:n-1])) + "…"
}

type Issue struct {
	Number int
	URL    string
}

type HistoryEntry struct {
	ID         string
	Mode       Mode
	Transcript string
	Document   string
	IssueURL   string
	CreatedAt  time.Time
}
