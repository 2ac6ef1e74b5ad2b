package application

import "strings"

func DefaultIssueTriggers() []string {
	return []string{
		"make a github issue",
		"create a github issue",
		"open a github issue",
		"create an issue",
		"make an issue",
		"open an issue",
		"file an issue",
		"put this in github",
		"add this to github",
	}
}

// HasIssueIntent reports whether the transcript contains any trigger phrase,
// ignoring case.
func HasIssueIntent(transcript string, triggers []string) bool {
	text := strings.ToLower(transcript)
	for _, t := range triggers {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" && strings.Contains(text, t) {
			return true
		}
	}
	return false
}
