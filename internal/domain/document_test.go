package domain_test

import (
	"strings"
	"testing"

	"voice-to-docs/internal/domain"
)

func TestProcessedDocument_Title(t *testing.T) {
	tests := []struct {
		name string
		doc  domain.ProcessedDocument
		want string
	}{
		{
			name: "markdown heading",
			doc:  domain.ProcessedDocument{Text: "\n# Fix login crash on submit\n\n## User Story\n..."},
			want: "Fix login crash on submit",
		},
		{
			name: "title prefix",
			doc:  domain.ProcessedDocument{Text: "**Title: Add dark mode**\nbody"},
			want: "Add dark mode",
		},
		{
			name: "falls back to transcript",
			doc:  domain.ProcessedDocument{Transcript: "  the button is broken  ", Text: "\n\n"},
			want: "the button is broken",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.doc.Title(); got != tt.want {
				t.Errorf("Title: got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestProcessedDocument_TitleTruncates(t *testing.T) {
	doc := domain.ProcessedDocument{Text: "# " + strings.Repeat("a", 200)}

	got := doc.Title()
	if n := len([]rune(got)); n != 80 {
		t.Errorf("title length: got %d, want 80", n)
	}
	if !strings.HasSuffix(got, "…") {
		t.Errorf("title should end with ellipsis, got %q", got)
	}
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]domain.Mode{
		"":         domain.ModeNormal,
		"Normal":   domain.ModeNormal,
		"agile-pm": domain.ModeAgilePM,
		"PM":       domain.ModeAgilePM,
	} {
		got, err := domain.ParseMode(in)
		if err != nil {
			t.Fatalf("ParseMode(%q) error: %v", in, err)
		}
		if got != want {
			t.Errorf("ParseMode(%q): got %s, want %s", in, got, want)
		}
	}

	if _, err := domain.ParseMode("scrum-master"); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestPromptSet_ForFallsBackToDefaults(t *testing.T) {
	ps := domain.PromptSet{domain.ModeNormal: {System: "custom"}}

	if got := ps.For(domain.ModeNormal).System; got != "custom" {
		t.Errorf("normal prompt: got %q, want custom", got)
	}
	if got := ps.For(domain.ModeAgilePM); got != domain.DefaultPrompts()[domain.ModeAgilePM] {
		t.Error("agile-pm prompt should fall back to default")
	}
}
