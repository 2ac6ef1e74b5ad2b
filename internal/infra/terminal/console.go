package terminal

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"voice-to-docs/internal/domain"
	"voice-to-docs/internal/infra"
)

var credentialNames = map[string]string{
	"whisper":  "OPENAI_API_KEY",
	"claude":   "ANTHROPIC_API_KEY",
	"gemini":   "GEMINI_API_KEY",
	"github":   "GITHUB_TOKEN",
	"pushover": "the Pushover token",
}

// Console writes styled output for the interactive session.
type Console struct {
	out io.Writer
}

func NewConsole(out io.Writer) *Console {
	return &Console{out: out}
}

func (c *Console) println(s string) {
	fmt.Fprintln(c.out, s)
}

func (c *Console) Info(msg string) {
	c.println(InfoStyle.Render(msg))
}

func (c *Console) Success(msg string) {
	c.println(SuccessStyle.Render("✓ " + msg))
}

func (c *Console) Warn(msg string) {
	c.println(WarnStyle.Render("! " + msg))
}

// Error prints err, plus a hint when an upstream API rejected the credential.
func (c *Console) Error(err error) {
	c.println(ErrorStyle.Render("✗ Error: " + err.Error()))

	var apiErr *infra.APIError
	if errors.As(err, &apiErr) && apiErr.Unauthorized() {
		name, ok := credentialNames[apiErr.Service]
		if !ok {
			name = "the " + apiErr.Service + " credentials"
		}
		c.println(MutedStyle.Render("  Check " + name))
	}
}

func (c *Console) Prompt(msg string) {
	c.println("")
	c.println(PromptStyle.Render(msg))
}

func (c *Console) Transcript(text string) {
	c.println("")
	c.println(TranscriptTitleStyle.Render("Original Transcript:"))
	c.println(BodyStyle.Render(text))
}

func (c *Console) Document(doc domain.ProcessedDocument) {
	title := "Engineering Requirements:"
	if doc.Mode == domain.ModeAgilePM {
		title = "Agile Ticket:"
	}
	c.println("")
	c.println(DocumentTitleStyle.Render(title))
	c.println(BodyStyle.Render(doc.Text))
}

func (c *Console) Devices(devices []domain.DeviceInfo, selected int) {
	c.println(DocumentTitleStyle.Render("Available Audio Input Devices:"))
	found := false
	for _, d := range devices {
		if !d.IsInput() {
			continue
		}
		found = true
		var marks []string
		if d.IsDefault {
			marks = append(marks, "default")
		}
		if d.ID == selected {
			marks = append(marks, "auto-selected")
		}
		line := fmt.Sprintf("  %d: %s (%d channels, %.0f Hz)", d.ID, d.Name, d.MaxInputChannels, d.DefaultSampleRate)
		if len(marks) > 0 {
			line += " [" + strings.Join(marks, ", ") + "]"
		}
		c.println(SuccessStyle.Render(line))
	}
	if !found {
		c.println(ErrorStyle.Render("No audio input devices found"))
		return
	}
	c.println("")
	c.println(InfoStyle.Render("Usage: voicedocs --device <index>"))
	c.println(InfoStyle.Render("   or: export AUDIO_DEVICE=<index>"))
}

func (c *Console) History(entries []domain.HistoryEntry) {
	if len(entries) == 0 {
		c.println(MutedStyle.Render("No documents yet"))
		return
	}
	for _, e := range entries {
		doc := domain.ProcessedDocument{Mode: e.Mode, Transcript: e.Transcript, Text: e.Document}
		header := fmt.Sprintf("%s  [%s]  %s", e.CreatedAt.Local().Format(time.DateTime), e.Mode, doc.Title())
		c.println(DocumentTitleStyle.Render(header))
		if e.IssueURL != "" {
			c.println(MutedStyle.Render("  issue: " + e.IssueURL))
		}
	}
}
