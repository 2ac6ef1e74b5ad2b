package application_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"voice-to-docs/internal/application"
	"voice-to-docs/internal/domain"
)

func newPipeline(stt *mockSTT, proc *mockProcessor, prompts domain.PromptSet) *application.Pipeline {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return application.NewPipeline(stt, proc, prompts, logger)
}

func TestPipeline_TranscribeRejectsShortText(t *testing.T) {
	p := newPipeline(&mockSTT{text: "  a \n"}, &mockProcessor{}, nil)

	_, err := p.Transcribe(context.Background(), second())
	if !errors.Is(err, domain.ErrTranscription) {
		t.Fatalf("expected ErrTranscription, got %v", err)
	}
}

func TestPipeline_TranscribeEmptyBufferSkipsSTT(t *testing.T) {
	stt := &mockSTT{text: "hello world"}
	p := newPipeline(stt, &mockProcessor{}, nil)

	_, err := p.Transcribe(context.Background(), domain.RecordingBuffer{SampleRate: 16000, Channels: 1})
	if !errors.Is(err, domain.ErrTranscription) {
		t.Fatalf("expected ErrTranscription, got %v", err)
	}
	if stt.calls != 0 {
		t.Error("STT should not be called for an empty buffer")
	}
}

func TestPipeline_ProcessUsesModePrompt(t *testing.T) {
	custom := domain.DefaultPrompts()
	custom[domain.ModeAgilePM] = domain.Prompt{System: "You are a PM.", Instruction: "Ticket:"}
	proc := &mockProcessor{text: "  Title: Add dark mode  "}
	p := newPipeline(&mockSTT{}, proc, custom)

	doc, err := p.Process(context.Background(), "we need dark mode", domain.ModeAgilePM)
	if err != nil {
		t.Fatalf("Process error: %v", err)
	}

	if doc.Text != "Title: Add dark mode" {
		t.Errorf("text should be trimmed, got %q", doc.Text)
	}
	if proc.prompts[0].System != "You are a PM." {
		t.Errorf("prompt: got %+v", proc.prompts[0])
	}
}

func TestPipeline_ProcessErrors(t *testing.T) {
	p := newPipeline(&mockSTT{}, &mockProcessor{text: "   "}, nil)
	if _, err := p.Process(context.Background(), "hello there", domain.ModeNormal); !errors.Is(err, domain.ErrDocProcessing) {
		t.Errorf("empty response: expected ErrDocProcessing, got %v", err)
	}

	upstream := errors.New("529 overloaded")
	p = newPipeline(&mockSTT{}, &mockProcessor{err: upstream}, nil)
	_, err := p.Process(context.Background(), "hello there", domain.ModeNormal)
	if !errors.Is(err, domain.ErrDocProcessing) || !errors.Is(err, upstream) {
		t.Errorf("expected wrapped upstream error, got %v", err)
	}
}

func TestIssueBody_IncludesTranscript(t *testing.T) {
	body := application.IssueBody(domain.ProcessedDocument{
		Text:       "## Story\n\nAs a user...",
		Transcript: "make a github issue for the login bug",
	})

	if !strings.HasPrefix(body, "## Story") {
		t.Errorf("body should start with the document: %q", body)
	}
	if !strings.Contains(body, "make a github issue for the login bug") {
		t.Error("body should include the transcript")
	}
}

type failingNotifier struct{ err error }

func (f failingNotifier) Notify(_ context.Context, _ string) error { return f.err }

func TestMultiNotifier_FansOutAndJoinsErrors(t *testing.T) {
	first := &mockNotifier{}
	last := &mockNotifier{}
	boom := errors.New("pushover: 500")

	multi := application.MultiNotifier{first, failingNotifier{err: boom}, last}
	err := multi.Notify(context.Background(), "Document ready")

	if !errors.Is(err, boom) {
		t.Errorf("expected joined error, got %v", err)
	}
	if len(first.messages) != 1 || len(last.messages) != 1 {
		t.Error("every notifier should receive the message")
	}
}
