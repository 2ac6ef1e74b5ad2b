package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"voice-to-docs/internal/domain"
)

const minTranscriptLength = 3

// Pipeline runs the transcription and document steps for one recording.
type Pipeline struct {
	stt       SpeechToText
	processor DocumentProcessor
	prompts   domain.PromptSet
	logger    *slog.Logger
}

func NewPipeline(stt SpeechToText, processor DocumentProcessor, prompts domain.PromptSet, logger *slog.Logger) *Pipeline {
	if prompts == nil {
		prompts = domain.DefaultPrompts()
	}
	return &Pipeline{
		stt:       stt,
		processor: processor,
		prompts:   prompts,
		logger:    logger,
	}
}

func (p *Pipeline) Transcribe(ctx context.Context, audio domain.RecordingBuffer) (string, error) {
	if audio.Empty() {
		return "", fmt.Errorf("%w: no audio recorded", domain.ErrTranscription)
	}

	p.logger.Info("transcribing", "samples", len(audio.Samples), "duration", audio.Duration())

	text, err := p.stt.Transcribe(ctx, audio)
	if err != nil {
		return "", wrapAs(domain.ErrTranscription, err)
	}

	text = strings.TrimSpace(text)
	if len(text) < minTranscriptLength {
		return "", fmt.Errorf("%w: no clear speech detected - try speaking louder or closer to the microphone", domain.ErrTranscription)
	}

	p.logger.Info("transcribed", "text", text)
	return text, nil
}

func (p *Pipeline) Process(ctx context.Context, transcript string, mode domain.Mode) (domain.ProcessedDocument, error) {
	p.logger.Info("processing transcript", "mode", mode, "chars", len(transcript))

	text, err := p.processor.Process(ctx, transcript, p.prompts.For(mode))
	if err != nil {
		return domain.ProcessedDocument{}, wrapAs(domain.ErrDocProcessing, err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return domain.ProcessedDocument{}, fmt.Errorf("%w: empty response", domain.ErrDocProcessing)
	}

	return domain.ProcessedDocument{
		Mode:       mode,
		Transcript: transcript,
		Text:       text,
	}, nil
}

func wrapAs(kind, err error) error {
	if errors.Is(err, kind) {
		return err
	}
	return fmt.Errorf("%w: %w", kind, err)
}

// IssueBody renders the issue description for a processed document.
func IssueBody(doc domain.ProcessedDocument) string {
	var sb strings.Builder
	sb.WriteString(doc.Text)
	sb.WriteString("\n\n---\n<details>\n<summary>Original voice transcript</summary>\n\n")
	sb.WriteString(doc.Transcript)
	sb.WriteString("\n</details>\n")
	return sb.String()
}
