package domain

import (
	"fmt"
	"strings"
)

type Mode string

const (
	ModeNormal  Mode = "normal"
	ModeAgilePM Mode = "agile-pm"
)

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "normal", "docs", "engineering":
		return ModeNormal, nil
	case "agile-pm", "agile", "agilepm", "pm":
		return ModeAgilePM, nil
	default:
		return "", fmt.Errorf("unknown mode %q (want normal or agile-pm)", s)
	}
}

// Next cycles through modes in declaration order.
func (m Mode) Next() Mode {
	if m == ModeAgilePM {
		return ModeNormal
	}
	return ModeAgilePM
}

func (m Mode) Label() string {
	switch m {
	case ModeAgilePM:
		return "Agile Product Manager"
	default:
		return "Engineering Docs"
	}
}

// Prompt is what a mode sends to the LLM alongside the transcript.
type Prompt struct {
	System      string
	Instruction string
}

func (p Prompt) UserMessage(transcript string) string {
	if p.Instruction == "" {
		return transcript
	}
	return p.Instruction + "\n\n" + transcript
}

type PromptSet map[Mode]Prompt

func (ps PromptSet) For(m Mode) Prompt {
	if p, ok := ps[m]; ok {
		return p
	}
	return DefaultPrompts()[m]
}

const normalSystemPrompt = `You are an expert software engineer who helps convert casual speech into clear, actionable engineering requirements.

Your task is to take my spoken transcript and transform it into:
- Clear bug reports with steps to reproduce
- Structured feature requirements
- Technical specifications
- Implementation tasks
- Code review feedback

Focus on making the speech more precise, organized, and actionable for engineering work. Preserve the technical intent but make it more structured and professional.`

const agilePMSystemPrompt = `You are an experienced agile product manager who turns spoken notes into work items a development team can pick up.

Rewrite the transcript as a single ticket in markdown:
- Start with a first line of the form "# <short imperative title>"
- A "## User Story" section ("As a ..., I want ..., so that ...")
- A "## Acceptance Criteria" section as a checklist
- A "## Notes" section for technical details, open questions and risks

If the speaker asks for an issue or ticket to be created, do not mention that request in the output. Keep the wording concise and testable.`

func DefaultPrompts() PromptSet {
	return PromptSet{
		ModeNormal: {
			System:      normalSystemPrompt,
			Instruction: "Please convert this casual speech into clear, actionable engineering requirements:",
		},
		ModeAgilePM: {
			System:      agilePMSystemPrompt,
			Instruction: "Please turn this spoken note into an agile ticket:",
		},
	}
}
