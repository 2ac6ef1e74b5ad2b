package application

import "voice-to-docs/internal/domain"

// UI is the controller's view of the terminal.
type UI interface {
	Info(msg string)
	Success(msg string)
	Warn(msg string)
	Error(err error)
	Prompt(msg string)
	Transcript(text string)
	Document(doc domain.ProcessedDocument)
}

const helpText = `Commands:
  Enter, r   start recording (Enter or s stops it)
  m          toggle mode
  n          switch to engineering docs mode
  a          switch to agile product manager mode
  q          quit
  h          show this help`
