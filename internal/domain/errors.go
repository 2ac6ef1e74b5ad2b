package domain

import "errors"

var (
	ErrDeviceNotFound        = errors.New("audio device not found")
	ErrInvalidRecordingState = errors.New("invalid recording state")
	ErrTranscription         = errors.New("transcription failed")
	ErrDocProcessing         = errors.New("document processing failed")
	ErrIssueCreation         = errors.New("issue creation failed")
	ErrConfiguration         = errors.New("configuration error")
)
