package application

import (
	"context"

	"voice-to-docs/internal/domain"
)

// Recorder captures audio between Start and Stop. At most one recording is
// active at a time.
type Recorder interface {
	Start(ctx context.Context) (domain.RecordingHandle, error)
	Stop(handle domain.RecordingHandle) (domain.RecordingBuffer, error)
	Discard(handle domain.RecordingHandle) error
}

type DeviceLister interface {
	ListDevices() ([]domain.DeviceInfo, error)
}

// AudioFormat describes the 16-bit PCM stream a Recorder captures.
type AudioFormat struct {
	SampleRate int
	Channels   int
}

func DefaultAudioFormat() AudioFormat {
	return AudioFormat{
		SampleRate: 16000,
		Channels:   1,
	}
}
