//go:build !portaudio
// +build !portaudio

package audio

import (
	"errors"

	"voice-to-docs/internal/application"
	"voice-to-docs/internal/domain"
)

var errNoPortAudio = errors.New("microphone capture not available: rebuild with -tags portaudio")

func Initialize() (func(), error) {
	return nil, errNoPortAudio
}

type PortAudioDevices struct{}

func (PortAudioDevices) ListDevices() ([]domain.DeviceInfo, error) {
	return nil, errNoPortAudio
}

func OpenPortAudioStream(_ int, _ application.AudioFormat, _ func([]int16)) (Stream, error) {
	return nil, errNoPortAudio
}
