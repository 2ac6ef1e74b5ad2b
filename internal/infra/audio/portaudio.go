//go:build portaudio
// +build portaudio

package audio

import (
	"fmt"

	"github.com/gordonklaus/portaudio"

	"voice-to-docs/internal/application"
	"voice-to-docs/internal/domain"
)

const framesPerBuffer = 1024

// Initialize sets up PortAudio and returns the matching teardown.
func Initialize() (func(), error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("initializing portaudio: %w", err)
	}
	return func() { portaudio.Terminate() }, nil
}

type PortAudioDevices struct{}

func (PortAudioDevices) ListDevices() ([]domain.DeviceInfo, error) {
	devices, err := portaudio.Devices()
	if err != nil {
		return nil, fmt.Errorf("listing devices: %w", err)
	}

	defaultInput, err := portaudio.DefaultInputDevice()
	if err != nil {
		defaultInput = nil
	}

	result := make([]domain.DeviceInfo, 0, len(devices))
	for i, dev := range devices {
		result = append(result, domain.DeviceInfo{
			ID:                i,
			Name:              dev.Name,
			MaxInputChannels:  dev.MaxInputChannels,
			DefaultSampleRate: dev.DefaultSampleRate,
			IsDefault:         defaultInput != nil && dev.Name == defaultInput.Name,
		})
	}
	return result, nil
}

// OpenPortAudioStream opens an input stream on the device at index deviceID.
func OpenPortAudioStream(deviceID int, format application.AudioFormat, onSamples func([]int16)) (Stream, error) {
	devices, err := portaudio.Devices()
	if err != nil {
		return nil, fmt.Errorf("listing devices: %w", err)
	}
	if deviceID < 0 || deviceID >= len(devices) {
		return nil, fmt.Errorf("%w: device %d", domain.ErrDeviceNotFound, deviceID)
	}

	device := devices[deviceID]
	if device.MaxInputChannels <= 0 {
		return nil, fmt.Errorf("%w: device %d (%s) has no input channels", domain.ErrDeviceNotFound, deviceID, device.Name)
	}

	params := portaudio.StreamParameters{
		Input: portaudio.StreamDeviceParameters{
			Device:   device,
			Channels: format.Channels,
			Latency:  device.DefaultHighInputLatency,
		},
		SampleRate:      float64(format.SampleRate),
		FramesPerBuffer: framesPerBuffer,
	}

	stream, err := portaudio.OpenStream(params, func(in []int16) {
		onSamples(in)
	})
	if err != nil {
		return nil, fmt.Errorf("opening stream: %w", err)
	}
	return stream, nil
}
