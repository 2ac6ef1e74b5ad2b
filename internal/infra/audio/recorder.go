package audio

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"voice-to-docs/internal/application"
	"voice-to-docs/internal/domain"
)

// Stream is a capture stream that pushes samples to the callback it was
// opened with between Start and Stop.
type Stream interface {
	Start() error
	Stop() error
	Close() error
}

type StreamOpener func(deviceID int, format application.AudioFormat, onSamples func([]int16)) (Stream, error)

type Recorder struct {
	open     StreamOpener
	deviceID int
	format   application.AudioFormat
	logger   *slog.Logger

	mu     sync.Mutex
	nextID domain.RecordingHandle
	active *recording
}

type recording struct {
	handle  domain.RecordingHandle
	stream  Stream
	started time.Time

	mu      sync.Mutex
	samples []int16
}

func (r *recording) append(in []int16) {
	r.mu.Lock()
	r.samples = append(r.samples, in...)
	r.mu.Unlock()
}

func NewRecorder(open StreamOpener, deviceID int, format application.AudioFormat, logger *slog.Logger) *Recorder {
	return &Recorder{
		open:     open,
		deviceID: deviceID,
		format:   format,
		logger:   logger,
	}
}

func (r *Recorder) Start(_ context.Context) (domain.RecordingHandle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.active != nil {
		return 0, fmt.Errorf("%w: recording %d already in progress", domain.ErrInvalidRecordingState, r.active.handle)
	}

	r.nextID++
	rec := &recording{
		handle:  r.nextID,
		samples: make([]int16, 0, r.format.SampleRate*r.format.Channels*10),
	}

	stream, err := r.open(r.deviceID, r.format, rec.append)
	if err != nil {
		return 0, fmt.Errorf("opening stream: %w", err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		return 0, fmt.Errorf("starting stream: %w", err)
	}

	rec.stream = stream
	rec.started = time.Now()
	r.active = rec

	r.logger.Info("microphone started", "device", r.deviceID, "sampleRate", r.format.SampleRate)
	return rec.handle, nil
}

func (r *Recorder) Stop(handle domain.RecordingHandle) (domain.RecordingBuffer, error) {
	rec, err := r.release(handle)
	if err != nil {
		return domain.RecordingBuffer{}, err
	}

	rec.mu.Lock()
	samples := rec.samples
	rec.samples = nil
	rec.mu.Unlock()

	r.logger.Info("microphone stopped", "samples", len(samples), "elapsed", time.Since(rec.started))

	return domain.RecordingBuffer{
		Samples:    samples,
		SampleRate: r.format.SampleRate,
		Channels:   r.format.Channels,
	}, nil
}

func (r *Recorder) Discard(handle domain.RecordingHandle) error {
	_, err := r.release(handle)
	return err
}

// release stops and closes the stream of the active recording if handle
// refers to it.
func (r *Recorder) release(handle domain.RecordingHandle) (*recording, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.active == nil {
		return nil, fmt.Errorf("%w: no recording in progress", domain.ErrInvalidRecordingState)
	}
	if r.active.handle != handle {
		return nil, fmt.Errorf("%w: recording %d is not active", domain.ErrInvalidRecordingState, handle)
	}

	rec := r.active
	r.active = nil

	stopErr := rec.stream.Stop()
	closeErr := rec.stream.Close()
	if stopErr != nil {
		return nil, fmt.Errorf("stopping stream: %w", stopErr)
	}
	if closeErr != nil {
		r.logger.Warn("closing stream", "error", closeErr)
	}
	return rec, nil
}
