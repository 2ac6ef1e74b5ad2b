package domain

import "time"

// RecordingHandle identifies one capture started by a Recorder.
type RecordingHandle uint64

type RecordingBuffer struct {
	Samples    []int16
	SampleRate int
	Channels   int
}

func (b RecordingBuffer) Empty() bool {
	return len(b.Samples) == 0
}

func (b RecordingBuffer) Duration() time.Duration {
	if b.SampleRate <= 0 || b.Channels <= 0 {
		return 0
	}
	frames := len(b.Samples) / b.Channels
	return time.Duration(frames) * time.Second / time.Duration(b.SampleRate)
}
