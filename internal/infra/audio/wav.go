package audio

import (
	"fmt"
	"io"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"voice-to-docs/internal/domain"
)

const pcmFormat = 1

// EncodeWAV renders a recording as a 16-bit PCM WAV file in memory.
func EncodeWAV(buf domain.RecordingBuffer) ([]byte, error) {
	f, err := os.CreateTemp("", "voicedocs-*.wav")
	if err != nil {
		return nil, fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(f.Name())
	defer f.Close()

	if err := writeWAV(f, buf); err != nil {
		return nil, err
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewinding wav: %w", err)
	}
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("reading wav: %w", err)
	}
	return data, nil
}

func WriteWAVFile(path string, buf domain.RecordingBuffer) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := writeWAV(f, buf); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeWAV(w io.WriteSeeker, buf domain.RecordingBuffer) error {
	channels := buf.Channels
	if channels <= 0 {
		channels = 1
	}

	enc := wav.NewEncoder(w, buf.SampleRate, 16, channels, pcmFormat)
	ib := &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: channels,
			SampleRate:  buf.SampleRate,
		},
		Data:           make([]int, len(buf.Samples)),
		SourceBitDepth: 16,
	}
	for i, s := range buf.Samples {
		ib.Data[i] = int(s)
	}

	if err := enc.Write(ib); err != nil {
		enc.Close()
		return fmt.Errorf("encoding wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalizing wav: %w", err)
	}
	return nil
}

// ReadWAVFile decodes a PCM WAV file into a recording buffer, scaling deeper
// samples down to 16 bits.
func ReadWAVFile(path string) (domain.RecordingBuffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.RecordingBuffer{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return domain.RecordingBuffer{}, fmt.Errorf("%s is not a valid wav file", path)
	}

	if dec.WavAudioFormat != pcmFormat {
		return domain.RecordingBuffer{}, fmt.Errorf("%s: unsupported wav format %d (want integer PCM)", path, dec.WavAudioFormat)
	}
	switch dec.BitDepth {
	case 16, 24, 32:
	default:
		return domain.RecordingBuffer{}, fmt.Errorf("%s: unsupported bit depth %d (want 16, 24 or 32)", path, dec.BitDepth)
	}

	pcm, err := dec.FullPCMBuffer()
	if err != nil {
		return domain.RecordingBuffer{}, fmt.Errorf("decoding %s: %w", path, err)
	}

	shift := int(dec.BitDepth) - 16
	samples := make([]int16, len(pcm.Data))
	for i, v := range pcm.Data {
		switch {
		case shift > 0:
			v >>= shift
		case shift < 0:
			v <<= -shift
		}
		samples[i] = int16(v)
	}

	return domain.RecordingBuffer{
		Samples:    samples,
		SampleRate: int(dec.SampleRate),
		Channels:   int(dec.NumChans),
	}, nil
}
