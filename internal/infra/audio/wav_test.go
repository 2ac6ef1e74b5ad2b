package audio_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"voice-to-docs/internal/domain"
	"voice-to-docs/internal/infra/audio"
)

func sineLike(n int) []int16 {
	s := make([]int16, n)
	for i := range s {
		s[i] = int16((i%200 - 100) * 300)
	}
	return s
}

func TestEncodeWAV_Header(t *testing.T) {
	buf := domain.RecordingBuffer{Samples: sineLike(1600), SampleRate: 16000, Channels: 1}

	data, err := audio.EncodeWAV(buf)
	if err != nil {
		t.Fatalf("EncodeWAV error: %v", err)
	}

	if !bytes.HasPrefix(data, []byte("RIFF")) || !bytes.Equal(data[8:12], []byte("WAVE")) {
		t.Fatalf("not a RIFF/WAVE payload: %q", data[:12])
	}
	if want := 44 + 1600*2; len(data) != want {
		t.Errorf("size: got %d, want %d", len(data), want)
	}
}

func TestWAVFile_ReadBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "note.wav")
	in := domain.RecordingBuffer{Samples: sineLike(8000), SampleRate: 16000, Channels: 1}

	if err := audio.WriteWAVFile(path, in); err != nil {
		t.Fatalf("WriteWAVFile error: %v", err)
	}

	out, err := audio.ReadWAVFile(path)
	if err != nil {
		t.Fatalf("ReadWAVFile error: %v", err)
	}

	if out.SampleRate != 16000 || out.Channels != 1 {
		t.Errorf("format: got %d Hz x%d", out.SampleRate, out.Channels)
	}
	if out.Duration() != 500*time.Millisecond {
		t.Errorf("duration: got %s, want 500ms", out.Duration())
	}
	for i := range in.Samples {
		if out.Samples[i] != in.Samples[i] {
			t.Fatalf("sample %d: got %d, want %d", i, out.Samples[i], in.Samples[i])
		}
	}
}

func TestReadWAVFile_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bogus.wav")
	if err := os.WriteFile(path, []byte("not audio at all"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := audio.ReadWAVFile(path); err == nil {
		t.Error("expected error for invalid wav")
	}
}

func writeRawWAV(t *testing.T, path string, bitDepth, format int) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	enc := wav.NewEncoder(f, 16000, bitDepth, 1, format)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: 16000},
		Data:           make([]int, 160),
		SourceBitDepth: bitDepth,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatal(err)
	}
	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestReadWAVFile_RejectsUnsupportedFormats(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name     string
		bitDepth int
		format   int
	}{
		{"float32", 32, 3},
		{"unsigned8", 8, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".wav")
			writeRawWAV(t, path, tt.bitDepth, tt.format)

			if _, err := audio.ReadWAVFile(path); err == nil {
				t.Error("expected unsupported format error")
			}
		})
	}
}
