package audio

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"voice-to-docs/internal/domain"
)

const processedSuffix = ".processed"

// FileSource polls a directory for dropped WAV recordings.
type FileSource struct {
	dir       string
	interval  time.Duration
	processed map[string]bool
	mu        sync.Mutex
}

func NewFileSource(dir string) *FileSource {
	return &FileSource{
		dir:       dir,
		interval:  500 * time.Millisecond,
		processed: make(map[string]bool),
	}
}

func (f *FileSource) Name() string {
	return "file"
}

func (f *FileSource) Dir() string {
	return f.dir
}

func (f *FileSource) Start(_ context.Context) error {
	if err := os.MkdirAll(f.dir, 0755); err != nil {
		return fmt.Errorf("creating audio dir: %w", err)
	}
	return nil
}

// Next blocks until a new recording shows up and returns its path and
// samples. The file is renamed with a .processed suffix once read.
func (f *FileSource) Next(ctx context.Context) (string, domain.RecordingBuffer, error) {
	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	for {
		path, buf, err := f.checkForNewFile()
		if err != nil || path != "" {
			return path, buf, err
		}

		select {
		case <-ctx.Done():
			return "", domain.RecordingBuffer{}, ctx.Err()
		case <-ticker.C:
		}
	}
}

func (f *FileSource) checkForNewFile() (string, domain.RecordingBuffer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	entries, err := os.ReadDir(f.dir)
	if err != nil {
		return "", domain.RecordingBuffer{}, fmt.Errorf("reading dir: %w", err)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".wav") {
			continue
		}

		path := filepath.Join(f.dir, entry.Name())
		if f.processed[path] {
			continue
		}
		f.processed[path] = true

		buf, err := ReadWAVFile(path)
		if renameErr := os.Rename(path, path+processedSuffix); renameErr != nil && err == nil {
			err = fmt.Errorf("marking %s processed: %w", path, renameErr)
		}
		if err != nil {
			return path, domain.RecordingBuffer{}, err
		}
		return path, buf, nil
	}

	return "", domain.RecordingBuffer{}, nil
}
