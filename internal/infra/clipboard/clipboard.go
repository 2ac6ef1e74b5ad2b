package clipboard

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
)

type System struct{}

// NewSystem returns the OS clipboard, or an error when no clipboard utility
// is available (e.g. a headless Linux box without xclip/xsel/wl-copy).
func NewSystem() (*System, error) {
	if clipboard.Unsupported {
		return nil, errors.New("clipboard not supported on this system")
	}
	return &System{}, nil
}

func (s *System) Copy(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("writing clipboard: %w", err)
	}
	return nil
}
