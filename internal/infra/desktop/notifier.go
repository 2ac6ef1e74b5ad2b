package desktop

import (
	"context"
	"fmt"

	"github.com/gen2brain/beeep"
)

// Notifier shows a native desktop notification.
type Notifier struct {
	title string
	send  func(title, message, icon string) error
}

func NewNotifier(title string) *Notifier {
	return &Notifier{title: title, send: beeep.Notify}
}

func (n *Notifier) Notify(_ context.Context, message string) error {
	if err := n.send(n.title, message, ""); err != nil {
		return fmt.Errorf("desktop notification: %w", err)
	}
	return nil
}
