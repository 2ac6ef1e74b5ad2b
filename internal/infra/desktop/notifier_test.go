package desktop

import (
	"context"
	"errors"
	"testing"
)

func TestNotifier_Notify(t *testing.T) {
	var gotTitle, gotMessage string
	n := &Notifier{title: "Voice to Docs", send: func(title, message, _ string) error {
		gotTitle, gotMessage = title, message
		return nil
	}}

	if err := n.Notify(context.Background(), "Document ready"); err != nil {
		t.Fatalf("Notify error: %v", err)
	}
	if gotTitle != "Voice to Docs" || gotMessage != "Document ready" {
		t.Errorf("got %q / %q", gotTitle, gotMessage)
	}
}

func TestNotifier_NotifyError(t *testing.T) {
	n := &Notifier{title: "x", send: func(_, _, _ string) error { return errors.New("no dbus") }}

	if err := n.Notify(context.Background(), "hi"); err == nil {
		t.Fatal("expected error")
	}
}
