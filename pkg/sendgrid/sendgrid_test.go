package sendgrid

import (
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	t.Run("missing API key is rejected", func(t *testing.T) {
		if _, err := New(nil, Config{}); err == nil {
			t.Fatal("expected an error without an API key")
		}
	})

	t.Run("zero timeout falls back to the default", func(t *testing.T) {
		sender, err := New(nil, Config{APIKey: "SG.key"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := sender.(*sendgridImpl).client.Timeout; got != defaultTimeout {
			t.Errorf("timeout = %v, want %v", got, defaultTimeout)
		}
	})

	t.Run("configured timeout is applied", func(t *testing.T) {
		sender, err := New(nil, Config{APIKey: "SG.key", Timeout: 5 * time.Second})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := sender.(*sendgridImpl).client.Timeout; got != 5*time.Second {
			t.Errorf("timeout = %v, want 5s", got)
		}
	})
}
