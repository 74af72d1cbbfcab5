package bot

import (
	"context"
	"errors"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type fakeSource struct {
	ch      chan tgbotapi.Update
	stopped bool
}

func (f *fakeSource) GetUpdatesChan(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return f.ch
}

func (f *fakeSource) StopReceivingUpdates() { f.stopped = true }

func TestPollerProcessesUntilChannelCloses(t *testing.T) {
	proc, api, _, _ := newTestProcessor()
	src := &fakeSource{ch: make(chan tgbotapi.Update, 2)}

	src.ch <- commandUpdate(1, 42, "/stop")
	src.ch <- commandUpdate(2, 42, "/stop")
	close(src.ch)

	if err := NewPoller(src, proc, 30).Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := len(sentMessages(t, api)); got != 2 {
		t.Fatalf("expected 2 replies, got %d", got)
	}
}

func TestPollerStopsOnCancel(t *testing.T) {
	proc, _, _, _ := newTestProcessor()
	src := &fakeSource{ch: make(chan tgbotapi.Update)}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- NewPoller(src, proc, 30).Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("poller did not stop on cancel")
	}
	if !src.stopped {
		t.Errorf("StopReceivingUpdates not called")
	}
}
