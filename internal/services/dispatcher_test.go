package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rdwinata/lapakbot/internal/domain"
	"github.com/rdwinata/lapakbot/internal/session"
)

// ----- Fakes -----

type fakeQA struct {
	endpoint string
	userID   string
	question string
}

func (f *fakeQA) Ask(_ context.Context, endpoint, userID, question string) string {
	f.endpoint, f.userID, f.question = endpoint, userID, question
	return "qa:" + endpoint
}

type fakeOrders struct {
	chatID string
	text   string
}

func (f *fakeOrders) Handle(_ context.Context, chatID, text string) string {
	f.chatID, f.text = chatID, text
	return "orders"
}

// errStore fails every operation; used to exercise contained failures.
type errStore struct{}

func (errStore) Set(context.Context, string, domain.Mode) error { return errors.New("store down") }
func (errStore) Get(context.Context, string) (domain.Mode, bool, error) {
	return domain.ModeNone, false, errors.New("store down")
}
func (errStore) Clear(context.Context, string) error { return errors.New("store down") }

func newTestDispatcher() (*Dispatcher, *fakeQA, *fakeOrders) {
	qa := &fakeQA{}
	orders := &fakeOrders{}
	d := NewDispatcher(session.NewMemoryStore(), qa, orders, "http://product", "http://ticket")
	return d, qa, orders
}

// ----- Tests -----

func TestStart_ReturnsWelcomeAndThreeOptions(t *testing.T) {
	d, _, _ := newTestDispatcher()
	text, opts := d.Start()
	if text != ReplyWelcome {
		t.Fatalf("welcome = %q", text)
	}
	if len(opts) != 3 {
		t.Fatalf("expected 3 menu options, got %d", len(opts))
	}
	want := []domain.Mode{domain.ModeProductQA, domain.ModeTicketQA, domain.ModeTicket}
	for i, o := range opts {
		if o.Mode != want[i] {
			t.Errorf("option %d mode = %q; want %q", i, o.Mode, want[i])
		}
		if o.Label == "" {
			t.Errorf("option %d has empty label", i)
		}
	}
}

func TestSelectMode_OverwritesSessionAndReturnsInstructions(t *testing.T) {
	d, _, _ := newTestDispatcher()
	ctx := context.Background()

	got := d.SelectMode(ctx, "u1", domain.ModeTicket)
	if got != modeInstructions[domain.ModeTicket] {
		t.Fatalf("instructions = %q", got)
	}
	m, ok, _ := d.Sessions.Get(ctx, "u1")
	if !ok || m != domain.ModeTicket {
		t.Fatalf("session = %q ok=%v", m, ok)
	}

	// Re-selection overwrites unconditionally.
	d.SelectMode(ctx, "u1", domain.ModeProductQA)
	m, _, _ = d.Sessions.Get(ctx, "u1")
	if m != domain.ModeProductQA {
		t.Fatalf("re-selection should overwrite; got %q", m)
	}
}

func TestSelectMode_RejectsUnknownToken(t *testing.T) {
	d, _, _ := newTestDispatcher()
	if got := d.SelectMode(context.Background(), "u1", domain.Mode("bogus")); got != ReplyUnknownCommand {
		t.Fatalf("SelectMode = %q", got)
	}
	if _, ok, _ := d.Sessions.Get(context.Background(), "u1"); ok {
		t.Fatalf("unknown token must not create a session")
	}
}

func TestStop_DistinguishesActiveSession(t *testing.T) {
	d, _, _ := newTestDispatcher()
	ctx := context.Background()

	if got := d.Stop(ctx, "u1"); got != ReplyNotInMode {
		t.Fatalf("Stop without session = %q", got)
	}

	d.SelectMode(ctx, "u1", domain.ModeTicketQA)
	if got := d.Stop(ctx, "u1"); got != ReplyStopped {
		t.Fatalf("Stop with session = %q", got)
	}
	if _, ok, _ := d.Sessions.Get(ctx, "u1"); ok {
		t.Fatalf("session should be cleared")
	}
}

func TestHandleText_RoutesByMode(t *testing.T) {
	d, qa, orders := newTestDispatcher()
	ctx := context.Background()

	// No session → unrecognized.
	if got := d.HandleText(ctx, "u1", "halo"); got != ReplyUnknownCommand {
		t.Fatalf("no-session reply = %q", got)
	}

	d.SelectMode(ctx, "u1", domain.ModeProductQA)
	if got := d.HandleText(ctx, "u1", "ada stok?"); got != "qa:http://product" {
		t.Fatalf("product route = %q", got)
	}
	if qa.endpoint != "http://product" || qa.userID != "u1" || qa.question != "ada stok?" {
		t.Fatalf("qa call args: %+v", qa)
	}

	d.SelectMode(ctx, "u1", domain.ModeTicketQA)
	if got := d.HandleText(ctx, "u1", "tiket saya?"); got != "qa:http://ticket" {
		t.Fatalf("ticket route = %q", got)
	}

	d.SelectMode(ctx, "u1", domain.ModeTicket)
	if got := d.HandleText(ctx, "u1", "cari R1"); got != "orders" {
		t.Fatalf("orders route = %q", got)
	}
	if orders.chatID != "u1" || orders.text != "cari R1" {
		t.Fatalf("orders call args: %+v", orders)
	}
}

func TestDispatcher_StoreFailuresAreContained(t *testing.T) {
	d := NewDispatcher(errStore{}, &fakeQA{}, &fakeOrders{}, "p", "t")
	ctx := context.Background()

	if got := d.SelectMode(ctx, "u", domain.ModeTicket); got != ReplySessionError {
		t.Fatalf("SelectMode = %q", got)
	}
	if got := d.Stop(ctx, "u"); got != ReplySessionError {
		t.Fatalf("Stop = %q", got)
	}
	if got := d.HandleText(ctx, "u", "x"); got != ReplySessionError {
		t.Fatalf("HandleText = %q", got)
	}
}

func TestModeTitle(t *testing.T) {
	cases := map[domain.Mode]string{
		domain.ModeProductQA: "Chatbot Product",
		domain.ModeTicketQA:  "Chatbot Ticket",
		domain.ModeTicket:    "Ticket System",
	}
	for in, want := range cases {
		if got := ModeTitle(in); got != want {
			t.Errorf("ModeTitle(%q) = %q; want %q", in, got, want)
		}
	}
}
