// Package services – Dispatcher
//
// The dispatcher is the single core consumed by both transports
// (long-polling and webhook). It owns session-mode routing: menu
// selection writes the mode, /stop clears it, and every plain text
// message is routed to the handler matching the sender's current mode.
//
// Observability: HandleText is OpenTelemetry-instrumented; spans carry
// the sender id and the resolved mode.
package services

import (
	"context"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/rdwinata/lapakbot/internal/domain"
	"github.com/rdwinata/lapakbot/internal/session"
)

// QARelay is the question-answer contract required by the Dispatcher.
type QARelay interface {
	// Ask forwards question to endpoint for userID and returns reply text.
	Ask(ctx context.Context, endpoint, userID, question string) string
}

// OrderHandler is the ticket-mode contract required by the Dispatcher.
type OrderHandler interface {
	// Handle routes a ticket-mode message and returns reply text.
	Handle(ctx context.Context, chatID, text string) string
}

// Dispatcher routes inbound messages by per-user session mode.
type Dispatcher struct {
	Sessions session.Store
	QA       QARelay
	Orders   OrderHandler

	// ProductEndpoint and TicketEndpoint are the two chatbot URLs.
	ProductEndpoint string
	TicketEndpoint  string
}

// NewDispatcher wires a Dispatcher from its collaborators.
func NewDispatcher(s session.Store, qa QARelay, orders OrderHandler, productURL, ticketURL string) *Dispatcher {
	return &Dispatcher{
		Sessions:        s,
		QA:              qa,
		Orders:          orders,
		ProductEndpoint: productURL,
		TicketEndpoint:  ticketURL,
	}
}

// Start returns the welcome text and the fixed three-option menu.
func (d *Dispatcher) Start() (string, []MenuOption) {
	return ReplyWelcome, MenuOptions()
}

// SelectMode unconditionally overwrites the user's session mode and
// returns the mode-specific instructional reply. Unknown tokens and
// session-store failures map to fixed replies.
func (d *Dispatcher) SelectMode(ctx context.Context, userID string, mode domain.Mode) string {
	if !mode.Valid() {
		return ReplyUnknownCommand
	}
	if err := d.Sessions.Set(ctx, userID, mode); err != nil {
		log.Error().Err(err).Str("user_id", userID).Str("mode", string(mode)).
			Msg("session set failed")
		return ReplySessionError
	}
	return modeInstructions[mode]
}

// Stop clears the user's session. The reply distinguishes whether a
// session actually existed.
func (d *Dispatcher) Stop(ctx context.Context, userID string) string {
	_, had, err := d.Sessions.Get(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("session get failed")
		return ReplySessionError
	}
	if err := d.Sessions.Clear(ctx, userID); err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("session clear failed")
		return ReplySessionError
	}
	if had {
		return ReplyStopped
	}
	return ReplyNotInMode
}

// HandleText routes a plain text message according to the sender's
// current mode and returns the reply to send.
func (d *Dispatcher) HandleText(ctx context.Context, userID, text string) string {
	tr := otel.Tracer("services/Dispatcher")
	ctx, span := tr.Start(ctx, "HandleText",
		trace.WithAttributes(attribute.String("user.id", userID)),
	)
	defer span.End()

	mode, ok, err := d.Sessions.Get(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("session get failed")
		return ReplySessionError
	}
	if !ok {
		mode = domain.ModeNone
	}
	span.SetAttributes(attribute.String("session.mode", string(mode)))

	switch mode {
	case domain.ModeProductQA:
		return d.QA.Ask(ctx, d.ProductEndpoint, userID, text)
	case domain.ModeTicketQA:
		return d.QA.Ask(ctx, d.TicketEndpoint, userID, text)
	case domain.ModeTicket:
		return d.Orders.Handle(ctx, userID, text)
	default:
		return ReplyUnknownCommand
	}
}
