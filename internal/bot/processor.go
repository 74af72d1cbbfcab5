// Package bot adapts Telegram updates to the dispatcher core.
//
// The Processor is transport-agnostic: the long-polling runner and the
// webhook HTTP handler both feed it raw updates, and it owns everything
// Telegram-specific (command handling, the inline service menu, callback
// acknowledgement, HTML replies, typing indicators). Business decisions
// live in the services package.
package bot

import (
	"context"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"

	"github.com/rdwinata/lapakbot/internal/domain"
	"github.com/rdwinata/lapakbot/internal/services"
)

// Sender is the slice of the Telegram client the processor needs.
// *tgbotapi.BotAPI satisfies it; tests substitute a recorder.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Processor turns one Telegram update into zero or more outbound calls.
type Processor struct {
	api   Sender
	disp  *services.Dispatcher
	dedup *dedup
}

// NewProcessor wires a Processor to the Telegram client and dispatcher.
func NewProcessor(api Sender, disp *services.Dispatcher) *Processor {
	return &Processor{api: api, disp: disp, dedup: newDedup()}
}

// HandleUpdate processes a single update. It never returns an error:
// every failure path is logged and contained so the transport can
// always acknowledge the update to Telegram.
func (p *Processor) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	// Telegram redelivers webhook updates that were not acknowledged in
	// time; a duplicate must not submit an order twice.
	if !p.dedup.firstSeen(upd.UpdateID) {
		duplicateUpdates.Inc()
		return
	}

	switch {
	case upd.CallbackQuery != nil:
		updatesTotal.WithLabelValues("callback").Inc()
		p.handleCallback(ctx, upd.CallbackQuery)
	case upd.Message != nil && upd.Message.IsCommand():
		updatesTotal.WithLabelValues("command").Inc()
		p.handleCommand(ctx, upd.Message)
	case upd.Message != nil && upd.Message.Text != "":
		updatesTotal.WithLabelValues("text").Inc()
		p.handleText(ctx, upd.Message)
	default:
		updatesTotal.WithLabelValues("other").Inc()
	}
}

// handleCommand serves /start and /stop; other commands are ignored.
func (p *Processor) handleCommand(ctx context.Context, m *tgbotapi.Message) {
	chatID := m.Chat.ID
	switch m.Command() {
	case "start":
		text, options := p.disp.Start()
		msg := tgbotapi.NewMessage(chatID, text)
		msg.ReplyMarkup = menuKeyboard(options)
		p.send(msg)
	case "stop":
		p.reply(chatID, p.disp.Stop(ctx, userID(chatID)))
	default:
		log.Debug().Str("command", m.Command()).Int64("chat_id", chatID).
			Msg("ignoring unknown command")
	}
}

// handleCallback applies a menu selection: acknowledge the button press,
// rewrite the menu message with the chosen service, then send the
// mode-specific instructions.
func (p *Processor) handleCallback(ctx context.Context, q *tgbotapi.CallbackQuery) {
	if q.Message == nil {
		return
	}
	chatID := q.Message.Chat.ID
	mode := domain.Mode(q.Data)

	if _, err := p.api.Request(tgbotapi.NewCallback(q.ID, "")); err != nil {
		log.Warn().Err(err).Msg("callback ack failed")
	}

	reply := p.disp.SelectMode(ctx, userID(chatID), mode)
	if mode.Valid() {
		edit := tgbotapi.NewEditMessageText(chatID, q.Message.MessageID,
			"Pilihan Anda: "+services.ModeTitle(mode))
		p.send(edit)
	}
	p.reply(chatID, reply)
}

// handleText routes plain text through the dispatcher.
func (p *Processor) handleText(ctx context.Context, m *tgbotapi.Message) {
	chatID := m.Chat.ID
	// Relay answers can take a while; show the typing indicator meanwhile.
	if _, err := p.api.Request(tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping)); err != nil {
		log.Debug().Err(err).Msg("chat action failed")
	}
	p.reply(chatID, p.disp.HandleText(ctx, userID(chatID), m.Text))
}

// reply sends text to chatID with HTML parse mode.
func (p *Processor) reply(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	p.send(msg)
}

func (p *Processor) send(c tgbotapi.Chattable) {
	if _, err := p.api.Send(c); err != nil {
		sendFailures.Inc()
		log.Error().Err(err).Msg("telegram send failed")
		return
	}
	repliesTotal.Inc()
}

// menuKeyboard renders the service menu as one button per row.
func menuKeyboard(options []services.MenuOption) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(options))
	for _, o := range options {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(o.Label, string(o.Mode)),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// userID renders a Telegram chat id as the opaque user identifier used
// by the session store and the ledger.
func userID(chatID int64) string { return strconv.FormatInt(chatID, 10) }
