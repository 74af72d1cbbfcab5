package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"
)

// updateSource is the long-polling surface of *tgbotapi.BotAPI.
type updateSource interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Poller drives the processor from Telegram long polling. It is the
// default transport; the webhook server is the alternative.
type Poller struct {
	source  updateSource
	proc    *Processor
	timeout int
}

// NewPoller returns a Poller reading updates with the given long-poll
// timeout in seconds.
func NewPoller(source updateSource, proc *Processor, timeoutSeconds int) *Poller {
	if timeoutSeconds <= 0 {
		timeoutSeconds = 30
	}
	return &Poller{source: source, proc: proc, timeout: timeoutSeconds}
}

// Run consumes updates until ctx is cancelled or the channel closes.
// Updates are handled sequentially, matching Telegram's delivery order.
func (p *Poller) Run(ctx context.Context) error {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = p.timeout
	updates := p.source.GetUpdatesChan(cfg)

	log.Info().Int("timeout_s", p.timeout).Msg("polling for updates")
	for {
		select {
		case <-ctx.Done():
			p.source.StopReceivingUpdates()
			return ctx.Err()
		case upd, ok := <-updates:
			if !ok {
				return nil
			}
			p.proc.HandleUpdate(ctx, upd)
		}
	}
}
