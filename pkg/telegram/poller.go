package telegram

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"contact-form-backend/pkg/metrics"
)

// pollBackoffInterval is the fixed pause after a failed getUpdates call.
const pollBackoffInterval = 5 * time.Second

// Poller is a long-lived background worker that fetches inbound messages
// with a monotonically advancing cursor and logs them. Inbound text is
// observed but not acted upon; command dispatch is an extension point.
type Poller struct {
	client  *Client
	log     *zap.SugaredLogger
	backoff backoff.BackOff
}

func NewPoller(client *Client, log *zap.SugaredLogger) *Poller {
	return &Poller{
		client:  client,
		log:     log.Named("poller"),
		backoff: backoff.NewConstantBackOff(pollBackoffInterval),
	}
}

// Run long-polls getUpdates until ctx is cancelled. Fetch failures are
// logged and retried after a fixed backoff; they never terminate the loop.
// With no bot token configured, Run warns and returns without polling.
func (p *Poller) Run(ctx context.Context) {
	if !p.client.HasToken() {
		p.log.Warn("TELEGRAM_BOT_TOKEN is not set, Telegram polling disabled")
		return
	}

	p.log.Info("Starting Telegram polling")
	p.backoff.Reset()

	var offset int64
	for {
		select {
		case <-ctx.Done():
			p.log.Info("Telegram polling stopped")
			return
		default:
		}

		updates, err := p.client.GetUpdates(ctx, offset, longPollSeconds)
		if err != nil {
			if ctx.Err() != nil {
				p.log.Info("Telegram polling stopped")
				return
			}
			metrics.TelegramPollErrors.Inc()
			p.log.Errorw("Telegram polling failed", "error", err)
			if !sleepContext(ctx, p.backoff.NextBackOff()) {
				p.log.Info("Telegram polling stopped")
				return
			}
			continue
		}

		p.backoff.Reset()
		offset = p.process(offset, updates)
	}
}

// process advances the cursor past every update in the batch and logs
// inbound messages. The cursor never moves backwards.
func (p *Poller) process(offset int64, updates []Update) int64 {
	for _, update := range updates {
		if next := update.UpdateID + 1; next > offset {
			offset = next
		}
		metrics.TelegramUpdatesReceived.Inc()

		if update.Message != nil {
			p.log.Infow("Telegram message received",
				"chat", update.Message.Chat.ID,
				"text", update.Message.Text)
		}
	}
	return offset
}

// sleepContext waits for d, returning false if ctx is cancelled first.
func sleepContext(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
