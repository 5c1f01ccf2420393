package telegram

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"contact-form-backend/pkg/metrics"
)

// notifyZone matches the timezone shown in the admin mail.
var notifyZone = time.FixedZone("UTC+3", 3*60*60)

const notifyTimestampLayout = "02.01.2006 15:04:05"

// Notifier relays submission status messages to the configured chat.
// A failed notification is logged and dropped, never queued or retried.
type Notifier struct {
	client *Client
	log    *zap.SugaredLogger
	now    func() time.Time
}

func NewNotifier(client *Client, log *zap.SugaredLogger) *Notifier {
	return &Notifier{
		client: client,
		log:    log.Named("notifier"),
		now:    time.Now,
	}
}

// NotifySuccess reports a delivered submission.
func (n *Notifier) NotifySuccess(ctx context.Context, name, phone string) error {
	text, err := RenderSuccessMessage(SuccessMessageParams{
		Name:      name,
		Phone:     phone,
		Timestamp: n.timestamp(),
	})
	if err != nil {
		n.log.Errorw("Failed to render success notification", "error", err)
		return err
	}
	return n.send(ctx, text)
}

// NotifyError reports a failure, optionally with the submission data that
// triggered it.
func (n *Notifier) NotifyError(ctx context.Context, kind, details, name, phone string) error {
	text, err := RenderErrorMessage(ErrorMessageParams{
		Kind:      kind,
		Details:   details,
		Name:      name,
		Phone:     phone,
		Timestamp: n.timestamp(),
	})
	if err != nil {
		n.log.Errorw("Failed to render error notification", "error", err)
		return err
	}
	return n.send(ctx, text)
}

func (n *Notifier) send(ctx context.Context, text string) error {
	err := n.client.SendMessage(ctx, text, "HTML")
	switch {
	case err == nil:
		metrics.TelegramNotifySuccess.Inc()
		n.log.Info("Telegram notification sent")
	case errors.Is(err, ErrNotConfigured):
		// Soft no-op, already logged by the client.
	default:
		metrics.TelegramNotifyFailure.Inc()
		n.log.Errorw("Failed to send Telegram notification", "error", err)
	}
	return err
}

func (n *Notifier) timestamp() string {
	return n.now().In(notifyZone).Format(notifyTimestampLayout)
}
