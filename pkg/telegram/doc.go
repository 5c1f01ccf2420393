// Package telegram integrates with the Telegram Bot API: an outbound
// notifier that relays submission status messages to a chat, and a
// cancellable background poller that observes inbound messages via
// long-polled getUpdates.
package telegram
