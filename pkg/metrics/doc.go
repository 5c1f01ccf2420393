// Package metrics defines Prometheus metrics for the contact-form backend,
// covering contact submissions, mail delivery and the Telegram relay.
package metrics
