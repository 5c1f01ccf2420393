package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Contact submission metrics
	ContactSubmissions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "contact_submissions_total",
		Help: "Total number of contact form submissions by result",
	}, []string{"result"})

	// Mail metrics
	MailSendSuccess = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "contact_mail_send_success_total",
		Help: "Total number of successful mail sends",
	}, []string{"host"})
	MailSendFailure = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "contact_mail_send_failure_total",
		Help: "Total number of failed mail sends",
	}, []string{"host"})

	// Telegram notifier metrics
	TelegramNotifySuccess = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "contact_telegram_notify_success_total",
		Help: "Total number of Telegram notifications delivered",
	})
	TelegramNotifyFailure = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "contact_telegram_notify_failure_total",
		Help: "Total number of Telegram notifications that failed",
	})

	// Telegram poller metrics
	TelegramUpdatesReceived = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "contact_telegram_updates_received_total",
		Help: "Total number of Telegram updates received by the poller",
	})
	TelegramPollErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "contact_telegram_poll_errors_total",
		Help: "Total number of failed Telegram getUpdates calls",
	})
)

func init() {
	prometheus.MustRegister(ContactSubmissions)
	prometheus.MustRegister(MailSendSuccess)
	prometheus.MustRegister(MailSendFailure)
	prometheus.MustRegister(TelegramNotifySuccess)
	prometheus.MustRegister(TelegramNotifyFailure)
	prometheus.MustRegister(TelegramUpdatesReceived)
	prometheus.MustRegister(TelegramPollErrors)
}

// MetricsHandler returns an http.Handler exposing Prometheus metrics.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
