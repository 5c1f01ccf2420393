package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestContactMetricsExistAndIncrement(t *testing.T) {
	// Use a test label to avoid colliding with other tests
	lbl := "test-result"

	ContactSubmissions.WithLabelValues(lbl).Inc()
	if v := testutil.ToFloat64(ContactSubmissions.WithLabelValues(lbl)); v < 1 {
		t.Fatalf("expected ContactSubmissions >= 1, got %v", v)
	}

	MailSendSuccess.WithLabelValues("smtp.example.com").Inc()
	if v := testutil.ToFloat64(MailSendSuccess.WithLabelValues("smtp.example.com")); v < 1 {
		t.Fatalf("expected MailSendSuccess >= 1, got %v", v)
	}

	MailSendFailure.WithLabelValues("smtp.example.com").Add(2)
	if v := testutil.ToFloat64(MailSendFailure.WithLabelValues("smtp.example.com")); v < 2 {
		t.Fatalf("expected MailSendFailure >= 2, got %v", v)
	}
}

func TestTelegramCountersIncrement(t *testing.T) {
	before := testutil.ToFloat64(TelegramUpdatesReceived)
	TelegramUpdatesReceived.Inc()
	if v := testutil.ToFloat64(TelegramUpdatesReceived); v != before+1 {
		t.Fatalf("expected TelegramUpdatesReceived %v, got %v", before+1, v)
	}

	before = testutil.ToFloat64(TelegramPollErrors)
	TelegramPollErrors.Inc()
	if v := testutil.ToFloat64(TelegramPollErrors); v != before+1 {
		t.Fatalf("expected TelegramPollErrors %v, got %v", before+1, v)
	}
}

func TestMetricsHandlerNotNil(t *testing.T) {
	if MetricsHandler() == nil {
		t.Fatal("MetricsHandler returned nil")
	}
}
