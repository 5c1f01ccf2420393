package mail

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"contact-form-backend/pkg/config"
	"contact-form-backend/pkg/metrics"
)

// submissionZone is the fixed UTC+3 offset used for the timestamps shown
// to the administrator.
var submissionZone = time.FixedZone("UTC+3", 3*60*60)

const timestampLayout = "02.01.2006 15:04:05"

type Sender interface {
	Send(to, name, phone string) error
	Host() string
	Port() int
}

type sender struct {
	dialer *gomail.Dialer
	from   string
	log    *zap.SugaredLogger
	now    func() time.Time
}

// NewSender builds an SMTP sender from the mail configuration. gomail
// selects implicit TLS when the port is 465 and upgrades via STARTTLS
// otherwise, with a 10s dial timeout.
func NewSender(cfg config.Mail, log *zap.SugaredLogger) Sender {
	log.Infow("Initializing mail sender", "host", cfg.Host, "port", cfg.Port, "user", cfg.User)
	return &sender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   cfg.User,
		log:    log.Named("mail"),
		now:    time.Now,
	}
}

// Send opens a fresh connection, authenticates, delivers one HTML message
// describing the submission and closes the connection. No pooling, no retry.
func (s *sender) Send(to, name, phone string) error {
	body, err := RenderContact(ContactMailParams{
		Name:      name,
		Phone:     phone,
		Timestamp: s.now().In(submissionZone).Format(timestampLayout),
	})
	if err != nil {
		return fmt.Errorf("rendering contact mail: %w", err)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", s.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Новая заявка от: "+name)
	msg.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(msg); err != nil {
		s.log.Errorw("Failed to send mail", "host", s.Host(), "to", to, "error", err)
		metrics.MailSendFailure.WithLabelValues(s.Host()).Inc()
		return fmt.Errorf("sending contact mail via %s: %w", s.Host(), err)
	}

	s.log.Infow("Mail sent", "to", to)
	metrics.MailSendSuccess.WithLabelValues(s.Host()).Inc()
	return nil
}

func (s *sender) Host() string {
	return s.dialer.Host
}

func (s *sender) Port() int {
	return s.dialer.Port
}
