package contact

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"contact-form-backend/pkg/apiresponses"
	"contact-form-backend/pkg/config"
	"contact-form-backend/pkg/mail"
	"contact-form-backend/pkg/metrics"
)

// notifyTimeout bounds the fire-and-forget Telegram notification so an
// abandoned goroutine cannot linger past the request that spawned it.
const notifyTimeout = 15 * time.Second

// Validation and status messages kept verbatim from the legacy API; the
// frontend displays them as-is.
const (
	msgFieldsRequired = "Заполните все поля"
	msgNameTooShort   = "Имя слишком короткое"
	msgPhoneTooShort  = "Телефон слишком короткий"
	msgSendFailed     = "Ошибка отправки"
	msgSubmitted      = "Заявка отправлена"
)

// Notifier relays submission outcomes to the operations chat. Failures are
// the notifier's problem; the contact flow never blocks or fails on them.
type Notifier interface {
	NotifySuccess(ctx context.Context, name, phone string) error
	NotifyError(ctx context.Context, kind, details, name, phone string) error
}

type SubmissionRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type Controller struct {
	log       *zap.SugaredLogger
	mailer    mail.Sender
	notifier  Notifier
	adminMail string
}

func NewController(log *zap.SugaredLogger, mailer mail.Sender, notifier Notifier, cfg config.Config) *Controller {
	return &Controller{
		log:       log.Named("contact"),
		mailer:    mailer,
		notifier:  notifier,
		adminMail: cfg.Mail.AdminMail,
	}
}

func (ct *Controller) BasePath() string {
	return "contact"
}

func (ct *Controller) Handlers() []gin.HandlerFunc {
	return nil
}

func (ct *Controller) Register(rg *gin.RouterGroup) error {
	rg.POST("", ct.submit)
	return nil
}

func (ct *Controller) submit(c *gin.Context) {
	var req SubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.ContactSubmissions.WithLabelValues("invalid").Inc()
		apiresponses.RespondValidationError(c, msgFieldsRequired)
		return
	}

	if detail, ok := validate(req); !ok {
		metrics.ContactSubmissions.WithLabelValues("invalid").Inc()
		apiresponses.RespondValidationError(c, detail)
		return
	}

	id := uuid.NewString()
	ct.log.Infow("Contact submission received", "id", id, "name", req.Name, "phone", req.Phone)

	if err := ct.mailer.Send(ct.adminMail, req.Name, req.Phone); err != nil {
		metrics.ContactSubmissions.WithLabelValues("mail_failed").Inc()
		ct.notifyAsync(func(ctx context.Context) error {
			return ct.notifier.NotifyError(ctx, "EMAIL_SEND_ERROR", err.Error(), req.Name, req.Phone)
		})
		apiresponses.RespondServerError(c, msgSendFailed, err, ct.log)
		return
	}

	metrics.ContactSubmissions.WithLabelValues("accepted").Inc()
	ct.notifyAsync(func(ctx context.Context) error {
		return ct.notifier.NotifySuccess(ctx, req.Name, req.Phone)
	})
	apiresponses.RespondSuccess(c, msgSubmitted)
}

// validate applies the legacy field checks in order; lengths are counted
// in runes, not bytes.
func validate(req SubmissionRequest) (string, bool) {
	switch {
	case req.Name == "" || req.Phone == "":
		return msgFieldsRequired, false
	case utf8.RuneCountInString(req.Name) < 2:
		return msgNameTooShort, false
	case utf8.RuneCountInString(req.Phone) < 10:
		return msgPhoneTooShort, false
	}
	return "", true
}

// notifyAsync runs the notification outside the request lifecycle. The
// notifier logs its own failures; nothing propagates back to the handler.
func (ct *Controller) notifyAsync(notify func(context.Context) error) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		_ = notify(ctx)
	}()
}
