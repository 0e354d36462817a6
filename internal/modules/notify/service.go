package notify

import (
	"context"
	"errors"
	"log"

	"psycenter/internal/domain"
)

var ErrChannelDisabled = errors.New("notification channel not configured")

// OpsChannel posts to the staff Telegram chat.
type OpsChannel interface {
	Send(ctx context.Context, text string) (messageID int, err error)
	SendTo(ctx context.Context, chatID int64, text string) (messageID int, err error)
}

// Mailer delivers one client email.
type Mailer interface {
	Send(to, subject, text string) error
}

// Outcome reports what each channel did for one event. Channels are
// attempted independently; a nil error with Skipped=true means the channel
// was not applicable (no email on file, channel not configured).
type Outcome struct {
	TelegramMessageID int
	TelegramSkipped   bool
	TelegramErr       error
	EmailSkipped      bool
	EmailErr          error
}

// Ok reports whether nothing actually failed.
func (o Outcome) Ok() bool {
	return o.TelegramErr == nil && o.EmailErr == nil
}

// Dispatcher fans a booking state change out to the operations chat and
// the client's email. Best-effort only: a delivery failure is logged and
// surfaced in the Outcome, the primary mutation has already committed.
type Dispatcher struct {
	ops         OpsChannel
	mailer      Mailer
	frontendURL string
}

// NewDispatcher accepts nil channels; a nil channel is skipped.
func NewDispatcher(ops OpsChannel, mailer Mailer, frontendURL string) *Dispatcher {
	return &Dispatcher{ops: ops, mailer: mailer, frontendURL: frontendURL}
}

func (d *Dispatcher) dispatch(ctx context.Context, event string, a *domain.Appointment, opsText, subject, body string) Outcome {
	var out Outcome

	if d.ops == nil {
		out.TelegramSkipped = true
	} else {
		id, err := d.ops.Send(ctx, opsText)
		if err != nil {
			out.TelegramErr = err
			log.Printf("notify: telegram failed event=%s appointment=%s error=%q", event, a.ID, err)
		} else {
			out.TelegramMessageID = id
			log.Printf("notify: telegram sent event=%s appointment=%s message_id=%d", event, a.ID, id)
		}
	}

	if d.mailer == nil || a.ClientEmail == "" {
		out.EmailSkipped = true
	} else if err := d.mailer.Send(a.ClientEmail, subject, body); err != nil {
		out.EmailErr = err
		log.Printf("notify: email failed event=%s appointment=%s error=%q", event, a.ID, err)
	}

	return out
}

func (d *Dispatcher) AppointmentCreated(ctx context.Context, a *domain.Appointment, psychologistName string) Outcome {
	subject, body := d.emailCreated(a, psychologistName)
	return d.dispatch(ctx, "created", a, opsCreatedText(a, psychologistName), subject, body)
}

func (d *Dispatcher) AppointmentConfirmed(ctx context.Context, a *domain.Appointment, psychologistName string) Outcome {
	subject, body := d.emailConfirmed(a, psychologistName)
	return d.dispatch(ctx, "confirmed", a, opsConfirmedText(a, psychologistName), subject, body)
}

func (d *Dispatcher) AppointmentCancelled(ctx context.Context, a *domain.Appointment, psychologistName, reason string) Outcome {
	subject, body := d.emailCancelled(a, psychologistName, reason)
	return d.dispatch(ctx, "cancelled", a, opsCancelledText(a, psychologistName, reason), subject, body)
}

func (d *Dispatcher) AppointmentRescheduled(ctx context.Context, a *domain.Appointment, psychologistName, oldDate, oldTime string) Outcome {
	subject, body := d.emailRescheduled(a, psychologistName, oldDate, oldTime)
	return d.dispatch(ctx, "rescheduled", a, opsRescheduledText(a, psychologistName, oldDate, oldTime), subject, body)
}

// EmailTemplate renders one of the ad hoc resend templates.
func (d *Dispatcher) EmailTemplate(template string, a *domain.Appointment, psychologistName string) (subject, body string, err error) {
	switch template {
	case "created":
		subject, body = d.emailCreated(a, psychologistName)
	case "confirmed":
		subject, body = d.emailConfirmed(a, psychologistName)
	case "cancelled":
		subject, body = d.emailCancelled(a, psychologistName, "")
	default:
		return "", "", errors.New("unknown email template: " + template)
	}
	return subject, body, nil
}

// SendEmail delivers an already-rendered email to the appointment's client.
func (d *Dispatcher) SendEmail(a *domain.Appointment, subject, body string) error {
	if d.mailer == nil {
		return ErrChannelDisabled
	}
	if a.ClientEmail == "" {
		return errors.New("appointment has no client email")
	}
	return d.mailer.Send(a.ClientEmail, subject, body)
}

// Send posts ad hoc text to the operations chat (/api/send).
func (d *Dispatcher) Send(ctx context.Context, text string) (int, error) {
	if d.ops == nil {
		return 0, ErrChannelDisabled
	}
	return d.ops.Send(ctx, text)
}

// Broadcast posts text to a list of chats (/api/send-bulk). Failures are
// counted, not propagated per chat.
func (d *Dispatcher) Broadcast(ctx context.Context, chatIDs []int64, text string) (sent int, failed int) {
	if d.ops == nil {
		return 0, len(chatIDs)
	}
	for _, id := range chatIDs {
		if _, err := d.ops.SendTo(ctx, id, text); err != nil {
			failed++
			log.Printf("notify: broadcast failed chat_id=%d error=%q", id, err)
			continue
		}
		sent++
	}
	return sent, failed
}
