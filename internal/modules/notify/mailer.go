package notify

import (
	"fmt"
	"html"

	"gopkg.in/gomail.v2"
)

// SMTPMailer sends plain-text client emails. The HTML part is a plain
// <pre> wrap of the same text so every mail client renders something.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(host string, port int, secure bool, user, pass, from string) *SMTPMailer {
	d := gomail.NewDialer(host, port, user, pass)
	d.SSL = secure
	return &SMTPMailer{dialer: d, from: from}
}

func (m *SMTPMailer) Send(to, subject, text string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", text)
	msg.AddAlternative("text/html", fmt.Sprintf("<pre>%s</pre>", html.EscapeString(text)))

	return m.dialer.DialAndSend(msg)
}
