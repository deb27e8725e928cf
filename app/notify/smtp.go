package notify

import (
	"fmt"
	"net/smtp"
	"strings"
)

// SMTPNotifier delivers notifications as plain-text email.
type SMTPNotifier struct {
	addr string
	from string
	auth smtp.Auth

	// sendMail is swappable for tests; defaults to smtp.SendMail.
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTPNotifier creates a mailer for the given server address and sender.
// auth may be nil for unauthenticated relays.
func NewSMTPNotifier(addr, from string, auth smtp.Auth) *SMTPNotifier {
	return &SMTPNotifier{
		addr:     addr,
		from:     from,
		auth:     auth,
		sendMail: smtp.SendMail,
	}
}

// Send renders the template and mails it to recipient.
func (n *SMTPNotifier) Send(templateKey, recipient string, data map[string]any) error {
	if recipient == "" {
		return fmt.Errorf("no recipient for %s notification", templateKey)
	}
	subject, body, err := Render(templateKey, data)
	if err != nil {
		return fmt.Errorf("render %s: %v", templateKey, err)
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", n.from)
	fmt.Fprintf(&msg, "To: %s\r\n", recipient)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n")
	msg.WriteString(body)

	if err := n.sendMail(n.addr, n.auth, n.from, []string{recipient}, []byte(msg.String())); err != nil {
		return fmt.Errorf("send %s to %s: %v", templateKey, recipient, err)
	}
	return nil
}
