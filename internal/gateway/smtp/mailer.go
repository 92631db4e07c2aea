package smtp

import (
	"context"
	"fmt"
	"time"

	"github.com/azuredigitalsoftware-debug/azuredigitalsoftware-auto-upi/internal/entities"
	"github.com/azuredigitalsoftware-debug/azuredigitalsoftware-auto-upi/internal/gateway"

	"github.com/wneessen/go-mail"
)

const serviceName = "smtp"

// Mailer sends HTML mail through an SMTP relay. Each Send is a single
// attempt on a fresh connection.
type Mailer struct {
	client client
}

func New(client client) *Mailer {
	return &Mailer{client: client}
}

func (m *Mailer) Send(ctx context.Context, msg entities.EmailMessage) error {
	message, err := buildMessage(msg)
	if err != nil {
		return err
	}

	start := time.Now()
	err = gateway.Observe(serviceName, "send", start, m.client.DialAndSendWithContext(ctx, message))
	if err != nil {
		return fmt.Errorf("gateway smtp, send to %s: %w", msg.To, err)
	}
	return nil
}

func buildMessage(msg entities.EmailMessage) (*mail.Msg, error) {
	m := mail.NewMsg()

	if msg.FromName != "" {
		if err := m.FromFormat(msg.FromName, msg.FromAddress); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidSender, err)
		}
	} else if err := m.From(msg.FromAddress); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSender, err)
	}

	if err := m.To(msg.To); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRecipient, err)
	}

	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextHTML, msg.HTML)
	return m, nil
}
