package smtpclient

import (
	"context"
	"fmt"
	"time"

	"github.com/azuredigitalsoftware-debug/azuredigitalsoftware-auto-upi/internal/gateway"
	"github.com/azuredigitalsoftware-debug/azuredigitalsoftware-auto-upi/internal/pkg/config"
	"github.com/azuredigitalsoftware-debug/azuredigitalsoftware-auto-upi/pkg/logger"
	retrierconfig "github.com/azuredigitalsoftware-debug/azuredigitalsoftware-auto-upi/pkg/retrier"
	"github.com/azuredigitalsoftware-debug/azuredigitalsoftware-auto-upi/pkg/retrier/backoff_adapter"

	"github.com/wneessen/go-mail"
)

const (
	serviceName = "smtp"

	dialTimeout = 15 * time.Second

	initialInterval = 1 * time.Second
	maxInterval     = 10 * time.Second
	maxElapsedTime  = 1 * time.Minute
	randomization   = 0.5
	multiplier      = 2
)

type dialer interface {
	DialWithContext(ctx context.Context) error
	Close() error
}

// NewClient builds the relay client. With VerifyOnStart the relay is dialed
// and authenticated once before the service starts accepting orders.
func NewClient(ctx context.Context, log logger.Logger, cfg *config.SMTP) (*mail.Client, error) {
	client, err := mail.NewClient(
		cfg.Host,
		mail.WithPort(cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.User),
		mail.WithPassword(cfg.Password),
		mail.WithTLSPortPolicy(mail.TLSMandatory),
		mail.WithTimeout(dialTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create SMTP client: %w", err)
	}

	if !cfg.VerifyOnStart {
		return client, nil
	}

	smtpLog := log.With(
		logger.NewField("component", "smtp-client"),
		logger.NewField("host", cfg.Host),
	)
	if err := Ping(ctx, smtpLog, client); err != nil {
		return nil, fmt.Errorf("SMTP connection: %w", err)
	}

	return client, nil
}

func Ping(ctx context.Context, log logger.Logger, client dialer) error {
	retryConfig := retrierconfig.Config{
		InitialInterval: initialInterval,
		MaxInterval:     maxInterval,
		MaxElapsedTime:  maxElapsedTime,
		Randomization:   randomization,
		Multiplier:      multiplier,
	}

	retrier := backoff_adapter.New(retryConfig)

	var attempt uint64
	err := retrier.ExecuteWithContext(ctx, func(ctx context.Context) error {
		attempt++
		log.With(
			logger.NewField("attempt", attempt),
		).Info("attempting SMTP connection")

		err := client.DialWithContext(ctx)
		gateway.GatewayConnectAttemptsTotal.WithLabelValues(serviceName, gateway.Result(err)).Inc()
		if err != nil {
			return err
		}
		return client.Close()
	})
	if err != nil {
		log.With(
			logger.NewField("error", err),
			logger.NewField("attempts", attempt),
		).Error("SMTP connection failed after retries")
		return fmt.Errorf("failed to establish SMTP connection: %w", err)
	}

	log.With(
		logger.NewField("attempts", attempt),
	).Info("SMTP connection established")
	return nil
}
